package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "flowlens",
	Short: "Turn source code into step-by-step flowcharts",
	Long: `Flowlens reads source files line by line and produces directed
flowcharts whose nodes carry plain-English narratives. Results are
stored locally, searchable semantically, and exportable as Mermaid
diagrams, Markdown reports, or standalone HTML pages.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".flowlens.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
