package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flowlens/flowlens/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize flowlens configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure flowlens for your project and generates a .flowlens.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
