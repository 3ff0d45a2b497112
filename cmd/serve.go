package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/flowlens/flowlens/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing flowchart analysis and search tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		svc, database, vectors, err := newAnalysisService(cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		defer persistVectors(vectors, cfg)

		// Stdout carries MCP protocol messages; everything else goes to stderr.
		mcpserver.Version = Version
		fmt.Fprintf(os.Stderr, "flowlens MCP server started on stdio (db=%s)\n", database.Path())

		srv := mcpserver.NewServer(svc)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
