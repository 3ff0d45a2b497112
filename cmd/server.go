package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flowlens/flowlens/internal/analyses"
	"github.com/flowlens/flowlens/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the flowlens HTTP API server",
	Long:  `Starts the flowlens server with a REST API for analyzing source, browsing stored flowcharts, semantic search, and a live analysis stream over WebSocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serverPort != 0 {
			cfg.Port = serverPort
		}

		svc, database, vectors, err := newAnalysisService(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:    cfg.Port,
			DataDir: cfg.DataDir,
		}, database)

		hub := analyses.NewHub()
		analyses.RegisterRoutes(srv.Router(), svc, hub, cfg.MaxSourceKB)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			persistVectors(vectors, cfg)
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "flowlens server v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		if svc.SearchEnabled() {
			fmt.Fprintf(os.Stderr, "  Search index: %d documents\n", vectors.Count())
		} else {
			fmt.Fprintln(os.Stderr, "  Search: disabled")
		}

		return srv.Start()
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
