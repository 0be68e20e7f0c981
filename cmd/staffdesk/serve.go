package main

import (
	"fmt"

	"github.com/avery/staffdesk/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the field-management, data-uploader, resume-parsing and pending-file endpoints.`,
}

func init() {
	serveCmd.RunE = runServe
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	appCfg, err := loadConfig()
	if err != nil {
		return err
	}
	if appCfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	port := servePort
	if appCfg.Port != 0 && !serveCmd.Flags().Changed("port") {
		port = appCfg.Port
	}

	cfg := server.Config{
		Port:        port,
		DatabaseURL: appCfg.DatabaseURL,
		// Optional. Without it the parse-resume endpoint is disabled.
		GeminiAPIKey: appCfg.GeminiAPIKey,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
