// Package main provides the entry point for the staffdesk bulk importer.
package main

import (
	"fmt"
	"os"

	"github.com/avery/staffdesk/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "staffdesk",
	Short: "Staffdesk bulk record importer",
	Long:  "Staffdesk imports candidate, organization and job records from CSV or Excel files, with header auto-mapping and per-row validation, via REST API or CLI.",
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
}

// loadConfig merges the optional config file over environment defaults.
// Command flags still win over both.
func loadConfig() (config.Config, error) {
	defaults := config.FromEnv()
	if configPath == "" {
		return defaults, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	merged := cfg.MergeWithDefaults(defaults)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
