package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/avery/staffdesk/internal/db"
	"github.com/avery/staffdesk/internal/fields"
	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Manage field definitions",
}

var fieldsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed field definitions for a module from a JSON file",
	Long:  "Load field definitions from a JSON file and upsert them into the database for the given module. Accepts both snake_case and camelCase keys.",
	RunE:  runFieldsSeed,
}

var (
	seedModule string
	seedFile   string
)

func init() {
	fieldsSeedCmd.Flags().StringVarP(&seedModule, "module", "m", "", "Entity type to seed, e.g. job-seekers (required)")
	fieldsSeedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to JSON file with field definitions (required)")

	fieldsSeedCmd.MarkFlagRequired("module")
	fieldsSeedCmd.MarkFlagRequired("file")

	fieldsCmd.AddCommand(fieldsSeedCmd)
	rootCmd.AddCommand(fieldsCmd)
}

func runFieldsSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	data, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var defs []fields.Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("failed to parse field definitions: %w", err)
	}
	if len(defs) == 0 {
		return fmt.Errorf("no field definitions in %s", seedFile)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	if err := database.UpsertFieldDefinitions(ctx, seedModule, defs); err != nil {
		return fmt.Errorf("failed to seed field definitions: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Seeded %d field definition(s) for %s\n", len(defs), seedModule)
	return nil
}
