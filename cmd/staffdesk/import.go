package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/avery/staffdesk/internal/client"
	"github.com/avery/staffdesk/internal/csvio"
	"github.com/avery/staffdesk/internal/importer"
	"github.com/avery/staffdesk/internal/types"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import records from a CSV or Excel file",
	Long:  "Parse a CSV or Excel file, auto-map its headers to destination fields, validate every row, and submit the batch to the staffdesk server.",
	RunE:  runImport,
}

var (
	importFile     string
	importModule   string
	importURL      string
	importKey      string
	importToken    string
	importMappings []string
	skipInvalid    bool
	updateExisting bool
)

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to CSV or Excel file (required)")
	importCmd.Flags().StringVarP(&importModule, "module", "m", "", "Entity type to import into, e.g. job-seekers (required)")
	importCmd.Flags().StringVar(&importURL, "url", "", "Server base URL (defaults to STAFFDESK_URL)")
	importCmd.Flags().StringVar(&importKey, "key", "", "Admin API key (defaults to ADMIN_API_KEY)")
	importCmd.Flags().StringVar(&importToken, "token", "", "Bearer token (defaults to STAFFDESK_TOKEN)")
	importCmd.Flags().StringArrayVar(&importMappings, "map", nil, "Override a mapping as field=header, repeatable")
	importCmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "Drop rows that fail validation instead of aborting")
	importCmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update records that already exist instead of failing them")

	importCmd.MarkFlagRequired("file")
	importCmd.MarkFlagRequired("module")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	api, err := connectClient(ctx)
	if err != nil {
		return err
	}

	f, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	doc, err := csvio.ParseUpload(importFile, f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("failed to parse file: %w", err)
	}

	defs, err := api.FieldDefinitions(ctx, importModule)
	if err != nil {
		return fmt.Errorf("failed to fetch field definitions: %w", err)
	}
	if len(defs) == 0 {
		return fmt.Errorf("no field definitions for module %q", importModule)
	}

	session := importer.NewSession(api)
	session.SelectModule(importModule, defs)
	if err := session.LoadFile(doc); err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}

	for _, override := range importMappings {
		field, header, ok := strings.Cut(override, "=")
		if !ok {
			return fmt.Errorf("invalid --map value %q: use field=header", override)
		}
		session.SetMapping(strings.TrimSpace(field), strings.TrimSpace(header))
	}

	result := session.Validate()
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	if !result.IsValid && skipInvalid {
		dropped := session.SkipInvalidRows()
		fmt.Fprintf(os.Stderr, "Skipped %d invalid row(s)\n", dropped)
	}

	if err := session.ToPreview(); err != nil {
		var failed *importer.ValidationFailedError
		if errors.As(err, &failed) {
			for _, msg := range failed.Result.Errors {
				fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
			}
			return fmt.Errorf("validation failed with %d error(s); fix the file or rerun with --skip-invalid", len(failed.Result.Errors))
		}
		return err
	}

	fmt.Fprintf(os.Stdout, "Importing %d row(s) into %s...\n", len(session.Rows()), importModule)

	outcome, err := session.Submit(ctx, types.ImportOptions{UpdateExisting: updateExisting})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	printOutcome(outcome)
	if outcome.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

// connectClient builds an authenticated API client from flags, the optional
// config file and environment.
func connectClient(ctx context.Context) (*client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	baseURL := importURL
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}
	if baseURL == "" {
		return nil, fmt.Errorf("server URL is required: pass --url or set STAFFDESK_URL")
	}

	token := importToken
	if token == "" {
		token = cfg.AuthToken
	}
	if token != "" {
		return client.New(baseURL, token), nil
	}

	key := importKey
	if key == "" {
		key = os.Getenv("ADMIN_API_KEY")
	}
	if key == "" {
		return nil, fmt.Errorf("credentials are required: pass --token/--key or set STAFFDESK_TOKEN/ADMIN_API_KEY")
	}

	api, err := client.Authenticate(ctx, baseURL, key)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	return api, nil
}

func printOutcome(outcome *importer.UploadOutcome) {
	fmt.Fprintf(os.Stdout, "Imported: %d succeeded, %d failed\n", outcome.Success, outcome.Failed)
	for _, msg := range outcome.Errors {
		fmt.Fprintf(os.Stdout, "  %s\n", msg)
	}
	if outcome.Truncated > 0 {
		fmt.Fprintf(os.Stdout, "  ... and %d more error(s)\n", outcome.Truncated)
	}
}
