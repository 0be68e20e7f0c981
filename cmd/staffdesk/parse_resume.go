package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avery/staffdesk/internal/csvio"
	"github.com/avery/staffdesk/internal/parsing"
	"github.com/spf13/cobra"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Parse a resume file into structured candidate data",
	Long:  "Upload a resume to the staffdesk server for extraction and print the result as JSON, or as a one-row CSV ready for the importer.",
	RunE:  runParseResume,
}

var (
	resumeFile   string
	resumeAsCSV  bool
	resumeOutput string
)

func init() {
	parseResumeCmd.Flags().StringVarP(&resumeFile, "file", "f", "", "Path to resume file (.txt, .md or .html) (required)")
	parseResumeCmd.Flags().BoolVar(&resumeAsCSV, "csv", false, "Print a one-row CSV instead of JSON")
	parseResumeCmd.Flags().StringVarP(&resumeOutput, "out", "o", "", "Write output to a file instead of stdout")
	parseResumeCmd.Flags().StringVar(&importURL, "url", "", "Server base URL (defaults to STAFFDESK_URL)")
	parseResumeCmd.Flags().StringVar(&importKey, "key", "", "Admin API key (defaults to ADMIN_API_KEY)")
	parseResumeCmd.Flags().StringVar(&importToken, "token", "", "Bearer token (defaults to STAFFDESK_TOKEN)")

	parseResumeCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	api, err := connectClient(ctx)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(resumeFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	result, err := api.ParseResume(ctx, filepath.Base(resumeFile), data)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	var output string
	if resumeAsCSV {
		doc := parsing.Flatten(result)
		output = csvio.Encode(append([][]string{doc.Headers()}, doc.Rows()...))
	} else {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		output = string(encoded) + "\n"
	}

	if resumeOutput != "" {
		if err := os.WriteFile(resumeOutput, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Wrote %s\n", resumeOutput)
		return nil
	}

	fmt.Fprint(os.Stdout, output)
	return nil
}
