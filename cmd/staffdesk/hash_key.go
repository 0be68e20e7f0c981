package main

import (
	"fmt"
	"os"

	"github.com/avery/staffdesk/internal/config"
	"github.com/spf13/cobra"
)

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key <key>",
	Short: "Hash an admin API key for ADMIN_API_KEY_HASH",
	Long:  "Print the bcrypt hash of an admin API key. Put the hash in ADMIN_API_KEY_HASH on the server; the key itself is never stored.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashKey,
}

var hashCost int

func init() {
	hashKeyCmd.Flags().IntVar(&hashCost, "cost", 12, "bcrypt cost (10-14)")
	rootCmd.AddCommand(hashKeyCmd)
}

func runHashKey(_ *cobra.Command, args []string) error {
	if hashCost < 10 || hashCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", hashCost)
	}

	keys := &config.AdminKeyConfig{BcryptCost: hashCost}
	hash, err := keys.HashKey(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, hash)
	return nil
}
