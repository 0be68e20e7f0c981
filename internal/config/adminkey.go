// Package config - adminkey.go provides admin API key verification.
package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// AdminKeyConfig verifies the admin API key used by the CSV seeding and
// pending-file endpoints. Only a bcrypt hash of the key is held at rest.
type AdminKeyConfig struct {
	KeyHash    string
	BcryptCost int
}

// NewAdminKeyConfig reads ADMIN_API_KEY_HASH (required) and BCRYPT_COST
// (default 12) from the environment.
func NewAdminKeyConfig() (*AdminKeyConfig, error) {
	hash := os.Getenv("ADMIN_API_KEY_HASH")
	if hash == "" {
		return nil, fmt.Errorf("ADMIN_API_KEY_HASH is required but not set")
	}

	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12"
	}
	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}
	if cost < 10 || cost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cost)
	}

	return &AdminKeyConfig{KeyHash: hash, BcryptCost: cost}, nil
}

// VerifyKey checks a presented admin key against the stored hash.
func (c *AdminKeyConfig) VerifyKey(key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.KeyHash), []byte(key)) == nil
}

// HashKey hashes an admin key for storage; used by the hash-key command.
func (c *AdminKeyConfig) HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash admin key: %w", err)
	}
	return string(hash), nil
}
