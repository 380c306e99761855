// Package config provides admin credential configuration.
package config

import (
	"fmt"
	"os"
)

// AdminConfig holds the single admin credential used to obtain API tokens.
// There is no user registration; the stats-refresh and admin endpoints are
// protected by this one account.
type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt hash, never the plaintext password
}

// NewAdminConfig creates an admin configuration from environment variables.
// It reads ADMIN_EMAIL and ADMIN_PASSWORD_HASH (both required).
func NewAdminConfig() (*AdminConfig, error) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL is required but not set")
	}

	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is required but not set")
	}

	return &AdminConfig{
		Email:        email,
		PasswordHash: hash,
	}, nil
}
