package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_FromEnvironment(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		expiration string
		wantHours  int
		wantErr    string
	}{
		{name: "defaults to 24 hours", secret: "admin-token-secret", wantHours: 24},
		{name: "custom expiration", secret: "admin-token-secret", expiration: "2", wantHours: 2},
		{name: "missing secret", secret: "", wantErr: "JWT_SECRET"},
		{name: "non-numeric expiration", secret: "admin-token-secret", expiration: "soon", wantErr: "JWT_EXPIRATION_HOURS"},
		{name: "zero expiration", secret: "admin-token-secret", expiration: "0", wantErr: "at least 1"},
		{name: "negative expiration", secret: "admin-token-secret", expiration: "-3", wantErr: "at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.secret, cfg.Secret)
			assert.Equal(t, tt.wantHours, cfg.ExpirationHours)
		})
	}
}

func TestJWTConfig_Normalize(t *testing.T) {
	valid := &JWTConfig{Secret: "admin-token-secret", ExpirationHours: 1}
	assert.NoError(t, valid.normalize())

	noSecret := &JWTConfig{ExpirationHours: 24}
	assert.Error(t, noSecret.normalize())

	tooShort := &JWTConfig{Secret: "admin-token-secret", ExpirationHours: 0}
	assert.Error(t, tooShort.normalize())
}
