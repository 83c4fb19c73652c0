package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              8080,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
		},
		Database: DatabaseConfig{
			Source:       "postgres://localhost:5432/finance_tracker",
			MaxOpenConns: 25,
			MaxIdleConns: 10,
		},
		Security: SecurityConfig{
			JWTSecret:     "0123456789abcdef0123456789abcdef",
			TokenDuration: 24 * time.Hour,
			BCryptCost:    10,
		},
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestSecurityConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SecurityConfig)
		wantErr string
	}{
		{
			name:    "short secret",
			mutate:  func(c *SecurityConfig) { c.JWTSecret = "too-short" },
			wantErr: "jwt secret",
		},
		{
			name:    "token ttl below a minute",
			mutate:  func(c *SecurityConfig) { c.TokenDuration = 30 * time.Second },
			wantErr: "token_duration",
		},
		{
			name:    "bcrypt cost too low",
			mutate:  func(c *SecurityConfig) { c.BCryptCost = 4 },
			wantErr: "bcrypt_cost",
		},
		{
			name:    "bcrypt cost too high",
			mutate:  func(c *SecurityConfig) { c.BCryptCost = 20 },
			wantErr: "bcrypt_cost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig().Security
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfigValidate(t *testing.T) {
	cfg := validConfig().Database
	cfg.Source = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig().Database
	cfg.MaxIdleConns = cfg.MaxOpenConns + 1
	assert.Error(t, cfg.Validate())
}

func TestServerConfigValidate(t *testing.T) {
	cfg := validConfig().Server
	cfg.ReadTimeout = time.Second
	cfg.ReadHeaderTimeout = 5 * time.Second
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read_timeout")
}
