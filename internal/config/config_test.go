package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:       "8375",
		Env:        "development",
		JWTSecret:  "your-secret-key-change-in-production",
		DBPassword: "password",
		ImageDir:   "public/images",
		ImageMaxKB: 1024,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "development defaults pass", mutate: func(c *Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Port = "" }, wantErr: "PORT is required"},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET is required"},
		{name: "missing image dir", mutate: func(c *Config) { c.ImageDir = "" }, wantErr: "IMAGE_DIR is required"},
		{name: "non-positive image limit", mutate: func(c *Config) { c.ImageMaxKB = 0 }, wantErr: "IMAGE_MAX_KB must be positive"},
		{
			name:    "production rejects default secret",
			mutate:  func(c *Config) { c.Env = "production" },
			wantErr: "JWT_SECRET must be changed from the default value in production",
		},
		{
			name: "production rejects short secret",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "short"
			},
			wantErr: "JWT_SECRET must be at least 32 characters in production",
		},
		{
			name: "production rejects weak db password",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "0123456789abcdef0123456789abcdef"
			},
			wantErr: "a strong DB_PASSWORD is required in production",
		},
		{
			name: "production with strong values passes",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "0123456789abcdef0123456789abcdef"
				c.DBPassword = "s0meth1ng-str0ng"
				c.DBSSLMode = "require"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: "test"}).IsProduction())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8375", cfg.Port)
	assert.Equal(t, "public/images", cfg.ImageDir)
	assert.Equal(t, 1024, cfg.ImageMaxKB)
	assert.NotEmpty(t, cfg.JWTSecret)
}
