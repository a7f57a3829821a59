package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnvFile(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "JWT_SECRET", "PORT", "DB_DRIVER"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	env := "DATABASE_URL=postgres://localhost/gamehub\nJWT_SECRET=s3cret\nPORT=9090\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/gamehub", cfg.DatabaseURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gamehub")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(t.TempDir())
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestValidate(t *testing.T) {
	base := Config{DatabaseURL: "x", JWTSecret: "y", DBDriver: "postgres", MaxUploadBytes: 1}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing database url", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: true},
		{name: "zero upload limit", mutate: func(c *Config) { c.MaxUploadBytes = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := Config{CORSOrigins: "http://a.test, http://b.test,,"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}
