package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DBDriver       string `mapstructure:"DB_DRIVER"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	Port           string `mapstructure:"PORT"`
	UploadDir      string `mapstructure:"UPLOAD_DIR"`
	MaxUploadBytes int64  `mapstructure:"MAX_UPLOAD_BYTES"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogFormat      string `mapstructure:"LOG_FORMAT"`
	CORSOrigins    string `mapstructure:"CORS_ORIGINS"`
	AuthRatePerSec int    `mapstructure:"AUTH_RATE_PER_SEC"`
	AuthRateBurst  int    `mapstructure:"AUTH_RATE_BURST"`
	GinMode        string `mapstructure:"GIN_MODE"`
}

var defaults = map[string]interface{}{
	"DB_DRIVER":         "postgres",
	"PORT":              "8080",
	"UPLOAD_DIR":        "./public/uploads",
	"MAX_UPLOAD_BYTES":  10 * 1024 * 1024,
	"LOG_LEVEL":         "info",
	"LOG_FORMAT":        "json",
	"CORS_ORIGINS":      "*",
	"AUTH_RATE_PER_SEC": 5,
	"AUTH_RATE_BURST":   10,
	"GIN_MODE":          "release",
}

// LoadConfig loads the configuration from a .env file in path and environment variables.
// A missing .env file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	// AutomaticEnv only applies to keys viper already knows about.
	for _, key := range []string{"DATABASE_URL", "JWT_SECRET"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
