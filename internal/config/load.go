package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. SNIPPETS_SERVER_PORT overrides server.port.
const EnvPrefix = "SNIPPETS"

// DefaultScopes are the delegated Graph permissions requested at sign-in.
var DefaultScopes = []string{
	"openid",
	"profile",
	"offline_access",
	"User.Read",
	"Group.ReadWrite.All",
}

// keys lists every configuration key so that AutomaticEnv can resolve keys
// which have no default and no config file entry.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.log_format",
	"graph.base_url",
	"graph.timeout_seconds",
	"graph.retry_count",
	"graph.max_pages",
	"auth.client_id",
	"auth.client_secret",
	"auth.tenant_id",
	"auth.redirect_url",
	"auth.scopes",
	"auth.session_secret",
	"auth.session_lifetime_minutes",
	"auth.session_capacity",
	"auth.cookie_secure",
}

// Load configuration from environment variables and optionally a .env file
// and a config.yaml in the working directory.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")

	v.SetDefault("graph.base_url", "https://graph.microsoft.com/v1.0")
	v.SetDefault("graph.timeout_seconds", 30)
	v.SetDefault("graph.retry_count", 2)
	v.SetDefault("graph.max_pages", 10)

	v.SetDefault("auth.tenant_id", "common")
	v.SetDefault("auth.scopes", DefaultScopes)
	v.SetDefault("auth.session_lifetime_minutes", 60)
	v.SetDefault("auth.session_capacity", 1000)
	v.SetDefault("auth.cookie_secure", true)
}
