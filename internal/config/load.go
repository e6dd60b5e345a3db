package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// envFileVar names the environment variable that can point at an explicit
// env file. When unset, a ./.env file is picked up if one exists.
const envFileVar = "ENVFILE_PATH"

// configKeys lists every configuration key so each one can be bound to its
// TASKAPI_-prefixed environment variable regardless of defaults.
var configKeys = []string{
	"server.port",
	"server.log_level",
	"database.url",
	"job.worker_count",
	"job.queue_size",
}

// Load reads configuration from environment variables, optionally seeded
// from an env file. Environment variables already present in the process
// take precedence over values from the file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if path := findEnvFile(); path != "" {
		// gotenv.Load never overrides variables that are already set,
		// which gives the process environment precedence over the file.
		if err := gotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load env file %q: %w", path, err)
		}
	}

	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("job.worker_count", 2)
	v.SetDefault("job.queue_size", 100)

	v.SetEnvPrefix("TASKAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface keys without defaults (such as
	// database.url) during Unmarshal, so bind every key explicitly.
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind config key %q: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// findEnvFile resolves the env file to load.
// The ENVFILE_PATH environment variable is considered first; if it is set,
// its value is used as the filename. Otherwise ./.env is auto-discovered.
// Returns an empty string when there is nothing to load.
func findEnvFile() string {
	if path := os.Getenv(envFileVar); path != "" {
		return path
	}

	if _, err := os.Stat(".env"); err == nil {
		return ".env"
	}

	return ""
}
