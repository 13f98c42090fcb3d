package logger

import (
	"os"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	// Level is the minimum logging level.
	Level zapcore.Level

	// Development enables console encoding with human-readable timestamps.
	// In production mode (false), JSON encoding is used.
	Development bool
}

// newConfig builds the logger configuration from the environment.
// The logger is created before viper, so it cannot read the config file.
func newConfig() Config {
	cfg := Config{Level: zapcore.InfoLevel}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsed, err := zapcore.ParseLevel(lvl); err == nil {
			cfg.Level = parsed
		}
	}
	if os.Getenv("LOG_DEV") == "true" {
		cfg.Development = true
	}

	return cfg
}
