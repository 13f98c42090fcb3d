// Package config loads application configuration from an optional YAML
// file, an optional .env file, and environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// FilePath is the path to a configuration file.
// Empty string means no config file will be loaded.
type FilePath string

type options struct {
	configPath   *string
	noConfigFile bool
	noDotEnv     bool
}

// Option is a functional option for configuring the module.
type Option func(*options)

// WithConfigPath sets a direct path to the configuration file,
// overriding the CONFIG_FILE environment variable.
func WithConfigPath(path string) Option {
	return func(o *options) {
		o.configPath = &path
	}
}

// WithoutConfigFile disables loading of any config file. Viper will
// still serve defaults and environment variables.
func WithoutConfigFile() Option {
	return func(o *options) {
		o.noConfigFile = true
	}
}

// WithoutEnvFile disables loading of the .env file. Useful for tests.
func WithoutEnvFile() Option {
	return func(o *options) {
		o.noDotEnv = true
	}
}

// Module provides a *viper.Viper instance for dependency injection.
// By default the config path is resolved from the CONFIG_FILE
// environment variable; if unset, viper serves only defaults and
// environment variables.
func Module(opts ...Option) fx.Option {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return fx.Module("config",
		loadDotEnv(o),
		fx.Supply(resolveConfigPath(o)),
		fx.Provide(newViper),
	)
}

func resolveConfigPath(o *options) FilePath {
	if o.noConfigFile {
		return ""
	}
	if o.configPath != nil {
		return FilePath(*o.configPath)
	}
	return FilePath(os.Getenv("CONFIG_FILE"))
}

func newViper(configFile FilePath, log *zap.Logger) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile == "" {
		log.Info("no config file specified, using environment and defaults")
		return v, nil
	}

	v.SetConfigFile(string(configFile))
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file [%s]: %w", configFile, err)
	}
	log.Info("configuration loaded", zap.String("configFile", v.ConfigFileUsed()))

	return v, nil
}
