package httpserver

import (
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Port int

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

func newConfig(defaultPort int) func(v *viper.Viper, log *zap.Logger) Config {
	return func(v *viper.Viper, log *zap.Logger) Config {
		v.SetDefault("server.port", defaultPort)
		v.SetDefault("server.read-header-timeout", 10*time.Second)
		v.SetDefault("server.read-timeout", 30*time.Second)
		v.SetDefault("server.write-timeout", 40*time.Second)
		v.SetDefault("server.idle-timeout", 120*time.Second)

		cfg := Config{
			Port:              v.GetInt("server.port"),
			ReadHeaderTimeout: v.GetDuration("server.read-header-timeout"),
			ReadTimeout:       v.GetDuration("server.read-timeout"),
			WriteTimeout:      v.GetDuration("server.write-timeout"),
			IdleTimeout:       v.GetDuration("server.idle-timeout"),
		}

		log.Info("loaded server config", zap.Int("port", cfg.Port))
		return cfg
	}
}
