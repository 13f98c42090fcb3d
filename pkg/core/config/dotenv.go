package config

import (
	"context"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// loadDotEnv loads environment variables from a .env file in the
// working directory. Loading happens synchronously when the module is
// created so the variables are visible to every other provider.
func loadDotEnv(o *options) fx.Option {
	if o.noDotEnv {
		return fx.Options()
	}

	err := godotenv.Load()
	loaded := err == nil

	return fx.Invoke(func(lc fx.Lifecycle, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				if loaded {
					log.Info("loaded .env file")
				} else {
					log.Debug("no .env file loaded")
				}
				return nil
			},
		})
	})
}
