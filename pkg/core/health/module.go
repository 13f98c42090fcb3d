package health

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the readiness tracker under its three read/write interfaces.
func Module() fx.Option {
	return fx.Provide(
		func(log *zap.Logger) *readiness {
			return newReadiness(log.With(zap.String("component", "readiness")))
		},
		func(r *readiness) ComponentManager { return r },
		func(r *readiness) Checker { return r },
		func(r *readiness) Waiter { return r },
	)
}
