package httpserver

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewConfig(t *testing.T) {
	t.Run("uses the service's default port", func(t *testing.T) {
		cfg := newConfig(3001)(viper.New(), zap.NewNop())

		assert.Equal(t, 3001, cfg.Port)
		assert.Equal(t, 10*time.Second, cfg.ReadHeaderTimeout)
		assert.Equal(t, 120*time.Second, cfg.IdleTimeout)
	})

	t.Run("configured port wins", func(t *testing.T) {
		v := viper.New()
		v.Set("server.port", 8080)

		cfg := newConfig(3001)(v, zap.NewNop())

		assert.Equal(t, 8080, cfg.Port)
	})
}
