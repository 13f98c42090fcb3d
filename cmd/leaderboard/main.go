// The leaderboard service consumes ranking-relevant events and serves a
// cached top-N ranking rebuilt from the durable store.
package main

import (
	"fmt"
	"os"

	"github.com/eduboost/eventpipe/internal/leaderboard"
	"github.com/eduboost/eventpipe/pkg/core/config"
	"github.com/eduboost/eventpipe/pkg/core/health"
	"github.com/eduboost/eventpipe/pkg/core/logger"
	"github.com/eduboost/eventpipe/pkg/core/worker"
	"github.com/eduboost/eventpipe/pkg/httpserver"
	"github.com/eduboost/eventpipe/pkg/kafka"
	"github.com/eduboost/eventpipe/pkg/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:     "leaderboard",
		Short:   "EduBoost leaderboard consumer service",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			newApp(configFile).Run()
			return nil
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "path to YAML config file")

	return cmd
}

func newApp(configFile string) *fx.App {
	var configOpts []config.Option
	if configFile != "" {
		configOpts = append(configOpts, config.WithConfigPath(configFile))
	}

	return fx.New(
		logger.Module(),
		config.Module(configOpts...),
		health.Module(),
		kafka.ConfigModule(),
		postgres.Module(),
		// The cold cache is populated during the service module's
		// startup hook, before the listener binds.
		leaderboard.Module(),
		kafka.ConsumerModule(),
		httpserver.Module(3003),
		worker.Module(),
	)
}
