// The analytics service consumes every event topic under its own
// consumer group and aggregates per-type counters.
package main

import (
	"fmt"
	"os"

	"github.com/eduboost/eventpipe/internal/analytics"
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
		Use:     "analytics",
		Short:   "EduBoost analytics consumer service",
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
		analytics.Module(),
		kafka.ConsumerModule(),
		httpserver.Module(3002),
		worker.Module(),
	)
}
