// The notifier service consumes every event topic under its own
// consumer group and dispatches user-facing notifications.
package main

import (
	"fmt"
	"os"

	"github.com/eduboost/eventpipe/internal/notifier"
	"github.com/eduboost/eventpipe/pkg/core/config"
	"github.com/eduboost/eventpipe/pkg/core/health"
	"github.com/eduboost/eventpipe/pkg/core/logger"
	"github.com/eduboost/eventpipe/pkg/kafka"
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
		Use:     "notifier",
		Short:   "EduBoost notification consumer service",
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
		notifier.Module(),
		kafka.ConsumerModule(),
	)
}
