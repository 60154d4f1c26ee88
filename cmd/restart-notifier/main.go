package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skillcoder/restart-notifier/internal/app"
	"github.com/skillcoder/restart-notifier/internal/config"
	"github.com/skillcoder/restart-notifier/internal/infra/appstate"
	"github.com/skillcoder/restart-notifier/internal/infra/logging"
	"github.com/skillcoder/restart-notifier/internal/infra/pinger"
	"github.com/skillcoder/restart-notifier/internal/infra/shutdown"
	"github.com/skillcoder/restart-notifier/internal/logic/routing"
)

func main() {
	appStart := time.Now()
	// Start listening for signals immediately as first thing, before any other initialization
	signals := shutdown.Notify()
	ctx := context.Background()

	err := newRootCommand(signals, appStart).ExecuteContext(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to run", "reason", err)
		// Give the logger some time to flush
		time.Sleep(1 * time.Second)
		os.Exit(1)
	}
}

func newRootCommand(signals <-chan os.Signal, appStart time.Time) *cobra.Command {
	root := &cobra.Command{
		Use:           "restart-notifier",
		Short:         "Post a Slack alert for every container restart in the cluster",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), signals, appStart)
		},
	}

	root.AddCommand(newRouteCommand())

	return root
}

func run(ctx context.Context, signals <-chan os.Signal, appStart time.Time) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	pingers := pinger.New(logger, cfg.PingerInterval)
	appState := appstate.New(logger, appStart, shutdown.DefaultTerminationFile, signals, pingers)

	application, err := app.New(logger, cfg, appState)
	if err != nil {
		return fmt.Errorf("new application: %w", err)
	}

	err = application.Run(ctx)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "bye")

	return nil
}

// newRouteCommand resolves the channel for one container, to check a routing config offline.
func newRouteCommand() *cobra.Command {
	var rules string

	cmd := &cobra.Command{
		Use:   "route NAMESPACE POD CONTAINER",
		Short: "Print the Slack channel a container restart is routed to",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rules == "" {
				rules = config.NotificationConfigFromEnv()
			}

			router, err := routing.Parse(rules)
			if err != nil {
				return fmt.Errorf("parse notification config: %w", err)
			}

			channel, ok := router.Resolve(args[0], args[1], args[2])
			if !ok {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "(not notified)")

				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), channel)

			return err
		},
	}

	cmd.Flags().StringVar(&rules, "rules", "", "routing rules; defaults to the notification config env")

	return cmd
}
