package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yhkl-dev/soniferous/logger"
	"github.com/yhkl-dev/soniferous/player"
	"github.com/yhkl-dev/soniferous/ui"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "soniferous",
		Short:         "soniferous is a terminal client for a soniferous music server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayer(cmd.Context(), opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default searches $HOME/.config/soniferous, $HOME/.config and .)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newSongsCmd(opts),
		newAlbumsCmd(opts),
		newArtistsCmd(opts),
		newSearchCmd(opts),
		newURLCmd(opts),
		newPingCmd(opts),
	)
	return rootCmd
}

// Execute executes the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// runPlayer starts the TUI. Logs go to the rotated file only.
func runPlayer(ctx context.Context, opts *rootOptions) error {
	env, err := setup(ctx, opts, nil)
	if err != nil {
		return err
	}
	defer env.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	output, err := player.New(ctx, env.cfg.Player.Backend,
		player.NewStreamClient(env.cfg.Player.GetHTTPTimeout()))
	if err != nil {
		logger.Error("failed to create audio output", logger.String("backend", env.cfg.Player.Backend), logger.ErrorField(err))
		return fmt.Errorf("failed to create audio output: %w", err)
	}

	defer output.Close()

	app := ui.NewApp(ctx, env.cfg, env.catalog, output)
	go func() {
		<-ctx.Done()
		app.Stop()
	}()

	err = app.Run()
	logger.Info("shutting down")
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
