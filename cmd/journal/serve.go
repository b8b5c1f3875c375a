package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandevgo/journal/pkg/log"
	"github.com/sandevgo/journal/pkg/srv"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal over HTTP (and Telegram when enabled)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting journal")

		app, err := NewApp(ctx)
		if err != nil {
			return err
		}

		if err := app.WaitReady(ctx); err != nil {
			app.Close(ctx)
			return err
		}

		transports, err := app.Transports(ctx)
		if err != nil {
			app.Close(ctx)
			return err
		}
		services := append(app.services, transports...)

		srv.StartServices(ctx, services)

		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("journal has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
