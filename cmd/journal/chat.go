package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/journal/internal/transport/cli"
)

var chatSessionID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the journal in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		app, err := NewApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close(ctx)

		if err := app.WaitReady(ctx); err != nil {
			return err
		}

		rl, err := cli.NewReadLine(app.journal, app.router, app.cfg, chatSessionID)
		if err != nil {
			return err
		}
		defer rl.Shutdown(ctx)

		if err := rl.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatSessionID, "session", "s", cli.DefaultSessionID, "session id to chat in")
	rootCmd.AddCommand(chatCmd)
}
