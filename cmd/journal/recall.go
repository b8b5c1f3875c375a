package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandevgo/journal/internal/transport/cli"
)

var recallSessionID string

var recallCmd = &cobra.Command{
	Use:   "recall [query]",
	Short: "Show the memories a query would recall",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		app, err := NewApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close(ctx)

		memories, err := app.journal.RecallPreview(ctx, strings.Join(args, " "), recallSessionID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(memories) == 0 {
			fmt.Fprintln(out, "no memories")
			return nil
		}
		for _, m := range memories {
			fmt.Fprintf(out, "- %s\n", m)
		}
		return nil
	},
}

func init() {
	recallCmd.Flags().StringVarP(&recallSessionID, "session", "s", cli.DefaultSessionID, "session id to recall from")
	rootCmd.AddCommand(recallCmd)
}
