package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect and rename journal sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		app, err := NewApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close(ctx)

		sessions, err := app.journal.Sessions(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMESSAGES\tCREATED")
		for _, s := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Name, s.MessageCount, s.CreatedAt.Local().Format(time.DateTime))
		}
		return w.Flush()
	},
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename [session id] [name]",
	Short: "Rename a session",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		app, err := NewApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close(ctx)

		name := strings.Join(args[1:], " ")
		if err := app.journal.RenameSession(ctx, args[0], name); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s renamed to %q\n", args[0], name)
		return nil
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd, sessionsRenameCmd)
	rootCmd.AddCommand(sessionsCmd)
}
