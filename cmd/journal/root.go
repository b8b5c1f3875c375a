package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/journal/internal/config"
	"github.com/sandevgo/journal/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "A conversational journal that remembers",
	Long: `Journal stores every chat turn, recalls related past turns as memories
and gives them to a language model when it answers.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
