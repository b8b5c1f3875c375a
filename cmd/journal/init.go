package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/journal/internal/config"
	"github.com/sandevgo/journal/pkg/env"
	"github.com/sandevgo/journal/pkg/log"
)

var (
	initForce bool
	initCfg   config.AppConfig
	initTgCfg config.TelegramConfig
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a .env file into the runtime directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		initCfg.RuntimePath = config.GetRuntimePath()
		envPath := initCfg.GetEnvPath()

		if _, err := os.Stat(envPath); err == nil && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", envPath)
		}

		if err := os.MkdirAll(initCfg.GetRuntimePath(), 0755); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}

		// The runtime path is derived from the environment, not stored.
		out := initCfg
		out.RuntimePath = ""

		content, err := env.MarshalEnv(&out)
		if err != nil {
			return err
		}

		// Zero values are skipped by MarshalEnv, but false differs from the default here.
		if !out.VectorPersist {
			content += "VECTOR_PERSIST=false\n"
		}

		if out.EnableTelegram {
			tg, err := env.MarshalEnv(&initTgCfg)
			if err != nil {
				return err
			}
			content += tg
		}

		if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", envPath, err)
		}

		logger.Info().Str("path", envPath).Msg("configuration written")
		return nil
	},
}

func init() {
	f := initCmd.Flags()
	f.BoolVar(&initForce, "force", false, "overwrite an existing .env")
	f.StringVar(&initCfg.HTTPAddr, "http-addr", ":8000", "HTTP listen address")
	f.StringVar(&initCfg.LLMProvider, "llm-provider", "ollama", "chat provider: ollama, openai or anthropic")
	f.StringVar(&initCfg.LLMModel, "llm-model", "llama3.1", "chat model id")
	f.StringVar(&initCfg.EmbeddingProvider, "embedding-provider", "ollama", "embedding provider: ollama or openai")
	f.StringVar(&initCfg.EmbeddingModel, "embedding-model", "all-minilm", "embedding model id")
	f.StringVar(&initCfg.OllamaBaseURL, "ollama-url", "http://localhost:11434", "Ollama base URL")
	f.StringVar(&initCfg.OpenAIAPIKey, "openai-key", "", "OpenAI API key")
	f.StringVar(&initCfg.OpenAIBaseURL, "openai-url", "", "OpenAI-compatible base URL")
	f.StringVar(&initCfg.AnthropicAPIKey, "anthropic-key", "", "Anthropic API key")
	f.IntVar(&initCfg.RecallK, "recall-k", 5, "memories recalled per turn")
	f.IntVar(&initCfg.MinMemoryLength, "min-memory-length", 20, "memories this many characters long or shorter are never recalled")
	f.BoolVar(&initCfg.VectorPersist, "vector-persist", true, "persist the memory index to disk")
	f.BoolVar(&initCfg.EnableTelegram, "telegram", false, "enable the Telegram transport")
	f.StringVar(&initTgCfg.Token, "telegram-token", "", "Telegram bot token")
	f.Int64Var(&initTgCfg.OwnerID, "telegram-owner", 0, "Telegram user id allowed to talk to the bot")
	rootCmd.AddCommand(initCmd)
}
