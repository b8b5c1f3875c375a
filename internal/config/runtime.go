package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/journal/pkg/log"
)

// DefaultRuntimeDir is resolved against the home directory.
const DefaultRuntimeDir = ".journal"

// GetRuntimePath returns JOURNAL_RUNTIME_PATH, or ~/.journal when unset.
// Relative paths are taken from the home directory.
func GetRuntimePath() string {
	dir := os.Getenv("JOURNAL_RUNTIME_PATH")
	if dir == "" {
		dir = DefaultRuntimeDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dir
	}
	return filepath.Join(home, dir)
}

func IsDebug() bool {
	switch os.Getenv("JOURNAL_DEBUG") {
	case "1", "true":
		return true
	}
	return false
}

type TelegramConfig struct {
	Token   string `env:"TELEGRAM_TOKEN,required,notEmpty"`
	OwnerID int64  `env:"TELEGRAM_OWNER_ID,required"`
}

func ParseTelegramConfig() (*TelegramConfig, error) {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if c.OwnerID <= 0 {
		return nil, fmt.Errorf("TELEGRAM_OWNER_ID must be a positive user id, got %d", c.OwnerID)
	}
	return c, nil
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c, err := ParseTelegramConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}
