package log

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// MigrationLogger routes goose output through the context logger.
type MigrationLogger struct {
	logger zerolog.Logger
}

func NewGooseLoggerFromCtx(ctx context.Context) *MigrationLogger {
	return &MigrationLogger{
		logger: FromCtx(ctx).With().Str("component", "migrations").Logger(),
	}
}

func (m *MigrationLogger) Printf(format string, v ...any) {
	m.logger.Debug().Msgf(strings.TrimSuffix(format, "\n"), v...)
}

func (m *MigrationLogger) Fatalf(format string, v ...any) {
	m.logger.Fatal().Msgf(strings.TrimSuffix(format, "\n"), v...)
}
