package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sandevgo/journal/internal/config"
	"github.com/sandevgo/journal/internal/core"
	"github.com/sandevgo/journal/internal/service/journal"
	"github.com/sandevgo/journal/pkg/log"
)

const DefaultSessionID = "cli-local"

type Journal interface {
	SubmitTurn(ctx context.Context, req journal.TurnRequest) (journal.TurnResult, error)
}

type CommandRouter interface {
	Execute(ctx context.Context, sessionID, input string) (string, bool)
}

type ReadLine struct {
	journal   Journal
	router    CommandRouter
	sessionID string
	rl        *readline.Instance
}

func NewReadLine(j Journal, router CommandRouter, cfg *config.AppConfig, sessionID string) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "journal> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		journal:   j,
		router:    router,
		sessionID: sessionID,
		rl:        rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("session_id", r.sessionID).Msg("journal chat started. Type 'exit' to quit.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		out, err := r.handleLine(ctx, line)
		if err != nil {
			logger.Error().Err(err).Msg("chat turn failed")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(r.rl.Stdout(), "%s\n", out)
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

// handleLine runs a slash command or submits line as a user turn.
func (r *ReadLine) handleLine(ctx context.Context, line string) (string, error) {
	if r.router != nil {
		if out, ok := r.router.Execute(ctx, r.sessionID, line); ok {
			return strings.TrimRight(out, "\n"), nil
		}
	}

	res, err := r.journal.SubmitTurn(ctx, journal.TurnRequest{
		SessionID: r.sessionID,
		Role:      core.RoleUser,
		Content:   line,
	})
	if err != nil {
		return "", err
	}
	return res.Reply, nil
}
