package command

import (
	"context"
	"fmt"
	"strings"
)

type RecallCommand struct {
	journal   Journal
	formatter *ResponseFormatter
}

func NewRecallCommand(j Journal) *RecallCommand {
	return &RecallCommand{
		journal:   j,
		formatter: NewResponseFormatter(),
	}
}

func (c *RecallCommand) Name() string {
	return "recall"
}

func (c *RecallCommand) Description() string {
	return "Show what the journal remembers about a query"
}

func (c *RecallCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Usage("/recall [query]"),
			c.formatter.Examples([]string{"/recall favorite color"}),
		), nil
	}

	memories, err := c.journal.RecallPreview(ctx, strings.Join(args, " "), sessionID)
	if err != nil {
		return "", fmt.Errorf("recall failed: %w", err)
	}

	if len(memories) == 0 {
		return c.formatter.Info("No memories found"), nil
	}

	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("%d memories", len(memories))),
		c.formatter.List(memories),
	), nil
}
