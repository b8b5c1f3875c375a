package command

import (
	"context"
	"fmt"
	"strings"
)

type RenameCommand struct {
	journal   Journal
	formatter *ResponseFormatter
}

func NewRenameCommand(j Journal) *RenameCommand {
	return &RenameCommand{
		journal:   j,
		formatter: NewResponseFormatter(),
	}
}

func (c *RenameCommand) Name() string {
	return "rename"
}

func (c *RenameCommand) Description() string {
	return "Rename the current session"
}

func (c *RenameCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Usage("/rename [name]"), nil
	}

	name := strings.Join(args, " ")
	if err := c.journal.RenameSession(ctx, sessionID, name); err != nil {
		return "", fmt.Errorf("failed to rename session: %w", err)
	}

	return c.formatter.Success(fmt.Sprintf("Session renamed to: `%s`", name)), nil
}

type NameCommand struct {
	journal   Journal
	formatter *ResponseFormatter
}

func NewNameCommand(j Journal) *NameCommand {
	return &NameCommand{
		journal:   j,
		formatter: NewResponseFormatter(),
	}
}

func (c *NameCommand) Name() string {
	return "name"
}

func (c *NameCommand) Description() string {
	return "Show the current session"
}

func (c *NameCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	name, err := c.journal.SessionName(ctx, sessionID)
	if err != nil {
		return "", err
	}

	return c.formatter.Combine(
		c.formatter.Info("Current Session"),
		c.formatter.Label("ID", sessionID),
		c.formatter.Label("Name", name),
	), nil
}
