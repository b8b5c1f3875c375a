package command

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Command is a slash command available in chat transports.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}

type Router struct {
	commands  map[string]Command
	formatter *ResponseFormatter
}

func New(commands []Command) *Router {
	c := &Router{
		commands:  make(map[string]Command),
		formatter: NewResponseFormatter(),
	}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	return c
}

// Execute runs input as a command. The bool is false when input is not a
// command and should be treated as a chat turn.
func (c *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") || len(input) == 1 {
		return "", false
	}

	parts := strings.Fields(input)
	name := strings.TrimPrefix(parts[0], "/")
	args := parts[1:]

	if name == "help" {
		return c.help(), true
	}

	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s", name), true
	}

	result, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		return c.formatter.Error(err), true
	}
	return result, true
}

func (c *Router) ListCommands() []Command {
	res := make([]Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

func (c *Router) help() string {
	items := make([]string, 0, len(c.commands))
	for _, cmd := range c.ListCommands() {
		items = append(items, fmt.Sprintf("/%s  %s", cmd.Name(), cmd.Description()))
	}
	return c.formatter.Combine(
		c.formatter.Info("Commands"),
		c.formatter.List(items),
	)
}
