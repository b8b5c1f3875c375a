package command

import "context"

// Journal is what the commands need from the journal service.
type Journal interface {
	RecallPreview(ctx context.Context, query, sessionID string) ([]string, error)
	RenameSession(ctx context.Context, sessionID, name string) error
	SessionName(ctx context.Context, sessionID string) (string, error)
}

func NewCommands(j Journal) []Command {
	return []Command{
		NewRecallCommand(j),
		NewRenameCommand(j),
		NewNameCommand(j),
	}
}
