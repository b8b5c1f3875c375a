package core

import "context"

type SessionRepository interface {
	// CreateSession is a no-op when the session already exists. A nil name
	// yields a timestamp placeholder and leaves the session unnamed.
	CreateSession(ctx context.Context, id string, name *string) error
	GetAllSessions(ctx context.Context) ([]Session, error)
	RenameSession(ctx context.Context, id, name string) (bool, error)
	// AutoNameSession renames only sessions that were never named.
	AutoNameSession(ctx context.Context, id, name string) (bool, error)
	GetSessionName(ctx context.Context, id string) (string, bool, error)
}

type MessagesRepository interface {
	AddMessage(ctx context.Context, sessionID, role, content string) (int64, error)
	GetHistory(ctx context.Context, sessionID string) ([]StoredMessage, error)
	CountMessages(ctx context.Context, sessionID string) (int, error)
}
