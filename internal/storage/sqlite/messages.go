package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/journal/internal/core"
	"github.com/sandevgo/journal/pkg/log"
)

type MessagesRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db, now: time.Now}
}

func (h *MessagesRepo) AddMessage(ctx context.Context, sessionID, role, content string) (int64, error) {
	query := `INSERT INTO messages (session_id, role, content, created_at) VALUES (?, ?, ?, ?)`
	res, err := h.db.ExecContext(ctx, query, sessionID, role, content, h.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read message id: %w", err)
	}
	return id, nil
}

func (h *MessagesRepo) GetHistory(ctx context.Context, sessionID string) ([]core.StoredMessage, error) {
	query := `
		SELECT id, session_id, role, content, created_at
		FROM messages
		WHERE session_id = ?
		ORDER BY created_at ASC, id ASC`

	rows, err := h.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]core.StoredMessage, 0)
	for rows.Next() {
		var m core.StoredMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Str("session_id", sessionID).Int("count", len(messages)).Msg("loaded history messages")
	return messages, nil
}

func (h *MessagesRepo) CountMessages(ctx context.Context, sessionID string) (int, error) {
	var n int
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE session_id = ?`, sessionID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return n, nil
}
