package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/journal/internal/core"
)

// placeholderLayout renders as "Chat - Jan 02, 03:04 PM".
const placeholderLayout = "Jan 02, 03:04 PM"

type SessionsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db, now: time.Now}
}

func PlaceholderName(t time.Time) string {
	return "Chat - " + t.Format(placeholderLayout)
}

func (r *SessionsRepo) CreateSession(ctx context.Context, id string, name *string) error {
	now := r.now()

	sessionName := PlaceholderName(now)
	named := false
	if name != nil {
		sessionName = *name
		named = true
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (session_id, session_name, named, created_at) VALUES (?, ?, ?, ?)`,
		id, sessionName, named, now.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *SessionsRepo) GetAllSessions(ctx context.Context) ([]core.Session, error) {
	query := `
		SELECT
			s.session_id, s.session_name, s.named, s.created_at,
			(SELECT COUNT(*) FROM messages m WHERE m.session_id = s.session_id)
		FROM sessions s
		ORDER BY s.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]core.Session, 0)
	for rows.Next() {
		var s core.Session
		if err := rows.Scan(&s.ID, &s.Name, &s.Named, &s.CreatedAt, &s.MessageCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

func (r *SessionsRepo) RenameSession(ctx context.Context, id, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET session_name = ?, named = 1 WHERE session_id = ?`,
		name, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to rename session: %w", err)
	}
	return affected(res)
}

func (r *SessionsRepo) AutoNameSession(ctx context.Context, id, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET session_name = ?, named = 1 WHERE session_id = ? AND named = 0`,
		name, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to auto-name session: %w", err)
	}
	return affected(res)
}

func (r *SessionsRepo) GetSessionName(ctx context.Context, id string) (string, bool, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `SELECT session_name FROM sessions WHERE session_id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session name: %w", err)
	}
	return name, true, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
