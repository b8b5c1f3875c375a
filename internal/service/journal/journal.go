package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sandevgo/journal/internal/core"
	"github.com/sandevgo/journal/internal/service/memory"
	"github.com/sandevgo/journal/pkg/log"
)

type Rememberer interface {
	Remember(ctx context.Context, msg core.StoredMessage) error
}

type Recaller interface {
	Recall(ctx context.Context, query, sessionID string, k int) ([]string, error)
}

type TurnRequest struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
}

type TurnResult struct {
	Reply string `json:"reply"`
}

// Journal runs chat turns and owns the session operations around them.
type Journal struct {
	sessions  core.SessionRepository
	messages  core.MessagesRepository
	memory    Rememberer
	recaller  Recaller
	generator *Generator
	recallK   int
}

func NewJournal(
	sessions core.SessionRepository,
	messages core.MessagesRepository,
	rememberer Rememberer,
	recaller Recaller,
	generator *Generator,
	recallK int,
) *Journal {
	if recallK <= 0 {
		recallK = memory.DefaultRecallK
	}
	return &Journal{
		sessions:  sessions,
		messages:  messages,
		memory:    rememberer,
		recaller:  recaller,
		generator: generator,
		recallK:   recallK,
	}
}

// SubmitTurn stores the incoming message, answers it with recalled memories
// in the prompt and stores the answer. A failing step aborts the turn;
// earlier writes stay.
func (j *Journal) SubmitTurn(ctx context.Context, req TurnRequest) (TurnResult, error) {
	if err := validateMessage(req.SessionID, req.Role, req.Content); err != nil {
		return TurnResult{}, err
	}

	logger := log.FromCtx(ctx).With().Str("session_id", req.SessionID).Logger()
	ctx = logger.WithContext(ctx)

	if _, err := j.store(ctx, req.SessionID, req.Role, req.Content); err != nil {
		return TurnResult{}, err
	}

	stored, err := j.messages.GetHistory(ctx, req.SessionID)
	if err != nil {
		return TurnResult{}, fmt.Errorf("failed to fetch history: %w", err)
	}
	history := make([]core.Message, len(stored))
	for i, m := range stored {
		history[i] = m.AsMessage()
	}

	memories, err := j.recaller.Recall(ctx, req.Content, req.SessionID, j.recallK)
	if err != nil {
		return TurnResult{}, fmt.Errorf("failed to recall memories: %w", err)
	}

	prompt := memory.Compose(history, memories)
	if logger.GetLevel() <= zerolog.DebugLevel && zerolog.GlobalLevel() <= zerolog.DebugLevel {
		if n, ok := memory.CountTokens(prompt); ok {
			logger.Debug().
				Int("messages", len(prompt)).
				Int("memories", len(memories)).
				Int("tokens", n).
				Msg("prompt composed")
		}
	}

	reply, err := j.generator.Generate(ctx, prompt)
	if err != nil {
		return TurnResult{}, fmt.Errorf("failed to generate reply: %w", err)
	}

	if _, err := j.store(ctx, req.SessionID, core.RoleAssistant, reply); err != nil {
		return TurnResult{}, err
	}

	return TurnResult{Reply: reply}, nil
}

// AddMessage stores and indexes a message without generating a reply.
func (j *Journal) AddMessage(ctx context.Context, sessionID, role, content string) (core.StoredMessage, error) {
	if err := validateMessage(sessionID, role, content); err != nil {
		return core.StoredMessage{}, err
	}
	return j.store(ctx, sessionID, role, content)
}

// RecallPreview returns what a turn with query would recall.
func (j *Journal) RecallPreview(ctx context.Context, query, sessionID string) ([]string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, core.Validationf("session_id is required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, core.Validationf("query is required")
	}

	memories, err := j.recaller.Recall(ctx, query, sessionID, j.recallK)
	if err != nil {
		return nil, fmt.Errorf("failed to recall memories: %w", err)
	}
	return memories, nil
}

// CreateSession starts a session with a fresh id. A nil name leaves the
// session open for auto-naming.
func (j *Journal) CreateSession(ctx context.Context, name *string) (core.Session, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		name = nil
	}

	id := uuid.NewString()
	if err := j.sessions.CreateSession(ctx, id, name); err != nil {
		return core.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	sessionName, _, err := j.sessions.GetSessionName(ctx, id)
	if err != nil {
		return core.Session{}, fmt.Errorf("failed to read session: %w", err)
	}

	log.FromCtx(ctx).Info().Str("session_id", id).Str("name", sessionName).Msg("session created")
	return core.Session{ID: id, Name: sessionName, Named: name != nil}, nil
}

func (j *Journal) Sessions(ctx context.Context) ([]core.Session, error) {
	sessions, err := j.sessions.GetAllSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

func (j *Journal) History(ctx context.Context, sessionID string) ([]core.StoredMessage, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, core.Validationf("session_id is required")
	}
	history, err := j.messages.GetHistory(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return history, nil
}

func (j *Journal) RenameSession(ctx context.Context, sessionID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.Validationf("session_name is required")
	}

	ok, err := j.sessions.RenameSession(ctx, sessionID, name)
	if err != nil {
		return fmt.Errorf("failed to rename session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, core.ErrNotFound)
	}
	return nil
}

func (j *Journal) SessionName(ctx context.Context, sessionID string) (string, error) {
	name, ok, err := j.sessions.GetSessionName(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to get session name: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("session %s: %w", sessionID, core.ErrNotFound)
	}
	return name, nil
}

// store persists one message, names the session after its first message
// and mirrors the message into the memory index.
func (j *Journal) store(ctx context.Context, sessionID, role, content string) (core.StoredMessage, error) {
	logger := log.FromCtx(ctx)

	if err := j.sessions.CreateSession(ctx, sessionID, nil); err != nil {
		return core.StoredMessage{}, fmt.Errorf("failed to ensure session: %w", err)
	}

	id, err := j.messages.AddMessage(ctx, sessionID, role, content)
	if err != nil {
		return core.StoredMessage{}, fmt.Errorf("failed to save %s message: %w", role, err)
	}
	msg := core.StoredMessage{ID: id, SessionID: sessionID, Role: role, Content: content, CreatedAt: time.Now().UTC()}

	if err := j.autoName(ctx, msg); err != nil {
		logger.Error().Err(err).Str("session_id", sessionID).Msg("session not named")
	}

	if err := j.memory.Remember(ctx, msg); err != nil {
		logger.Error().Err(err).Int64("msg_id", id).Msg("message stored but not indexed")
		return msg, fmt.Errorf("failed to remember message %d: %w", id, err)
	}

	return msg, nil
}

func (j *Journal) autoName(ctx context.Context, msg core.StoredMessage) error {
	count, err := j.messages.CountMessages(ctx, msg.SessionID)
	if err != nil {
		return fmt.Errorf("failed to count messages: %w", err)
	}
	if count != 1 {
		return nil
	}

	name := DeriveName(msg.Content)
	renamed, err := j.sessions.AutoNameSession(ctx, msg.SessionID, name)
	if err != nil {
		return fmt.Errorf("failed to name session: %w", err)
	}
	if renamed {
		log.FromCtx(ctx).Info().Str("name", name).Msg("session named from first message")
	}
	return nil
}

func validateMessage(sessionID, role, content string) error {
	if strings.TrimSpace(sessionID) == "" {
		return core.Validationf("session_id is required")
	}
	if !core.ValidRole(role) {
		return core.Validationf("role must be %q or %q, got %q", core.RoleUser, core.RoleAssistant, role)
	}
	if strings.TrimSpace(content) == "" {
		return core.Validationf("content is required")
	}
	return nil
}
