package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sandevgo/journal/internal/core"
	"github.com/sandevgo/journal/internal/service/journal"
	"github.com/sandevgo/journal/pkg/log"
)

type sessionRequest struct {
	SessionName *string `json:"session_name"`
}

type sessionResponse struct {
	SessionID   string `json:"session_id"`
	SessionName string `json:"session_name"`
}

type sessionsResponse struct {
	Sessions []core.Session `json:"sessions"`
}

type historyResponse struct {
	SessionID string               `json:"session_id"`
	Messages  []core.StoredMessage `json:"messages"`
}

type recallResponse struct {
	Memories []string `json:"memories"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	// The body is optional here.
	var req sessionRequest
	if err := decode(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, err)
		return
	}

	s, err := h.journal.CreateSession(r.Context(), req.SessionName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: s.ID, SessionName: s.Name})
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.journal.Sessions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if sessions == nil {
		sessions = []core.Session{}
	}
	writeJSON(w, http.StatusOK, sessionsResponse{Sessions: sessions})
}

func (h *Handler) renameSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var req sessionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.SessionName == nil {
		writeError(w, r, core.Validationf("session_name is required"))
		return
	}

	if err := h.journal.RenameSession(r.Context(), id, *req.SessionName); err != nil {
		writeError(w, r, err)
		return
	}

	name, err := h.journal.SessionName(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, SessionName: name})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	messages, err := h.journal.History(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if messages == nil {
		messages = []core.StoredMessage{}
	}
	writeJSON(w, http.StatusOK, historyResponse{SessionID: id, Messages: messages})
}

func (h *Handler) addMessage(w http.ResponseWriter, r *http.Request) {
	var req journal.TurnRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	msg, err := h.journal.AddMessage(r.Context(), req.SessionID, req.Role, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req journal.TurnRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.journal.SubmitTurn(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) recall(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	memories, err := h.journal.RecallPreview(r.Context(), q.Get("q"), q.Get("session_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if memories == nil {
		memories = []string{}
	}
	writeJSON(w, http.StatusOK, recallResponse{Memories: memories})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", core.ErrValidation, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case core.IsTransport(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	logger := log.FromCtx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("path", r.URL.Path).Msg("request rejected")
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}
