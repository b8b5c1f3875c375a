package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sandevgo/journal/internal/core"
	"github.com/sandevgo/journal/internal/service/journal"
	"github.com/sandevgo/journal/pkg/log"
)

const maxRequestBodySize = 1 << 20

// Journal is the part of the journal service exposed over HTTP.
type Journal interface {
	SubmitTurn(ctx context.Context, req journal.TurnRequest) (journal.TurnResult, error)
	RecallPreview(ctx context.Context, query, sessionID string) ([]string, error)
	CreateSession(ctx context.Context, name *string) (core.Session, error)
	AddMessage(ctx context.Context, sessionID, role, content string) (core.StoredMessage, error)
	History(ctx context.Context, sessionID string) ([]core.StoredMessage, error)
	Sessions(ctx context.Context) ([]core.Session, error)
	RenameSession(ctx context.Context, sessionID, name string) error
	SessionName(ctx context.Context, sessionID string) (string, error)
}

type Server struct {
	addr   string
	server *http.Server
}

func NewServer(addr string, j Journal) *Server {
	return &Server{
		addr: addr,
		server: &http.Server{
			Addr:              addr,
			Handler:           NewHandler(j).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	s.server.BaseContext = func(net.Listener) context.Context { return ctx }

	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("starting http server")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("shutting down http server")
	return s.server.Shutdown(ctx)
}

type Handler struct {
	journal Journal
}

func NewHandler(j Journal) *Handler {
	return &Handler{journal: j}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/healthz", h.health)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Get("/", h.listSessions)
		r.Patch("/{sessionID}", h.renameSession)
		r.Get("/{sessionID}/history", h.history)
	})

	r.Post("/messages", h.addMessage)
	r.Post("/chat", h.chat)
	r.Get("/debug/recall", h.recall)

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := log.FromCtx(r.Context()).With().
			Str("request_id", middleware.GetReqID(r.Context())).
			Logger()
		r = r.WithContext(logger.WithContext(r.Context()))

		next.ServeHTTP(ww, r)

		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}
