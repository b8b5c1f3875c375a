package telegram

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/journal/internal/config"
	"github.com/sandevgo/journal/internal/core"
	"github.com/sandevgo/journal/internal/service/journal"
	"github.com/sandevgo/journal/pkg/log"
)

const baseContextKey = "base_context"

type Journal interface {
	SubmitTurn(ctx context.Context, req journal.TurnRequest) (journal.TurnResult, error)
}

type CommandRouter interface {
	Execute(ctx context.Context, sessionID, input string) (string, bool)
}

type Bot struct {
	bot     *tele.Bot
	journal Journal
	router  CommandRouter
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	j Journal,
	router CommandRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		journal: j,
		router:  router,
		ownerID: cfg.OwnerID,
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Only the owner may write to the journal.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().ID != bot.ownerID {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func SessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx, ok := c.Get(baseContextKey).(context.Context)
	if !ok {
		ctx = context.Background()
	}
	sessionID := SessionID(c.Chat().ID)
	logger := log.FromCtx(ctx).With().Str("session_id", sessionID).Logger()
	ctx = logger.WithContext(ctx)

	_ = c.Notify(tele.Typing)

	reply, err := b.reply(ctx, sessionID, c.Text())
	if err != nil {
		logger.Error().Err(err).Msg("chat turn failed")
		return c.Send(fmt.Sprintf("error: %v", err))
	}

	return sendMarkdown(ctx, c, reply)
}

func (b *Bot) reply(ctx context.Context, sessionID, text string) (string, error) {
	if b.router != nil {
		if out, ok := b.router.Execute(ctx, sessionID, text); ok {
			return out, nil
		}
	}

	res, err := b.journal.SubmitTurn(ctx, journal.TurnRequest{
		SessionID: sessionID,
		Role:      core.RoleUser,
		Content:   text,
	})
	if err != nil {
		return "", err
	}
	return res.Reply, nil
}
