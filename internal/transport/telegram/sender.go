package telegram

import (
	"context"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/journal/pkg/conv"
	"github.com/sandevgo/journal/pkg/log"
)

type sender interface {
	Send(what interface{}, opts ...interface{}) error
}

// sendMarkdown converts markdown to Telegram HTML and sends it in chunks.
func sendMarkdown(ctx context.Context, to sender, md string) error {
	logger := log.FromCtx(ctx)

	for i, chunk := range conv.ReplyToTelegram(md) {
		if err := to.Send(chunk, tele.ModeHTML); err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}
