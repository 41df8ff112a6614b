package commands

import (
	"context"
	"fmt"
	"respimg/internal/core/domain"
	"respimg/internal/core/port"
	"respimg/internal/core/service"
	"time"

	"github.com/rs/zerolog/log"
)

const altUsage = "usage: /alt <url>, or reply to a photo"

type AltHandler struct {
	generator  port.AltTextGenerator
	tracker    service.Tracker
	textSender port.TextSender
	command    string
}

func NewAltHandler(generator port.AltTextGenerator, tracker service.Tracker, textSender port.TextSender,
	command string) *AltHandler {
	return &AltHandler{generator: generator, tracker: tracker, textSender: textSender, command: command}
}

func (h *AltHandler) GetCommand() string {
	return h.command
}

func (h *AltHandler) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.Ctx(ctx).With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("username", message.Username).
		Str("command", h.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	source := message.ImageURL
	if fields := domain.ParseCommandFields(message.Text); len(fields) > 0 {
		source = fields[0]
	}

	if !isRemote(source) {
		_ = h.textSender.NotifyAndReturnError(ctx, fmt.Errorf("%w\n%s", errMissingSource, altUsage), message)
		return nil
	}

	if !h.tracker.CheckLimit(ctx, message) {
		l.Info().Err(domain.ErrQuotaExceeded).Msg("not generating alt text")
		return nil
	}

	go h.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	alt, err := h.generator.GenerateAltText(ctx, source)
	if err != nil {
		return h.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to generate alt text: %w", err), message)
	}

	h.tracker.AddUsage(message.ChatID)

	_, err = h.textSender.SendMessageReply(ctx, message, alt)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
