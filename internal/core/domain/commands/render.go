package commands

import (
	"context"
	"errors"
	"fmt"
	"respimg/internal/core/domain"
	"respimg/internal/core/port"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const renderUsage = "usage: /render <path> [width [height]] [alt...]"

// RenderHandler renders a path reference, which carries no intrinsic metadata, so width and height
// must be given.
type RenderHandler struct {
	renderer   port.ImageRenderer
	emitter    port.MarkupEmitter
	textSender port.TextSender
	command    string
}

func NewRenderHandler(renderer port.ImageRenderer, emitter port.MarkupEmitter, textSender port.TextSender,
	command string) *RenderHandler {
	return &RenderHandler{renderer: renderer, emitter: emitter, textSender: textSender, command: command}
}

func (h *RenderHandler) GetCommand() string {
	return h.command
}

func (h *RenderHandler) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.Ctx(ctx).With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("username", message.Username).
		Str("command", h.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	go h.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	args, err := parseRenderArgs(message.Text, true)
	if err != nil {
		_ = h.textSender.NotifyAndReturnError(ctx, fmt.Errorf("%w\n%s\n%s", err, renderUsage, flagUsage), message)
		return nil
	}

	descriptor, err := h.renderer.Render(domain.PathReference(args.source), args.request)
	if isUserError(err) {
		_ = h.textSender.NotifyAndReturnError(ctx, err, message)
		return nil
	}
	if err != nil {
		return h.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to render image: %w", err), message)
	}

	return replyWithMarkup(ctx, l, h.emitter, h.textSender, message, descriptor)
}

// replyWithMarkup emits the descriptor and sends it as the reply to message.
func replyWithMarkup(ctx context.Context, l zerolog.Logger, emitter port.MarkupEmitter, textSender port.TextSender,
	message *domain.Message, descriptor domain.RenderDescriptor) error {
	markup, err := emitter.Emit(descriptor)
	if err != nil {
		return textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to emit markup: %w", err), message)
	}

	_, err = textSender.SendMarkupReply(ctx, message, markup)
	if err != nil {
		return fmt.Errorf("failed to send markup: %w", err)
	}

	l.Debug().
		Str("src", descriptor.PrimarySrc).
		Int("candidates", len(descriptor.SourceSet)).
		Msg("sent markup")

	return nil
}

// isUserError reports whether err was caused by the request rather than by a failing dependency.
func isUserError(err error) bool {
	return errors.Is(err, domain.ErrInvalidAssetPath) ||
		errors.Is(err, domain.ErrInvalidAssetMetadata) ||
		errors.Is(err, domain.ErrMissingDimensions) ||
		errors.Is(err, domain.ErrInvalidDisplaySize)
}
