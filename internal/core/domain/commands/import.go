package commands

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"respimg/internal/core/domain"
	"respimg/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

const importUsage = "usage: /import [url] [width [height]] [alt...], or reply to a photo"

// ImportHandler probes a remote image for its intrinsic metadata and renders it as a static asset.
type ImportHandler struct {
	prober     port.ImageProber
	renderer   port.ImageRenderer
	emitter    port.MarkupEmitter
	textSender port.TextSender
	command    string
}

func NewImportHandler(prober port.ImageProber, renderer port.ImageRenderer, emitter port.MarkupEmitter,
	textSender port.TextSender, command string) *ImportHandler {
	return &ImportHandler{prober: prober, renderer: renderer, emitter: emitter, textSender: textSender,
		command: command}
}

func (h *ImportHandler) GetCommand() string {
	return h.command
}

func (h *ImportHandler) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
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

	args, err := parseRenderArgs(message.Text, false)
	if err != nil {
		_ = h.textSender.NotifyAndReturnError(ctx, fmt.Errorf("%w\n%s\n%s", err, importUsage, flagUsage), message)
		return nil
	}

	source := args.source
	if source == "" {
		source = message.ImageURL
	}

	if source == "" {
		_ = h.textSender.NotifyAndReturnError(ctx, fmt.Errorf("%w\n%s", errMissingSource, importUsage), message)
		return nil
	}

	asset, err := h.prober.Probe(ctx, source)
	if isUserError(err) {
		_ = h.textSender.NotifyAndReturnError(ctx, err, message)
		return nil
	}
	if err != nil {
		return h.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to probe image: %w", err), message)
	}

	l.Debug().Int("width", asset.Width).Int("height", asset.Height).Msg("probed image")

	// attachment links carry the bot token
	if args.source == "" {
		asset.Path = attachmentPath(source)
	}

	descriptor, err := h.renderer.Render(asset, args.request)
	if isUserError(err) {
		_ = h.textSender.NotifyAndReturnError(ctx, err, message)
		return nil
	}
	if err != nil {
		return h.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to render image: %w", err), message)
	}

	return replyWithMarkup(ctx, l, h.emitter, h.textSender, message, descriptor)
}

func attachmentPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "/attachment"
	}

	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return "/attachment"
	}

	return "/" + base
}
