package commands

import (
	"context"
	"errors"
	"fmt"
	"respimg/internal/core/domain"
	"respimg/internal/core/port"
	"respimg/internal/core/service"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const parityUsage = "usage: /parity <url> [width [height]] [alt...]"

var errNotRemote = errors.New("only http(s) URLs can be compared")

// ParityHandler renders a remote image once as a static import and once as a plain path reference and
// reports where the two renders differ.
type ParityHandler struct {
	prober      port.ImageProber
	renderer    port.ImageRenderer
	textSender  port.TextSender
	granularity service.ParityGranularity
	command     string
}

func NewParityHandler(prober port.ImageProber, renderer port.ImageRenderer, textSender port.TextSender,
	granularity service.ParityGranularity, command string) *ParityHandler {
	return &ParityHandler{prober: prober, renderer: renderer, textSender: textSender, granularity: granularity,
		command: command}
}

func (h *ParityHandler) GetCommand() string {
	return h.command
}

func (h *ParityHandler) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
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
	if err == nil && !isRemote(args.source) {
		err = errNotRemote
	}
	if err != nil {
		_ = h.textSender.NotifyAndReturnError(ctx, fmt.Errorf("%w\n%s\n%s", err, parityUsage, flagUsage), message)
		return nil
	}

	asset, err := h.prober.Probe(ctx, args.source)
	if isUserError(err) {
		_ = h.textSender.NotifyAndReturnError(ctx, err, message)
		return nil
	}
	if err != nil {
		return h.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to probe image: %w", err), message)
	}

	imported, err := h.renderer.Render(asset, args.request)
	if isUserError(err) {
		_ = h.textSender.NotifyAndReturnError(ctx, err, message)
		return nil
	}
	if err != nil {
		return h.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to render import: %w", err), message)
	}

	var diffs []string

	referenced, err := h.renderer.Render(domain.PathReference(args.source), args.request)
	switch {
	case isUserError(err):
		diffs = []string{fmt.Sprintf("path reference does not render: %v", err)}
	case err != nil:
		return h.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to render path reference: %w", err),
			message)
	default:
		diffs = service.CompareRenders(imported, referenced, h.granularity)
	}

	l.Debug().Int("differences", len(diffs)).Str("granularity", string(h.granularity)).Msg("compared renders")

	_, err = h.textSender.SendMessageReply(ctx, message, parityReport(h.granularity, diffs))
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func parityReport(granularity service.ParityGranularity, diffs []string) string {
	if len(diffs) == 0 {
		return fmt.Sprintf("Import and path reference render identically (%s).", granularity)
	}

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Import and path reference differ (%s):\n", granularity)
	for _, diff := range diffs {
		fmt.Fprintf(sb, "- %s\n", diff)
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
