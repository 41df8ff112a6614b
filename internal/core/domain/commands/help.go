package commands

import (
	"context"
	"fmt"
	"respimg/internal/core/domain"
	"respimg/internal/core/port"
	"strings"
	"time"
)

type HelpHandler struct {
	registry   port.CommandRegistry
	textSender port.TextSender
	command    string
}

func NewHelpHandler(registry port.CommandRegistry, textSender port.TextSender, command string) *HelpHandler {
	return &HelpHandler{registry: registry, textSender: textSender, command: command}
}

func (h *HelpHandler) GetCommand() string {
	return h.command
}

func (h *HelpHandler) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	sb := &strings.Builder{}

	sb.WriteString("respimg turns image references into responsive <img> markup. Available commands:\n\n")

	for _, command := range h.registry.ListCommands() {
		fmt.Fprintf(sb, "%s\n", command)
	}

	sb.WriteString("\n" + flagUsage)

	_, err := h.textSender.SendMessageReply(ctx, message, sb.String())
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
