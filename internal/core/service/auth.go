package service

import (
	"context"
	"errors"
	"fmt"
	"respimg/internal/core/domain"
	"respimg/internal/core/port"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Authorizer interface {
	IsAuthorized(ctx context.Context, message *domain.Message) bool
}

// ChatAuthorizer admits chats listed in telegram.allowed_chat_ids and tells everyone else whom to ask.
type ChatAuthorizer struct {
	allowlist []int64
	admin     string
	sender    port.TextSender
}

func NewAuthorizer(sender port.TextSender) (*ChatAuthorizer, error) {
	var list []int64

	err := viper.UnmarshalKey("telegram.allowed_chat_ids", &list)
	if err != nil {
		return nil, errors.New("failed to load allowed chat IDs")
	}

	return &ChatAuthorizer{
		allowlist: list,
		admin:     viper.GetString("telegram.admin_username"),
		sender:    sender,
	}, nil
}

const forbidden = "This chat may not render images. Ask @%s to allow chat ID %d."

func (a *ChatAuthorizer) IsAuthorized(ctx context.Context, message *domain.Message) bool {
	if slices.Contains(a.allowlist, message.ChatID) {
		return true
	}

	log.Info().Int64("chatId", message.ChatID).Msg("rejecting unauthorized chat")

	_, err := a.sender.SendMessageReply(ctx, message, fmt.Sprintf(forbidden, a.admin, message.ChatID))
	if err != nil {
		log.Err(err).Msg("failed to send unauthorized warning")
	}

	return false
}
