package port

import (
	"context"
	"respimg/internal/core/domain"
)

type TextSender interface {
	// SendMessageReply sends a plain text reply to the specified message and returns the sent message ID.
	SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error)
	// SendMarkupReply sends a reply that is displayed as preformatted HTML source.
	SendMarkupReply(ctx context.Context, message *domain.Message, markup string) (int, error)
	// SendChatAction sends a specified chat action (e.g., typing, sending photo) to indicate activity in a given chat.
	SendChatAction(ctx context.Context, chatID int64, action domain.Action)
	// NotifyAndReturnError sends an error notification based on the provided message context and returns the error.
	NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error
}
