package sender

import (
	"context"
	"errors"
	"fmt"
	"html"
	"respimg/internal/core/domain"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// TelegramMessageLimit is the maximum number of characters Telegram accepts per message.
const TelegramMessageLimit = 4096

const ChatActionRepeatSeconds = 5

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	return s.sendChunks(ctx, message, text, "", func(chunk string) string { return chunk })
}

// SendMarkupReply sends markup as escaped, preformatted HTML so it shows up as source.
func (s *Telegram) SendMarkupReply(ctx context.Context, message *domain.Message, markup string) (int, error) {
	return s.sendChunks(ctx, message, markup, models.ParseModeHTML, func(chunk string) string {
		return "<pre>" + html.EscapeString(chunk) + "</pre>"
	})
}

func (s *Telegram) sendChunks(ctx context.Context, message *domain.Message, text string, mode models.ParseMode,
	format func(string) string) (int, error) {
	var id int
	for _, chunk := range splitMessage(text, TelegramMessageLimit) {
		sent, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    message.ChatID,
			Text:      format(chunk),
			ParseMode: mode,
			ReplyParameters: &models.ReplyParameters{
				MessageID: message.ID,
				ChatID:    message.ChatID,
			},
		})
		if err != nil {
			log.Error().Err(err).Int64("chatId", message.ChatID).Msg("failed to send message")
			return 0, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}

		if sent != nil {
			id = sent.ID
		}
	}

	return id, nil
}

func splitMessage(text string, size int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return []string{""}
	}

	var chunks []string
	for len(runes) > size {
		chunks = append(chunks, string(runes[:size]))
		runes = runes[size:]
	}

	return append(chunks, string(runes))
}

func (s *Telegram) NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error {
	_, sendErr := s.SendMessageReply(ctx, message, err.Error())
	if sendErr != nil {
		return errors.Join(err, sendErr)
	}

	return err
}

func (s *Telegram) SendChatAction(ctx context.Context, chatID int64, action domain.Action) {
	log.Debug().Int64("chatID", chatID).Msg("starting action routine")
	for {
		select {
		case <-ctx.Done():
			log.Debug().Int64("chatID", chatID).Msg("done, stopping action routine")
			return
		default:
		}

		chatAction := models.ChatActionTyping
		if action != domain.Typing {
			log.Warn().Str("action", string(action)).Msg("unknown chat action, sending typing")
		}

		log.Debug().Int64("chatID", chatID).Msg("transmitting action")
		_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: chatAction,
		})
		if err != nil {
			log.Err(err).Msg("error sending chat action")
			return
		}

		select {
		case <-ctx.Done():
			log.Debug().Int64("chatID", chatID).Msg("done, stopping action routine")
			return
		case <-time.After(ChatActionRepeatSeconds * time.Second):
		}
	}
}
