package handler

import (
	"context"
	"respimg/internal/core/domain"
	"respimg/internal/core/port"
	"respimg/internal/core/service"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

type Command struct {
	commandRegistry port.CommandRegistry
	authorizer      service.Authorizer
	timeout         time.Duration
}

func NewCommand(commandRegistry port.CommandRegistry, authorizer service.Authorizer, timeout time.Duration) *Command {
	return &Command{commandRegistry: commandRegistry, authorizer: authorizer, timeout: timeout}
}

func (c *Command) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := update.Message.Text
	if update.Message.Photo != nil {
		text = update.Message.Caption
	}

	cmd := domain.ParseCommand(text)
	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Str("command", cmd).Msg("no handler for command")
		return
	}

	requestID := "unknown"
	if id, err := uuid.NewV4(); err == nil {
		requestID = id.String()
	}

	l := log.With().Str("requestId", requestID).Logger()
	l.Debug().Str("message", text).Msg("received command")

	message := &domain.Message{
		ID:       update.Message.ID,
		ChatID:   update.Message.Chat.ID,
		Username: getUserNameFromMessage(update.Message.From),
		ImageURL: getOptionalImage(ctx, b, update.Message),
		Text:     text,
	}

	if c.authorizer != nil && !c.authorizer.IsAuthorized(ctx, message) {
		return
	}

	go func() {
		err := commandHandler.Respond(l.WithContext(context.Background()), c.timeout, message)
		if err != nil {
			l.Err(err).Str("command", cmd).Msg("failed to respond to command")
		}
	}()
}

// getOptionalImage returns a download link for the photo attached to the message or to the message it
// replies to. Without a bot client there is nothing to resolve.
func getOptionalImage(ctx context.Context, b *bot.Bot, message *models.Message) string {
	var photos []models.PhotoSize

	if message.ReplyToMessage != nil && message.ReplyToMessage.Photo != nil {
		photos = message.ReplyToMessage.Photo
	}

	if message.Photo != nil {
		photos = message.Photo
	}

	if len(photos) == 0 || b == nil {
		return ""
	}

	f, err := b.GetFile(ctx, &bot.GetFileParams{FileID: findLargestImage(photos)})
	if err != nil {
		log.Error().Err(err).Msg("error getting file from telegram api")
		return ""
	}

	return b.FileDownloadLink(f)
}

// findLargestImage picks the highest resolution variant, as intrinsic metadata should describe the
// original rather than a thumbnail.
func findLargestImage(photos []models.PhotoSize) string {
	largest := photos[0]
	for _, photo := range photos[1:] {
		if photo.Width*photo.Height > largest.Width*largest.Height {
			largest = photo
		}
	}

	return largest.FileID
}

func getUserNameFromMessage(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
