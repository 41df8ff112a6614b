package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/revrost/go-openrouter"
	"github.com/rs/zerolog/log"
)

// DefaultAltTextPrompt is used when no system prompt is configured.
const DefaultAltTextPrompt = "You write alt text for images on web pages. Reply with a single sentence of at " +
	"most 125 characters that describes the image for someone who cannot see it. Do not start with " +
	"\"image of\" or \"picture of\"."

const altTextInstruction = "Write the alt text for this image."

type OpenRouterClient interface {
	CreateChatCompletion(ctx context.Context,
		request openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

// OpenRouter suggests alt text with a vision model served by OpenRouter.
type OpenRouter struct {
	client       OpenRouterClient
	model        string
	systemPrompt string
}

func NewOpenRouter(apiKey, model, systemPrompt string) *OpenRouter {
	if systemPrompt == "" {
		systemPrompt = DefaultAltTextPrompt
	}

	return &OpenRouter{
		model:        model,
		systemPrompt: systemPrompt,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("respimg"),
		),
	}
}

func (c *OpenRouter) GenerateAltText(ctx context.Context, imageURL string) (string, error) {
	if imageURL == "" {
		return "", errors.New("missing image")
	}

	ccr := openrouter.ChatCompletionRequest{
		Model: c.model,
		Messages: []openrouter.ChatCompletionMessage{
			{
				Role:    openrouter.ChatMessageRoleSystem,
				Content: openrouter.Content{Text: c.systemPrompt},
			},
			{
				Role: openrouter.ChatMessageRoleUser,
				Content: openrouter.Content{Multi: []openrouter.ChatMessagePart{
					{
						Type:     openrouter.ChatMessagePartTypeImageURL,
						ImageURL: &openrouter.ChatMessageImageURL{URL: imageURL},
					},
					{
						Type: openrouter.ChatMessagePartTypeText,
						Text: altTextInstruction,
					},
				}},
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return "", fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned from openrouter")
	}

	log.Debug().
		Str("model", resp.Model).
		Int("totalTokens", resp.Usage.TotalTokens).
		Msg("openrouter alt text response")

	alt := strings.TrimSpace(resp.Choices[0].Message.Content.Text)
	if alt == "" {
		return "", errors.New("empty alt text returned from openrouter")
	}

	return strings.Trim(alt, "\""), nil
}
