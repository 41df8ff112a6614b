package commands

import (
	"context"
	"errors"
	"respimg/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderHandler(t *testing.T) {
	h := NewRenderHandler(newTestRenderer(t), &MockEmitter{}, &MockTextSender{}, "/render")

	assert.NotNil(t, h)
	assert.Equal(t, "/render", h.GetCommand())
}

func TestRenderRespondSuccessful(t *testing.T) {
	ts := &MockTextSender{}
	h := NewRenderHandler(newTestRenderer(t), &MockEmitter{}, ts, "/render")

	err := h.Respond(context.Background(), time.Minute, &domain.Message{
		Text: "/render /triangle-black.png 100 100 screenshot"})
	require.NoError(t, err)

	assert.Equal(t, "/_next/image?url=%2Ftriangle-black.png&w=100&q=75 100w, "+
		"/_next/image?url=%2Ftriangle-black.png&w=128&q=75 128w, "+
		"/_next/image?url=%2Ftriangle-black.png&w=256&q=75 256w", ts.Markup)
	assert.Empty(t, ts.Message)
}

func TestRenderRespondUserErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		contains string
	}{
		{
			name:     "no path",
			text:     "/render",
			contains: renderUsage,
		},
		{
			name:     "no dimensions",
			text:     "/render /triangle-black.png",
			contains: domain.ErrMissingDimensions.Error(),
		},
		{
			name:     "zero width",
			text:     "/render /triangle-black.png 0 100",
			contains: domain.ErrInvalidDisplaySize.Error(),
		},
		{
			name:     "negative width",
			text:     "/render /triangle-black.png -5 100",
			contains: domain.ErrInvalidDisplaySize.Error(),
		},
		{
			name:     "relative path",
			text:     "/render triangle-black.png 100 100",
			contains: domain.ErrInvalidAssetPath.Error(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := &MockTextSender{}
			h := NewRenderHandler(newTestRenderer(t), &MockEmitter{}, ts, "/render")

			err := h.Respond(context.Background(), time.Minute, &domain.Message{Text: tc.text})
			require.NoError(t, err)

			assert.Contains(t, ts.Message, tc.contains)
			assert.Empty(t, ts.Markup)
		})
	}
}

func TestRenderRespondEmitFailed(t *testing.T) {
	ts := &MockTextSender{}
	h := NewRenderHandler(newTestRenderer(t), &MockEmitter{err: errors.New("mock error")}, ts, "/render")

	err := h.Respond(context.Background(), time.Minute, &domain.Message{Text: "/render /a.png 10 10"})
	require.Error(t, err)

	assert.Equal(t, "failed to emit markup: mock error", ts.Message)
}

func TestRenderRespondSendFailed(t *testing.T) {
	ts := &MockTextSender{err: errors.New("mock error")}
	h := NewRenderHandler(newTestRenderer(t), &MockEmitter{}, ts, "/render")

	err := h.Respond(context.Background(), time.Minute, &domain.Message{Text: "/render /a.png 10 10"})
	assert.ErrorContains(t, err, "mock error")
}
