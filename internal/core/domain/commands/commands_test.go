package commands

import (
	"context"
	"errors"
	"respimg/internal/core/domain"
	"respimg/internal/core/service"
	"testing"

	"github.com/stretchr/testify/require"
)

type MockTextSender struct {
	err     error
	Message string
	Markup  string
}

func (m *MockTextSender) SendMessageReply(_ context.Context, _ *domain.Message, text string) (int, error) {
	m.Message = text
	return 0, m.err
}

func (m *MockTextSender) SendMarkupReply(_ context.Context, _ *domain.Message, markup string) (int, error) {
	m.Markup = markup
	return 0, m.err
}

func (m *MockTextSender) SendChatAction(_ context.Context, _ int64, _ domain.Action) {}

func (m *MockTextSender) NotifyAndReturnError(_ context.Context, err error, _ *domain.Message) error {
	m.Message = err.Error()
	if m.err != nil {
		return errors.Join(err, m.err)
	}

	return err
}

type MockEmitter struct {
	err error
}

func (m *MockEmitter) Emit(descriptor domain.RenderDescriptor) (string, error) {
	if m.err != nil {
		return "", m.err
	}

	return descriptor.SrcSet(), nil
}

type MockProber struct {
	asset domain.StaticAsset
	err   error
	URL   string
}

func (m *MockProber) Probe(_ context.Context, url string) (domain.StaticAsset, error) {
	m.URL = url
	if m.err != nil {
		return domain.StaticAsset{}, m.err
	}

	asset := m.asset
	asset.Path = url

	return asset, nil
}

func newTestRenderer(t *testing.T) *service.Renderer {
	t.Helper()

	r, err := service.NewRenderer(service.DefaultImageConfig())
	require.NoError(t, err)

	return r
}
