package service

import (
	"context"
	"errors"
	"testing"

	"respimg/internal/core/domain"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

type mockTextSender struct {
	sendCalled  bool
	callCount   int
	sendReplies []string
	sendError   error
}

func (m *mockTextSender) SendChatAction(_ context.Context, _ int64, _ domain.Action) {
	panic("implement me")
}

func (m *mockTextSender) NotifyAndReturnError(_ context.Context, _ error, _ *domain.Message) error {
	panic("implement me")
}

func (m *mockTextSender) SendMarkupReply(_ context.Context, _ *domain.Message, _ string) (int, error) {
	panic("implement me")
}

func (m *mockTextSender) SendMessageReply(_ context.Context, _ *domain.Message, text string) (int, error) {
	m.callCount++
	m.sendCalled = true
	m.sendReplies = append(m.sendReplies, text)
	if m.sendError != nil {
		return 0, m.sendError
	}
	return 1, nil
}

func TestNewAuthorizer(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		wantErr  bool
		expected []int64
	}{
		{
			name: "loads allowed chat IDs",
			setup: func() {
				viper.Set("telegram.allowed_chat_ids", []int64{1, 2, 3})
			},
			wantErr:  false,
			expected: []int64{1, 2, 3},
		},
		{
			name: "invalid type returns error",
			setup: func() {
				viper.Set("telegram.allowed_chat_ids", "not a slice")
			},
			wantErr: true,
		},
		{
			name: "empty list is fine",
			setup: func() {
				viper.Set("telegram.allowed_chat_ids", []int64{})
			},
			wantErr:  false,
			expected: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			tt.setup()
			auth, err := NewAuthorizer(&mockTextSender{})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, auth)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, auth)
				assert.Equal(t, tt.expected, auth.allowlist)
			}
		})
	}
}

func TestChatAuthorizer_IsAuthorized(t *testing.T) {
	tests := []struct {
		name         string
		allowlist    []int64
		chatID       int64
		sendErr      error
		want         bool
		expectSend   bool
		expectedText string
	}{
		{
			name:       "chatID is allowed",
			allowlist:  []int64{123, 456},
			chatID:     123,
			want:       true,
			expectSend: false,
		},
		{
			name:         "chatID not allowed sends message",
			allowlist:    []int64{111, 222},
			chatID:       333,
			expectSend:   true,
			want:         false,
			expectedText: "This chat may not render images. Ask @adminuser to allow chat ID 333.",
		},
		{
			name:         "send message fails for unauthorized chatID",
			allowlist:    []int64{999},
			chatID:       888,
			expectSend:   true,
			want:         false,
			sendErr:      errors.New("send failed"),
			expectedText: "This chat may not render images. Ask @adminuser to allow chat ID 888.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSender := &mockTextSender{sendError: tt.sendErr}
			a := &ChatAuthorizer{
				allowlist: tt.allowlist,
				admin:     "adminuser",
				sender:    mockSender,
			}

			got := a.IsAuthorized(context.Background(), &domain.Message{ChatID: tt.chatID})

			assert.Equal(t, tt.want, got)
			if tt.expectSend {
				assert.True(t, mockSender.sendCalled, "SendMessageReply should have been called")
				assert.Equal(t, tt.expectedText, mockSender.sendReplies[0])
			} else {
				assert.False(t, mockSender.sendCalled, "SendMessageReply should not have been called")
			}
		})
	}
}
