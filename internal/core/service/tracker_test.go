package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"respimg/internal/core/domain"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestAddUsage(t *testing.T) {
	tracker := &UsageTracker{
		chats: make(map[int64]int),
		mutex: &sync.Mutex{},
	}
	tests := []struct {
		name      string
		chatID    int64
		initial   int
		wantTotal int
	}{
		{
			name:      "first usage",
			chatID:    1,
			initial:   0,
			wantTotal: 1,
		},
		{
			name:      "add to existing usage",
			chatID:    2,
			initial:   4,
			wantTotal: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker.chats[tt.chatID] = tt.initial
			tracker.AddUsage(tt.chatID)
			assert.Equal(t, tt.wantTotal, tracker.chats[tt.chatID])
		})
	}
}

func TestCheckLimit(t *testing.T) {
	dailyLimit := 5
	tests := []struct {
		name          string
		chatID        int64
		limit         int
		used          int
		expectAllowed bool
		expectMessage bool
		simulateErr   error
	}{
		{
			name:          "below limit",
			chatID:        1,
			limit:         dailyLimit,
			used:          4,
			expectAllowed: true,
		},
		{
			name:          "at limit",
			chatID:        2,
			limit:         dailyLimit,
			used:          5,
			expectAllowed: false,
			expectMessage: true,
		},
		{
			name:          "above limit with send error",
			chatID:        3,
			limit:         dailyLimit,
			used:          7,
			expectAllowed: false,
			expectMessage: true,
			simulateErr:   assert.AnError,
		},
		{
			name:          "quota disabled",
			chatID:        4,
			limit:         0,
			used:          100,
			expectAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSender := &mockTextSender{sendError: tt.simulateErr}
			tracker := &UsageTracker{
				chats:      map[int64]int{tt.chatID: tt.used},
				mutex:      &sync.Mutex{},
				dailyLimit: tt.limit,
				sender:     mockSender,
			}

			result := tracker.CheckLimit(context.Background(), &domain.Message{ChatID: tt.chatID})
			assert.Equal(t, tt.expectAllowed, result)
			if tt.expectMessage {
				assert.Equal(t, 1, mockSender.callCount)
				assert.Contains(t, mockSender.sendReplies[0],
					fmt.Sprintf("used its %d alt text suggestions", tt.limit))
			} else {
				assert.Equal(t, 0, mockSender.callCount)
			}
		})
	}
}

func TestNewUsageTracker(t *testing.T) {
	viper.Reset()
	viper.Set("openrouter.daily_limit", 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mockSender := &mockTextSender{}
	tracker := NewUsageTracker(ctx, mockSender)

	assert.NotNil(t, tracker.chats)
	assert.NotNil(t, tracker.mutex)
	assert.Equal(t, 10, tracker.dailyLimit)
	assert.Equal(t, mockSender, tracker.sender)
}

func TestGetNextResetTime(t *testing.T) {
	reset := getNextResetTime()
	assert.Equal(t, 0, reset.Hour())
	assert.Equal(t, 0, reset.Minute())
	assert.Equal(t, 0, reset.Second())
	assert.True(t, reset.After(time.Now()))
	assert.LessOrEqual(t, time.Until(reset), 25*time.Hour)
}
