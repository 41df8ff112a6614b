package service

import (
	"context"
	"fmt"
	"respimg/internal/core/domain"
	"respimg/internal/core/port"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Tracker interface {
	AddUsage(chatID int64)
	CheckLimit(ctx context.Context, message *domain.Message) bool
}

// UsageTracker counts alt text generations per chat and day. A limit of 0 disables the quota.
type UsageTracker struct {
	chats      map[int64]int
	dailyLimit int
	mutex      *sync.Mutex
	sender     port.TextSender
}

func NewUsageTracker(ctx context.Context, sender port.TextSender) *UsageTracker {
	ut := &UsageTracker{
		chats:      make(map[int64]int),
		mutex:      &sync.Mutex{},
		sender:     sender,
		dailyLimit: viper.GetInt("openrouter.daily_limit"),
	}

	go ut.ResetDailyLimit(ctx)

	return ut
}

func (t *UsageTracker) AddUsage(chatID int64) {
	t.mutex.Lock()
	t.chats[chatID]++
	t.mutex.Unlock()
}

const overLimit = "This chat used its %d alt text suggestions for today. The quota resets in %s."

func (t *UsageTracker) CheckLimit(ctx context.Context, message *domain.Message) bool {
	if t.dailyLimit <= 0 {
		return true
	}

	t.mutex.Lock()
	used := t.chats[message.ChatID]
	t.mutex.Unlock()

	if used < t.dailyLimit {
		return true
	}

	_, err := t.sender.SendMessageReply(ctx, message,
		fmt.Sprintf(overLimit, t.dailyLimit, time.Until(getNextResetTime()).Truncate(time.Second)))
	if err != nil {
		log.Warn().Err(err).Msg("failed to send daily limit exceeded warning")
	}

	return false
}

func (t *UsageTracker) ResetDailyLimit(ctx context.Context) {
	reset := getNextResetTime()

	for {
		log.Debug().Time("reset", reset).Msg("running reset timer")
		select {
		case <-time.After(time.Until(reset)):
			log.Debug().Msg("resetting daily limit")
			t.mutex.Lock()
			t.chats = make(map[int64]int)
			t.mutex.Unlock()
			time.Sleep(time.Second)
			reset = getNextResetTime()
		case <-ctx.Done():
			log.Debug().Msg("stopping daily limit reset")
			return
		}
	}
}

func getNextResetTime() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}
