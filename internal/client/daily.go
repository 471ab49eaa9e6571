package client

import (
	"context"

	"github.com/charmbracelet/log"
)

// FallbackMessage is shown when today's message cannot be fetched.
const FallbackMessage = "You showed up today, and that matters. Rest well."

type MessageFetcher interface {
	FetchMessage(ctx context.Context) (Message, error)
}

type MessageCache interface {
	CachedMessage() (message, date string)
	CacheMessage(message, date string) error
}

// DailyMessage returns today's message, fetching it at most once per day.
// The fallback is never cached so the next call tries the backend again.
func DailyMessage(ctx context.Context, cache MessageCache, fetcher MessageFetcher, today string, logger *log.Logger) string {
	if message, date := cache.CachedMessage(); message != "" && date == today {
		return message
	}

	msg, err := fetcher.FetchMessage(ctx)
	if err != nil {
		logger.Warn("using fallback message", "err", err)
		return FallbackMessage
	}

	if err := cache.CacheMessage(msg.Message, today); err != nil {
		logger.Warn("failed to cache message", "date", today, "err", err)
	}
	return msg.Message
}
