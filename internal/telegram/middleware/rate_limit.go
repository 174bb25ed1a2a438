package middleware

import (
	"sync"
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"leadbot/internal/logger"
	tghelpers "leadbot/internal/telegram/helpers"
)

// RateLimitOptions configures the per-user minimum interval between updates.
type RateLimitOptions struct {
	Interval  time.Duration
	OnLimited tele.HandlerFunc
}

// RateLimitMiddleware drops updates arriving faster than the configured
// interval for the same user. Limited updates are logged and optionally
// answered; they never reach downstream handlers.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	var (
		mu   sync.Mutex
		last = make(map[int64]time.Time)
	)

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.Interval <= 0 || c.Sender() == nil {
				return next(c)
			}
			userID := c.Sender().ID
			now := time.Now()

			mu.Lock()
			prev, seen := last[userID]
			limited := seen && now.Sub(prev) < opts.Interval
			if !limited {
				last[userID] = now
			}
			mu.Unlock()

			if !limited {
				return next(c)
			}

			ctx := tghelpers.BuildContext(c)
			logger.Debug(ctx, "tg", "update.rate_limited",
				slog.Int64("user_id", userID),
				slog.Duration("interval", opts.Interval),
			)
			if opts.OnLimited != nil {
				return opts.OnLimited(c)
			}
			return nil
		}
	}
}
