package cache

import (
	"context"
	"log/slog"
	"time"
)

// Flusher drops cached routing engine responses. Cached trips go stale
// once the engine loads new road data, which operators typically rebuild
// overnight.
type Flusher struct {
	cache  *RedisCache
	now    func() time.Time
	logger *slog.Logger
}

func NewFlusher(cache *RedisCache, logger *slog.Logger) *Flusher {
	return &Flusher{
		cache:  cache,
		now:    time.Now,
		logger: logger.With("component", "cache_flusher"),
	}
}

// FlushRoutes removes every cached route response.
func (f *Flusher) FlushRoutes(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := f.cache.DeletePattern(ctx, KeyAllRoutes())
	if err != nil {
		f.logger.Error("route cache flush failed", "deleted", n, "error", err)
		return n, err
	}

	f.logger.Info("route cache flushed", "deleted", n, "duration_ms", time.Since(start).Milliseconds())
	return n, nil
}

// nextFlush returns the next daily flush time at hh:mm local time after now.
func nextFlush(now time.Time, at time.Duration) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	next := midnight.Add(at)
	if !next.After(now) {
		next = midnight.AddDate(0, 0, 1).Add(at)
	}
	return next
}

// ScheduleDaily flushes the route cache once a day at the given offset from
// local midnight until ctx is cancelled.
func (f *Flusher) ScheduleDaily(ctx context.Context, at time.Duration) {
	for {
		next := nextFlush(f.now(), at)
		wait := next.Sub(f.now())

		f.logger.Info("scheduled next route cache flush", "at", next, "in", wait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			f.FlushRoutes(ctx)
		}
	}
}
