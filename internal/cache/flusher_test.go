package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"headway/internal/domain"
)

func TestFlushRoutes(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	trips := []domain.Trip{{Units: "kilometers"}}
	require.NoError(t, c.SetTrips(ctx, KeyRoute([]byte(`{"a":1}`)), trips, time.Minute))
	require.NoError(t, c.SetTrips(ctx, KeyRoute([]byte(`{"a":2}`)), trips, time.Minute))
	require.NoError(t, mr.Set("headway:other", "keep"))

	n, err := NewFlusher(c, slog.New(slog.NewTextHandler(io.Discard, nil))).FlushRoutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, mr.Exists("headway:other"))
}

func TestNextFlush(t *testing.T) {
	loc := time.UTC
	at := 3*time.Hour + 30*time.Minute

	before := time.Date(2024, 3, 10, 1, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 10, 3, 30, 0, 0, loc), nextFlush(before, at))

	after := time.Date(2024, 3, 10, 4, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 11, 3, 30, 0, 0, loc), nextFlush(after, at))

	exact := time.Date(2024, 3, 10, 3, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 11, 3, 30, 0, 0, loc), nextFlush(exact, at))
}
