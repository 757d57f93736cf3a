package browser

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabRegistry_UpsertAndGet(t *testing.T) {
	reg, err := NewTabRegistry(8)
	require.NoError(t, err)
	ctx := context.Background()

	reg.Upsert(domain.Tab{ID: 1, WindowID: 10, URL: "https://github.com/"})
	got, err := reg.GetTab(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/", got.URL)

	// Partial update keeps the known URL and window.
	reg.Upsert(domain.Tab{ID: 1})
	got, err = reg.GetTab(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/", got.URL)
	assert.Equal(t, 10, got.WindowID)

	reg.Upsert(domain.Tab{ID: 1, URL: "https://reddit.com/"})
	got, err = reg.GetTab(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://reddit.com/", got.URL)
}

func TestTabRegistry_RemoveAndUnknown(t *testing.T) {
	reg, err := NewTabRegistry(0)
	require.NoError(t, err)

	reg.Upsert(domain.Tab{ID: 7, URL: "https://example.com"})
	reg.Remove(7)

	_, err = reg.GetTab(context.Background(), 7)
	assert.ErrorIs(t, err, ErrTabNotFound)
	_, err = reg.GetTab(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTabNotFound)
}

func TestTabRegistry_EvictsLeastRecentlyUsed(t *testing.T) {
	reg, err := NewTabRegistry(2)
	require.NoError(t, err)
	ctx := context.Background()

	reg.Upsert(domain.Tab{ID: 1, URL: "a"})
	reg.Upsert(domain.Tab{ID: 2, URL: "b"})
	_, _ = reg.GetTab(ctx, 1)
	reg.Upsert(domain.Tab{ID: 3, URL: "c"})

	assert.Equal(t, 2, reg.Len())
	_, err = reg.GetTab(ctx, 2)
	assert.ErrorIs(t, err, ErrTabNotFound)
	_, err = reg.GetTab(ctx, 1)
	assert.NoError(t, err)
}

func TestHeartbeatDetector(t *testing.T) {
	now := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	d := NewHeartbeatDetector(time.Minute, func() time.Time { return now })
	ctx := context.Background()

	_, err := d.CheckActivity(ctx, 1)
	assert.ErrorIs(t, err, ErrTabGone)

	d.Touch(1, now.Add(-30*time.Second))
	active, err := d.CheckActivity(ctx, 1)
	require.NoError(t, err)
	assert.True(t, active)

	d.Touch(1, now.Add(-2*time.Minute)) // stale heartbeat is ignored
	active, err = d.CheckActivity(ctx, 1)
	require.NoError(t, err)
	assert.True(t, active)

	now = now.Add(time.Minute)
	active, err = d.CheckActivity(ctx, 1)
	require.NoError(t, err)
	assert.False(t, active, "no input for 90s")

	d.Forget(1)
	_, err = d.CheckActivity(ctx, 1)
	assert.ErrorIs(t, err, ErrTabGone)
}

func TestHeartbeatDetector_CancelledContext(t *testing.T) {
	d := NewHeartbeatDetector(0, nil)
	d.Touch(1, time.Now())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.CheckActivity(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
