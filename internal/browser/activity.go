package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultIdleThreshold is how long a page may go without input before it
// counts as inactive.
const DefaultIdleThreshold = 60 * time.Second

var ErrTabGone = errors.New("tab is gone")

// HeartbeatDetector answers liveness queries from page activity
// heartbeats. A tab with no heartbeat on record is treated as gone.
type HeartbeatDetector struct {
	mu        sync.Mutex
	last      map[int]time.Time
	threshold time.Duration
	now       func() time.Time
}

func NewHeartbeatDetector(threshold time.Duration, now func() time.Time) *HeartbeatDetector {
	if threshold <= 0 {
		threshold = DefaultIdleThreshold
	}
	if now == nil {
		now = time.Now
	}
	return &HeartbeatDetector{
		last:      make(map[int]time.Time),
		threshold: threshold,
		now:       now,
	}
}

// Touch records user activity in a tab.
func (d *HeartbeatDetector) Touch(tabID int, at time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if prev, ok := d.last[tabID]; ok && prev.After(at) {
		return
	}
	d.last[tabID] = at
}

// Forget drops a closed tab.
func (d *HeartbeatDetector) Forget(tabID int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.last, tabID)
}

// CheckActivity reports whether the tab saw input within the threshold.
func (d *HeartbeatDetector) CheckActivity(ctx context.Context, tabID int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	d.mu.Lock()
	last, ok := d.last[tabID]
	d.mu.Unlock()
	if !ok {
		return false, fmt.Errorf("tab %d: %w", tabID, ErrTabGone)
	}
	return d.now().Sub(last) < d.threshold, nil
}
