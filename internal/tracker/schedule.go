package tracker

import (
	"context"
	"time"
)

// Clock abstracts time so the runtime and the daily scheduler can be
// driven by tests.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
	After(d time.Duration) <-chan time.Time
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realClock struct{}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (realClock) NewTicker(d time.Duration) Ticker       { return realTicker{time.NewTicker(d)} }

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NextLocalMidnight returns the first midnight in loc strictly after now.
func NextLocalMidnight(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// RunDaily calls fn at the next local midnight and every 24h after that,
// until ctx is cancelled.
func RunDaily(ctx context.Context, clock Clock, loc *time.Location, fn func(ctx context.Context, now time.Time)) {
	now := clock.Now()
	select {
	case <-ctx.Done():
		return
	case <-clock.After(NextLocalMidnight(now, loc).Sub(now)):
	}
	fn(ctx, clock.Now())

	ticker := clock.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C():
			fn(ctx, t)
		}
	}
}
