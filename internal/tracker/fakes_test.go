package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/service"
)

type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
	afters  []chan time.Time
	waits   []time.Duration
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time, 1)}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time, 1)
	c.afters = append(c.afters, ch)
	c.waits = append(c.waits, d)
	return ch
}

func (c *fakeClock) pendingAfter() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.afters)
}

func (c *fakeClock) lastAfter() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waits[len(c.waits)-1]
}

func (c *fakeClock) fireAfter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.afters {
		ch <- c.now
	}
	c.afters = nil
}

func (c *fakeClock) tickerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

// ticker returns the i-th ticker created.
func (c *fakeClock) ticker(i int) *fakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickers[i]
}

// tick fires every ticker that has not been stopped.
func (c *fakeClock) tick() {
	c.mu.Lock()
	tickers := append([]*fakeTicker(nil), c.tickers...)
	now := c.now
	c.mu.Unlock()
	for _, t := range tickers {
		if !t.isStopped() {
			t.fire(now)
		}
	}
}

type fakeTicker struct {
	mu      sync.Mutex
	ch      chan time.Time
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *fakeTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// fire delivers a tick without blocking, like time.Ticker dropping ticks
// for slow receivers.
func (t *fakeTicker) fire(now time.Time) {
	select {
	case t.ch <- now:
	default:
	}
}

type fakeTabs struct {
	mu   sync.Mutex
	tabs map[int]domain.Tab
}

func newFakeTabs(tabs ...domain.Tab) *fakeTabs {
	f := &fakeTabs{tabs: make(map[int]domain.Tab)}
	for _, t := range tabs {
		f.tabs[t.ID] = t
	}
	return f
}

func (f *fakeTabs) GetTab(_ context.Context, id int) (domain.Tab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tabs[id]
	if !ok {
		return domain.Tab{}, errors.New("no such tab")
	}
	return t, nil
}

type fakeDetector struct {
	mu     sync.Mutex
	active bool
	err    error
	calls  int
}

func (d *fakeDetector) CheckActivity(context.Context, int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	return d.active, d.err
}

func (d *fakeDetector) set(active bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active, d.err = active, err
}

func (d *fakeDetector) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

type recorded struct {
	Domain   string
	Duration time.Duration
}

type fakeRecorder struct {
	mu       sync.Mutex
	sessions []recorded
	err      error
}

func (r *fakeRecorder) RecordSession(_ context.Context, host string, d time.Duration, _ time.Time) (service.RecordResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, recorded{host, d})
	return service.RecordResult{}, r.err
}

func (r *fakeRecorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.sessions...)
}
