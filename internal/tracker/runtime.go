package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/metrics"
	"github.com/alexanderramin/productiviquest/internal/service"
	"github.com/rs/zerolog"
)

// DefaultLivenessInterval is how often the active tab is checked for
// user activity while tracking.
const DefaultLivenessInterval = 5 * time.Second

const inboxSize = 64

var ErrStopped = errors.New("tracker stopped")

// TabLookup resolves a tab id to its current state.
type TabLookup interface {
	GetTab(ctx context.Context, id int) (domain.Tab, error)
}

// ActivityDetector reports whether the user is still active in a tab.
// An error means the tab is gone or unreachable.
type ActivityDetector interface {
	CheckActivity(ctx context.Context, tabID int) (bool, error)
}

// SessionRecorder receives finished tracking intervals.
type SessionRecorder interface {
	RecordSession(ctx context.Context, host string, d time.Duration, now time.Time) (service.RecordResult, error)
}

type Config struct {
	LivenessInterval time.Duration
	Clock            Clock
	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
}

// Tracker owns the state machine. All state changes happen on the Run
// goroutine; the public methods only enqueue inputs.
type Tracker struct {
	lookup   TabLookup
	detector ActivityDetector
	recorder SessionRecorder
	clock    Clock
	interval time.Duration
	logger   zerolog.Logger
	metrics  *metrics.Metrics

	inbox chan input
	ticks chan uint64
	done  chan struct{}

	// Owned by the Run goroutine.
	state    State
	liveness *livenessHandle
	gen      uint64

	statusMu sync.RWMutex
	status   State
}

type input any

type tabInput struct{ tabID int }
type focusInput struct{ focused bool }
type activityInput struct{ tabID int }

// livenessHandle is the ticker bound to one tracking interval. gen tags
// every tick it forwards so ticks from an ended interval are dropped.
type livenessHandle struct {
	gen    uint64
	tabID  int
	ticker Ticker
	stop   chan struct{}
}

func New(lookup TabLookup, detector ActivityDetector, recorder SessionRecorder, cfg Config) *Tracker {
	if cfg.LivenessInterval <= 0 {
		cfg.LivenessInterval = DefaultLivenessInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock()
	}
	initial := InitialState()
	return &Tracker{
		lookup:   lookup,
		detector: detector,
		recorder: recorder,
		clock:    cfg.Clock,
		interval: cfg.LivenessInterval,
		logger:   cfg.Logger.With().Str("component", "tracker").Logger(),
		metrics:  cfg.Metrics,
		inbox:    make(chan input, inboxSize),
		ticks:    make(chan uint64),
		done:     make(chan struct{}),
		state:    initial,
		status:   initial,
	}
}

// TabActivated reports that tabID became the active tab, either by a
// switch or by finishing a navigation while active.
func (t *Tracker) TabActivated(ctx context.Context, tabID int) error {
	return t.submit(ctx, tabInput{tabID: tabID})
}

// WindowFocusChanged reports whether any browser window holds focus.
func (t *Tracker) WindowFocusChanged(ctx context.Context, focused bool) error {
	return t.submit(ctx, focusInput{focused: focused})
}

// PageActivity reports user input in a tab.
func (t *Tracker) PageActivity(ctx context.Context, tabID int) error {
	return t.submit(ctx, activityInput{tabID: tabID})
}

func (t *Tracker) submit(ctx context.Context, in input) error {
	select {
	case <-t.done:
		return ErrStopped
	default:
	}
	select {
	case t.inbox <- in:
		return nil
	case <-t.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a copy of the current state.
func (t *Tracker) Status() State {
	t.statusMu.RLock()
	defer t.statusMu.RUnlock()
	s := t.status
	if s.ActiveTab != nil {
		tab := *s.ActiveTab
		s.ActiveTab = &tab
	}
	return s
}

// Done is closed once Run has returned.
func (t *Tracker) Done() <-chan struct{} {
	return t.done
}

// Run processes inputs until ctx is cancelled. On exit the open session
// is recorded and the liveness ticker released.
func (t *Tracker) Run(ctx context.Context) error {
	defer close(t.done)
	defer t.stopLiveness()

	t.logger.Info().Dur("liveness_interval", t.interval).Msg("tracker started")
	for {
		select {
		case <-ctx.Done():
			t.apply(context.WithoutCancel(ctx), Shutdown{At: t.clock.Now()})
			t.logger.Info().Msg("tracker stopped")
			return nil
		case in := <-t.inbox:
			t.handle(ctx, in)
		case gen := <-t.ticks:
			if t.liveness == nil || gen != t.liveness.gen {
				continue
			}
			t.checkLiveness(ctx)
		}
	}
}

func (t *Tracker) handle(ctx context.Context, in input) {
	now := t.clock.Now()
	switch v := in.(type) {
	case tabInput:
		tab, err := t.lookup.GetTab(ctx, v.tabID)
		if err != nil {
			t.logger.Debug().Err(err).Int("tab_id", v.tabID).Msg("tab lookup failed")
			t.apply(ctx, TabFocused{At: now})
			return
		}
		t.apply(ctx, TabFocused{Tab: &tab, At: now})
	case focusInput:
		t.apply(ctx, WindowFocusChanged{Focused: v.focused, At: now})
	case activityInput:
		t.apply(ctx, ActivityObserved{TabID: v.tabID, At: now})
	}
}

func (t *Tracker) checkLiveness(ctx context.Context) {
	active, err := t.detector.CheckActivity(ctx, t.liveness.tabID)
	switch {
	case err != nil:
		t.metrics.RecordLiveness("error")
		t.logger.Debug().Err(err).Int("tab_id", t.liveness.tabID).Msg("liveness check failed")
	case active:
		t.metrics.RecordLiveness("active")
	default:
		t.metrics.RecordLiveness("inactive")
	}
	t.apply(ctx, LivenessChecked{Active: active, Err: err, At: t.clock.Now()})
}

func (t *Tracker) apply(ctx context.Context, ev Event) {
	next, effects := Transition(t.state, ev)
	t.state = next

	t.statusMu.Lock()
	t.status = next
	t.statusMu.Unlock()
	t.metrics.SetTracking(next.Mode == Tracking)

	for _, eff := range effects {
		switch e := eff.(type) {
		case StopLiveness:
			t.stopLiveness()
		case StartLiveness:
			t.startLiveness(e.TabID)
		case RecordSession:
			t.record(ctx, e)
		}
	}
}

// record hands a session to the recorder. Failures are logged; tracking
// carries on regardless.
func (t *Tracker) record(ctx context.Context, e RecordSession) {
	res, err := t.recorder.RecordSession(ctx, e.Domain, e.Duration, e.At)
	if err != nil {
		t.logger.Error().Err(err).Str("domain", e.Domain).Dur("duration", e.Duration).Msg("recording session failed")
		return
	}
	if res.Discarded {
		return
	}
	t.logger.Debug().
		Str("domain", e.Domain).
		Str("category", string(res.Session.Category)).
		Dur("duration", e.Duration).
		Int("score", res.Stats.Score).
		Msg("session recorded")
}

func (t *Tracker) startLiveness(tabID int) {
	t.stopLiveness()
	t.gen++
	h := &livenessHandle{
		gen:    t.gen,
		tabID:  tabID,
		ticker: t.clock.NewTicker(t.interval),
		stop:   make(chan struct{}),
	}
	t.liveness = h
	go t.forwardTicks(h)
}

func (t *Tracker) stopLiveness() {
	if t.liveness == nil {
		return
	}
	t.liveness.ticker.Stop()
	close(t.liveness.stop)
	t.liveness = nil
}

func (t *Tracker) forwardTicks(h *livenessHandle) {
	for {
		select {
		case <-h.stop:
			return
		case <-h.ticker.C():
			select {
			case t.ticks <- h.gen:
			case <-h.stop:
				return
			}
		}
	}
}
