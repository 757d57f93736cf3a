// Package tracker measures active time on the focused browser tab.
//
// Transition is a pure function from (state, event) to (state, effects).
// Tracker runs it on a single goroutine and executes the effects: recording
// finished sessions and starting or stopping the liveness ticker.
package tracker

import (
	"time"

	"github.com/alexanderramin/productiviquest/internal/domain"
)

type Mode int

const (
	Idle Mode = iota
	Tracking
)

func (m Mode) String() string {
	if m == Tracking {
		return "tracking"
	}
	return "idle"
}

// State is the tracker's view of the browser. ActiveTab survives a stop
// so that regaining focus can resume measuring the same tab.
type State struct {
	Mode          Mode
	ActiveTab     *domain.Tab
	Domain        string
	StartedAt     time.Time
	WindowFocused bool
}

// InitialState is idle with the browser window assumed focused.
func InitialState() State {
	return State{Mode: Idle, WindowFocused: true}
}

type Event interface{ isEvent() }

// TabFocused reports a tab becoming the active one. Tab is nil when the
// tab could not be looked up.
type TabFocused struct {
	Tab *domain.Tab
	At  time.Time
}

// WindowFocusChanged reports whether any browser window holds focus.
type WindowFocusChanged struct {
	Focused bool
	At      time.Time
}

// LivenessChecked carries the result of one activity query. Err set means
// the query failed, which counts as inactivity.
type LivenessChecked struct {
	Active bool
	Err    error
	At     time.Time
}

// ActivityObserved reports user input in a tab.
type ActivityObserved struct {
	TabID int
	At    time.Time
}

// Shutdown stops tracking and flushes the open session.
type Shutdown struct {
	At time.Time
}

func (TabFocused) isEvent()         {}
func (WindowFocusChanged) isEvent() {}
func (LivenessChecked) isEvent()    {}
func (ActivityObserved) isEvent()   {}
func (Shutdown) isEvent()           {}

type Effect interface{ isEffect() }

// RecordSession hands a finished interval to the session recorder.
type RecordSession struct {
	Domain   string
	Duration time.Duration
	At       time.Time
}

// StartLiveness begins periodic activity checks for a tab.
type StartLiveness struct {
	TabID int
}

// StopLiveness cancels the liveness ticker.
type StopLiveness struct{}

func (RecordSession) isEffect() {}
func (StartLiveness) isEffect() {}
func (StopLiveness) isEffect()  {}

// Transition applies ev to s.
func Transition(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case TabFocused:
		var effects []Effect
		s, effects = stop(s, e.At)
		if e.Tab == nil || !domain.IsTrackableURL(e.Tab.URL) {
			s.ActiveTab = nil
			s.Domain = ""
			return s, effects
		}
		tab := *e.Tab
		s.ActiveTab = &tab
		s.Domain = domain.ExtractDomain(tab.URL)
		return start(s, e.At, effects)

	case WindowFocusChanged:
		s.WindowFocused = e.Focused
		if !e.Focused {
			return stop(s, e.At)
		}
		if s.Mode == Tracking {
			return s, nil
		}
		return start(s, e.At, nil)

	case LivenessChecked:
		// A check that arrives after tracking ended is stale.
		if s.Mode != Tracking {
			return s, nil
		}
		if e.Err != nil || !e.Active {
			return stop(s, e.At)
		}
		return s, nil

	case ActivityObserved:
		if s.Mode == Tracking || s.ActiveTab == nil || s.ActiveTab.ID != e.TabID {
			return s, nil
		}
		return start(s, e.At, nil)

	case Shutdown:
		return stop(s, e.At)
	}
	return s, nil
}

// stop ends the current interval. Stopping an idle machine is a no-op.
func stop(s State, at time.Time) (State, []Effect) {
	if s.Mode != Tracking {
		return s, nil
	}
	d := at.Sub(s.StartedAt)
	if d < 0 {
		d = 0
	}
	effects := []Effect{
		StopLiveness{},
		RecordSession{Domain: s.Domain, Duration: d, At: at},
	}
	s.Mode = Idle
	s.StartedAt = time.Time{}
	return s, effects
}

// start begins an interval on the active tab when the window has focus.
func start(s State, at time.Time, effects []Effect) (State, []Effect) {
	if s.Mode == Tracking || s.ActiveTab == nil || !s.WindowFocused {
		return s, effects
	}
	s.Mode = Tracking
	s.StartedAt = at
	return s, append(effects, StartLiveness{TabID: s.ActiveTab.ID})
}
