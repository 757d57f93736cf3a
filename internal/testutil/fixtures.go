package testutil

import (
	"time"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/scoring"
	"github.com/google/uuid"
)

// Day used by fixtures unless overridden.
const TestDay = "2024-03-11"

// Session options
type SessionOption func(*domain.Session)

func WithCategory(c domain.Category) SessionOption {
	return func(s *domain.Session) {
		s.Category = c
	}
}

func WithTimestamp(t time.Time) SessionOption {
	return func(s *domain.Session) {
		s.Timestamp = t
	}
}

func WithDay(day string) SessionOption {
	return func(s *domain.Session) {
		s.Day = day
	}
}

// NewTestSession builds a neutral session on TestDay.
func NewTestSession(host string, d time.Duration, opts ...SessionOption) domain.Session {
	s := domain.Session{
		ID:         uuid.New().String(),
		Day:        TestDay,
		Domain:     host,
		Category:   domain.CategoryNeutral,
		DurationMs: d.Milliseconds(),
		Timestamp:  time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Stats options
type StatsOption func(*domain.DailyStats)

// WithSessions applies sessions in order, keeping every total consistent.
func WithSessions(sessions ...domain.Session) StatsOption {
	return func(d *domain.DailyStats) {
		for _, s := range sessions {
			s.Day = d.Date
			d.Apply(s)
		}
	}
}

// WithMinutes adds one session per category for the given minutes.
func WithMinutes(productive, distracting, neutral int) StatsOption {
	return func(d *domain.DailyStats) {
		add := func(host string, c domain.Category, mins int) {
			if mins <= 0 {
				return
			}
			s := NewTestSession(host, time.Duration(mins)*time.Minute, WithCategory(c), WithDay(d.Date))
			d.Apply(s)
		}
		add("github.com", domain.CategoryProductive, productive)
		add("youtube.com", domain.CategoryDistracting, distracting)
		add("example.com", domain.CategoryNeutral, neutral)
	}
}

// NewTestStats builds consistent, scored stats for a day.
func NewTestStats(day string, opts ...StatsOption) domain.DailyStats {
	d := domain.NewDailyStats(day)
	for _, opt := range opts {
		opt(&d)
	}
	d.Score = scoring.Score(d)
	return d
}
