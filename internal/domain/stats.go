package domain

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day identifier format used for DailyStats.Date.
const DayLayout = "2006-01-02"

// MaxArchivedDays bounds WeeklyStats; older entries are evicted first.
const MaxArchivedDays = 30

// DailyStats accumulates the tracked time for a single calendar day.
type DailyStats struct {
	Date              string
	TotalTimeMs       int64
	ProductiveTimeMs  int64
	DistractingTimeMs int64
	NeutralTimeMs     int64
	Sessions          []Session
	Score             int
}

// WeeklyStats holds archived DailyStats snapshots, oldest first.
type WeeklyStats []DailyStats

// NewDailyStats returns zeroed stats for the given day.
func NewDailyStats(day string) DailyStats {
	return DailyStats{Date: day, Sessions: []Session{}}
}

// DayOf returns the calendar day identifier of t in loc.
func DayOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DayLayout)
}

// Apply adds a session to the totals and appends it to the session list.
func (d *DailyStats) Apply(s Session) {
	d.Sessions = append(d.Sessions, s)
	d.TotalTimeMs += s.DurationMs
	switch s.Category {
	case CategoryProductive:
		d.ProductiveTimeMs += s.DurationMs
	case CategoryDistracting:
		d.DistractingTimeMs += s.DurationMs
	default:
		d.NeutralTimeMs += s.DurationMs
	}
}

// TimeIn returns the accumulated milliseconds for a category.
func (d DailyStats) TimeIn(c Category) int64 {
	switch c {
	case CategoryProductive:
		return d.ProductiveTimeMs
	case CategoryDistracting:
		return d.DistractingTimeMs
	default:
		return d.NeutralTimeMs
	}
}

// CheckInvariant verifies that the category buckets and the session list
// both sum to TotalTimeMs.
func (d DailyStats) CheckInvariant() error {
	buckets := d.ProductiveTimeMs + d.DistractingTimeMs + d.NeutralTimeMs
	if buckets != d.TotalTimeMs {
		return fmt.Errorf("%w: buckets %d != total %d", ErrInvariant, buckets, d.TotalTimeMs)
	}
	var sessions int64
	for _, s := range d.Sessions {
		sessions += s.DurationMs
	}
	if sessions != d.TotalTimeMs {
		return fmt.Errorf("%w: sessions %d != total %d", ErrInvariant, sessions, d.TotalTimeMs)
	}
	return nil
}

// Clone returns a deep copy so archived snapshots never alias live state.
func (d DailyStats) Clone() DailyStats {
	out := d
	out.Sessions = make([]Session, len(d.Sessions))
	copy(out.Sessions, d.Sessions)
	return out
}
