package domain

import "time"

// Session is one contiguous interval of measured active time on a single
// domain. Sessions are immutable once recorded.
type Session struct {
	ID         string
	Day        string
	Domain     string
	Category   Category
	DurationMs int64
	Timestamp  time.Time
}

// Duration returns the session length as a time.Duration.
func (s Session) Duration() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}
