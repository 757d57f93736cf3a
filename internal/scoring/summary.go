package scoring

import (
	"sort"
	"time"

	"github.com/alexanderramin/productiviquest/internal/domain"
)

// DomainTime is the accumulated time spent on one domain.
type DomainTime struct {
	Domain   string
	Category domain.Category
	TimeMs   int64
}

// TopDomains groups the day's sessions by domain and returns the n with
// the most time, largest first. Ties keep first-seen order.
func TopDomains(stats domain.DailyStats, n int) []DomainTime {
	index := make(map[string]int)
	var out []DomainTime
	for _, s := range stats.Sessions {
		i, ok := index[s.Domain]
		if !ok {
			i = len(out)
			index[s.Domain] = i
			out = append(out, DomainTime{Domain: s.Domain, Category: s.Category})
		}
		out[i].TimeMs += s.DurationMs
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].TimeMs > out[b].TimeMs })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// HourlyMinutes buckets the day's tracked minutes by the local hour each
// session ended in.
func HourlyMinutes(stats domain.DailyStats, loc *time.Location) [24]float64 {
	if loc == nil {
		loc = time.Local
	}
	var hours [24]float64
	for _, s := range stats.Sessions {
		hours[s.Timestamp.In(loc).Hour()] += float64(s.DurationMs) / 60000
	}
	return hours
}
