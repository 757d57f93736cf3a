package scoring

import "github.com/alexanderramin/productiviquest/internal/domain"

// Rollover archives stats into weekly when the calendar day changed.
//
// Same-day calls return the inputs untouched, so repeated calls never
// duplicate an archive entry. Days without tracked time are not archived but
// the date still rolls forward. Weekly is capped at domain.MaxArchivedDays,
// evicting the oldest entries first.
func Rollover(stats domain.DailyStats, weekly domain.WeeklyStats, today string) (domain.DailyStats, domain.WeeklyStats, bool) {
	if stats.Date == today {
		return stats, weekly, false
	}

	archived := false
	if stats.TotalTimeMs > 0 {
		weekly = append(weekly[:len(weekly):len(weekly)], stats.Clone())
		if over := len(weekly) - domain.MaxArchivedDays; over > 0 {
			weekly = weekly[over:]
		}
		archived = true
	}
	return domain.NewDailyStats(today), weekly, archived
}
