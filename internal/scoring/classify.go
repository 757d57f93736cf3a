package scoring

import (
	"strings"

	"github.com/alexanderramin/productiviquest/internal/domain"
)

// Classify maps a domain to a category by substring containment against the
// configured lists. Productive is checked before distracting; anything
// unmatched is neutral.
func Classify(host string, cfg domain.CategoryConfig) domain.Category {
	host = domain.StripWWW(strings.ToLower(host))
	if containsAny(host, cfg.Productive) {
		return domain.CategoryProductive
	}
	if containsAny(host, cfg.Distracting) {
		return domain.CategoryDistracting
	}
	return domain.CategoryNeutral
}

func containsAny(host string, entries []string) bool {
	for _, e := range entries {
		if e != "" && strings.Contains(host, e) {
			return true
		}
	}
	return false
}
