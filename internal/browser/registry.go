// Package browser keeps the daemon's view of browser tabs and page
// activity, fed by the extension shim over HTTP.
package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/productiviquest/internal/domain"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultTabCacheSize bounds the number of tabs remembered at once.
const DefaultTabCacheSize = 512

var ErrTabNotFound = errors.New("tab not found")

// TabRegistry remembers the most recently reported tabs. Closed tabs are
// removed explicitly; the LRU bound covers tabs whose close was missed.
type TabRegistry struct {
	tabs *lru.Cache[int, domain.Tab]
}

func NewTabRegistry(size int) (*TabRegistry, error) {
	if size <= 0 {
		size = DefaultTabCacheSize
	}
	cache, err := lru.New[int, domain.Tab](size)
	if err != nil {
		return nil, fmt.Errorf("creating tab cache: %w", err)
	}
	return &TabRegistry{tabs: cache}, nil
}

// Upsert records the latest state of a tab. Zero fields keep their
// previous value, so partial updates do not erase the URL or window.
func (r *TabRegistry) Upsert(tab domain.Tab) domain.Tab {
	if prev, ok := r.tabs.Get(tab.ID); ok {
		if tab.URL == "" {
			tab.URL = prev.URL
		}
		if tab.WindowID == 0 {
			tab.WindowID = prev.WindowID
		}
	}
	r.tabs.Add(tab.ID, tab)
	return tab
}

func (r *TabRegistry) Remove(id int) {
	r.tabs.Remove(id)
}

// GetTab returns the last known state of a tab.
func (r *TabRegistry) GetTab(_ context.Context, id int) (domain.Tab, error) {
	tab, ok := r.tabs.Get(id)
	if !ok {
		return domain.Tab{}, fmt.Errorf("tab %d: %w", id, ErrTabNotFound)
	}
	return tab, nil
}

func (r *TabRegistry) Len() int {
	return r.tabs.Len()
}
