package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/productiviquest/internal/api"
	"github.com/alexanderramin/productiviquest/internal/cli/formatter"
)

const daemonTimeout = 500 * time.Millisecond

// fetchTracking asks a running daemon what it is measuring.
func fetchTracking(ctx context.Context, addr string) (*api.TrackingResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, daemonTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/v1/tracking", nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("daemon returned %s", resp.Status)
	}

	var out api.TrackingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding tracking status: %w", err)
	}
	return &out, nil
}

// trackingLine summarizes the daemon's state for the status screen.
func (a *App) trackingLine(ctx context.Context) string {
	if a.DaemonAddr == "" {
		return ""
	}
	t, err := fetchTracking(ctx, a.DaemonAddr)
	if err != nil {
		return "daemon not running at " + a.DaemonAddr
	}
	switch {
	case t.Mode == "tracking" && t.StartedAt != nil:
		elapsed := a.now().Sub(*t.StartedAt)
		return fmt.Sprintf("tracking %s for %s", t.Domain, formatter.FormatDuration(elapsed.Milliseconds()))
	case !t.WindowFocused:
		return "idle, browser not focused"
	default:
		return "idle"
	}
}
