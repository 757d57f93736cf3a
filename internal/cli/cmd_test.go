package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/productiviquest/internal/api"
	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/service"
	"github.com/alexanderramin/productiviquest/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// now is a Monday afternoon in UTC.
var now = time.Date(2024, 3, 11, 15, 0, 0, 0, time.UTC)

type cliEnv struct {
	app      *App
	recorder service.Recorder
}

// testApp wires an App over an in-memory DB with a fixed clock.
func testApp(t *testing.T) *cliEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := func() time.Time { return now }
	store := service.NewStore(testutil.NewTestUoW(database), time.UTC).WithClock(clock)
	state := service.NewStateService(store)
	require.NoError(t, state.Init(context.Background()))

	return &cliEnv{
		app: &App{
			State:    state,
			Location: time.UTC,
			Now:      clock,
		},
		recorder: service.NewRecorder(store, service.RecorderConfig{Logger: zerolog.Nop()}),
	}
}

func (e *cliEnv) record(t *testing.T, host string, d time.Duration) {
	t.Helper()
	_, err := e.recorder.RecordSession(context.Background(), host, d, now)
	require.NoError(t, err)
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- status / weekly / achievements ---

func TestStatusCmd_ShowsTodaysScoreAndSites(t *testing.T) {
	env := testApp(t)
	env.record(t, "github.com", 10*time.Minute)
	env.record(t, "youtube.com", 2*time.Minute)

	out, err := executeCmd(t, env.app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-11")
	assert.Contains(t, out, "github.com")
	assert.Contains(t, out, "youtube.com")
	assert.Contains(t, out, "10m")
	assert.NotContains(t, out, "daemon")
}

func TestStatusCmd_EmptyDay(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Score")
	assert.NotContains(t, out, "TOP SITES")
}

func TestStatusCmd_ShowsLiveTracking(t *testing.T) {
	env := testApp(t)
	started := now.Add(-12 * time.Minute)
	tabID := 7
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tracking", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.TrackingResponse{
			Mode: "tracking", TabID: &tabID, Domain: "github.com", StartedAt: &started, WindowFocused: true,
		})
	}))
	defer srv.Close()
	env.app.DaemonAddr = strings.TrimPrefix(srv.URL, "http://")

	out, err := executeCmd(t, env.app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "tracking github.com for 12m")
}

func TestStatusCmd_IdleUnfocusedDaemon(t *testing.T) {
	env := testApp(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.TrackingResponse{Mode: "idle", WindowFocused: false})
	}))
	defer srv.Close()
	env.app.DaemonAddr = strings.TrimPrefix(srv.URL, "http://")

	out, err := executeCmd(t, env.app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "browser not focused")
}

func TestStatusCmd_DaemonUnreachable(t *testing.T) {
	env := testApp(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := strings.TrimPrefix(srv.URL, "http://")
	srv.Close()
	env.app.DaemonAddr = addr

	out, err := executeCmd(t, env.app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "daemon not running")
}

func TestWeeklyCmd_NoHistory(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "weekly")
	require.NoError(t, err)
	assert.Contains(t, out, "No archived days yet.")
}

func TestAchievementsCmd_ListsUnlocked(t *testing.T) {
	env := testApp(t)
	env.record(t, "github.com", 10*time.Minute)

	out, err := executeCmd(t, env.app, "achievements")
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("2 of %d unlocked", len(domain.AchievementCatalog)))
	assert.Contains(t, out, "High Performer")
	assert.Contains(t, out, "Productivity Master")
}

// --- goals ---

func TestGoalSetCmd(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "goal", "set", "dailyProductiveHours", "4.5")
	require.NoError(t, err)
	assert.Contains(t, out, "dailyProductiveHours set to 4.5")

	goals, err := env.app.State.Goals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4.5, goals.DailyProductiveHours)
}

func TestGoalSetCmd_Errors(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "goal", "set", "sleepHours", "8")
	assert.ErrorIs(t, err, domain.ErrUnknownGoal)

	_, err = executeCmd(t, env.app, "goal", "set", "maxDistractingHours", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidGoal)

	_, err = executeCmd(t, env.app, "goal", "set", "maxDistractingHours", "lots")
	assert.Error(t, err)

	_, err = executeCmd(t, env.app, "goal", "set", "maxDistractingHours")
	assert.Error(t, err)

	goals, err := env.app.State.Goals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoals(), *goals)
}

func TestGoalListCmd(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "goal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "focusSessionMinutes")
	assert.Contains(t, out, "25m")
}

// --- categories ---

func TestCategoryAddRemoveCmd(t *testing.T) {
	env := testApp(t)
	ctx := context.Background()

	out, err := executeCmd(t, env.app, "category", "add", "productive", "Example.dev")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Example.dev")

	cats, err := env.app.State.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, cats.Productive, "example.dev")

	_, err = executeCmd(t, env.app, "category", "rm", "productive", "example.dev")
	require.NoError(t, err)
	cats, err = env.app.State.Categories(ctx)
	require.NoError(t, err)
	assert.NotContains(t, cats.Productive, "example.dev")
}

func TestCategoryCmd_Errors(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "category", "add", "fun", "example.dev")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = executeCmd(t, env.app, "category", "add", "productive", "  ")
	assert.ErrorIs(t, err, domain.ErrEmptyDomain)
}

func TestCategoryListCmd(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "category", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "PRODUCTIVE")
	assert.Contains(t, out, "linkedin.com/learning")
	assert.Contains(t, out, "twitch.tv")
}

// --- streak / settings ---

func TestStreakSetCmd(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "streak", "set", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Streak set to 5")

	_, err = executeCmd(t, env.app, "streak", "set", "-1")
	assert.ErrorIs(t, err, service.ErrInvalidStreak)

	prog, err := env.app.State.Progression(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, prog.Streak)
}

func TestSettingsCmd(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "light")

	_, err = executeCmd(t, env.app, "settings", "--notifications=false", "--theme", "dark")
	require.NoError(t, err)

	s, err := env.app.State.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Settings{Theme: "dark", Notifications: false, SoundEnabled: true}, *s)
}

// --- reset ---

func TestResetCmd_WithYes(t *testing.T) {
	env := testApp(t)
	env.record(t, "github.com", 10*time.Minute)

	out, err := executeCmd(t, env.app, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "reset to defaults")

	ids, err := env.app.State.Achievements(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestResetCmd_NonInteractiveNeedsYes(t *testing.T) {
	env := testApp(t)
	env.record(t, "github.com", 10*time.Minute)
	env.app.Confirm = func(string) (bool, error) {
		t.Fatal("prompted without a terminal")
		return false, nil
	}

	_, err := executeCmd(t, env.app, "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	ids, err := env.app.State.Achievements(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, ids)
}

func TestResetCmd_InteractivePrompt(t *testing.T) {
	env := testApp(t)
	env.record(t, "github.com", 10*time.Minute)
	env.app.IsInteractive = func() bool { return true }

	env.app.Confirm = func(string) (bool, error) { return false, nil }
	out, err := executeCmd(t, env.app, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset cancelled.")
	ids, err := env.app.State.Achievements(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, ids)

	env.app.Confirm = func(string) (bool, error) { return false, errors.New("user aborted") }
	_, err = executeCmd(t, env.app, "reset")
	assert.EqualError(t, err, "user aborted")

	env.app.Confirm = func(string) (bool, error) { return true, nil }
	_, err = executeCmd(t, env.app, "reset")
	require.NoError(t, err)
	ids, err = env.app.State.Achievements(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

// --- serve ---

func TestServeCmd_RunsDaemon(t *testing.T) {
	env := testApp(t)
	called := false
	env.app.Serve = func(ctx context.Context) error {
		called = true
		assert.NotNil(t, ctx)
		return nil
	}

	_, err := executeCmd(t, env.app, "serve")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestServeCmd_Unavailable(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "serve")
	assert.Error(t, err)
}
