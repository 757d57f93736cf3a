package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/productiviquest/internal/db"
	"github.com/alexanderramin/productiviquest/internal/notify"
	"github.com/alexanderramin/productiviquest/internal/progression"
	"github.com/alexanderramin/productiviquest/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// day1 is a Monday morning in UTC; services under test use UTC days.
var day1 = time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

type notification struct {
	Title   string
	Message string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, title, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, notification{title, message})
	return f.err
}

func (f *fakeNotifier) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, n := range f.sent {
		out = append(out, n.Message)
	}
	return out
}

type testEnv struct {
	db       *sql.DB
	store    *Store
	recorder Recorder
	state    StateService
	notifier *fakeNotifier
	clock    *time.Time
}

type envOption func(*envConfig)

type envConfig struct {
	uow       func(*sql.DB) db.UnitOfWork
	evaluator *progression.Evaluator
}

func withUoW(fn func(*sql.DB) db.UnitOfWork) envOption {
	return func(c *envConfig) { c.uow = fn }
}

func withEvaluator(e *progression.Evaluator) envOption {
	return func(c *envConfig) { c.evaluator = e }
}

// newTestEnv wires seeded services over an in-memory database with a
// controllable clock starting at day1.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	cfg := envConfig{uow: testutil.NewTestUoW}
	for _, opt := range opts {
		opt(&cfg)
	}

	database := testutil.NewTestDB(t)
	clock := day1
	seedStore := NewStore(testutil.NewTestUoW(database), time.UTC).WithClock(func() time.Time { return clock })
	require.NoError(t, NewStateService(seedStore).Init(context.Background()))

	store := NewStore(cfg.uow(database), time.UTC).WithClock(func() time.Time { return clock })
	notifier := &fakeNotifier{}
	return &testEnv{
		db:    database,
		store: store,
		recorder: NewRecorder(store, RecorderConfig{
			Notifier:  notifier,
			Evaluator: cfg.evaluator,
			Logger:    zerolog.Nop(),
		}),
		state:    NewStateService(store),
		notifier: notifier,
		clock:    &clock,
	}
}

func (e *testEnv) record(t *testing.T, host string, d time.Duration, at time.Time) RecordResult {
	t.Helper()
	res, err := e.recorder.RecordSession(context.Background(), host, d, at)
	require.NoError(t, err)
	return res
}

var _ notify.Notifier = (*fakeNotifier)(nil)
