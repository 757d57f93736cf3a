package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/productiviquest/internal/db"
	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/repository"
	"github.com/alexanderramin/productiviquest/internal/scoring"
)

// Store is the typed state store shared by the recorder and the state
// service. Every persisted write takes its mutex, so recording, rollover
// and user mutations never interleave.
type Store struct {
	uow            db.UnitOfWork
	mu             sync.Mutex
	loc            *time.Location
	now            func() time.Time
	seedCategories domain.CategoryConfig
}

// NewStore creates a Store. A nil location means time.Local.
func NewStore(uow db.UnitOfWork, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{
		uow:            uow,
		loc:            loc,
		now:            time.Now,
		seedCategories: domain.DefaultCategories(),
	}
}

// WithClock overrides the time source used by read accessors and seeding.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// WithSeedCategories replaces the category lists written on first run.
func (s *Store) WithSeedCategories(cfg domain.CategoryConfig) *Store {
	s.seedCategories = cfg
	return s
}

// Location returns the zone used to derive calendar days.
func (s *Store) Location() *time.Location {
	return s.loc
}

func (s *Store) today() string {
	return domain.DayOf(s.now(), s.loc)
}

// writeTx runs fn under the write mutex inside one transaction.
func (s *Store) writeTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uow.WithinTx(ctx, fn)
}

// rolloverOutcome reports what a rollover check did.
type rolloverOutcome struct {
	Moved    bool
	Archived bool
}

// rollover loads the current day, archiving or discarding it when it
// belongs to an earlier day. The returned stats are always for today.
func rollover(ctx context.Context, tx db.DBTX, today string, now time.Time) (domain.DailyStats, rolloverOutcome, error) {
	daily := repository.NewSQLiteDailyStatsRepo(tx)

	cur, err := daily.GetCurrent(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		fresh := domain.NewDailyStats(today)
		return fresh, rolloverOutcome{}, daily.SaveCurrent(ctx, fresh)
	}
	if err != nil {
		return domain.DailyStats{}, rolloverOutcome{}, err
	}

	// The archive lives in SQL, so eviction is TrimArchived's job and the
	// weekly slice is not loaded here.
	next, _, archived := scoring.Rollover(*cur, nil, today)
	if cur.Date == today {
		return next, rolloverOutcome{}, nil
	}

	if archived {
		if err := daily.ArchiveCurrent(ctx, now); err != nil {
			return domain.DailyStats{}, rolloverOutcome{}, fmt.Errorf("archiving %s: %w", cur.Date, err)
		}
		if _, err := daily.TrimArchived(ctx, domain.MaxArchivedDays); err != nil {
			return domain.DailyStats{}, rolloverOutcome{}, err
		}
	} else if err := daily.DiscardCurrent(ctx); err != nil {
		return domain.DailyStats{}, rolloverOutcome{}, err
	}

	if err := daily.SaveCurrent(ctx, next); err != nil {
		return domain.DailyStats{}, rolloverOutcome{}, err
	}
	return next, rolloverOutcome{Moved: true, Archived: archived}, nil
}

// The loaders below fall back to defaults for rows that were never seeded.

func loadDaily(ctx context.Context, tx db.DBTX, today string) (domain.DailyStats, error) {
	cur, err := repository.NewSQLiteDailyStatsRepo(tx).GetCurrent(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewDailyStats(today), nil
	}
	if err != nil {
		return domain.DailyStats{}, err
	}
	return *cur, nil
}

func loadProgression(ctx context.Context, tx db.DBTX) (domain.Progression, error) {
	p, err := repository.NewSQLiteProgressionRepo(tx).Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultProgression(), nil
	}
	if err != nil {
		return domain.Progression{}, err
	}
	return *p, nil
}

func loadGoals(ctx context.Context, tx db.DBTX) (domain.Goals, error) {
	g, err := repository.NewSQLitePreferencesRepo(tx).GetGoals(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultGoals(), nil
	}
	if err != nil {
		return domain.Goals{}, err
	}
	return *g, nil
}

func loadSettings(ctx context.Context, tx db.DBTX) (domain.Settings, error) {
	st, err := repository.NewSQLitePreferencesRepo(tx).GetSettings(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	return *st, nil
}

// seed writes defaults for every key not yet recorded in state_keys.
// Existing values are never overwritten.
func (s *Store) seed(ctx context.Context, tx db.DBTX, now time.Time) ([]string, error) {
	keys := repository.NewSQLiteStateKeyRepo(tx)
	seeded, err := keys.Seeded(ctx)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, k := range repository.AllStateKeys {
		if !seeded[k] {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	daily := repository.NewSQLiteDailyStatsRepo(tx)
	prefs := repository.NewSQLitePreferencesRepo(tx)
	progRepo := repository.NewSQLiteProgressionRepo(tx)
	progDone := false

	for _, k := range missing {
		switch k {
		case repository.KeyDailyStats:
			if _, err := daily.GetCurrent(ctx); errors.Is(err, repository.ErrNotFound) {
				err = daily.SaveCurrent(ctx, domain.NewDailyStats(domain.DayOf(now, s.loc)))
				if err != nil {
					return nil, err
				}
			} else if err != nil {
				return nil, err
			}
		case repository.KeyLevel, repository.KeyExperience, repository.KeyStreak:
			if progDone {
				continue
			}
			progDone = true
			if _, err := progRepo.Get(ctx); errors.Is(err, repository.ErrNotFound) {
				if err := progRepo.Save(ctx, domain.DefaultProgression()); err != nil {
					return nil, err
				}
			} else if err != nil {
				return nil, err
			}
		case repository.KeyGoals:
			if _, err := prefs.GetGoals(ctx); errors.Is(err, repository.ErrNotFound) {
				if err := prefs.SaveGoals(ctx, domain.DefaultGoals()); err != nil {
					return nil, err
				}
			} else if err != nil {
				return nil, err
			}
		case repository.KeyCategories:
			cur, err := prefs.GetCategories(ctx)
			if err != nil {
				return nil, err
			}
			if len(cur.Productive)+len(cur.Distracting)+len(cur.Neutral) == 0 {
				if err := prefs.SaveCategories(ctx, s.seedCategories); err != nil {
					return nil, err
				}
			}
		case repository.KeySettings:
			if _, err := prefs.GetSettings(ctx); errors.Is(err, repository.ErrNotFound) {
				if err := prefs.SaveSettings(ctx, domain.DefaultSettings()); err != nil {
					return nil, err
				}
			} else if err != nil {
				return nil, err
			}
		}
		// weeklyStats and achievements default to empty; marking them is enough.
	}

	if err := keys.MarkSeeded(ctx, missing, now); err != nil {
		return nil, err
	}
	return missing, nil
}
