package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/productiviquest/internal/db"
	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/repository"
	"github.com/alexanderramin/productiviquest/internal/scoring"
)

type stateService struct {
	store    *Store
	observer UseCaseObserver
}

func NewStateService(store *Store, observers ...UseCaseObserver) StateService {
	return &stateService{store: store, observer: useCaseObserverOrNoop(observers)}
}

func (s *stateService) Init(ctx context.Context) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "init-state", startedAt, fields, &err)

	return s.store.writeTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		seeded, err := s.store.seed(ctx, tx, s.store.now())
		fields["seeded"] = seeded
		return err
	})
}

// read runs fn in a read transaction so multi-table views are consistent.
func (s *stateService) read(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return s.store.uow.WithinReadTx(ctx, fn)
}

func (s *stateService) Daily(ctx context.Context) (*domain.DailyStats, error) {
	var out domain.DailyStats
	err := s.read(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = loadDaily(ctx, tx, s.store.today())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading daily stats: %w", err)
	}
	return &out, nil
}

func (s *stateService) Weekly(ctx context.Context) (domain.WeeklyStats, error) {
	var out domain.WeeklyStats
	err := s.read(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = repository.NewSQLiteDailyStatsRepo(tx).ListArchived(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading weekly stats: %w", err)
	}
	return out, nil
}

func (s *stateService) Achievements(ctx context.Context) ([]string, error) {
	var out []string
	err := s.read(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = repository.NewSQLiteAchievementRepo(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading achievements: %w", err)
	}
	return out, nil
}

func (s *stateService) Progression(ctx context.Context) (*domain.Progression, error) {
	var out domain.Progression
	err := s.read(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = loadProgression(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading progression: %w", err)
	}
	return &out, nil
}

func (s *stateService) Goals(ctx context.Context) (*domain.Goals, error) {
	var out domain.Goals
	err := s.read(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = loadGoals(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}
	return &out, nil
}

func (s *stateService) Categories(ctx context.Context) (domain.CategoryConfig, error) {
	var out domain.CategoryConfig
	err := s.read(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = repository.NewSQLitePreferencesRepo(tx).GetCategories(ctx)
		return err
	})
	if err != nil {
		return domain.CategoryConfig{}, fmt.Errorf("loading categories: %w", err)
	}
	return out, nil
}

func (s *stateService) Settings(ctx context.Context) (*domain.Settings, error) {
	var out domain.Settings
	err := s.read(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = loadSettings(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return &out, nil
}

func (s *stateService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	err := s.read(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		if snap.Daily, err = loadDaily(ctx, tx, s.store.today()); err != nil {
			return err
		}
		if snap.Weekly, err = repository.NewSQLiteDailyStatsRepo(tx).ListArchived(ctx); err != nil {
			return err
		}
		if snap.Achievements, err = repository.NewSQLiteAchievementRepo(tx).List(ctx); err != nil {
			return err
		}
		if snap.Progression, err = loadProgression(ctx, tx); err != nil {
			return err
		}
		if snap.Goals, err = loadGoals(ctx, tx); err != nil {
			return err
		}
		if snap.Categories, err = repository.NewSQLitePreferencesRepo(tx).GetCategories(ctx); err != nil {
			return err
		}
		snap.Settings, err = loadSettings(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return &snap, nil
}

func (s *stateService) GoalProgress(ctx context.Context) (*scoring.GoalProgress, error) {
	var out scoring.GoalProgress
	err := s.read(ctx, func(ctx context.Context, tx db.DBTX) error {
		stats, err := loadDaily(ctx, tx, s.store.today())
		if err != nil {
			return err
		}
		goals, err := loadGoals(ctx, tx)
		if err != nil {
			return err
		}
		out = scoring.Progress(stats, goals)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading goal progress: %w", err)
	}
	return &out, nil
}

func (s *stateService) UpdateGoal(ctx context.Context, key domain.GoalKey, value float64) (_ *domain.Goals, err error) {
	startedAt := time.Now()
	fields := map[string]any{"goal": string(key), "value": value}
	defer observe(ctx, s.observer, "update-goal", startedAt, fields, &err)

	var goals domain.Goals
	err = s.store.writeTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		if goals, err = loadGoals(ctx, tx); err != nil {
			return err
		}
		if err := goals.Set(key, value); err != nil {
			return err
		}
		return repository.NewSQLitePreferencesRepo(tx).SaveGoals(ctx, goals)
	})
	if err != nil {
		return nil, fmt.Errorf("updating goal: %w", err)
	}
	return &goals, nil
}

func (s *stateService) AddCategoryDomain(ctx context.Context, category domain.Category, entry string) (domain.CategoryConfig, error) {
	return s.editCategories(ctx, "add-category-domain", category, entry, func(cfg *domain.CategoryConfig) (bool, error) {
		return cfg.Add(category, entry)
	})
}

func (s *stateService) RemoveCategoryDomain(ctx context.Context, category domain.Category, entry string) (domain.CategoryConfig, error) {
	return s.editCategories(ctx, "remove-category-domain", category, entry, func(cfg *domain.CategoryConfig) (bool, error) {
		return cfg.Remove(category, entry), nil
	})
}

// editCategories applies edit to the stored config and saves it when it
// changed. Unchanged configs are returned as-is.
func (s *stateService) editCategories(
	ctx context.Context,
	name string,
	category domain.Category,
	entry string,
	edit func(cfg *domain.CategoryConfig) (bool, error),
) (_ domain.CategoryConfig, err error) {
	startedAt := time.Now()
	fields := map[string]any{"category": string(category), "domain": entry}
	defer observe(ctx, s.observer, name, startedAt, fields, &err)

	if _, err = domain.ParseCategory(string(category)); err != nil {
		return domain.CategoryConfig{}, err
	}

	var cfg domain.CategoryConfig
	err = s.store.writeTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		prefs := repository.NewSQLitePreferencesRepo(tx)
		var err error
		if cfg, err = prefs.GetCategories(ctx); err != nil {
			return err
		}
		changed, err := edit(&cfg)
		if err != nil {
			return err
		}
		fields["changed"] = changed
		if !changed {
			return nil
		}
		return prefs.SaveCategories(ctx, cfg)
	})
	if err != nil {
		return domain.CategoryConfig{}, fmt.Errorf("editing categories: %w", err)
	}
	return cfg, nil
}

func (s *stateService) UpdateSettings(ctx context.Context, settings domain.Settings) (_ *domain.Settings, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "update-settings", startedAt, nil, &err)

	err = s.store.writeTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePreferencesRepo(tx).SaveSettings(ctx, settings)
	})
	if err != nil {
		return nil, fmt.Errorf("updating settings: %w", err)
	}
	return &settings, nil
}

func (s *stateService) SetStreak(ctx context.Context, streak int) (_ *domain.Progression, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "set-streak", startedAt, map[string]any{"streak": streak}, &err)

	if streak < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStreak, streak)
	}

	var prog domain.Progression
	err = s.store.writeTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		if prog, err = loadProgression(ctx, tx); err != nil {
			return err
		}
		prog.Streak = streak
		return repository.NewSQLiteProgressionRepo(tx).Save(ctx, prog)
	})
	if err != nil {
		return nil, fmt.Errorf("setting streak: %w", err)
	}
	return &prog, nil
}

func (s *stateService) ResetAllState(ctx context.Context, confirmed bool) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "reset-all-state", startedAt, map[string]any{"confirmed": confirmed}, &err)

	if !confirmed {
		return ErrResetNotConfirmed
	}
	err = s.store.writeTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteStateKeyRepo(tx).ResetAll(ctx); err != nil {
			return err
		}
		_, err := s.store.seed(ctx, tx, s.store.now())
		return err
	})
	if err != nil {
		return fmt.Errorf("resetting state: %w", err)
	}
	return nil
}
