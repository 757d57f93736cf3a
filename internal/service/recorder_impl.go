package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/productiviquest/internal/db"
	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/metrics"
	"github.com/alexanderramin/productiviquest/internal/notify"
	"github.com/alexanderramin/productiviquest/internal/progression"
	"github.com/alexanderramin/productiviquest/internal/repository"
	"github.com/alexanderramin/productiviquest/internal/scoring"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultMinSession is the shortest session that is recorded. Shorter
// ones are accidental tab flicks.
const DefaultMinSession = 5 * time.Second

const notifyTimeout = 10 * time.Second

// RecorderConfig wires the recorder's collaborators. Zero values are
// replaced with no-op or default implementations.
type RecorderConfig struct {
	MinSession time.Duration
	Evaluator  *progression.Evaluator
	Notifier   notify.Notifier
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger
}

type recorderService struct {
	store      *Store
	minSession time.Duration
	evaluator  *progression.Evaluator
	notifier   notify.Notifier
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	observer   UseCaseObserver
}

func NewRecorder(store *Store, cfg RecorderConfig, observers ...UseCaseObserver) Recorder {
	if cfg.MinSession <= 0 {
		cfg.MinSession = DefaultMinSession
	}
	if cfg.Evaluator == nil {
		cfg.Evaluator = progression.NewEvaluator(nil)
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Nop{}
	}
	return &recorderService{
		store:      store,
		minSession: cfg.MinSession,
		evaluator:  cfg.Evaluator,
		notifier:   cfg.Notifier,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger.With().Str("component", "recorder").Logger(),
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (r *recorderService) RecordSession(ctx context.Context, host string, d time.Duration, now time.Time) (res RecordResult, err error) {
	if d < r.minSession {
		r.metrics.RecordDiscarded()
		r.logger.Debug().Str("domain", host).Dur("duration", d).Msg("session below minimum, discarded")
		return RecordResult{Discarded: true}, nil
	}

	startedAt := time.Now()
	fields := map[string]any{"domain": host, "duration_ms": d.Milliseconds()}
	defer observe(ctx, r.observer, "record-session", startedAt, fields, &err)

	var notifyEnabled bool
	var outcome rolloverOutcome
	today := domain.DayOf(now, r.store.loc)

	err = r.store.writeTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		stats, o, err := rollover(ctx, tx, today, now)
		if err != nil {
			return fmt.Errorf("rollover: %w", err)
		}
		outcome = o

		prefs := repository.NewSQLitePreferencesRepo(tx)
		cats, err := prefs.GetCategories(ctx)
		if err != nil {
			return err
		}
		goals, err := loadGoals(ctx, tx)
		if err != nil {
			return err
		}

		session := domain.Session{
			ID:         uuid.New().String(),
			Day:        today,
			Domain:     host,
			Category:   scoring.Classify(host, cats),
			DurationMs: d.Milliseconds(),
			Timestamp:  now,
		}
		stats.Apply(session)
		stats.Score = scoring.Score(stats)

		daily := repository.NewSQLiteDailyStatsRepo(tx)
		if err := daily.SaveCurrent(ctx, stats); err != nil {
			return err
		}

		achievements := repository.NewSQLiteAchievementRepo(tx)
		unlocked, err := achievements.List(ctx)
		if err != nil {
			return err
		}
		prog, err := loadProgression(ctx, tx)
		if err != nil {
			return err
		}
		archived, err := daily.ListArchived(ctx)
		if err != nil {
			return err
		}

		result := r.evaluator.Evaluate(progression.Input{
			Stats:    stats,
			Goals:    goals,
			Archived: archived,
			Location: r.store.loc,
		}, unlocked, prog)
		if result.Changed() {
			if err := achievements.Add(ctx, result.NewAchievements, now); err != nil {
				return err
			}
			if err := repository.NewSQLiteProgressionRepo(tx).Save(ctx, result.Progression); err != nil {
				return err
			}
		}

		settings, err := loadSettings(ctx, tx)
		if err != nil {
			return err
		}
		notifyEnabled = settings.Notifications

		res = RecordResult{
			RolledOver:      outcome.Moved,
			Session:         session,
			Stats:           stats,
			NewAchievements: result.NewAchievements,
			Progression:     result.Progression,
		}
		return nil
	})
	if err != nil {
		return RecordResult{}, fmt.Errorf("recording session: %w", err)
	}

	if outcome.Moved {
		r.metrics.RecordRollover(outcome.Archived)
	}
	r.metrics.RecordSession(string(res.Session.Category), res.Session.DurationMs)
	r.metrics.SetScore(res.Stats.Score)
	for _, id := range res.NewAchievements {
		r.metrics.RecordAchievement(id)
	}
	fields["category"] = string(res.Session.Category)
	fields["score"] = res.Stats.Score

	if len(res.NewAchievements) > 0 {
		fields["achievements"] = res.NewAchievements
		if notifyEnabled {
			r.notify(ctx, res.NewAchievements[0])
		}
	}
	return res, nil
}

// notify announces the first achievement of a batch. Delivery failures are
// logged only; recording has already succeeded.
func (r *recorderService) notify(ctx context.Context, id string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := r.notifier.Notify(ctx, domain.AchievementTitle, domain.AchievementMessage(id)); err != nil {
		r.logger.Warn().Err(err).Str("achievement", id).Msg("achievement notification failed")
	}
}

func (r *recorderService) RolloverIfNeeded(ctx context.Context, now time.Time) (moved bool, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, r.observer, "rollover", startedAt, fields, &err)

	var outcome rolloverOutcome
	today := domain.DayOf(now, r.store.loc)
	err = r.store.writeTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		_, outcome, err = rollover(ctx, tx, today, now)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("rollover: %w", err)
	}

	fields["moved"] = outcome.Moved
	fields["archived"] = outcome.Archived
	if outcome.Moved {
		r.metrics.RecordRollover(outcome.Archived)
		r.metrics.SetScore(0)
	}
	return outcome.Moved, nil
}
