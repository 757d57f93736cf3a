package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/productiviquest/internal/api"
	"github.com/alexanderramin/productiviquest/internal/browser"
	"github.com/alexanderramin/productiviquest/internal/config"
	"github.com/alexanderramin/productiviquest/internal/metrics"
	"github.com/alexanderramin/productiviquest/internal/notify"
	"github.com/alexanderramin/productiviquest/internal/progression"
	"github.com/alexanderramin/productiviquest/internal/service"
	"github.com/alexanderramin/productiviquest/internal/tracker"
)

const shutdownTimeout = 5 * time.Second

// Daemon is the running tracker plus its HTTP surface.
type Daemon struct {
	Recorder service.Recorder
	Tracker  *tracker.Tracker
	Server   *api.Server
	Metrics  *metrics.Metrics

	clock  tracker.Clock
	loc    *time.Location
	logger zerolog.Logger
}

// NewDaemon builds every daemon component from cfg on top of core.
func NewDaemon(core *Core, cfg *config.Config, logger zerolog.Logger) (*Daemon, error) {
	m := metrics.New()

	var notifier notify.Notifier = notify.NewLogNotifier(logger)
	if cfg.SlackEnabled() {
		notifier = notify.Multi{notifier, notify.NewSlackNotifier(cfg.SlackWebhookURL)}
	}

	rules := progression.DefaultRules
	if cfg.ExtendedAchievements {
		rules = progression.ExtendedRules
	}

	recorder := service.NewRecorder(core.Store, service.RecorderConfig{
		MinSession: cfg.MinSession,
		Evaluator:  progression.NewEvaluator(rules),
		Notifier:   notifier,
		Metrics:    m,
		Logger:     logger,
	}, core.Observer)

	tabs, err := browser.NewTabRegistry(cfg.TabCacheSize)
	if err != nil {
		return nil, err
	}
	clock := tracker.RealClock()
	detector := browser.NewHeartbeatDetector(cfg.IdleThreshold, clock.Now)

	tr := tracker.New(tabs, detector, recorder, tracker.Config{
		LivenessInterval: cfg.LivenessInterval,
		Clock:            clock,
		Logger:           logger,
		Metrics:          m,
	})

	server := api.NewServer(api.ServerConfig{ListenAddr: cfg.ListenAddr}, api.Deps{
		State:    core.State,
		Tracker:  tr,
		Tabs:     tabs,
		Activity: detector,
		Metrics:  m,
		Location: core.Location,
		Now:      clock.Now,
	}, logger)

	return &Daemon{
		Recorder: recorder,
		Tracker:  tr,
		Server:   server,
		Metrics:  m,
		clock:    clock,
		loc:      core.Location,
		logger:   logger.With().Str("component", "daemon").Logger(),
	}, nil
}

// Run serves until ctx is cancelled or the HTTP listener fails. On the way
// out the open session is flushed before Run returns.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Catch up on a day change that happened while the daemon was down.
	if _, err := d.Recorder.RolloverIfNeeded(ctx, d.clock.Now()); err != nil {
		d.logger.Error().Err(err).Msg("startup rollover failed")
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = d.Tracker.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		tracker.RunDaily(ctx, d.clock, d.loc, func(ctx context.Context, now time.Time) {
			if _, err := d.Recorder.RolloverIfNeeded(ctx, now); err != nil {
				d.logger.Error().Err(err).Msg("scheduled rollover failed")
			}
		})
	}()

	serveErr := make(chan error, 1)
	go func() { serveErr <- d.Server.Start() }()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if err != nil {
			err = fmt.Errorf("api server: %w", err)
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer stop()
	if shutdownErr := d.Server.Shutdown(shutdownCtx); shutdownErr != nil {
		d.logger.Warn().Err(shutdownErr).Msg("api shutdown")
	}

	cancel()
	wg.Wait()
	d.logger.Info().Msg("daemon stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
