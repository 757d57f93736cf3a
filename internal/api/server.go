// Package api is the daemon's HTTP surface: browser event ingestion from
// the extension shim plus read and mutation endpoints over persisted state.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/metrics"
	"github.com/alexanderramin/productiviquest/internal/service"
	"github.com/alexanderramin/productiviquest/internal/tracker"
)

// Tracker receives browser signals and reports the live tracking state.
type Tracker interface {
	TabActivated(ctx context.Context, tabID int) error
	WindowFocusChanged(ctx context.Context, focused bool) error
	PageActivity(ctx context.Context, tabID int) error
	Status() tracker.State
}

// TabStore keeps the last reported state of each tab.
type TabStore interface {
	Upsert(tab domain.Tab) domain.Tab
	Remove(id int)
}

// ActivityLog records page activity heartbeats.
type ActivityLog interface {
	Touch(tabID int, at time.Time)
	Forget(tabID int)
}

// Deps are the collaborators the handlers call into.
type Deps struct {
	State    service.StateService
	Tracker  Tracker
	Tabs     TabStore
	Activity ActivityLog
	Metrics  *metrics.Metrics
	// Location buckets hourly stats. Defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

type ServerConfig struct {
	ListenAddr string
}

// Server is the daemon's Fiber application.
type Server struct {
	app    *fiber.App
	logger zerolog.Logger
	config ServerConfig
}

func NewServer(cfg ServerConfig, deps Deps, logger zerolog.Logger) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}
	logger = logger.With().Str("component", "api").Logger()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	s := &Server{app: app, logger: logger, config: cfg}
	s.setupMiddleware()
	s.setupRoutes(newHandlers(deps, logger), deps.Metrics)
	return s
}

func (s *Server) setupMiddleware() {
	s.app.Use(recover.New(recover.Config{EnableStackTrace: true}))

	s.app.Use(func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/healthz" || path == "/metrics" {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()
		s.logger.Debug().
			Str("method", c.Method()).
			Str("path", path).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("api request")
		return err
	})
}

func (s *Server) setupRoutes(h *handlers, m *metrics.Metrics) {
	s.app.Get("/healthz", h.Liveness)
	if m != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	v1 := s.app.Group("/v1")

	events := v1.Group("/events")
	events.Post("/tab-activated", h.TabActivated)
	events.Post("/tab-updated", h.TabUpdated)
	events.Post("/window-focus", h.WindowFocus)

	v1.Post("/tabs/:id/activity", h.TabActivity)
	v1.Delete("/tabs/:id", h.TabClosed)
	v1.Get("/tracking", h.Tracking)

	v1.Get("/stats/daily", h.Daily)
	v1.Get("/stats/weekly", h.Weekly)
	v1.Get("/stats/hourly", h.Hourly)
	v1.Get("/achievements", h.Achievements)
	v1.Get("/progression", h.Progression)
	v1.Get("/goals", h.Goals)
	v1.Get("/goals/progress", h.GoalProgress)
	v1.Put("/goals/:key", h.UpdateGoal)
	v1.Get("/categories", h.Categories)
	v1.Post("/categories/:category/domains", h.AddCategoryDomain)
	v1.Delete("/categories/:category/domains/:domain", h.RemoveCategoryDomain)
	v1.Get("/settings", h.Settings)
	v1.Put("/settings", h.UpdateSettings)
	v1.Put("/streak", h.SetStreak)
	v1.Get("/snapshot", h.Snapshot)
	v1.Post("/reset", h.Reset)
}

// Start listens on the configured address. Blocks until Shutdown.
func (s *Server) Start() error {
	addr := s.config.ListenAddr
	if addr == "" {
		addr = "127.0.0.1:7777"
	}
	s.logger.Info().Str("addr", addr).Msg("api server starting")
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("api server shutting down")
	return s.app.ShutdownWithContext(ctx)
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

func errorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		detail := err.Error()
		if code == fiber.StatusInternalServerError {
			logger.Error().
				Err(err).
				Str("path", c.Path()).
				Str("method", c.Method()).
				Msg("unhandled error")
			detail = "An internal error occurred"
		}

		return c.Status(code).JSON(ProblemDetail{
			Type:     "internal_error",
			Title:    statusTitle(code),
			Status:   code,
			Detail:   detail,
			Instance: c.Path(),
		})
	}
}
