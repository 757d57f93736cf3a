package api

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/scoring"
)

type handlers struct {
	deps   Deps
	logger zerolog.Logger
}

func newHandlers(deps Deps, logger zerolog.Logger) *handlers {
	return &handlers{deps: deps, logger: logger}
}

// Liveness handles GET /healthz.
func (h *handlers) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// TabActivated handles POST /v1/events/tab-activated.
func (h *handlers) TabActivated(c *fiber.Ctx) error {
	var req TabActivatedRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_body", "Invalid request body: "+err.Error())
	}
	if req.TabID == nil {
		return badRequest(c, "missing_tab_id", "tabId is required")
	}
	if req.URL != "" || req.WindowID != 0 {
		h.deps.Tabs.Upsert(domain.Tab{ID: *req.TabID, WindowID: req.WindowID, URL: req.URL})
	}
	h.deps.Activity.Touch(*req.TabID, h.deps.Now())
	if err := h.deps.Tracker.TabActivated(c.UserContext(), *req.TabID); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(EventAccepted{Dispatched: true})
}

// TabUpdated handles POST /v1/events/tab-updated. The tab state is always
// stored; the tracker only hears about it once an active tab has finished
// loading.
func (h *handlers) TabUpdated(c *fiber.Ctx) error {
	var req TabUpdatedRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_body", "Invalid request body: "+err.Error())
	}
	if req.TabID == nil {
		return badRequest(c, "missing_tab_id", "tabId is required")
	}
	h.deps.Tabs.Upsert(domain.Tab{ID: *req.TabID, WindowID: req.WindowID, URL: req.URL})

	if req.Status != "complete" || !req.Active {
		return c.Status(fiber.StatusAccepted).JSON(EventAccepted{Dispatched: false})
	}
	h.deps.Activity.Touch(*req.TabID, h.deps.Now())
	if err := h.deps.Tracker.TabActivated(c.UserContext(), *req.TabID); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(EventAccepted{Dispatched: true})
}

// WindowFocus handles POST /v1/events/window-focus.
func (h *handlers) WindowFocus(c *fiber.Ctx) error {
	var req WindowFocusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_body", "Invalid request body: "+err.Error())
	}
	focused := req.WindowID != nil && *req.WindowID != domain.NoWindow
	if err := h.deps.Tracker.WindowFocusChanged(c.UserContext(), focused); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(EventAccepted{Dispatched: true})
}

// TabActivity handles POST /v1/tabs/:id/activity, the page heartbeat.
func (h *handlers) TabActivity(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "invalid_tab_id", "Tab id must be an integer")
	}
	h.deps.Activity.Touch(id, h.deps.Now())
	if err := h.deps.Tracker.PageActivity(c.UserContext(), id); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(EventAccepted{Dispatched: true})
}

// TabClosed handles DELETE /v1/tabs/:id. The next liveness check on a
// closed active tab fails and stops tracking.
func (h *handlers) TabClosed(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "invalid_tab_id", "Tab id must be an integer")
	}
	h.deps.Tabs.Remove(id)
	h.deps.Activity.Forget(id)
	return c.SendStatus(fiber.StatusNoContent)
}

// Tracking handles GET /v1/tracking.
func (h *handlers) Tracking(c *fiber.Ctx) error {
	return c.JSON(toTracking(h.deps.Tracker.Status()))
}

// Daily handles GET /v1/stats/daily.
func (h *handlers) Daily(c *fiber.Ctx) error {
	stats, err := h.deps.State.Daily(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toDailyStats(*stats))
}

// Weekly handles GET /v1/stats/weekly.
func (h *handlers) Weekly(c *fiber.Ctx) error {
	weekly, err := h.deps.State.Weekly(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toWeekly(weekly))
}

// Hourly handles GET /v1/stats/hourly.
func (h *handlers) Hourly(c *fiber.Ctx) error {
	stats, err := h.deps.State.Daily(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	hours := scoring.HourlyMinutes(*stats, h.deps.Location)
	return c.JSON(HourlyResponse{Date: stats.Date, Minutes: hours[:]})
}

// Achievements handles GET /v1/achievements.
func (h *handlers) Achievements(c *fiber.Ctx) error {
	ids, err := h.deps.State.Achievements(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toAchievements(ids))
}

// Progression handles GET /v1/progression.
func (h *handlers) Progression(c *fiber.Ctx) error {
	p, err := h.deps.State.Progression(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toProgression(*p))
}

// Goals handles GET /v1/goals.
func (h *handlers) Goals(c *fiber.Ctx) error {
	g, err := h.deps.State.Goals(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toGoals(*g))
}

// GoalProgress handles GET /v1/goals/progress.
func (h *handlers) GoalProgress(c *fiber.Ctx) error {
	p, err := h.deps.State.GoalProgress(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toGoalProgress(*p))
}

// UpdateGoal handles PUT /v1/goals/:key.
func (h *handlers) UpdateGoal(c *fiber.Ctx) error {
	key, err := domain.ParseGoalKey(c.Params("key"))
	if err != nil {
		return serviceError(c, err)
	}
	var req GoalUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_body", "Invalid request body: "+err.Error())
	}
	if req.Value == nil {
		return badRequest(c, "missing_value", "value is required")
	}
	g, err := h.deps.State.UpdateGoal(c.UserContext(), key, *req.Value)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toGoals(*g))
}

// Categories handles GET /v1/categories.
func (h *handlers) Categories(c *fiber.Ctx) error {
	cfg, err := h.deps.State.Categories(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toCategories(cfg))
}

// AddCategoryDomain handles POST /v1/categories/:category/domains.
func (h *handlers) AddCategoryDomain(c *fiber.Ctx) error {
	cat, err := domain.ParseCategory(c.Params("category"))
	if err != nil {
		return serviceError(c, err)
	}
	var req CategoryDomainRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_body", "Invalid request body: "+err.Error())
	}
	cfg, err := h.deps.State.AddCategoryDomain(c.UserContext(), cat, req.Domain)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCategories(cfg))
}

// RemoveCategoryDomain handles DELETE /v1/categories/:category/domains/:domain.
// Entries containing a path (linkedin.com/learning) arrive escaped.
func (h *handlers) RemoveCategoryDomain(c *fiber.Ctx) error {
	cat, err := domain.ParseCategory(c.Params("category"))
	if err != nil {
		return serviceError(c, err)
	}
	entry, err := url.PathUnescape(c.Params("domain"))
	if err != nil {
		return badRequest(c, "invalid_domain", err.Error())
	}
	cfg, err := h.deps.State.RemoveCategoryDomain(c.UserContext(), cat, entry)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toCategories(cfg))
}

// Settings handles GET /v1/settings.
func (h *handlers) Settings(c *fiber.Ctx) error {
	s, err := h.deps.State.Settings(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toSettings(*s))
}

// UpdateSettings handles PUT /v1/settings. Omitted fields keep their
// stored value.
func (h *handlers) UpdateSettings(c *fiber.Ctx) error {
	var req SettingsUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_body", "Invalid request body: "+err.Error())
	}
	current, err := h.deps.State.Settings(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	next := *current
	if req.Theme != nil {
		next.Theme = *req.Theme
	}
	if req.Notifications != nil {
		next.Notifications = *req.Notifications
	}
	if req.SoundEnabled != nil {
		next.SoundEnabled = *req.SoundEnabled
	}
	saved, err := h.deps.State.UpdateSettings(c.UserContext(), next)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toSettings(*saved))
}

// SetStreak handles PUT /v1/streak.
func (h *handlers) SetStreak(c *fiber.Ctx) error {
	var req StreakRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_body", "Invalid request body: "+err.Error())
	}
	if req.Streak == nil {
		return badRequest(c, "missing_streak", "streak is required")
	}
	p, err := h.deps.State.SetStreak(c.UserContext(), *req.Streak)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toProgression(*p))
}

// Snapshot handles GET /v1/snapshot.
func (h *handlers) Snapshot(c *fiber.Ctx) error {
	snap, err := h.deps.State.Snapshot(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(toSnapshot(*snap))
}

// Reset handles POST /v1/reset. Without {"confirm": true} nothing is
// touched.
func (h *handlers) Reset(c *fiber.Ctx) error {
	var req ResetRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid_body", "Invalid request body: "+err.Error())
		}
	}
	if err := h.deps.State.ResetAllState(c.UserContext(), req.Confirm); err != nil {
		return serviceError(c, err)
	}
	h.logger.Warn().Msg("all state reset")
	return c.JSON(fiber.Map{"status": "reset"})
}
