package api

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/alexanderramin/productiviquest/internal/browser"
	"github.com/alexanderramin/productiviquest/internal/domain"
	"github.com/alexanderramin/productiviquest/internal/repository"
	"github.com/alexanderramin/productiviquest/internal/service"
	"github.com/alexanderramin/productiviquest/internal/tracker"
)

func problemResponse(c *fiber.Ctx, status int, errType, detail string) error {
	return c.Status(status).JSON(ProblemDetail{
		Type:     errType,
		Title:    statusTitle(status),
		Status:   status,
		Detail:   detail,
		Instance: c.Path(),
	})
}

func statusTitle(status int) string {
	return http.StatusText(status)
}

func badRequest(c *fiber.Ctx, errType, detail string) error {
	return problemResponse(c, fiber.StatusBadRequest, errType, detail)
}

// serviceError maps sentinel errors to problem responses. Anything
// unrecognized goes to the error handler as a 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownGoal):
		return problemResponse(c, fiber.StatusNotFound, "unknown_goal", err.Error())
	case errors.Is(err, domain.ErrUnknownCategory):
		return problemResponse(c, fiber.StatusNotFound, "unknown_category", err.Error())
	case errors.Is(err, domain.ErrInvalidGoal):
		return badRequest(c, "invalid_goal", err.Error())
	case errors.Is(err, domain.ErrEmptyDomain):
		return badRequest(c, "empty_domain", err.Error())
	case errors.Is(err, service.ErrInvalidStreak):
		return badRequest(c, "invalid_streak", err.Error())
	case errors.Is(err, service.ErrResetNotConfirmed):
		return problemResponse(c, fiber.StatusConflict, "reset_not_confirmed", err.Error())
	case errors.Is(err, domain.ErrInvariant):
		return problemResponse(c, fiber.StatusConflict, "invariant_violated", err.Error())
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, browser.ErrTabNotFound):
		return problemResponse(c, fiber.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, tracker.ErrStopped):
		return problemResponse(c, fiber.StatusServiceUnavailable, "tracker_stopped", err.Error())
	}
	return err
}
