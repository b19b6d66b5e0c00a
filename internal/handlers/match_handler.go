package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kodjobs/talent-matcher/internal/models"
	"kodjobs/talent-matcher/internal/repositories"
	"kodjobs/talent-matcher/internal/services"
)

type MatchHandler struct {
	matcher    services.MatcherService
	matchRepo  repositories.MatchRepository
	validate   *validator.Validate
	runTimeout time.Duration
}

func NewMatchHandler(
	matcher services.MatcherService,
	matchRepo repositories.MatchRepository,
	runTimeout time.Duration,
) *MatchHandler {
	return &MatchHandler{
		matcher:    matcher,
		matchRepo:  matchRepo,
		validate:   validator.New(),
		runTimeout: runTimeout,
	}
}

// HandleTryMatch handles POST /trymatch. Partial per-candidate failures
// never produce a non-200: the caller gets however many matches could be
// produced, and totalProcessed tells them how many that was.
func (h *MatchHandler) HandleTryMatch(c *fiber.Ctx) error {
	var req models.TryMatchRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "employerId and requirement required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.runTimeout)
	defer cancel()

	summary, err := h.matcher.RunMatch(ctx, req.EmployerID, req.Requirement)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmployerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Employer not found",
			})
		case errors.Is(err, services.ErrStorageUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":   "Resume storage unavailable",
				"details": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to run match",
				"details": err.Error(),
			})
		}
	}

	return c.JSON(models.TryMatchResponse{
		Msg:            "Done",
		TotalProcessed: summary.TotalProcessed,
		Matches:        summary.Matches,
	})
}

// HandleGetMatches handles GET /matches/:employerId, the audit-trail
// read over all evaluations stored for one employer.
func (h *MatchHandler) HandleGetMatches(c *fiber.Ctx) error {
	employerID, err := c.ParamsInt("employerId")
	if err != nil || employerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employer ID",
		})
	}

	matches, err := h.matchRepo.FindByEmployerID(c.Context(), employerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to load matches",
			"details": err.Error(),
		})
	}

	return c.JSON(models.MatchListResponse{Matches: matches})
}
