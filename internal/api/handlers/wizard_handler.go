package handlers

import (
	"NutriMind-Backend/domain"
	"NutriMind-Backend/internal/api/presenters"
	"NutriMind-Backend/pkg/profile"
	"NutriMind-Backend/pkg/wizard"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	WizardHandler interface {
		GetState(c *fiber.Ctx) error
		ApplyAnswers(c *fiber.Ctx) error
		Advance(c *fiber.Ctx) error
		Back(c *fiber.Ctx) error
		Generate(c *fiber.Ctx) error
		ToDashboard(c *fiber.Ctx) error
		Restart(c *fiber.Ctx) error
	}

	wizardHandler struct {
		manager        *wizard.Manager
		profileService profile.ProfileService
		validator      *validator.Validate
	}
)

func NewWizardHandler(manager *wizard.Manager, profileService profile.ProfileService, validator *validator.Validate) WizardHandler {
	return &wizardHandler{
		manager:        manager,
		profileService: profileService,
		validator:      validator,
	}
}

// session resolves the caller's wizard session, seeding a new one from the
// saved profile so returning users resume on the dashboard.
func (h *wizardHandler) session(c *fiber.Ctx) *wizard.Session {
	userID := c.Locals("user_id").(string)

	hasProfile := false
	seed := domain.ProfileData{}
	if profileResp, err := h.profileService.GetProfile(c.Context(), userID); err == nil {
		hasProfile = true
		seed = profileResp.Data
	}

	return h.manager.Session(userID, hasProfile, seed)
}

func (h *wizardHandler) GetState(c *fiber.Ctx) error {
	session := h.session(c)
	return presenters.SuccessResponse(c, session.State(), fiber.StatusOK, domain.MessageSuccessGetWizard)
}

func (h *wizardHandler) ApplyAnswers(c *fiber.Ctx) error {
	session := h.session(c)

	req := new(domain.ApplyAnswersRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedApplyAnswers, err)
	}

	session.Apply(req.Answers)
	return presenters.SuccessResponse(c, session.State(), fiber.StatusOK, domain.MessageSuccessApplyAnswers)
}

func (h *wizardHandler) Advance(c *fiber.Ctx) error {
	session := h.session(c)

	if !session.Advance() {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAdvance, domain.ErrStepIncomplete)
	}
	return presenters.SuccessResponse(c, session.State(), fiber.StatusOK, domain.MessageSuccessAdvance)
}

func (h *wizardHandler) Back(c *fiber.Ctx) error {
	session := h.session(c)
	session.Back()
	return presenters.SuccessResponse(c, session.State(), fiber.StatusOK, domain.MessageSuccessBack)
}

func (h *wizardHandler) Generate(c *fiber.Ctx) error {
	session := h.session(c)

	if err := session.Generate(c.Context()); err != nil {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrQuotaExceeded):
			status = fiber.StatusTooManyRequests
		case errors.Is(err, domain.ErrGenerationInFlight):
			status = fiber.StatusConflict
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedGenerate, err)
	}

	recommendationID, text := session.Recommendation()
	return presenters.SuccessResponse(c, fiber.Map{
		"recommendation_id": recommendationID,
		"recommendation":    text,
		"state":             session.State(),
	}, fiber.StatusOK, domain.MessageSuccessGenerate)
}

func (h *wizardHandler) ToDashboard(c *fiber.Ctx) error {
	session := h.session(c)
	session.ToDashboard()
	return presenters.SuccessResponse(c, session.State(), fiber.StatusOK, domain.MessageSuccessDashboard)
}

func (h *wizardHandler) Restart(c *fiber.Ctx) error {
	session := h.session(c)
	session.StartWizard()
	return presenters.SuccessResponse(c, session.State(), fiber.StatusOK, domain.MessageSuccessRestart)
}
