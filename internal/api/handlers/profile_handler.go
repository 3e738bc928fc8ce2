package handlers

import (
	"NutriMind-Backend/domain"
	"NutriMind-Backend/internal/api/presenters"
	"NutriMind-Backend/pkg/profile"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ProfileHandler interface {
		GetProfile(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
	}

	profileHandler struct {
		profileService profile.ProfileService
		validator      *validator.Validate
	}
)

func NewProfileHandler(profileService profile.ProfileService, validator *validator.Validate) ProfileHandler {
	return &profileHandler{
		profileService: profileService,
		validator:      validator,
	}
}

func (h *profileHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	profileResp, err := h.profileService.GetProfile(c.Context(), userID)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrProfileNotFound) {
			status = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, profileResp, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *profileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UpdateProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveProfile, err)
	}

	saved, err := h.profileService.SaveProfile(c.Context(), userID, domain.ProfileData{
		Name:                req.Name,
		Age:                 req.Age,
		Gender:              req.Gender,
		Weight:              req.Weight,
		Height:              req.Height,
		ActivityLevel:       req.ActivityLevel,
		DietaryRestrictions: req.DietaryRestrictions,
		HealthGoals:         req.HealthGoals,
		CurrentDiet:         req.CurrentDiet,
		MealsPerDay:         req.MealsPerDay,
		CookingTime:         req.CookingTime,
		Budget:              req.Budget,
		MedicalConditions:   req.MedicalConditions,
		FoodPreferences:     req.FoodPreferences,
		AdditionalInfo:      req.AdditionalInfo,
	})
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveProfile, err)
	}

	return presenters.SuccessResponse(c, saved, fiber.StatusOK, domain.MessageSuccessSaveProfile)
}
