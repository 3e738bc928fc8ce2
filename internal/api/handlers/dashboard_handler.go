package handlers

import (
	"NutriMind-Backend/domain"
	"NutriMind-Backend/internal/api/presenters"
	"NutriMind-Backend/pkg/markdown"
	"NutriMind-Backend/pkg/profile"
	"NutriMind-Backend/pkg/recommendation"
	"NutriMind-Backend/pkg/subscription"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type (
	DashboardHandler interface {
		GetDashboard(c *fiber.Ctx) error
	}

	dashboardHandler struct {
		profileService        profile.ProfileService
		subscriptionService   subscription.SubscriptionService
		recommendationService recommendation.RecommendationService
	}
)

func NewDashboardHandler(
	profileService profile.ProfileService,
	subscriptionService subscription.SubscriptionService,
	recommendationService recommendation.RecommendationService,
) DashboardHandler {
	return &dashboardHandler{
		profileService:        profileService,
		subscriptionService:   subscriptionService,
		recommendationService: recommendationService,
	}
}

// GetDashboard aggregates the profile, subscription, usage and active
// recommendation into the single view the dashboard renders from.
func (h *dashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	resp := domain.DashboardResponse{}

	profileResp, err := h.profileService.GetProfile(c.Context(), userID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}
	if profileResp != nil {
		resp.HasProfile = true
		resp.ProfileVersion = profileResp.Version
	}

	subscriptionState, err := h.subscriptionService.CheckSubscription(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}
	resp.Subscription = subscriptionState

	usage, err := h.subscriptionService.LoadUsage(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}
	resp.Usage = usage

	current, err := h.recommendationService.GetCurrent(c.Context(), userID)
	if err != nil && !errors.Is(err, domain.ErrRecommendationNotFound) {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}
	if current != nil {
		resp.Recommendation = &domain.DashboardRecommendation{
			ID:          current.ID,
			Preview:     markdown.WordPreview(current.Text),
			GeneratedAt: current.GeneratedAt.Format("2006-01-02 15:04"),
		}
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
