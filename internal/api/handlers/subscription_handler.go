package handlers

import (
	"NutriMind-Backend/domain"
	"NutriMind-Backend/internal/api/presenters"
	"NutriMind-Backend/pkg/subscription"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SubscriptionHandler interface {
		GetSubscription(c *fiber.Ctx) error
		GetUsage(c *fiber.Ctx) error
		CreateCheckout(c *fiber.Ctx) error
		BillingPortal(c *fiber.Ctx) error
		MidtransWebhookHandler(c *fiber.Ctx) error
	}

	subscriptionHandler struct {
		subscriptionService subscription.SubscriptionService
		validator           *validator.Validate
	}
)

func NewSubscriptionHandler(subscriptionService subscription.SubscriptionService, validator *validator.Validate) SubscriptionHandler {
	return &subscriptionHandler{
		subscriptionService: subscriptionService,
		validator:           validator,
	}
}

func (h *subscriptionHandler) GetSubscription(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	state, err := h.subscriptionService.CheckSubscription(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSubscription, err)
	}

	return presenters.SuccessResponse(c, state, fiber.StatusOK, domain.MessageSuccessGetSubscription)
}

func (h *subscriptionHandler) GetUsage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	usage, err := h.subscriptionService.LoadUsage(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetUsage, err)
	}

	return presenters.SuccessResponse(c, usage, fiber.StatusOK, domain.MessageSuccessGetUsage)
}

func (h *subscriptionHandler) CreateCheckout(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CheckoutRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, err)
	}

	resp, err := h.subscriptionService.CreateCheckout(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessCheckout)
}

func (h *subscriptionHandler) BillingPortal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	resp, err := h.subscriptionService.BillingPortalURL(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPortal, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessPortal)
}

// MidtransWebhookHandler receives payment notifications. The payload status is
// never trusted directly; the service re-verifies against midtrans.
func (h *subscriptionHandler) MidtransWebhookHandler(c *fiber.Ctx) error {
	notification := new(domain.PaymentNotification)
	if err := c.BodyParser(notification); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.subscriptionService.HandleNotification(c.Context(), *notification); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedWebhook, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessWebhook)
}
