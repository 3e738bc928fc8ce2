package handlers

import (
	"NutriMind-Backend/domain"
	"NutriMind-Backend/internal/api/presenters"
	"NutriMind-Backend/pkg/markdown"
	"NutriMind-Backend/pkg/recommendation"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecommendationHandler interface {
		GetCurrent(c *fiber.Ctx) error
		GetHistory(c *fiber.Ctx) error
		GetPrintVersion(c *fiber.Ctx) error
		Export(c *fiber.Ctx) error
		Email(c *fiber.Ctx) error
	}

	recommendationHandler struct {
		recommendationService recommendation.RecommendationService
		validator             *validator.Validate
	}
)

func NewRecommendationHandler(recommendationService recommendation.RecommendationService, validator *validator.Validate) RecommendationHandler {
	return &recommendationHandler{
		recommendationService: recommendationService,
		validator:             validator,
	}
}

func (h *recommendationHandler) GetCurrent(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	current, err := h.recommendationService.GetCurrent(c.Context(), userID)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrRecommendationNotFound) {
			status = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedGetCurrent, err)
	}

	// ?preview=chars|words returns a compact form instead of the full text.
	switch c.Query("preview") {
	case "chars":
		current.Text = markdown.Preview(current.Text)
	case "words":
		current.Text = markdown.WordPreview(current.Text)
	}

	return presenters.SuccessResponse(c, current, fiber.StatusOK, domain.MessageSuccessGetCurrent)
}

func (h *recommendationHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	items, count, err := h.recommendationService.History(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recommendations": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetHistory)
}

// GetPrintVersion responds with the standalone HTML document instead of the
// JSON envelope so the client can open it directly in a print view.
func (h *recommendationHandler) GetPrintVersion(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recommendationID := c.Params("id")

	document, err := h.recommendationService.PrintDocument(c.Context(), userID, recommendationID)
	if err != nil {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrRecommendationNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, domain.ErrUserNotAllowed):
			status = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedGetPrintVersion, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(document)
}

func (h *recommendationHandler) Export(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recommendationID := c.Params("id")

	url, err := h.recommendationService.Export(c.Context(), userID, recommendationID)
	if err != nil {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrRecommendationNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, domain.ErrUserNotAllowed):
			status = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedExport, err)
	}

	return presenters.SuccessResponse(c, domain.ExportResponse{URL: url}, fiber.StatusOK, domain.MessageSuccessExport)
}

func (h *recommendationHandler) Email(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recommendationID := c.Params("id")

	req := new(domain.EmailRecommendationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEmail, err)
	}

	if err := h.recommendationService.Email(c.Context(), userID, recommendationID, req.Email); err != nil {
		status := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrRecommendationNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, domain.ErrUserNotAllowed):
			status = fiber.StatusForbidden
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedEmail, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessEmail)
}
