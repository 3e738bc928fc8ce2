package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGenerate        = "diet recommendation generated successfully"
	MessageSuccessGetCurrent      = "current recommendation retrieved successfully"
	MessageSuccessGetHistory      = "recommendation history retrieved successfully"
	MessageSuccessExport          = "recommendation exported successfully"
	MessageSuccessEmail           = "recommendation emailed successfully"
	MessageSuccessGetPrintVersion = "printable recommendation retrieved successfully"

	MessageFailedGenerate        = "failed to generate diet recommendation"
	MessageFailedGetCurrent      = "failed to retrieve current recommendation"
	MessageFailedGetHistory      = "failed to retrieve recommendation history"
	MessageFailedExport          = "failed to export recommendation"
	MessageFailedEmail           = "failed to email recommendation"
	MessageFailedGetPrintVersion = "failed to retrieve printable recommendation"

	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrEmptyRecommendation    = errors.New("no recommendation received from AI")
	ErrGenerationFailed       = errors.New("gemini API processing failed")
)

const (
	RecommendationStatusActive   = "active"
	RecommendationStatusArchived = "archived"
)

type (
	RecommendationResponse struct {
		ID          string    `json:"id"`
		ProfileID   string    `json:"profile_id"`
		Text        string    `json:"text"`
		Status      string    `json:"status"`
		GeneratedAt time.Time `json:"generated_at"`
	}

	HistoryItem struct {
		ID          string      `json:"id"`
		GeneratedAt time.Time   `json:"generated_at"`
		Status      string      `json:"status"`
		IsCurrent   bool        `json:"is_current"`
		Preview     string      `json:"preview"`
		Truncated   bool        `json:"truncated"`
		Profile     ProfileData `json:"profile_snapshot"`
	}

	EmailRecommendationRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ExportResponse struct {
		URL string `json:"url"`
	}
)
