package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetSubscription = "subscription status retrieved successfully"
	MessageSuccessGetUsage        = "usage retrieved successfully"
	MessageSuccessCheckout        = "checkout session created successfully"
	MessageSuccessPortal          = "billing portal session created successfully"
	MessageSuccessWebhook         = "payment notification processed"

	MessageFailedGetSubscription = "failed to retrieve subscription status"
	MessageFailedGetUsage        = "failed to retrieve usage"
	MessageFailedCheckout        = "failed to create checkout session"
	MessageFailedPortal          = "failed to open billing portal"
	MessageFailedWebhook         = "failed to process payment notification"

	ErrQuotaExceeded       = errors.New("daily recommendation quota exceeded")
	ErrPaymentFailed       = errors.New("payment processing failed")
	ErrTransactionNotFound = errors.New("transaction not found")
)

const (
	// Free-tier users get one generation per UTC day.
	FreeDailyRecommendationLimit = 1

	TierPremium = "premium"
)

type (
	SubscriptionState struct {
		Subscribed       bool       `json:"subscribed"`
		SubscriptionTier *string    `json:"subscription_tier"`
		SubscriptionEnd  *time.Time `json:"subscription_end"`
	}

	UsageState struct {
		RecommendationsUsed int    `json:"recommendations_used"`
		LastResetDate       string `json:"last_reset_date"`
		Remaining           int    `json:"remaining"`
	}

	CheckoutRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	CheckoutResponse struct {
		URL string `json:"url"`
	}

	PortalResponse struct {
		URL string `json:"url"`
	}

	PaymentNotification struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		PaymentType       string `json:"payment_type"`
		FraudStatus       string `json:"fraud_status"`
	}
)
