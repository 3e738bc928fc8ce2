package entities

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber mirrors the payment provider's view of a user's subscription.
// It is refreshed by the midtrans webhook and never treated as authoritative.
type Subscriber struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID  `gorm:"uniqueIndex" json:"user_id"`
	Email            string     `json:"email"`
	Subscribed       bool       `json:"subscribed"`
	SubscriptionTier *string    `json:"subscription_tier,omitempty"`
	SubscriptionEnd  *time.Time `gorm:"type:timestamp" json:"subscription_end,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
