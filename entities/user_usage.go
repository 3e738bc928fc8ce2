package entities

import (
	"github.com/google/uuid"
)

type UserUsage struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID              uuid.UUID `gorm:"uniqueIndex" json:"user_id"`
	RecommendationsUsed int       `json:"recommendations_used"`
	LastResetDate       string    `json:"last_reset_date"` // UTC calendar date, "2006-01-02"

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
