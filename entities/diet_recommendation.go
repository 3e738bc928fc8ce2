package entities

import (
	"time"

	"github.com/google/uuid"
)

type DietRecommendation struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID             uuid.UUID `gorm:"index" json:"user_id"`
	ProfileID          uuid.UUID `json:"profile_id"`
	RecommendationText string    `json:"recommendation_text" gorm:"type:text"`
	ProfileSnapshot    string    `json:"profile_snapshot" gorm:"type:text"`
	Status             string    `json:"status"` // "active", "archived"
	GeneratedAt        time.Time `gorm:"type:timestamp" json:"generated_at"`

	User    *User        `gorm:"foreignKey:UserID"`
	Profile *DietProfile `gorm:"foreignKey:ProfileID"`
	Timestamp
}
