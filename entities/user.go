package entities

import (
	"time"

	"github.com/google/uuid"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `json:"name"`
	Email string    `gorm:"uniqueIndex" json:"email"`
	Role  string    `json:"role"`

	DietProfiles    []*DietProfile        `gorm:"foreignKey:UserID"`
	Recommendations []*DietRecommendation `gorm:"foreignKey:UserID"`
	Timestamp
}
