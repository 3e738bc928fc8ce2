package entities

import (
	"github.com/google/uuid"
)

type DietProfile struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID                  uuid.UUID  `gorm:"uniqueIndex" json:"user_id"`
	Name                    string     `json:"name"`
	Age                     int        `json:"age"`
	Gender                  string     `json:"gender"` // "male", "female", "other"
	WeightKg                *float64   `json:"weight_kg,omitempty"`
	HeightCm                *float64   `json:"height_cm,omitempty"`
	ActivityLevel           string     `json:"activity_level"`
	DietaryRestrictions     string     `json:"dietary_restrictions" gorm:"type:text"`
	HealthGoals             string     `json:"health_goals" gorm:"type:text"`
	CurrentDiet             string     `json:"current_diet" gorm:"type:text"`
	FoodPreferences         string     `json:"food_preferences" gorm:"type:text"`
	MedicalConditions       string     `json:"medical_conditions" gorm:"type:text"`
	AdditionalInfo          string     `json:"additional_info" gorm:"type:text"`
	MealsPerDay             string     `json:"meals_per_day"` // "2", "3", "4", "5+"
	CookingTime             string     `json:"cooking_time"`  // "minimal", "moderate", "flexible"
	Budget                  string     `json:"budget"`        // "low", "moderate", "flexible"
	Version                 int        `json:"version"`
	CurrentRecommendationID *uuid.UUID `json:"current_recommendation_id,omitempty"`

	User                  *User               `gorm:"foreignKey:UserID"`
	CurrentRecommendation *DietRecommendation `gorm:"foreignKey:CurrentRecommendationID"`
	Timestamp
}
