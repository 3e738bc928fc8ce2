package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetProfile  = "profile retrieved successfully"
	MessageSuccessSaveProfile = "profile saved successfully"

	MessageFailedGetProfile  = "failed to retrieve profile"
	MessageFailedSaveProfile = "failed to save profile"

	ErrProfileNotFound = errors.New("profile not found")
)

// DietaryRestrictionTags is the fixed vocabulary offered by the questionnaire.
// Free-text unions beyond these tags are still accepted on save.
var DietaryRestrictionTags = []string{
	"Vegetarian",
	"Vegan",
	"Gluten-free",
	"Dairy-free",
	"Nut-free",
	"Low-carb",
	"Keto",
	"Paleo",
	"Halal",
	"Kosher",
}

type (
	// ProfileData carries the questionnaire answers as entered. Numeric
	// fields stay strings until save so that partially filled steps can
	// round-trip without coercion.
	ProfileData struct {
		Name                string   `json:"name"`
		Age                 string   `json:"age"`
		Gender              string   `json:"gender"`
		Weight              string   `json:"weight"`
		Height              string   `json:"height"`
		ActivityLevel       string   `json:"activity_level"`
		DietaryRestrictions []string `json:"dietary_restrictions"`
		HealthGoals         string   `json:"health_goals"`
		CurrentDiet         string   `json:"current_diet"`
		MealsPerDay         string   `json:"meals_per_day"`
		CookingTime         string   `json:"cooking_time"`
		Budget              string   `json:"budget"`
		MedicalConditions   string   `json:"medical_conditions"`
		FoodPreferences     string   `json:"food_preferences"`
		AdditionalInfo      string   `json:"additional_info"`
	}

	UpdateProfileRequest struct {
		Name                string   `json:"name" validate:"required"`
		Age                 string   `json:"age" validate:"required,numeric"`
		Gender              string   `json:"gender" validate:"required,oneof=male female other"`
		Weight              string   `json:"weight" validate:"omitempty,numeric"`
		Height              string   `json:"height" validate:"omitempty,numeric"`
		ActivityLevel       string   `json:"activity_level" validate:"omitempty,oneof=sedentary light moderate active very-active"`
		DietaryRestrictions []string `json:"dietary_restrictions"`
		HealthGoals         string   `json:"health_goals"`
		CurrentDiet         string   `json:"current_diet"`
		MealsPerDay         string   `json:"meals_per_day" validate:"omitempty,oneof=2 3 4 5+"`
		CookingTime         string   `json:"cooking_time" validate:"omitempty,oneof=minimal moderate flexible"`
		Budget              string   `json:"budget" validate:"omitempty,oneof=low moderate flexible"`
		MedicalConditions   string   `json:"medical_conditions"`
		FoodPreferences     string   `json:"food_preferences"`
		AdditionalInfo      string   `json:"additional_info"`
	}

	SavedProfile struct {
		ID      string `json:"id"`
		Version int    `json:"version"`
	}

	ProfileResponse struct {
		ID                      string      `json:"id"`
		Version                 int         `json:"version"`
		Data                    ProfileData `json:"data"`
		CurrentRecommendationID string      `json:"current_recommendation_id,omitempty"`
		UpdatedAt               time.Time   `json:"updated_at"`
	}
)
