// Package wizard drives the multi-step questionnaire: a linear sequence of
// data-collection steps with per-step guards, a dashboard mode outside the
// sequence, and the gated Generate action that produces a recommendation.
package wizard

import (
	"NutriMind-Backend/domain"
)

type Step int

const (
	StepWelcome Step = iota
	StepBasicInfo
	StepPhysicalDetails
	StepLifestyle
	StepDietaryPreferences
	StepHealthGoals
	StepAdditionalInfo
	StepResults
)

var stepNames = [...]string{
	"Welcome",
	"Basic Info",
	"Physical Details",
	"Lifestyle",
	"Dietary Preferences",
	"Health & Goals",
	"Additional Info",
	"Results",
}

func (s Step) String() string {
	if s < StepWelcome || s > StepResults {
		return "Unknown"
	}
	return stepNames[s]
}

type Mode int

const (
	ModeWizard Mode = iota
	ModeDashboard
)

func (m Mode) String() string {
	if m == ModeDashboard {
		return "dashboard"
	}
	return "wizard"
}

// CanAdvance reports whether the required fields for the given step are
// filled. Steps without required fields are always passable.
func CanAdvance(step Step, data domain.ProfileData) bool {
	switch step {
	case StepBasicInfo:
		return data.Name != "" && data.Age != "" && data.Gender != ""
	case StepPhysicalDetails:
		return data.Weight != "" && data.Height != "" && data.ActivityLevel != ""
	case StepLifestyle:
		return data.CurrentDiet != "" && data.MealsPerDay != "" && data.CookingTime != ""
	case StepHealthGoals:
		return data.HealthGoals != ""
	default:
		return true
	}
}
