package profile

import (
	"NutriMind-Backend/domain"
	"NutriMind-Backend/entities"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ProfileService interface {
		SaveProfile(ctx context.Context, userID string, data domain.ProfileData) (domain.SavedProfile, error)
		GetProfile(ctx context.Context, userID string) (*domain.ProfileResponse, error)
	}

	profileService struct {
		profileRepository ProfileRepository
	}
)

func NewProfileService(profileRepository ProfileRepository) ProfileService {
	return &profileService{profileRepository: profileRepository}
}

// SaveProfile upserts the user's single diet profile. The version counter is
// incremented here on every update and never reused, so callers can retry a
// save without stacking stale data.
func (s *profileService) SaveProfile(ctx context.Context, userID string, data domain.ProfileData) (domain.SavedProfile, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SavedProfile{}, domain.ErrParseUUID
	}

	existing, err := s.profileRepository.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.SavedProfile{}, err
	}

	restrictions, _ := json.Marshal(data.DietaryRestrictions)

	if existing != nil {
		applyProfileData(existing, data, string(restrictions))
		existing.Version++
		existing.UpdatedAt = time.Now()
		if err := s.profileRepository.Update(ctx, existing); err != nil {
			return domain.SavedProfile{}, err
		}
		return domain.SavedProfile{ID: existing.ID.String(), Version: existing.Version}, nil
	}

	profile := &entities.DietProfile{
		ID:      uuid.New(),
		UserID:  userUUID,
		Version: 1,
	}
	applyProfileData(profile, data, string(restrictions))
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()
	if err := s.profileRepository.Create(ctx, profile); err != nil {
		return domain.SavedProfile{}, err
	}
	return domain.SavedProfile{ID: profile.ID.String(), Version: profile.Version}, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.ProfileResponse, error) {
	profile, err := s.profileRepository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}

	response := &domain.ProfileResponse{
		ID:        profile.ID.String(),
		Version:   profile.Version,
		Data:      ProfileDataFromEntity(profile),
		UpdatedAt: profile.UpdatedAt,
	}
	if profile.CurrentRecommendationID != nil {
		response.CurrentRecommendationID = profile.CurrentRecommendationID.String()
	}
	return response, nil
}

func applyProfileData(profile *entities.DietProfile, data domain.ProfileData, restrictions string) {
	profile.Name = data.Name
	profile.Age, _ = strconv.Atoi(data.Age)
	profile.Gender = data.Gender
	profile.WeightKg = parseOptionalFloat(data.Weight)
	profile.HeightCm = parseOptionalFloat(data.Height)
	profile.ActivityLevel = data.ActivityLevel
	profile.DietaryRestrictions = restrictions
	profile.HealthGoals = data.HealthGoals
	profile.CurrentDiet = data.CurrentDiet
	profile.FoodPreferences = data.FoodPreferences
	profile.MedicalConditions = data.MedicalConditions
	profile.AdditionalInfo = data.AdditionalInfo
	profile.MealsPerDay = data.MealsPerDay
	profile.CookingTime = data.CookingTime
	profile.Budget = data.Budget
}

// ProfileDataFromEntity converts a stored profile back to questionnaire form
// so the wizard can resume with saved answers.
func ProfileDataFromEntity(profile *entities.DietProfile) domain.ProfileData {
	var restrictions []string
	if profile.DietaryRestrictions != "" {
		_ = json.Unmarshal([]byte(profile.DietaryRestrictions), &restrictions)
	}

	data := domain.ProfileData{
		Name:                profile.Name,
		Gender:              profile.Gender,
		ActivityLevel:       profile.ActivityLevel,
		DietaryRestrictions: restrictions,
		HealthGoals:         profile.HealthGoals,
		CurrentDiet:         profile.CurrentDiet,
		MealsPerDay:         profile.MealsPerDay,
		CookingTime:         profile.CookingTime,
		Budget:              profile.Budget,
		MedicalConditions:   profile.MedicalConditions,
		FoodPreferences:     profile.FoodPreferences,
		AdditionalInfo:      profile.AdditionalInfo,
	}
	if profile.Age > 0 {
		data.Age = strconv.Itoa(profile.Age)
	}
	if profile.WeightKg != nil {
		data.Weight = strconv.FormatFloat(*profile.WeightKg, 'f', -1, 64)
	}
	if profile.HeightCm != nil {
		data.Height = strconv.FormatFloat(*profile.HeightCm, 'f', -1, 64)
	}
	return data
}

func parseOptionalFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}
