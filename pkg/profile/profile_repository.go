package profile

import (
	"NutriMind-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ProfileRepository interface {
		GetByUserID(ctx context.Context, userID string) (*entities.DietProfile, error)
		Create(ctx context.Context, profile *entities.DietProfile) error
		Update(ctx context.Context, profile *entities.DietProfile) error
		LinkRecommendation(ctx context.Context, profileID, recommendationID uuid.UUID) error
	}

	profileRepository struct {
		db *gorm.DB
	}
)

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*entities.DietProfile, error) {
	var profile entities.DietProfile
	if err := r.db.WithContext(ctx).
		Preload("CurrentRecommendation").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *entities.DietProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) Update(ctx context.Context, profile *entities.DietProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) LinkRecommendation(ctx context.Context, profileID, recommendationID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.DietProfile{}).
		Where("id = ?", profileID).
		Update("current_recommendation_id", recommendationID).Error
}
