package recommendation

import (
	"NutriMind-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	RecommendationRepository interface {
		ArchiveActive(ctx context.Context, userID string) error
		Create(ctx context.Context, recommendation *entities.DietRecommendation) error
		GetByID(ctx context.Context, id string) (*entities.DietRecommendation, error)
		GetActive(ctx context.Context, userID string) (*entities.DietRecommendation, error)
		GetHistory(ctx context.Context, userID string, page, limit int) ([]*entities.DietRecommendation, int64, error)
	}

	recommendationRepository struct {
		db *gorm.DB
	}
)

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

// ArchiveActive flips every active recommendation for the user to archived.
// Together with Create this is the read-modify-write archive-then-insert
// protocol; it is last-write-wins, not transactionally isolated.
func (r *recommendationRepository) ArchiveActive(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.DietRecommendation{}).
		Where("user_id = ? AND status = ?", userID, "active").
		Update("status", "archived").Error
}

func (r *recommendationRepository) Create(ctx context.Context, recommendation *entities.DietRecommendation) error {
	return r.db.WithContext(ctx).Create(recommendation).Error
}

func (r *recommendationRepository) GetByID(ctx context.Context, id string) (*entities.DietRecommendation, error) {
	var recommendation entities.DietRecommendation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recommendation).Error; err != nil {
		return nil, err
	}
	return &recommendation, nil
}

func (r *recommendationRepository) GetActive(ctx context.Context, userID string) (*entities.DietRecommendation, error) {
	var recommendation entities.DietRecommendation
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, "active").
		Order("generated_at DESC").
		First(&recommendation).Error; err != nil {
		return nil, err
	}
	return &recommendation, nil
}

func (r *recommendationRepository) GetHistory(ctx context.Context, userID string, page, limit int) ([]*entities.DietRecommendation, int64, error) {
	var recommendations []*entities.DietRecommendation
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.DietRecommendation{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&recommendations).Error; err != nil {
		return nil, 0, err
	}

	return recommendations, count, nil
}
