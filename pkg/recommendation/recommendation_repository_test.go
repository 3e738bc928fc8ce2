package recommendation

import (
	"NutriMind-Backend/domain"
	"NutriMind-Backend/entities"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.DietProfile{},
		&entities.DietRecommendation{},
	))
	return db
}

func newRecommendation(userID, profileID uuid.UUID, generatedAt time.Time) *entities.DietRecommendation {
	return &entities.DietRecommendation{
		ID:                 uuid.New(),
		UserID:             userID,
		ProfileID:          profileID,
		RecommendationText: "## Plan\n- eat vegetables",
		Status:             domain.RecommendationStatusActive,
		GeneratedAt:        generatedAt,
		Timestamp:          entities.Timestamp{CreatedAt: generatedAt, UpdatedAt: generatedAt},
	}
}

func TestArchiveThenInsertKeepsOneActive(t *testing.T) {
	repo := NewRecommendationRepository(setupTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	profileID := uuid.New()

	first := newRecommendation(userID, profileID, time.Now().Add(-time.Hour))
	require.NoError(t, repo.ArchiveActive(ctx, userID.String()))
	require.NoError(t, repo.Create(ctx, first))

	second := newRecommendation(userID, profileID, time.Now())
	require.NoError(t, repo.ArchiveActive(ctx, userID.String()))
	require.NoError(t, repo.Create(ctx, second))

	active, err := repo.GetActive(ctx, userID.String())
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	archived, err := repo.GetByID(ctx, first.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendationStatusArchived, archived.Status)

	history, count, err := repo.GetHistory(ctx, userID.String(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	activeCount := 0
	for _, item := range history {
		if item.Status == domain.RecommendationStatusActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestArchiveActiveDoesNotTouchOtherUsers(t *testing.T) {
	repo := NewRecommendationRepository(setupTestDB(t))
	ctx := context.Background()

	other := newRecommendation(uuid.New(), uuid.New(), time.Now())
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, repo.ArchiveActive(ctx, uuid.New().String()))

	stored, err := repo.GetByID(ctx, other.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendationStatusActive, stored.Status)
}

func TestGetActiveWhenNoneExists(t *testing.T) {
	repo := NewRecommendationRepository(setupTestDB(t))

	_, err := repo.GetActive(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetHistoryNewestFirstWithPagination(t *testing.T) {
	repo := NewRecommendationRepository(setupTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	profileID := uuid.New()

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := newRecommendation(userID, profileID, base.Add(time.Duration(i)*time.Hour))
		rec.RecommendationText = fmt.Sprintf("# Plan %d", i)
		require.NoError(t, repo.ArchiveActive(ctx, userID.String()))
		require.NoError(t, repo.Create(ctx, rec))
	}

	firstPage, count, err := repo.GetHistory(ctx, userID.String(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	require.Len(t, firstPage, 2)
	assert.Equal(t, "# Plan 4", firstPage[0].RecommendationText)
	assert.Equal(t, "# Plan 3", firstPage[1].RecommendationText)

	lastPage, _, err := repo.GetHistory(ctx, userID.String(), 3, 2)
	require.NoError(t, err)
	require.Len(t, lastPage, 1)
	assert.Equal(t, "# Plan 0", lastPage[0].RecommendationText)
}
