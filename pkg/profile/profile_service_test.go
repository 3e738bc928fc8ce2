package profile

import (
	"NutriMind-Backend/domain"
	"NutriMind-Backend/entities"
	"context"
	"testing"

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

func sampleData() domain.ProfileData {
	return domain.ProfileData{
		Name:                "Rizky",
		Age:                 "28",
		Gender:              "male",
		Weight:              "70.5",
		Height:              "175",
		ActivityLevel:       "moderate",
		DietaryRestrictions: []string{"Halal", "Low-carb"},
		HealthGoals:         "lose weight",
		CurrentDiet:         "mostly rice based",
		MealsPerDay:         "3",
		CookingTime:         "moderate",
		Budget:              "moderate",
	}
}

func TestSaveProfileCreatesAtVersionOne(t *testing.T) {
	svc := NewProfileService(NewProfileRepository(setupTestDB(t)))
	userID := uuid.New().String()

	saved, err := svc.SaveProfile(context.Background(), userID, sampleData())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 1, saved.Version)
}

func TestSaveProfileUpsertsAndIncrementsVersion(t *testing.T) {
	svc := NewProfileService(NewProfileRepository(setupTestDB(t)))
	ctx := context.Background()
	userID := uuid.New().String()

	first, err := svc.SaveProfile(ctx, userID, sampleData())
	require.NoError(t, err)

	updated := sampleData()
	updated.HealthGoals = "build muscle"
	second, err := svc.SaveProfile(ctx, userID, updated)
	require.NoError(t, err)

	// Same row, bumped version.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Version)

	profileResp, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "build muscle", profileResp.Data.HealthGoals)
	assert.Equal(t, 2, profileResp.Version)
}

func TestProfileRoundTripsQuestionnaireData(t *testing.T) {
	svc := NewProfileService(NewProfileRepository(setupTestDB(t)))
	ctx := context.Background()
	userID := uuid.New().String()

	_, err := svc.SaveProfile(ctx, userID, sampleData())
	require.NoError(t, err)

	profileResp, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, sampleData(), profileResp.Data)
}

func TestGetProfileNotFound(t *testing.T) {
	svc := NewProfileService(NewProfileRepository(setupTestDB(t)))

	_, err := svc.GetProfile(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestSaveProfileRejectsBadUserID(t *testing.T) {
	svc := NewProfileService(NewProfileRepository(setupTestDB(t)))

	_, err := svc.SaveProfile(context.Background(), "not-a-uuid", sampleData())
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}
