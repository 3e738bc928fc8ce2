package subscription

import (
	"NutriMind-Backend/domain"
	"NutriMind-Backend/entities"
	"context"
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
		&entities.UserUsage{},
		&entities.Subscriber{},
		&entities.Transaction{},
	))
	return db
}

func newTestService(t *testing.T) (*subscriptionService, SubscriptionRepository) {
	t.Helper()
	repo := NewSubscriptionRepository(setupTestDB(t))
	svc := NewSubscriptionService(repo).(*subscriptionService)
	return svc, repo
}

func TestLoadUsageCreatesCounter(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New().String()

	usage, err := svc.LoadUsage(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 0, usage.RecommendationsUsed)
	assert.Equal(t, 1, usage.Remaining)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), usage.LastResetDate)
}

func TestFreeUserQuota(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	assert.True(t, svc.CanUseFeature(ctx, userID))

	require.NoError(t, svc.ConsumeUsage(ctx, userID))

	assert.False(t, svc.CanUseFeature(ctx, userID))

	usage, err := svc.LoadUsage(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, usage.RecommendationsUsed)
	assert.Equal(t, 0, usage.Remaining)
}

func TestUsageResetsOnNewUTCDay(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	day1 := time.Date(2025, 3, 1, 23, 50, 0, 0, time.UTC)
	svc.now = func() time.Time { return day1 }

	require.NoError(t, svc.ConsumeUsage(ctx, userID))
	assert.False(t, svc.CanUseFeature(ctx, userID))

	// Ten minutes later it is a new UTC day and the quota is back.
	svc.now = func() time.Time { return day1.Add(10 * time.Minute) }

	usage, err := svc.LoadUsage(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, usage.RecommendationsUsed)
	assert.Equal(t, "2025-03-02", usage.LastResetDate)
	assert.True(t, svc.CanUseFeature(ctx, userID))
}

func TestResetPersistsBeforeIncrement(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	day1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day1 }
	require.NoError(t, svc.ConsumeUsage(ctx, userID))

	svc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	require.NoError(t, svc.ConsumeUsage(ctx, userID))

	stored, err := repo.GetUsage(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.RecommendationsUsed)
	assert.Equal(t, "2025-03-02", stored.LastResetDate)
}

func TestSubscribedUserBypassesQuota(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	userUUID := uuid.New()
	userID := userUUID.String()

	tier := domain.TierPremium
	end := time.Now().AddDate(0, 1, 0)
	require.NoError(t, repo.UpsertSubscriber(ctx, &entities.Subscriber{
		ID:               uuid.New(),
		UserID:           userUUID,
		Subscribed:       true,
		SubscriptionTier: &tier,
		SubscriptionEnd:  &end,
	}))

	assert.True(t, svc.IsSubscribed(ctx, userID))

	require.NoError(t, svc.ConsumeUsage(ctx, userID))
	require.NoError(t, svc.ConsumeUsage(ctx, userID))
	assert.True(t, svc.CanUseFeature(ctx, userID))
}

func TestExpiredSubscriptionDowngrades(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	userUUID := uuid.New()

	tier := domain.TierPremium
	end := time.Now().AddDate(0, 0, -1)
	require.NoError(t, repo.UpsertSubscriber(ctx, &entities.Subscriber{
		ID:               uuid.New(),
		UserID:           userUUID,
		Subscribed:       true,
		SubscriptionTier: &tier,
		SubscriptionEnd:  &end,
	}))

	state, err := svc.CheckSubscription(ctx, userUUID.String())
	require.NoError(t, err)
	assert.False(t, state.Subscribed)
}

func TestMissingSubscriberMeansFreeTier(t *testing.T) {
	svc, _ := newTestService(t)

	state, err := svc.CheckSubscription(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.False(t, state.Subscribed)
	assert.Nil(t, state.SubscriptionTier)
}

func TestRefreshReplacesCachedSubscription(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	userUUID := uuid.New()
	userID := userUUID.String()

	// First read caches the free tier.
	assert.False(t, svc.IsSubscribed(ctx, userID))

	tier := domain.TierPremium
	end := time.Now().AddDate(0, 1, 0)
	require.NoError(t, repo.UpsertSubscriber(ctx, &entities.Subscriber{
		ID:               uuid.New(),
		UserID:           userUUID,
		Subscribed:       true,
		SubscriptionTier: &tier,
		SubscriptionEnd:  &end,
	}))

	// Cache still answers until refreshed.
	assert.False(t, svc.IsSubscribed(ctx, userID))

	svc.Refresh(ctx, userID)
	assert.True(t, svc.IsSubscribed(ctx, userID))
}

func TestHandleNotificationUnknownOrder(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.HandleNotification(context.Background(), domain.PaymentNotification{
		OrderID: "NUTRI-missing-0",
	})
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}
