package subscription

import (
	"NutriMind-Backend/domain"
	"NutriMind-Backend/entities"
	"NutriMind-Backend/internal/utils"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

// Premium subscription is a single monthly tier billed through midtrans.
const (
	premiumMonthlyPriceIDR int64 = 49000
	premiumPeriodDays            = 30
)

type (
	SubscriptionService interface {
		CheckSubscription(ctx context.Context, userID string) (domain.SubscriptionState, error)
		LoadUsage(ctx context.Context, userID string) (domain.UsageState, error)
		IncrementUsage(ctx context.Context, userID string) (domain.UsageState, error)

		// Entitlement view consumed by the wizard.
		CanUseFeature(ctx context.Context, userID string) bool
		IsSubscribed(ctx context.Context, userID string) bool
		ConsumeUsage(ctx context.Context, userID string) error
		Refresh(ctx context.Context, userID string)

		CreateCheckout(ctx context.Context, req domain.CheckoutRequest, userID string) (*domain.CheckoutResponse, error)
		BillingPortalURL(ctx context.Context, userID string) (*domain.PortalResponse, error)
		HandleNotification(ctx context.Context, notification domain.PaymentNotification) error
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
		snapClient             snap.Client
		coreClient             coreapi.Client

		// Read-mostly cache of the external authority's answer; refreshed
		// after usage charges and on webhook updates.
		mu    sync.RWMutex
		cache map[string]domain.SubscriptionState

		now func() time.Time
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository) SubscriptionService {
	env := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtrans.Production
	}

	s := &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		cache:                  make(map[string]domain.SubscriptionState),
		now:                    time.Now,
	}
	s.snapClient.New(utils.GetConfig("SERVER_KEY"), env)
	s.coreClient.New(utils.GetConfig("SERVER_KEY"), env)
	return s
}

// CheckSubscription reads the subscriber mirror. A missing row means free
// tier; an expired period end downgrades to free tier as well.
func (s *subscriptionService) CheckSubscription(ctx context.Context, userID string) (domain.SubscriptionState, error) {
	state := domain.SubscriptionState{}

	subscriber, err := s.subscriptionRepository.GetSubscriber(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.storeCache(userID, state)
			return state, nil
		}
		return state, err
	}

	state.Subscribed = subscriber.Subscribed
	state.SubscriptionTier = subscriber.SubscriptionTier
	state.SubscriptionEnd = subscriber.SubscriptionEnd
	if state.SubscriptionEnd != nil && state.SubscriptionEnd.Before(s.now()) {
		state.Subscribed = false
	}

	s.storeCache(userID, state)
	return state, nil
}

// LoadUsage returns today's counter, lazily creating it and applying the
// UTC daily reset before the value is trusted. A stale counter is persisted
// as reset before any increment can happen.
func (s *subscriptionService) LoadUsage(ctx context.Context, userID string) (domain.UsageState, error) {
	today := s.now().UTC().Format("2006-01-02")

	usage, err := s.subscriptionRepository.GetUsage(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UsageState{}, err
		}
		userUUID, parseErr := uuid.Parse(userID)
		if parseErr != nil {
			return domain.UsageState{}, domain.ErrParseUUID
		}
		usage = &entities.UserUsage{
			ID:            uuid.New(),
			UserID:        userUUID,
			LastResetDate: today,
		}
		if err := s.subscriptionRepository.CreateUsage(ctx, usage); err != nil {
			return domain.UsageState{}, err
		}
	}

	if usage.LastResetDate != today {
		usage.RecommendationsUsed = 0
		usage.LastResetDate = today
		if err := s.subscriptionRepository.UpdateUsage(ctx, usage); err != nil {
			return domain.UsageState{}, err
		}
	}

	return usageState(usage), nil
}

func (s *subscriptionService) IncrementUsage(ctx context.Context, userID string) (domain.UsageState, error) {
	if _, err := s.LoadUsage(ctx, userID); err != nil {
		return domain.UsageState{}, err
	}

	usage, err := s.subscriptionRepository.GetUsage(ctx, userID)
	if err != nil {
		return domain.UsageState{}, err
	}
	usage.RecommendationsUsed++
	if err := s.subscriptionRepository.UpdateUsage(ctx, usage); err != nil {
		return domain.UsageState{}, err
	}
	return usageState(usage), nil
}

// CanUseFeature is the quota gate: premium users always pass, free users get
// one generation per UTC day. Failures on the subscription side fall back to
// free tier instead of blocking.
func (s *subscriptionService) CanUseFeature(ctx context.Context, userID string) bool {
	if s.IsSubscribed(ctx, userID) {
		return true
	}

	usage, err := s.LoadUsage(ctx, userID)
	if err != nil {
		log.Errorf("loading usage for %s: %v", userID, err)
		return true
	}
	return usage.RecommendationsUsed < domain.FreeDailyRecommendationLimit
}

func (s *subscriptionService) IsSubscribed(ctx context.Context, userID string) bool {
	s.mu.RLock()
	state, ok := s.cache[userID]
	s.mu.RUnlock()
	if ok {
		return state.Subscribed
	}

	state, err := s.CheckSubscription(ctx, userID)
	if err != nil {
		log.Errorf("checking subscription for %s: %v", userID, err)
		return false
	}
	return state.Subscribed
}

func (s *subscriptionService) ConsumeUsage(ctx context.Context, userID string) error {
	_, err := s.IncrementUsage(ctx, userID)
	return err
}

// Refresh re-reads the authoritative subscription and usage rows, replacing
// any optimistic state held since the last charge.
func (s *subscriptionService) Refresh(ctx context.Context, userID string) {
	if _, err := s.CheckSubscription(ctx, userID); err != nil {
		log.Errorf("refreshing subscription for %s: %v", userID, err)
	}
	if _, err := s.LoadUsage(ctx, userID); err != nil {
		log.Errorf("refreshing usage for %s: %v", userID, err)
	}
}

// CreateCheckout opens a midtrans Snap session for the premium tier and
// records the pending transaction. Only the redirect URL is consumed.
func (s *subscriptionService) CreateCheckout(ctx context.Context, req domain.CheckoutRequest, userID string) (*domain.CheckoutResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	orderID := fmt.Sprintf("NUTRI-%s-%d", uuid.New().String()[:8], s.now().Unix())
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: premiumMonthlyPriceIDR,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    "premium-monthly",
				Name:  "NutriMind Premium (monthly)",
				Price: premiumMonthlyPriceIDR,
				Qty:   1,
			},
		},
	}

	snapResp, snapErr := s.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		log.Errorf("creating snap transaction: %v", snapErr)
		return nil, domain.ErrPaymentFailed
	}

	now := s.now()
	transaction := &entities.Transaction{
		ID:          uuid.New(),
		UserID:      userUUID,
		OrderID:     orderID,
		GrossAmount: premiumMonthlyPriceIDR,
		Status:      "pending",
		SnapURL:     snapResp.RedirectURL,
		Timestamp:   entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.subscriptionRepository.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}

	return &domain.CheckoutResponse{URL: snapResp.RedirectURL}, nil
}

// BillingPortalURL is an opaque redirect provider; the portal itself is
// hosted outside this service.
func (s *subscriptionService) BillingPortalURL(_ context.Context, _ string) (*domain.PortalResponse, error) {
	portal := utils.GetConfig("BILLING_PORTAL_URL")
	if portal == "" {
		portal = utils.GetConfig("APP_URL") + "/billing"
	}
	return &domain.PortalResponse{URL: portal}, nil
}

// HandleNotification processes a midtrans payment webhook. The transaction
// status is re-verified against midtrans rather than trusting the payload.
func (s *subscriptionService) HandleNotification(ctx context.Context, notification domain.PaymentNotification) error {
	transaction, err := s.subscriptionRepository.GetTransactionByOrderID(ctx, notification.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}

	statusResp, statusErr := s.coreClient.CheckTransaction(notification.OrderID)
	if statusErr != nil {
		log.Errorf("verifying transaction %s: %v", notification.OrderID, statusErr)
		return domain.ErrPaymentFailed
	}

	transaction.Status = statusResp.TransactionStatus
	transaction.PaymentType = statusResp.PaymentType
	transaction.UpdatedAt = s.now()
	if err := s.subscriptionRepository.UpdateTransaction(ctx, transaction); err != nil {
		return err
	}

	settled := statusResp.TransactionStatus == "settlement" ||
		(statusResp.TransactionStatus == "capture" && statusResp.FraudStatus == "accept")
	if !settled {
		return nil
	}

	tier := domain.TierPremium
	periodEnd := s.now().AddDate(0, 0, premiumPeriodDays)
	subscriber := &entities.Subscriber{
		ID:               uuid.New(),
		UserID:           transaction.UserID,
		Subscribed:       true,
		SubscriptionTier: &tier,
		SubscriptionEnd:  &periodEnd,
		Timestamp:        entities.Timestamp{CreatedAt: s.now(), UpdatedAt: s.now()},
	}
	if err := s.subscriptionRepository.UpsertSubscriber(ctx, subscriber); err != nil {
		return err
	}

	// Invalidate the cached view so the next read sees the upgrade.
	s.mu.Lock()
	delete(s.cache, transaction.UserID.String())
	s.mu.Unlock()
	return nil
}

func (s *subscriptionService) storeCache(userID string, state domain.SubscriptionState) {
	s.mu.Lock()
	s.cache[userID] = state
	s.mu.Unlock()
}

func usageState(usage *entities.UserUsage) domain.UsageState {
	remaining := domain.FreeDailyRecommendationLimit - usage.RecommendationsUsed
	if remaining < 0 {
		remaining = 0
	}
	return domain.UsageState{
		RecommendationsUsed: usage.RecommendationsUsed,
		LastResetDate:       usage.LastResetDate,
		Remaining:           remaining,
	}
}
