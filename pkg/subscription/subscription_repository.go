package subscription

import (
	"NutriMind-Backend/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	SubscriptionRepository interface {
		GetUsage(ctx context.Context, userID string) (*entities.UserUsage, error)
		CreateUsage(ctx context.Context, usage *entities.UserUsage) error
		UpdateUsage(ctx context.Context, usage *entities.UserUsage) error

		GetSubscriber(ctx context.Context, userID string) (*entities.Subscriber, error)
		UpsertSubscriber(ctx context.Context, subscriber *entities.Subscriber) error

		CreateTransaction(ctx context.Context, transaction *entities.Transaction) error
		GetTransactionByOrderID(ctx context.Context, orderID string) (*entities.Transaction, error)
		UpdateTransaction(ctx context.Context, transaction *entities.Transaction) error
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetUsage(ctx context.Context, userID string) (*entities.UserUsage, error) {
	var usage entities.UserUsage
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&usage).Error; err != nil {
		return nil, err
	}
	return &usage, nil
}

func (r *subscriptionRepository) CreateUsage(ctx context.Context, usage *entities.UserUsage) error {
	return r.db.WithContext(ctx).Create(usage).Error
}

func (r *subscriptionRepository) UpdateUsage(ctx context.Context, usage *entities.UserUsage) error {
	return r.db.WithContext(ctx).Save(usage).Error
}

func (r *subscriptionRepository) GetSubscriber(ctx context.Context, userID string) (*entities.Subscriber, error) {
	var subscriber entities.Subscriber
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&subscriber).Error; err != nil {
		return nil, err
	}
	return &subscriber, nil
}

func (r *subscriptionRepository) UpsertSubscriber(ctx context.Context, subscriber *entities.Subscriber) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(subscriber).Error
}

func (r *subscriptionRepository) CreateTransaction(ctx context.Context, transaction *entities.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *subscriptionRepository) GetTransactionByOrderID(ctx context.Context, orderID string) (*entities.Transaction, error) {
	var transaction entities.Transaction
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *subscriptionRepository) UpdateTransaction(ctx context.Context, transaction *entities.Transaction) error {
	return r.db.WithContext(ctx).Save(transaction).Error
}
