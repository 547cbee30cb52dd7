package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studia/internal/domain/billing"
	"studia/internal/infrastructure/persistence/mappers"
	"studia/internal/infrastructure/persistence/models"
	"studia/internal/shared/logger"
)

// SubscriptionRepository implements the subscription repository interface
type SubscriptionRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) billing.SubscriptionRepository {
	return &SubscriptionRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertByUserID inserts the row or replaces the existing row for the
// same user. Provider state always overwrites local state.
func (r *SubscriptionRepository) UpsertByUserID(ctx context.Context, subscriptionEntity *billing.Subscription) error {
	model := mappers.SubscriptionToModel(subscriptionEntity)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan_id",
			"status",
			"stripe_customer_id",
			"stripe_subscription_id",
			"current_period_end",
			"cancel_at_period_end",
			"version",
			"updated_at",
		}),
	}).Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to upsert subscription", "user_id", model.UserID, "error", result.Error)
		return fmt.Errorf("failed to upsert subscription: %w", result.Error)
	}

	if subscriptionEntity.ID() == 0 && model.ID > 0 {
		if err := subscriptionEntity.SetID(model.ID); err != nil {
			return err
		}
	}

	r.logger.Infow("subscription upserted",
		"user_id", model.UserID, "plan_id", model.PlanID, "status", model.Status)
	return nil
}

// GetByUserID retrieves the subscription row for a user
func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID uint) (*billing.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrSubscriptionNotFound
		}
		r.logger.Errorw("failed to get subscription by user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return mappers.SubscriptionToDomain(&model)
}

// GetByStripeCustomerID retrieves the subscription row by provider customer
func (r *SubscriptionRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*billing.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).
		Where("stripe_customer_id = ?", customerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrSubscriptionNotFound
		}
		r.logger.Errorw("failed to get subscription by customer", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("failed to get subscription by customer: %w", err)
	}

	return mappers.SubscriptionToDomain(&model)
}
