package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studia/internal/domain/order"
	"studia/internal/infrastructure/persistence/mappers"
	"studia/internal/infrastructure/persistence/models"
	"studia/internal/shared/constants"
	shareddb "studia/internal/shared/db"
	"studia/internal/shared/logger"
)

// OrderRepository implements the order repository interface
type OrderRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// conn returns the transaction bound to the context when one is
// active, falling back to the default connection.
func (r *OrderRepository) conn(ctx context.Context) *gorm.DB {
	return shareddb.GetTxFromContext(ctx, r.db)
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB, logger logger.Interface) order.Repository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertByCheckoutSession inserts the order, or leaves the existing row
// for the same checkout session untouched. The session ID is the
// idempotency key, so replayed provider events never create duplicates.
func (r *OrderRepository) UpsertByCheckoutSession(ctx context.Context, orderEntity *order.Order) error {
	model := mappers.OrderToModel(orderEntity)

	result := r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "checkout_session_id"}},
		DoNothing: true,
	}).Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to upsert order", "checkout_session_id", model.CheckoutSessionID, "error", result.Error)
		return fmt.Errorf("failed to upsert order: %w", result.Error)
	}

	if orderEntity.ID() == 0 && model.ID > 0 {
		if err := orderEntity.SetID(model.ID); err != nil {
			return err
		}
	}

	r.logger.Infow("order upserted", "id", model.ID, "checkout_session_id", model.CheckoutSessionID)
	return nil
}

// GetByID retrieves an order by internal ID
func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	var model models.OrderModel

	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		r.logger.Errorw("failed to get order by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return mappers.OrderToDomain(&model)
}

// GetByCheckoutSessionID retrieves an order by provider checkout session
func (r *OrderRepository) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*order.Order, error) {
	var model models.OrderModel

	if err := r.conn(ctx).
		Where("checkout_session_id = ?", sessionID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		r.logger.Errorw("failed to get order by checkout session", "error", err)
		return nil, fmt.Errorf("failed to get order by checkout session: %w", err)
	}

	return mappers.OrderToDomain(&model)
}

// Update persists the current state of the order aggregate
func (r *OrderRepository) Update(ctx context.Context, orderEntity *order.Order) error {
	model := mappers.OrderToModel(orderEntity)

	result := r.conn(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"paid_at":    model.PaidAt,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update order", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

// ListByBuyer returns the buyer's orders, newest first
func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID uint) ([]*order.Order, error) {
	var orderModels []*models.OrderModel

	if err := r.conn(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		r.logger.Errorw("failed to list orders by buyer", "buyer_id", buyerID, "error", err)
		return nil, fmt.Errorf("failed to list orders by buyer: %w", err)
	}

	return r.toEntities(orderModels)
}

// ListSalesForAuthor returns paid orders for courses owned by the given
// author, newest first. The author link lives on the course row.
func (r *OrderRepository) ListSalesForAuthor(ctx context.Context, authorID uint) ([]*order.Order, error) {
	var orderModels []*models.OrderModel

	if err := r.conn(ctx).
		Joins(fmt.Sprintf("JOIN %s ON %s.id = %s.course_id",
			constants.TableCourses, constants.TableCourses, constants.TableOrders)).
		Where(fmt.Sprintf("%s.author_id = ? AND %s.status = ?", constants.TableCourses, constants.TableOrders),
			authorID, order.StatusPaid.String()).
		Order(constants.TableOrders + ".created_at DESC").
		Find(&orderModels).Error; err != nil {
		r.logger.Errorw("failed to list sales for author", "author_id", authorID, "error", err)
		return nil, fmt.Errorf("failed to list sales for author: %w", err)
	}

	return r.toEntities(orderModels)
}

func (r *OrderRepository) toEntities(orderModels []*models.OrderModel) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(orderModels))
	for _, model := range orderModels {
		entity, err := mappers.OrderToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map order ID %d: %w", model.ID, err)
		}
		orders = append(orders, entity)
	}
	return orders, nil
}
