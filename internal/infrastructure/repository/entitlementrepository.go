package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studia/internal/domain/entitlement"
	"studia/internal/infrastructure/persistence/mappers"
	"studia/internal/infrastructure/persistence/models"
	shareddb "studia/internal/shared/db"
	"studia/internal/shared/logger"
)

// EntitlementRepository implements the entitlement repository interface
type EntitlementRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// conn returns the transaction bound to the context when one is
// active, falling back to the default connection.
func (r *EntitlementRepository) conn(ctx context.Context) *gorm.DB {
	return shareddb.GetTxFromContext(ctx, r.db)
}

// NewEntitlementRepository creates a new entitlement repository
func NewEntitlementRepository(db *gorm.DB, logger logger.Interface) entitlement.Repository {
	return &EntitlementRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts the entitlement or leaves the existing row for the
// same (user, course) pair untouched. Granting access twice is a no-op.
func (r *EntitlementRepository) Upsert(ctx context.Context, entitlementEntity *entitlement.Entitlement) error {
	model := mappers.EntitlementToModel(entitlementEntity)

	result := r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to upsert entitlement",
			"user_id", model.UserID, "course_id", model.CourseID, "error", result.Error)
		return fmt.Errorf("failed to upsert entitlement: %w", result.Error)
	}

	if entitlementEntity.ID() == 0 && model.ID > 0 {
		if err := entitlementEntity.SetID(model.ID); err != nil {
			return err
		}
	}

	r.logger.Infow("entitlement upserted", "id", model.ID, "user_id", model.UserID, "course_id", model.CourseID)
	return nil
}

// GetByUserAndCourse retrieves the entitlement for a (user, course) pair
func (r *EntitlementRepository) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel

	if err := r.conn(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlement.ErrEntitlementNotFound
		}
		r.logger.Errorw("failed to get entitlement", "user_id", userID, "course_id", courseID, "error", err)
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}

	return mappers.EntitlementToDomain(&model)
}

// Exists checks whether the user holds an entitlement for the course
func (r *EntitlementRepository) Exists(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64

	if err := r.conn(ctx).
		Model(&models.EntitlementModel{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check entitlement existence", "user_id", userID, "course_id", courseID, "error", err)
		return false, fmt.Errorf("failed to check entitlement existence: %w", err)
	}

	return count > 0, nil
}

// ListByUser returns all of the user's entitlements, newest grant first
func (r *EntitlementRepository) ListByUser(ctx context.Context, userID uint) ([]*entitlement.Entitlement, error) {
	var entitlementModels []*models.EntitlementModel

	if err := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("granted_at DESC").
		Find(&entitlementModels).Error; err != nil {
		r.logger.Errorw("failed to list entitlements by user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list entitlements by user: %w", err)
	}

	entitlements := make([]*entitlement.Entitlement, 0, len(entitlementModels))
	for _, model := range entitlementModels {
		entity, err := mappers.EntitlementToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map entitlement ID %d: %w", model.ID, err)
		}
		entitlements = append(entitlements, entity)
	}

	return entitlements, nil
}

// CountByCourse returns how many users hold access to the course
func (r *EntitlementRepository) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64

	if err := r.conn(ctx).
		Model(&models.EntitlementModel{}).
		Where("course_id = ?", courseID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count entitlements by course", "course_id", courseID, "error", err)
		return 0, fmt.Errorf("failed to count entitlements by course: %w", err)
	}

	return count, nil
}
