package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studia/internal/domain/course"
	"studia/internal/infrastructure/persistence/mappers"
	"studia/internal/infrastructure/persistence/models"
	"studia/internal/shared/biztime"
	"studia/internal/shared/logger"
	"studia/internal/shared/utils"
)

// allowedCourseOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedCourseOrderByFields = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"title":       true,
	"price_cents": true,
}

// CourseRepository implements the course repository interface
type CourseRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB, logger logger.Interface) course.Repository {
	return &CourseRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, courseEntity *course.Course) error {
	model := mappers.CourseToModel(courseEntity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create course", "error", err)
		return fmt.Errorf("failed to create course: %w", err)
	}

	if err := courseEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set course ID: %w", err)
	}

	r.logger.Infow("course created", "id", model.ID, "sid", model.SID, "author_id", model.AuthorID)
	return nil
}

// GetByID retrieves a course by internal ID
func (r *CourseRepository) GetByID(ctx context.Context, id uint) (*course.Course, error) {
	var model models.CourseModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, course.ErrCourseNotFound
		}
		r.logger.Errorw("failed to get course by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return mappers.CourseToDomain(&model)
}

// GetBySID retrieves a course by external SID (Stripe-style ID)
func (r *CourseRepository) GetBySID(ctx context.Context, sid string) (*course.Course, error) {
	var model models.CourseModel

	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, course.ErrCourseNotFound
		}
		r.logger.Errorw("failed to get course by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get course by SID: %w", err)
	}

	return mappers.CourseToDomain(&model)
}

// Update persists the current state of the course aggregate
func (r *CourseRepository) Update(ctx context.Context, courseEntity *course.Course) error {
	model := mappers.CourseToModel(courseEntity)

	result := r.db.WithContext(ctx).
		Model(&models.CourseModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":           model.Title,
			"description":     model.Description,
			"search_text":     model.SearchText,
			"price_cents":     model.PriceCents,
			"currency":        model.Currency,
			"video_url":       model.VideoURL,
			"pdf_url":         model.PDFURL,
			"published":       model.Published,
			"boosted_until":   model.BoostedUntil,
			"last_boosted_at": model.LastBoostedAt,
			"version":         model.Version,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update course", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return course.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course
func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.CourseModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete course", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return course.ErrCourseNotFound
	}

	r.logger.Infow("course deleted", "id", id)
	return nil
}

// Search lists published courses matching the filter. Courses with an
// active boost always rank before unboosted ones, then the requested
// sort applies within each group.
func (r *CourseRepository) Search(ctx context.Context, filter course.SearchFilter) ([]*course.Course, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CourseModel{}).
		Where("published = ?", true)

	if filter.Query != "" {
		// search_text holds the folded title and description, so folding
		// the query the same way makes "creme" match "Crème".
		pattern := "%" + utils.FoldSearchText(strings.TrimSpace(filter.Query)) + "%"
		query = query.Where("search_text LIKE ?", pattern)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price_cents <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count courses", "error", err)
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	sortBy := filter.SortBy
	if !allowedCourseOrderByFields[sortBy] {
		sortBy = "created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	now := biztime.NowUTC()
	orderExpr := clause.OrderBy{Expression: clause.Expr{
		SQL:                "CASE WHEN boosted_until IS NOT NULL AND boosted_until > ? THEN 0 ELSE 1 END, " + sortBy + " " + direction,
		Vars:               []interface{}{now},
		WithoutParentheses: true,
	}}

	var courseModels []*models.CourseModel
	if err := query.
		Clauses(orderExpr).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&courseModels).Error; err != nil {
		r.logger.Errorw("failed to search courses", "error", err)
		return nil, 0, fmt.Errorf("failed to search courses: %w", err)
	}

	courses := make([]*course.Course, 0, len(courseModels))
	for _, model := range courseModels {
		entity, err := mappers.CourseToDomain(model)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to map course ID %d: %w", model.ID, err)
		}
		courses = append(courses, entity)
	}

	return courses, total, nil
}

// ListByAuthor returns all courses owned by the author, drafts included
func (r *CourseRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*course.Course, error) {
	var courseModels []*models.CourseModel

	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&courseModels).Error; err != nil {
		r.logger.Errorw("failed to list courses by author", "author_id", authorID, "error", err)
		return nil, fmt.Errorf("failed to list courses by author: %w", err)
	}

	courses := make([]*course.Course, 0, len(courseModels))
	for _, model := range courseModels {
		entity, err := mappers.CourseToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map course ID %d: %w", model.ID, err)
		}
		courses = append(courses, entity)
	}

	return courses, nil
}
