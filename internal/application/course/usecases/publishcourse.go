package usecases

import (
	"context"
	"fmt"

	"studia/internal/domain/course"
	apperrors "studia/internal/shared/errors"
	"studia/internal/shared/logger"
)

// PublishCourseCommand toggles a course's catalog visibility.
type PublishCourseCommand struct {
	UserID    uint
	CourseSID string
	Publish   bool
}

// PublishCourseUseCase publishes or unpublishes an owned course.
type PublishCourseUseCase struct {
	courseRepo course.Repository
	logger     logger.Interface
}

// NewPublishCourseUseCase creates the use case.
func NewPublishCourseUseCase(courseRepo course.Repository, logger logger.Interface) *PublishCourseUseCase {
	return &PublishCourseUseCase{courseRepo: courseRepo, logger: logger}
}

// Execute toggles visibility after an ownership check.
func (uc *PublishCourseUseCase) Execute(ctx context.Context, cmd PublishCourseCommand) error {
	target, err := uc.courseRepo.GetBySID(ctx, cmd.CourseSID)
	if err != nil {
		return err
	}
	if !target.IsOwnedBy(cmd.UserID) {
		return apperrors.NewForbiddenError("only the course author can publish it")
	}

	if cmd.Publish {
		if err := target.Publish(); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	} else {
		target.Unpublish()
	}

	if err := uc.courseRepo.Update(ctx, target); err != nil {
		return fmt.Errorf("failed to update course visibility: %w", err)
	}

	uc.logger.Infow("course visibility changed", "course_sid", cmd.CourseSID, "published", cmd.Publish)
	return nil
}
