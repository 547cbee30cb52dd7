package usecases

import (
	"context"
	"fmt"

	"studia/internal/domain/course"
	"studia/internal/domain/entitlement"
	apperrors "studia/internal/shared/errors"
	"studia/internal/shared/logger"
)

// DeleteCourseCommand identifies the course to remove.
type DeleteCourseCommand struct {
	UserID    uint
	CourseSID string
}

// DeleteCourseUseCase removes an owned course. Courses with existing
// buyers cannot be deleted, only unpublished, so entitlements stay
// honored.
type DeleteCourseUseCase struct {
	courseRepo      course.Repository
	entitlementRepo entitlement.Repository
	logger          logger.Interface
}

// NewDeleteCourseUseCase creates the use case.
func NewDeleteCourseUseCase(courseRepo course.Repository, entitlementRepo entitlement.Repository, logger logger.Interface) *DeleteCourseUseCase {
	return &DeleteCourseUseCase{courseRepo: courseRepo, entitlementRepo: entitlementRepo, logger: logger}
}

// Execute deletes the course after ownership and buyer checks.
func (uc *DeleteCourseUseCase) Execute(ctx context.Context, cmd DeleteCourseCommand) error {
	target, err := uc.courseRepo.GetBySID(ctx, cmd.CourseSID)
	if err != nil {
		return err
	}
	if !target.IsOwnedBy(cmd.UserID) {
		return apperrors.NewForbiddenError("only the course author can delete it")
	}

	buyers, err := uc.entitlementRepo.CountByCourse(ctx, target.ID())
	if err != nil {
		return fmt.Errorf("failed to count course buyers: %w", err)
	}
	if buyers > 0 {
		return apperrors.NewConflictError("course has buyers and can only be unpublished")
	}

	if err := uc.courseRepo.Delete(ctx, target.ID()); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	uc.logger.Infow("course deleted", "course_sid", cmd.CourseSID)
	return nil
}
