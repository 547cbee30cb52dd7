package usecases

import (
	"context"
	"fmt"

	"studia/internal/application/course/dto"
	"studia/internal/domain/course"
	apperrors "studia/internal/shared/errors"
	"studia/internal/shared/logger"
)

// UpdateCourseCommand carries the edited course fields.
type UpdateCourseCommand struct {
	UserID      uint
	CourseSID   string
	Title       string
	Description string
	PriceCents  int64
	VideoURL    string
	PDFURL      string
}

// UpdateCourseUseCase edits a course owned by the caller.
type UpdateCourseUseCase struct {
	courseRepo course.Repository
	logger     logger.Interface
}

// NewUpdateCourseUseCase creates the use case.
func NewUpdateCourseUseCase(courseRepo course.Repository, logger logger.Interface) *UpdateCourseUseCase {
	return &UpdateCourseUseCase{courseRepo: courseRepo, logger: logger}
}

// Execute applies the edit after an ownership check.
func (uc *UpdateCourseUseCase) Execute(ctx context.Context, cmd UpdateCourseCommand) (*dto.CourseView, error) {
	target, err := uc.courseRepo.GetBySID(ctx, cmd.CourseSID)
	if err != nil {
		return nil, err
	}
	if !target.IsOwnedBy(cmd.UserID) {
		return nil, apperrors.NewForbiddenError("only the course author can edit it")
	}

	if err := target.UpdateDetails(cmd.Title, cmd.Description, cmd.PriceCents, cmd.VideoURL, cmd.PDFURL); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.courseRepo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	uc.logger.Infow("course updated", "course_sid", cmd.CourseSID)
	view := dto.NewOwnedCourseView(target)
	return &view, nil
}
