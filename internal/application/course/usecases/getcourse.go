package usecases

import (
	"context"
	"fmt"

	"studia/internal/application/course/dto"
	"studia/internal/domain/course"
	"studia/internal/domain/entitlement"
	apperrors "studia/internal/shared/errors"
	"studia/internal/shared/logger"
	"studia/internal/shared/services/markdown"
)

// GetCourseCommand identifies the course to fetch. UserID is zero for
// anonymous visitors.
type GetCourseCommand struct {
	CourseSID string
	UserID    uint
}

// GetCourseUseCase returns a course detail page. Asset URLs are only
// included for the author and entitled buyers; the markdown description
// is rendered to sanitized HTML for everyone.
type GetCourseUseCase struct {
	courseRepo      course.Repository
	entitlementRepo entitlement.Repository
	markdownService markdown.MarkdownService
	logger          logger.Interface
}

// NewGetCourseUseCase creates the use case.
func NewGetCourseUseCase(
	courseRepo course.Repository,
	entitlementRepo entitlement.Repository,
	markdownService markdown.MarkdownService,
	logger logger.Interface,
) *GetCourseUseCase {
	return &GetCourseUseCase{
		courseRepo:      courseRepo,
		entitlementRepo: entitlementRepo,
		markdownService: markdownService,
		logger:          logger,
	}
}

// Execute loads the course view for the given caller.
func (uc *GetCourseUseCase) Execute(ctx context.Context, cmd GetCourseCommand) (*dto.CourseView, error) {
	target, err := uc.courseRepo.GetBySID(ctx, cmd.CourseSID)
	if err != nil {
		return nil, err
	}

	isAuthor := cmd.UserID != 0 && target.IsOwnedBy(cmd.UserID)
	if !target.IsPublished() && !isAuthor {
		return nil, apperrors.NewNotFoundError("course not found")
	}

	entitled := false
	if cmd.UserID != 0 && !isAuthor {
		entitled, err = uc.entitlementRepo.Exists(ctx, cmd.UserID, target.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to check entitlement: %w", err)
		}
	}

	var view dto.CourseView
	if isAuthor || entitled {
		view = dto.NewOwnedCourseView(target)
	} else {
		view = dto.NewCourseView(target)
	}

	rendered, err := uc.markdownService.ToHTMLSanitized(target.Description())
	if err != nil {
		uc.logger.Warnw("failed to render course description", "course_sid", cmd.CourseSID, "error", err)
	} else {
		view.DescriptionHTML = rendered
	}

	return &view, nil
}
