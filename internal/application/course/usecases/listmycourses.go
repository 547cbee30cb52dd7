package usecases

import (
	"context"

	"studia/internal/application/course/dto"
	"studia/internal/domain/course"
	"studia/internal/shared/logger"
)

// ListMyCoursesCommand identifies the author.
type ListMyCoursesCommand struct {
	UserID uint
}

// ListMyCoursesUseCase lists the caller's own courses, published or not.
type ListMyCoursesUseCase struct {
	courseRepo course.Repository
	logger     logger.Interface
}

// NewListMyCoursesUseCase creates the use case.
func NewListMyCoursesUseCase(courseRepo course.Repository, logger logger.Interface) *ListMyCoursesUseCase {
	return &ListMyCoursesUseCase{courseRepo: courseRepo, logger: logger}
}

// Execute lists the author's courses.
func (uc *ListMyCoursesUseCase) Execute(ctx context.Context, cmd ListMyCoursesCommand) ([]dto.CourseView, error) {
	courses, err := uc.courseRepo.ListByAuthor(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.CourseView, 0, len(courses))
	for _, c := range courses {
		views = append(views, dto.NewOwnedCourseView(c))
	}
	return views, nil
}
