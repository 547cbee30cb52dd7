package usecases

import (
	"context"

	"studia/internal/application/course/dto"
	"studia/internal/domain/course"
	"studia/internal/shared/constants"
	"studia/internal/shared/logger"
	"studia/internal/shared/query"
)

// SearchCoursesCommand narrows the catalog search.
type SearchCoursesCommand struct {
	Query    string
	MaxPrice *int64
	Page     int
	PageSize int
	SortBy   string
	SortDesc bool
}

// SearchCoursesResult is a page of catalog results.
type SearchCoursesResult struct {
	Courses  []dto.CourseView `json:"courses"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// SearchCoursesUseCase lists published courses. The repository ranks
// boosted courses first and matches queries accent-insensitively.
type SearchCoursesUseCase struct {
	courseRepo course.Repository
	logger     logger.Interface
}

// NewSearchCoursesUseCase creates the use case.
func NewSearchCoursesUseCase(courseRepo course.Repository, logger logger.Interface) *SearchCoursesUseCase {
	return &SearchCoursesUseCase{courseRepo: courseRepo, logger: logger}
}

// Execute runs the catalog search.
func (uc *SearchCoursesUseCase) Execute(ctx context.Context, cmd SearchCoursesCommand) (*SearchCoursesResult, error) {
	if cmd.Page < 1 {
		cmd.Page = 1
	}
	if cmd.PageSize < 1 || cmd.PageSize > constants.MaxPageSize {
		cmd.PageSize = constants.DefaultPageSize
	}

	courses, total, err := uc.courseRepo.Search(ctx, course.SearchFilter{
		Query:      cmd.Query,
		MaxPrice:   cmd.MaxPrice,
		PageFilter: query.PageFilter{Page: cmd.Page, PageSize: cmd.PageSize},
		SortBy:     cmd.SortBy,
		SortDesc:   cmd.SortDesc,
	})
	if err != nil {
		return nil, err
	}

	views := make([]dto.CourseView, 0, len(courses))
	for _, c := range courses {
		views = append(views, dto.NewCourseView(c))
	}

	return &SearchCoursesResult{
		Courses:  views,
		Total:    total,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}, nil
}
