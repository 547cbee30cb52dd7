package usecases

import (
	"context"
	"errors"
	"time"

	coursedto "studia/internal/application/course/dto"
	"studia/internal/domain/course"
	"studia/internal/domain/entitlement"
	"studia/internal/shared/logger"
)

// ListLibraryCommand identifies the buyer.
type ListLibraryCommand struct {
	UserID uint
}

// LibraryItem is one purchased course with its grant date.
type LibraryItem struct {
	Course    coursedto.CourseView `json:"course"`
	GrantedAt time.Time            `json:"granted_at"`
}

// ListLibraryUseCase lists the courses a user has access to. Entitled
// courses stay in the library even when the author unpublishes them.
type ListLibraryUseCase struct {
	entitlementRepo entitlement.Repository
	courseRepo      course.Repository
	logger          logger.Interface
}

// NewListLibraryUseCase creates the use case.
func NewListLibraryUseCase(entitlementRepo entitlement.Repository, courseRepo course.Repository, logger logger.Interface) *ListLibraryUseCase {
	return &ListLibraryUseCase{
		entitlementRepo: entitlementRepo,
		courseRepo:      courseRepo,
		logger:          logger,
	}
}

// Execute loads the buyer's library.
func (uc *ListLibraryUseCase) Execute(ctx context.Context, cmd ListLibraryCommand) ([]LibraryItem, error) {
	grants, err := uc.entitlementRepo.ListByUser(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	items := make([]LibraryItem, 0, len(grants))
	for _, grant := range grants {
		owned, err := uc.courseRepo.GetByID(ctx, grant.CourseID())
		if err != nil {
			if errors.Is(err, course.ErrCourseNotFound) {
				uc.logger.Warnw("entitled course missing", "course_id", grant.CourseID(), "user_id", cmd.UserID)
				continue
			}
			return nil, err
		}
		items = append(items, LibraryItem{
			Course:    coursedto.NewOwnedCourseView(owned),
			GrantedAt: grant.GrantedAt(),
		})
	}
	return items, nil
}
