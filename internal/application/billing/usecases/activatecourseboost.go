package usecases

import (
	"context"
	"fmt"
	"time"

	"studia/internal/domain/course"
	"studia/internal/domain/user"
	"studia/internal/shared/biztime"
	"studia/internal/shared/logger"
)

// ActivateCourseBoostCommand identifies the boost purchase to reconcile.
// Both IDs come from checkout metadata and are re-validated against the
// store before anything is written.
type ActivateCourseBoostCommand struct {
	CourseSID string
	UserSID   string
}

// ActivateCourseBoostUseCase extends a course's promotional window after
// a paid boost checkout.
type ActivateCourseBoostUseCase struct {
	courseRepo    course.Repository
	userRepo      user.Repository
	boostDuration time.Duration
	logger        logger.Interface
}

// NewActivateCourseBoostUseCase creates the use case.
func NewActivateCourseBoostUseCase(
	courseRepo course.Repository,
	userRepo user.Repository,
	boostDuration time.Duration,
	logger logger.Interface,
) *ActivateCourseBoostUseCase {
	if boostDuration <= 0 {
		boostDuration = course.DefaultBoostDuration
	}
	return &ActivateCourseBoostUseCase{
		courseRepo:    courseRepo,
		userRepo:      userRepo,
		boostDuration: boostDuration,
		logger:        logger,
	}
}

// Execute re-checks ownership against current store state and extends
// the boost window. Metadata is never trusted on its own: the payer must
// still own the course at reconciliation time.
func (uc *ActivateCourseBoostUseCase) Execute(ctx context.Context, cmd ActivateCourseBoostCommand) error {
	payer, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return fmt.Errorf("failed to load boost payer: %w", err)
	}

	boosted, err := uc.courseRepo.GetBySID(ctx, cmd.CourseSID)
	if err != nil {
		return fmt.Errorf("failed to load boosted course: %w", err)
	}

	if !boosted.IsOwnedBy(payer.ID()) {
		uc.logger.Warnw("boost payer no longer owns course",
			"course_sid", cmd.CourseSID,
			"user_sid", cmd.UserSID,
		)
		return course.ErrNotCourseOwner
	}

	now := biztime.NowUTC()
	expiry, err := boosted.ActivateBoost(now, uc.boostDuration)
	if err != nil {
		return err
	}

	if err := uc.courseRepo.Update(ctx, boosted); err != nil {
		return fmt.Errorf("failed to persist boost: %w", err)
	}

	uc.logger.Infow("course boost activated",
		"course_sid", cmd.CourseSID,
		"user_sid", cmd.UserSID,
		"boosted_until", expiry,
	)
	return nil
}
