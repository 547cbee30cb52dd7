package usecases

import (
	"context"
	"errors"
	"fmt"

	"studia/internal/application/course/dto"
	"studia/internal/domain/billing"
	"studia/internal/domain/course"
	apperrors "studia/internal/shared/errors"
	"studia/internal/shared/logger"
)

// CreateCourseCommand carries the new course's fields.
type CreateCourseCommand struct {
	AuthorID    uint
	Title       string
	Description string
	PriceCents  int64
	Currency    string
	VideoURL    string
	PDFURL      string
}

// CreateCourseUseCase creates an unpublished course, enforcing the
// author's plan publishing limit.
type CreateCourseUseCase struct {
	courseRepo       course.Repository
	subscriptionRepo billing.SubscriptionRepository
	planRepo         billing.PlanRepository
	logger           logger.Interface
}

// NewCreateCourseUseCase creates the use case.
func NewCreateCourseUseCase(
	courseRepo course.Repository,
	subscriptionRepo billing.SubscriptionRepository,
	planRepo billing.PlanRepository,
	logger logger.Interface,
) *CreateCourseUseCase {
	return &CreateCourseUseCase{
		courseRepo:       courseRepo,
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

// Execute validates the plan limit and creates the course.
func (uc *CreateCourseUseCase) Execute(ctx context.Context, cmd CreateCourseCommand) (*dto.CourseView, error) {
	if err := uc.checkPlanLimit(ctx, cmd.AuthorID); err != nil {
		return nil, err
	}

	created, err := course.NewCourse(cmd.AuthorID, cmd.Title, cmd.Description, cmd.PriceCents, cmd.Currency, cmd.VideoURL, cmd.PDFURL)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.courseRepo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	uc.logger.Infow("course created", "course_sid", created.SID(), "author_id", cmd.AuthorID)
	view := dto.NewOwnedCourseView(created)
	return &view, nil
}

// checkPlanLimit resolves the author's effective plan and rejects the
// creation once the plan's course quota is reached.
func (uc *CreateCourseUseCase) checkPlanLimit(ctx context.Context, authorID uint) error {
	effectivePlan := billing.PlanFree
	if row, err := uc.subscriptionRepo.GetByUserID(ctx, authorID); err == nil {
		effectivePlan = row.EffectivePlan()
	} else if !errors.Is(err, billing.ErrSubscriptionNotFound) {
		return fmt.Errorf("failed to load subscription: %w", err)
	}

	plan, err := uc.planRepo.GetByID(ctx, effectivePlan)
	if err != nil {
		return fmt.Errorf("failed to load plan %s: %w", effectivePlan, err)
	}
	if plan.MaxCourses() <= 0 {
		return nil
	}

	existing, err := uc.courseRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return fmt.Errorf("failed to count author courses: %w", err)
	}
	if len(existing) >= plan.MaxCourses() {
		return apperrors.NewForbiddenError(
			fmt.Sprintf("plan %s allows at most %d courses", plan.Name(), plan.MaxCourses()))
	}
	return nil
}
