package http

import (
	"studia/internal/domain/billing"
	"studia/internal/domain/course"
	"studia/internal/domain/entitlement"
	"studia/internal/domain/order"
	"studia/internal/domain/user"
	"studia/internal/infrastructure/repository"
)

type repositories struct {
	user           user.Repository
	course         course.Repository
	order          order.Repository
	entitlement    entitlement.Repository
	subscription   billing.SubscriptionRepository
	plan           billing.PlanRepository
	processedEvent billing.ProcessedEventRepository
}

func (c *Container) wireRepositories() {
	c.repos = &repositories{
		user:           repository.NewUserRepository(c.db, c.log),
		course:         repository.NewCourseRepository(c.db, c.log),
		order:          repository.NewOrderRepository(c.db, c.log),
		entitlement:    repository.NewEntitlementRepository(c.db, c.log),
		subscription:   repository.NewSubscriptionRepository(c.db, c.log),
		plan:           repository.NewPlanRepository(c.db, c.log),
		processedEvent: repository.NewProcessedEventRepository(c.db, c.log),
	}
}
