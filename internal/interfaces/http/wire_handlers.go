package http

import (
	"studia/internal/interfaces/http/handlers"
)

type handlerSet struct {
	auth     *handlers.AuthHandler
	course   *handlers.CourseHandler
	checkout *handlers.CheckoutHandler
	billing  *handlers.BillingHandler
	webhook  *handlers.WebhookHandler
	library  *handlers.LibraryHandler
}

func (c *Container) wireHandlers() {
	c.hdlrs = &handlerSet{
		auth: handlers.NewAuthHandler(
			c.ucs.register,
			c.ucs.login,
			c.ucs.googleCallback,
			c.ucs.getMe,
			c.oauthClient,
			c.jwtService,
			c.cfg.Auth.Cookie,
			c.cfg.Auth.JWT,
			c.cfg.Server.BaseURL,
			c.log,
		),
		course: handlers.NewCourseHandler(
			c.ucs.createCourse,
			c.ucs.updateCourse,
			c.ucs.publishCourse,
			c.ucs.getCourse,
			c.ucs.searchCourses,
			c.ucs.listMyCourses,
			c.ucs.deleteCourse,
			c.log,
		),
		checkout: handlers.NewCheckoutHandler(
			c.ucs.purchaseCheckout,
			c.ucs.boostCheckout,
			c.ucs.subscriptionCheckout,
			c.log,
		),
		billing: handlers.NewBillingHandler(
			c.ucs.getMySubscription,
			c.ucs.listPlans,
			c.log,
		),
		webhook: handlers.NewWebhookHandler(c.ucs.processWebhook, c.log),
		library: handlers.NewLibraryHandler(c.ucs.listLibrary, c.ucs.listSales, c.log),
	}
}
