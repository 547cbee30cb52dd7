package http

import (
	"time"

	billingUsecases "studia/internal/application/billing/usecases"
	courseUsecases "studia/internal/application/course/usecases"
	orderUsecases "studia/internal/application/order/usecases"
	userUsecases "studia/internal/application/user/usecases"
	"studia/internal/infrastructure/auth"
	shareddb "studia/internal/shared/db"
	"studia/internal/shared/services/markdown"
)

type useCases struct {
	// user
	register       *userUsecases.RegisterWithPasswordUseCase
	login          *userUsecases.LoginWithPasswordUseCase
	googleCallback *userUsecases.HandleGoogleCallbackUseCase
	getMe          *userUsecases.GetMeUseCase

	// course
	createCourse  *courseUsecases.CreateCourseUseCase
	updateCourse  *courseUsecases.UpdateCourseUseCase
	publishCourse *courseUsecases.PublishCourseUseCase
	getCourse     *courseUsecases.GetCourseUseCase
	searchCourses *courseUsecases.SearchCoursesUseCase
	listMyCourses *courseUsecases.ListMyCoursesUseCase
	deleteCourse  *courseUsecases.DeleteCourseUseCase

	// billing
	purchaseCheckout     *billingUsecases.CreatePurchaseCheckoutUseCase
	boostCheckout        *billingUsecases.CreateBoostCheckoutUseCase
	subscriptionCheckout *billingUsecases.CreateSubscriptionCheckoutUseCase
	processWebhook       *billingUsecases.ProcessWebhookEventUseCase
	getMySubscription    *billingUsecases.GetMySubscriptionUseCase
	listPlans            *billingUsecases.ListPlansUseCase

	// order
	listLibrary *orderUsecases.ListLibraryUseCase
	listSales   *orderUsecases.ListSalesUseCase
}

func (c *Container) wireUseCases() {
	hasher := auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)
	markdownService := markdown.NewMarkdownService()

	checkoutURLs := billingUsecases.CheckoutURLs{
		SuccessURL: c.cfg.Stripe.SuccessURL,
		CancelURL:  c.cfg.Stripe.CancelURL,
	}
	boostDuration := time.Duration(c.cfg.Boost.DurationDays) * 24 * time.Hour

	activateBoostUC := billingUsecases.NewActivateCourseBoostUseCase(
		c.repos.course, c.repos.user, boostDuration, c.log)
	grantPurchaseUC := billingUsecases.NewGrantCoursePurchaseUseCase(
		c.repos.order, c.repos.entitlement, c.repos.course, c.repos.user, c.log)
	grantPurchaseUC.SetTransactionRunner(shareddb.NewTransactionManager(c.db))
	if c.emailService != nil {
		grantPurchaseUC.SetReceiptNotifier(c.emailService)
		grantPurchaseUC.SetSaleNotifier(c.emailService)
	}
	syncSubscriptionUC := billingUsecases.NewSyncSubscriptionUseCase(
		c.repos.subscription, c.repos.plan, c.repos.user, c.gateway, c.log)

	c.ucs = &useCases{
		register: userUsecases.NewRegisterWithPasswordUseCase(
			c.repos.user, hasher, c.jwtService, c.log),
		login: userUsecases.NewLoginWithPasswordUseCase(
			c.repos.user, hasher, c.jwtService, c.log),
		googleCallback: userUsecases.NewHandleGoogleCallbackUseCase(
			c.repos.user, c.oauthClient, c.jwtService, c.log),
		getMe: userUsecases.NewGetMeUseCase(c.repos.user, c.log),

		createCourse: courseUsecases.NewCreateCourseUseCase(
			c.repos.course, c.repos.subscription, c.repos.plan, c.log),
		updateCourse:  courseUsecases.NewUpdateCourseUseCase(c.repos.course, c.log),
		publishCourse: courseUsecases.NewPublishCourseUseCase(c.repos.course, c.log),
		getCourse: courseUsecases.NewGetCourseUseCase(
			c.repos.course, c.repos.entitlement, markdownService, c.log),
		searchCourses: courseUsecases.NewSearchCoursesUseCase(c.repos.course, c.log),
		listMyCourses: courseUsecases.NewListMyCoursesUseCase(c.repos.course, c.log),
		deleteCourse: courseUsecases.NewDeleteCourseUseCase(
			c.repos.course, c.repos.entitlement, c.log),

		purchaseCheckout: billingUsecases.NewCreatePurchaseCheckoutUseCase(
			c.repos.course, c.repos.user, c.repos.entitlement, c.gateway, checkoutURLs, c.log),
		boostCheckout: billingUsecases.NewCreateBoostCheckoutUseCase(
			c.repos.course, c.repos.user, c.gateway, c.cfg.Stripe.BoostPriceID, checkoutURLs, c.log),
		subscriptionCheckout: billingUsecases.NewCreateSubscriptionCheckoutUseCase(
			c.repos.subscription, c.repos.plan, c.repos.user, c.gateway, checkoutURLs, c.log),
		processWebhook: billingUsecases.NewProcessWebhookEventUseCase(
			c.gateway, c.repos.processedEvent, activateBoostUC, grantPurchaseUC, syncSubscriptionUC, c.log),
		getMySubscription: billingUsecases.NewGetMySubscriptionUseCase(c.repos.subscription, c.log),
		listPlans:         billingUsecases.NewListPlansUseCase(c.repos.plan, c.log),

		listLibrary: orderUsecases.NewListLibraryUseCase(
			c.repos.entitlement, c.repos.course, c.log),
		listSales: orderUsecases.NewListSalesUseCase(
			c.repos.order, c.repos.course, c.log),
	}
}
