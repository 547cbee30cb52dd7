package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studia/internal/application/billing/paymentgateway"
	"studia/internal/application/billing/testutil"
	"studia/internal/domain/billing"
	"studia/internal/domain/entitlement"
	apperrors "studia/internal/shared/errors"
)

var testURLs = CheckoutURLs{
	SuccessURL: "https://studia.test/success",
	CancelURL:  "https://studia.test/cancel",
}

func TestCreatePurchaseCheckout_HappyPath(t *testing.T) {
	f := newWebhookFixture(t)
	buyer := f.addUser(t, "buyer@example.com", "Buyer Person")
	author := f.addUser(t, "author@example.com", "Author Person")
	target := f.addCourse(t, author.ID())
	uc := NewCreatePurchaseCheckoutUseCase(f.courses, f.users, f.entitlements, f.gateway, testURLs, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), CreatePurchaseCheckoutCommand{
		UserID:    buyer.ID(),
		CourseSID: target.SID(),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.CheckoutURL)

	require.Len(t, f.gateway.SessionCalls, 1)
	call := f.gateway.SessionCalls[0]
	assert.Equal(t, paymentgateway.ModePayment, call.Mode)
	assert.Equal(t, int64(1999), call.AmountCents)
	assert.Equal(t, "purchase", call.Metadata["type"])
	assert.Equal(t, buyer.SID(), call.Metadata["user_id"])
	assert.Equal(t, target.SID(), call.Metadata["course_id"])
}

func TestCreatePurchaseCheckout_OwnCourseRejected(t *testing.T) {
	f := newWebhookFixture(t)
	author := f.addUser(t, "author@example.com", "Author Person")
	target := f.addCourse(t, author.ID())
	uc := NewCreatePurchaseCheckoutUseCase(f.courses, f.users, f.entitlements, f.gateway, testURLs, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), CreatePurchaseCheckoutCommand{
		UserID:    author.ID(),
		CourseSID: target.SID(),
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Empty(t, f.gateway.SessionCalls)
}

func TestCreatePurchaseCheckout_AlreadyEntitledRejected(t *testing.T) {
	f := newWebhookFixture(t)
	buyer := f.addUser(t, "buyer@example.com", "Buyer Person")
	author := f.addUser(t, "author@example.com", "Author Person")
	target := f.addCourse(t, author.ID())
	grant, err := entitlement.NewEntitlement(buyer.ID(), target.ID(), 1, time.Now())
	require.NoError(t, err)
	require.NoError(t, f.entitlements.Upsert(context.Background(), grant))
	uc := NewCreatePurchaseCheckoutUseCase(f.courses, f.users, f.entitlements, f.gateway, testURLs, testutil.NewMockLogger())

	_, err = uc.Execute(context.Background(), CreatePurchaseCheckoutCommand{
		UserID:    buyer.ID(),
		CourseSID: target.SID(),
	})

	assert.Error(t, err)
	assert.Empty(t, f.gateway.SessionCalls)
}

func TestCreateBoostCheckout_OnlyOwner(t *testing.T) {
	f := newWebhookFixture(t)
	author := f.addUser(t, "author@example.com", "Author Person")
	stranger := f.addUser(t, "stranger@example.com", "Stranger Person")
	target := f.addCourse(t, author.ID())
	uc := NewCreateBoostCheckoutUseCase(f.courses, f.users, f.gateway, "price_boost", testURLs, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), CreateBoostCheckoutCommand{
		UserID:    stranger.ID(),
		CourseSID: target.SID(),
	})
	assert.Error(t, err, "non-owners cannot boost")
	assert.Empty(t, f.gateway.SessionCalls)

	result, err := uc.Execute(context.Background(), CreateBoostCheckoutCommand{
		UserID:    author.ID(),
		CourseSID: target.SID(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionID)

	require.Len(t, f.gateway.SessionCalls, 1)
	call := f.gateway.SessionCalls[0]
	assert.Equal(t, "price_boost", call.PriceID)
	assert.Equal(t, "boost", call.Metadata["type"])
}

func TestCreateSubscriptionCheckout_ProvisionsCustomerOnce(t *testing.T) {
	f := newWebhookFixture(t)
	subscriber := f.addUser(t, "sub@example.com", "Subscriber Person")
	uc := NewCreateSubscriptionCheckoutUseCase(f.subs, f.plans, f.users, f.gateway, testURLs, testutil.NewMockLogger())
	cmd := CreateSubscriptionCheckoutCommand{UserID: subscriber.ID(), PlanID: billing.PlanCreator}

	_, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), cmd)
	require.NoError(t, err)

	assert.Len(t, f.gateway.CustomerCalls, 1, "the provider customer is created once and reused")

	row, err := f.subs.GetByUserID(context.Background(), subscriber.ID())
	require.NoError(t, err)
	assert.Equal(t, billing.PlanFree, row.PlanID(), "placeholder row carries the free plan until a webhook upgrades it")

	require.Len(t, f.gateway.SessionCalls, 2)
	call := f.gateway.SessionCalls[0]
	assert.Equal(t, paymentgateway.ModeSubscription, call.Mode)
	assert.Equal(t, "price_creator", call.PriceID)
	assert.Equal(t, subscriber.SID(), call.Metadata["user_id"])
	assert.Equal(t, billing.PlanCreator, call.Metadata["plan_id"])
}

func TestCreateSubscriptionCheckout_FreePlanRejected(t *testing.T) {
	f := newWebhookFixture(t)
	subscriber := f.addUser(t, "sub@example.com", "Subscriber Person")
	free, err := billing.NewPlan(billing.PlanFree, "Free", "", 0, "EUR", "", 1, true)
	require.NoError(t, err)
	f.plans.AddPlan(free)
	uc := NewCreateSubscriptionCheckoutUseCase(f.subs, f.plans, f.users, f.gateway, testURLs, testutil.NewMockLogger())

	_, err = uc.Execute(context.Background(), CreateSubscriptionCheckoutCommand{
		UserID: subscriber.ID(),
		PlanID: billing.PlanFree,
	})

	assert.Error(t, err)
	assert.Empty(t, f.gateway.SessionCalls)
}

func TestGetMySubscription_DefaultsToFree(t *testing.T) {
	f := newWebhookFixture(t)
	uc := NewGetMySubscriptionUseCase(f.subs, testutil.NewMockLogger())

	view, err := uc.Execute(context.Background(), GetMySubscriptionCommand{UserID: 42})

	require.NoError(t, err)
	assert.Equal(t, billing.PlanFree, view.PlanID)
	assert.Equal(t, billing.PlanFree, view.EffectivePlan)
}

func TestListPlans(t *testing.T) {
	f := newWebhookFixture(t)
	uc := NewListPlansUseCase(f.plans, testutil.NewMockLogger())

	views, err := uc.Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, billing.PlanCreator, views[0].ID)
	assert.Equal(t, "9,00 €", views[0].PriceFormatted)
}
