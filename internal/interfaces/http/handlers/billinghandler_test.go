package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingTestutil "studia/internal/application/billing/testutil"
	billingUsecases "studia/internal/application/billing/usecases"
	"studia/internal/domain/billing"
	"studia/internal/interfaces/http/handlers/testutil"
)

type billingHandlerFixture struct {
	subs    *billingTestutil.MockSubscriptionRepository
	plans   *billingTestutil.MockPlanRepository
	handler *BillingHandler
}

func newBillingHandlerFixture(t *testing.T) *billingHandlerFixture {
	t.Helper()
	f := &billingHandlerFixture{
		subs:  billingTestutil.NewMockSubscriptionRepository(),
		plans: billingTestutil.NewMockPlanRepository(),
	}
	log := testutil.NewMockLogger()

	getUC := billingUsecases.NewGetMySubscriptionUseCase(f.subs, log)
	listUC := billingUsecases.NewListPlansUseCase(f.plans, log)
	f.handler = NewBillingHandler(getUC, listUC, log)
	return f
}

func TestBillingHandler_GetMySubscription_RequiresAuth(t *testing.T) {
	f := newBillingHandlerFixture(t)
	c, w := testutil.NewTestContext(http.MethodGet, "/billing/subscription", nil)

	f.handler.GetMySubscription(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBillingHandler_GetMySubscription_DefaultsToFreePlan(t *testing.T) {
	f := newBillingHandlerFixture(t)
	c, w := testutil.NewTestContext(http.MethodGet, "/billing/subscription", nil)
	testutil.SetAuthContext(c, 42)

	f.handler.GetMySubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.True(t, resp.Success)

	var view billingUsecases.SubscriptionView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.Equal(t, billing.PlanFree, view.PlanID)
	assert.Equal(t, billing.PlanFree, view.EffectivePlan)
}

func TestBillingHandler_ListPlans(t *testing.T) {
	f := newBillingHandlerFixture(t)
	creator, err := billing.NewPlan(billing.PlanCreator, "Creator", "", 990, "EUR", "price_creator", 25, true)
	require.NoError(t, err)
	f.plans.AddPlan(creator)

	c, w := testutil.NewTestContext(http.MethodGet, "/plans", nil)
	f.handler.ListPlans(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.True(t, resp.Success)

	var views []billingUsecases.PlanView
	require.NoError(t, json.Unmarshal(resp.Data, &views))
	require.Len(t, views, 1)
	assert.Equal(t, billing.PlanCreator, views[0].ID)
	assert.Equal(t, int64(990), views[0].PriceCents)
}
