package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studia/internal/application/billing/paymentgateway"
	billingTestutil "studia/internal/application/billing/testutil"
	billingUsecases "studia/internal/application/billing/usecases"
	"studia/internal/domain/course"
	"studia/internal/domain/user"
	vo "studia/internal/domain/user/value_objects"
	"studia/internal/interfaces/http/handlers/testutil"
	"studia/internal/shared/constants"
)

type webhookHandlerFixture struct {
	gateway *billingTestutil.MockPaymentGateway
	events  *billingTestutil.MockProcessedEventRepository
	users   *billingTestutil.MockUserRepository
	courses *billingTestutil.MockCourseRepository
	handler *WebhookHandler
}

func newWebhookHandlerFixture(t *testing.T) *webhookHandlerFixture {
	t.Helper()
	f := &webhookHandlerFixture{
		gateway: billingTestutil.NewMockPaymentGateway(),
		events:  billingTestutil.NewMockProcessedEventRepository(),
		users:   billingTestutil.NewMockUserRepository(),
		courses: billingTestutil.NewMockCourseRepository(),
	}
	orders := billingTestutil.NewMockOrderRepository()
	entitlements := billingTestutil.NewMockEntitlementRepository()
	subs := billingTestutil.NewMockSubscriptionRepository()
	plans := billingTestutil.NewMockPlanRepository()
	log := testutil.NewMockLogger()

	boostUC := billingUsecases.NewActivateCourseBoostUseCase(f.courses, f.users, 7*24*time.Hour, log)
	grantUC := billingUsecases.NewGrantCoursePurchaseUseCase(orders, entitlements, f.courses, f.users, log)
	syncUC := billingUsecases.NewSyncSubscriptionUseCase(subs, plans, f.users, f.gateway, log)
	processUC := billingUsecases.NewProcessWebhookEventUseCase(f.gateway, f.events, boostUC, grantUC, syncUC, log)

	f.handler = NewWebhookHandler(processUC, log)
	return f
}

func (f *webhookHandlerFixture) seedBoostedCourse(t *testing.T) (*user.User, *course.Course) {
	t.Helper()
	e, err := vo.NewEmail("author@example.com")
	require.NoError(t, err)
	n, err := vo.NewName("Author Person")
	require.NoError(t, err)
	author, err := user.NewUser(e, n, "$2a$12$hash")
	require.NoError(t, err)
	f.users.AddUser(author)

	c, err := course.NewCourse(author.ID(), "Sourdough Basics", "desc", 1999, "EUR", "v", "p")
	require.NoError(t, err)
	require.NoError(t, c.Publish())
	f.courses.AddCourse(c)
	return author, c
}

func (f *webhookHandlerFixture) deliver(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	c, w := testutil.NewTestContext(http.MethodPost, "/webhooks/stripe", gin.H{"id": "evt_1"})
	c.Request.Header.Set(constants.HeaderStripeSignature, "t=1,v1=sig")
	f.handler.HandleStripeEvent(c)
	return w
}

func handlerBoostEvent(userSID, courseSID string) *paymentgateway.WebhookEvent {
	return &paymentgateway.WebhookEvent{
		ID:   "evt_boost_1",
		Type: paymentgateway.EventCheckoutSessionCompleted,
		Session: &paymentgateway.CheckoutSession{
			ID:            "cs_boost_1",
			Mode:          paymentgateway.ModePayment,
			PaymentStatus: "paid",
			AmountTotal:   500,
			Currency:      "EUR",
			Metadata: map[string]string{
				"type":      "boost",
				"user_id":   userSID,
				"course_id": courseSID,
			},
		},
		CreatedAt: time.Now(),
	}
}

func TestWebhookHandler_InvalidSignature(t *testing.T) {
	f := newWebhookHandlerFixture(t)
	f.gateway.VerifyError = paymentgateway.ErrInvalidSignature

	w := f.deliver(t)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid webhook signature", resp.Error.Message)
	assert.False(t, f.events.WasProcessed("evt_boost_1"))
}

func TestWebhookHandler_EventProcessed(t *testing.T) {
	f := newWebhookHandlerFixture(t)
	author, boosted := f.seedBoostedCourse(t)
	f.gateway.VerifyResult = handlerBoostEvent(author.SID(), boosted.SID())

	w := f.deliver(t)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.JSONEq(t, `{"received": true}`, string(resp.Data))
	assert.True(t, f.events.WasProcessed("evt_boost_1"))
	assert.NotNil(t, boosted.BoostedUntil())
}

func TestWebhookHandler_ReplayIsAcknowledged(t *testing.T) {
	f := newWebhookHandlerFixture(t)
	author, boosted := f.seedBoostedCourse(t)
	f.gateway.VerifyResult = handlerBoostEvent(author.SID(), boosted.SID())

	assert.Equal(t, http.StatusOK, f.deliver(t).Code)
	assert.Equal(t, http.StatusOK, f.deliver(t).Code, "replay must be acknowledged")
}

func TestWebhookHandler_TransientFailureSignalsRetry(t *testing.T) {
	f := newWebhookHandlerFixture(t)
	f.gateway.VerifyResult = handlerBoostEvent("usr_x", "crs_x")
	f.events.IsProcessedError = errors.New("connection reset")

	w := f.deliver(t)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, f.events.WasProcessed("evt_boost_1"))
}
