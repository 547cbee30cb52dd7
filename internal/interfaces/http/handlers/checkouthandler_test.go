package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingTestutil "studia/internal/application/billing/testutil"
	billingUsecases "studia/internal/application/billing/usecases"
	"studia/internal/domain/course"
	"studia/internal/domain/user"
	vo "studia/internal/domain/user/value_objects"
	"studia/internal/interfaces/http/handlers/testutil"
)

type checkoutHandlerFixture struct {
	users        *billingTestutil.MockUserRepository
	courses      *billingTestutil.MockCourseRepository
	entitlements *billingTestutil.MockEntitlementRepository
	gateway      *billingTestutil.MockPaymentGateway
	handler      *CheckoutHandler
}

func newCheckoutHandlerFixture(t *testing.T) *checkoutHandlerFixture {
	t.Helper()
	f := &checkoutHandlerFixture{
		users:        billingTestutil.NewMockUserRepository(),
		courses:      billingTestutil.NewMockCourseRepository(),
		entitlements: billingTestutil.NewMockEntitlementRepository(),
		gateway:      billingTestutil.NewMockPaymentGateway(),
	}
	subs := billingTestutil.NewMockSubscriptionRepository()
	plans := billingTestutil.NewMockPlanRepository()
	log := testutil.NewMockLogger()
	urls := billingUsecases.CheckoutURLs{
		SuccessURL: "https://studia.test/checkout/success",
		CancelURL:  "https://studia.test/checkout/cancel",
	}

	purchaseUC := billingUsecases.NewCreatePurchaseCheckoutUseCase(f.courses, f.users, f.entitlements, f.gateway, urls, log)
	boostUC := billingUsecases.NewCreateBoostCheckoutUseCase(f.courses, f.users, f.gateway, "price_boost", urls, log)
	subscriptionUC := billingUsecases.NewCreateSubscriptionCheckoutUseCase(subs, plans, f.users, f.gateway, urls, log)
	f.handler = NewCheckoutHandler(purchaseUC, boostUC, subscriptionUC, log)
	return f
}

func (f *checkoutHandlerFixture) addUser(t *testing.T, email, name string) *user.User {
	t.Helper()
	e, err := vo.NewEmail(email)
	require.NoError(t, err)
	n, err := vo.NewName(name)
	require.NoError(t, err)
	u, err := user.NewUser(e, n, "$2a$12$hash")
	require.NoError(t, err)
	f.users.AddUser(u)
	return u
}

func (f *checkoutHandlerFixture) addPublishedCourse(t *testing.T, authorID uint) *course.Course {
	t.Helper()
	c, err := course.NewCourse(authorID, "Sourdough Basics", "desc", 1999, "EUR", "v", "p")
	require.NoError(t, err)
	require.NoError(t, c.Publish())
	f.courses.AddCourse(c)
	return c
}

func TestCheckoutHandler_CreatePurchase_RequiresAuth(t *testing.T) {
	f := newCheckoutHandlerFixture(t)
	c, w := testutil.NewTestContext(http.MethodPost, "/checkout/purchase", gin.H{"course_id": "crs_abc123"})

	f.handler.CreatePurchase(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, f.gateway.SessionCalls)
}

func TestCheckoutHandler_CreatePurchase_RejectsMalformedCourseID(t *testing.T) {
	f := newCheckoutHandlerFixture(t)
	buyer := f.addUser(t, "buyer@example.com", "Buyer Person")

	c, w := testutil.NewTestContext(http.MethodPost, "/checkout/purchase", gin.H{"course_id": "usr_abc123"})
	testutil.SetAuthContext(c, buyer.ID())

	f.handler.CreatePurchase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid course ID format", resp.Error.Message)
}

func TestCheckoutHandler_CreatePurchase_StartsSession(t *testing.T) {
	f := newCheckoutHandlerFixture(t)
	buyer := f.addUser(t, "buyer@example.com", "Buyer Person")
	author := f.addUser(t, "author@example.com", "Author Person")
	target := f.addPublishedCourse(t, author.ID())

	c, w := testutil.NewTestContext(http.MethodPost, "/checkout/purchase", gin.H{"course_id": target.SID()})
	testutil.SetAuthContext(c, buyer.ID())

	f.handler.CreatePurchase(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.True(t, resp.Success)

	var session CheckoutResponse
	require.NoError(t, json.Unmarshal(resp.Data, &session))
	assert.Equal(t, "cs_test_mock", session.SessionID)
	assert.NotEmpty(t, session.CheckoutURL)
	assert.Len(t, f.gateway.SessionCalls, 1)
}

func TestCheckoutHandler_CreatePurchase_OwnCourseIsConflict(t *testing.T) {
	f := newCheckoutHandlerFixture(t)
	author := f.addUser(t, "author@example.com", "Author Person")
	target := f.addPublishedCourse(t, author.ID())

	c, w := testutil.NewTestContext(http.MethodPost, "/checkout/purchase", gin.H{"course_id": target.SID()})
	testutil.SetAuthContext(c, author.ID())

	f.handler.CreatePurchase(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, f.gateway.SessionCalls)
}

func TestCheckoutHandler_CreateBoost_OnlyForOwnCourse(t *testing.T) {
	f := newCheckoutHandlerFixture(t)
	stranger := f.addUser(t, "stranger@example.com", "Stranger Person")
	author := f.addUser(t, "author@example.com", "Author Person")
	target := f.addPublishedCourse(t, author.ID())

	c, w := testutil.NewTestContext(http.MethodPost, "/checkout/boost", gin.H{"course_id": target.SID()})
	testutil.SetAuthContext(c, stranger.ID())

	f.handler.CreateBoost(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, f.gateway.SessionCalls)
}
