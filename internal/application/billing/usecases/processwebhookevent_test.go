package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studia/internal/application/billing/paymentgateway"
	"studia/internal/application/billing/testutil"
	"studia/internal/domain/billing"
	"studia/internal/domain/course"
	"studia/internal/domain/user"
	vo "studia/internal/domain/user/value_objects"
)

type webhookFixture struct {
	gateway      *testutil.MockPaymentGateway
	events       *testutil.MockProcessedEventRepository
	users        *testutil.MockUserRepository
	courses      *testutil.MockCourseRepository
	orders       *testutil.MockOrderRepository
	entitlements *testutil.MockEntitlementRepository
	subs         *testutil.MockSubscriptionRepository
	plans        *testutil.MockPlanRepository
	grant        *GrantCoursePurchaseUseCase
	uc           *ProcessWebhookEventUseCase
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	f := &webhookFixture{
		gateway:      testutil.NewMockPaymentGateway(),
		events:       testutil.NewMockProcessedEventRepository(),
		users:        testutil.NewMockUserRepository(),
		courses:      testutil.NewMockCourseRepository(),
		orders:       testutil.NewMockOrderRepository(),
		entitlements: testutil.NewMockEntitlementRepository(),
		subs:         testutil.NewMockSubscriptionRepository(),
		plans:        testutil.NewMockPlanRepository(),
	}
	log := testutil.NewMockLogger()

	boostUC := NewActivateCourseBoostUseCase(f.courses, f.users, 7*24*time.Hour, log)
	f.grant = NewGrantCoursePurchaseUseCase(f.orders, f.entitlements, f.courses, f.users, log)
	syncUC := NewSyncSubscriptionUseCase(f.subs, f.plans, f.users, f.gateway, log)
	f.uc = NewProcessWebhookEventUseCase(f.gateway, f.events, boostUC, f.grant, syncUC, log)

	creator, err := billing.NewPlan(billing.PlanCreator, "Creator", "", 900, "EUR", "price_creator", 10, true)
	require.NoError(t, err)
	f.plans.AddPlan(creator)

	return f
}

func (f *webhookFixture) addUser(t *testing.T, email, name string) *user.User {
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

func (f *webhookFixture) addCourse(t *testing.T, authorID uint) *course.Course {
	t.Helper()
	c, err := course.NewCourse(authorID, "Sourdough Basics", "desc", 1999, "EUR", "v", "p")
	require.NoError(t, err)
	require.NoError(t, c.Publish())
	f.courses.AddCourse(c)
	return c
}

func (f *webhookFixture) execute(t *testing.T) error {
	t.Helper()
	return f.uc.Execute(context.Background(), ProcessWebhookEventCommand{
		Payload:         []byte(`{}`),
		SignatureHeader: "t=1,v1=sig",
	})
}

func boostEvent(userSID, courseSID string) *paymentgateway.WebhookEvent {
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

func purchaseEvent(userSID, courseSID string) *paymentgateway.WebhookEvent {
	return &paymentgateway.WebhookEvent{
		ID:   "evt_purchase_1",
		Type: paymentgateway.EventCheckoutSessionCompleted,
		Session: &paymentgateway.CheckoutSession{
			ID:            "cs_purchase_1",
			Mode:          paymentgateway.ModePayment,
			PaymentStatus: "paid",
			AmountTotal:   1999,
			Currency:      "EUR",
			Metadata: map[string]string{
				"type":      "purchase",
				"user_id":   userSID,
				"course_id": courseSID,
			},
		},
		CreatedAt: time.Now(),
	}
}

func TestProcessWebhook_InvalidSignature(t *testing.T) {
	f := newWebhookFixture(t)
	f.gateway.VerifyError = paymentgateway.ErrInvalidSignature

	err := f.execute(t)

	assert.ErrorIs(t, err, paymentgateway.ErrInvalidSignature)
	assert.False(t, f.events.WasProcessed("evt_boost_1"), "rejected deliveries never reach the ledger")
}

func TestProcessWebhook_ReplayedEventIsAcknowledged(t *testing.T) {
	f := newWebhookFixture(t)
	author := f.addUser(t, "author@example.com", "Author Person")
	boosted := f.addCourse(t, author.ID())
	f.gateway.VerifyResult = boostEvent(author.SID(), boosted.SID())

	require.NoError(t, f.execute(t))
	firstExpiry := *boosted.BoostedUntil()

	require.NoError(t, f.execute(t), "replay must be acknowledged")
	assert.Equal(t, firstExpiry, *boosted.BoostedUntil(), "replay must not extend the boost again")
}

func TestProcessWebhook_BoostHappyPath(t *testing.T) {
	f := newWebhookFixture(t)
	author := f.addUser(t, "author@example.com", "Author Person")
	boosted := f.addCourse(t, author.ID())
	f.gateway.VerifyResult = boostEvent(author.SID(), boosted.SID())

	require.NoError(t, f.execute(t))

	require.NotNil(t, boosted.BoostedUntil())
	assert.True(t, boosted.IsBoostedAt(time.Now()))
	assert.True(t, f.events.WasProcessed("evt_boost_1"))
}

func TestProcessWebhook_BoostByNonOwnerIsSettled(t *testing.T) {
	f := newWebhookFixture(t)
	author := f.addUser(t, "author@example.com", "Author Person")
	stranger := f.addUser(t, "stranger@example.com", "Stranger Person")
	boosted := f.addCourse(t, author.ID())
	f.gateway.VerifyResult = boostEvent(stranger.SID(), boosted.SID())

	err := f.execute(t)

	require.NoError(t, err, "authorization failures are settled, not retried")
	assert.Nil(t, boosted.BoostedUntil(), "no boost may be applied")
	assert.True(t, f.events.WasProcessed("evt_boost_1"), "event must be recorded so the provider stops retrying")
}

func TestProcessWebhook_MissingMetadataIsSettled(t *testing.T) {
	f := newWebhookFixture(t)
	event := boostEvent("", "")
	event.Session.Metadata = map[string]string{"type": "boost"}
	f.gateway.VerifyResult = event

	require.NoError(t, f.execute(t))
	assert.True(t, f.events.WasProcessed("evt_boost_1"))
}

func TestProcessWebhook_UnpaidSessionIsSettled(t *testing.T) {
	f := newWebhookFixture(t)
	buyer := f.addUser(t, "buyer@example.com", "Buyer Person")
	author := f.addUser(t, "author@example.com", "Author Person")
	bought := f.addCourse(t, author.ID())
	event := purchaseEvent(buyer.SID(), bought.SID())
	event.Session.PaymentStatus = "unpaid"
	f.gateway.VerifyResult = event

	require.NoError(t, f.execute(t))

	assert.Equal(t, 0, f.orders.Count(), "unpaid sessions write nothing")
	assert.True(t, f.events.WasProcessed("evt_purchase_1"))
}

func TestProcessWebhook_PurchaseHappyPath(t *testing.T) {
	f := newWebhookFixture(t)
	buyer := f.addUser(t, "buyer@example.com", "Buyer Person")
	author := f.addUser(t, "author@example.com", "Author Person")
	bought := f.addCourse(t, author.ID())
	f.gateway.VerifyResult = purchaseEvent(buyer.SID(), bought.SID())

	require.NoError(t, f.execute(t))

	stored, err := f.orders.GetByCheckoutSessionID(context.Background(), "cs_purchase_1")
	require.NoError(t, err)
	assert.Equal(t, buyer.ID(), stored.BuyerID())
	assert.Equal(t, int64(1999), stored.AmountCents())

	owned, err := f.entitlements.Exists(context.Background(), buyer.ID(), bought.ID())
	require.NoError(t, err)
	assert.True(t, owned)
	assert.True(t, f.events.WasProcessed("evt_purchase_1"))
}

type capturingReceiptNotifier struct {
	received chan ReceiptCommand
}

func (n *capturingReceiptNotifier) SendPurchaseReceipt(_ context.Context, cmd ReceiptCommand) error {
	n.received <- cmd
	return nil
}

type capturingSaleNotifier struct {
	received chan SaleNotificationCommand
}

func (n *capturingSaleNotifier) SendSaleNotification(_ context.Context, cmd SaleNotificationCommand) error {
	n.received <- cmd
	return nil
}

func TestProcessWebhook_PurchaseNotifiesBuyerAndSeller(t *testing.T) {
	f := newWebhookFixture(t)
	buyer := f.addUser(t, "buyer@example.com", "Buyer Person")
	author := f.addUser(t, "author@example.com", "Author Person")
	bought := f.addCourse(t, author.ID())
	f.gateway.VerifyResult = purchaseEvent(buyer.SID(), bought.SID())

	receipts := &capturingReceiptNotifier{received: make(chan ReceiptCommand, 1)}
	sales := &capturingSaleNotifier{received: make(chan SaleNotificationCommand, 1)}
	f.grant.SetReceiptNotifier(receipts)
	f.grant.SetSaleNotifier(sales)

	require.NoError(t, f.execute(t))

	select {
	case receipt := <-receipts.received:
		assert.Equal(t, "buyer@example.com", receipt.BuyerEmail)
		assert.Equal(t, "Buyer Person", receipt.BuyerName)
		assert.Equal(t, "Sourdough Basics", receipt.CourseTitle)
		assert.Equal(t, int64(1999), receipt.AmountCents)
	case <-time.After(2 * time.Second):
		t.Fatal("purchase receipt was never sent")
	}

	select {
	case sale := <-sales.received:
		assert.Equal(t, "author@example.com", sale.SellerEmail)
		assert.Equal(t, "Author Person", sale.SellerName)
		assert.Equal(t, "Sourdough Basics", sale.CourseTitle)
	case <-time.After(2 * time.Second):
		t.Fatal("sale notification was never sent")
	}
}

func TestProcessWebhook_PurchaseReplayKeepsSingleRow(t *testing.T) {
	f := newWebhookFixture(t)
	buyer := f.addUser(t, "buyer@example.com", "Buyer Person")
	author := f.addUser(t, "author@example.com", "Author Person")
	bought := f.addCourse(t, author.ID())
	f.gateway.VerifyResult = purchaseEvent(buyer.SID(), bought.SID())

	require.NoError(t, f.execute(t))
	require.NoError(t, f.execute(t))

	assert.Equal(t, 1, f.orders.Count())
	assert.Equal(t, 1, f.entitlements.Count())
}

func TestProcessWebhook_StoreFailureIsRetried(t *testing.T) {
	f := newWebhookFixture(t)
	buyer := f.addUser(t, "buyer@example.com", "Buyer Person")
	author := f.addUser(t, "author@example.com", "Author Person")
	bought := f.addCourse(t, author.ID())
	f.gateway.VerifyResult = purchaseEvent(buyer.SID(), bought.SID())
	f.orders.UpsertError = errors.New("connection reset")

	err := f.execute(t)

	require.Error(t, err, "transient store failures must surface so the provider retries")
	assert.False(t, f.events.WasProcessed("evt_purchase_1"), "failed events must stay out of the ledger")
}

func TestProcessWebhook_LedgerWriteFailureIsRetried(t *testing.T) {
	f := newWebhookFixture(t)
	author := f.addUser(t, "author@example.com", "Author Person")
	boosted := f.addCourse(t, author.ID())
	f.gateway.VerifyResult = boostEvent(author.SID(), boosted.SID())
	f.events.MarkError = errors.New("connection reset")

	assert.Error(t, f.execute(t))
}

func TestProcessWebhook_LedgerReadFailureIsRetried(t *testing.T) {
	f := newWebhookFixture(t)
	f.gateway.VerifyResult = boostEvent("usr_x", "crs_x")
	f.events.IsProcessedError = errors.New("connection reset")

	assert.Error(t, f.execute(t))
}

func TestProcessWebhook_UnknownEventTypeIsSettled(t *testing.T) {
	f := newWebhookFixture(t)
	f.gateway.VerifyResult = &paymentgateway.WebhookEvent{
		ID:   "evt_other_1",
		Type: "invoice.paid",
	}

	require.NoError(t, f.execute(t))
	assert.True(t, f.events.WasProcessed("evt_other_1"))
}

func TestProcessWebhook_UnknownCheckoutTypeIsSettled(t *testing.T) {
	f := newWebhookFixture(t)
	event := boostEvent("usr_x", "crs_x")
	event.Session.Metadata["type"] = "tip"
	f.gateway.VerifyResult = event

	require.NoError(t, f.execute(t))
	assert.True(t, f.events.WasProcessed("evt_boost_1"))
}

func TestProcessWebhook_SubscriptionCreated(t *testing.T) {
	f := newWebhookFixture(t)
	subscriber := f.addUser(t, "sub@example.com", "Subscriber Person")
	periodEnd := time.Now().AddDate(0, 1, 0)
	f.gateway.VerifyResult = &paymentgateway.WebhookEvent{
		ID:   "evt_sub_1",
		Type: paymentgateway.EventSubscriptionCreated,
		Subscription: &paymentgateway.SubscriptionObject{
			ID:               "sub_stripe_1",
			CustomerID:       "cus_1",
			Status:           "active",
			CurrentPeriodEnd: &periodEnd,
			Metadata: map[string]string{
				"user_id": subscriber.SID(),
				"plan_id": billing.PlanCreator,
			},
		},
	}

	require.NoError(t, f.execute(t))

	row, err := f.subs.GetByUserID(context.Background(), subscriber.ID())
	require.NoError(t, err)
	assert.Equal(t, billing.PlanCreator, row.PlanID())
	assert.Equal(t, billing.StatusActive, row.Status())
	assert.Equal(t, billing.PlanCreator, row.EffectivePlan())
	assert.True(t, f.events.WasProcessed("evt_sub_1"))
}

func TestProcessWebhook_SubscriptionDeletedRevertsToFree(t *testing.T) {
	f := newWebhookFixture(t)
	subscriber := f.addUser(t, "sub@example.com", "Subscriber Person")
	placeholder, err := billing.NewPlaceholderSubscription(subscriber.ID(), "cus_1")
	require.NoError(t, err)
	require.NoError(t, placeholder.SyncFromProvider(billing.PlanCreator, billing.StatusActive, "sub_stripe_1", nil, false))
	require.NoError(t, f.subs.UpsertByUserID(context.Background(), placeholder))

	f.gateway.VerifyResult = &paymentgateway.WebhookEvent{
		ID:   "evt_sub_del_1",
		Type: paymentgateway.EventSubscriptionDeleted,
		Subscription: &paymentgateway.SubscriptionObject{
			ID:         "sub_stripe_1",
			CustomerID: "cus_1",
			Status:     "canceled",
			Metadata: map[string]string{
				"user_id": subscriber.SID(),
			},
		},
	}

	require.NoError(t, f.execute(t))

	row, err := f.subs.GetByUserID(context.Background(), subscriber.ID())
	require.NoError(t, err)
	assert.Equal(t, billing.PlanFree, row.PlanID())
	assert.Equal(t, billing.StatusCanceled, row.Status())
	assert.Equal(t, "cus_1", row.StripeCustomerID(), "row survives deletion")
}

func TestProcessWebhook_SubscriptionCheckoutFetchesProviderState(t *testing.T) {
	f := newWebhookFixture(t)
	subscriber := f.addUser(t, "sub@example.com", "Subscriber Person")
	f.gateway.Subscriptions["sub_stripe_2"] = &paymentgateway.SubscriptionObject{
		ID:         "sub_stripe_2",
		CustomerID: "cus_2",
		Status:     "trialing",
		Metadata: map[string]string{
			"user_id": subscriber.SID(),
			"plan_id": billing.PlanCreator,
		},
	}
	f.gateway.VerifyResult = &paymentgateway.WebhookEvent{
		ID:   "evt_sub_co_1",
		Type: paymentgateway.EventCheckoutSessionCompleted,
		Session: &paymentgateway.CheckoutSession{
			ID:             "cs_sub_1",
			Mode:           paymentgateway.ModeSubscription,
			PaymentStatus:  "paid",
			SubscriptionID: "sub_stripe_2",
		},
	}

	require.NoError(t, f.execute(t))

	row, err := f.subs.GetByUserID(context.Background(), subscriber.ID())
	require.NoError(t, err)
	assert.Equal(t, billing.StatusTrialing, row.Status())
	assert.Equal(t, billing.PlanCreator, row.EffectivePlan())
}

func TestProcessWebhook_SubscriptionWithoutCustomerIsSettled(t *testing.T) {
	f := newWebhookFixture(t)
	subscriber := f.addUser(t, "sub@example.com", "Subscriber Person")
	f.gateway.VerifyResult = &paymentgateway.WebhookEvent{
		ID:   "evt_sub_nocus_1",
		Type: paymentgateway.EventSubscriptionUpdated,
		Subscription: &paymentgateway.SubscriptionObject{
			ID:         "sub_stripe_3",
			CustomerID: "",
			Status:     "active",
			Metadata: map[string]string{
				"user_id": subscriber.SID(),
				"plan_id": billing.PlanCreator,
			},
		},
	}

	require.NoError(t, f.execute(t), "a payload that can never produce a row must not be redelivered forever")
	assert.True(t, f.events.WasProcessed("evt_sub_nocus_1"))

	_, err := f.subs.GetByUserID(context.Background(), subscriber.ID())
	assert.ErrorIs(t, err, billing.ErrSubscriptionNotFound)
}

func TestProcessWebhook_UnknownUserIsSettled(t *testing.T) {
	f := newWebhookFixture(t)
	f.gateway.VerifyResult = boostEvent("usr_ghost123456", "crs_ghost123456")

	require.NoError(t, f.execute(t))
	assert.True(t, f.events.WasProcessed("evt_boost_1"))
}
