// Package testutil provides mock implementations for testing the billing application layer.
package testutil

import (
	"context"
	"errors"
	"sync"

	"studia/internal/application/billing/paymentgateway"
	"studia/internal/domain/billing"
	"studia/internal/domain/course"
	"studia/internal/domain/entitlement"
	"studia/internal/domain/order"
	"studia/internal/domain/user"
	"studia/internal/shared/logger"
)

// MockUserRepository is a mock implementation of user.Repository for testing.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]*user.User
	bySID  map[string]*user.User
	nextID uint

	GetError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uint]*user.User),
		bySID: make(map[string]*user.User),
	}
}

// AddUser stores a user, assigning an ID when unset.
func (m *MockUserRepository) AddUser(u *user.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID() == 0 {
		m.nextID++
		_ = u.SetID(m.nextID)
	}
	m.users[u.ID()] = u
	m.bySID[u.SID()] = u
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.AddUser(u)
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *MockUserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if u, ok := m.bySID[sid]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *MockUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.GoogleID() != nil && *u.GoogleID() == googleID {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID()] = u
	m.bySID[u.SID()] = u
	return nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// MockCourseRepository is a mock implementation of course.Repository for testing.
type MockCourseRepository struct {
	mu      sync.RWMutex
	courses map[uint]*course.Course
	bySID   map[string]*course.Course
	nextID  uint

	GetError    error
	UpdateError error
}

// NewMockCourseRepository creates a new mock course repository.
func NewMockCourseRepository() *MockCourseRepository {
	return &MockCourseRepository{
		courses: make(map[uint]*course.Course),
		bySID:   make(map[string]*course.Course),
	}
}

// AddCourse stores a course, assigning an ID when unset.
func (m *MockCourseRepository) AddCourse(c *course.Course) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID() == 0 {
		m.nextID++
		_ = c.SetID(m.nextID)
	}
	m.courses[c.ID()] = c
	m.bySID[c.SID()] = c
}

func (m *MockCourseRepository) Create(ctx context.Context, c *course.Course) error {
	m.AddCourse(c)
	return nil
}

func (m *MockCourseRepository) GetByID(ctx context.Context, id uint) (*course.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, course.ErrCourseNotFound
}

func (m *MockCourseRepository) GetBySID(ctx context.Context, sid string) (*course.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if c, ok := m.bySID[sid]; ok {
		return c, nil
	}
	return nil, course.ErrCourseNotFound
}

func (m *MockCourseRepository) Update(ctx context.Context, c *course.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.courses[c.ID()] = c
	m.bySID[c.SID()] = c
	return nil
}

func (m *MockCourseRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.courses[id]; ok {
		delete(m.bySID, c.SID())
		delete(m.courses, id)
	}
	return nil
}

func (m *MockCourseRepository) Search(ctx context.Context, filter course.SearchFilter) ([]*course.Course, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*course.Course
	for _, c := range m.courses {
		if c.IsPublished() {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (m *MockCourseRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*course.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*course.Course
	for _, c := range m.courses {
		if c.AuthorID() == authorID {
			out = append(out, c)
		}
	}
	return out, nil
}

// MockOrderRepository is a mock implementation of order.Repository for testing.
type MockOrderRepository struct {
	mu        sync.RWMutex
	bySession map[string]*order.Order
	nextID    uint

	UpsertError error

	// SalesForAuthor is returned verbatim by ListSalesForAuthor. The
	// real query joins orders against the author's courses.
	SalesForAuthor []*order.Order
}

// NewMockOrderRepository creates a new mock order repository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{bySession: make(map[string]*order.Order)}
}

func (m *MockOrderRepository) UpsertByCheckoutSession(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertError != nil {
		return m.UpsertError
	}
	if existing, ok := m.bySession[o.CheckoutSessionID()]; ok {
		// Keep the stored row, matching ON CONFLICT semantics.
		_ = existing
		return nil
	}
	if o.ID() == 0 {
		m.nextID++
		_ = o.SetID(m.nextID)
	}
	m.bySession[o.CheckoutSessionID()] = o
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.bySession {
		if o.ID() == id {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (m *MockOrderRepository) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.bySession[sessionID]; ok {
		return o, nil
	}
	return nil, order.ErrOrderNotFound
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bySession[o.CheckoutSessionID()] = o
	return nil
}

func (m *MockOrderRepository) ListByBuyer(ctx context.Context, buyerID uint) ([]*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*order.Order
	for _, o := range m.bySession {
		if o.BuyerID() == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MockOrderRepository) ListSalesForAuthor(ctx context.Context, authorID uint) ([]*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.SalesForAuthor, nil
}

// Count returns the number of stored orders.
func (m *MockOrderRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bySession)
}

// MockEntitlementRepository is a mock implementation of entitlement.Repository for testing.
type MockEntitlementRepository struct {
	mu     sync.RWMutex
	byPair map[[2]uint]*entitlement.Entitlement
	nextID uint

	UpsertError error
}

// NewMockEntitlementRepository creates a new mock entitlement repository.
func NewMockEntitlementRepository() *MockEntitlementRepository {
	return &MockEntitlementRepository{byPair: make(map[[2]uint]*entitlement.Entitlement)}
}

func (m *MockEntitlementRepository) Upsert(ctx context.Context, e *entitlement.Entitlement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertError != nil {
		return m.UpsertError
	}
	key := [2]uint{e.UserID(), e.CourseID()}
	if _, ok := m.byPair[key]; ok {
		return nil
	}
	if e.ID() == 0 {
		m.nextID++
		_ = e.SetID(m.nextID)
	}
	m.byPair[key] = e
	return nil
}

func (m *MockEntitlementRepository) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*entitlement.Entitlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.byPair[[2]uint{userID, courseID}]; ok {
		return e, nil
	}
	return nil, entitlement.ErrEntitlementNotFound
}

func (m *MockEntitlementRepository) Exists(ctx context.Context, userID, courseID uint) (bool, error) {
	_, err := m.GetByUserAndCourse(ctx, userID, courseID)
	return err == nil, nil
}

func (m *MockEntitlementRepository) ListByUser(ctx context.Context, userID uint) ([]*entitlement.Entitlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*entitlement.Entitlement
	for _, e := range m.byPair {
		if e.UserID() == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockEntitlementRepository) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, e := range m.byPair {
		if e.CourseID() == courseID {
			n++
		}
	}
	return n, nil
}

// Count returns the number of stored entitlements.
func (m *MockEntitlementRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byPair)
}

// MockSubscriptionRepository is a mock implementation of billing.SubscriptionRepository for testing.
type MockSubscriptionRepository struct {
	mu     sync.RWMutex
	byUser map[uint]*billing.Subscription
	nextID uint

	UpsertError error
}

// NewMockSubscriptionRepository creates a new mock subscription repository.
func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{byUser: make(map[uint]*billing.Subscription)}
}

func (m *MockSubscriptionRepository) UpsertByUserID(ctx context.Context, s *billing.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertError != nil {
		return m.UpsertError
	}
	if s.ID() == 0 {
		m.nextID++
		_ = s.SetID(m.nextID)
	}
	m.byUser[s.UserID()] = s
	return nil
}

func (m *MockSubscriptionRepository) GetByUserID(ctx context.Context, userID uint) (*billing.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.byUser[userID]; ok {
		return s, nil
	}
	return nil, billing.ErrSubscriptionNotFound
}

func (m *MockSubscriptionRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*billing.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.byUser {
		if s.StripeCustomerID() == customerID {
			return s, nil
		}
	}
	return nil, billing.ErrSubscriptionNotFound
}

// MockPlanRepository is a mock implementation of billing.PlanRepository for testing.
type MockPlanRepository struct {
	mu    sync.RWMutex
	plans map[string]*billing.Plan
}

// NewMockPlanRepository creates a new mock plan repository.
func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{plans: make(map[string]*billing.Plan)}
}

// AddPlan stores a plan.
func (m *MockPlanRepository) AddPlan(p *billing.Plan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[p.ID()] = p
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id string) (*billing.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.plans[id]; ok {
		return p, nil
	}
	return nil, billing.ErrPlanNotFound
}

func (m *MockPlanRepository) ListActive(ctx context.Context) ([]*billing.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*billing.Plan
	for _, p := range m.plans {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockPlanRepository) Upsert(ctx context.Context, p *billing.Plan) error {
	m.AddPlan(p)
	return nil
}

// MockProcessedEventRepository is a mock implementation of billing.ProcessedEventRepository for testing.
type MockProcessedEventRepository struct {
	mu        sync.RWMutex
	processed map[string]*billing.ProcessedEvent

	IsProcessedError error
	MarkError        error
}

// NewMockProcessedEventRepository creates a new mock processed event repository.
func NewMockProcessedEventRepository() *MockProcessedEventRepository {
	return &MockProcessedEventRepository{processed: make(map[string]*billing.ProcessedEvent)}
}

func (m *MockProcessedEventRepository) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.IsProcessedError != nil {
		return false, m.IsProcessedError
	}
	_, ok := m.processed[eventID]
	return ok, nil
}

func (m *MockProcessedEventRepository) MarkProcessed(ctx context.Context, event *billing.ProcessedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MarkError != nil {
		return m.MarkError
	}
	m.processed[event.EventID()] = event
	return nil
}

// WasProcessed reports whether the event ID is in the ledger.
func (m *MockProcessedEventRepository) WasProcessed(eventID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.processed[eventID]
	return ok
}

// MockPaymentGateway is a mock implementation of paymentgateway.PaymentGateway for testing.
type MockPaymentGateway struct {
	mu sync.RWMutex

	VerifyResult  *paymentgateway.WebhookEvent
	VerifyError   error
	Subscriptions map[string]*paymentgateway.SubscriptionObject
	GetSubError   error

	SessionResult  *paymentgateway.CheckoutSessionResponse
	SessionError   error
	CustomerID     string
	CustomerError  error
	SessionCalls   []paymentgateway.CreateCheckoutSessionRequest
	CustomerCalls  []paymentgateway.CreateCustomerRequest
}

// NewMockPaymentGateway creates a new mock payment gateway.
func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{
		Subscriptions: make(map[string]*paymentgateway.SubscriptionObject),
		SessionResult: &paymentgateway.CheckoutSessionResponse{
			SessionID:   "cs_test_mock",
			CheckoutURL: "https://checkout.test/cs_test_mock",
		},
		CustomerID: "cus_test_mock",
	}
}

func (m *MockPaymentGateway) VerifyWebhook(payload []byte, signatureHeader string) (*paymentgateway.WebhookEvent, error) {
	if m.VerifyError != nil {
		return nil, m.VerifyError
	}
	return m.VerifyResult, nil
}

func (m *MockPaymentGateway) GetSubscription(ctx context.Context, subscriptionID string) (*paymentgateway.SubscriptionObject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetSubError != nil {
		return nil, m.GetSubError
	}
	if sub, ok := m.Subscriptions[subscriptionID]; ok {
		return sub, nil
	}
	return nil, errors.New("provider subscription not found: " + subscriptionID)
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, req paymentgateway.CreateCheckoutSessionRequest) (*paymentgateway.CheckoutSessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionCalls = append(m.SessionCalls, req)
	if m.SessionError != nil {
		return nil, m.SessionError
	}
	return m.SessionResult, nil
}

func (m *MockPaymentGateway) CreateCustomer(ctx context.Context, req paymentgateway.CreateCustomerRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CustomerCalls = append(m.CustomerCalls, req)
	if m.CustomerError != nil {
		return "", m.CustomerError
	}
	return m.CustomerID, nil
}

// MockLogger is a mock implementation of logger.Interface for testing.
type MockLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// LogEntry records a log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// NewMockLogger creates a new mock logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{entries: make([]LogEntry, 0)}
}

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg, args...) }
func (m *MockLogger) Info(msg string, args ...any)  { m.log("INFO", msg, args...) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.log("WARN", msg, args...) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg, args...) }
func (m *MockLogger) Fatal(msg string, args ...any) { m.log("FATAL", msg, args...) }

func (m *MockLogger) With(args ...any) logger.Interface       { return m }
func (m *MockLogger) Named(name string) logger.Interface      { return m }
func (m *MockLogger) Debugw(msg string, kv ...interface{})    { m.log("DEBUG", msg, kv...) }
func (m *MockLogger) Infow(msg string, kv ...interface{})     { m.log("INFO", msg, kv...) }
func (m *MockLogger) Warnw(msg string, kv ...interface{})     { m.log("WARN", msg, kv...) }
func (m *MockLogger) Errorw(msg string, kv ...interface{})    { m.log("ERROR", msg, kv...) }
func (m *MockLogger) Fatalw(msg string, kv ...interface{})    { m.log("FATAL", msg, kv...) }

func (m *MockLogger) log(level, msg string, fields ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := LogEntry{Level: level, Message: msg, Fields: make(map[string]interface{})}
	for i := 0; i < len(fields)-1; i += 2 {
		if key, ok := fields[i].(string); ok {
			entry.Fields[key] = fields[i+1]
		}
	}
	m.entries = append(m.entries, entry)
}

// GetEntries returns all logged entries.
func (m *MockLogger) GetEntries() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]LogEntry(nil), m.entries...)
}
