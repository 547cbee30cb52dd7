package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studia/internal/application/billing/testutil"
	"studia/internal/domain/course"
	"studia/internal/domain/entitlement"
	"studia/internal/domain/order"
)

func seedCourse(t *testing.T, courses *testutil.MockCourseRepository, authorID uint, title string) *course.Course {
	t.Helper()
	c, err := course.NewCourse(authorID, title, "desc", 1999, "EUR", "v", "p")
	require.NoError(t, err)
	require.NoError(t, c.Publish())
	courses.AddCourse(c)
	return c
}

func grant(t *testing.T, entitlements *testutil.MockEntitlementRepository, userID, courseID uint, at time.Time) {
	t.Helper()
	e, err := entitlement.NewEntitlement(userID, courseID, 1, at)
	require.NoError(t, err)
	require.NoError(t, entitlements.Upsert(context.Background(), e))
}

func TestListLibrary_ReturnsGrantedCourses(t *testing.T) {
	entitlements := testutil.NewMockEntitlementRepository()
	courses := testutil.NewMockCourseRepository()
	uc := NewListLibraryUseCase(entitlements, courses, testutil.NewMockLogger())

	bought := seedCourse(t, courses, 7, "Sourdough Basics")
	grantedAt := time.Now().Add(-time.Hour)
	grant(t, entitlements, 42, bought.ID(), grantedAt)

	items, err := uc.Execute(context.Background(), ListLibraryCommand{UserID: 42})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, bought.SID(), items[0].Course.SID)
	assert.WithinDuration(t, grantedAt, items[0].GrantedAt, time.Second)
}

func TestListLibrary_KeepsUnpublishedCourses(t *testing.T) {
	entitlements := testutil.NewMockEntitlementRepository()
	courses := testutil.NewMockCourseRepository()
	uc := NewListLibraryUseCase(entitlements, courses, testutil.NewMockLogger())

	bought := seedCourse(t, courses, 7, "Sourdough Basics")
	grant(t, entitlements, 42, bought.ID(), time.Now())
	bought.Unpublish()

	items, err := uc.Execute(context.Background(), ListLibraryCommand{UserID: 42})

	require.NoError(t, err)
	require.Len(t, items, 1, "entitled courses stay accessible after unpublish")
}

func TestListLibrary_SkipsDeletedCourses(t *testing.T) {
	entitlements := testutil.NewMockEntitlementRepository()
	courses := testutil.NewMockCourseRepository()
	uc := NewListLibraryUseCase(entitlements, courses, testutil.NewMockLogger())

	kept := seedCourse(t, courses, 7, "Sourdough Basics")
	grant(t, entitlements, 42, kept.ID(), time.Now())
	grant(t, entitlements, 42, 999, time.Now())

	items, err := uc.Execute(context.Background(), ListLibraryCommand{UserID: 42})

	require.NoError(t, err)
	require.Len(t, items, 1, "grants pointing at removed courses are skipped")
	assert.Equal(t, kept.SID(), items[0].Course.SID)
}

func TestListLibrary_EmptyForNewUser(t *testing.T) {
	uc := NewListLibraryUseCase(testutil.NewMockEntitlementRepository(), testutil.NewMockCourseRepository(), testutil.NewMockLogger())

	items, err := uc.Execute(context.Background(), ListLibraryCommand{UserID: 42})

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListSales_SumsPaidOrders(t *testing.T) {
	orders := testutil.NewMockOrderRepository()
	courses := testutil.NewMockCourseRepository()
	uc := NewListSalesUseCase(orders, courses, testutil.NewMockLogger())

	sold := seedCourse(t, courses, 7, "Sourdough Basics")
	for i, session := range []string{"cs_1", "cs_2"} {
		o, err := order.NewPaidOrder(uint(100+i), sold.ID(), session, 1999, "EUR", time.Now())
		require.NoError(t, err)
		orders.SalesForAuthor = append(orders.SalesForAuthor, o)
	}

	result, err := uc.Execute(context.Background(), ListSalesCommand{UserID: 7})

	require.NoError(t, err)
	require.Len(t, result.Sales, 2)
	assert.Equal(t, int64(3998), result.TotalCents)
	assert.Equal(t, sold.SID(), result.Sales[0].CourseSID)
	assert.Equal(t, "Sourdough Basics", result.Sales[0].CourseTitle)
	assert.Equal(t, "19,99 €", result.Sales[0].AmountFormatted)
}

func TestListSales_ToleratesMissingCourse(t *testing.T) {
	orders := testutil.NewMockOrderRepository()
	courses := testutil.NewMockCourseRepository()
	uc := NewListSalesUseCase(orders, courses, testutil.NewMockLogger())

	o, err := order.NewPaidOrder(100, 999, "cs_1", 1999, "EUR", time.Now())
	require.NoError(t, err)
	orders.SalesForAuthor = append(orders.SalesForAuthor, o)

	result, err := uc.Execute(context.Background(), ListSalesCommand{UserID: 7})

	require.NoError(t, err)
	require.Len(t, result.Sales, 1)
	assert.Empty(t, result.Sales[0].CourseTitle, "sale row survives with blank course info")
	assert.Equal(t, int64(1999), result.TotalCents)
}
