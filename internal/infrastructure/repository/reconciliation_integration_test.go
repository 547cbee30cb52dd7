package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studia/internal/domain/billing"
	"studia/internal/domain/entitlement"
	"studia/internal/domain/order"
	"studia/internal/infrastructure/persistence/models"
	"studia/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.CourseModel{},
		&models.OrderModel{},
		&models.EntitlementModel{},
		&models.ProcessedStripeEventModel{},
	)
	require.NoError(t, err)

	return db
}

func TestOrderRepository_UpsertByCheckoutSession(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("insert assigns an ID", func(t *testing.T) {
		o, err := order.NewPaidOrder(1, 2, "cs_upsert_1", 1999, "EUR", time.Now())
		require.NoError(t, err)

		require.NoError(t, repo.UpsertByCheckoutSession(ctx, o))
		assert.NotZero(t, o.ID())
	})

	t.Run("replay keeps the first row", func(t *testing.T) {
		first, err := order.NewPaidOrder(1, 2, "cs_upsert_2", 1999, "EUR", time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.UpsertByCheckoutSession(ctx, first))

		replay, err := order.NewPaidOrder(1, 2, "cs_upsert_2", 5000, "EUR", time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.UpsertByCheckoutSession(ctx, replay))

		stored, err := repo.GetByCheckoutSessionID(ctx, "cs_upsert_2")
		require.NoError(t, err)
		assert.Equal(t, first.SID(), stored.SID())
		assert.Equal(t, int64(1999), stored.AmountCents(), "replayed event must not rewrite the amount")

		var count int64
		require.NoError(t, db.Model(&models.OrderModel{}).Where("checkout_session_id = ?", "cs_upsert_2").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("missing session returns not found", func(t *testing.T) {
		_, err := repo.GetByCheckoutSessionID(ctx, "cs_missing")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestEntitlementRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEntitlementRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("pair is unique across replays", func(t *testing.T) {
		first, err := entitlement.NewEntitlement(10, 20, 1, time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, first))

		replay, err := entitlement.NewEntitlement(10, 20, 2, time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, replay))

		var count int64
		require.NoError(t, db.Model(&models.EntitlementModel{}).Where("user_id = ? AND course_id = ?", 10, 20).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		owned, err := repo.Exists(ctx, 10, 20)
		require.NoError(t, err)
		assert.True(t, owned)
	})

	t.Run("exists is false for unknown pair", func(t *testing.T) {
		owned, err := repo.Exists(ctx, 10, 999)
		require.NoError(t, err)
		assert.False(t, owned)
	})
}

func TestProcessedEventRepository_Ledger(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProcessedEventRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("mark then check", func(t *testing.T) {
		processed, err := repo.IsProcessed(ctx, "evt_ledger_1")
		require.NoError(t, err)
		assert.False(t, processed)

		entry, err := billing.NewProcessedEvent("evt_ledger_1", "checkout.session.completed", []byte(`{"id":"evt_ledger_1"}`))
		require.NoError(t, err)
		require.NoError(t, repo.MarkProcessed(ctx, entry))

		processed, err = repo.IsProcessed(ctx, "evt_ledger_1")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("concurrent deliveries collapse on event_id", func(t *testing.T) {
		entry, err := billing.NewProcessedEvent("evt_ledger_2", "customer.subscription.updated", nil)
		require.NoError(t, err)
		require.NoError(t, repo.MarkProcessed(ctx, entry))

		duplicate, err := billing.NewProcessedEvent("evt_ledger_2", "customer.subscription.updated", nil)
		require.NoError(t, err)
		require.NoError(t, repo.MarkProcessed(ctx, duplicate))

		var count int64
		require.NoError(t, db.Model(&models.ProcessedStripeEventModel{}).Where("event_id = ?", "evt_ledger_2").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}
