package usecases

import (
	"context"
	"fmt"
	"time"

	"studia/internal/domain/course"
	"studia/internal/domain/entitlement"
	"studia/internal/domain/order"
	"studia/internal/domain/user"
	"studia/internal/shared/goroutine"
	"studia/internal/shared/logger"
)

// ReceiptNotifier sends a purchase receipt to the buyer.
type ReceiptNotifier interface {
	SendPurchaseReceipt(ctx context.Context, cmd ReceiptCommand) error
}

// SaleNotifier tells the author one of their courses sold.
type SaleNotifier interface {
	SendSaleNotification(ctx context.Context, cmd SaleNotificationCommand) error
}

// TransactionRunner executes a function within a storage transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReceiptCommand contains the data for a purchase receipt email.
type ReceiptCommand struct {
	BuyerEmail  string
	BuyerName   string
	CourseTitle string
	AmountCents int64
	Currency    string
	OrderSID    string
	PaidAt      time.Time
}

// SaleNotificationCommand contains the data for a sale notification email.
type SaleNotificationCommand struct {
	SellerEmail string
	SellerName  string
	CourseTitle string
	AmountCents int64
	Currency    string
	OrderSID    string
	PaidAt      time.Time
}

// GrantCoursePurchaseCommand identifies the settled checkout to
// reconcile into an order and an entitlement.
type GrantCoursePurchaseCommand struct {
	CheckoutSessionID string
	UserSID           string
	CourseSID         string
	AmountCents       int64
	Currency          string
	PaidAt            time.Time
}

// GrantCoursePurchaseUseCase records a paid course checkout. The order
// is keyed by checkout session and the entitlement by (user, course),
// so replaying the same event writes nothing new.
type GrantCoursePurchaseUseCase struct {
	orderRepo       order.Repository
	entitlementRepo entitlement.Repository
	courseRepo      course.Repository
	userRepo        user.Repository
	receiptNotifier ReceiptNotifier   // Optional
	saleNotifier    SaleNotifier      // Optional
	txRunner        TransactionRunner // Optional
	logger          logger.Interface
}

// NewGrantCoursePurchaseUseCase creates the use case.
func NewGrantCoursePurchaseUseCase(
	orderRepo order.Repository,
	entitlementRepo entitlement.Repository,
	courseRepo course.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *GrantCoursePurchaseUseCase {
	return &GrantCoursePurchaseUseCase{
		orderRepo:       orderRepo,
		entitlementRepo: entitlementRepo,
		courseRepo:      courseRepo,
		userRepo:        userRepo,
		logger:          logger,
	}
}

// SetReceiptNotifier sets the receipt notifier (optional dependency injection)
func (uc *GrantCoursePurchaseUseCase) SetReceiptNotifier(notifier ReceiptNotifier) {
	uc.receiptNotifier = notifier
}

// SetSaleNotifier sets the sale notifier (optional dependency injection)
func (uc *GrantCoursePurchaseUseCase) SetSaleNotifier(notifier SaleNotifier) {
	uc.saleNotifier = notifier
}

// SetTransactionRunner makes the order and entitlement writes commit
// atomically (optional dependency injection)
func (uc *GrantCoursePurchaseUseCase) SetTransactionRunner(runner TransactionRunner) {
	uc.txRunner = runner
}

// Execute writes the order and grants the entitlement.
func (uc *GrantCoursePurchaseUseCase) Execute(ctx context.Context, cmd GrantCoursePurchaseCommand) error {
	buyer, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return fmt.Errorf("failed to load buyer: %w", err)
	}

	bought, err := uc.courseRepo.GetBySID(ctx, cmd.CourseSID)
	if err != nil {
		return fmt.Errorf("failed to load purchased course: %w", err)
	}

	paidOrder, err := order.NewPaidOrder(buyer.ID(), bought.ID(), cmd.CheckoutSessionID, cmd.AmountCents, cmd.Currency, cmd.PaidAt)
	if err != nil {
		return err
	}

	var stored *order.Order
	writes := func(ctx context.Context) error {
		if err := uc.orderRepo.UpsertByCheckoutSession(ctx, paidOrder); err != nil {
			return fmt.Errorf("failed to record order: %w", err)
		}

		// Re-read to pick up the row ID on both insert and replay paths.
		stored, err = uc.orderRepo.GetByCheckoutSessionID(ctx, cmd.CheckoutSessionID)
		if err != nil {
			return fmt.Errorf("failed to reload order: %w", err)
		}

		grant, err := entitlement.NewEntitlement(buyer.ID(), bought.ID(), stored.ID(), cmd.PaidAt)
		if err != nil {
			return err
		}

		if err := uc.entitlementRepo.Upsert(ctx, grant); err != nil {
			return fmt.Errorf("failed to grant entitlement: %w", err)
		}
		return nil
	}

	if uc.txRunner != nil {
		err = uc.txRunner.RunInTransaction(ctx, writes)
	} else {
		err = writes(ctx)
	}
	if err != nil {
		return err
	}

	uc.logger.Infow("course purchase granted",
		"order_sid", stored.SID(),
		"user_sid", cmd.UserSID,
		"course_sid", cmd.CourseSID,
		"amount_cents", cmd.AmountCents,
	)

	if uc.receiptNotifier != nil {
		receipt := ReceiptCommand{
			BuyerEmail:  buyer.Email().String(),
			BuyerName:   buyer.Name().String(),
			CourseTitle: bought.Title(),
			AmountCents: cmd.AmountCents,
			Currency:    cmd.Currency,
			OrderSID:    stored.SID(),
			PaidAt:      cmd.PaidAt,
		}
		goroutine.SafeGo(uc.logger, "purchase-receipt-email", func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := uc.receiptNotifier.SendPurchaseReceipt(notifyCtx, receipt); err != nil {
				uc.logger.Warnw("failed to send purchase receipt",
					"order_sid", receipt.OrderSID,
					"error", err,
				)
			}
		})
	}

	if uc.saleNotifier != nil {
		uc.notifySeller(ctx, bought, stored, cmd)
	}

	return nil
}

// notifySeller emails the author. Failures only log; the sale itself is
// already reconciled.
func (uc *GrantCoursePurchaseUseCase) notifySeller(ctx context.Context, bought *course.Course, stored *order.Order, cmd GrantCoursePurchaseCommand) {
	seller, err := uc.userRepo.GetByID(ctx, bought.AuthorID())
	if err != nil {
		uc.logger.Warnw("failed to load seller for sale notification",
			"course_sid", bought.SID(),
			"error", err,
		)
		return
	}

	sale := SaleNotificationCommand{
		SellerEmail: seller.Email().String(),
		SellerName:  seller.Name().String(),
		CourseTitle: bought.Title(),
		AmountCents: cmd.AmountCents,
		Currency:    cmd.Currency,
		OrderSID:    stored.SID(),
		PaidAt:      cmd.PaidAt,
	}
	goroutine.SafeGo(uc.logger, "sale-notification-email", func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := uc.saleNotifier.SendSaleNotification(notifyCtx, sale); err != nil {
			uc.logger.Warnw("failed to send sale notification",
				"order_sid", sale.OrderSID,
				"error", err,
			)
		}
	})
}
