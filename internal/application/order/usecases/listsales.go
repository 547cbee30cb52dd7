package usecases

import (
	"context"
	"time"

	"studia/internal/domain/course"
	"studia/internal/domain/order"
	"studia/internal/shared/logger"
	"studia/internal/shared/utils"
)

// ListSalesCommand identifies the author.
type ListSalesCommand struct {
	UserID uint
}

// SaleView is one settled sale of the author's courses.
type SaleView struct {
	OrderSID        string     `json:"order_id"`
	CourseSID       string     `json:"course_id"`
	CourseTitle     string     `json:"course_title"`
	AmountCents     int64      `json:"amount_cents"`
	AmountFormatted string     `json:"amount_formatted"`
	Currency        string     `json:"currency"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
}

// SalesResult is the author's sales report.
type SalesResult struct {
	Sales      []SaleView `json:"sales"`
	TotalCents int64      `json:"total_cents"`
}

// ListSalesUseCase reports the paid orders for an author's courses.
type ListSalesUseCase struct {
	orderRepo  order.Repository
	courseRepo course.Repository
	logger     logger.Interface
}

// NewListSalesUseCase creates the use case.
func NewListSalesUseCase(orderRepo order.Repository, courseRepo course.Repository, logger logger.Interface) *ListSalesUseCase {
	return &ListSalesUseCase{orderRepo: orderRepo, courseRepo: courseRepo, logger: logger}
}

// Execute loads the author's sales, newest first.
func (uc *ListSalesUseCase) Execute(ctx context.Context, cmd ListSalesCommand) (*SalesResult, error) {
	orders, err := uc.orderRepo.ListSalesForAuthor(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	type courseRef struct {
		title string
		sid   string
	}
	refs := make(map[uint]courseRef)
	result := &SalesResult{Sales: make([]SaleView, 0, len(orders))}
	for _, o := range orders {
		ref, ok := refs[o.CourseID()]
		if !ok {
			sold, err := uc.courseRepo.GetByID(ctx, o.CourseID())
			if err != nil {
				uc.logger.Warnw("sold course missing", "course_id", o.CourseID(), "order_sid", o.SID())
			} else {
				ref = courseRef{title: sold.Title(), sid: sold.SID()}
			}
			refs[o.CourseID()] = ref
		}

		result.Sales = append(result.Sales, SaleView{
			OrderSID:        o.SID(),
			CourseSID:       ref.sid,
			CourseTitle:     ref.title,
			AmountCents:     o.AmountCents(),
			AmountFormatted: utils.FormatPrice(o.AmountCents(), o.Currency()),
			Currency:        o.Currency(),
			PaidAt:          o.PaidAt(),
		})
		result.TotalCents += o.AmountCents()
	}
	return result, nil
}
