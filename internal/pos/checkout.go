package pos

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/domain"
)

// SaleItem is a cart line projected into the sale-creation request.
type SaleItem struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type SalePayment struct {
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	AccountCode string          `json:"account_code"`
}

// SaleRequest is the wire shape submitted to the sale-creation backend.
// Payments is an empty list when no payment was recorded.
type SaleRequest struct {
	CustomerID    string          `json:"customer_id"`
	BranchID      string          `json:"branch_id"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Items         []SaleItem      `json:"items"`
	Payments      []SalePayment   `json:"payments"`
}

type SaleReceipt struct {
	SaleID string          `json:"sale_id"`
	Status string          `json:"status"`
	Total  decimal.Decimal `json:"total"`
	Due    decimal.Decimal `json:"due"`
}

// SaleSubmitter is the sale-creation backend. It is the authority on stock;
// the engine never second-guesses its rejections.
type SaleSubmitter interface {
	Submit(ctx context.Context, req SaleRequest) (SaleReceipt, error)
}

// Coordinator validates and submits the finalized sale for one cart. A second
// Submit while one is in flight is rejected, so double-clicks cannot create
// two sales.
type Coordinator struct {
	mu         sync.Mutex
	submitting bool

	cart      *Cart
	submitter SaleSubmitter
	branchID  string
}

func NewCoordinator(cart *Cart, submitter SaleSubmitter, branchID string) *Coordinator {
	return &Coordinator{cart: cart, submitter: submitter, branchID: branchID}
}

// Submit runs the pre-submit checks in order (customer, non-empty cart,
// overpayment, payment account), sends the assembled request, and clears the
// cart only when the backend accepted the sale. Validation failures never
// reach the network; submission failures leave cart and adjustments exactly
// as they were.
func (co *Coordinator) Submit(ctx context.Context) (SaleReceipt, error) {
	co.mu.Lock()
	if co.submitting {
		co.mu.Unlock()
		return SaleReceipt{}, domain.ErrCheckoutInProgress
	}
	co.submitting = true
	co.mu.Unlock()
	defer func() {
		co.mu.Lock()
		co.submitting = false
		co.mu.Unlock()
	}()

	lines := co.cart.Lines()
	adj := co.cart.Adjustments()

	customerID := co.cart.CustomerID()
	if customerID == "" {
		return SaleReceipt{}, domain.ErrCustomerRequired
	}
	if len(lines) == 0 {
		return SaleReceipt{}, domain.ErrEmptyCart
	}
	totals := Compute(lines, adj)
	if adj.PaidAmount.GreaterThan(totals.Total) {
		return SaleReceipt{}, domain.ErrOverpayment
	}
	if adj.PaidAmount.IsPositive() && adj.PaymentAccountCode == "" {
		return SaleReceipt{}, domain.ErrPaymentAccountRequired
	}

	req := SaleRequest{
		CustomerID:    customerID,
		BranchID:      co.branchID,
		DiscountType:  adj.DiscountType,
		DiscountValue: adj.DiscountValue,
		TaxPercentage: adj.TaxPercentage,
		PaidAmount:    adj.PaidAmount,
		Items:         make([]SaleItem, 0, len(lines)),
		Payments:      []SalePayment{},
	}
	for _, l := range lines {
		req.Items = append(req.Items, SaleItem{
			ProductID:   l.ProductID,
			WarehouseID: l.WarehouseID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	if adj.PaidAmount.IsPositive() {
		req.Payments = append(req.Payments, SalePayment{
			Method:      adj.PaymentMethod,
			Amount:      adj.PaidAmount,
			AccountCode: adj.PaymentAccountCode,
		})
	}

	receipt, err := co.submitter.Submit(ctx, req)
	if err != nil {
		if errors.Is(err, &domain.SaleSubmissionError{}) {
			return SaleReceipt{}, err
		}
		return SaleReceipt{}, &domain.SaleSubmissionError{Err: err}
	}

	co.cart.Clear()
	return receipt, nil
}
