package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/domain"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/pos"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/repos"
)

// SaleService is the authoritative sale-creation backend the checkout
// coordinator submits to. It recomputes totals from the request, verifies and
// consumes true stock, and persists the sale atomically.
type SaleService struct {
	Sales *repos.SaleRepo
}

func NewSaleService(sales *repos.SaleRepo) *SaleService {
	return &SaleService{Sales: sales}
}

var _ pos.SaleSubmitter = (*SaleService)(nil)

// Submit implements pos.SaleSubmitter. A stale client snapshot surfaces here
// as an insufficient-stock rejection; the transaction applies nothing and the
// register keeps its cart.
func (s *SaleService) Submit(ctx context.Context, req pos.SaleRequest) (pos.SaleReceipt, error) {
	lines := make([]pos.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, pos.CartLine{Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	totals := pos.Compute(lines, pos.Adjustments{
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		TaxPercentage: req.TaxPercentage,
		PaidAmount:    req.PaidAmount,
	})

	status := domain.SaleDue
	switch {
	case !totals.Due.IsPositive():
		status = domain.SalePaid
	case req.PaidAmount.IsPositive():
		status = domain.SalePartial
	}

	ns := repos.NewSale{
		ID:            uuid.NewString(),
		BranchID:      req.BranchID,
		CustomerID:    req.CustomerID,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		TaxPercentage: req.TaxPercentage,
		Subtotal:      totals.Subtotal,
		Total:         totals.Total,
		PaidAmount:    req.PaidAmount,
		DueAmount:     totals.Due,
		Status:        status,
	}
	for _, it := range req.Items {
		ns.Items = append(ns.Items, repos.NewSaleItem{
			ProductID:   it.ProductID,
			WarehouseID: it.WarehouseID,
			Qty:         it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	for _, p := range req.Payments {
		ns.Payments = append(ns.Payments, repos.NewSalePayment{
			Method:      p.Method,
			Amount:      p.Amount,
			AccountCode: p.AccountCode,
		})
	}

	if err := s.Sales.Create(ns); err != nil {
		if errors.Is(err, repos.ErrInsufficientStock) {
			// stock moved since the operator loaded the catalog
			return pos.SaleReceipt{}, &domain.SaleSubmissionError{Message: err.Error(), Err: err}
		}
		return pos.SaleReceipt{}, &domain.SaleSubmissionError{Err: err}
	}

	return pos.SaleReceipt{
		SaleID: ns.ID,
		Status: status,
		Total:  totals.Total,
		Due:    totals.Due,
	}, nil
}
