package pos

import (
	"github.com/shopspring/decimal"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/domain"
)

// Totals are fully derived from the cart and adjustments; nothing here is
// stored or cached.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
	Due            decimal.Decimal `json:"due"`
}

var hundred = decimal.NewFromInt(100)

// Compute derives checkout totals. Same inputs always yield the same totals;
// negative discount or tax contributions clamp to zero so totals stay
// predictable even when the adjustment inputs are off.
//
// Tax applies to the pre-discount subtotal. Changing that would alter every
// recorded total, so it stays as the business defined it.
func Compute(lines []CartLine, adj Adjustments) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	discount := adj.DiscountValue
	if adj.DiscountType == domain.DiscountPercentage {
		discount = subtotal.Mul(adj.DiscountValue).Div(hundred)
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	tax := subtotal.Mul(adj.TaxPercentage).Div(hundred)
	if tax.IsNegative() {
		tax = decimal.Zero
	}

	total := subtotal.Sub(discount).Add(tax)
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          total,
		Due:            total.Sub(adj.PaidAmount),
	}
}
