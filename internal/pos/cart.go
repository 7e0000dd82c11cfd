// Package pos implements the register-side cart and checkout engine: an
// in-memory cart with stock-bound quantity ceilings, pure pricing math, and a
// checkout coordinator that submits finalized sales to the backend.
package pos

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/domain"
)

// CartLine is one (product, warehouse) entry in the cart. UnitPrice and
// AvailableStock are snapshots taken when the line was created and are never
// re-synced against the live catalog.
type CartLine struct {
	ProductID      string          `json:"product_id"`
	WarehouseID    string          `json:"warehouse_id"`
	ProductName    string          `json:"product_name"`
	WarehouseName  string          `json:"warehouse_name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	AvailableStock int             `json:"available_stock"`
	BatchNumber    string          `json:"batch_number"`
}

// Adjustments are the operator-entered checkout modifiers applied on top of
// the raw cart subtotal.
type Adjustments struct {
	DiscountType       string          `json:"discount_type"`
	DiscountValue      decimal.Decimal `json:"discount_value"`
	TaxPercentage      decimal.Decimal `json:"tax_percentage"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	PaymentMethod      string          `json:"payment_method"`
	PaymentAccountCode string          `json:"payment_account_code"`
}

func defaultAdjustments() Adjustments {
	return Adjustments{
		DiscountType:  domain.DiscountFixed,
		PaymentMethod: domain.PaymentCash,
	}
}

// Cart is the single owner of cart state for one register session. All
// mutations go through its declared operations; the mutex serializes them so
// rapid UI events apply in call order.
//
// Invariant: after every mutation, each line holds 1 <= Quantity <= AvailableStock.
type Cart struct {
	mu         sync.Mutex
	lines      []CartLine
	customerID string
	adj        Adjustments
}

func NewCart() *Cart {
	return &Cart{adj: defaultAdjustments()}
}

// AddItem puts one unit of a catalog entry into the cart. A second add for the
// same (product, warehouse) key routes through the quantity-increment path and
// fails with StockExceededError once the line sits at its ceiling.
func (c *Cart) AddItem(entry domain.CatalogEntry, warehouseID string) error {
	if warehouseID == "" {
		return domain.ErrWarehouseNotSelected
	}
	if entry.RemainingQuantity <= 0 {
		return domain.ErrOutOfStock
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(entry.ProductID, warehouseID); i >= 0 {
		return c.setQuantityLocked(i, c.lines[i].Quantity+1)
	}

	c.lines = append(c.lines, CartLine{
		ProductID:      entry.ProductID,
		WarehouseID:    warehouseID,
		ProductName:    entry.ProductName,
		WarehouseName:  entry.WarehouseName,
		Quantity:       1,
		UnitPrice:      entry.SellingPrice,
		AvailableStock: entry.RemainingQuantity,
		BatchNumber:    entry.BatchNumber,
	})
	return nil
}

// SetQuantity updates a line's quantity in place. Zero or below removes the
// line; above the ceiling fails with StockExceededError; an unknown key is a
// silent no-op so duplicate UI events stay harmless.
func (c *Cart) SetQuantity(productID, warehouseID string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(productID, warehouseID)
	if i < 0 {
		return nil
	}
	if qty <= 0 {
		c.removeAt(i)
		return nil
	}
	return c.setQuantityLocked(i, qty)
}

// RemoveItem deletes the matching line if present.
func (c *Cart) RemoveItem(productID, warehouseID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.find(productID, warehouseID); i >= 0 {
		c.removeAt(i)
	}
}

// Clear empties the cart and resets adjustments and customer selection to
// their defaults. Called by the coordinator after a successful sale.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.customerID = ""
	c.adj = defaultAdjustments()
}

// Lines returns a copy of the current cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) SetCustomer(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customerID = id
}

func (c *Cart) CustomerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customerID
}

func (c *Cart) SetAdjustments(a Adjustments) {
	if a.DiscountType == "" {
		a.DiscountType = domain.DiscountFixed
	}
	if a.PaymentMethod == "" {
		a.PaymentMethod = domain.PaymentCash
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adj = a
}

func (c *Cart) Adjustments() Adjustments {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adj
}

// Totals recomputes the checkout totals from the current lines and adjustments.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	adj := c.adj
	c.mu.Unlock()
	return Compute(lines, adj)
}

func (c *Cart) find(productID, warehouseID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].WarehouseID == warehouseID {
			return i
		}
	}
	return -1
}

func (c *Cart) setQuantityLocked(i, qty int) error {
	line := &c.lines[i]
	if qty > line.AvailableStock {
		return &domain.StockExceededError{
			ProductID:   line.ProductID,
			WarehouseID: line.WarehouseID,
			Available:   line.AvailableStock,
			Requested:   qty,
		}
	}
	line.Quantity = qty
	return nil
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}
