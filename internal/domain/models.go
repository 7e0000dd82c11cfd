package domain

import "github.com/shopspring/decimal"

type Warehouse struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt string `db:"updated_at" json:"updated_at,omitempty"`
}

type Product struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	SKU          string          `db:"sku" json:"sku"`
	SellingPrice decimal.Decimal `db:"selling_price" json:"selling_price"`
	Active       bool            `db:"active" json:"active"`
	CreatedAt    string          `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt    string          `db:"updated_at" json:"updated_at,omitempty"`
}

type Customer struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Phone string `db:"phone" json:"phone,omitempty"`
}

// PaymentAccount is a ledger account payments settle against (till, bank, wallet).
type PaymentAccount struct {
	Code   string `db:"code" json:"code"`
	Name   string `db:"name" json:"name"`
	Method string `db:"method" json:"method"`
}

// Payment methods accepted at the register.
const (
	PaymentCash   = "cash"
	PaymentBank   = "bank"
	PaymentWallet = "mobile-wallet"
)

// Discount types applied at checkout.
const (
	DiscountFixed      = "fixed"
	DiscountPercentage = "percentage"
)

// Sale statuses derived from paid vs total at creation time.
const (
	SalePaid    = "PAID"
	SalePartial = "PARTIAL"
	SaleDue     = "DUE"
)

// StockItem is one purchasable batch of a product inside a warehouse report.
type StockItem struct {
	ProductID         string          `db:"product_id" json:"product_id"`
	ProductName       string          `db:"product_name" json:"product_name"`
	RemainingQuantity int             `db:"qty" json:"remaining_quantity"`
	BatchNumber       string          `db:"batch_number" json:"batch_number"`
	SellingPrice      decimal.Decimal `db:"selling_price" json:"selling_price"`
}

// WarehouseReport is the nested read model the inventory side publishes:
// one warehouse with its current per-batch stock.
type WarehouseReport struct {
	WarehouseID   string      `json:"warehouse_id"`
	WarehouseName string      `json:"warehouse_name"`
	Items         []StockItem `json:"items"`
}

// CatalogEntry is a flattened (product, warehouse, batch) tuple the register
// can sell from. It is read-only; the cart snapshots what it needs at add time.
type CatalogEntry struct {
	ProductID         string          `db:"product_id" json:"product_id"`
	ProductName       string          `db:"product_name" json:"product_name"`
	WarehouseID       string          `db:"warehouse_id" json:"warehouse_id"`
	WarehouseName     string          `db:"warehouse_name" json:"warehouse_name"`
	RemainingQuantity int             `db:"qty" json:"remaining_quantity"`
	SellingPrice      decimal.Decimal `db:"selling_price" json:"selling_price"`
	BatchNumber       string          `db:"batch_number" json:"batch_number"`
}
