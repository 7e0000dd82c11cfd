package repos

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ErrInsufficientStock is returned when true stock cannot cover a requested
// sale item. The client's snapshot was stale; nothing is applied.
var ErrInsufficientStock = errors.New("insufficient stock")

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

// NewSale is a fully priced sale ready to persist.
type NewSale struct {
	ID            string
	BranchID      string
	CustomerID    string
	DiscountType  string
	DiscountValue decimal.Decimal
	TaxPercentage decimal.Decimal
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
	PaidAmount    decimal.Decimal
	DueAmount     decimal.Decimal
	Status        string
	Items         []NewSaleItem
	Payments      []NewSalePayment
}

type NewSaleItem struct {
	ProductID   string
	WarehouseID string
	Qty         int
	UnitPrice   decimal.Decimal
}

type NewSalePayment struct {
	Method      string
	Amount      decimal.Decimal
	AccountCode string
}

// Create persists the sale and consumes stock in one transaction. Batches are
// drained in batch order per (product, warehouse); any shortfall aborts the
// whole transaction with ErrInsufficientStock.
func (r *SaleRepo) Create(ns NewSale) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range ns.Items {
		if err := consumeStock(tx, it.ProductID, it.WarehouseID, it.Qty); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
	  INSERT INTO sales
	    (id, branch_id, customer_id, discount_type, discount_value, tax_percentage,
	     subtotal, total, paid_amount, due_amount, status, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, ns.ID, ns.BranchID, ns.CustomerID, ns.DiscountType, ns.DiscountValue, ns.TaxPercentage,
		ns.Subtotal, ns.Total, ns.PaidAmount, ns.DueAmount, ns.Status); err != nil {
		return err
	}

	for _, it := range ns.Items {
		if _, err := tx.Exec(`
		  INSERT INTO sale_items(sale_id, product_id, warehouse_id, qty, unit_price)
		  VALUES(?,?,?,?,?)
		`, ns.ID, it.ProductID, it.WarehouseID, it.Qty, it.UnitPrice); err != nil {
			return err
		}
	}
	for _, p := range ns.Payments {
		if _, err := tx.Exec(`
		  INSERT INTO sale_payments(sale_id, method, amount, account_code)
		  VALUES(?,?,?,?)
		`, ns.ID, p.Method, p.Amount, p.AccountCode); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func consumeStock(tx *sqlx.Tx, productID, warehouseID string, qty int) error {
	type batch struct {
		BatchNumber string `db:"batch_number"`
		Qty         int    `db:"qty"`
	}
	var batches []batch
	if err := tx.Select(&batches, `
		SELECT batch_number, qty FROM stock
		WHERE product_id = ? AND warehouse_id = ? AND qty > 0
		ORDER BY batch_number
	`, productID, warehouseID); err != nil {
		return err
	}

	have := 0
	for _, b := range batches {
		have += b.Qty
	}
	if have < qty {
		return fmt.Errorf("%w for %s at %s (need %d, have %d)",
			ErrInsufficientStock, productID, warehouseID, qty, have)
	}

	need := qty
	for _, b := range batches {
		if need == 0 {
			break
		}
		take := b.Qty
		if take > need {
			take = need
		}
		if _, err := tx.Exec(`
			UPDATE stock SET qty = qty - ?, updated_at = CURRENT_TIMESTAMP
			WHERE product_id = ? AND warehouse_id = ? AND batch_number = ? AND qty >= ?
		`, take, productID, warehouseID, b.BatchNumber, take); err != nil {
			return err
		}
		need -= take
	}
	return nil
}

// ---------- Read side ----------

type SaleSummary struct {
	ID           string          `db:"id" json:"id"`
	CustomerID   string          `db:"customer_id" json:"customer_id"`
	CustomerName string          `db:"customer_name" json:"customer_name"`
	Total        decimal.Decimal `db:"total" json:"total"`
	PaidAmount   decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	DueAmount    decimal.Decimal `db:"due_amount" json:"due_amount"`
	Status       string          `db:"status" json:"status"`
	CreatedAt    string          `db:"created_at" json:"created_at"`
}

type SaleRow struct {
	ID            string          `db:"id" json:"id"`
	BranchID      string          `db:"branch_id" json:"branch_id"`
	CustomerID    string          `db:"customer_id" json:"customer_id"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	DiscountType  string          `db:"discount_type" json:"discount_type"`
	DiscountValue decimal.Decimal `db:"discount_value" json:"discount_value"`
	TaxPercentage decimal.Decimal `db:"tax_percentage" json:"tax_percentage"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	Total         decimal.Decimal `db:"total" json:"total"`
	PaidAmount    decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	DueAmount     decimal.Decimal `db:"due_amount" json:"due_amount"`
	Status        string          `db:"status" json:"status"`
	CreatedAt     string          `db:"created_at" json:"created_at"`
}

type SaleItemRow struct {
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	WarehouseID string          `db:"warehouse_id" json:"warehouse_id"`
	Qty         int             `db:"qty" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
}

type SalePaymentRow struct {
	Method      string          `db:"method" json:"method"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	AccountCode string          `db:"account_code" json:"account_code"`
}

func (r *SaleRepo) Get(saleID string) (SaleRow, []SaleItemRow, []SalePaymentRow, error) {
	var s SaleRow
	if err := r.db.Get(&s, `
		SELECT s.id, s.branch_id, s.customer_id, c.name AS customer_name,
		       s.discount_type, s.discount_value, s.tax_percentage,
		       s.subtotal, s.total, s.paid_amount, s.due_amount, s.status, s.created_at
		FROM sales s JOIN customers c ON c.id = s.customer_id
		WHERE s.id = ?
	`, saleID); err != nil {
		return SaleRow{}, nil, nil, err
	}

	var items []SaleItemRow
	if err := r.db.Select(&items, `
		SELECT si.product_id, p.name AS product_name, si.warehouse_id,
		       si.qty, si.unit_price, (si.qty * si.unit_price) AS subtotal
		FROM sale_items si JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ?
		ORDER BY p.name
	`, saleID); err != nil {
		return SaleRow{}, nil, nil, err
	}

	var payments []SalePaymentRow
	if err := r.db.Select(&payments, `
		SELECT method, amount, account_code FROM sale_payments WHERE sale_id = ?
	`, saleID); err != nil {
		return SaleRow{}, nil, nil, err
	}

	return s, items, payments, nil
}

func (r *SaleRepo) ListLatest(limit int) ([]SaleSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []SaleSummary
	err := r.db.Select(&out, `
		SELECT s.id, s.customer_id, c.name AS customer_name,
		       s.total, s.paid_amount, s.due_amount, s.status, s.created_at
		FROM sales s JOIN customers c ON c.id = s.customer_id
		ORDER BY datetime(s.created_at) DESC, s.id
		LIMIT ?
	`, limit)
	return out, err
}

func (r *SaleRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE sales SET status = ? WHERE id = ?`, status, id)
	return err
}
