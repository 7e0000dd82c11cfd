package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/domain"
)

type StockRepo struct{ db *sqlx.DB }

func NewStockRepo(db *sqlx.DB) *StockRepo { return &StockRepo{db: db} }

// Warehouses lists all warehouses for selection.
func (r *StockRepo) Warehouses() ([]domain.Warehouse, error) {
	var out []domain.Warehouse
	err := r.db.Select(&out, `
		SELECT id, name, created_at, COALESCE(updated_at,'') AS updated_at
		FROM warehouses ORDER BY name
	`)
	return out, err
}

type reportRow struct {
	WarehouseID   string `db:"warehouse_id"`
	WarehouseName string `db:"warehouse_name"`
	domain.StockItem
}

// Reports builds the nested warehouse -> batch stock read model the catalog
// view flattens. Zero-qty rows are included; filtering is the view's job.
func (r *StockRepo) Reports() ([]domain.WarehouseReport, error) {
	var rows []reportRow
	if err := r.db.Select(&rows, `
		SELECT w.id AS warehouse_id, w.name AS warehouse_name,
		       s.product_id, p.name AS product_name, s.qty, s.batch_number, p.selling_price
		FROM stock s
		JOIN warehouses w ON w.id = s.warehouse_id
		JOIN products p   ON p.id = s.product_id
		WHERE p.active = 1
		ORDER BY w.name, p.name, s.batch_number
	`); err != nil {
		return nil, err
	}

	var out []domain.WarehouseReport
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].WarehouseID != row.WarehouseID {
			out = append(out, domain.WarehouseReport{
				WarehouseID:   row.WarehouseID,
				WarehouseName: row.WarehouseName,
			})
		}
		rep := &out[len(out)-1]
		rep.Items = append(rep.Items, row.StockItem)
	}
	return out, nil
}

// Entry returns the live catalog entry for one (product, warehouse) pair.
// With an empty batch it picks the first batch still holding stock, so the
// register sells oldest batches first. Returns sql.ErrNoRows when the pair is
// unknown.
func (r *StockRepo) Entry(productID, warehouseID, batchNumber string) (domain.CatalogEntry, error) {
	q := `
		SELECT s.product_id, p.name AS product_name,
		       s.warehouse_id, w.name AS warehouse_name,
		       s.qty, p.selling_price, s.batch_number
		FROM stock s
		JOIN warehouses w ON w.id = s.warehouse_id
		JOIN products p   ON p.id = s.product_id
		WHERE s.product_id = ? AND s.warehouse_id = ?`
	args := []any{productID, warehouseID}
	if batchNumber != "" {
		q += ` AND s.batch_number = ?`
		args = append(args, batchNumber)
	}
	q += ` ORDER BY (s.qty > 0) DESC, s.batch_number LIMIT 1`

	var e domain.CatalogEntry
	err := r.db.Get(&e, q, args...)
	return e, err
}

// UpsertQty sets the stock level for (product, warehouse, batch), creating the
// row if needed.
func (r *StockRepo) UpsertQty(productID, warehouseID, batchNumber string, qty int) error {
	_, err := r.db.Exec(`
		INSERT INTO stock(product_id, warehouse_id, batch_number, qty, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(product_id, warehouse_id, batch_number)
		DO UPDATE SET qty = excluded.qty, updated_at = excluded.updated_at
	`, productID, warehouseID, batchNumber, qty, time.Now().Format(time.RFC3339))
	return err
}

// Qty sums remaining stock across batches for a (product, warehouse) pair.
func (r *StockRepo) Qty(productID, warehouseID string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `
		SELECT COALESCE(SUM(qty),0) FROM stock
		WHERE product_id = ? AND warehouse_id = ?
	`, productID, warehouseID)
	return qty, err
}
