package pos

import (
	"strings"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/domain"
)

// CatalogFilter narrows the flattened stock list the register picks from.
type CatalogFilter struct {
	Search      string
	WarehouseID string
}

// Flatten turns nested per-warehouse stock reports into a single list of
// purchasable entries.
func Flatten(reports []domain.WarehouseReport) []domain.CatalogEntry {
	var out []domain.CatalogEntry
	for _, r := range reports {
		for _, it := range r.Items {
			out = append(out, domain.CatalogEntry{
				ProductID:         it.ProductID,
				ProductName:       it.ProductName,
				WarehouseID:       r.WarehouseID,
				WarehouseName:     r.WarehouseName,
				RemainingQuantity: it.RemainingQuantity,
				SellingPrice:      it.SellingPrice,
				BatchNumber:       it.BatchNumber,
			})
		}
	}
	return out
}

// FilterEntries keeps entries with positive remaining stock that match the
// warehouse selection and a case-insensitive substring of the product name.
func FilterEntries(entries []domain.CatalogEntry, f CatalogFilter) []domain.CatalogEntry {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if e.RemainingQuantity <= 0 {
			continue
		}
		if f.WarehouseID != "" && e.WarehouseID != f.WarehouseID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.ProductName), search) {
			continue
		}
		out = append(out, e)
	}
	return out
}
