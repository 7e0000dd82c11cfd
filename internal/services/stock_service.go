package services

import (
	"golang.org/x/sync/singleflight"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/domain"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/repos"
)

// StockService serves the warehouse stock reports the catalog view projects.
// Registers refresh on demand, so concurrent report builds collapse into one
// query via singleflight.
type StockService struct {
	Stock *repos.StockRepo
	sfg   singleflight.Group
}

func NewStockService(stock *repos.StockRepo) *StockService {
	return &StockService{Stock: stock}
}

func (s *StockService) Reports() ([]domain.WarehouseReport, error) {
	v, err, _ := s.sfg.Do("reports", func() (interface{}, error) {
		return s.Stock.Reports()
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.WarehouseReport), nil
}

func (s *StockService) Warehouses() ([]domain.Warehouse, error) {
	return s.Stock.Warehouses()
}

// Entry resolves the live catalog entry a register is about to add.
func (s *StockService) Entry(productID, warehouseID, batchNumber string) (domain.CatalogEntry, error) {
	return s.Stock.Entry(productID, warehouseID, batchNumber)
}
