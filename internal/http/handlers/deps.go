package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/config"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/pos"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/repos"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/services"
)

type Deps struct {
	Registry *pos.Registry

	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	SaleHandler     *SaleHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	stockRepo := repos.NewStockRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	acctRepo := repos.NewAccountRepo(db)
	prodRepo := repos.NewProductRepo(db)

	stockSvc := services.NewStockService(stockRepo)
	saleSvc := services.NewSaleService(saleRepo)
	registry := pos.NewRegistry(saleSvc, cfg.BranchID)

	return &Deps{
		Registry:        registry,
		CatalogHandler:  &CatalogHandler{Stock: stockSvc, Customers: custRepo, Accounts: acctRepo},
		CartHandler:     &CartHandler{Registry: registry, Stock: stockSvc},
		CheckoutHandler: &CheckoutHandler{Registry: registry},
		SaleHandler:     &SaleHandler{Sales: saleRepo},
		AdminHandler:    &AdminHandler{Stock: stockRepo, Sales: saleRepo, Products: prodRepo},
	}
}
