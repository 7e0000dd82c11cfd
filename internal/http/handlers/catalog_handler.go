package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/log"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/pos"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/repos"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/services"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/validate"
)

type CatalogHandler struct {
	Stock     *services.StockService
	Customers *repos.CustomerRepo
	Accounts  *repos.AccountRepo
}

// Stock lists purchasable catalog entries, filtered by search text and
// warehouse selection. Entries with no remaining stock never show up.
func (h *CatalogHandler) StockList(c *fiber.Ctx) error {
	var f pos.CatalogFilter
	if q := strings.TrimSpace(c.Query("search")); q != "" {
		s, ok := validate.Search(q)
		if !ok {
			return badRequest(c, "invalid search text")
		}
		f.Search = s
	}
	if w := strings.TrimSpace(c.Query("warehouseId")); w != "" {
		id, ok := validate.ID(w)
		if !ok {
			return badRequest(c, "invalid warehouse id")
		}
		f.WarehouseID = id
	}

	reports, err := h.Stock.Reports()
	if err != nil {
		applog.Error(c, "catalog.stock.fail", err, nil)
		return jsonError(c, err)
	}
	entries := pos.FilterEntries(pos.Flatten(reports), f)
	return c.JSON(fiber.Map{"entries": entries})
}

func (h *CatalogHandler) Warehouses(c *fiber.Ctx) error {
	ws, err := h.Stock.Warehouses()
	if err != nil {
		applog.Error(c, "catalog.warehouses.fail", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"warehouses": ws})
}

func (h *CatalogHandler) CustomerList(c *fiber.Ctx) error {
	cs, err := h.Customers.List()
	if err != nil {
		applog.Error(c, "catalog.customers.fail", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"customers": cs})
}

func (h *CatalogHandler) AccountList(c *fiber.Ctx) error {
	as, err := h.Accounts.List()
	if err != nil {
		applog.Error(c, "catalog.accounts.fail", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"accounts": as})
}
