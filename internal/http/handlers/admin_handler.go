package handlers

import (
	"regexp"

	"github.com/gofiber/fiber/v2"

	applog "github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/log"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/pos"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/repos"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/validate"
)

type AdminHandler struct {
	Stock    *repos.StockRepo
	Sales    *repos.SaleRepo
	Products *repos.ProductRepo
}

var reSaleStatus = regexp.MustCompile(`^(PAID|PARTIAL|DUE|CANCELED)$`)

// StockList shows every stock row including empty batches, flattened the same
// way the register catalog is.
func (h *AdminHandler) StockList(c *fiber.Ctx) error {
	reports, err := h.Stock.Reports()
	if err != nil {
		applog.Error(c, "admin.stock.list.fail", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"rows": pos.Flatten(reports)})
}

func (h *AdminHandler) ProductList(c *fiber.Ctx) error {
	products, err := h.Products.List()
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// UpsertStock sets the level for one (product, warehouse, batch) row.
func (h *AdminHandler) UpsertStock(c *fiber.Ctx) error {
	var req struct {
		ProductID   string `json:"product_id"`
		WarehouseID string `json:"warehouse_id"`
		BatchNumber string `json:"batch_number"`
		Qty         *int   `json:"qty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	productID, okP := validate.ID(req.ProductID)
	warehouseID, okW := validate.ID(req.WarehouseID)
	batch, okB := validate.ID(req.BatchNumber)
	if !okP || !okW || !okB || req.Qty == nil || *req.Qty < 0 {
		return badRequest(c, "invalid input")
	}
	if err := h.Stock.UpsertQty(productID, warehouseID, batch, *req.Qty); err != nil {
		applog.Error(c, "admin.stock.save.fail", err, map[string]any{"product": productID, "warehouse": warehouseID})
		return badRequest(c, "could not save stock")
	}
	applog.Audit(c, "admin.stock.save", map[string]any{
		"product": productID, "warehouse": warehouseID, "batch": batch, "qty": *req.Qty,
	})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AdminHandler) SalesList(c *fiber.Ctx) error {
	sales, err := h.Sales.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.sales.list.fail", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"sales": sales})
}

// UpdateSaleStatus lets an admin settle or cancel a recorded sale.
func (h *AdminHandler) UpdateSaleStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid sale id")
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || !reSaleStatus.MatchString(req.Status) {
		return badRequest(c, "invalid status")
	}
	if err := h.Sales.UpdateStatus(id, req.Status); err != nil {
		applog.Error(c, "admin.sales.update.fail", err, map[string]any{"sale_id": id})
		return badRequest(c, "could not update status")
	}
	applog.Audit(c, "admin.sales.update", map[string]any{"sale_id": id, "status": req.Status})
	return c.JSON(fiber.Map{"ok": true})
}
