package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/log"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/repos"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/validate"
)

type SaleHandler struct {
	Sales *repos.SaleRepo
}

func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit, ok := validate.Quantity(c.Query("limit", "50"))
	if !ok {
		return badRequest(c, "invalid limit")
	}
	sales, err := h.Sales.ListLatest(limit)
	if err != nil {
		applog.Error(c, "sales.list.fail", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"sales": sales})
}

func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid sale id")
	}
	sale, items, payments, err := h.Sales.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "sale not found", "code": "NOT_FOUND"})
		}
		applog.Error(c, "sales.get.fail", err, map[string]any{"sale_id": id})
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"sale": sale, "items": items, "payments": payments})
}
