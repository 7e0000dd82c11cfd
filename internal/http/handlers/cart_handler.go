package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/domain"
	applog "github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/log"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/pos"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/services"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/validate"
)

type CartHandler struct {
	Registry *pos.Registry
	Stock    *services.StockService
}

func cartView(reg *pos.Register) fiber.Map {
	return fiber.Map{
		"customer_id": reg.Cart.CustomerID(),
		"lines":       reg.Cart.Lines(),
		"adjustments": reg.Cart.Adjustments(),
		"totals":      reg.Cart.Totals(),
	}
}

// View returns the register's cart with freshly computed totals.
func (h *CartHandler) View(c *fiber.Ctx) error {
	reg := h.Registry.Get(ensureSID(c))
	return c.JSON(cartView(reg))
}

// AddItem resolves the live catalog entry and hands it to the cart, which
// snapshots price and stock ceiling. The engine owns all the guards; this
// handler only parses and looks up.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	reg := h.Registry.Get(ensureSID(c))

	var req struct {
		ProductID   string `json:"product_id"`
		WarehouseID string `json:"warehouse_id"`
		BatchNumber string `json:"batch_number"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	productID, ok := validate.ID(req.ProductID)
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if req.BatchNumber != "" {
		if _, ok := validate.ID(req.BatchNumber); !ok {
			return badRequest(c, "invalid batch number")
		}
	}

	var entry domain.CatalogEntry
	warehouseID := ""
	if req.WarehouseID != "" {
		wid, ok := validate.ID(req.WarehouseID)
		if !ok {
			return badRequest(c, "invalid warehouse id")
		}
		warehouseID = wid
		e, err := h.Stock.Entry(productID, warehouseID, req.BatchNumber)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown product or warehouse", "code": "NOT_FOUND"})
			}
			applog.Error(c, "cart.add.lookup.fail", err, map[string]any{"product": productID, "warehouse": warehouseID})
			return jsonError(c, err)
		}
		entry = e
	}

	if err := reg.Cart.AddItem(entry, warehouseID); err != nil {
		return jsonError(c, err)
	}
	applog.Info(c, "cart.add", map[string]any{"product": productID, "warehouse": warehouseID})
	return c.Status(fiber.StatusCreated).JSON(cartView(reg))
}

// SetQuantity updates one line's quantity; zero removes the line.
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	reg := h.Registry.Get(ensureSID(c))

	var req struct {
		ProductID   string `json:"product_id"`
		WarehouseID string `json:"warehouse_id"`
		Quantity    *int   `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	productID, ok := validate.ID(req.ProductID)
	if !ok {
		return badRequest(c, "invalid product id")
	}
	warehouseID, ok := validate.ID(req.WarehouseID)
	if !ok {
		return badRequest(c, "invalid warehouse id")
	}
	if req.Quantity == nil || *req.Quantity < 0 || *req.Quantity > 9999 {
		return badRequest(c, "invalid quantity")
	}

	if err := reg.Cart.SetQuantity(productID, warehouseID, *req.Quantity); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(cartView(reg))
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	reg := h.Registry.Get(ensureSID(c))

	productID, ok := validate.ID(c.Query("productId"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	warehouseID, ok := validate.ID(c.Query("warehouseId"))
	if !ok {
		return badRequest(c, "invalid warehouse id")
	}

	reg.Cart.RemoveItem(productID, warehouseID)
	return c.JSON(cartView(reg))
}

// SetAdjustments records the customer selection and the discount/tax/payment
// inputs. Payment completeness is checked at submit time, not here.
func (h *CartHandler) SetAdjustments(c *fiber.Ctx) error {
	reg := h.Registry.Get(ensureSID(c))

	var req struct {
		CustomerID         string           `json:"customer_id"`
		DiscountType       string           `json:"discount_type"`
		DiscountValue      *decimal.Decimal `json:"discount_value"`
		TaxPercentage      *decimal.Decimal `json:"tax_percentage"`
		PaidAmount         *decimal.Decimal `json:"paid_amount"`
		PaymentMethod      string           `json:"payment_method"`
		PaymentAccountCode string           `json:"payment_account_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	adj := pos.Adjustments{}
	if req.DiscountType != "" {
		dt, ok := validate.DiscountType(req.DiscountType)
		if !ok {
			return badRequest(c, "invalid discount type")
		}
		adj.DiscountType = dt
	}
	if req.PaymentMethod != "" {
		pm, ok := validate.PaymentMethod(req.PaymentMethod)
		if !ok {
			return badRequest(c, "invalid payment method")
		}
		adj.PaymentMethod = pm
	}
	if req.DiscountValue != nil {
		if req.DiscountValue.IsNegative() {
			return badRequest(c, "discount value must not be negative")
		}
		adj.DiscountValue = *req.DiscountValue
	}
	if req.TaxPercentage != nil {
		if req.TaxPercentage.IsNegative() {
			return badRequest(c, "tax percentage must not be negative")
		}
		adj.TaxPercentage = *req.TaxPercentage
	}
	if req.PaidAmount != nil {
		if req.PaidAmount.IsNegative() {
			return badRequest(c, "paid amount must not be negative")
		}
		adj.PaidAmount = *req.PaidAmount
	}
	if req.PaymentAccountCode != "" {
		code, ok := validate.ID(req.PaymentAccountCode)
		if !ok {
			return badRequest(c, "invalid payment account code")
		}
		adj.PaymentAccountCode = code
	}
	if req.CustomerID != "" {
		id, ok := validate.ID(req.CustomerID)
		if !ok {
			return badRequest(c, "invalid customer id")
		}
		reg.Cart.SetCustomer(id)
	}

	reg.Cart.SetAdjustments(adj)
	return c.JSON(cartView(reg))
}

// Clear empties the cart and resets adjustments, e.g. when the operator
// abandons the sale.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	reg := h.Registry.Get(ensureSID(c))
	reg.Cart.Clear()
	applog.Info(c, "cart.clear", nil)
	return c.JSON(cartView(reg))
}
