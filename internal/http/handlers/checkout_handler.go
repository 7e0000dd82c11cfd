package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/log"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/pos"
)

type CheckoutHandler struct {
	Registry *pos.Registry
}

// Submit runs the register's checkout. Validation failures and backend
// rejections both leave the cart as it was; only an accepted sale clears it.
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	reg := h.Registry.Get(ensureSID(c))

	receipt, err := reg.Checkout.Submit(c.Context())
	if err != nil {
		applog.Security(c, "checkout.fail", map[string]any{"error": err.Error()})
		return jsonError(c, err)
	}

	applog.Audit(c, "checkout.success", map[string]any{
		"sale_id": receipt.SaleID,
		"status":  receipt.Status,
		"total":   receipt.Total.String(),
	})
	return c.Status(fiber.StatusCreated).JSON(receipt)
}
