package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/domain"
)

// errorStatus maps the POS error taxonomy onto HTTP statuses and stable codes
// the frontend keys its messages on. Every guard failure leaves server state
// untouched, so none of these are fatal.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrWarehouseNotSelected):
		return fiber.StatusBadRequest, "WAREHOUSE_NOT_SELECTED"
	case errors.Is(err, domain.ErrOutOfStock):
		return fiber.StatusConflict, "OUT_OF_STOCK"
	case errors.Is(err, &domain.StockExceededError{}):
		return fiber.StatusConflict, "STOCK_EXCEEDED"
	case errors.Is(err, domain.ErrCustomerRequired):
		return fiber.StatusBadRequest, "CUSTOMER_REQUIRED"
	case errors.Is(err, domain.ErrEmptyCart):
		return fiber.StatusBadRequest, "EMPTY_CART"
	case errors.Is(err, domain.ErrOverpayment):
		return fiber.StatusBadRequest, "OVERPAYMENT_REJECTED"
	case errors.Is(err, domain.ErrPaymentAccountRequired):
		return fiber.StatusBadRequest, "PAYMENT_ACCOUNT_REQUIRED"
	case errors.Is(err, domain.ErrCheckoutInProgress):
		return fiber.StatusConflict, "CHECKOUT_IN_PROGRESS"
	case errors.Is(err, &domain.SaleSubmissionError{}):
		return fiber.StatusUnprocessableEntity, "SALE_SUBMISSION_FAILED"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

func jsonError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		// Avoid leaking internals; best-effort generic message
		msg = "something went wrong, please try again"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg, "code": code})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg, "code": "INVALID_INPUT"})
}
