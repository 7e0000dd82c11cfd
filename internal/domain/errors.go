// Package domain holds the shared models and error taxonomy of the POS core.
package domain

import (
	"errors"
	"fmt"
)

// Cart guard failures. Each rejects the mutation and leaves the cart unchanged.
var (
	ErrWarehouseNotSelected = errors.New("select a warehouse first")
	ErrOutOfStock           = errors.New("product is out of stock")
)

// Checkout pre-submit guard failures, in validation order.
var (
	ErrCustomerRequired       = errors.New("select a customer before checkout")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrOverpayment            = errors.New("paid amount exceeds the payable total")
	ErrPaymentAccountRequired = errors.New("select a payment account to record a payment")
)

// ErrCheckoutInProgress is returned when Submit is called while a previous
// submission is still in flight.
var ErrCheckoutInProgress = errors.New("a checkout is already in progress")

// StockExceededError is returned when a quantity change would push a cart line
// past the stock ceiling captured when the line was created.
type StockExceededError struct {
	ProductID   string
	WarehouseID string
	Available   int
	Requested   int
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("only %d in stock for %s at %s (requested %d)",
		e.Available, e.ProductID, e.WarehouseID, e.Requested)
}

// Is allows errors.Is checks against the bare type.
func (e *StockExceededError) Is(target error) bool {
	_, ok := target.(*StockExceededError)
	return ok
}

// SaleSubmissionError wraps a rejection from the sale-creation backend. The
// cart is left untouched so the operator can correct input and retry.
type SaleSubmissionError struct {
	Message string
	Err     error
}

func (e *SaleSubmissionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "could not complete the sale, please try again"
}

func (e *SaleSubmissionError) Unwrap() error { return e.Err }

// Is allows errors.Is checks against the bare type.
func (e *SaleSubmissionError) Is(target error) bool {
	_, ok := target.(*SaleSubmissionError)
	return ok
}
