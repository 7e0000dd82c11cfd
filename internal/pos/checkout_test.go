package pos_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/domain"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/pos"
)

type fakeSubmitter struct {
	receipt pos.SaleReceipt
	err     error
	calls   int
	lastReq pos.SaleRequest

	started chan struct{} // closed on first Submit, if set
	release chan struct{} // Submit blocks until closed, if set
}

func (f *fakeSubmitter) Submit(_ context.Context, req pos.SaleRequest) (pos.SaleReceipt, error) {
	f.calls++
	f.lastReq = req
	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.release != nil {
		<-f.release
	}
	return f.receipt, f.err
}

func readyCart(t *testing.T) *pos.Cart {
	t.Helper()
	c := pos.NewCart()
	if err := c.AddItem(entry("p1", "w1", 10, 100), "w1"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetQuantity("p1", "w1", 2); err != nil {
		t.Fatal(err)
	}
	c.SetCustomer("cus-1")
	return c
}

func TestSubmit_RequiresCustomerFirst(t *testing.T) {
	c := pos.NewCart() // no customer, no lines
	f := &fakeSubmitter{}
	co := pos.NewCoordinator(c, f, "branch-1")

	_, err := co.Submit(context.Background())
	if !errors.Is(err, domain.ErrCustomerRequired) {
		t.Fatalf("want ErrCustomerRequired, got %v", err)
	}
	if f.calls != 0 {
		t.Fatal("validation failure must not reach the backend")
	}
}

func TestSubmit_RejectsEmptyCart(t *testing.T) {
	c := pos.NewCart()
	c.SetCustomer("cus-1")
	co := pos.NewCoordinator(c, &fakeSubmitter{}, "branch-1")

	_, err := co.Submit(context.Background())
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}

func TestSubmit_RejectsOverpayment(t *testing.T) {
	c := readyCart(t) // total 200
	c.SetAdjustments(pos.Adjustments{
		PaidAmount:         decimal.NewFromInt(250),
		PaymentAccountCode: "CASH-01",
	})
	f := &fakeSubmitter{}
	co := pos.NewCoordinator(c, f, "branch-1")

	_, err := co.Submit(context.Background())
	if !errors.Is(err, domain.ErrOverpayment) {
		t.Fatalf("want ErrOverpayment, got %v", err)
	}
	if f.calls != 0 {
		t.Fatal("overpayment must never be submitted")
	}
	if len(c.Lines()) != 1 {
		t.Fatal("cart must stay populated after rejection")
	}
}

func TestSubmit_RequiresAccountWhenPaid(t *testing.T) {
	c := readyCart(t)
	c.SetAdjustments(pos.Adjustments{PaidAmount: decimal.NewFromInt(50)})
	co := pos.NewCoordinator(c, &fakeSubmitter{}, "branch-1")

	_, err := co.Submit(context.Background())
	if !errors.Is(err, domain.ErrPaymentAccountRequired) {
		t.Fatalf("want ErrPaymentAccountRequired, got %v", err)
	}
}

func TestSubmit_SuccessClearsCartAndAdjustments(t *testing.T) {
	c := readyCart(t)
	c.SetAdjustments(pos.Adjustments{
		DiscountType:       domain.DiscountFixed,
		DiscountValue:      decimal.NewFromInt(50),
		TaxPercentage:      decimal.NewFromInt(10),
		PaidAmount:         decimal.NewFromInt(100),
		PaymentMethod:      domain.PaymentBank,
		PaymentAccountCode: "BANK-01",
	})
	f := &fakeSubmitter{receipt: pos.SaleReceipt{SaleID: "s-1", Status: domain.SalePartial}}
	co := pos.NewCoordinator(c, f, "branch-1")

	receipt, err := co.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if receipt.SaleID != "s-1" {
		t.Fatalf("bad receipt: %+v", receipt)
	}

	// request assembly
	req := f.lastReq
	if req.CustomerID != "cus-1" || req.BranchID != "branch-1" {
		t.Fatalf("bad request header: %+v", req)
	}
	if len(req.Items) != 1 || req.Items[0].Quantity != 2 || req.Items[0].ProductID != "p1" {
		t.Fatalf("bad items: %+v", req.Items)
	}
	if len(req.Payments) != 1 || req.Payments[0].Method != domain.PaymentBank ||
		req.Payments[0].AccountCode != "BANK-01" {
		t.Fatalf("bad payments: %+v", req.Payments)
	}

	// cart lifecycle
	if len(c.Lines()) != 0 || c.CustomerID() != "" {
		t.Fatal("success must clear the cart")
	}
	if adj := c.Adjustments(); !adj.PaidAmount.IsZero() || adj.PaymentAccountCode != "" {
		t.Fatalf("adjustments must reset on success: %+v", adj)
	}
}

func TestSubmit_NoPaymentMeansEmptyPaymentList(t *testing.T) {
	c := readyCart(t)
	f := &fakeSubmitter{}
	co := pos.NewCoordinator(c, f, "branch-1")

	if _, err := co.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if f.lastReq.Payments == nil || len(f.lastReq.Payments) != 0 {
		t.Fatalf("want empty (non-nil) payments, got %#v", f.lastReq.Payments)
	}
}

func TestSubmit_FailurePreservesCartExactly(t *testing.T) {
	c := readyCart(t)
	c.SetAdjustments(pos.Adjustments{
		DiscountType:  domain.DiscountFixed,
		TaxPercentage: decimal.NewFromInt(5),
	})
	linesBefore := c.Lines()
	adjBefore := c.Adjustments()

	f := &fakeSubmitter{err: &domain.SaleSubmissionError{Message: "insufficient stock for p1 at w1"}}
	co := pos.NewCoordinator(c, f, "branch-1")

	_, err := co.Submit(context.Background())
	if !errors.Is(err, &domain.SaleSubmissionError{}) {
		t.Fatalf("want SaleSubmissionError, got %v", err)
	}
	if err.Error() != "insufficient stock for p1 at w1" {
		t.Fatalf("server message must pass through, got %q", err.Error())
	}
	if !reflect.DeepEqual(linesBefore, c.Lines()) {
		t.Fatal("cart lines changed on failed submission")
	}
	if !reflect.DeepEqual(adjBefore, c.Adjustments()) {
		t.Fatal("adjustments changed on failed submission")
	}
	if c.CustomerID() != "cus-1" {
		t.Fatal("customer selection lost on failed submission")
	}
}

func TestSubmit_WrapsUnknownBackendErrors(t *testing.T) {
	c := readyCart(t)
	f := &fakeSubmitter{err: errors.New("connection reset")}
	co := pos.NewCoordinator(c, f, "branch-1")

	_, err := co.Submit(context.Background())
	if !errors.Is(err, &domain.SaleSubmissionError{}) {
		t.Fatalf("want SaleSubmissionError wrapper, got %v", err)
	}
	// generic fallback, not the raw transport error
	if err.Error() != "could not complete the sale, please try again" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestSubmit_RefusesReentryWhileInFlight(t *testing.T) {
	c := readyCart(t)
	f := &fakeSubmitter{
		receipt: pos.SaleReceipt{SaleID: "s-1"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	started := f.started
	co := pos.NewCoordinator(c, f, "branch-1")

	done := make(chan error, 1)
	go func() {
		_, err := co.Submit(context.Background())
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first submit never reached the backend")
	}

	_, err := co.Submit(context.Background())
	if !errors.Is(err, domain.ErrCheckoutInProgress) {
		t.Fatalf("want ErrCheckoutInProgress, got %v", err)
	}

	close(f.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if f.calls != 1 {
		t.Fatalf("backend must be hit exactly once, got %d", f.calls)
	}
}
