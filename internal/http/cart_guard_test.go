package handlers_test

import (
	"net/http"
	"testing"
)

func wantEnvelope(t *testing.T, resp *http.Response, status int, code string) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("want %d, got %d", status, resp.StatusCode)
	}
	body := decodeMap(t, resp)
	if body["code"] != code {
		t.Fatalf("want code %s, got %+v", code, body)
	}
	if msg, _ := body["error"].(string); msg == "" {
		t.Fatalf("missing error message: %+v", body)
	}
}

func TestAddItem_NoWarehouseSelected(t *testing.T) {
	app, _ := newRegisterApp(t)
	resp, err := app.Test(jsonReq("POST", "/api/v1/cart/items",
		`{"product_id":"prod-tea-500g"}`, "sid-op"))
	if err != nil {
		t.Fatal(err)
	}
	wantEnvelope(t, resp, http.StatusBadRequest, "WAREHOUSE_NOT_SELECTED")
}

func TestAddItem_ZeroStockBatchRejected(t *testing.T) {
	app, _ := newRegisterApp(t)
	// sugar only has an empty batch in wh-main
	resp, err := app.Test(jsonReq("POST", "/api/v1/cart/items",
		`{"product_id":"prod-sugar-1kg","warehouse_id":"wh-main"}`, "sid-op"))
	if err != nil {
		t.Fatal(err)
	}
	wantEnvelope(t, resp, http.StatusConflict, "OUT_OF_STOCK")
}

func TestAddItem_UnknownProduct(t *testing.T) {
	app, _ := newRegisterApp(t)
	resp, err := app.Test(jsonReq("POST", "/api/v1/cart/items",
		`{"product_id":"prod-nope","warehouse_id":"wh-main"}`, "sid-op"))
	if err != nil {
		t.Fatal(err)
	}
	wantEnvelope(t, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestSetQuantity_AboveStockKeepsLine(t *testing.T) {
	app, _ := newRegisterApp(t)
	// tea has 9 in wh-main
	if _, err := app.Test(jsonReq("POST", "/api/v1/cart/items",
		`{"product_id":"prod-tea-500g","warehouse_id":"wh-main"}`, "sid-op")); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(jsonReq("PUT", "/api/v1/cart/items",
		`{"product_id":"prod-tea-500g","warehouse_id":"wh-main","quantity":10}`, "sid-op"))
	if err != nil {
		t.Fatal(err)
	}
	wantEnvelope(t, resp, http.StatusConflict, "STOCK_EXCEEDED")

	// line untouched
	resp, err = app.Test(jsonReq("GET", "/api/v1/cart", "", "sid-op"))
	if err != nil {
		t.Fatal(err)
	}
	view := decodeMap(t, resp)
	lines, _ := view["lines"].([]any)
	if len(lines) != 1 {
		t.Fatalf("want 1 line, got %+v", view["lines"])
	}
	if qty := lines[0].(map[string]any)["quantity"]; qty != float64(1) {
		t.Fatalf("quantity must stay 1, got %v", qty)
	}
}

func TestCheckout_WithoutCustomer(t *testing.T) {
	app, _ := newRegisterApp(t)
	if _, err := app.Test(jsonReq("POST", "/api/v1/cart/items",
		`{"product_id":"prod-tea-500g","warehouse_id":"wh-main"}`, "sid-op")); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(jsonReq("POST", "/api/v1/checkout", "", "sid-op"))
	if err != nil {
		t.Fatal(err)
	}
	wantEnvelope(t, resp, http.StatusBadRequest, "CUSTOMER_REQUIRED")
}

func TestCheckout_EmptyCart(t *testing.T) {
	app, _ := newRegisterApp(t)
	if _, err := app.Test(jsonReq("PUT", "/api/v1/cart/adjustments",
		`{"customer_id":"cus-walkin"}`, "sid-op")); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(jsonReq("POST", "/api/v1/checkout", "", "sid-op"))
	if err != nil {
		t.Fatal(err)
	}
	wantEnvelope(t, resp, http.StatusBadRequest, "EMPTY_CART")
}

func TestCheckout_OverpaymentRejected(t *testing.T) {
	app, _ := newRegisterApp(t)
	if _, err := app.Test(jsonReq("POST", "/api/v1/cart/items",
		`{"product_id":"prod-tea-500g","warehouse_id":"wh-main"}`, "sid-op")); err != nil {
		t.Fatal(err)
	}
	if _, err := app.Test(jsonReq("PUT", "/api/v1/cart/adjustments",
		`{"customer_id":"cus-walkin","paid_amount":1000,"payment_account_code":"CASH-01"}`, "sid-op")); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(jsonReq("POST", "/api/v1/checkout", "", "sid-op"))
	if err != nil {
		t.Fatal(err)
	}
	wantEnvelope(t, resp, http.StatusBadRequest, "OVERPAYMENT_REJECTED")

	// cart survives the rejection
	resp, err = app.Test(jsonReq("GET", "/api/v1/cart", "", "sid-op"))
	if err != nil {
		t.Fatal(err)
	}
	view := decodeMap(t, resp)
	if lines, _ := view["lines"].([]any); len(lines) != 1 {
		t.Fatalf("cart lost on rejected checkout: %+v", view["lines"])
	}
}

func TestAdjustments_RejectsNegativeAndBadEnums(t *testing.T) {
	app, _ := newRegisterApp(t)

	resp, err := app.Test(jsonReq("PUT", "/api/v1/cart/adjustments",
		`{"discount_value":-1}`, "sid-op"))
	if err != nil {
		t.Fatal(err)
	}
	wantEnvelope(t, resp, http.StatusBadRequest, "INVALID_INPUT")

	resp, err = app.Test(jsonReq("PUT", "/api/v1/cart/adjustments",
		`{"discount_type":"loyalty"}`, "sid-op"))
	if err != nil {
		t.Fatal(err)
	}
	wantEnvelope(t, resp, http.StatusBadRequest, "INVALID_INPUT")
}
