package handlers_test

import (
	"net/http"
	"testing"
)

func payment() map[string]any {
	return map[string]any{
		"name": "Priya", "email": "priya@sweetnirwana.test",
		"address": "12 Mithai Lane", "city": "Pune", "zip": "20742",
		"cardNumber": "4242 4242 4242 4242", "expiry": "12/99", "cvv": "123",
	}
}

func TestCheckout_CompletesOrderAndDecrementsStock(t *testing.T) {
	cl := &client{t: t, app: newTestApp(t)}

	if resp, _ := cl.do("POST", "/api/cart/items", map[string]any{"productId": "jalebi", "quantity": 3}); resp.StatusCode != http.StatusOK {
		t.Fatalf("add failed: %d", resp.StatusCode)
	}

	resp, env := cl.do("POST", "/api/checkout", payment())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d (%v)", resp.StatusCode, env)
	}
	orderID, _ := env["data"].(map[string]any)["orderId"].(string)
	if orderID == "" {
		t.Fatal("no order id")
	}

	// cart is cleared
	_, env = cl.do("GET", "/api/cart", nil)
	if env["data"].(map[string]any)["totalItems"].(float64) != 0 {
		t.Fatalf("cart should be empty after checkout: %v", env)
	}

	// catalog shows the absolute reconciled stock (seeded 30 - 3)
	_, env = cl.do("GET", "/api/sweets/jalebi", nil)
	if got := env["data"].(map[string]any)["quantity"].(float64); got != 27 {
		t.Fatalf("want stock 27, got %v", got)
	}

	// order is visible to the placing session only
	resp, _ = cl.do("GET", "/api/orders/"+orderID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("own order: want 200, got %d", resp.StatusCode)
	}
	other := &client{t: t, app: cl.app}
	other.do("GET", "/api/cart", nil) // acquire a fresh sid
	resp, _ = other.do("GET", "/api/orders/"+orderID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign order: want 404, got %d", resp.StatusCode)
	}
}

func TestCheckout_RejectsBadPaymentFields(t *testing.T) {
	cl := &client{t: t, app: newTestApp(t)}
	if resp, _ := cl.do("POST", "/api/cart/items", map[string]any{"productId": "jalebi", "quantity": 1}); resp.StatusCode != http.StatusOK {
		t.Fatal("add failed")
	}

	cases := map[string]map[string]any{
		"cardNumber": {"cardNumber": "12-34"},
		"expiry":     {"expiry": "13/99"},
		"cvv":        {"cvv": "12"},
		"zip":        {"zip": "2074"},
		"email":      {"email": "not-an-email"},
	}
	for field, override := range cases {
		body := payment()
		for k, v := range override {
			body[k] = v
		}
		resp, _ := cl.do("POST", "/api/checkout", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("bad %s: want 400, got %d", field, resp.StatusCode)
		}
	}

	// cart untouched by all the rejections
	_, env := cl.do("GET", "/api/cart", nil)
	if env["data"].(map[string]any)["totalItems"].(float64) != 1 {
		t.Fatalf("cart must be unchanged: %v", env)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	cl := &client{t: t, app: newTestApp(t)}
	resp, env := cl.do("POST", "/api/checkout", payment())
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	if env["error"] != "cart is empty" {
		t.Fatalf("want empty-cart reason, got %v", env["error"])
	}
}

func TestCheckoutCancel_ClearsCartWithoutTouchingStock(t *testing.T) {
	cl := &client{t: t, app: newTestApp(t)}
	if resp, _ := cl.do("POST", "/api/cart/items", map[string]any{"productId": "jalebi", "quantity": 2}); resp.StatusCode != http.StatusOK {
		t.Fatal("add failed")
	}

	resp, _ := cl.do("POST", "/api/checkout/cancel", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	_, env := cl.do("GET", "/api/cart", nil)
	if env["data"].(map[string]any)["totalItems"].(float64) != 0 {
		t.Fatalf("cart should be empty: %v", env)
	}
	_, env = cl.do("GET", "/api/sweets/jalebi", nil)
	if got := env["data"].(map[string]any)["quantity"].(float64); got != 30 {
		t.Fatalf("stock must be untouched, got %v", got)
	}
}

func TestAdminOrders_ListsAcrossSessions(t *testing.T) {
	app := newTestApp(t)

	shopper := &client{t: t, app: app}
	if resp, _ := shopper.do("POST", "/api/cart/items", map[string]any{"productId": "gulab-jamun", "quantity": 2}); resp.StatusCode != http.StatusOK {
		t.Fatal("add failed")
	}
	if resp, _ := shopper.do("POST", "/api/checkout", payment()); resp.StatusCode != http.StatusCreated {
		t.Fatal("checkout failed")
	}

	// the cross-session feed is admin-only
	resp, _ := shopper.do("GET", "/api/admin/orders", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("shopper session: want 403, got %d", resp.StatusCode)
	}

	admin := &client{t: t, app: app}
	admin.login("admin@sweetnirwana.test", "Passw0rd!")
	resp, env := admin.do("GET", "/api/admin/orders", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin: want 200, got %d", resp.StatusCode)
	}
	if got := len(env["data"].([]any)); got != 1 {
		t.Fatalf("want 1 order, got %d", got)
	}
}
