package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"sweetnirwana/internal/config"
	"sweetnirwana/internal/http/handlers"
	applog "sweetnirwana/internal/log"
	"sweetnirwana/internal/repos"
	"sweetnirwana/internal/services"
	"sweetnirwana/internal/store"
)

// newTestApp wires the API the same way main does, over an in-memory
// catalog and a memory snapshot store.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "error": "something went wrong, please try again",
			})
		},
	})
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, config.Config{MediaDir: t.TempDir()}, store.NewMemory(), authSvc)

	api := app.Group("/api")
	api.Get("/sweets", deps.ProductHandler.List)
	api.Get("/sweets/:id", deps.ProductHandler.Get)
	api.Get("/availability", deps.ProductHandler.Availability)

	adminOnly := handlers.RequireAdmin(authSvc)
	api.Post("/sweets", adminOnly, deps.ProductHandler.Create)
	api.Delete("/sweets/:id", adminOnly, deps.ProductHandler.Delete)
	api.Put("/sweets/:id/stock", adminOnly, deps.ProductHandler.SetStock)
	api.Post("/sweets/upload-image", adminOnly, deps.ProductHandler.UploadImage)

	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.AddItem)
	api.Put("/cart/items/:id", deps.CartHandler.UpdateItem)
	api.Delete("/cart/items/:id", deps.CartHandler.RemoveItem)

	api.Post("/checkout", deps.CheckoutHandler.Complete)
	api.Post("/checkout/cancel", deps.CheckoutHandler.Cancel)
	api.Get("/orders", deps.CheckoutHandler.History)
	api.Get("/orders/:id", deps.CheckoutHandler.Get)
	api.Get("/admin/orders", adminOnly, deps.CheckoutHandler.Latest)

	api.Get("/auth/accounts", deps.AuthHandler.Accounts)
	api.Post("/auth/login", deps.AuthHandler.Login)
	api.Post("/auth/logout", deps.AuthHandler.Logout)
	api.Get("/auth/me", deps.AuthHandler.Me)

	return app
}

// client carries the sid cookie across requests like a browser session.
type client struct {
	t   *testing.T
	app *fiber.App
	sid string
}

func (cl *client) do(method, path string, body any) (*http.Response, map[string]any) {
	cl.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			cl.t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: cl.sid})
	}
	resp, err := cl.app.Test(req, -1)
	if err != nil {
		cl.t.Fatal(err)
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" && ck.Value != "" {
			cl.sid = ck.Value
		}
	}
	raw, _ := io.ReadAll(resp.Body)
	var env map[string]any
	if len(raw) > 0 && strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
		_ = json.Unmarshal(raw, &env)
	}
	return resp, env
}

func (cl *client) login(email, password string) {
	cl.t.Helper()
	resp, _ := cl.do("POST", "/api/auth/login", map[string]string{"email": email, "password": password})
	if resp.StatusCode != http.StatusOK {
		cl.t.Fatalf("login %s failed with %d", email, resp.StatusCode)
	}
}
