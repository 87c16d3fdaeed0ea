package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"sweetnirwana/internal/cart"
	"sweetnirwana/internal/catalog"
	"sweetnirwana/internal/repos"
	"sweetnirwana/internal/services"
	"sweetnirwana/internal/store"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE products(id TEXT PRIMARY KEY, name TEXT, category TEXT, description TEXT,
	  price TEXT, quantity INTEGER, image_url TEXT, created_at TEXT, updated_at TEXT);
	CREATE TABLE orders(id TEXT PRIMARY KEY, session_id TEXT, customer_name TEXT, customer_email TEXT,
	  address TEXT, city TEXT, zip TEXT, total TEXT, status TEXT, created_at TEXT);
	CREATE TABLE order_items(order_id TEXT, product_id TEXT, name TEXT, qty INTEGER, price TEXT,
	  PRIMARY KEY(order_id, product_id));

	INSERT INTO products(id,name,category,description,price,quantity,created_at) VALUES
	  ('kaju-katli','Kaju Katli','barfi','Cashew fudge','12.50',5,'now'),
	  ('jalebi','Jalebi','syrup','Saffron spirals','4.25',3,'now'),
	  ('rasgulla','Rasgulla','syrup','Chhena balls','7.50',0,'now');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func newCartService(t *testing.T) (*services.CartService, *store.Memory) {
	t.Helper()
	snapshots := store.NewMemory()
	gw := catalog.NewLocal(repos.NewProductRepo(memdb(t)))
	return services.NewCartService(gw, snapshots), snapshots
}

func TestCartService_AddPersistsSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, snapshots := newCartService(t)

	cv, err := svc.Add(ctx, "sid", "kaju-katli", 2)
	if err != nil {
		t.Fatal(err)
	}
	if cv.TotalItems != 2 || cv.TotalPrice != "25" {
		t.Fatalf("bad view: %+v", cv)
	}

	// snapshot written, rehydrates on the next load
	if _, err := snapshots.Load(ctx, "sid"); err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
	if got := svc.Quantity(ctx, "sid", "kaju-katli"); got != 2 {
		t.Fatalf("want 2 after rehydrate, got %d", got)
	}
}

func TestCartService_StockCeilingRejectsWithoutChange(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartService(t)

	if _, err := svc.Add(ctx, "sid", "jalebi", 2); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Add(ctx, "sid", "jalebi", 2) // stock is 3
	if !errors.Is(err, cart.ErrStockExceeded) {
		t.Fatalf("want ErrStockExceeded, got %v", err)
	}
	if got := svc.Quantity(ctx, "sid", "jalebi"); got != 2 {
		t.Fatalf("rejected op changed the cart: %d", got)
	}
}

func TestCartService_AddOutOfStock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartService(t)
	if _, err := svc.Add(ctx, "sid", "rasgulla", 1); !errors.Is(err, cart.ErrOutOfStock) {
		t.Fatalf("want ErrOutOfStock, got %v", err)
	}
}

func TestCartService_SetQuantityZeroClearsSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, snapshots := newCartService(t)

	if _, err := svc.Add(ctx, "sid", "kaju-katli", 2); err != nil {
		t.Fatal(err)
	}
	cv, err := svc.SetQuantity(ctx, "sid", "kaju-katli", 0)
	if err != nil {
		t.Fatal(err)
	}
	if cv.TotalItems != 0 {
		t.Fatalf("want empty cart, got %+v", cv)
	}
	// empty cart deletes the key instead of storing []
	if _, err := snapshots.Load(ctx, "sid"); !errors.Is(err, store.ErrNoSnapshot) {
		t.Fatalf("snapshot should be gone, got %v", err)
	}
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartService(t)

	if _, err := svc.Add(ctx, "sid-a", "kaju-katli", 1); err != nil {
		t.Fatal(err)
	}
	if got := svc.Quantity(ctx, "sid-b", "kaju-katli"); got != 0 {
		t.Fatalf("session b sees session a's cart: %d", got)
	}
}

// brokenStore fails every call, simulating a disabled or full store.
type brokenStore struct{}

func (brokenStore) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("storage disabled")
}
func (brokenStore) Save(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}
func (brokenStore) Clear(context.Context, string) error {
	return errors.New("storage disabled")
}

func TestCartService_DegradesWhenStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	gw := catalog.NewLocal(repos.NewProductRepo(memdb(t)))
	svc := services.NewCartService(gw, brokenStore{})

	// the mutation itself must still succeed
	cv, err := svc.Add(ctx, "sid", "kaju-katli", 1)
	if err != nil {
		t.Fatalf("cart op must survive a dead store: %v", err)
	}
	if cv.TotalItems != 1 {
		t.Fatalf("bad view: %+v", cv)
	}
}
