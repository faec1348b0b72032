package shopping

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps/profile"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/tools"
	"gorm.io/gorm"
)

const priya = "priya@example.com"

type fixture struct {
	db      *gorm.DB
	reg     *tools.Registry
	catalog *catalog.Catalog
	plugin  *Plugin
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := database.MigrateShared(db); err != nil {
		t.Fatalf("MigrateShared: %v", err)
	}
	cat := catalog.Default()
	p := New(db, cat)
	if err := database.MigrateModels(db, p.Models()); err != nil {
		t.Fatalf("MigrateModels: %v", err)
	}
	reg := tools.NewRegistry()
	profile.New(db).RegisterTools(reg)
	p.RegisterTools(reg)
	return &fixture{db: db, reg: reg, catalog: cat, plugin: p}
}

func (f *fixture) call(t *testing.T, name string, args map[string]any) any {
	t.Helper()
	out, err := f.reg.Execute(context.Background(), name, args)
	if err != nil {
		t.Fatalf("%s(%v): %v", name, args, err)
	}
	return out
}

func TestAddToCartAccumulates(t *testing.T) {
	f := newFixture(t)

	got := f.call(t, "add_to_cart", map[string]any{"user_id": priya, "product_id": "p1", "quantity": float64(2)})
	if got != "Added 2 of p1 to priya@example.com's cart." {
		t.Errorf("add_to_cart = %q", got)
	}
	f.call(t, "add_to_cart", map[string]any{"user_id": priya, "product_id": "p1"})

	var rows []Cart
	f.db.Find(&rows)
	if len(rows) != 1 || rows[0].Quantity != 3 {
		t.Fatalf("cart rows = %+v, want one row with quantity 3", rows)
	}

	if got := f.call(t, "add_to_cart", map[string]any{"user_id": priya, "product_id": "p1", "quantity": float64(0)}); got != "Quantity must be at least 1." {
		t.Errorf("add_to_cart(0) = %q", got)
	}
}

func TestAddToCartCapsLineQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, qty := range []any{float64(9.2e18), 1e30, "99999999999"} {
		_, err := f.reg.Execute(ctx, "add_to_cart", map[string]any{"user_id": priya, "product_id": "p1", "quantity": qty})
		if !errors.Is(err, tools.ErrInvalidArgument) {
			t.Errorf("add_to_cart(%v) error = %v, want ErrInvalidArgument", qty, err)
		}
	}

	args := map[string]any{"user_id": priya, "product_id": "p1", "quantity": float64(MaxLineQuantity)}
	if got := f.call(t, "add_to_cart", args); got != "Added 2147483647 of p1 to priya@example.com's cart." {
		t.Fatalf("add_to_cart(max) = %q", got)
	}
	if got := f.call(t, "add_to_cart", map[string]any{"user_id": priya, "product_id": "p1"}); got != msgTooMany {
		t.Errorf("add_to_cart over the cap = %q", got)
	}
	if err := f.plugin.carts.Add(ctx, priya, "p1", MaxLineQuantity+1); !errors.Is(err, ErrQuantityTooLarge) {
		t.Errorf("Add(max+1) = %v, want ErrQuantityTooLarge", err)
	}

	lines, err := f.plugin.carts.View(ctx, priya)
	if err != nil {
		t.Fatalf("View after rejected adds: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != MaxLineQuantity {
		t.Errorf("cart = %+v, want one line of %d", lines, MaxLineQuantity)
	}

	f.call(t, "set_address", map[string]any{"user_id": priya, "address": "12 Baker St"})
	if got, _ := f.call(t, "checkout", map[string]any{"user_id": priya}).(string); !strings.HasPrefix(got, "Order placed!") {
		t.Errorf("checkout of a capped line = %q", got)
	}
}

func TestAddToCartConcurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f.plugin.carts.Add(ctx, priya, "p4", 1); err != nil {
				t.Errorf("Add: %v", err)
			}
		}()
	}
	wg.Wait()

	lines, err := f.plugin.carts.View(ctx, priya)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 10 {
		t.Errorf("cart = %+v, want one line of 10", lines)
	}
}

func TestViewCart(t *testing.T) {
	f := newFixture(t)
	if lines := f.call(t, "view_cart", map[string]any{"user_id": "ghost@example.com"}).([]CartLine); len(lines) != 0 {
		t.Errorf("unknown user cart = %v", lines)
	}

	f.call(t, "add_to_cart", map[string]any{"user_id": priya, "product_id": "p4", "quantity": float64(2)})
	lines := f.call(t, "view_cart", map[string]any{"user_id": priya}).([]CartLine)
	if len(lines) != 1 || lines[0].Name != "Green Hoodie" || lines[0].Subtotal.String() != "99.98" {
		t.Errorf("view_cart = %+v", lines)
	}
}

func TestCheckoutPreconditions(t *testing.T) {
	f := newFixture(t)

	if got := f.call(t, "checkout", map[string]any{"user_id": "ghost@example.com"}); got != "User not found. Please register." {
		t.Errorf("checkout(unknown) = %q", got)
	}

	f.call(t, "add_to_cart", map[string]any{"user_id": priya, "product_id": "p1"})
	if got := f.call(t, "checkout", map[string]any{"user_id": priya}); got != "No address set. Please provide a shipping address before checkout." {
		t.Errorf("checkout(no address) = %q", got)
	}
	var carts int64
	f.db.Model(&Cart{}).Count(&carts)
	if carts != 1 {
		t.Errorf("failed checkout touched the cart: %d rows", carts)
	}

	f.call(t, "set_address", map[string]any{"user_id": "bob@example.com", "address": "1 Elm St"})
	if got := f.call(t, "checkout", map[string]any{"user_id": "bob@example.com"}); got != "Your cart is empty." {
		t.Errorf("checkout(empty) = %q", got)
	}
	var orders int64
	f.db.Model(&Order{}).Count(&orders)
	if orders != 0 {
		t.Errorf("preconditions created %d orders", orders)
	}
}

func TestCheckoutPlacesOrder(t *testing.T) {
	f := newFixture(t)
	f.call(t, "set_address", map[string]any{"user_id": priya, "address": "123 Main St, Springfield, 90210"})
	f.call(t, "set_address", map[string]any{"user_id": priya, "address": "Second address"})
	f.call(t, "add_to_cart", map[string]any{"user_id": priya, "product_id": "p1", "quantity": float64(2)})
	f.call(t, "add_to_cart", map[string]any{"user_id": priya, "product_id": "p4"})
	f.call(t, "add_to_cart", map[string]any{"user_id": priya, "product_id": "zz"})

	msg := f.call(t, "checkout", map[string]any{"user_id": priya}).(string)
	ref, ok := strings.CutPrefix(msg, "Order placed! Your order ID is ")
	if !ok {
		t.Fatalf("checkout = %q", msg)
	}
	ref = strings.TrimSuffix(ref, ".")

	var order Order
	if err := f.db.Preload("Items").Where("reference = ?", ref).First(&order).Error; err != nil {
		t.Fatalf("order with returned reference: %v", err)
	}
	if order.Status != "Processing" || order.Address != "123 Main St, Springfield, 90210" {
		t.Errorf("order = %+v", order)
	}
	if len(order.Items) != 2 {
		t.Errorf("expected 2 items (unknown product dropped), got %d", len(order.Items))
	}
	if order.Total.StringFixed(2) != "229.97" {
		t.Errorf("total = %s, want 229.97", order.Total)
	}

	var carts int64
	f.db.Model(&Cart{}).Count(&carts)
	if carts != 0 {
		t.Errorf("cart not cleared: %d rows", carts)
	}
	if got := f.catalog.CheckStock("p1").Stock; got != 8 {
		t.Errorf("p1 stock = %d, want 8", got)
	}

	// The address on the order is a snapshot.
	f.call(t, "set_user_address", map[string]any{"user_id": priya, "address": "Moved"})
	f.db.First(&order, order.ID)
	if order.Address != "123 Main St, Springfield, 90210" {
		t.Errorf("order address changed to %q", order.Address)
	}

	want := "Order " + ref + " for priya@example.com is currently: Processing"
	if got := f.call(t, "check_order_status", map[string]any{"order_id": ref}); got != want {
		t.Errorf("check_order_status(ref) = %q, want %q", got, want)
	}
	if got := f.call(t, "check_order_status", map[string]any{"order_id": float64(order.ID)}); got != "Order 1 for priya@example.com is currently: Processing" {
		t.Errorf("check_order_status(id) = %q", got)
	}

	history := f.call(t, "get_order_history", map[string]any{"user_id": priya}).([]OrderSummary)
	if len(history) != 1 || history[0].Reference != ref || history[0].CreatedAt == "" {
		t.Errorf("history = %+v", history)
	}

	if dup := f.call(t, "is_duplicate_order", map[string]any{"user_id": priya, "product_id": "p4"}); dup != true {
		t.Error("is_duplicate_order(p4) = false")
	}
	if dup := f.call(t, "is_duplicate_order", map[string]any{"user_id": priya, "product_id": "p3"}); dup != false {
		t.Error("is_duplicate_order(p3) = true")
	}
}

func TestCheckOrderStatusNotFound(t *testing.T) {
	f := newFixture(t)
	for _, id := range []any{"abc", "999", "7c9e6679-7425-40de-944b-e07fc1f90ae7", ""} {
		if got := f.call(t, "check_order_status", map[string]any{"order_id": id}); got != "Order not found." {
			t.Errorf("check_order_status(%v) = %q", id, got)
		}
	}
	if h := f.call(t, "get_order_history", map[string]any{"user_id": "ghost@example.com"}).([]OrderSummary); len(h) != 0 {
		t.Errorf("unknown user history = %v", h)
	}
}

func TestSessionSlots(t *testing.T) {
	f := newFixture(t)
	base := map[string]any{"user_id": priya, "session_id": "priya_session_1"}
	with := func(kv ...string) map[string]any {
		m := map[string]any{}
		for k, v := range base {
			m[k] = v
		}
		for i := 0; i+1 < len(kv); i += 2 {
			m[kv[i]] = kv[i+1]
		}
		return m
	}

	if got := f.call(t, "get_session_slot", with("slot", "size")); got != "Not set" {
		t.Errorf("empty slot = %q", got)
	}
	f.call(t, "set_session_slot", with("slot", "size", "value", "30"))
	f.call(t, "set_session_slot", with("slot", "size", "value", "32"))
	if got := f.call(t, "get_session_slot", with("slot", "size")); got != "32" {
		t.Errorf("size slot = %q", got)
	}
	if got := f.call(t, "set_session_slot", with("slot", "mood", "value", "x")); !strings.HasPrefix(got.(string), "Unknown session slot") {
		t.Errorf("bad slot = %q", got)
	}

	other := f.call(t, "get_session_slot", map[string]any{"user_id": priya, "session_id": "other", "slot": "size"})
	if other != "Not set" {
		t.Errorf("slots leaked across sessions: %q", other)
	}

	f.call(t, "clear_session", base)
	if got := f.call(t, "get_session_slot", with("slot", "size")); got != "Not set" {
		t.Errorf("slot after clear = %q", got)
	}
}

func TestCatalogTools(t *testing.T) {
	f := newFixture(t)
	if got := f.call(t, "check_delivery_date", map[string]any{"product_id": "p1", "zip_code": "90210"}); got != "Estimated delivery for p1 to 90210: 3-5 business days." {
		t.Errorf("check_delivery_date = %q", got)
	}
	stock := f.call(t, "check_stock", map[string]any{"product_id": "p2"}).(catalog.StockLevel)
	if stock.Stock != 0 {
		t.Errorf("p2 stock = %d", stock.Stock)
	}
	recs := f.call(t, "recommend_products", map[string]any{
		"user_profile": map[string]any{"brands": []any{"Nike", "Zara"}},
	}).([]catalog.Product)
	if len(recs) != 2 || recs[0].ID != "p2" || recs[1].ID != "p3" {
		t.Errorf("recommend_products = %+v", recs)
	}
	if list := f.call(t, "get_product_list", nil).([]catalog.Product); len(list) != 5 {
		t.Errorf("get_product_list returned %d products", len(list))
	}
}
