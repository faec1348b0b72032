package coffee

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps/profile"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/tools"
	"gorm.io/gorm"
)

const priya = "priya@example.com"

func newTestRegistry(t *testing.T) (*tools.Registry, *gorm.DB) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := database.MigrateShared(db); err != nil {
		t.Fatalf("MigrateShared: %v", err)
	}
	prof := profile.New(db)
	reg := tools.NewRegistry()
	prof.RegisterTools(reg)
	New(db, prof.Service()).RegisterTools(reg)
	return reg, db
}

func call(t *testing.T, reg *tools.Registry, name string, args map[string]any) any {
	t.Helper()
	out, err := reg.Execute(context.Background(), name, args)
	if err != nil {
		t.Fatalf("%s(%v): %v", name, args, err)
	}
	return out
}

func TestOrderCoffeeFallbacks(t *testing.T) {
	reg, db := newTestRegistry(t)

	got := call(t, reg, "order_coffee", map[string]any{"user_id": priya, "coffee_id": "c2"})
	want := "Ordered a medium Latte for priya@example.com, to be delivered to No address set, paid with No payment method set."
	if got != want {
		t.Errorf("order_coffee = %q, want %q", got, want)
	}

	var n int64
	db.Model(&models.User{}).Count(&n)
	if n != 1 {
		t.Errorf("order_coffee should create the user, got %d users", n)
	}
}

func TestOrderCoffeeUsesFirstAddressAndPayment(t *testing.T) {
	reg, _ := newTestRegistry(t)
	call(t, reg, "set_address", map[string]any{"user_id": priya, "address": "123 Main St"})
	call(t, reg, "set_address", map[string]any{"user_id": priya, "address": "Office"})
	call(t, reg, "set_payment_method", map[string]any{"user_id": priya, "method": "Visa ending 5678"})

	got := call(t, reg, "order_coffee", map[string]any{"user_id": priya, "coffee_id": "c1", "size": "large"})
	want := "Ordered a large Espresso for priya@example.com, to be delivered to 123 Main St, paid with Visa ending 5678."
	if got != want {
		t.Errorf("order_coffee = %q, want %q", got, want)
	}
}

func TestOrderCoffeeUnavailable(t *testing.T) {
	reg, db := newTestRegistry(t)

	if got := call(t, reg, "order_coffee", map[string]any{"user_id": priya, "coffee_id": "c9"}); got != "Sorry, that coffee is not available." {
		t.Errorf("order_coffee(c9) = %q", got)
	}
	var n int64
	db.Model(&models.User{}).Count(&n)
	if n != 1 {
		t.Errorf("user should be created before the menu lookup, got %d", n)
	}

	if got := call(t, reg, "order_coffee", map[string]any{"user_id": priya, "coffee_id": "c4", "size": "small"}); got != "Sorry, Cold Brew is not available in small." {
		t.Errorf("order_coffee(c4 small) = %q", got)
	}
}

func TestCoffeePreferences(t *testing.T) {
	reg, _ := newTestRegistry(t)
	args := map[string]any{"user_id": priya, "key": "milk"}

	if got := call(t, reg, "get_coffee_pref", args); got != "Not set" {
		t.Errorf("get_coffee_pref = %q", got)
	}
	if got := call(t, reg, "set_coffee_pref", map[string]any{"user_id": priya, "key": "milk", "value": "oat"}); got != "Coffee preference milk set to oat" {
		t.Errorf("set_coffee_pref = %q", got)
	}
	call(t, reg, "set_coffee_pref", map[string]any{"user_id": priya, "key": "milk", "value": "whole"})
	if got := call(t, reg, "get_coffee_pref", args); got != "oat" {
		t.Errorf("get_coffee_pref = %q, want first value", got)
	}
	// Coffee preferences share the preference table.
	if got := call(t, reg, "get_preference", args); got != "oat" {
		t.Errorf("get_preference = %q", got)
	}
}

func TestMenu(t *testing.T) {
	reg, _ := newTestRegistry(t)
	menu := call(t, reg, "get_coffee_menu", nil).([]catalog.Coffee)
	if len(menu) != 4 || menu[3].Name != "Cold Brew" {
		t.Errorf("menu = %+v", menu)
	}
}
