package database

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/models"
)

func TestOpenUnsupportedDriver(t *testing.T) {
	if _, err := Open(&config.Config{DBDriver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct{ in, want string }{
		{"shopping.db", "shopping.db?_foreign_keys=on&_busy_timeout=5000"},
		{"file:x.db?cache=shared", "file:x.db?cache=shared&_foreign_keys=on&_busy_timeout=5000"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.in); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMigrateShared(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := MigrateShared(db); err != nil {
		t.Fatalf("MigrateShared: %v", err)
	}
	for _, m := range models.Shared() {
		if !db.Migrator().HasTable(m) {
			t.Errorf("table for %T missing", m)
		}
	}
	if err := MigrateModels(db, nil); err != nil {
		t.Errorf("MigrateModels(nil) = %v", err)
	}
}

func TestPingWithoutConnection(t *testing.T) {
	saved := DB
	DB = nil
	defer func() { DB = saved }()
	if err := Ping(); err == nil {
		t.Error("Ping should fail before Connect")
	}
	if err := Close(); err != nil {
		t.Errorf("Close before Connect = %v", err)
	}
}
