package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/models"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	))

	logger.Info("cart updated", "product_id", "p1")
	logger.Error("checkout failed")

	if !strings.Contains(a.String(), "cart updated") || !strings.Contains(a.String(), "checkout failed") {
		t.Errorf("info handler missed records: %q", a.String())
	}
	if strings.Contains(b.String(), "cart updated") {
		t.Errorf("error handler received info record: %q", b.String())
	}
	if !strings.Contains(b.String(), "checkout failed") {
		t.Errorf("error handler missed error record: %q", b.String())
	}
}

func TestDBHandlerPersistsErrors(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := db.AutoMigrate(&models.SystemLog{}); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	h := NewDBHandler(db)
	if h.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("DBHandler should ignore WARN")
	}

	logger := slog.New(h).With("email", "priya@example.com")
	logger.Error("tool failed", "action", "checkout", "latency_ms", int64(12), "error", "boom", "product_id", "p4")
	h.Stop()

	var logs []models.SystemLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	got := logs[0]
	if got.Action != "checkout" || got.UserEmail != "priya@example.com" || got.LatencyMs != 12 || got.Error != "boom" {
		t.Errorf("unexpected log row: %+v", got)
	}
	if !strings.Contains(string(got.Extra), "p4") {
		t.Errorf("extra = %s, want product_id", got.Extra)
	}

	if n := PurgeOlderThan(db, time.Now().Add(time.Hour)); n != 1 {
		t.Errorf("PurgeOlderThan deleted %d, want 1", n)
	}
}
