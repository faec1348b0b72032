package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/agents"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/database"
)

func newTestREPL(t *testing.T, input string) (*REPL, *bytes.Buffer) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := database.MigrateShared(db); err != nil {
		t.Fatalf("MigrateShared: %v", err)
	}
	plugins := apps.Default(db, catalog.Default())
	if err := apps.Migrate(db, plugins); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	reg := apps.Tools(plugins)
	fc, err := agents.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	orch := agents.NewOrchestrator(fc, reg, agents.NewDirectResponder(reg))

	var out bytes.Buffer
	return New(orch, "priya@example.com", "priya_session_1", strings.NewReader(input), &out), &out
}

func TestBannerAndExit(t *testing.T) {
	for _, word := range []string{"exit", "quit", "  QUIT  ", "Exit"} {
		r, out := newTestREPL(t, word+"\nget_address\n")
		if err := r.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		got := out.String()
		if !strings.HasPrefix(got, "=== Orchestrator Team Chat (as priya@example.com) ===\nType 'exit' or 'quit' to end the chat.\n") {
			t.Errorf("banner missing: %q", got)
		}
		if !strings.HasSuffix(got, "Goodbye!\n") {
			t.Errorf("%q: expected Goodbye!, got %q", word, got)
		}
		if strings.Contains(got, "No address set") {
			t.Errorf("%q: input after exit was processed", word)
		}
	}
}

func TestTurnsAreForwarded(t *testing.T) {
	r, out := newTestREPL(t, "\nset_user_pref key=style value=casual\norder_coffee coffee_id=c9\n")
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "User Profile Agent: Preference style set to casual for the user.") {
		t.Errorf("profile reply missing: %q", got)
	}
	if !strings.Contains(got, "Coffee Agent: Sorry, that coffee is not available.") {
		t.Errorf("coffee reply missing: %q", got)
	}
}

func TestSlashCommands(t *testing.T) {
	r, out := newTestREPL(t, "/help\n/agents\n/tools coffee\n/tools nobody\n/nope\nquit\n")
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"/agents", "user_profile", "order_coffee", "Error: unknown agent: nobody", "Unknown command: /nope"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunStopsOnCancelWhileWaitingForInput(t *testing.T) {
	r, out := newTestREPL(t, "")
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	r.in = pr

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()

	// Nothing is ever written to the pipe, so Run is parked on the read.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if !strings.Contains(out.String(), "You: ") {
		t.Errorf("prompt missing: %q", out.String())
	}
}

func TestRunWithCancelledContext(t *testing.T) {
	r, out := newTestREPL(t, "get_address\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if strings.Contains(out.String(), "No address set") {
		t.Errorf("turn ran after cancel: %q", out.String())
	}
}
