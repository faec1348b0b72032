package agents

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/tools"
)

const priya = "priya@example.com"

func newTestOrchestrator(t *testing.T) *Orchestrator {
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

	fc, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := fc.CheckTools(reg); err != nil {
		t.Fatalf("CheckTools: %v", err)
	}
	return NewOrchestrator(fc, reg, NewDirectResponder(reg))
}

func TestLoadDefault(t *testing.T) {
	fc, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fc.Team.Mode != "route" || fc.Team.Fallback != "shopping" {
		t.Errorf("team = %+v", fc.Team)
	}
	var ids []string
	for _, a := range fc.Agents {
		ids = append(ids, a.ID)
	}
	if !reflect.DeepEqual(ids, []string{"user_profile", "shopping", "coffee"}) {
		t.Errorf("agents = %v", ids)
	}
	shopping, _ := fc.Agent("shopping")
	if !shopping.HasTool("checkout") || shopping.HasTool("order_coffee") {
		t.Errorf("shopping tools = %v", shopping.Tools)
	}
}

func TestLoadFile(t *testing.T) {
	yaml := `
team:
  id: t
  mode: route
agents:
  - id: solo
    name: Solo
    tools: [get_address]
`
	path := filepath.Join(t.TempDir(), "agents.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	fc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fc.Team.Fallback != "solo" {
		t.Errorf("fallback defaults to first agent, got %q", fc.Team.Fallback)
	}

	if err := fc.CheckTools(tools.NewRegistry()); err == nil || !strings.Contains(err.Error(), "solo/get_address") {
		t.Errorf("CheckTools = %v", err)
	}
}

func TestParseRejectsBadConfig(t *testing.T) {
	tests := map[string]string{
		"no agents": "team: {id: t}\n",
		"duplicate": "agents:\n  - id: a\n  - id: a\n",
		"fallback":  "team: {fallback: zz}\nagents:\n  - id: a\n",
		"no id":     "agents:\n  - name: x\n",
	}
	for name, doc := range tests {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestRenderInstructions(t *testing.T) {
	got := RenderInstructions([]string{"Current User ID: {current_user_id}", "Current Session ID: {current_session_id}"}, priya, "priya_session_1")
	want := []string{"Current User ID: priya@example.com", "Current Session ID: priya_session_1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RenderInstructions = %v", got)
	}
}

func TestKeywordRouter(t *testing.T) {
	fc, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tests := []struct {
		input string
		want  string
	}{
		{"I'd love a latte", "coffee"},
		{"Please update my address", "user_profile"},
		{"Show me some jeans", "shopping"},
		{"hello", "shopping"},
		{"order_coffee coffee_id=c1", "coffee"},
		{"set_user_address address=Home", "user_profile"},
		{"set_address address=Home", "shopping"},
	}
	for _, tt := range tests {
		if got := KeywordRouter(Turn{Input: tt.input}, fc); got != tt.want {
			t.Errorf("KeywordRouter(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseArgs(t *testing.T) {
	got, err := parseArgs(`address="123 Main St, Springfield" quantity=2`)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if got["address"] != "123 Main St, Springfield" || got["quantity"] != "2" {
		t.Errorf("parseArgs = %v", got)
	}

	got, err = parseArgs(`{"user_profile": {"colors": ["blue"]}}`)
	if err != nil {
		t.Fatalf("parseArgs(json): %v", err)
	}
	if _, ok := got["user_profile"].(map[string]any); !ok {
		t.Errorf("parseArgs(json) = %v", got)
	}

	for _, bad := range []string{`address="open`, `justaword`, `{bad json`} {
		if _, err := parseArgs(bad); err == nil {
			t.Errorf("parseArgs(%q) succeeded", bad)
		}
	}
}

func TestOrchestratorConversation(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()
	turn := func(input string) *Reply {
		t.Helper()
		r, err := o.Handle(ctx, Turn{UserID: priya, SessionID: "priya_session_1", Input: input})
		if err != nil {
			t.Fatalf("Handle(%q): %v", input, err)
		}
		return r
	}

	r := turn(`set_user_address address="123 Main St" user_id=someone@else.com`)
	if r.Agent != "user_profile" || r.Text != "Address updated to 123 Main St." {
		t.Errorf("address turn = %+v", r)
	}

	r = turn("add_to_cart product_id=p1 quantity=2")
	if r.Agent != "shopping" || r.Text != "Added 2 of p1 to priya@example.com's cart." {
		t.Errorf("cart turn = %+v", r)
	}

	r = turn("checkout")
	if !strings.HasPrefix(r.Text, "Order placed! Your order ID is ") {
		t.Errorf("checkout turn = %+v", r)
	}

	r = turn("order_coffee coffee_id=c2 size=large")
	want := "Ordered a large Latte for priya@example.com, to be delivered to 123 Main St, paid with No payment method set."
	if r.Agent != "coffee" || r.Text != want {
		t.Errorf("coffee turn = %+v", r)
	}

	r = turn("set_session_slot slot=size value=32")
	if r.Text != "Session size set to 32" {
		t.Errorf("session turn = %+v", r)
	}

	r = turn("check_stock product_id=p1")
	if r.Text != `{"product_id":"p1","stock":8}` {
		t.Errorf("stock turn = %+v", r)
	}

	r = turn("add_to_cart")
	if r.Text != "Please provide product_id." {
		t.Errorf("missing arg turn = %+v", r)
	}

	r = turn("hello there")
	if r.Agent != "shopping" || !strings.HasPrefix(r.Text, "Concierge Shopping Agent can run: ") {
		t.Errorf("help turn = %+v", r)
	}
}

func TestOrchestratorCustomRouter(t *testing.T) {
	o := newTestOrchestrator(t).WithRouter(func(Turn, *FileConfig) string { return "coffee" })
	r, err := o.Handle(context.Background(), Turn{UserID: priya, Input: "checkout"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if r.Agent != "coffee" || r.Text != "Coffee Agent cannot run checkout." {
		t.Errorf("reply = %+v", r)
	}

	o.WithRouter(func(Turn, *FileConfig) string { return "nobody" })
	if _, err := o.Handle(context.Background(), Turn{UserID: priya, Input: "x"}); err == nil {
		t.Error("expected routing error for unknown agent")
	}
}
