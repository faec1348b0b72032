package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/tools"
)

// Turn is one user utterance in a conversation.
type Turn struct {
	UserID    string
	SessionID string
	Input     string
}

// Reply is what the selected agent answered.
type Reply struct {
	Agent string `json:"agent"`
	Text  string `json:"text"`
}

// Request is handed to a Responder once an agent is selected.
type Request struct {
	Turn         Turn
	Agent        *AgentConfig
	Instructions []string
	Tools        []*tools.Definition
}

// Responder produces the agent's answer. An LLM framework plugs in here;
// DirectResponder is the bundled deterministic one.
type Responder interface {
	Respond(ctx context.Context, req Request) (string, error)
}

// RouterFunc picks the member agent id for a turn.
type RouterFunc func(turn Turn, fc *FileConfig) string

// Orchestrator routes each turn to exactly one member agent.
type Orchestrator struct {
	config    *FileConfig
	registry  *tools.Registry
	responder Responder
	router    RouterFunc
}

func NewOrchestrator(fc *FileConfig, reg *tools.Registry, responder Responder) *Orchestrator {
	return &Orchestrator{config: fc, registry: reg, responder: responder, router: KeywordRouter}
}

// WithRouter replaces the default keyword router.
func (o *Orchestrator) WithRouter(fn RouterFunc) *Orchestrator {
	o.router = fn
	return o
}

func (o *Orchestrator) Config() *FileConfig { return o.config }

func (o *Orchestrator) Registry() *tools.Registry { return o.registry }

// Route returns the agent a turn would be handed to.
func (o *Orchestrator) Route(turn Turn) (*AgentConfig, error) {
	id := o.router(turn, o.config)
	if id == "" {
		id = o.config.Team.Fallback
	}
	return o.config.Agent(id)
}

func (o *Orchestrator) Handle(ctx context.Context, turn Turn) (*Reply, error) {
	start := time.Now()
	agent, err := o.Route(turn)
	if err != nil {
		return nil, fmt.Errorf("team %q: routing: %w", o.config.Team.ID, err)
	}

	defs := make([]*tools.Definition, 0, len(agent.Tools))
	for _, name := range agent.Tools {
		if def, ok := o.registry.Get(name); ok {
			defs = append(defs, def)
		}
	}
	req := Request{
		Turn:         turn,
		Agent:        agent,
		Instructions: RenderInstructions(agent.Instructions, turn.UserID, turn.SessionID),
		Tools:        defs,
	}

	text, err := o.responder.Respond(ctx, req)
	if err != nil {
		slog.Error("agent failed", "agent", agent.ID, "user_id", turn.UserID, "error", err.Error())
		return nil, fmt.Errorf("team %q: agent %q: %w", o.config.Team.ID, agent.ID, err)
	}
	slog.Info("turn handled", "action", "chat", "agent", agent.ID, "user_id", turn.UserID,
		"session_id", turn.SessionID, "latency_ms", time.Since(start).Milliseconds())
	return &Reply{Agent: agent.ID, Text: text}, nil
}

// KeywordRouter scores each agent by keyword hits in the input. Naming one of
// an agent's tools outweighs any keyword. Ties go to the earlier agent; no
// hits at all go to the team fallback.
func KeywordRouter(turn Turn, fc *FileConfig) string {
	input := strings.ToLower(turn.Input)
	first := ""
	if fields := strings.Fields(input); len(fields) > 0 {
		first = fields[0]
	}

	bestID, bestScore := fc.Team.Fallback, 0
	for i := range fc.Agents {
		a := &fc.Agents[i]
		score := 0
		if first != "" && a.HasTool(first) {
			score += 100
		}
		for _, kw := range a.Keywords {
			if strings.Contains(input, strings.ToLower(kw)) {
				score++
			}
		}
		if score > bestScore {
			bestID, bestScore = a.ID, score
		}
	}
	return bestID
}
