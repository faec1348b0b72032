// Package tools is the callable surface exposed to the agent framework.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

var (
	ErrUnknownTool     = errors.New("unknown tool")
	ErrMissingArgument = errors.New("missing required argument")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Definition describes a callable tool.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
	Handler     Handler        `json:"-"`
}

// Handler returns a string, a mapping, or a list of mappings.
type Handler func(ctx context.Context, args Args) (any, error)

// Registry holds tool definitions by name. Names are global across plugins.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Definition
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Definition)}
}

// Register adds a tool definition. A second registration under one name replaces the first.
func (r *Registry) Register(def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[def.Name]; exists {
		slog.Warn("tool re-registered", "tool", def.Name)
	}
	r.tools[def.Name] = def
}

func (r *Registry) Get(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.tools[name]
	return def, ok
}

// List returns all registered tools sorted by name.
func (r *Registry) List() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Definition, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted tool names.
func (r *Registry) Names() []string {
	defs := r.List()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

// Execute runs a tool by name and logs the call with its latency.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	def, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	start := time.Now()
	result, err := def.Handler(ctx, Args(args))
	latency := time.Since(start).Milliseconds()

	attrs := []any{"action", name, "latency_ms", latency}
	if email, ok := args["user_id"].(string); ok {
		attrs = append(attrs, "user_id", email)
	}
	switch {
	case errors.Is(err, ErrMissingArgument), errors.Is(err, ErrInvalidArgument):
		slog.Warn("tool call rejected", append(attrs, "error", err.Error())...)
	case err != nil:
		slog.Error("tool call failed", append(attrs, "error", err.Error())...)
	default:
		slog.Info("tool call", attrs...)
	}
	return result, err
}
