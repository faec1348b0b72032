package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/tools"
)

var ErrUnbalancedQuote = errors.New("unbalanced quote")

// DirectResponder treats the input as a tool call: `tool key=value ...` or
// `tool {"key": "value"}`. Only the selected agent's tools are callable and
// user_id is always the turn's user.
type DirectResponder struct {
	registry *tools.Registry
}

func NewDirectResponder(reg *tools.Registry) *DirectResponder {
	return &DirectResponder{registry: reg}
}

func (d *DirectResponder) Respond(ctx context.Context, req Request) (string, error) {
	name, rest := splitCommand(req.Turn.Input)
	if name == "" || !req.Agent.HasTool(name) {
		if _, ok := d.registry.Get(name); ok {
			return fmt.Sprintf("%s cannot run %s.", req.Agent.Name, name), nil
		}
		return help(req), nil
	}

	args, err := parseArgs(rest)
	if err != nil {
		return fmt.Sprintf("Could not read arguments: %v.", err), nil
	}
	args["user_id"] = req.Turn.UserID
	if _, ok := args["session_id"]; !ok && req.Turn.SessionID != "" {
		args["session_id"] = req.Turn.SessionID
	}

	result, err := d.registry.Execute(ctx, name, args)
	switch {
	case errors.Is(err, tools.ErrMissingArgument):
		return fmt.Sprintf("Please provide %s.", errDetail(err)), nil
	case errors.Is(err, tools.ErrInvalidArgument):
		return fmt.Sprintf("Invalid argument: %s.", errDetail(err)), nil
	case err != nil:
		return "", err
	}
	return FormatResult(result)
}

// FormatResult renders a tool result as reply text.
func FormatResult(result any) (string, error) {
	if s, ok := result.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode tool result: %w", err)
	}
	return string(b), nil
}

func help(req Request) string {
	names := make([]string, 0, len(req.Tools))
	for _, t := range req.Tools {
		names = append(names, t.Name)
	}
	return fmt.Sprintf("%s can run: %s. Use `tool key=value`.", req.Agent.Name, strings.Join(names, ", "))
}

func errDetail(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

func splitCommand(input string) (string, string) {
	input = strings.TrimSpace(input)
	i := strings.IndexFunc(input, unicode.IsSpace)
	if i < 0 {
		return input, ""
	}
	return input[:i], strings.TrimSpace(input[i:])
}

// parseArgs accepts a JSON object or space-separated key=value pairs where
// values may be double-quoted.
func parseArgs(s string) (map[string]any, error) {
	args := map[string]any{}
	if s == "" {
		return args, nil
	}
	if strings.HasPrefix(s, "{") {
		if err := json.Unmarshal([]byte(s), &args); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return args, nil
	}

	tokens, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", tok)
		}
		args[key] = value
	}
	return args, nil
}

func tokenize(s string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case unicode.IsSpace(r) && !inQuote:
			if started {
				tokens = append(tokens, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, ErrUnbalancedQuote
	}
	if started {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}
