package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Args are the decoded JSON arguments of one tool call.
type Args map[string]any

// String returns a required string argument.
func (a Args) String(key string) (string, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(s), nil
	case bool:
		return strconv.FormatBool(s), nil
	}
	return "", fmt.Errorf("%w: %s must be a string", ErrInvalidArgument, key)
}

// StringOr returns an optional string argument.
func (a Args) StringOr(key, fallback string) string {
	if _, ok := a[key]; !ok {
		return fallback
	}
	s, err := a.String(key)
	if err != nil {
		return fallback
	}
	return s
}

// IntOr returns an optional integer argument. JSON numbers arrive as float64.
// Values outside the int32 range are rejected as invalid.
func (a Args) IntOr(key string, fallback int) (int, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return fallback, nil
	}
	switch n := v.(type) {
	case int:
		return boundedInt(key, int64(n))
	case int64:
		return boundedInt(key, n)
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgument, key)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidArgument, key)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgument, key)
		}
		return boundedInt(key, i)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgument, key)
		}
		return boundedInt(key, i)
	}
	return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgument, key)
}

func boundedInt(key string, i int64) (int, error) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidArgument, key)
	}
	return int(i), nil
}

// StringSlice accepts a JSON list or a comma-separated string.
func (a Args) StringSlice(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
}

// Map returns a nested object argument, or an empty Args.
func (a Args) Map(key string) Args {
	switch v := a[key].(type) {
	case map[string]any:
		return Args(v)
	case Args:
		return v
	case string:
		var m map[string]any
		if json.Unmarshal([]byte(v), &m) == nil {
			return Args(m)
		}
	}
	return Args{}
}

// UserID returns the caller's email, which every per-user tool requires.
func (a Args) UserID() (string, error) {
	s, err := a.String("user_id")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: user_id", ErrMissingArgument)
	}
	return s, nil
}

// Strings returns several required string arguments in order.
func (a Args) Strings(keys ...string) ([]string, error) {
	out := make([]string, len(keys))
	for i, k := range keys {
		s, err := a.String(k)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
