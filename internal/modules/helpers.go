package modules

import (
	"encoding/json"
	"fmt"
)

// ToJSON marshals any value to a JSON string.
func ToJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(b), nil
}

// ToStringSlice converts []interface{} (from MCP params) to []string.
// Non-string elements are silently skipped.
func ToStringSlice(v []interface{}) []string {
	out := make([]string, 0, len(v))
	for _, item := range v {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// String returns params[key] as a string, or "".
func String(params map[string]any, key string) string {
	s, _ := params[key].(string)
	return s
}

// Int returns params[key] as an int. JSON numbers arrive as float64.
func Int(params map[string]any, key string) (int, bool) {
	f, ok := params[key].(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Bool returns params[key] as a bool, or false.
func Bool(params map[string]any, key string) bool {
	b, _ := params[key].(bool)
	return b
}

// Has reports whether key was supplied with a non-nil value.
func Has(params map[string]any, key string) bool {
	v, ok := params[key]
	return ok && v != nil
}
