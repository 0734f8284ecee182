package modules

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-faster/errors"
)

// ParamError reports a single argument that does not match its schema.
type ParamError struct {
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %q: %s", e.Param, e.Reason)
}

// ValidateParams checks params against schema and returns a shallow copy
// the caller may modify. Required parameters must be present and non-empty.
// Declared parameters must match their type and enum. Undeclared parameters
// pass through unchecked.
func ValidateParams(schema InputSchema, params map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}

	var missing []string
	for _, key := range schema.Required {
		if isEmpty(out[key]) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("missing required parameter(s): %s", strings.Join(missing, ", "))
	}

	// Sorted so the reported error is stable when several are wrong.
	keys := make([]string, 0, len(out))
	for k := range out {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := out[key]
		prop, declared := schema.Properties[key]
		if !declared || val == nil {
			continue
		}
		if err := checkType(key, val, prop.Type); err != nil {
			return nil, err
		}
		if err := checkEnum(key, val, prop.Enum); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func isEmpty(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}

// typeChecks maps a JSON Schema type to a predicate over decoded JSON.
// Unknown or empty types are not checked.
var typeChecks = map[string]func(any) bool{
	"string":  func(v any) bool { _, ok := v.(string); return ok },
	"number":  func(v any) bool { _, ok := v.(float64); return ok },
	"integer": func(v any) bool { _, ok := v.(float64); return ok },
	"boolean": func(v any) bool { _, ok := v.(bool); return ok },
	"array":   func(v any) bool { _, ok := v.([]interface{}); return ok },
	"object":  func(v any) bool { _, ok := v.(map[string]interface{}); return ok },
}

func checkType(key string, val any, typ string) error {
	check, known := typeChecks[typ]
	if !known {
		return nil
	}
	if !check(val) {
		return &ParamError{Param: key, Reason: fmt.Sprintf("expected %s, got %T", typ, val)}
	}
	if f, ok := val.(float64); ok && typ == "integer" && f != math.Trunc(f) {
		return &ParamError{Param: key, Reason: fmt.Sprintf("expected integer, got %v", f)}
	}
	return nil
}

func checkEnum(key string, val any, allowed []string) error {
	s, ok := val.(string)
	if !ok || len(allowed) == 0 {
		return nil
	}
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}
	return &ParamError{Param: key, Reason: fmt.Sprintf("must be one of %s, got %q", strings.Join(allowed, ", "), s)}
}
