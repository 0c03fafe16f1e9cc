package mcpserver

import (
	"fmt"
	"math"
	"strings"

	"higgsfield-mcp/internal/domain"
)

// arguments validates the JSON shapes of tool arguments. Values are decoded
// from JSON, so numbers arrive as float64 and arrays as []any.
type arguments map[string]any

func argumentError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func (a arguments) requireString(key string) (string, error) {
	v, err := a.optionalString(key, "")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(v) == "" {
		return "", argumentError("%s is required", key)
	}
	return v, nil
}

func (a arguments) optionalString(key, fallback string) (string, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", argumentError("%s must be a string", key)
	}
	return v, nil
}

func (a arguments) optionalInt(key string, fallback int) (int, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, argumentError("%s must be an integer", key)
		}
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	default:
		return 0, argumentError("%s must be a number", key)
	}
}

func (a arguments) optionalBool(key string, fallback bool) (bool, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, argumentError("%s must be a boolean", key)
	}
	return v, nil
}

func (a arguments) requireStringSlice(key string) ([]string, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return nil, argumentError("%s is required", key)
	}
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, argumentError("%s[%d] must be a string", key, i)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, argumentError("%s must be an array of strings", key)
	}
}
