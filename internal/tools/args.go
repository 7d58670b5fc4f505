package tools

import (
	"fmt"
	"strconv"
)

// Args is the raw argument mapping of one tool call, as decoded from JSON.
type Args map[string]any

// String returns the string value of key, or "" when absent or not a string.
func (a Args) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// ID returns the value of key rendered as an identifier string. Numeric IDs
// (JSON numbers) are accepted and formatted without a fractional part.
func (a Args) ID(key string) string {
	switch v := a[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// Int returns the integer value of key, or def when the key is absent. An
// explicit 0 stays 0.
func (a Args) Int(key string, def int) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// Bool returns the boolean value of key, or def when absent or not a bool.
func (a Args) Bool(key string, def bool) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return def
}

// truthy reports whether a value should make it into a filter: present and
// neither empty, zero, false, nor null.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

// MissingArgumentError reports a required tool argument that was not
// supplied. It is rendered directly to the caller, without the generic
// error prefix, and never causes a network call.
type MissingArgumentError struct {
	Tool     string
	Argument string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s requires the %q argument", e.Tool, e.Argument)
}
