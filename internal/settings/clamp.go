// Package settings validates and persists the widget display settings.
package settings

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ClampValue coerces raw into an int and snaps it into [min, max]. Anything
// that cannot be parsed as an integer yields def. Never panics, never errors:
// a bad value must not break the widget.
func ClampValue(raw any, min, max, def int) int {
	n, ok := toInt(raw)
	if !ok {
		n = def
	}

	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// ClampJSON is ClampValue for an undecoded JSON fragment. JSON null and
// non-integer fragments yield def.
func ClampJSON(raw json.RawMessage, min, max, def int) int {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ClampValue(nil, min, max, def)
	}
	return ClampValue(v, min, max, def)
}

func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		// JSON numbers arrive as float64; truncate toward zero.
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
