package utils

import (
	"strconv"
	"strings"
)

// Float coerces a decoded JSON or CSV value to float64. Missing, nil, or
// unparsable values coerce to def rather than failing the record.
func Float(v any, def float64) float64 {
	switch val := v.(type) {
	case nil:
		return def
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return def
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return def
	case bool:
		if val {
			return 1
		}
		return 0
	default:
		return def
	}
}

// String coerces a decoded value to its string form; nil becomes def.
func String(v any, def string) string {
	switch val := v.(type) {
	case nil:
		return def
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return def
	}
}

// NormalizeHeader lower-cases a CSV header and replaces spaces with
// underscores so CSV columns line up with the raw-input field names.
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	h = strings.ReplaceAll(h, `"`, "")
	return strings.ReplaceAll(h, " ", "_")
}
