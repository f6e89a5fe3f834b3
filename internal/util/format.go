package util //nolint:revive // package name util hosts shared formatting helpers used across HTTP templates

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Placeholder is shown for values the backend did not send.
const Placeholder = "—"

// dateLayouts are the timestamp shapes the hospital API is known to send.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DisplayValue renders a decoded JSON value as text.
// Lists of scalars are joined with commas; objects render as an empty placeholder.
func DisplayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return Placeholder
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return s
		}
		return Placeholder
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := DisplayValue(item); s != Placeholder {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return Placeholder
		}
		return strings.Join(parts, ", ")
	default:
		return Placeholder
	}
}

// ParseTime parses a backend timestamp. The zero time is returned for anything else.
func ParseTime(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate renders a backend timestamp as a calendar date, e.g. "Mar 4, 2025".
// Values that are not timestamps fall back to DisplayValue.
func FormatDate(v any) string {
	t := ParseTime(v)
	if t.IsZero() {
		return DisplayValue(v)
	}
	return t.Format("Jan 2, 2006")
}

// FormatISODate renders a timestamp as YYYY-MM-DD, the shape date inputs and the
// registration endpoint expect. Unparseable values are returned trimmed.
func FormatISODate(v any) string {
	t := ParseTime(v)
	if t.IsZero() {
		s, _ := v.(string)
		return strings.TrimSpace(s)
	}
	return t.Format("2006-01-02")
}

// Count renders the length of a list, or the placeholder for non-lists.
func Count(v any) string {
	if items, ok := v.([]any); ok {
		return strconv.Itoa(len(items))
	}
	return Placeholder
}
