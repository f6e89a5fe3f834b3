// Package core provides the template helpers every page relies on.
package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"strconv"
	"strings"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"friendlyTime": friendlyTime,
		"slice":        func(nums ...int) []int { return nums },
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"contains":     strings.Contains,
		"formatNumber": FormatNumber,
		"badgeClass":   BadgeClass,
		"truncateText": TruncateText,
		"initials":     Initials,
		"fieldError":   FieldError,
		"formValue":    FormValue,
		"dict":         Dict,
		"seq":          Seq,
		"parentPath":   ParentPath,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during execution.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// FormatNumber formats an integer with comma separators for thousands.
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var b strings.Builder
	prefix := len(s) % 3
	if prefix == 0 {
		prefix = 3
	}
	b.WriteString(s[:prefix])
	for i := prefix; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// BadgeClass maps urgency and status values reported by the hospital API to badge styles.
func BadgeClass(value string) string {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), " ", "")) {
	case "critical", "stat", "cancelled", "no":
		return "badge-danger"
	case "high", "urgent", "pending":
		return "badge-warning"
	case "medium", "assigned", "inprogress", "intreatment":
		return "badge-info"
	case "completed", "yes", "normal", "low":
		return "badge-success"
	default:
		return "badge-light"
	}
}

// FieldError returns the message for field in a map of field errors, tolerating a nil map.
func FieldError(errs any, field string) string {
	m, ok := errs.(map[string]string)
	if !ok {
		return ""
	}
	return m[field]
}

// FormValue returns the submitted or prefilled value of a form field, tolerating a nil map.
func FormValue(form any, field string) string {
	switch m := form.(type) {
	case map[string]string:
		return m[field]
	case map[string]any:
		if v, ok := m[field].(string); ok {
			return v
		}
	}
	return ""
}

// Dict builds a map from alternating key/value arguments so partials can receive
// more than one value.
func Dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict requires an even number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

// Seq returns 0..n-1 for ranging a fixed number of form rows.
func Seq(n int) []int {
	if n < 0 {
		n = 0
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// ParentPath drops the last segment of a URL path: "/a/b/c" becomes "/a/b".
func ParentPath(p string) string {
	p = strings.TrimSuffix(p, "/")
	i := strings.LastIndex(p, "/")
	if i <= 0 {
		return "/"
	}
	return p[:i]
}
