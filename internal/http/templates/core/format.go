package core

import (
	"strings"
	"time"
)

const friendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"

func friendlyTime(ts any) string {
	var t time.Time
	switch v := ts.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v != nil {
			t = *v
		}
	}
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(friendlyDateTimeLayout)
}

// TruncateText shortens s to maxLen runes, the last being an ellipsis. A non-positive
// maxLen leaves s alone.
func TruncateText(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:maxLen-1])) + "…"
}

// Initials returns up to two upper-case initials for the avatar in the shell header,
// or "?" for a blank name.
func Initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(part))[0])
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}
