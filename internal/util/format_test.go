package util //nolint:revive // matches package name

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, Placeholder},
		{"blank string", "  ", Placeholder},
		{"string", " Abebe ", "Abebe"},
		{"true", true, "Yes"},
		{"false", false, "No"},
		{"integral float", 42.0, "42"},
		{"fraction", 36.6, "36.6"},
		{"json number", json.Number("7"), "7"},
		{"list", []any{"Amoxicillin", nil, 500.0}, "Amoxicillin, 500"},
		{"empty list", []any{}, Placeholder},
		{"object", map[string]any{"a": 1}, Placeholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayValue(tt.in))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mar 4, 2025", FormatDate("2025-03-04T10:15:00.000Z"))
	assert.Equal(t, "Mar 4, 2025", FormatDate("2025-03-04"))
	assert.Equal(t, "tomorrow", FormatDate("tomorrow"))
	assert.Equal(t, Placeholder, FormatDate(nil))
}

func TestFormatISODate(t *testing.T) {
	assert.Equal(t, "1990-05-01", FormatISODate("1990-05-01T00:00:00.000Z"))
	assert.Equal(t, "01/05/1990", FormatISODate(" 01/05/1990 "))
	assert.Empty(t, FormatISODate(nil))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "2", Count([]any{1, 2}))
	assert.Equal(t, Placeholder, Count("x"))
}
