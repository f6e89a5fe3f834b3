// Package validation checks submitted form values and produces the messages the
// portal's forms render next to each field.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Validator checks one value and returns a user-facing message, or "" when valid.
// Values are trimmed before checking.
type Validator func(v string) string

func lengthMessage(fieldName, v string, maxLen int) string {
	if utf8.RuneCountInString(v) > maxLen {
		return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
	}
	return ""
}

// Required rejects an empty value or one longer than maxLen runes.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		return lengthMessage(fieldName, v, maxLen)
	}
}

// Optional accepts an empty value and rejects one longer than maxLen runes.
func Optional(fieldName string, maxLen int) Validator {
	return func(v string) string {
		return lengthMessage(fieldName, strings.TrimSpace(v), maxLen)
	}
}

// RequiredRange rejects an empty value or one whose rune count is outside
// minLen..maxLen.
func RequiredRange(fieldName string, minLen, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if n := utf8.RuneCountInString(v); n < minLen || n > maxLen {
			return fmt.Sprintf("%s must be between %d and %d characters.", fieldName, minLen, maxLen)
		}
		return ""
	}
}

// Pattern rejects a non-empty value that re does not match. Pair it with Required
// when the field is mandatory.
func Pattern(fieldName string, re *regexp.Regexp) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v != "" && !re.MatchString(v) {
			return fieldName + " has an invalid format."
		}
		return ""
	}
}

// OneOf requires the value to equal one of options, ignoring case.
func OneOf(fieldName string, options []string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		for _, opt := range options {
			if strings.EqualFold(v, opt) {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(options, ", "))
	}
}

// OptionalOneOf is OneOf for a field that may be left empty.
func OptionalOneOf(fieldName string, options []string) Validator {
	oneOf := OneOf(fieldName, options)
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		return oneOf(v)
	}
}

// HTTPSURL requires an absolute http or https URL of at most maxLen runes.
func HTTPSURL(fieldName string, maxLen int) Validator {
	required := Required(fieldName, maxLen)
	return func(v string) string {
		if msg := required(v); msg != "" {
			return msg
		}
		u, err := url.Parse(strings.TrimSpace(v))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "Enter a valid http(s) URL."
		}
		return ""
	}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email requires an address of the form local@domain.tld.
func Email(fieldName string, maxLen int) Validator {
	required := Required(fieldName, maxLen)
	return func(v string) string {
		if msg := required(v); msg != "" {
			return msg
		}
		if !emailPattern.MatchString(strings.TrimSpace(v)) {
			return "Enter a valid e-mail address."
		}
		return ""
	}
}

// Date accepts an empty value or a real YYYY-MM-DD calendar date that is not in
// the future.
func Date(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return fieldName + " must be a date (YYYY-MM-DD)."
		}
		if d.After(time.Now()) {
			return fieldName + " cannot be in the future."
		}
		return ""
	}
}

// FieldValidator collects the first failing message per field.
type FieldValidator struct {
	errors map[string]string
}

// New returns an empty FieldValidator.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate runs validators against value in order and records the first message.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, check := range validators {
		if msg := check(value); msg != "" {
			fv.errors[field] = msg
			break
		}
	}
	return fv
}

// Errors returns the messages keyed by field. It is empty when everything passed.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}
