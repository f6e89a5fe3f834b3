package validation

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)

type validatorCase struct {
	name  string
	check Validator
	value string
	want  string
}

func runCases(t *testing.T, cases []validatorCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.check(tc.value))
		})
	}
}

func TestLengthValidators(t *testing.T) {
	runCases(t, []validatorCase{
		{name: "required ok", check: Required("First name", 10), value: "Abebe"},
		{name: "required empty", check: Required("First name", 10), value: "", want: "First name is required."},
		{name: "required blank", check: Required("First name", 10), value: "   ", want: "First name is required."},
		{name: "required at limit", check: Required("First name", 5), value: "Abebe"},
		{name: "required over limit", check: Required("First name", 4), value: "Abebe", want: "First name cannot exceed 4 characters."},
		{name: "required counts runes", check: Required("First name", 4), value: "አበበ"},
		{name: "required trims before counting", check: Required("First name", 5), value: "  Abebe  "},
		{name: "optional empty", check: Optional("Notes", 3), value: ""},
		{name: "optional over limit", check: Optional("Notes", 3), value: "abcd", want: "Notes cannot exceed 3 characters."},
		{name: "range ok", check: RequiredRange("Password", 8, 64), value: "longenough"},
		{name: "range empty", check: RequiredRange("Password", 8, 64), value: "", want: "Password is required."},
		{name: "range short", check: RequiredRange("Password", 8, 64), value: "short", want: "Password must be between 8 and 64 characters."},
		{name: "range long", check: RequiredRange("Password", 1, 3), value: "abcd", want: "Password must be between 1 and 3 characters."},
	})
}

func TestPattern(t *testing.T) {
	runCases(t, []validatorCase{
		{name: "local number", check: Pattern("Phone", phoneRe), value: "0911234567"},
		{name: "international number", check: Pattern("Phone", phoneRe), value: "+251 911 234567"},
		{name: "letters", check: Pattern("Phone", phoneRe), value: "call 0911", want: "Phone has an invalid format."},
		{name: "too short", check: Pattern("Phone", phoneRe), value: "0911", want: "Phone has an invalid format."},
		{name: "empty is left to Required", check: Pattern("Phone", phoneRe), value: ""},
		{name: "trimmed", check: Pattern("Phone", phoneRe), value: "  0911234567  "},
	})
}

func TestOneOf(t *testing.T) {
	genders := []string{"Male", "Female"}
	runCases(t, []validatorCase{
		{name: "exact", check: OneOf("Gender", genders), value: "Female"},
		{name: "case insensitive", check: OneOf("Gender", genders), value: "male"},
		{name: "trimmed", check: OneOf("Gender", genders), value: " Male "},
		{name: "unknown", check: OneOf("Gender", genders), value: "Other", want: "Gender must be one of: Male, Female"},
		{name: "empty", check: OneOf("Gender", genders), value: "", want: "Gender must be one of: Male, Female"},
		{name: "optional empty", check: OptionalOneOf("Urgency", []string{"Low", "High"}), value: ""},
		{name: "optional match", check: OptionalOneOf("Urgency", []string{"Low", "High"}), value: "high"},
		{name: "optional unknown", check: OptionalOneOf("Urgency", []string{"Low", "High"}), value: "Soon", want: "Urgency must be one of: Low, High"},
	})
}

func TestHTTPSURL(t *testing.T) {
	check := HTTPSURL("Photo URL", 40)
	runCases(t, []validatorCase{
		{name: "https", check: check, value: "https://media.example/a.png"},
		{name: "http", check: check, value: "http://media.example/a.png"},
		{name: "empty", check: check, value: "", want: "Photo URL is required."},
		{name: "too long", check: check, value: "https://media.example/" + strings.Repeat("a", 30), want: "Photo URL cannot exceed 40 characters."},
		{name: "no scheme", check: check, value: "media.example/a.png", want: "Enter a valid http(s) URL."},
		{name: "ftp", check: check, value: "ftp://media.example/a.png", want: "Enter a valid http(s) URL."},
		{name: "no host", check: check, value: "https:///a.png", want: "Enter a valid http(s) URL."},
	})
}

func TestEmail(t *testing.T) {
	runCases(t, []validatorCase{
		{name: "valid", check: Email("E-mail", 100), value: "meron@aradacare.et"},
		{name: "surrounding spaces", check: Email("E-mail", 100), value: "  meron@aradacare.et "},
		{name: "empty", check: Email("E-mail", 100), value: "", want: "E-mail is required."},
		{name: "no domain dot", check: Email("E-mail", 100), value: "meron@aradacare", want: "Enter a valid e-mail address."},
		{name: "two at signs", check: Email("E-mail", 100), value: "a@b@c.et", want: "Enter a valid e-mail address."},
		{name: "too long", check: Email("E-mail", 5), value: "a@b.et", want: "E-mail cannot exceed 5 characters."},
	})
}

func TestDate(t *testing.T) {
	check := Date("Date of birth")
	runCases(t, []validatorCase{
		{name: "empty allowed", check: check, value: ""},
		{name: "valid", check: check, value: "1990-05-14"},
		{name: "wrong layout", check: check, value: "14/05/1990", want: "Date of birth must be a date (YYYY-MM-DD)."},
		{name: "impossible day", check: check, value: "1990-02-30", want: "Date of birth must be a date (YYYY-MM-DD)."},
		{name: "future", check: check, value: "2999-01-01", want: "Date of birth cannot be in the future."},
	})
}

func TestFieldValidator(t *testing.T) {
	errs := New().
		Validate("first_name", "Abebe", Required("First name", 50)).
		Validate("phone", "", Required("Phone", 20), Pattern("Phone", phoneRe)).
		Validate("emergency_phone", "abc", Required("Emergency phone", 20), Pattern("Emergency phone", phoneRe)).
		Validate("gender", "x", OneOf("Gender", []string{"Male"}), Required("Gender", 1)).
		Errors()

	assert.Equal(t, map[string]string{
		"phone":           "Phone is required.",
		"emergency_phone": "Emergency phone has an invalid format.",
		"gender":          "Gender must be one of: Male",
	}, errs)
}

func TestFieldValidator_Empty(t *testing.T) {
	errs := New().Validate("first_name", "Abebe", Required("First name", 50)).Errors()
	assert.NotNil(t, errs)
	assert.Empty(t, errs)
}
