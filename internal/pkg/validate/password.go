package validate

import (
	"fmt"
	"strings"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 8

// SpecialChars lists the characters that satisfy the special-character rule.
const SpecialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// PasswordRequirements records which rules a password satisfies.
type PasswordRequirements struct {
	MinLength      bool `json:"min_length"`
	HasUpperCase   bool `json:"has_upper_case"`
	HasLowerCase   bool `json:"has_lower_case"`
	HasNumber      bool `json:"has_number"`
	HasSpecialChar bool `json:"has_special_char"`
}

// PasswordRule pairs one requirement with the text shown to the user.
type PasswordRule struct {
	Key  string
	Text string
	Met  func(PasswordRequirements) bool
}

// PasswordRules is the display order of the password requirements.
var PasswordRules = []PasswordRule{
	{
		Key:  "min_length",
		Text: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength),
		Met:  func(r PasswordRequirements) bool { return r.MinLength },
	},
	{
		Key:  "has_upper_case",
		Text: "Password must contain at least one uppercase letter",
		Met:  func(r PasswordRequirements) bool { return r.HasUpperCase },
	},
	{
		Key:  "has_lower_case",
		Text: "Password must contain at least one lowercase letter",
		Met:  func(r PasswordRequirements) bool { return r.HasLowerCase },
	},
	{
		Key:  "has_number",
		Text: "Password must contain at least one number",
		Met:  func(r PasswordRequirements) bool { return r.HasNumber },
	},
	{
		Key:  "has_special_char",
		Text: "Password must contain at least one special character (" + SpecialChars + ")",
		Met:  func(r PasswordRequirements) bool { return r.HasSpecialChar },
	},
}

// PasswordCheck is the result of Password.
type PasswordCheck struct {
	Valid        bool                 `json:"valid"`
	Errors       []string             `json:"errors"`
	Requirements PasswordRequirements `json:"requirements"`
}

// Password evaluates every rule. Errors follow PasswordRules order.
func Password(password string) PasswordCheck {
	req := PasswordRequirements{MinLength: len(password) >= MinPasswordLength}
	for i := 0; i < len(password); i++ {
		c := password[i]
		switch {
		case c >= 'A' && c <= 'Z':
			req.HasUpperCase = true
		case c >= 'a' && c <= 'z':
			req.HasLowerCase = true
		case c >= '0' && c <= '9':
			req.HasNumber = true
		case strings.IndexByte(SpecialChars, c) >= 0:
			req.HasSpecialChar = true
		}
	}

	errs := []string{}
	for _, rule := range PasswordRules {
		if !rule.Met(req) {
			errs = append(errs, rule.Text)
		}
	}
	return PasswordCheck{Valid: len(errs) == 0, Errors: errs, Requirements: req}
}
