// Package password validates password composition and hashes credentials.
package password

import "unicode/utf8"

const (
	MinLength = 8
	MaxLength = 64
)

// Policy violation messages, reported verbatim to clients.
const (
	MsgTooShort  = "Password must be at least 8 characters long."
	MsgTooLong   = "Password must be at most 64 characters long."
	MsgNoLower   = "Password must contain at least one lowercase letter."
	MsgNoUpper   = "Password must contain at least one uppercase letter."
	MsgNoDigit   = "Password must contain at least one number."
	MsgNoSpecial = "Password must contain at least one special character."
)

// Validate checks password against every composition rule and returns all violations.
// A nil result means the password is acceptable.
func Validate(password string) []string {
	var violations []string

	n := utf8.RuneCountInString(password)
	if n < MinLength {
		violations = append(violations, MsgTooShort)
	}
	if n > MaxLength {
		violations = append(violations, MsgTooLong)
	}

	// Classes are ASCII only; any rune outside A-Z, a-z and 0-9 counts as special.
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case 'a' <= r && r <= 'z':
			lower = true
		case 'A' <= r && r <= 'Z':
			upper = true
		case '0' <= r && r <= '9':
			digit = true
		default:
			special = true
		}
	}

	if !lower {
		violations = append(violations, MsgNoLower)
	}
	if !upper {
		violations = append(violations, MsgNoUpper)
	}
	if !digit {
		violations = append(violations, MsgNoDigit)
	}
	if !special {
		violations = append(violations, MsgNoSpecial)
	}

	return violations
}
