package domain

import "strings"

const (
	// MinPasswordLength is the minimum number of characters in a password.
	MinPasswordLength = 8

	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72

	// PasswordSymbols is the set of symbols a password may (and must) draw from.
	PasswordSymbols = "@$!%*?&"
)

// ValidatePassword enforces the signup password policy:
//   - between MinPasswordLength and MaxPasswordLength characters
//   - at least one lowercase letter, one uppercase letter and one digit
//   - at least one symbol from PasswordSymbols
//   - no characters outside ASCII letters, digits and PasswordSymbols
//
// A *ValidationError wrapping ErrInvalidPassword is returned on failure.
func ValidatePassword(password string) error {
	if password == "" {
		return NewValidationError("password", "is required", ErrInvalidPassword)
	}
	if len(password) < MinPasswordLength {
		return NewValidationError("password", "must be at least 8 characters long", ErrInvalidPassword)
	}
	if len(password) > MaxPasswordLength {
		return NewValidationError("password", "must be at most 72 characters long", ErrInvalidPassword)
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, c):
			hasSymbol = true
		default:
			return NewValidationError("password", "contains a character outside letters, digits and "+PasswordSymbols, ErrInvalidPassword)
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		return NewValidationError(
			"password",
			"too weak: must include uppercase, lowercase, number and one of "+PasswordSymbols,
			ErrInvalidPassword,
		)
	}

	return nil
}
