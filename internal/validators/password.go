package validators

import (
	"errors"
	"unicode"
)

var (
	ErrPasswordTooShort         = errors.New("password is shorter than the configured minimum")
	ErrPasswordMissingUppercase = errors.New("password must contain at least one uppercase letter")
	ErrPasswordMissingLowercase = errors.New("password must contain at least one lowercase letter")
	ErrPasswordMissingDigit     = errors.New("password must contain at least one number")
)

// DefaultPasswordMinLength is used when no explicit minimum is configured.
const DefaultPasswordMinLength = 8

// ValidatePassword checks the password policy in a fixed order and returns
// the first failing check: length, uppercase, lowercase, digit.
func ValidatePassword(password string, minLength int) error {
	if minLength <= 0 {
		minLength = DefaultPasswordMinLength
	}

	if len(password) < minLength {
		return ErrPasswordTooShort
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	if !upper {
		return ErrPasswordMissingUppercase
	}
	if !lower {
		return ErrPasswordMissingLowercase
	}
	if !digit {
		return ErrPasswordMissingDigit
	}

	return nil
}
