package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePasswordOrder(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		want     error
	}{
		// Too-short passwords fail on length before anything else, even when
		// they would also fail the character checks.
		{"TooShortBeatsMissingUppercase", "abc1", ErrPasswordTooShort},
		{"TooShortExactBoundary", "Abcdef1", ErrPasswordTooShort},
		{"MissingUppercase", "abcdefg1", ErrPasswordMissingUppercase},
		{"MissingLowercase", "ABCDEFG1", ErrPasswordMissingLowercase},
		{"MissingDigit", "Abcdefgh", ErrPasswordMissingDigit},
		{"Valid", "Abcdef12", nil},
		{"ValidWithSymbols", "Str0ng.Password", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidatePassword(tc.password, 8))
		})
	}
}

func TestValidatePasswordCustomMinLength(t *testing.T) {
	assert.Equal(t, ErrPasswordTooShort, ValidatePassword("Abcdef12", 12))
	assert.NoError(t, ValidatePassword("Abcdefghijk1", 12))
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"a@example.com",
		"first.last@example.co.uk",
		"user+tag@sub.domain.org",
		"x_1%@d.de",
	}
	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@domain",
		"user@domain.c",
		"user@@example.com",
		"user@example.com ",
	}

	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}
