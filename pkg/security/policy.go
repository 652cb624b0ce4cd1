package security

import (
	"fmt"
	"strings"
	"unicode"
)

const minPasswordLength = 8

// ValidatePasswordPolicy enforces the account password rules: at least eight
// characters with one uppercase letter and one special character.
func ValidatePasswordPolicy(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return fmt.Errorf("password must contain an uppercase letter")
	}
	hasSpecial := strings.ContainsFunc(password, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if !hasSpecial {
		return fmt.Errorf("password must contain a special character")
	}
	return nil
}
