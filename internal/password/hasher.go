// Package password provides one-way password hashing, verification, and the
// strength rule applied during registration and password change.
package password

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the adaptive work factor. Raising it transparently upgrades
// new hashes; existing hashes keep verifying at the cost they were made with.
const bcryptCost = 10

// specialChars is the accepted symbol set for the strength rule.
const specialChars = `!@#$%^&*(),.?":{}|<>`

// minLength is the minimum accepted password length.
const minLength = 8

// Hash produces a salted bcrypt hash of the plaintext. Two calls with the
// same input yield different output because bcrypt embeds a random salt.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hashed), nil
}

// Compare verifies plaintext against a stored bcrypt hash. It returns false
// for any failure, including a malformed hash — callers never need to branch
// on an error to treat the credential as invalid.
func Compare(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IsStrong reports whether the plaintext satisfies the strength rule:
// at least 8 characters with one uppercase letter, one lowercase letter,
// one digit, and one symbol from the accepted set.
func IsStrong(plaintext string) bool {
	if len(plaintext) < minLength {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range plaintext {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}
