// Package password wraps bcrypt for the two secrets docvault keeps at
// rest: user account passwords and share-link passwords.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// hashCost sits above bcrypt's default. Link passwords are often short
// and guessable, so the work factor carries more of the weight.
const hashCost = 12

var errEmptyPassword = errors.New("password cannot be empty")

// Hash derives a bcrypt hash from the clear password. The empty string
// is rejected so a blank share-link password can never be stored as a
// real credential.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", errEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash. Any bcrypt
// error, a malformed hash included, reads as a mismatch.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
