// Package password provides one-way password hashing and verification
// backed by bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when an empty plaintext is hashed.
var ErrEmptyPassword = errors.New("password must not be empty")

// Hash derives a salted bcrypt hash from plaintext. A fresh random
// salt is generated on every call, so hashing the same plaintext twice
// yields different outputs.
func Hash(plaintext string) ([]byte, error) {
	if plaintext == "" {
		return nil, ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// Verify reports whether plaintext matches the stored hash. The
// comparison is constant-time. A wrong password returns (false, nil);
// an error is returned only when the stored hash is structurally
// invalid.
func Verify(plaintext string, hash []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("verify password: %w", err)
}
