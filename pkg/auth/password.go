// Package auth hashes and verifies member passwords.
package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned when a password does not match its hash
var ErrMismatch = errors.New("password does not match")

// Cost is the bcrypt work factor used for new hashes. Tests lower it.
var Cost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword checks a password against a stored hash.
// An empty hash never matches.
func VerifyPassword(hash, password string) error {
	if hash == "" {
		return ErrMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return fmt.Errorf("failed to verify password: %w", err)
}

var (
	decoyMu     sync.Mutex
	decoyHashes = map[int][]byte{}
)

// decoyHash returns a throwaway hash at the current Cost, built once per cost
func decoyHash() []byte {
	decoyMu.Lock()
	defer decoyMu.Unlock()
	if h, ok := decoyHashes[Cost]; ok {
		return h
	}
	h, err := bcrypt.GenerateFromPassword([]byte("aurelia-luxe-decoy"), Cost)
	if err != nil {
		return nil
	}
	decoyHashes[Cost] = h
	return h
}

// VerifyUnknown spends the same bcrypt work as VerifyPassword for an account
// that does not exist. It always returns ErrMismatch.
func VerifyUnknown(password string) error {
	_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(password))
	return ErrMismatch
}
