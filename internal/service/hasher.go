// internal/service/hasher.go
package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstracts one-way salted password hashing.
type PasswordHasher interface {
	// Hash produces a salted, algorithm-tagged hash of the plaintext.
	// The salt is random, so hashing the same input twice yields
	// different strings.
	Hash(password string) (string, error)

	// Check reports whether plaintext matches the stored hash. A
	// malformed hash is a mismatch, never an error.
	Check(password, hash string) bool
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
