package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
}

// CheckPassword reports whether candidate matches the stored bcrypt hash.
// Any bcrypt error other than a mismatch is returned as-is.
func CheckPassword(hash, candidate []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, candidate)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
