package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinSecretLength is the shortest plaintext the credential store accepts.
const MinSecretLength = 8

// ErrSecretTooShort indicates a plaintext below the minimum length.
var ErrSecretTooShort = errors.New("secret too short")

// HashSecret derives an irreversible salted hash from a plaintext. The
// plaintext is never stored or logged.
func HashSecret(plaintext string) (string, error) {
	if len(plaintext) < MinSecretLength {
		return "", ErrSecretTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifySecret compares a plaintext against the stored hash. bcrypt's
// comparison is constant-time over the hash.
func VerifySecret(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
