package usecase

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

const (
	// saltLength is the number of random bytes in a password salt.
	saltLength = 16
	// tokenLength is the number of random bytes in a bearer token
	// (hex-encoded to 64 characters).
	tokenLength = 32

	// scrypt parameters. Changing these invalidates every stored hash, so
	// they are fixed for the lifetime of the schema.
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

// newSalt generates a random salt, base64-encoded for storage.
func newSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// newToken generates a random opaque bearer token (64-character hex string).
func newToken() (string, error) {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashPassword derives the stored digest from a plaintext password and a
// base64-encoded salt. The derivation is deterministic for a given salt, so
// login can recompute and compare.
func hashPassword(password, encodedSalt string) (string, error) {
	salt, err := base64.StdEncoding.DecodeString(encodedSalt)
	if err != nil {
		return "", fmt.Errorf("failed to decode salt: %w", err)
	}
	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// verifyPassword reports whether password matches the stored salt and hash.
// The comparison is constant-time.
func verifyPassword(password, encodedSalt, encodedHash string) bool {
	computed, err := hashPassword(password, encodedSalt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(encodedHash)) == 1
}
