package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the hex SHA-256 digest of the password.
//
// Known limitation: the digest is deterministic and unsalted, so identical
// passwords produce identical digests and precomputed-hash attacks apply.
// Kept as-is for compatibility with existing user rows; see README.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPassword reports whether the password matches the stored digest.
func CheckPassword(password, digest string) bool {
	return HashPassword(password) == digest
}
