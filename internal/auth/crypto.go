package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Dummy hash used to equalize timing when no stored hash exists.
const dummyTokenHash = "0000000000000000000000000000000000000000000000000000000000000000"

// HashToken hashes a share token with SHA256. Tokens are random
// 256-bit values, so a plain hash (no salt, no work factor) is enough
// to keep the stored form useless to anyone reading the database.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// compareHashes compares two hex-encoded hashes in constant time to
// avoid leaking how much of a guess matched.
func compareHashes(a, b string) bool {
	aBytes := []byte(a)
	bBytes := []byte(b)

	if len(aBytes) != len(bBytes) {
		if len(aBytes) < len(bBytes) {
			aBytes = make([]byte, len(bBytes))
		} else {
			bBytes = make([]byte, len(aBytes))
		}
	}

	return subtle.ConstantTimeCompare(aBytes, bBytes) == 1
}

// ConstantTimeHashAndCompare hashes the input and compares it to the
// expected hash. When no expected hash is present it burns the same
// work against a dummy hash, so callers can keep a lookup miss and a
// hash mismatch indistinguishable by latency.
func ConstantTimeHashAndCompare(input, expectedHash string) bool {
	actualHash := HashToken(input)

	if expectedHash == "" {
		compareHashes(actualHash, dummyTokenHash)
		return false
	}

	return compareHashes(actualHash, expectedHash)
}
