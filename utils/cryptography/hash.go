// Package cryptography provides the digest and block-cipher primitives of
// the dataset pipeline: SHA-256 checksums in the 0x-hex encoding used
// on-chain, and AES-256-CBC decryption with PKCS#7 padding removal.
package cryptography

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sha256Hex computes the SHA-256 digest of data and returns its canonical
// 0x-prefixed lowercase hex encoding.
func Sha256Hex(data []byte) string {
	digest := sha256.Sum256(data)
	return "0x" + hex.EncodeToString(digest[:])
}

// Sha256HexFromString computes the 0x-prefixed SHA-256 digest of a string.
// Used to derive deterministic local filenames from input file URLs.
func Sha256HexFromString(s string) string {
	return Sha256Hex([]byte(s))
}
