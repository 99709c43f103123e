package cryptography

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

const (
	// AESKeyLength is the required key length in bytes (AES-256).
	AESKeyLength = 32
	// AESIVLength is the CBC initialization vector length in bytes.
	AESIVLength = 16
)

// DecryptAES256CBC decrypts ciphertext with AES-256-CBC and removes PKCS#7
// padding. The key must be exactly 32 bytes, the IV exactly 16 bytes, and
// the ciphertext a non-zero multiple of the block size.
func DecryptAES256CBC(key, iv, ciphertext []byte) ([]byte, error) {
	if len(key) != AESKeyLength {
		return nil, fmt.Errorf("invalid key length: %d", len(key))
	}
	if len(iv) != AESIVLength {
		return nil, fmt.Errorf("invalid IV length: %d", len(iv))
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("invalid ciphertext length: %d", len(ciphertext))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return pkcs7Unpad(plaintext, aes.BlockSize)
}

// pkcs7Unpad strips PKCS#7 padding, rejecting any malformed padding byte.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded data length")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, errors.New("invalid padding length")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, errors.New("invalid padding byte")
		}
	}
	return data[:len(data)-padLen], nil
}
