package crypto

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey derives a key using HKDF-SHA-512.
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}
	if len(salt) == 0 {
		salt = make([]byte, sha512.Size)
	}

	reader := hkdf.New(sha512.New, secret, salt, info)
	key := make([]byte, length)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}

// KeyBytes returns the big-endian encoding of a template key.
func KeyBytes(key uint64) []byte {
	b := make([]byte, KeySize)
	binary.BigEndian.PutUint64(b, key)
	return b
}

// DeriveSeed expands a template key into a SeedSize seed for one purpose.
func DeriveSeed(key uint64, info string) ([]byte, error) {
	if info == "" {
		return nil, ErrEmptyInfo
	}
	return DeriveKey(KeyBytes(key), []byte(HKDFSalt), []byte(info), SeedSize)
}
