package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// randReader is the random source used for key and secret generation.
var randReader io.Reader = rand.Reader

// GenerateKey returns a fresh 64-bit template key.
func GenerateKey() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(randReader, b[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// GenerateSecret returns a fresh 32-bit vault secret.
func GenerateSecret() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(randReader, b[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return binary.BigEndian.Uint32(b[:]), nil
}
