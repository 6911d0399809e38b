// Package checksum implements the error-detecting code that gates candidate
// secrets recovered from a fuzzy vault.
//
// The code is CRC-16/MODBUS: polynomial 0x8005 processed reflected (0xA001),
// initial value 0xFFFF, no final xor. It detects corrupted or guessed secrets;
// it provides no cryptographic integrity.
package checksum

import (
	"encoding/binary"

	"github.com/sigurn/crc16"
)

// Size is the checksum width in bits.
const Size = 16

var table = crc16.MakeTable(crc16.CRC16_MODBUS)

// Sum returns the CRC-16 of data.
func Sum(data []byte) uint16 {
	return crc16.Checksum(data, table)
}

// Compute returns the checksum of a secret, taken over its 4-byte
// little-endian encoding.
func Compute(secret uint32) uint16 {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], secret)
	return Sum(buf[:])
}

// Verify reports whether checksum matches secret.
func Verify(secret uint32, checksum uint16) bool {
	return Compute(secret) == checksum
}

// Reduce maps a wider value into the 32-bit secret space. Every path that
// re-derives a secret from a wider integer must go through Reduce so that
// encode and verify agree.
func Reduce(v uint64) uint32 {
	return uint32(v)
}
