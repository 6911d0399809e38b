package crypto

const (
	// KeySize is the size of an encoded template key in bytes.
	KeySize = 8

	// SeedSize is the size of a derived stream seed in bytes.
	SeedSize = 32

	// HKDFSalt is the fixed salt for template key expansion.
	HKDFSalt = "biovault:template:v1"
)

// HKDF info strings, one per consumer of a template key.
const (
	InfoProjection = "biovault:projection:v1"
	InfoScramble   = "biovault:scramble:v1"
)
