// Package crypto holds the key material behind cancelable templates.
//
// A template key is a 64-bit value issued at enrollment. It is never used
// directly: [DeriveKey] expands it with HKDF-SHA-512 under a per-purpose info
// string, so the projection matrix and the scramble stream of the same key
// are independent.
//
// # Revocation
//
// Revoking a template means discarding it and issuing a new key with
// [GenerateKey]. Templates produced under different keys from the same
// biometric are uncorrelated.
//
// # Base64 Encoding
//
// [ToBase64URL]/[FromBase64URL] encode protected hashes for storage:
// URL-safe base64 without padding (RFC 4648 §5). [DecodeBase64] also accepts
// padded and standard-alphabet input.
package crypto
