// Package field implements exact arithmetic over the prime field GF(p),
// p = 2^61 - 1, and dense polynomials over it.
//
// Vault polynomials are evaluated and interpolated here instead of in
// floating point, so an enrolled polynomial is recovered bit-for-bit from any
// degree+1 of its genuine points regardless of their magnitude.
//
// Polynomials are stored constant term first:
//
//	p(x) = c[0] + c[1]x + ... + c[d]x^d
package field
