// Package biovault protects biometric templates.
//
// Two protection families are provided:
//
//   - A fuzzy vault binds a 32-bit secret to a 2-D feature point set, such
//     as fingerprint minutiae. The secret becomes the constant term of a
//     polynomial over GF(2^61-1), its CRC-16 the linear term, and the vault
//     stores the polynomial evaluated at the genuine points hidden among
//     chaff points. A candidate set close enough to the enrolled one selects
//     enough genuine points to recover the polynomial by RANSAC.
//
//   - A cancelable hash turns a feature vector, or the density grid of a
//     point set, into a keyed bit string matched by Hamming distance.
//     Issuing a new key revokes a leaked hash.
//
// Basic usage:
//
//	engine, err := biovault.NewEngine()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	enrolled := biovault.OrientedMinutiae(minutiae...)
//	vault, err := engine.Lock(secret, enrolled)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := engine.Unlock(vault, biovault.OrientedMinutiae(probe...))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Matched {
//	    fmt.Println("secret:", res.Secret)
//	}
//
// A failed unlock or hash comparison is a normal result, never an error.
// Errors report malformed input and can be inspected with errors.Is against
// the sentinels in this package.
package biovault
