// Package projection implements the keyed transforms behind cancelable
// hashes.
//
// Two transforms share the [Transform] interface:
//
//   - [Projection] (BioHash): the vector is multiplied by a key-seeded
//     len(vector) x L matrix of standard normal values and each output is
//     binarized by sign.
//
//   - [Scramble]: the vector is binarized against its median, permuted with
//     a key-seeded permutation, truncated to L bits and XORed with a
//     key-seeded mask.
//
// Both are deterministic for a (vector, key, length) triple and produce
// uncorrelated outputs under different keys.
package projection
