package field

// Poly is a polynomial over GF(p) with coefficients constant term first.
type Poly []uint64

// Degree returns the index of the highest non-zero coefficient, or -1 for the
// zero polynomial.
func (p Poly) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}

// Eval evaluates p at x using Horner's rule.
func (p Poly) Eval(x uint64) uint64 {
	x = Reduce(x)
	var acc uint64
	for i := len(p) - 1; i >= 0; i-- {
		acc = Add(Mul(acc, x), p[i])
	}
	return acc
}

// Coefficient returns the n-th coefficient, or zero past the end.
func (p Poly) Coefficient(n int) uint64 {
	if n < 0 || n >= len(p) {
		return 0
	}
	return p[n]
}

// Interpolate returns the unique polynomial of degree < len(xs) passing
// through (xs[i], ys[i]). All xs must be distinct modulo p.
func Interpolate(xs, ys []uint64) (Poly, error) {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return nil, ErrNodeCount
	}

	nodes := make([]uint64, n)
	for i, x := range xs {
		nodes[i] = Reduce(x)
	}

	// master(x) = prod (x - nodes[i]), degree n.
	master := make(Poly, n+1)
	master[0] = 1
	for i, xi := range nodes {
		neg := Sub(0, xi)
		for k := i + 1; k > 0; k-- {
			master[k] = Add(master[k-1], Mul(master[k], neg))
		}
		master[0] = Mul(master[0], neg)
	}

	out := make(Poly, n)
	basis := make(Poly, n)
	for j, xj := range nodes {
		// basis = master / (x - xj) by synthetic division.
		carry := master[n]
		for k := n - 1; k >= 0; k-- {
			basis[k] = carry
			carry = Add(master[k], Mul(carry, xj))
		}

		denom := basis.Eval(xj)
		if denom == 0 {
			return nil, ErrDuplicateNode
		}
		inv, err := Inv(denom)
		if err != nil {
			return nil, err
		}

		scale := Mul(Reduce(ys[j]), inv)
		for k := range out {
			out[k] = Add(out[k], Mul(basis[k], scale))
		}
	}

	return out, nil
}
