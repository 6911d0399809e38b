package grid

import "math"

// Kernel returns a normalized 1-D Gaussian kernel of radius
// int(Truncate*sigma + 0.5).
func Kernel(sigma float64) []float64 {
	r := int(Truncate*sigma + 0.5)
	k := make([]float64, 2*r+1)
	var sum float64
	for i := -r; i <= r; i++ {
		w := math.Exp(-0.5 * float64(i*i) / (sigma * sigma))
		k[i+r] = w
		sum += w
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// Blur convolves an n x n row-major plane in place with kernel k along both
// axes. Borders use half-sample symmetric reflection (d c b a | a b c d).
func Blur(plane []float64, n int, k []float64) {
	line := make([]float64, n)
	tmp := make([]float64, n)

	for y := 0; y < n; y++ {
		row := plane[y*n : (y+1)*n]
		copy(line, row)
		convolve(row, line, k)
	}
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			line[y] = plane[y*n+x]
		}
		convolve(tmp, line, k)
		for y := 0; y < n; y++ {
			plane[y*n+x] = tmp[y]
		}
	}
}

func convolve(dst, src, k []float64) {
	n := len(src)
	r := len(k) / 2
	for i := range dst {
		var s float64
		for j := -r; j <= r; j++ {
			s += k[j+r] * src[reflect(i+j, n)]
		}
		dst[i] = s
	}
}

func reflect(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
