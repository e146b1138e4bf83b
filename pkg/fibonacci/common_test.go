package fibonacci

import (
	"math/big"
	"testing"

	num "github.com/shabbyrobe/go-num"
)

// fibLinear is the O(n) reference: iterate (a, b) = (b, a+b) n times.
// It uses the same wrapping Scalar as Fib, so the two agree for every n.
func fibLinear(n uint8) Scalar {
	a, b := num.U128From64(0), num.U128From64(1)
	for i := uint8(0); i < n; i++ {
		a, b = b, a.Add(b)
	}
	return a
}

// fibNaive is the exponential-time reference used only in benchmarks.
func fibNaive(n uint8) Scalar {
	if n <= 1 {
		return num.U128From64(uint64(n))
	}
	return fibNaive(n - 1).Add(fibNaive(n - 2))
}

// fibBig returns the exact F(n) with math/big.
func fibBig(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

// assertMatrix fails the test if got differs from want.
func assertMatrix(t *testing.T, got, want Matrix) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}
