// Package fibonacci computes Fibonacci numbers for 8-bit indices as 128-bit
// unsigned integers using 2x2 matrix exponentiation.
//
// Mathematical Basis:
//
//	[ F(n+1) F(n)   ] = [ 1 1 ]^n
//	[ F(n)   F(n-1) ]   [ 1 0 ]
//
// Applying that power to the seed vector [F(1), F(0)] = [1, 0] yields
// [F(n+1), F(n)], and the second component is the answer. The power itself
// is computed by repeated squaring, so F(n) costs O(log n) matrix
// multiplications instead of the n additions of the direct recurrence.
//
// All values are fixed-size arrays of value types. Every function is pure
// and safe for concurrent use without synchronization.
//
// Overflow:
// F(186) is the largest Fibonacci number that fits in 128 bits. Fib is total
// over 0-255 and returns F(n) mod 2^128 beyond that point; since wrapping
// arithmetic is a ring homomorphism, the result is the exact value reduced
// modulo 2^128. FibChecked rejects those indices with ErrOverflow instead.
package fibonacci

import (
	"context"
	"fmt"
	"strings"
)

// MaxIndex is the largest n for which F(n) fits in a 128-bit Scalar.
// F(186) = 332825110087067562321196029789634457848 < 2^128 < F(187).
const MaxIndex = 186

// Fib returns F(n), reduced modulo 2^128 when n > MaxIndex.
func Fib(n uint8) Scalar {
	p := Power(Recurrence(), n)
	v := Apply(p, Base())
	return v[1]
}

// FibChecked returns F(n), or an error wrapping ErrOverflow when n > MaxIndex.
//
// It raises the recurrence matrix to n-1 rather than n: the top-left entry of
// that power is F(n) and no entry exceeds it, whereas the n-th power already
// holds F(n+1), which overflows at n = MaxIndex.
func FibChecked(n uint8) (Scalar, error) {
	if n == 0 {
		return zero, nil
	}
	p, err := PowerChecked(Recurrence(), n-1)
	if err != nil {
		return Scalar{}, fmt.Errorf("F(%d): %w", n, err)
	}
	return p[0][0], nil
}

// IsExact reports whether Fib(n) is the true Fibonacci value rather than
// its residue modulo 2^128.
func IsExact(n uint8) bool {
	return n <= MaxIndex
}

// OverflowPolicy selects what happens when F(n) does not fit in 128 bits.
type OverflowPolicy string

const (
	// PolicyWrap returns F(n) mod 2^128.
	PolicyWrap OverflowPolicy = "wrap"
	// PolicyError fails with ErrOverflow.
	PolicyError OverflowPolicy = "error"
)

// ParseOverflowPolicy converts a case-insensitive name into an OverflowPolicy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch p := OverflowPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyWrap, PolicyError:
		return p, nil
	case "":
		return PolicyWrap, nil
	default:
		return "", fmt.Errorf("unknown overflow policy %q (want %q or %q)", s, PolicyWrap, PolicyError)
	}
}

// Calculator is the interface through which the application layers compute
// Fibonacci numbers. It exists so that services and handlers can be tested
// against mocks.
type Calculator interface {
	// Calculate returns F(n). It fails fast if ctx is already done.
	Calculate(ctx context.Context, n uint8) (Scalar, error)

	// Name returns the display name of the algorithm.
	Name() string
}

// MatrixExponentiation is the Calculator backed by Fib and FibChecked.
type MatrixExponentiation struct {
	// Policy selects wrapping or failing above MaxIndex. The zero value wraps.
	Policy OverflowPolicy
}

var _ Calculator = MatrixExponentiation{}

// Name returns the descriptive name of the algorithm.
func (c MatrixExponentiation) Name() string {
	return "Matrix Exponentiation (O(log n), 128-bit)"
}

// Calculate computes F(n) according to c.Policy.
func (c MatrixExponentiation) Calculate(ctx context.Context, n uint8) (Scalar, error) {
	if err := ctx.Err(); err != nil {
		return Scalar{}, err
	}
	if c.Policy == PolicyError {
		return FibChecked(n)
	}
	return Fib(n), nil
}
