package fibonacci

// Mul returns the matrix product m1 * m2.
//
//	m1 = [[a, b], [c, d]], m2 = [[e, f], [g, h]]
//
//	m1 * m2 = [[a*e + b*g, a*f + b*h],
//	           [c*e + d*g, c*f + d*h]]
//
// Entries are Scalars, so every product and sum wraps modulo 2^128. For the
// powers of the recurrence matrix reached by Fib with n <= MaxIndex the
// entries that matter never wrap; use MulChecked to detect wrapping.
func Mul(m1, m2 Matrix) Matrix {
	a, b, c, d := m1[0][0], m1[0][1], m1[1][0], m1[1][1]
	e, f, g, h := m2[0][0], m2[0][1], m2[1][0], m2[1][1]
	return Matrix{
		{a.Mul(e).Add(b.Mul(g)), a.Mul(f).Add(b.Mul(h))},
		{c.Mul(e).Add(d.Mul(g)), c.Mul(f).Add(d.Mul(h))},
	}
}

// Square returns m * m.
func Square(m Matrix) Matrix {
	return Mul(m, m)
}

// Apply returns the vector m * x.
//
//	[[a, b], [c, d]] * [x, y] = [a*x + b*y, c*x + d*y]
func Apply(m Matrix, x Vector) Vector {
	a, b, c, d := m[0][0], m[0][1], m[1][0], m[1][1]
	return Vector{
		a.Mul(x[0]).Add(b.Mul(x[1])),
		c.Mul(x[0]).Add(d.Mul(x[1])),
	}
}

// MulChecked is Mul with overflow detection. It returns ErrOverflow as soon as
// any of the eight products or four sums does not fit in 128 bits.
func MulChecked(m1, m2 Matrix) (Matrix, error) {
	var out Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			l, err := mulChecked(m1[i][0], m2[0][j])
			if err != nil {
				return Matrix{}, err
			}
			r, err := mulChecked(m1[i][1], m2[1][j])
			if err != nil {
				return Matrix{}, err
			}
			if out[i][j], err = addChecked(l, r); err != nil {
				return Matrix{}, err
			}
		}
	}
	return out, nil
}

// addChecked returns x + y, or ErrOverflow if the sum wrapped.
func addChecked(x, y Scalar) (Scalar, error) {
	sum := x.Add(y)
	if sum.LessThan(x) {
		return Scalar{}, ErrOverflow
	}
	return sum, nil
}

// mulChecked returns x * y, or ErrOverflow if the product wrapped.
func mulChecked(x, y Scalar) (Scalar, error) {
	if x.IsZero() || y.IsZero() {
		return zero, nil
	}
	p := x.Mul(y)
	if !p.Quo(x).Equal(y) {
		return Scalar{}, ErrOverflow
	}
	return p, nil
}
