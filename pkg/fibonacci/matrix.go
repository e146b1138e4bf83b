package fibonacci

import "math/bits"

// Exponent is the set of unsigned integer types accepted by Power.
type Exponent interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// maxRounds is the number of squarings needed for the widest Exponent.
const maxRounds = 64

// Rounds returns the number of squaring rounds Power performs for the
// exponent n, i.e. the position of its highest set bit. It never exceeds the
// bit width of E, so an 8-bit exponent needs at most 8 rounds.
func Rounds[E Exponent](n E) int {
	return bits.Len64(uint64(n))
}

// Power raises m to the n-th power using binary exponentiation.
//
// The squared powers m^(2^0), m^(2^1), ... are computed first, one per bit
// of n. The product then starts at the identity and is left-multiplied by
// each squared power whose bit is set in n, from the low bit to the high
// bit. Power(m, 0) is the identity.
//
// Complexity: at most 2*Rounds(n) matrix multiplications instead of n.
func Power[E Exponent](m Matrix, n E) Matrix {
	rounds := Rounds(n)
	e := uint64(n)

	// powers[i] = m^(2^i)
	var powers [maxRounds]Matrix
	if rounds > 0 {
		powers[0] = m
	}
	for i := 1; i < rounds; i++ {
		powers[i] = Square(powers[i-1])
	}

	product := Identity()
	for i := 0; i < rounds; i++ {
		if e&(1<<i) != 0 {
			product = Mul(product, powers[i])
		}
	}
	return product
}

// PowerChecked is Power with every multiplication done by MulChecked. It
// fails with ErrOverflow as soon as a squared power or a partial product has
// an entry that does not fit in 128 bits. Since entries only grow, that is
// exactly when some entry of m^n itself does not fit.
func PowerChecked[E Exponent](m Matrix, n E) (Matrix, error) {
	rounds := Rounds(n)
	e := uint64(n)

	product := Identity()
	square := m
	for i := 0; i < rounds; i++ {
		if i > 0 {
			var err error
			if square, err = MulChecked(square, square); err != nil {
				return Matrix{}, err
			}
		}
		if e&(1<<i) != 0 {
			var err error
			if product, err = MulChecked(product, square); err != nil {
				return Matrix{}, err
			}
		}
	}
	return product, nil
}
