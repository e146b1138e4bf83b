package fibonacci

import (
	num "github.com/shabbyrobe/go-num"
)

// Scalar is the element type of every vector and matrix in this package.
// It is a 128-bit unsigned integer whose arithmetic wraps modulo 2^128.
type Scalar = num.U128

// Vector is a fixed 2-element column vector. Being an array of value types,
// it is copied on assignment and never shares state with another Vector.
type Vector [2]Scalar

// Matrix is a fixed 2x2 matrix stored as two row vectors.
//
//	[ m[0][0] m[0][1] ]
//	[ m[1][0] m[1][1] ]
type Matrix [2]Vector

var (
	zero = num.U128From64(0)
	one  = num.U128From64(1)
)

// Recurrence returns the Fibonacci Q-matrix [[1, 1], [1, 0]].
func Recurrence() Matrix {
	return Matrix{{one, one}, {one, zero}}
}

// Identity returns the 2x2 multiplicative identity [[1, 0], [0, 1]].
func Identity() Matrix {
	return Matrix{{one, zero}, {zero, one}}
}

// Base returns the seed vector [F(1), F(0)] = [1, 0].
func Base() Vector {
	return Vector{one, zero}
}

// NewMatrix builds a Matrix from four uint64 entries given in row-major order.
func NewMatrix(a, b, c, d uint64) Matrix {
	return Matrix{
		{num.U128From64(a), num.U128From64(b)},
		{num.U128From64(c), num.U128From64(d)},
	}
}

// Equal reports whether m and o have identical entries.
func (m Matrix) Equal(o Matrix) bool {
	return m[0].Equal(o[0]) && m[1].Equal(o[1])
}

// String renders the matrix as [[a b] [c d]].
func (m Matrix) String() string {
	return "[" + m[0].String() + " " + m[1].String() + "]"
}

// Equal reports whether v and o have identical entries.
func (v Vector) Equal(o Vector) bool {
	return v[0].Equal(o[0]) && v[1].Equal(o[1])
}

// String renders the vector as [x y].
func (v Vector) String() string {
	return "[" + v[0].String() + " " + v[1].String() + "]"
}
