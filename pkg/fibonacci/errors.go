package fibonacci

import "errors"

// ErrOverflow is returned by the checked operations when a value no longer
// fits in a 128-bit Scalar.
var ErrOverflow = errors.New("fibonacci: result exceeds 128 bits")
