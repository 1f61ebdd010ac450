package bitenc

import (
	"github.com/mewkiz/bitenc/bitfield"
	"github.com/pkg/errors"
)

// EliasGamma is the Elias-Gamma code of positive integers. An integer x with
// b = floor(log2(x)) is stored as b unary coded, followed by the b low-order
// bits of x. The leading one bit of x is implicit.
//
// Examples of decimal on the left and Elias-Gamma coded binary on the right:
//
//	1 => 1
//	2 => 010
//	3 => 011
//	4 => 00100
//	5 => 00101
//	8 => 0001000
type EliasGamma struct{}

// Size returns 2*floor(log2(x))+1.
func (EliasGamma) Size(x uint64) (uint64, error) {
	if x == 0 {
		return 0, errors.Wrap(ErrRange, "Elias-Gamma code of zero")
	}
	return gammaSize(x), nil
}

// gammaSize returns the Elias-Gamma code length of x > 0.
func gammaSize(x uint64) uint64 {
	b := uint64(bitfield.Log2(x))
	return 2*b + 1
}

// Encode stores x, which must be positive, as an Elias-Gamma code.
func (EliasGamma) Encode(a bitfield.Array, pos, x uint64) (uint64, error) {
	if x == 0 {
		return 0, errors.Wrap(ErrRange, "Elias-Gamma code of zero")
	}
	n := gammaSize(x)
	if err := checkSpace(a, pos, n); err != nil {
		return 0, err
	}
	writeGamma(a, pos, x)
	return n, nil
}

// writeGamma stores the Elias-Gamma code of x > 0 at pos. The caller has
// verified that the code fits.
func writeGamma(a bitfield.Array, pos, x uint64) {
	b := bitfield.Log2(x)
	writeUnary(a, pos, uint64(b))
	writeMantissa(a, pos+uint64(b)+1, b, x)
}

// writeMantissa stores the b low-order bits of x at pos.
func writeMantissa(a bitfield.Array, pos uint64, b uint, x uint64) {
	a.Set(pos, b, x&^(1<<b))
}

// Decode reads an Elias-Gamma coded integer at pos.
func (EliasGamma) Decode(a bitfield.Array, pos uint64) (x, n uint64, err error) {
	b, n, err := Unary{}.Decode(a, pos)
	if err != nil {
		return 0, 0, err
	}
	if b >= 64 {
		return 0, 0, errors.Wrapf(ErrCorrupt, "Elias-Gamma code of %d-bit integer", b+1)
	}
	x, err = readMantissa(a, pos+n, uint(b))
	if err != nil {
		return 0, 0, err
	}
	return x, n + b, nil
}

// readMantissa reads b bits at pos and restores the implicit leading one bit.
func readMantissa(a bitfield.Array, pos uint64, b uint) (uint64, error) {
	x, err := get(a, pos, b)
	if err != nil {
		return 0, err
	}
	return 1<<b | x, nil
}
