package bitenc

import (
	"github.com/mewkiz/bitenc/bitfield"
	"github.com/pkg/errors"
)

// Unary is the unary code, whose value is represented by the number of leading
// zeros before a one.
//
// Examples of decimal on the left and unary coded binary on the right:
//
//	0 => 1
//	1 => 01
//	2 => 001
//	3 => 0001
//	4 => 00001
//	5 => 000001
//	6 => 0000001
type Unary struct{}

// Size returns x+1.
func (Unary) Size(x uint64) (uint64, error) {
	if x == ^uint64(0) {
		return 0, errors.Wrap(ErrRange, "unary code length overflows 64 bits")
	}
	return x + 1, nil
}

// Encode stores x as x zero bits followed by a one bit.
func (u Unary) Encode(a bitfield.Array, pos, x uint64) (uint64, error) {
	n, err := u.Size(x)
	if err != nil {
		return 0, err
	}
	if err := checkSpace(a, pos, n); err != nil {
		return 0, err
	}
	writeUnary(a, pos, x)
	return n, nil
}

// writeUnary stores the unary code of x at pos. The caller has verified that
// x+1 bits are available.
func writeUnary(a bitfield.Array, pos, x uint64) {
	for ; x >= 64; x -= 64 {
		a.Set(pos, 64, 0)
		pos += 64
	}
	// The field value 1 places the terminating one bit after x zeros.
	a.Set(pos, uint(x+1), 1)
}

// Decode reads a unary coded integer at pos.
func (Unary) Decode(a bitfield.Array, pos uint64) (x, n uint64, err error) {
	for {
		if pos >= a.Len() {
			return 0, 0, errors.Wrapf(ErrTruncated, "unary code without terminating one bit")
		}
		width := uint(64)
		if rem := a.Len() - pos; rem < 64 {
			width = uint(rem)
		}
		v, _ := a.Get(pos, width)
		if v != 0 {
			// Count the zeros preceding the highest set bit of the field.
			x += uint64(width - 1 - bitfield.Log2(v))
			return x, x + 1, nil
		}
		x += uint64(width)
		pos += uint64(width)
	}
}
