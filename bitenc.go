// Package bitenc implements variable-length integer codes which pack unsigned
// integers back-to-back into an array of 64-bit words, without byte alignment.
//
// The following codes are supported:
//    - Unary: n zero bits followed by a one bit.
//    - Generalized unary: a unary coded bucket followed by a fixed-width
//      residual, the width of which grows with the bucket.
//    - Elias-Gamma: a unary coded bit length followed by the mantissa.
//    - Elias-Delta: a Gamma coded bit length followed by the mantissa.
//    - Fibonacci: the Zeckendorf representation terminated by two one bits.
//
// Each code is read and written at an absolute bit position of a caller-owned
// bitfield.Array. Every call reports the number of bits it consumed, so that
// the caller may advance its cursor to the start of the next code. The Writer
// and Reader types keep track of the cursor on behalf of the caller.
//
// All coders are stateless and safe for concurrent use on disjoint bit ranges
// of the same array.
package bitenc

import (
	"github.com/mewkiz/bitenc/bitfield"
	"github.com/pkg/errors"
)

var (
	// ErrTruncated is returned when a code extends past the end of the array
	// being decoded.
	ErrTruncated = errors.New("bitenc: truncated code")
	// ErrNoSpace is returned when a code does not fit in the array being
	// encoded to. The array is left unchanged.
	ErrNoSpace = errors.New("bitenc: insufficient space in array")
	// ErrRange is returned when a value is not representable by a code.
	ErrRange = errors.New("bitenc: value out of range")
	// ErrCorrupt is returned when a decoded code does not represent a 64-bit
	// value.
	ErrCorrupt = errors.New("bitenc: corrupt code")
)

// A Coder encodes and decodes unsigned integers at absolute bit positions of a
// word array.
type Coder interface {
	// Encode stores x at bit position pos of a, and returns the number of bits
	// written.
	Encode(a bitfield.Array, pos, x uint64) (n uint64, err error)
	// Decode reads the integer stored at bit position pos of a, and returns it
	// together with the number of bits read.
	Decode(a bitfield.Array, pos uint64) (x, n uint64, err error)
	// Size returns the number of bits required to encode x.
	Size(x uint64) (n uint64, err error)
}

// PackedSize returns the number of bits required to encode the given integers
// back-to-back using c.
func PackedSize(c Coder, xs []uint64) (uint64, error) {
	var total uint64
	for i, x := range xs {
		n, err := c.Size(x)
		if err != nil {
			return 0, errors.Wrapf(err, "value %d at index %d", x, i)
		}
		if total+n < total {
			return 0, errors.Wrapf(ErrRange, "packed size overflows at index %d", i)
		}
		total += n
	}
	return total, nil
}

// checkSpace verifies that n bits are available at pos of a.
func checkSpace(a bitfield.Array, pos, n uint64) error {
	if pos > a.Len() || n > a.Len()-pos {
		return errors.Wrapf(ErrNoSpace, "%d-bit code at position %d of %d-bit array", n, pos, a.Len())
	}
	return nil
}

// get reads a field of the array being decoded; running off the end of the
// array is reported as a truncated code.
func get(a bitfield.Array, pos uint64, width uint) (uint64, error) {
	x, err := a.Get(pos, width)
	if err != nil {
		if errors.Cause(err) == bitfield.ErrOutOfRange {
			return 0, errors.Wrapf(ErrTruncated, "%d-bit field at position %d", width, pos)
		}
		return 0, err
	}
	return x, nil
}
