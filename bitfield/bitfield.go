// Package bitfield provides access to unsigned integer fields of up to 64 bits
// stored at arbitrary bit offsets in an array of 64-bit words.
//
// Bits are addressed by an absolute bit position increasing from 0, and are
// ordered most-significant-bit first within each word. A field of width n at
// position pos therefore occupies the bits pos, pos+1, ..., pos+n-1, where bit
// pos holds the most significant bit of the field value.
//
// For instance, the 5-bit field 0b00001 stored at position 62 of a two word
// array is laid out as follows:
//
//	word 0: xxxxxxxx ... xxxxxx00
//	word 1: 001xxxxx ... xxxxxxxx
package bitfield

import (
	"math/bits"

	"github.com/pkg/errors"
)

var (
	// ErrWidth is returned when a field is wider than 64 bits.
	ErrWidth = errors.New("bitfield: field width exceeds 64 bits")
	// ErrValue is returned when a value does not fit in the field width.
	ErrValue = errors.New("bitfield: value exceeds field width")
	// ErrOutOfRange is returned when a field extends past the end of the array.
	ErrOutOfRange = errors.New("bitfield: field extends past end of array")
)

// An Array is a bit-addressable view of a word array. The array is owned by the
// caller; the methods of Array never resize it.
type Array []uint64

// Len returns the number of bits addressable in the array.
func (a Array) Len() uint64 {
	return uint64(len(a)) << 6
}

// Words returns the number of words required to hold nbits bits.
func Words(nbits uint64) int {
	return int((nbits + 63) >> 6)
}

// Get returns the value of the width-bit field at bit position pos.
func (a Array) Get(pos uint64, width uint) (uint64, error) {
	if err := a.check(pos, width); err != nil {
		return 0, err
	}
	if width == 0 {
		return 0, nil
	}
	i, off := pos>>6, uint(pos&63)
	if off+width <= 64 {
		return a[i] >> (64 - off - width) & mask(width), nil
	}
	// The field straddles a word boundary; lo bits are located at the top of
	// the next word.
	lo := off + width - 64
	x := a[i] & mask(64-off)
	return x<<lo | a[i+1]>>(64-lo), nil
}

// Set stores x in the width-bit field at bit position pos. The bits surrounding
// the field are left unchanged.
func (a Array) Set(pos uint64, width uint, x uint64) error {
	if err := a.check(pos, width); err != nil {
		return err
	}
	if x&^mask(width) != 0 {
		return errors.Wrapf(ErrValue, "value %d does not fit in %d bits", x, width)
	}
	if width == 0 {
		return nil
	}
	i, off := pos>>6, uint(pos&63)
	if off+width <= 64 {
		shift := 64 - off - width
		a[i] = a[i]&^(mask(width)<<shift) | x<<shift
		return nil
	}
	lo := off + width - 64
	a[i] = a[i]&^mask(64-off) | x>>lo
	shift := 64 - lo
	a[i+1] = a[i+1]&^(mask(lo)<<shift) | x<<shift
	return nil
}

// check validates the width and bounds of the field at pos.
func (a Array) check(pos uint64, width uint) error {
	if width > 64 {
		return errors.Wrapf(ErrWidth, "width %d", width)
	}
	n := a.Len()
	if pos > n || uint64(width) > n-pos {
		return errors.Wrapf(ErrOutOfRange, "field [%d, %d) of %d-bit array", pos, pos+uint64(width), n)
	}
	return nil
}

// Log2 returns the integer base 2 logarithm of x, which is the position of the
// highest set bit counting from the least significant bit. Log2(0) is 0.
//
// Examples of x on the left and Log2(x) on the right:
//
//	1 => 0
//	2 => 1
//	3 => 1
//	4 => 2
//	7 => 2
//	8 => 3
func Log2(x uint64) uint {
	if x == 0 {
		return 0
	}
	return uint(bits.Len64(x) - 1)
}

// mask returns a mask of the n least significant bits, for 0 <= n <= 64.
func mask(n uint) uint64 {
	return ^uint64(0) >> (64 - n)
}
