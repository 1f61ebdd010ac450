package bitenc

import (
	"github.com/mewkiz/bitenc/bitfield"
	"github.com/pkg/errors"
)

// EliasDelta is the Elias-Delta code of positive integers. An integer x with
// b = floor(log2(x)) is stored as the bit length b+1 Elias-Gamma coded,
// followed by the b low-order bits of x. The leading one bit of x is implicit.
//
// The length prefix of Elias-Delta grows with log2(log2(x)) rather than
// log2(x), so from 16 and up the code is never longer than Elias-Gamma.
//
// Examples of decimal on the left and Elias-Delta coded binary on the right:
//
//	1  => 1
//	2  => 0100
//	3  => 0101
//	4  => 01100
//	7  => 01111
//	8  => 00100000
//	16 => 001010000
type EliasDelta struct{}

// Size returns the number of bits required to encode x.
func (EliasDelta) Size(x uint64) (uint64, error) {
	if x == 0 {
		return 0, errors.Wrap(ErrRange, "Elias-Delta code of zero")
	}
	return deltaSize(x), nil
}

// deltaSize returns the Elias-Delta code length of x > 0.
func deltaSize(x uint64) uint64 {
	b := uint64(bitfield.Log2(x))
	return gammaSize(b+1) + b
}

// Encode stores x, which must be positive, as an Elias-Delta code.
func (EliasDelta) Encode(a bitfield.Array, pos, x uint64) (uint64, error) {
	if x == 0 {
		return 0, errors.Wrap(ErrRange, "Elias-Delta code of zero")
	}
	n := deltaSize(x)
	if err := checkSpace(a, pos, n); err != nil {
		return 0, err
	}
	b := bitfield.Log2(x)
	writeGamma(a, pos, uint64(b)+1)
	writeMantissa(a, pos+gammaSize(uint64(b)+1), b, x)
	return n, nil
}

// Decode reads an Elias-Delta coded integer at pos.
func (EliasDelta) Decode(a bitfield.Array, pos uint64) (x, n uint64, err error) {
	l, n, err := EliasGamma{}.Decode(a, pos)
	if err != nil {
		return 0, 0, err
	}
	if l > 64 {
		return 0, 0, errors.Wrapf(ErrCorrupt, "Elias-Delta code of %d-bit integer", l)
	}
	b := l - 1
	x, err = readMantissa(a, pos+n, uint(b))
	if err != nil {
		return 0, 0, err
	}
	return x, n + b, nil
}
