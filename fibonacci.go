package bitenc

import (
	"math/bits"

	"github.com/mewkiz/bitenc/bitfield"
	"github.com/pkg/errors"
)

// FibonacciLen is the number of Fibonacci numbers below 2^64, starting at 1, 2.
const FibonacciLen = 92

// fibonacci holds the Fibonacci numbers 1, 2, 3, 5, 8, ... below 2^64. The
// table is never modified after initialization.
var fibonacci = func() (t [FibonacciLen]uint64) {
	t[0], t[1] = 1, 2
	for i := 2; i < len(t); i++ {
		t[i] = t[i-1] + t[i-2]
	}
	return t
}()

// FibonacciNumber returns the i:th Fibonacci number used as weight by the
// Fibonacci code, where FibonacciNumber(0) = 1 and FibonacciNumber(1) = 2. It
// panics if i is outside of [0, FibonacciLen).
func FibonacciNumber(i int) uint64 {
	return fibonacci[i]
}

// Fibonacci is the Fibonacci code. An integer x is stored as the Zeckendorf
// representation of x+1, least significant Fibonacci number first, followed by
// a one bit. As the Zeckendorf representation never contains two consecutive
// one bits, the code ends at the first pair of one bits.
//
// Examples of decimal on the left and Fibonacci coded binary on the right:
//
//	0  => 11
//	1  => 011
//	2  => 0011
//	3  => 1011
//	4  => 00011
//	5  => 10011
//	6  => 01011
//	7  => 000011
//	12 => 0000011
//
// Code lengths range from 2 bits for 0 up to 93 bits for 2^64-2, the largest
// integer representable; 2^64-1 is rejected with ErrRange.
type Fibonacci struct{}

// zeckendorf returns the Zeckendorf representation of x+1 as a bit set of
// table indices in code order, and the index of the highest term.
func zeckendorf(x uint64) (code [2]uint64, top int, err error) {
	if x == ^uint64(0) {
		return code, 0, errors.Wrap(ErrRange, "Fibonacci code of 2^64-1")
	}
	// Zero cannot be represented, so all integers are increased by one.
	x++
	c := bitfield.Array(code[:])
	top = -1
	for i := FibonacciLen - 1; i >= 0; i-- {
		if x >= fibonacci[i] {
			c.Set(uint64(i), 1, 1)
			x -= fibonacci[i]
			if top == -1 {
				top = i
			}
		}
	}
	return code, top, nil
}

// Size returns the number of bits required to encode x.
func (Fibonacci) Size(x uint64) (uint64, error) {
	_, top, err := zeckendorf(x)
	if err != nil {
		return 0, err
	}
	return uint64(top) + 2, nil
}

// Encode stores x as a Fibonacci code.
func (Fibonacci) Encode(a bitfield.Array, pos, x uint64) (uint64, error) {
	code, top, err := zeckendorf(x)
	if err != nil {
		return 0, err
	}
	n := uint64(top) + 2
	if err := checkSpace(a, pos, n); err != nil {
		return 0, err
	}
	// Terminate the code with a one bit following the highest term.
	c := bitfield.Array(code[:])
	c.Set(n-1, 1, 1)
	for off := uint64(0); off < n; off += 64 {
		width := uint(64)
		if n-off < 64 {
			width = uint(n - off)
		}
		v, _ := c.Get(off, width)
		a.Set(pos+off, width, v)
	}
	return n, nil
}

// Decode reads a Fibonacci coded integer at pos.
func (Fibonacci) Decode(a bitfield.Array, pos uint64) (x, n uint64, err error) {
	prev, err := get(a, pos, 1)
	if err != nil {
		return 0, 0, err
	}
	for i := 0; ; i++ {
		if i >= FibonacciLen {
			return 0, 0, errors.Wrapf(ErrCorrupt, "Fibonacci code longer than %d bits", FibonacciLen+1)
		}
		cur, err := get(a, pos+uint64(i)+1, 1)
		if err != nil {
			return 0, 0, err
		}
		if prev == 1 {
			var carry uint64
			x, carry = bits.Add64(x, fibonacci[i], 0)
			if carry != 0 {
				return 0, 0, errors.Wrap(ErrCorrupt, "Fibonacci code overflows 64 bits")
			}
			if cur == 1 {
				// Two consecutive one bits terminate the code.
				return x - 1, uint64(i) + 2, nil
			}
		}
		prev = cur
	}
}
