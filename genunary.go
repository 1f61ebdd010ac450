package bitenc

import (
	"github.com/mewkiz/bitenc/bitfield"
	"github.com/pkg/errors"
)

// GeneralizedUnary is a generalized unary code defined by a start width and a
// step. The m:th code word consists of m unary coded, followed by a residual of
// w(m) = Start + m*Step bits. Bucket m thus holds 2^w(m) values, starting where
// bucket m-1 ends.
//
// For Start=3 and Step=2:
//
//	m  w  template      # vals  values
//	0  3  1xxx               8    0-  7
//	1  5  01xxxxx           32    8- 39
//	2  7  001xxxxxxx       128   40-167
//	3  9  0001xxxxxxxxx    512  168-679
//
// Values whose bucket would require a residual wider than 64 bits are not
// representable and are rejected with ErrRange.
type GeneralizedUnary struct {
	// Residual width of the first bucket.
	Start uint
	// Growth of the residual width from one bucket to the next.
	Step uint
}

// DefaultGeneralizedUnary is the generalized unary code with Start=3 and
// Step=2.
var DefaultGeneralizedUnary = GeneralizedUnary{Start: 3, Step: 2}

// Bucket locates the bucket of x. It returns the bucket m, the residual width w
// and the residual r of x within the bucket.
func (g GeneralizedUnary) Bucket(x uint64) (m uint64, w uint, r uint64, err error) {
	if g.Start > 64 {
		return 0, 0, 0, errors.Wrapf(ErrRange, "residual width %d exceeds 64 bits", g.Start)
	}
	w = g.Start
	if g.Step == 0 {
		// Fixed-width buckets.
		if w == 64 {
			return 0, w, x, nil
		}
		m = x >> w
		if m >= ^uint64(0)-uint64(w) {
			return 0, 0, 0, errors.Wrapf(ErrRange, "code length of bucket %d overflows 64 bits", m)
		}
		return m, w, x & (1<<w - 1), nil
	}
	// Linear search for the bucket, removing the values implicitly stored by
	// the preceding buckets from x.
	for w < 64 && x >= 1<<w {
		x -= 1 << w
		w += g.Step
		m++
	}
	if w > 64 {
		return 0, 0, 0, errors.Wrapf(ErrRange, "bucket %d requires a %d-bit residual", m, w)
	}
	return m, w, x, nil
}

// Width returns the residual width of bucket m.
func (g GeneralizedUnary) Width(m uint64) (uint, error) {
	// Compare the bucket before computing its width, to avoid overflow.
	if g.Start > 64 || (g.Step > 0 && m > uint64(64-g.Start)/uint64(g.Step)) {
		return 0, errors.Wrapf(ErrCorrupt, "bucket %d requires a residual wider than 64 bits", m)
	}
	return g.Start + uint(m)*g.Step, nil
}

// Value returns the integer stored as residual r of bucket m, by adding the
// values implicitly stored by the preceding buckets.
func (g GeneralizedUnary) Value(m, r uint64) (uint64, error) {
	base, ok := g.base(m)
	if !ok || r > ^uint64(0)-base {
		return 0, errors.Wrapf(ErrCorrupt, "value of bucket %d overflows 64 bits", m)
	}
	return base + r, nil
}

// base returns the first value of bucket m, and reports whether it is
// representable in 64 bits.
func (g GeneralizedUnary) base(m uint64) (uint64, bool) {
	if g.Step == 0 {
		if g.Start == 64 {
			return 0, m == 0
		}
		if m > ^uint64(0)>>g.Start {
			return 0, false
		}
		return m << g.Start, true
	}
	var base uint64
	for i := uint64(0); i < m; i++ {
		w := g.Start + uint(i)*g.Step
		if w >= 64 || base > ^uint64(0)-1<<w {
			return 0, false
		}
		base += 1 << w
	}
	return base, true
}

// Size returns the number of bits required to encode x.
func (g GeneralizedUnary) Size(x uint64) (uint64, error) {
	m, w, _, err := g.Bucket(x)
	if err != nil {
		return 0, err
	}
	return m + 1 + uint64(w), nil
}

// Encode stores x as the unary coded bucket followed by the residual.
func (g GeneralizedUnary) Encode(a bitfield.Array, pos, x uint64) (uint64, error) {
	m, w, r, err := g.Bucket(x)
	if err != nil {
		return 0, err
	}
	n := m + 1 + uint64(w)
	if err := checkSpace(a, pos, n); err != nil {
		return 0, err
	}
	writeUnary(a, pos, m)
	a.Set(pos+m+1, w, r)
	return n, nil
}

// Decode reads a generalized unary coded integer at pos.
func (g GeneralizedUnary) Decode(a bitfield.Array, pos uint64) (x, n uint64, err error) {
	m, n, err := Unary{}.Decode(a, pos)
	if err != nil {
		return 0, 0, err
	}
	w, err := g.Width(m)
	if err != nil {
		return 0, 0, err
	}
	r, err := get(a, pos+n, w)
	if err != nil {
		return 0, 0, err
	}
	x, err = g.Value(m, r)
	if err != nil {
		return 0, 0, err
	}
	return x, n + uint64(w), nil
}
