package bitenc

import (
	"github.com/mewkiz/bitenc/bitfield"
	"github.com/pkg/errors"
)

// A Writer stores integers back-to-back in a word array, starting at a given
// bit position.
type Writer struct {
	// Underlying word array, owned by the caller.
	a bitfield.Array
	// Coder used to encode integers.
	c Coder
	// Bit position of the next code.
	pos uint64
}

// NewWriter returns a new Writer which encodes integers using c into a,
// starting at bit position pos.
func NewWriter(a bitfield.Array, pos uint64, c Coder) *Writer {
	return &Writer{a: a, c: c, pos: pos}
}

// Write encodes x at the current position and advances the position past the
// code.
func (w *Writer) Write(x uint64) error {
	n, err := w.c.Encode(w.a, w.pos, x)
	if err != nil {
		return errors.Wrapf(err, "bitenc.Writer.Write: unable to encode %d at position %d", x, w.pos)
	}
	w.pos += n
	return nil
}

// WriteAll encodes the given integers back-to-back.
func (w *Writer) WriteAll(xs []uint64) error {
	for _, x := range xs {
		if err := w.Write(x); err != nil {
			return err
		}
	}
	return nil
}

// Pos returns the bit position of the next code.
func (w *Writer) Pos() uint64 {
	return w.pos
}

// A Reader reads integers stored back-to-back in a word array, starting at a
// given bit position.
type Reader struct {
	// Underlying word array, owned by the caller.
	a bitfield.Array
	// Coder used to decode integers.
	c Coder
	// Bit position of the next code.
	pos uint64
}

// NewReader returns a new Reader which decodes integers using c from a,
// starting at bit position pos.
func NewReader(a bitfield.Array, pos uint64, c Coder) *Reader {
	return &Reader{a: a, c: c, pos: pos}
}

// Read decodes the integer at the current position and advances the position
// past the code.
func (r *Reader) Read() (uint64, error) {
	x, n, err := r.c.Decode(r.a, r.pos)
	if err != nil {
		return 0, errors.Wrapf(err, "bitenc.Reader.Read: unable to decode integer at position %d", r.pos)
	}
	r.pos += n
	return x, nil
}

// ReadN decodes n integers.
func (r *Reader) ReadN(n int) ([]uint64, error) {
	xs := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		x, err := r.Read()
		if err != nil {
			return nil, err
		}
		xs = append(xs, x)
	}
	return xs, nil
}

// Pos returns the bit position of the next code.
func (r *Reader) Pos() uint64 {
	return r.pos
}

// Pack encodes the given integers back-to-back using c into a newly allocated
// word array, and returns the array together with its length in bits.
func Pack(c Coder, xs []uint64) (bitfield.Array, uint64, error) {
	nbits, err := PackedSize(c, xs)
	if err != nil {
		return nil, 0, err
	}
	a := make(bitfield.Array, bitfield.Words(nbits))
	w := NewWriter(a, 0, c)
	if err := w.WriteAll(xs); err != nil {
		return nil, 0, err
	}
	return a, nbits, nil
}
