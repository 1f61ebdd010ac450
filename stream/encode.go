// Package stream implements the integer codes of package bitenc on top of
// io.Reader and io.Writer bit streams.
//
// The bit stream produced by an Encoder is identical to the big-endian byte
// serialization of the word array produced by a bitenc.Writer for the same
// scheme and integers, padded with zero bits to a byte boundary. A stream
// written by a bitenc.Writer may therefore be decoded by a Decoder and vice
// versa.
package stream

import (
	"io"

	"github.com/icza/bitio"
	"github.com/mewkiz/bitenc"
	"github.com/mewkiz/bitenc/bitfield"
	"github.com/mewkiz/pkg/errutil"
	"github.com/pkg/errors"
)

// An Encoder writes integer codes to an output stream.
type Encoder struct {
	// Bit writer to the output stream.
	bw *bitio.Writer
	// Coder of the scheme.
	c bitenc.Coder
	// Scratch word array holding the code being written.
	buf bitfield.Array
	// Number of bits written.
	nbits uint64
}

// NewEncoder returns a new encoder which writes codes of the given scheme to w.
func NewEncoder(w io.Writer, s bitenc.Scheme) (*Encoder, error) {
	if !s.Valid() {
		return nil, errors.Errorf("stream.NewEncoder: invalid scheme %v", s)
	}
	enc := &Encoder{
		bw: bitio.NewWriter(w),
		c:  s.Coder(),
	}
	return enc, nil
}

// Encode writes the code of x to the output stream.
func (enc *Encoder) Encode(x uint64) error {
	n, err := enc.c.Size(x)
	if err != nil {
		return err
	}
	// Codes are built in the scratch array and copied to the output stream, so
	// that the stream layout is the one of the word array.
	words := bitfield.Words(n)
	if len(enc.buf) < words {
		enc.buf = make(bitfield.Array, words)
	}
	if _, err := enc.c.Encode(enc.buf, 0, x); err != nil {
		return err
	}
	for off := uint64(0); off < n; off += 64 {
		width := uint64(64)
		if n-off < 64 {
			width = n - off
		}
		v, _ := enc.buf.Get(off, uint(width))
		if err := enc.bw.WriteBits(v, uint8(width)); err != nil {
			return errutil.Err(err)
		}
	}
	enc.nbits += n
	return nil
}

// EncodeAll writes the codes of the given integers to the output stream.
func (enc *Encoder) EncodeAll(xs []uint64) error {
	for _, x := range xs {
		if err := enc.Encode(x); err != nil {
			return err
		}
	}
	return nil
}

// Bits returns the number of bits written, excluding padding.
func (enc *Encoder) Bits() uint64 {
	return enc.nbits
}

// Close flushes pending writes, padding the output stream with zero bits to a
// byte boundary. It does not close the underlying io.Writer.
func (enc *Encoder) Close() error {
	if _, err := enc.bw.Align(); err != nil {
		return errutil.Err(err)
	}
	return nil
}
