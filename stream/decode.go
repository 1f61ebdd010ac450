package stream

import (
	"io"

	"github.com/icza/bitio"
	"github.com/mewkiz/bitenc"
	"github.com/mewkiz/pkg/errutil"
	"github.com/pkg/errors"
)

// A Decoder reads integer codes from an input stream.
type Decoder struct {
	// Bit reader of the input stream.
	br *bitio.Reader
	// Scheme of the codes.
	s bitenc.Scheme
	// Number of bits read of the current code.
	n uint64
}

// NewDecoder returns a new decoder which reads codes of the given scheme from
// r.
func NewDecoder(r io.Reader, s bitenc.Scheme) (*Decoder, error) {
	if !s.Valid() {
		return nil, errors.Errorf("stream.NewDecoder: invalid scheme %v", s)
	}
	return &Decoder{br: bitio.NewReader(r), s: s}, nil
}

// Decode reads the next integer from the input stream. It returns io.EOF if the
// input stream ends before the first bit of the code, and io.ErrUnexpectedEOF
// if it ends within the code.
//
// Note that the zero bits padding a stream to a byte boundary are read as the
// beginning of a code; callers must keep track of the number of integers
// stored.
func (dec *Decoder) Decode() (uint64, error) {
	dec.n = 0
	switch dec.s {
	case bitenc.SchemeUnary:
		return dec.readUnary()
	case bitenc.SchemeGeneralizedUnary:
		return dec.readGeneralizedUnary(bitenc.DefaultGeneralizedUnary)
	case bitenc.SchemeEliasGamma:
		return dec.readEliasGamma()
	case bitenc.SchemeEliasDelta:
		return dec.readEliasDelta()
	case bitenc.SchemeFibonacci:
		return dec.readFibonacci()
	}
	panic(errors.Errorf("stream.Decoder.Decode: support for scheme %v not yet implemented", dec.s))
}

// DecodeN reads n integers from the input stream.
func (dec *Decoder) DecodeN(n int) ([]uint64, error) {
	xs := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		x, err := dec.Decode()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		xs = append(xs, x)
	}
	return xs, nil
}

// readBits reads n bits, for 0 <= n <= 64.
func (dec *Decoder) readBits(n uint) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	x, err := dec.br.ReadBits(uint8(n))
	if err != nil {
		return 0, dec.readErr(err)
	}
	dec.n += uint64(n)
	return x, nil
}

// readBool reads a single bit.
func (dec *Decoder) readBool() (bool, error) {
	bit, err := dec.br.ReadBool()
	if err != nil {
		return false, dec.readErr(err)
	}
	dec.n++
	return bit, nil
}

// readErr translates read errors. A stream ending within a code is reported as
// io.ErrUnexpectedEOF.
func (dec *Decoder) readErr(err error) error {
	switch {
	case err == io.EOF && dec.n == 0:
		return io.EOF
	case err == io.EOF, err == io.ErrUnexpectedEOF:
		return io.ErrUnexpectedEOF
	}
	return errutil.Err(err)
}

// readUnary decodes and returns an unary coded integer, whose value is
// represented by the number of leading zeros before a one.
//
// Examples of unary coded binary on the left and decoded decimal on the right:
//
//	1       => 0
//	01      => 1
//	001     => 2
//	0001    => 3
//	00001   => 4
//	000001  => 5
//	0000001 => 6
func (dec *Decoder) readUnary() (x uint64, err error) {
	for {
		bit, err := dec.readBool()
		if err != nil {
			return 0, err
		}
		if bit {
			break
		}
		x++
	}
	return x, nil
}

// readGeneralizedUnary decodes a generalized unary coded integer; the unary
// coded bucket followed by the residual.
func (dec *Decoder) readGeneralizedUnary(g bitenc.GeneralizedUnary) (uint64, error) {
	m, err := dec.readUnary()
	if err != nil {
		return 0, err
	}
	w, err := g.Width(m)
	if err != nil {
		return 0, err
	}
	r, err := dec.readBits(w)
	if err != nil {
		return 0, err
	}
	return g.Value(m, r)
}

// readMantissa reads the b low-order bits of an integer and restores its
// implicit leading one bit.
func (dec *Decoder) readMantissa(b uint) (uint64, error) {
	if b >= 64 {
		return 0, errors.Wrapf(bitenc.ErrCorrupt, "mantissa of %d-bit integer", b+1)
	}
	x, err := dec.readBits(b)
	if err != nil {
		return 0, err
	}
	return 1<<b | x, nil
}

// readEliasGamma decodes an Elias-Gamma coded integer; the unary coded
// floor(log2(x)) followed by the mantissa.
func (dec *Decoder) readEliasGamma() (uint64, error) {
	b, err := dec.readUnary()
	if err != nil {
		return 0, err
	}
	if b >= 64 {
		return 0, errors.Wrapf(bitenc.ErrCorrupt, "Elias-Gamma code of %d-bit integer", b+1)
	}
	return dec.readMantissa(uint(b))
}

// readEliasDelta decodes an Elias-Delta coded integer; the Elias-Gamma coded
// bit length followed by the mantissa.
func (dec *Decoder) readEliasDelta() (uint64, error) {
	l, err := dec.readEliasGamma()
	if err != nil {
		return 0, err
	}
	if l > 64 {
		return 0, errors.Wrapf(bitenc.ErrCorrupt, "Elias-Delta code of %d-bit integer", l)
	}
	return dec.readMantissa(uint(l - 1))
}

// readFibonacci decodes a Fibonacci coded integer, which is terminated by two
// consecutive one bits.
func (dec *Decoder) readFibonacci() (uint64, error) {
	prev, err := dec.readBool()
	if err != nil {
		return 0, err
	}
	var x uint64
	for i := 0; i < bitenc.FibonacciLen; i++ {
		cur, err := dec.readBool()
		if err != nil {
			return 0, err
		}
		if prev {
			f := bitenc.FibonacciNumber(i)
			if x > ^uint64(0)-f {
				return 0, errors.Wrap(bitenc.ErrCorrupt, "Fibonacci code overflows 64 bits")
			}
			x += f
			if cur {
				return x - 1, nil
			}
		}
		prev = cur
	}
	return 0, errors.Wrapf(bitenc.ErrCorrupt, "Fibonacci code longer than %d bits", bitenc.FibonacciLen+1)
}

// Bits returns the number of bits of the most recently decoded code.
func (dec *Decoder) Bits() uint64 {
	return dec.n
}

// Skip discards n bits of the input stream, e.g. to reach the bit position of
// a code within the stream.
func (dec *Decoder) Skip(n uint64) error {
	for ; n >= 64; n -= 64 {
		if _, err := dec.br.ReadBits(64); err != nil {
			return skipErr(err)
		}
	}
	if n > 0 {
		if _, err := dec.br.ReadBits(uint8(n)); err != nil {
			return skipErr(err)
		}
	}
	return nil
}

// skipErr translates errors encountered while skipping bits.
func skipErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return io.ErrUnexpectedEOF
	}
	return errutil.Err(err)
}
