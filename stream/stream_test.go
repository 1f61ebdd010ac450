package stream_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/rand"
	"testing"

	"github.com/mewkiz/bitenc"
	"github.com/mewkiz/bitenc/stream"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomValues returns n random integers representable by the given scheme.
func randomValues(r *rand.Rand, s bitenc.Scheme, n int) []uint64 {
	xs := make([]uint64, n)
	for i := range xs {
		switch s {
		case bitenc.SchemeUnary:
			xs[i] = uint64(r.Intn(200))
		case bitenc.SchemeGeneralizedUnary:
			xs[i] = r.Uint64() >> uint(1+r.Intn(63))
		case bitenc.SchemeFibonacci:
			xs[i] = r.Uint64() >> uint(1+r.Intn(63))
		default:
			xs[i] = r.Uint64()>>uint(r.Intn(64)) | 1
		}
	}
	return xs
}

// wordBytes returns the big-endian serialization of the first nbits bits of
// the given words.
func wordBytes(words []uint64, nbits uint64) []byte {
	buf := make([]byte, 8*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint64(buf[8*i:], w)
	}
	return buf[:(nbits+7)/8]
}

func TestEncoderMatchesArray(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, s := range bitenc.Schemes() {
		t.Run(s.String(), func(t *testing.T) {
			xs := randomValues(r, s, 500)
			a, nbits, err := bitenc.Pack(s.Coder(), xs)
			require.NoError(t, err)

			out := new(bytes.Buffer)
			enc, err := stream.NewEncoder(out, s)
			require.NoError(t, err)
			require.NoError(t, enc.EncodeAll(xs))
			require.NoError(t, enc.Close())

			assert.Equal(t, nbits, enc.Bits())
			assert.Equal(t, wordBytes(a, nbits), out.Bytes())
		})
	}
}

func TestDecoderReadsArray(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	for _, s := range bitenc.Schemes() {
		t.Run(s.String(), func(t *testing.T) {
			xs := randomValues(r, s, 500)
			a, nbits, err := bitenc.Pack(s.Coder(), xs)
			require.NoError(t, err)

			dec, err := stream.NewDecoder(bytes.NewReader(wordBytes(a, nbits)), s)
			require.NoError(t, err)
			got, err := dec.DecodeN(len(xs))
			require.NoError(t, err)
			assert.Equal(t, xs, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	golden := []struct {
		s  bitenc.Scheme
		xs []uint64
	}{
		{s: bitenc.SchemeUnary, xs: []uint64{0, 1, 4, 63, 64, 65, 127, 128, 200}},
		{s: bitenc.SchemeGeneralizedUnary, xs: []uint64{0, 7, 8, 39, 40, 167, 168, 1 << 40, 1 << 63}},
		{s: bitenc.SchemeEliasGamma, xs: []uint64{1, 2, 3, 4, 1 << 32, 1<<63 + 1, ^uint64(0)}},
		{s: bitenc.SchemeEliasDelta, xs: []uint64{1, 2, 3, 4, 16, 1 << 32, ^uint64(0)}},
		{s: bitenc.SchemeFibonacci, xs: []uint64{0, 1, 2, 3, 12, 10000, ^uint64(0) - 1}},
	}
	for _, g := range golden {
		out := new(bytes.Buffer)
		enc, err := stream.NewEncoder(out, g.s)
		require.NoError(t, err)
		for _, x := range g.xs {
			require.NoError(t, enc.Encode(x), "%v: encoding %d", g.s, x)
		}
		require.NoError(t, enc.Close())

		dec, err := stream.NewDecoder(bytes.NewReader(out.Bytes()), g.s)
		require.NoError(t, err)
		for _, want := range g.xs {
			got, err := dec.Decode()
			require.NoError(t, err, "%v: decoding %d", g.s, want)
			assert.Equal(t, want, got, "%v", g.s)
			n, _ := g.s.Coder().Size(want)
			assert.Equal(t, n, dec.Bits(), "%v: size of %d", g.s, want)
		}
	}
}

func TestEncodeRange(t *testing.T) {
	out := new(bytes.Buffer)
	enc, err := stream.NewEncoder(out, bitenc.SchemeEliasGamma)
	require.NoError(t, err)
	err = enc.Encode(0)
	assert.Equal(t, bitenc.ErrRange, errors.Cause(err))
	assert.Zero(t, enc.Bits())
}

func TestDecodeEOF(t *testing.T) {
	// Empty stream.
	dec, err := stream.NewDecoder(bytes.NewReader(nil), bitenc.SchemeEliasDelta)
	require.NoError(t, err)
	_, err = dec.Decode()
	assert.Equal(t, io.EOF, err)

	// Stream ending within a code.
	out := new(bytes.Buffer)
	enc, err := stream.NewEncoder(out, bitenc.SchemeUnary)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(20))
	require.NoError(t, enc.Close())
	dec, err = stream.NewDecoder(bytes.NewReader(out.Bytes()[:1]), bitenc.SchemeUnary)
	require.NoError(t, err)
	_, err = dec.Decode()
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	// Fewer integers than requested.
	dec, err = stream.NewDecoder(bytes.NewReader(out.Bytes()), bitenc.SchemeUnary)
	require.NoError(t, err)
	_, err = dec.DecodeN(2)
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestDecodeCorrupt(t *testing.T) {
	golden := []struct {
		s     bitenc.Scheme
		input []byte
	}{
		// 64 zero bits followed by a one bit.
		{s: bitenc.SchemeEliasGamma, input: []byte{0, 0, 0, 0, 0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		// Bucket 31 of the default generalized unary code.
		{s: bitenc.SchemeGeneralizedUnary, input: []byte{0, 0, 0, 1, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		// Alternating bits never terminate a Fibonacci code.
		{s: bitenc.SchemeFibonacci, input: bytes.Repeat([]byte{0xAA}, 16)},
	}
	for _, g := range golden {
		dec, err := stream.NewDecoder(bytes.NewReader(g.input), g.s)
		require.NoError(t, err)
		_, err = dec.Decode()
		assert.Equal(t, bitenc.ErrCorrupt, errors.Cause(err), "%v", g.s)
	}
}

func TestSkip(t *testing.T) {
	xs := []uint64{5, 300, 1 << 50, 2, 9}
	a, nbits, err := bitenc.Pack(bitenc.EliasGamma{}, xs)
	require.NoError(t, err)
	// Position of the third code.
	skip, err := bitenc.PackedSize(bitenc.EliasGamma{}, xs[:2])
	require.NoError(t, err)

	dec, err := stream.NewDecoder(bytes.NewReader(wordBytes(a, nbits)), bitenc.SchemeEliasGamma)
	require.NoError(t, err)
	require.NoError(t, dec.Skip(skip))
	got, err := dec.DecodeN(3)
	require.NoError(t, err)
	assert.Equal(t, xs[2:], got)

	assert.Equal(t, io.ErrUnexpectedEOF, dec.Skip(1000))
}

func TestInvalidScheme(t *testing.T) {
	_, err := stream.NewEncoder(new(bytes.Buffer), bitenc.Scheme(99))
	assert.Error(t, err)
	_, err = stream.NewDecoder(bytes.NewReader(nil), bitenc.Scheme(99))
	assert.Error(t, err)
}
