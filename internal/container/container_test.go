package container

import (
	"bytes"
	"io"
	"testing"

	"github.com/mewkiz/bitenc"
	"github.com/mewkiz/bitenc/bitfield"
	"github.com/mewkiz/bitenc/stream"
	"github.com/mewkiz/pkg/hashutil/crc8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderLayout(t *testing.T) {
	hdr := Header{
		Scheme:     bitenc.SchemeFibonacci,
		Signed:     true,
		Compressed: false,
		Count:      3,
		Bits:       0x0102,
	}
	buf := new(bytes.Buffer)
	require.NoError(t, writeHeader(buf, hdr))
	want := []byte{
		'b', 'E', 'n', 'c',
		Version,
		byte(bitenc.SchemeFibonacci),
		0x80, // signed, not compressed
		0, 0, 0, 0, 0, 0, 0, 3,
		0, 0, 0, 0, 0, 0, 0x01, 0x02,
	}
	assert.Equal(t, want, buf.Bytes())
	assert.Len(t, want, headerSize-1)
}

// withChecksum returns the given signature and header followed by its CRC-8.
func withChecksum(hdr []byte) []byte {
	hdr = append([]byte(nil), hdr[:headerSize-1]...)
	return append(hdr, crc8.ChecksumATM(hdr))
}

func TestRoundTrip(t *testing.T) {
	xs := []uint64{0, 1, 2, 100, 1000, 1 << 40, 3, 3, 3, 7}
	for _, s := range []bitenc.Scheme{bitenc.SchemeGeneralizedUnary, bitenc.SchemeFibonacci} {
		for _, compressed := range []bool{false, true} {
			words, nbits, err := bitenc.Pack(s.Coder(), xs)
			require.NoError(t, err)
			hdr := Header{
				Scheme:     s,
				Compressed: compressed,
				Count:      uint64(len(xs)),
				Bits:       nbits,
			}
			buf := new(bytes.Buffer)
			require.NoError(t, Write(buf, hdr, words))
			if !compressed {
				// Trailing data must not be consumed by the payload reader.
				buf.WriteString("trailer")
			}

			r := bytes.NewReader(buf.Bytes())
			got, err := ReadHeader(r)
			require.NoError(t, err)
			assert.Equal(t, hdr, got)

			payload, err := got.Payload(r)
			require.NoError(t, err)
			dec, err := stream.NewDecoder(payload, got.Scheme)
			require.NoError(t, err)
			ys, err := dec.DecodeN(int(got.Count))
			require.NoError(t, err)
			assert.Equal(t, xs, ys)
			require.NoError(t, payload.Close())

			if !compressed {
				rest, err := io.ReadAll(r)
				require.NoError(t, err)
				assert.Equal(t, "trailer", string(rest))
			}
		}
	}
}

func TestReadHeaderInvalid(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, writeHeader(buf, Header{Scheme: bitenc.SchemeUnary, Count: 1, Bits: 1}))
	valid := withChecksum(buf.Bytes())
	_, err := ReadHeader(bytes.NewReader(valid))
	require.NoError(t, err)

	badSig := withChecksum(append([]byte("fLaC"), valid[4:]...))
	_, err = ReadHeader(bytes.NewReader(badSig))
	assert.ErrorContains(t, err, "invalid signature")

	badCRC := append([]byte(nil), valid...)
	badCRC[12]++
	_, err = ReadHeader(bytes.NewReader(badCRC))
	assert.ErrorContains(t, err, "checksum mismatch")

	badVersion := append([]byte(nil), valid...)
	badVersion[4] = 2
	_, err = ReadHeader(bytes.NewReader(withChecksum(badVersion)))
	assert.ErrorContains(t, err, "unsupported version")

	badScheme := append([]byte(nil), valid...)
	badScheme[5] = 42
	_, err = ReadHeader(bytes.NewReader(withChecksum(badScheme)))
	assert.ErrorContains(t, err, "invalid scheme")

	_, err = ReadHeader(bytes.NewReader(valid[:10]))
	assert.Error(t, err)
}

func TestWriteTooLong(t *testing.T) {
	err := Write(new(bytes.Buffer), Header{Bits: 65}, make(bitfield.Array, 1))
	assert.Error(t, err)
}
