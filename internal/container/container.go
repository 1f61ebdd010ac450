// Package container implements the file format of packed integer sequences
// written by the bitenc tool.
//
// The basic structure of a container is:
//    - The four byte string signature "bEnc".
//    - The header, specifying the scheme and the number of integers, followed
//      by a CRC-8 of the signature and header.
//    - The payload; the packed codes, zero padded to a byte boundary and
//      optionally compressed using Zstandard.
package container

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/icza/bitio"
	"github.com/klauspost/compress/zstd"
	"github.com/mewkiz/bitenc"
	"github.com/mewkiz/bitenc/bitfield"
	"github.com/mewkiz/pkg/errutil"
	"github.com/mewkiz/pkg/hashutil/crc8"
	"github.com/pkg/errors"
)

// signature is present at the beginning of each container.
const signature = "bEnc"

// Version is the version of the container format.
const Version = 1

// headerSize is the size in bytes of the signature and header, including the
// trailing CRC-8.
const headerSize = 24

// A Header describes the payload of a container.
type Header struct {
	// Scheme of the codes.
	Scheme bitenc.Scheme
	// Integers are ZigZag encoded signed integers.
	Signed bool
	// Payload is compressed using Zstandard.
	Compressed bool
	// Number of integers.
	Count uint64
	// Length of the packed codes in bits.
	Bits uint64
}

// payloadSize returns the size in bytes of the uncompressed payload.
func (hdr Header) payloadSize() uint64 {
	return (hdr.Bits + 7) / 8
}

// Write writes a container holding the first hdr.Bits bits of the given word
// array to w.
func Write(w io.Writer, hdr Header, words bitfield.Array) error {
	if hdr.Bits > words.Len() {
		return errors.Errorf("container.Write: payload length %d exceeds %d-bit array", hdr.Bits, words.Len())
	}
	buf := new(bytes.Buffer)
	if err := writeHeader(buf, hdr); err != nil {
		return errutil.Err(err)
	}
	// 8 bits: CRC-8 of signature and header.
	buf.WriteByte(crc8.ChecksumATM(buf.Bytes()))
	if _, err := io.Copy(w, buf); err != nil {
		return errutil.Err(err)
	}

	// Store payload.
	payload := make([]byte, 0, 8*len(words))
	for _, word := range words {
		payload = binary.BigEndian.AppendUint64(payload, word)
	}
	payload = payload[:hdr.payloadSize()]
	if !hdr.Compressed {
		if _, err := w.Write(payload); err != nil {
			return errutil.Err(err)
		}
		return nil
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return errutil.Err(err)
	}
	if _, err := zw.Write(payload); err != nil {
		zw.Close()
		return errutil.Err(err)
	}
	if err := zw.Close(); err != nil {
		return errutil.Err(err)
	}
	return nil
}

// writeHeader writes the signature and header.
func writeHeader(w io.Writer, hdr Header) error {
	bw := bitio.NewWriter(w)
	// 4 bytes: signature.
	if _, err := bw.Write([]byte(signature)); err != nil {
		return errutil.Err(err)
	}
	// 8 bits: version.
	if err := bw.WriteBits(Version, 8); err != nil {
		return errutil.Err(err)
	}
	// 8 bits: scheme.
	if err := bw.WriteBits(uint64(hdr.Scheme), 8); err != nil {
		return errutil.Err(err)
	}
	// 1 bit: signed.
	if err := bw.WriteBool(hdr.Signed); err != nil {
		return errutil.Err(err)
	}
	// 1 bit: compressed.
	if err := bw.WriteBool(hdr.Compressed); err != nil {
		return errutil.Err(err)
	}
	// 6 bits: reserved.
	if err := bw.WriteBits(0, 6); err != nil {
		return errutil.Err(err)
	}
	// 64 bits: count.
	if err := bw.WriteBits(hdr.Count, 64); err != nil {
		return errutil.Err(err)
	}
	// 64 bits: payload length in bits.
	if err := bw.WriteBits(hdr.Bits, 64); err != nil {
		return errutil.Err(err)
	}
	// Flush pending writes.
	if _, err := bw.Align(); err != nil {
		return errutil.Err(err)
	}
	return nil
}

// ReadHeader reads and validates the signature and header of a container. The
// payload may subsequently be read from r using Header.Payload.
func ReadHeader(r io.Reader) (Header, error) {
	var hdr Header
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return hdr, errutil.Err(err)
	}
	// Verify "bEnc" signature (size: 4 bytes).
	if sig := string(buf[:4]); sig != signature {
		return hdr, errors.Errorf("container.ReadHeader: invalid signature; expected %q, got %q", signature, sig)
	}
	// Verify the CRC-8.
	crc := buf[headerSize-1]
	if got := crc8.ChecksumATM(buf[:headerSize-1]); crc != got {
		return hdr, errors.Errorf("container.ReadHeader: checksum mismatch; expected 0x%02X, got 0x%02X", crc, got)
	}
	br := bitio.NewReader(bytes.NewReader(buf[4 : headerSize-1]))
	// 8 bits: version.
	version, err := br.ReadBits(8)
	if err != nil {
		return hdr, errutil.Err(err)
	}
	if version != Version {
		return hdr, errors.Errorf("container.ReadHeader: unsupported version %d", version)
	}
	// 8 bits: scheme.
	x, err := br.ReadBits(8)
	if err != nil {
		return hdr, errutil.Err(err)
	}
	hdr.Scheme = bitenc.Scheme(x)
	if !hdr.Scheme.Valid() {
		return hdr, errors.Errorf("container.ReadHeader: invalid scheme %d", x)
	}
	// 1 bit: signed.
	if hdr.Signed, err = br.ReadBool(); err != nil {
		return hdr, errutil.Err(err)
	}
	// 1 bit: compressed.
	if hdr.Compressed, err = br.ReadBool(); err != nil {
		return hdr, errutil.Err(err)
	}
	// 6 bits: reserved.
	if _, err := br.ReadBits(6); err != nil {
		return hdr, errutil.Err(err)
	}
	// 64 bits: count.
	if hdr.Count, err = br.ReadBits(64); err != nil {
		return hdr, errutil.Err(err)
	}
	// 64 bits: payload length in bits.
	if hdr.Bits, err = br.ReadBits(64); err != nil {
		return hdr, errutil.Err(err)
	}
	return hdr, nil
}

// Payload returns a reader of the uncompressed payload following the header in
// r. Callers should close the reader when done reading from it; it does not
// close r.
func (hdr Header) Payload(r io.Reader) (io.ReadCloser, error) {
	if !hdr.Compressed {
		return io.NopCloser(io.LimitReader(r, int64(hdr.payloadSize()))), nil
	}
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, errutil.Err(err)
	}
	return zr.IOReadCloser(), nil
}
