package main

import (
	"bufio"
	"strconv"

	"github.com/mewkiz/bitenc/internal/bits"
	"github.com/mewkiz/bitenc/internal/container"
	"github.com/mewkiz/bitenc/stream"
	"github.com/mewkiz/pkg/errutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [FILE.be]",
		Short: "Print the integers of a container, one per line",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.decode,
	}
	cmd.Flags().StringP(keyOutput, "o", "", "output path (default standard output)")
	return cmd
}

// decode prints the integers stored in the input container.
func (a *app) decode(cmd *cobra.Command, args []string) error {
	r, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer r.Close()
	br := bufio.NewReader(r)
	hdr, err := container.ReadHeader(br)
	if err != nil {
		return err
	}
	a.log.Debug().
		Str("scheme", hdr.Scheme.String()).
		Uint64("count", hdr.Count).
		Uint64("bits", hdr.Bits).
		Bool("signed", hdr.Signed).
		Bool("zstd", hdr.Compressed).
		Msg("read header")

	payload, err := hdr.Payload(br)
	if err != nil {
		return err
	}
	defer payload.Close()
	dec, err := stream.NewDecoder(payload, hdr.Scheme)
	if err != nil {
		return err
	}

	out, err := createOutput(cmd, a.v.GetString(keyOutput))
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriter(out)
	var (
		buf   []byte
		total uint64
	)
	for i := uint64(0); i < hdr.Count; i++ {
		x, err := dec.Decode()
		if err != nil {
			return errors.Wrapf(err, "unable to decode integer %d of %d", i, hdr.Count)
		}
		total += dec.Bits()
		buf = buf[:0]
		if hdr.Signed {
			buf = strconv.AppendInt(buf, bits.DecodeZigZag(x), 10)
		} else {
			buf = strconv.AppendUint(buf, x, 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return errutil.Err(err)
		}
	}
	if total != hdr.Bits {
		return errors.Errorf("codes span %d bits; expected payload length of %d bits", total, hdr.Bits)
	}
	if err := bw.Flush(); err != nil {
		return errutil.Err(err)
	}
	if err := out.Close(); err != nil {
		return errutil.Err(err)
	}
	a.log.Info().Uint64("count", hdr.Count).Msg("decoded integers")
	return nil
}
