package main

import (
	"bufio"

	"github.com/mewkiz/bitenc"
	"github.com/mewkiz/bitenc/internal/container"
	"github.com/mewkiz/pkg/errutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [FILE.txt]",
		Short: "Pack whitespace separated integers into a container",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.encode,
	}
	cmd.Flags().StringP(keyScheme, "s", "gamma", "coding scheme (unary, genunary, gamma, delta, fibonacci)")
	cmd.Flags().Bool(keySigned, false, "ZigZag encode signed integers")
	cmd.Flags().Bool(keyZstd, false, "compress payload using Zstandard")
	cmd.Flags().StringP(keyOutput, "o", "", "output path (default standard output)")
	return cmd
}

// encode packs the integers of the input file into a container.
func (a *app) encode(cmd *cobra.Command, args []string) error {
	s, err := bitenc.ParseScheme(a.v.GetString(keyScheme))
	if err != nil {
		return errors.WithStack(err)
	}
	signed := a.v.GetBool(keySigned)

	r, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer r.Close()
	xs, err := readIntegers(r, signed)
	if err != nil {
		return err
	}
	a.log.Debug().Int("count", len(xs)).Bool("signed", signed).Msg("read integers")

	words, nbits, err := bitenc.Pack(s.Coder(), xs)
	if err != nil {
		return errors.WithMessagef(err, "unable to pack integers using %v", s)
	}
	hdr := container.Header{
		Scheme:     s,
		Signed:     signed,
		Compressed: a.v.GetBool(keyZstd),
		Count:      uint64(len(xs)),
		Bits:       nbits,
	}

	out, err := createOutput(cmd, a.v.GetString(keyOutput))
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriter(out)
	if err := container.Write(bw, hdr, words); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errutil.Err(err)
	}
	if err := out.Close(); err != nil {
		return errutil.Err(err)
	}
	a.log.Info().
		Str("scheme", s.String()).
		Uint64("count", hdr.Count).
		Uint64("bits", nbits).
		Bool("zstd", hdr.Compressed).
		Msg("packed integers")
	return nil
}
