package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/mewkiz/bitenc"
	"github.com/mewkiz/pkg/errutil"
	"github.com/spf13/cobra"
)

func (a *app) newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [FILE.txt]",
		Short: "Report the packed size of integers for each scheme",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.stats,
	}
	cmd.Flags().Bool(keySigned, false, "ZigZag encode signed integers")
	return cmd
}

// stats prints the packed size of the integers of the input file for each
// scheme. Schemes unable to represent every integer are reported as such.
func (a *app) stats(cmd *cobra.Command, args []string) error {
	r, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer r.Close()
	xs, err := readIntegers(r, a.v.GetBool(keySigned))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "scheme\tbits\tbytes\tbits/value")
	for _, s := range bitenc.Schemes() {
		nbits, err := bitenc.PackedSize(s.Coder(), xs)
		if err != nil {
			a.log.Debug().Str("scheme", s.String()).Err(err).Msg("unable to represent integers")
			fmt.Fprintf(tw, "%v\t-\t-\t-\n", s)
			continue
		}
		perValue := 0.0
		if len(xs) > 0 {
			perValue = float64(nbits) / float64(len(xs))
		}
		fmt.Fprintf(tw, "%v\t%d\t%d\t%.2f\n", s, nbits, (nbits+7)/8, perValue)
	}
	if err := tw.Flush(); err != nil {
		return errutil.Err(err)
	}
	return nil
}
