package main

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/mewkiz/bitenc/internal/bits"
	"github.com/mewkiz/pkg/errutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// openInput returns a reader of the file specified by args, or standard input
// if args is empty or "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return f, nil
}

// createOutput returns a writer of the given output file, or standard output
// if path is empty or "-".
func createOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// readIntegers reads whitespace separated integers from r. Signed integers are
// ZigZag encoded.
func readIntegers(r io.Reader, signed bool) ([]uint64, error) {
	var xs []uint64
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	for s.Scan() {
		word := s.Text()
		if signed {
			v, err := strconv.ParseInt(word, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid integer at index %d", len(xs))
			}
			xs = append(xs, bits.EncodeZigZag(v))
			continue
		}
		x, err := strconv.ParseUint(word, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid integer at index %d", len(xs))
		}
		xs = append(xs, x)
	}
	if err := s.Err(); err != nil {
		return nil, errutil.Err(err)
	}
	return xs, nil
}
