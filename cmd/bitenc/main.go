// bitenc is a tool which packs integers into variable-length codes.
//
// Usage:
//
//	bitenc encode [OPTION]... [FILE.txt]
//	bitenc decode [OPTION]... [FILE.be]
//	bitenc stats [OPTION]... [FILE.txt]
//
// The encode command reads whitespace separated integers and stores them in a
// container using the scheme of the --scheme flag (unary, genunary, gamma,
// delta or fibonacci). The decode command prints the integers of a container,
// one per line. The stats command reports the packed size of the integers for
// each scheme.
//
// Flags may also be specified through environment variables prefixed with
// BITENC_, e.g. BITENC_SCHEME=fibonacci or BITENC_LOG_LEVEL=debug.
package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		log.Error().Msgf("%+v", err)
		os.Exit(1)
	}
}
