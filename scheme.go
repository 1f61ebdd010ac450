package bitenc

import (
	"fmt"

	"github.com/pkg/errors"
)

// Scheme identifies one of the supported codes.
type Scheme uint8

// Supported codes.
const (
	SchemeUnary Scheme = iota
	SchemeGeneralizedUnary
	SchemeEliasGamma
	SchemeEliasDelta
	SchemeFibonacci
)

// schemeName maps from scheme to name.
var schemeName = map[Scheme]string{
	SchemeUnary:            "unary",
	SchemeGeneralizedUnary: "genunary",
	SchemeEliasGamma:       "gamma",
	SchemeEliasDelta:       "delta",
	SchemeFibonacci:        "fibonacci",
}

func (s Scheme) String() string {
	if name, ok := schemeName[s]; ok {
		return name
	}
	return fmt.Sprintf("Scheme(%d)", uint8(s))
}

// Valid reports whether s identifies a supported code.
func (s Scheme) Valid() bool {
	_, ok := schemeName[s]
	return ok
}

// Coder returns the coder of the scheme. Generalized unary uses the
// DefaultGeneralizedUnary parameters. Coder returns nil for an invalid scheme.
func (s Scheme) Coder() Coder {
	switch s {
	case SchemeUnary:
		return Unary{}
	case SchemeGeneralizedUnary:
		return DefaultGeneralizedUnary
	case SchemeEliasGamma:
		return EliasGamma{}
	case SchemeEliasDelta:
		return EliasDelta{}
	case SchemeFibonacci:
		return Fibonacci{}
	}
	return nil
}

// Schemes returns all supported schemes, in order of their numeric value.
func Schemes() []Scheme {
	return []Scheme{SchemeUnary, SchemeGeneralizedUnary, SchemeEliasGamma, SchemeEliasDelta, SchemeFibonacci}
}

// ParseScheme returns the scheme with the given name.
func ParseScheme(name string) (Scheme, error) {
	for s, n := range schemeName {
		if n == name {
			return s, nil
		}
	}
	return 0, errors.Errorf("bitenc.ParseScheme: unknown scheme %q", name)
}
