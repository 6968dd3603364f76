package validation

import (
	"fmt"
	"strings"

	pa "github.com/benoitkugler/cascade/css/parser"
)

// ErrorKind classifies decomposition failures.
type ErrorKind uint8

const (
	// MissingRequiredLonghand is returned when a mandatory component
	// (like the font size in `font`) is absent.
	MissingRequiredLonghand ErrorKind = iota + 1
	// UnknownIdentifier is an identifier matching no remaining component.
	UnknownIdentifier
	// WrongValueType is a non identifier token matching no remaining component.
	WrongValueType
	// AmbiguousLayerCount is an empty layer, or inconsistent layer counts.
	AmbiguousLayerCount
	// UnassignedValues are tokens left once every component is assigned.
	UnassignedValues
)

func (k ErrorKind) String() string {
	switch k {
	case MissingRequiredLonghand:
		return "missing required longhand"
	case UnknownIdentifier:
		return "unknown identifier"
	case WrongValueType:
		return "wrong value type"
	case AmbiguousLayerCount:
		return "ambiguous layer count"
	case UnassignedValues:
		return "unassigned values"
	default:
		return fmt.Sprintf("<error kind %d>", k)
	}
}

// ShorthandError is returned when a shorthand value can't be decomposed.
type ShorthandError struct {
	Kind      ErrorKind
	Shorthand string
	// Tokens are the offending tokens, if any.
	Tokens []pa.Token
	// Remaining are the longhands not assigned when the error occurred.
	Remaining []string
}

func (e *ShorthandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s value: %s", e.Shorthand, e.Kind)
	if len(e.Tokens) != 0 {
		fmt.Fprintf(&b, " at %q", pa.SerializeCompact(e.Tokens))
	}
	if len(e.Remaining) != 0 {
		fmt.Fprintf(&b, " (unassigned: %s)", strings.Join(e.Remaining, ", "))
	}
	return b.String()
}

func newError(kind ErrorKind, shorthand string, tokens []pa.Token, remaining ...string) *ShorthandError {
	return &ShorthandError{Kind: kind, Shorthand: shorthand, Tokens: tokens, Remaining: remaining}
}

// unmatched builds the error for a token no component accepts.
func unmatched(shorthand string, tokens []pa.Token, remaining []string) *ShorthandError {
	kind := WrongValueType
	switch {
	case len(remaining) == 0:
		kind = UnassignedValues
	case len(tokens) != 0 && tokens[0].Kind() == pa.KIdent:
		kind = UnknownIdentifier
	}
	return newError(kind, shorthand, tokens, remaining...)
}
