package properties

import (
	"strings"

	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/utils"
)

// Wide identifies the CSS-wide keywords, which override
// the normal value grammar of every property.
type Wide uint8

const (
	NotWide Wide = iota
	Inherit
	Initial
	Unset
	Revert
	// Compat marks a value using the legacy `\9` priority hack :
	// it is kept verbatim and propagated as a whole.
	Compat
)

func (w Wide) String() string {
	switch w {
	case Inherit:
		return "inherit"
	case Initial:
		return "initial"
	case Unset:
		return "unset"
	case Revert:
		return "revert"
	case Compat:
		return "compat"
	default:
		return ""
	}
}

var wideKeywords = map[string]Wide{
	"inherit": Inherit,
	"initial": Initial,
	"unset":   Unset,
	"revert":  Revert,
}

// ValueKind is the type tag of a Value.
type ValueKind uint8

const (
	KindEmpty ValueKind = iota
	KindTokens
	KindWide
	// KindPending is a shorthand value referencing var(), whose
	// decomposition is deferred to computed-value time.
	KindPending
)

// Value is an opaque declared value: the significant tokens
// of the declaration, plus flags for the special cases.
// Values are immutable and safe to share.
type Value struct {
	tokens      []pa.Token
	text        string
	wide        Wide
	pending     string // shorthand name for KindPending
	subproperty bool
}

// NewValue builds a value from the tokens of a declaration,
// dropping whitespace and comments and recognizing the CSS-wide keywords.
func NewValue(tokens []pa.Token) Value {
	tokens = pa.RemoveWhitespace(tokens)
	v := Value{tokens: tokens, text: pa.SerializeCompact(tokens)}
	if len(tokens) == 1 {
		if id, ok := tokens[0].(pa.Ident); ok {
			if w, isWide := wideKeywords[id.Lower()]; isWide {
				v.wide = w
				v.text = w.String()
			}
		}
	}
	if v.wide == NotWide && hasCompatHack(tokens) {
		v.wide = Compat
	}
	return v
}

// ParseValue tokenizes s and calls NewValue.
func ParseValue(s string) Value {
	return NewValue(pa.TokenizeString(s))
}

// WideValue returns the value for the given CSS-wide keyword.
func WideValue(w Wide) Value {
	return Value{wide: w, text: w.String()}
}

// PendingValue returns a value standing for a longhand of `shorthand`
// whose declared tokens contain an unresolved var() reference.
func PendingValue(shorthand string, tokens []pa.Token) Value {
	tokens = pa.RemoveWhitespace(tokens)
	return Value{tokens: tokens, text: pa.SerializeCompact(tokens), pending: shorthand}
}

func hasCompatHack(tokens []pa.Token) bool {
	if len(tokens) == 0 {
		return false
	}
	var raw string
	switch last := tokens[len(tokens)-1].(type) {
	case pa.Ident:
		raw = last.Value
	case pa.Dimension:
		raw = last.Unit
	default:
		return false
	}
	return strings.HasSuffix(raw, `\9`)
}

// AsSubproperty returns a copy of v flagged as set through a shorthand.
func (v Value) AsSubproperty() Value {
	v.subproperty = true
	return v
}

func (v Value) Kind() ValueKind {
	switch {
	case v.pending != "":
		return KindPending
	case v.wide != NotWide && v.wide != Compat:
		return KindWide
	case len(v.tokens) == 0:
		return KindEmpty
	default:
		return KindTokens
	}
}

// Tokens returns the significant tokens of the value.
// The slice must not be modified.
func (v Value) Tokens() []pa.Token { return v.tokens }

// String returns the canonical text of the value.
func (v Value) String() string { return v.text }

func (v Value) Wide() Wide { return v.wide }

func (v Value) IsInherit() bool { return v.wide == Inherit }
func (v Value) IsInitial() bool { return v.wide == Initial }
func (v Value) IsUnset() bool   { return v.wide == Unset }
func (v Value) IsCompat() bool  { return v.wide == Compat }

// IsSubproperty returns true if the value was set by a shorthand.
func (v Value) IsSubproperty() bool { return v.subproperty }

// PendingShorthand returns the shorthand whose var() substitution
// is pending, or an empty string.
func (v Value) PendingShorthand() string { return v.pending }

// IsKeyword returns true if the value is the single identifier kw.
func (v Value) IsKeyword(kw string) bool {
	return len(v.tokens) == 1 && pa.IsIdent(v.tokens[0], kw)
}

// Keyword returns the lower case identifier if the value is
// a single identifier, or an empty string.
func (v Value) Keyword() string {
	if len(v.tokens) == 1 {
		if id, ok := v.tokens[0].(pa.Ident); ok {
			return id.Lower()
		}
	}
	return ""
}

// Layers splits the value on top-level commas.
func (v Value) Layers() []Value {
	if v.Kind() != KindTokens {
		return []Value{v}
	}
	parts := pa.SplitOnComma(v.tokens)
	out := make([]Value, len(parts))
	for i, part := range parts {
		out[i] = Value{tokens: part, text: pa.SerializeCompact(part), subproperty: v.subproperty}
	}
	return out
}

// JoinLayers is the inverse of Layers.
func JoinLayers(layers []Value) Value {
	if len(layers) == 1 {
		return layers[0]
	}
	var tokens []pa.Token
	for i, layer := range layers {
		if i > 0 {
			tokens = append(tokens, pa.Literal{Value: ","})
		}
		tokens = append(tokens, layer.tokens...)
	}
	return NewValue(tokens)
}

// Equal compares the canonical form of two values,
// ignoring the subproperty flag.
func (v Value) Equal(other Value) bool {
	return v.wide == other.wide && v.pending == other.pending && v.text == other.text
}

// EqualFold is like Equal, but ASCII case-insensitive.
func (v Value) EqualFold(other Value) bool {
	return v.wide == other.wide && v.pending == other.pending &&
		utils.AsciiLower(v.text) == utils.AsciiLower(other.text)
}
