package validation

import (
	"errors"
	"fmt"
	"strings"

	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Validate descriptors of @font-face rules.
// See https://www.w3.org/TR/css-fonts-3/#font-resources.

// FontSource is one entry of the `src` descriptor.
type FontSource struct {
	// Local is true for `local(name)` sources, whose Value is
	// the font name. Otherwise Value is an URL.
	Local  bool
	Value  string
	Format string
}

// FontFace stores the validated descriptors of a @font-face rule.
// Omitted descriptors use their initial value.
type FontFace struct {
	Family       string
	Src          []FontSource
	Style        string
	Weight       string
	Stretch      string
	Display      string
	UnicodeRange []pa.UnicodeRange
	Pos          pa.Pos
}

var (
	errMissingFamily = errors.New("missing font-family descriptor")
	errMissingSrc    = errors.New("missing src descriptor")
)

type fontFaceDescriptorParser = func(tokens []pa.Token, out *FontFace) error

var fontFaceDescriptors = map[string]fontFaceDescriptorParser{
	"font-family":   fontFamilyDescriptor,
	"src":           srcDescriptor,
	"font-style":    fontStyleDescriptor,
	"font-weight":   fontWeightDescriptor,
	"font-stretch":  fontStretchDescriptor,
	"unicode-range": unicodeRangeDescriptor,
	"font-display":  fontDisplayDescriptor,
}

// familyName returns the name of a string or a sequence of identifiers,
// or an empty string.
func familyName(tokens []pa.Token) string {
	if len(tokens) == 1 {
		if str, ok := tokens[0].(pa.String); ok {
			return str.Value
		}
	}
	var values []string
	for _, token := range tokens {
		ident, ok := token.(pa.Ident)
		if !ok {
			return ""
		}
		values = append(values, ident.Value)
	}
	return strings.Join(values, " ")
}

func fontFamilyDescriptor(tokens []pa.Token, out *FontFace) error {
	s := familyName(tokens)
	if s == "" {
		return ErrInvalidValue
	}
	out.Family = s
	return nil
}

func fontSource(tokens []pa.Token) (FontSource, bool) {
	if len(tokens) == 0 || len(tokens) > 2 {
		return FontSource{}, false
	}
	var format string
	if len(tokens) == 2 {
		fn, ok := tokens[1].(pa.FunctionBlock)
		if !ok || fn.LowerName() != "format" {
			return FontSource{}, false
		}
		format = familyName(pa.RemoveWhitespace(fn.Arguments))
	}
	switch token := tokens[0].(type) {
	case pa.URL:
		return FontSource{Value: token.Value, Format: format}, true
	case pa.FunctionBlock:
		if token.LowerName() == "local" {
			name := familyName(pa.RemoveWhitespace(token.Arguments))
			return FontSource{Local: true, Value: name, Format: format}, name != ""
		}
		if token.LowerName() == "url" {
			args := pa.RemoveWhitespace(token.Arguments)
			if len(args) == 1 && isString(args[0]) {
				return FontSource{Value: args[0].(pa.String).Value, Format: format}, true
			}
		}
	}
	return FontSource{}, false
}

func srcDescriptor(tokens []pa.Token, out *FontFace) error {
	var l []FontSource
	for _, part := range pa.SplitOnComma(tokens) {
		source, ok := fontSource(pa.RemoveWhitespace(part))
		if !ok {
			return ErrInvalidValue
		}
		l = append(l, source)
	}
	out.Src = l
	return nil
}

func singleKeyword(tokens []pa.Token, allowed utils.Set) string {
	if len(tokens) == 1 && isKeyword(tokens[0], allowed) {
		return tokens[0].(pa.Ident).Lower()
	}
	return ""
}

func fontStyleDescriptor(tokens []pa.Token, out *FontFace) error {
	keyword := singleKeyword(tokens, utils.NewSet("normal", "italic", "oblique"))
	if keyword == "" {
		return fmt.Errorf("unsupported font-style descriptor: %s", pa.SerializeCompact(tokens))
	}
	out.Style = keyword
	return nil
}

func fontWeightDescriptor(tokens []pa.Token, out *FontFace) error {
	// a range of two weights is valid
	if len(tokens) == 0 || len(tokens) > 2 {
		return ErrInvalidValue
	}
	for _, token := range tokens {
		if !pa.IsIdent(token, "normal") && !pa.IsIdent(token, "bold") && !isFontWeight(token) {
			return ErrInvalidValue
		}
	}
	out.Weight = pa.SerializeCompact(tokens)
	return nil
}

func fontStretchDescriptor(tokens []pa.Token, out *FontFace) error {
	if keyword := singleKeyword(tokens, fontStretches); keyword != "" || (len(tokens) == 1 && pa.IsIdent(tokens[0], "normal")) {
		out.Stretch = tokens[0].(pa.Ident).Lower()
		return nil
	}
	return fmt.Errorf("unsupported font-stretch descriptor: %s", pa.SerializeCompact(tokens))
}

func unicodeRangeDescriptor(tokens []pa.Token, out *FontFace) error {
	var ranges []pa.UnicodeRange
	for _, part := range pa.SplitOnComma(tokens) {
		part = pa.RemoveWhitespace(part)
		if len(part) != 1 {
			return ErrInvalidValue
		}
		r, ok := part[0].(pa.UnicodeRange)
		if !ok || r.Start > r.End {
			return ErrInvalidValue
		}
		ranges = append(ranges, r)
	}
	out.UnicodeRange = ranges
	return nil
}

func fontDisplayDescriptor(tokens []pa.Token, out *FontFace) error {
	keyword := singleKeyword(tokens, utils.NewSet("auto", "block", "swap", "fallback", "optional"))
	if keyword == "" {
		return ErrInvalidValue
	}
	out.Display = keyword
	return nil
}

// FontFace validates the descriptors of a @font-face rule.
// Invalid descriptors are logged and ignored; an error is returned
// only when the font-family or src descriptors are missing.
func (d *Decomposer) FontFace(rule *pa.FontFaceRule) (FontFace, error) {
	out := FontFace{Style: "normal", Weight: "normal", Stretch: "normal", Display: "auto", Pos: rule.Pos}
	for _, decl := range rule.Declarations {
		if decl.Important {
			continue
		}
		name := decl.LowerName()
		tokens := pa.RemoveWhitespace(decl.Value)
		parser, ok := fontFaceDescriptors[name]
		var err error
		if !ok {
			err = fmt.Errorf("unknown descriptor %s", name)
		} else {
			err = parser(tokens, &out)
		}
		if err != nil {
			d.log.Warn("ignored font-face descriptor",
				zap.String("property", decl.Name),
				zap.String("value", pa.SerializeCompact(decl.Value)),
				zap.Int("line", decl.Pos.Line),
				zap.Error(err))
		}
	}
	var err error
	if out.Family == "" {
		err = multierr.Append(err, errMissingFamily)
	}
	if len(out.Src) == 0 {
		err = multierr.Append(err, errMissingSrc)
	}
	return out, err
}
