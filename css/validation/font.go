package validation

import (
	pa "github.com/benoitkugler/cascade/css/parser"
	pr "github.com/benoitkugler/cascade/css/properties"
	"github.com/benoitkugler/cascade/utils"
)

var (
	systemFonts   = utils.NewSet("caption", "icon", "menu", "message-box", "small-caption", "status-bar")
	fontStyles    = utils.NewSet("italic", "oblique")
	fontWeights   = utils.NewSet("bold", "bolder", "lighter")
	fontStretches = utils.NewSet("ultra-condensed", "extra-condensed", "condensed", "semi-condensed",
		"semi-expanded", "expanded", "extra-expanded", "ultra-expanded")
	fontSizes = utils.NewSet("xx-small", "x-small", "small", "medium", "large", "x-large",
		"xx-large", "xxx-large", "smaller", "larger")

	couplesLigatures = [][]string{
		{"common-ligatures", "no-common-ligatures"},
		{"historical-ligatures", "no-historical-ligatures"},
		{"discretionary-ligatures", "no-discretionary-ligatures"},
		{"contextual", "no-contextual"},
	}
	couplesNumeric = [][]string{
		{"lining-nums", "oldstyle-nums"},
		{"proportional-nums", "tabular-nums"},
		{"diagonal-fractions", "stacked-fractions"},
		{"ordinal"},
		{"slashed-zero"},
	}
	couplesEastAsian = [][]string{
		{"jis78", "jis83", "jis90", "jis04", "simplified", "traditional"},
		{"full-width", "proportional-width"},
		{"ruby"},
	}
	fontVariantCaps       = utils.NewSet("small-caps", "all-small-caps", "petite-caps", "all-petite-caps", "unicase", "titling-caps")
	fontVariantPositions  = utils.NewSet("sub", "super")
	fontVariantAlternates = utils.NewSet("stylistic", "styleset", "character-variant", "swash", "ornaments", "annotation")
)

func isFontWeight(t pa.Token) bool {
	if isKeyword(t, fontWeights) || isMath(t) {
		return true
	}
	nb, ok := t.(pa.Number)
	return ok && nb.Float() >= 1 && nb.Float() <= 1000
}

func isFontSize(t pa.Token) bool {
	return isKeyword(t, fontSizes) || isLengthPercentage(t, false)
}

func isLineHeight(t pa.Token) bool {
	return pa.IsIdent(t, "normal") || isNumber(t, false) || isLengthPercentage(t, false)
}

// isFontFamily accepts a comma separated list of family names,
// each one being a string or a sequence of identifiers.
func isFontFamily(tokens []pa.Token) bool {
	for _, part := range pa.SplitOnComma(tokens) {
		if len(part) == 0 {
			return false
		}
		if len(part) == 1 && isString(part[0]) {
			continue
		}
		for _, token := range part {
			if !isCustomIdent(token, nil) {
				return false
			}
		}
	}
	return true
}

// Expand the `font` shorthand property.
//
// Style, variant-caps, weight and stretch may come in any order
// and are all optional, `normal` being accepted anywhere among them.
// The size and the family are mandatory. Every other font longhand
// is reset to its initial value. A system font keyword, like `caption`,
// is given to every longhand.
func expandFont(s shorthand, tokens []pa.Token) (Longhands, error) {
	const (
		size       = "font-size"
		lineHeight = "line-height"
		family     = "font-family"
	)
	if len(tokens) == 1 && isKeyword(tokens[0], systemFonts) {
		// resolved to the platform font when computing values
		system := pr.NewValue(tokens)
		out := make(Longhands, len(s.Longhands))
		for _, name := range s.Longhands {
			out[name] = system
		}
		return out, nil
	}
	out := assignment{}
	i := 0
	for count := 0; i < len(tokens) && count < 4; count++ {
		token := tokens[i]
		if pa.IsIdent(token, "normal") {
			i++
			continue
		}
		var name string
		n := 1
		switch {
		case isKeyword(token, fontStyles):
			name = "font-style"
			if pa.IsIdent(token, "oblique") && i+1 < len(tokens) && isAngle(tokens[i+1]) {
				n = 2
			}
		case pa.IsIdent(token, "small-caps"):
			name = "font-variant-caps"
		case isFontWeight(token):
			name = "font-weight"
		case isKeyword(token, fontStretches):
			name = "font-stretch"
		}
		if name == "" {
			break // continue with font-size
		}
		if _, done := out[name]; done {
			return nil, newError(UnassignedValues, s.Name, tokens[i:])
		}
		out[name] = tokens[i : i+n]
		i += n
	}

	if i == len(tokens) || !isFontSize(tokens[i]) {
		return nil, newError(MissingRequiredLonghand, s.Name, tokens[i:], size, family)
	}
	out[size] = tokens[i : i+1]
	i++

	if i < len(tokens) && pa.IsLiteral(tokens[i], "/") {
		if i+1 == len(tokens) || !isLineHeight(tokens[i+1]) {
			return nil, newError(WrongValueType, s.Name, tokens[i:], lineHeight, family)
		}
		out[lineHeight] = tokens[i+1 : i+2]
		i += 2
	}

	if i == len(tokens) {
		return nil, newError(MissingRequiredLonghand, s.Name, nil, family)
	}
	if !isFontFamily(tokens[i:]) {
		return nil, newError(WrongValueType, s.Name, tokens[i:], family)
	}
	out[family] = tokens[i:]
	return s.values(out), nil
}

// exclusiveKeywords checks that tokens are identifiers from couples,
// with at most one value of each couple.
func exclusiveKeywords(tokens []pa.Token, couples [][]string) bool {
	used := make([]bool, len(couples))
	for _, token := range tokens {
		id, ok := token.(pa.Ident)
		if !ok {
			return false
		}
		kw, found := id.Lower(), false
		for c, couple := range couples {
			if utils.IsIn(couple, kw) {
				if used[c] {
					return false
				}
				used[c], found = true, true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func inCouples(t pa.Token, couples [][]string) bool {
	id, ok := t.(pa.Ident)
	if !ok {
		return false
	}
	for _, couple := range couples {
		if utils.IsIn(couple, id.Lower()) {
			return true
		}
	}
	return false
}

// Expand the `font-variant` shorthand property.
func expandFontVariant(s shorthand, tokens []pa.Token) (Longhands, error) {
	if len(tokens) == 1 {
		switch {
		case pa.IsIdent(tokens[0], "normal"):
			return s.values(assignment{"font-variant-ligatures": tokens}), nil
		case pa.IsIdent(tokens[0], "none"):
			return s.values(assignment{"font-variant-ligatures": tokens}), nil
		}
	}
	features := assignment{}
	for i, token := range tokens {
		var name string
		switch {
		case inCouples(token, couplesLigatures):
			name = "font-variant-ligatures"
		case isKeyword(token, fontVariantCaps):
			name = "font-variant-caps"
		case pa.IsIdent(token, "historical-forms") || isFunctionIn(token, fontVariantAlternates):
			name = "font-variant-alternates"
		case inCouples(token, couplesNumeric):
			name = "font-variant-numeric"
		case inCouples(token, couplesEastAsian):
			name = "font-variant-east-asian"
		case isKeyword(token, fontVariantPositions):
			name = "font-variant-position"
		default:
			// `normal` is only valid alone
			return nil, unmatched(s.Name, tokens[i:], s.Longhands)
		}
		features[name] = append(features[name], token)
	}
	for name, values := range features {
		var ok bool
		switch name {
		case "font-variant-ligatures":
			ok = exclusiveKeywords(values, couplesLigatures)
		case "font-variant-numeric":
			ok = exclusiveKeywords(values, couplesNumeric)
		case "font-variant-east-asian":
			ok = exclusiveKeywords(values, couplesEastAsian)
		case "font-variant-alternates":
			ok = true
		default: // single keyword
			ok = len(values) == 1
		}
		if !ok {
			return nil, newError(UnassignedValues, s.Name, values[1:], name)
		}
	}
	return s.values(features), nil
}

func isFunctionIn(t pa.Token, names utils.Set) bool {
	fn, ok := t.(pa.FunctionBlock)
	return ok && names.Has(fn.LowerName())
}
