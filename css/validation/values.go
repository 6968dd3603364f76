package validation

import (
	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/utils"
	"golang.org/x/image/colornames"
)

// Token level type checks, used to assign the components of
// a shorthand value to its longhands.

var (
	lengthUnits = utils.NewSet("px", "cm", "mm", "q", "in", "pt", "pc",
		"em", "rem", "ex", "rex", "ch", "rch", "cap", "ic", "lh", "rlh",
		"vw", "vh", "vi", "vb", "vmin", "vmax", "svw", "svh", "lvw", "lvh", "dvw", "dvh",
		"cqw", "cqh", "cqi", "cqb", "cqmin", "cqmax")
	timeUnits  = utils.NewSet("s", "ms")
	angleUnits = utils.NewSet("deg", "grad", "rad", "turn")

	mathFunctions = utils.NewSet("calc", "min", "max", "clamp", "round", "mod", "rem", "abs", "sign")

	colorFunctions = utils.NewSet("rgb", "rgba", "hsl", "hsla", "hwb", "lab", "lch",
		"oklab", "oklch", "color", "color-mix", "light-dark", "device-cmyk")
	// keywords not in the SVG named colors
	colorKeywords = utils.NewSet("transparent", "currentcolor", "rebeccapurple",
		"canvas", "canvastext", "linktext", "visitedtext", "activetext", "buttonface",
		"buttontext", "buttonborder", "field", "fieldtext", "highlight", "highlighttext",
		"selecteditem", "selecteditemtext", "mark", "marktext", "graytext", "accentcolor",
		"accentcolortext")

	imageFunctions = utils.NewSet("url", "image", "image-set", "cross-fade", "element",
		"linear-gradient", "radial-gradient", "conic-gradient",
		"repeating-linear-gradient", "repeating-radial-gradient", "repeating-conic-gradient",
		"-webkit-gradient", "-webkit-linear-gradient", "-webkit-radial-gradient")

	lineStyles = utils.NewSet("none", "hidden", "dotted", "dashed", "solid",
		"double", "groove", "ridge", "inset", "outset")
	lineWidths = utils.NewSet("thin", "medium", "thick")

	wideKeywords = utils.NewSet("inherit", "initial", "unset", "revert", "revert-layer", "default")
)

func isMath(t pa.Token) bool {
	fn, ok := t.(pa.FunctionBlock)
	return ok && mathFunctions.Has(fn.LowerName())
}

func isVar(t pa.Token) bool { return pa.IsFunction(t, "var") }

func isKeyword(t pa.Token, kws utils.Set) bool {
	id, ok := t.(pa.Ident)
	return ok && kws.Has(id.Lower())
}

func isNumber(t pa.Token, negative bool) bool {
	if isMath(t) {
		return true
	}
	nb, ok := t.(pa.Number)
	return ok && (negative || nb.Float() >= 0)
}

func isInteger(t pa.Token, negative bool) bool {
	nb, ok := t.(pa.Number)
	return isMath(t) || (ok && nb.IsInt() && (negative || nb.Int() >= 0))
}

func isLength(t pa.Token, negative bool) bool {
	switch t := t.(type) {
	case pa.Dimension:
		return lengthUnits.Has(t.LowerUnit()) && (negative || t.Float() >= 0)
	case pa.Number:
		return t.Float() == 0
	}
	return isMath(t)
}

func isLengthPercentage(t pa.Token, negative bool) bool {
	if p, ok := t.(pa.Percentage); ok {
		return negative || p.Float() >= 0
	}
	return isLength(t, negative)
}

func isTime(t pa.Token) bool {
	if d, ok := t.(pa.Dimension); ok {
		return timeUnits.Has(d.LowerUnit())
	}
	return isMath(t)
}

func isAngle(t pa.Token) bool {
	if d, ok := t.(pa.Dimension); ok {
		return angleUnits.Has(d.LowerUnit())
	}
	return false
}

func isHexColor(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

func isColor(t pa.Token) bool {
	switch t := t.(type) {
	case pa.Hash:
		return isHexColor(t.Value)
	case pa.Ident:
		kw := t.Lower()
		_, named := colornames.Map[kw]
		return named || colorKeywords.Has(kw)
	case pa.FunctionBlock:
		return colorFunctions.Has(t.LowerName())
	}
	return false
}

func isImage(t pa.Token) bool {
	switch t := t.(type) {
	case pa.URL:
		return true
	case pa.FunctionBlock:
		return imageFunctions.Has(t.LowerName())
	}
	return false
}

func isString(t pa.Token) bool {
	_, ok := t.(pa.String)
	return ok
}

// isCustomIdent accepts identifiers other than the CSS-wide keywords
// and the excluded ones.
func isCustomIdent(t pa.Token, excluded utils.Set) bool {
	id, ok := t.(pa.Ident)
	if !ok {
		return false
	}
	kw := id.Lower()
	return !wideKeywords.Has(kw) && !excluded.Has(kw)
}

func isLineStyle(t pa.Token) bool { return isKeyword(t, lineStyles) }

func isLineWidth(t pa.Token) bool {
	return isKeyword(t, lineWidths) || isLength(t, false)
}

// matcher returns how many leading tokens form a valid
// component value, or 0.
type matcher func(tokens []pa.Token) int

func single(pred func(pa.Token) bool) matcher {
	return func(tokens []pa.Token) int {
		if len(tokens) != 0 && pred(tokens[0]) {
			return 1
		}
		return 0
	}
}

func keywords(kws ...string) matcher {
	set := utils.NewSet(kws...)
	return single(func(t pa.Token) bool { return isKeyword(t, set) })
}

// anyOf returns the result of the first matcher accepting tokens.
func anyOf(ms ...matcher) matcher {
	return func(tokens []pa.Token) int {
		for _, m := range ms {
			if n := m(tokens); n != 0 {
				return n
			}
		}
		return 0
	}
}

// whole returns true if m accepts exactly tokens.
func whole(m matcher, tokens []pa.Token) bool {
	return len(tokens) != 0 && m(tokens) == len(tokens)
}

var (
	matchColor     = single(isColor)
	matchImage     = anyOf(keywords("none"), single(isImage))
	matchLineStyle = single(isLineStyle)
	matchLineWidth = single(isLineWidth)
	matchTime      = single(isTime)
)

var matchLengthPercentageAuto = anyOf(keywords("auto"),
	single(func(t pa.Token) bool { return isLengthPercentage(t, true) }))
