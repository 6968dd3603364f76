package validation

import (
	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/utils"
)

var expanders = map[string]expander{
	"margin":          expandFourSides(matchLengthPercentageAuto),
	"padding":         expandFourSides(single(func(t pa.Token) bool { return isLengthPercentage(t, false) })),
	"inset":           expandFourSides(matchLengthPercentageAuto),
	"border-width":    expandFourSides(matchLineWidth),
	"border-style":    expandFourSides(matchLineStyle),
	"border-color":    expandFourSides(matchColor),
	"border-radius":   expandBorderRadius,
	"border-top":      sideGrammar("border-top", matchLineStyle).expand(),
	"border-right":    sideGrammar("border-right", matchLineStyle).expand(),
	"border-bottom":   sideGrammar("border-bottom", matchLineStyle).expand(),
	"border-left":     sideGrammar("border-left", matchLineStyle).expand(),
	"border":          expandBorder,
	"border-image":    expandBorderImage,
	"outline":         sideGrammar("outline", anyOf(keywords("auto"), matchLineStyle)).expand(),
	"column-rule":     sideGrammar("column-rule", matchLineStyle).expand(),
	"columns":         expandColumns,
	"background":      backgroundGrammar.expandLayers(),
	"font":            expandFont,
	"font-variant":    expandFontVariant,
	"list-style":      expandListStyle,
	"text-decoration": expandTextDecoration,
	"flex":            expandFlex,
	"flex-flow":       flexFlowGrammar.expand(),
	"gap":             expandPair(single(isGap)),
	"overflow":        expandPair(keywords("visible", "hidden", "clip", "scroll", "auto")),
	"transition":      transitionGrammar.expandLayers(),
	"animation":       animationGrammar.expandLayers(),
	"grid-template":   expandGridTemplate,
	"grid":            expandGrid,
	"grid-area":       expandGridLines(4),
	"grid-row":        expandGridLines(2),
	"grid-column":     expandGridLines(2),
	"place-content":   expandPlace(matchContentAlignment, true),
	"place-items":     expandPlace(matchItemsAlignment, false),
	"place-self":      expandPlace(matchSelfAlignment, false),
}

// boxSides repeats the given 1 to 4 values following the
// top, right, bottom, left convention.
func boxSides[T any](values []T) [4]T {
	switch len(values) {
	case 1:
		return [4]T{values[0], values[0], values[0], values[0]}
	case 2:
		return [4]T{values[0], values[1], values[0], values[1]} // (bottom, left) defaults to (top, right)
	case 3:
		return [4]T{values[0], values[1], values[2], values[1]} // left defaults to right
	default:
		return [4]T{values[0], values[1], values[2], values[3]}
	}
}

// Expand properties setting a token for the four sides of a box.
func expandFourSides(m matcher) expander {
	return func(s shorthand, tokens []pa.Token) (Longhands, error) {
		if len(tokens) > 4 {
			return nil, newError(UnassignedValues, s.Name, tokens[4:])
		}
		values := make([][]pa.Token, len(tokens))
		for i := range tokens {
			if m(tokens[i:i+1]) != 1 {
				return nil, unmatched(s.Name, tokens[i:], s.Longhands[i:])
			}
			values[i] = tokens[i : i+1]
		}
		sides := boxSides(values)
		out := assignment{}
		for i, longhand := range s.Longhands {
			out[longhand] = sides[i]
		}
		return s.values(out), nil
	}
}

// Expand the `border-radius` shorthand, where an optional
// slash separates the vertical radii.
func expandBorderRadius(s shorthand, tokens []pa.Token) (Longhands, error) {
	var horizontal, vertical []pa.Token
	current := &horizontal
	for index, token := range tokens {
		if pa.IsLiteral(token, "/") {
			if current == &vertical || index == len(tokens)-1 || index == 0 {
				return nil, newError(WrongValueType, s.Name, tokens[index:])
			}
			current = &vertical
			continue
		}
		if !isLengthPercentage(token, false) {
			return nil, unmatched(s.Name, tokens[index:], s.Longhands)
		}
		*current = append(*current, token)
	}
	if len(horizontal) > 4 {
		return nil, newError(UnassignedValues, s.Name, horizontal[4:])
	}
	if len(vertical) > 4 {
		return nil, newError(UnassignedValues, s.Name, vertical[4:])
	}
	hs := boxSides(horizontal)
	out := assignment{}
	if len(vertical) == 0 {
		for i, longhand := range s.Longhands {
			out[longhand] = []pa.Token{hs[i]}
		}
	} else {
		vs := boxSides(vertical)
		for i, longhand := range s.Longhands {
			out[longhand] = []pa.Token{hs[i], vs[i]}
		}
	}
	return s.values(out), nil
}

// sideGrammar returns the grammar of `border-top`-like shorthands,
// whose longhands are prefix-width, prefix-style and prefix-color.
func sideGrammar(prefix string, style matcher) *grammar {
	return &grammar{components: []component{
		{prefix + "-width", matchLineWidth},
		{prefix + "-style", style},
		{prefix + "-color", matchColor},
	}}
}

var borderGrammar = sideGrammar("border", matchLineStyle)

// Expand the `border` shorthand, which sets the four sides
// and resets border-image.
func expandBorder(s shorthand, tokens []pa.Token) (Longhands, error) {
	layer, err := borderGrammar.parseLayer(s.Name, tokens, true)
	if err != nil {
		return nil, err
	}
	out := assignment{}
	for _, side := range [4]string{"top", "right", "bottom", "left"} {
		for _, kind := range [3]string{"width", "style", "color"} {
			if value, ok := layer["border-"+kind]; ok {
				out["border-"+side+"-"+kind] = value
			}
		}
	}
	return s.values(out), nil
}

// Expand the `columns` shorthand.
func expandColumns(s shorthand, tokens []pa.Token) (Longhands, error) {
	if len(tokens) > 2 {
		return nil, newError(UnassignedValues, s.Name, tokens[2:])
	}
	if len(tokens) == 2 && pa.IsIdent(tokens[0], "auto") {
		tokens = []pa.Token{tokens[1], tokens[0]}
	}
	isWidth := func(t pa.Token) bool { return pa.IsIdent(t, "auto") || isLength(t, false) }
	isCount := func(t pa.Token) bool {
		nb, ok := t.(pa.Number)
		return pa.IsIdent(t, "auto") || (ok && nb.IsInt() && nb.Int() >= 1)
	}
	out := assignment{}
	for i, token := range tokens {
		if _, done := out["column-width"]; !done && isWidth(token) {
			out["column-width"] = tokens[i : i+1]
		} else if _, done := out["column-count"]; !done && isCount(token) {
			out["column-count"] = tokens[i : i+1]
		} else {
			var remaining []string
			for _, name := range s.Longhands {
				if _, done := out[name]; !done {
					remaining = append(remaining, name)
				}
			}
			return nil, unmatched(s.Name, tokens[i:], remaining)
		}
	}
	return s.values(out), nil
}

var listStyleTypeExcluded = utils.NewSet("none", "inside", "outside")

// Expand the `list-style` shorthand, where `none` may stand
// for the image or the type.
func expandListStyle(s shorthand, tokens []pa.Token) (Longhands, error) {
	const (
		position = "list-style-position"
		image    = "list-style-image"
		typ      = "list-style-type"
	)
	out := assignment{}
	var nones []pa.Token
	isType := func(t pa.Token) bool {
		return isCustomIdent(t, listStyleTypeExcluded) || isString(t) || pa.IsFunction(t, "symbols")
	}
	for i, token := range tokens {
		var name string
		switch {
		case pa.IsIdent(token, "none"):
			nones = append(nones, token)
			continue
		case isImage(token):
			name = image
		case isKeyword(token, utils.NewSet("inside", "outside")):
			name = position
		case isType(token):
			name = typ
		default:
			return nil, unmatched(s.Name, tokens[i:], s.Longhands)
		}
		if _, done := out[name]; done {
			return nil, newError(UnassignedValues, s.Name, tokens[i:])
		}
		out[name] = tokens[i : i+1]
	}
	for _, none := range nones {
		if _, done := out[typ]; !done {
			out[typ] = []pa.Token{none}
		} else if _, done := out[image]; !done {
			out[image] = []pa.Token{none}
		} else {
			// too many none
			return nil, newError(UnassignedValues, s.Name, []pa.Token{none})
		}
	}
	return s.values(out), nil
}

var (
	textDecorationLines  = utils.NewSet("underline", "overline", "line-through", "blink")
	textDecorationStyles = utils.NewSet("solid", "double", "dotted", "dashed", "wavy")
)

// Expand the `text-decoration` shorthand.
func expandTextDecoration(s shorthand, tokens []pa.Token) (Longhands, error) {
	const (
		line  = "text-decoration-line"
		style = "text-decoration-style"
		color = "text-decoration-color"
	)
	out := assignment{}
	var lines []pa.Token
	seen := utils.NewSet()
	for i, token := range tokens {
		switch {
		case pa.IsIdent(token, "none"):
			if len(lines) != 0 {
				return nil, newError(UnassignedValues, s.Name, tokens[i:])
			}
			lines = append(lines, token)
			seen.Add("none")
		case isKeyword(token, textDecorationLines):
			kw := token.(pa.Ident).Lower()
			if seen.Has(kw) || seen.Has("none") {
				return nil, newError(UnassignedValues, s.Name, tokens[i:])
			}
			seen.Add(kw)
			lines = append(lines, token)
		case isKeyword(token, textDecorationStyles):
			if _, done := out[style]; done {
				return nil, newError(UnassignedValues, s.Name, tokens[i:])
			}
			out[style] = tokens[i : i+1]
		case isColor(token):
			if _, done := out[color]; done {
				return nil, newError(UnassignedValues, s.Name, tokens[i:])
			}
			out[color] = tokens[i : i+1]
		default:
			return nil, unmatched(s.Name, tokens[i:], s.Longhands)
		}
	}
	if len(lines) != 0 {
		out[line] = lines
	}
	return s.values(out), nil
}

var (
	flexOne      = pa.TokenizeString("1")
	flexZero     = pa.TokenizeString("0")
	flexAuto     = pa.TokenizeString("auto")
	flexZeroSize = pa.TokenizeString("0%")
)

func isFlexBasis(t pa.Token) bool {
	return isKeyword(t, utils.NewSet("auto", "content", "min-content", "max-content", "fit-content")) ||
		isLengthPercentage(t, false)
}

// Expand the `flex` shorthand.
func expandFlex(s shorthand, tokens []pa.Token) (Longhands, error) {
	const (
		grow   = "flex-grow"
		shrink = "flex-shrink"
		basis  = "flex-basis"
	)
	if len(tokens) == 1 && pa.IsIdent(tokens[0], "none") {
		return s.values(assignment{grow: flexZero, shrink: flexZero, basis: flexAuto}), nil
	}
	out := assignment{}
	for i, token := range tokens {
		_, growFound := out[grow]
		_, shrinkFound := out[shrink]
		_, basisFound := out[basis]
		// "A unitless zero that is not already preceded by two flex factors
		// must be interpreted as a flex factor."
		number, numeric := token.(pa.Number)
		forcedFlexFactor := numeric && number.Float() == 0 && !(growFound && shrinkFound)
		switch {
		case !basisFound && !forcedFlexFactor && isFlexBasis(token):
			out[basis] = tokens[i : i+1]
		case numeric && number.Float() >= 0 && !growFound:
			out[grow] = tokens[i : i+1]
		case numeric && number.Float() >= 0 && !shrinkFound && i > 0 && isFlexFactor(tokens[i-1]):
			out[shrink] = tokens[i : i+1]
		default:
			var remaining []string
			for _, name := range s.Longhands {
				if _, done := out[name]; !done {
					remaining = append(remaining, name)
				}
			}
			return nil, unmatched(s.Name, tokens[i:], remaining)
		}
	}
	if _, ok := out[grow]; !ok {
		out[grow] = flexOne
	}
	if _, ok := out[shrink]; !ok {
		out[shrink] = flexOne
	}
	if _, ok := out[basis]; !ok {
		out[basis] = flexZeroSize
	}
	return s.values(out), nil
}

func isFlexFactor(t pa.Token) bool {
	nb, ok := t.(pa.Number)
	return ok && nb.Float() >= 0
}

var flexFlowGrammar = &grammar{components: []component{
	{"flex-direction", keywords("row", "row-reverse", "column", "column-reverse")},
	{"flex-wrap", keywords("nowrap", "wrap", "wrap-reverse")},
}}

func isGap(t pa.Token) bool { return pa.IsIdent(t, "normal") || isLengthPercentage(t, false) }

// expandPair handles shorthands whose second longhand
// defaults to the first one (`gap`, `overflow`).
func expandPair(m matcher) expander {
	return func(s shorthand, tokens []pa.Token) (Longhands, error) {
		if len(tokens) > 2 {
			return nil, newError(UnassignedValues, s.Name, tokens[2:])
		}
		for i := range tokens {
			if m(tokens[i:i+1]) != 1 {
				return nil, unmatched(s.Name, tokens[i:], s.Longhands[i:])
			}
		}
		second := tokens[len(tokens)-1:]
		return s.values(assignment{s.Longhands[0]: tokens[:1], s.Longhands[1]: second}), nil
	}
}

var (
	easingKeywords = utils.NewSet("linear", "ease", "ease-in", "ease-out", "ease-in-out", "step-start", "step-end")
	matchEasing    = single(func(t pa.Token) bool {
		return isKeyword(t, easingKeywords) || pa.IsFunction(t, "cubic-bezier") ||
			pa.IsFunction(t, "steps") || pa.IsFunction(t, "linear")
	})
)

// backPropagate copies the timing values of a layer whose property
// is `all` to the earlier layers which don't set them.
// Later layers are left untouched.
func backPropagate(property string, timing ...string) func(layers []assignment) {
	return func(layers []assignment) {
		for i, layer := range layers {
			value := layer[property]
			if len(value) != 1 || !pa.IsIdent(value[0], "all") {
				continue
			}
			for _, earlier := range layers[:i] {
				for _, name := range timing {
					if _, set := earlier[name]; set {
						continue
					}
					if v, ok := layer[name]; ok {
						earlier[name] = v
					}
				}
			}
		}
	}
}

var transitionGrammar = &grammar{
	components: []component{
		{"transition-duration", matchTime},
		{"transition-delay", matchTime},
		{"transition-timing-function", matchEasing},
		{"transition-property", single(func(t pa.Token) bool { return isCustomIdent(t, nil) })},
	},
	checkLayers: func(shorthand string, layers []assignment) error {
		if len(layers) == 1 {
			return nil
		}
		for _, layer := range layers {
			if value := layer["transition-property"]; isNoneList(value) {
				return newError(WrongValueType, shorthand, value)
			}
		}
		return nil
	},
	postLayers: backPropagate("transition-property", "transition-duration", "transition-timing-function", "transition-delay"),
}

// isNoneList returns true for a single `none` keyword, which
// is only valid in a one item transition list.
func isNoneList(tokens []pa.Token) bool {
	return len(tokens) == 1 && pa.IsIdent(tokens[0], "none")
}

var animationGrammar = &grammar{
	components: []component{
		{"animation-duration", matchTime},
		{"animation-delay", matchTime},
		{"animation-timing-function", matchEasing},
		{"animation-iteration-count", single(func(t pa.Token) bool {
			return pa.IsIdent(t, "infinite") || isNumber(t, false)
		})},
		{"animation-direction", keywords("normal", "reverse", "alternate", "alternate-reverse")},
		{"animation-fill-mode", keywords("none", "forwards", "backwards", "both")},
		{"animation-play-state", keywords("running", "paused")},
		{"animation-name", single(func(t pa.Token) bool { return isCustomIdent(t, nil) || isString(t) })},
	},
	postLayers: backPropagate("animation-name", "animation-duration", "animation-timing-function", "animation-delay"),
}

var (
	baselinePositions    = utils.NewSet("first", "last")
	overflowPositions    = utils.NewSet("safe", "unsafe")
	contentDistributions = utils.NewSet("space-between", "space-around", "space-evenly", "stretch")
	contentPositions     = utils.NewSet("center", "start", "end", "flex-start", "flex-end", "left", "right")
	selfPositions        = utils.NewSet("center", "start", "end", "self-start", "self-end", "flex-start", "flex-end", "left", "right")
)

// matchAlignment returns a matcher for the box alignment values,
// accepting the given single keywords, baseline positions and
// (optionally prefixed by safe or unsafe) the given positions.
func matchAlignment(single, positions utils.Set) matcher {
	return func(tokens []pa.Token) int {
		if len(tokens) == 0 {
			return 0
		}
		if pa.IsIdent(tokens[0], "baseline") {
			return 1
		}
		if isKeyword(tokens[0], single) || isKeyword(tokens[0], positions) {
			return 1
		}
		if len(tokens) >= 2 {
			if isKeyword(tokens[0], baselinePositions) && pa.IsIdent(tokens[1], "baseline") {
				return 2
			}
			if isKeyword(tokens[0], overflowPositions) && isKeyword(tokens[1], positions) {
				return 2
			}
		}
		return 0
	}
}

var (
	matchContentAlignment = matchAlignment(utils.NewSet("normal", "space-between", "space-around", "space-evenly", "stretch"), contentPositions)
	matchItemsAlignment   = anyOf(matchLegacy, matchAlignment(utils.NewSet("normal", "stretch"), selfPositions))
	matchSelfAlignment    = matchAlignment(utils.NewSet("auto", "normal", "stretch"), selfPositions)
)

func matchLegacy(tokens []pa.Token) int {
	directions := utils.NewSet("left", "right", "center")
	if len(tokens) == 0 || !pa.IsIdent(tokens[0], "legacy") && !(len(tokens) >= 2 && isKeyword(tokens[0], directions) && pa.IsIdent(tokens[1], "legacy")) {
		return 0
	}
	if pa.IsIdent(tokens[0], "legacy") {
		if len(tokens) >= 2 && isKeyword(tokens[1], directions) {
			return 2
		}
		return 1
	}
	return 2
}

// expandPlace handles the `place-*` shorthands. When the second
// value is omitted, it copies the first one, except for baselines
// of place-content which use `start`.
func expandPlace(m matcher, baselineToStart bool) expander {
	return func(s shorthand, tokens []pa.Token) (Longhands, error) {
		n := m(tokens)
		if n == 0 {
			return nil, unmatched(s.Name, tokens, s.Longhands)
		}
		first, rest := tokens[:n], tokens[n:]
		second := first
		if len(rest) != 0 {
			if !whole(m, rest) {
				return nil, unmatched(s.Name, rest, s.Longhands[1:])
			}
			second = rest
		} else if baselineToStart && pa.IsIdent(first[len(first)-1], "baseline") {
			second = pa.TokenizeString("start")
		}
		return s.values(assignment{s.Longhands[0]: first, s.Longhands[1]: second}), nil
	}
}
