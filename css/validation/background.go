package validation

import (
	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/utils"
)

var (
	boxKeywords     = utils.NewSet("border-box", "padding-box", "content-box")
	repeatKeywords  = utils.NewSet("repeat", "space", "round", "no-repeat")
	horizontalEdges = utils.NewSet("left", "right")
	verticalEdges   = utils.NewSet("top", "bottom")
)

const (
	axisNone = iota
	axisHorizontal
	axisVertical
	axisBoth // center
)

// positionAxis returns the axis of a position keyword.
func positionAxis(t pa.Token) int {
	switch {
	case isKeyword(t, horizontalEdges):
		return axisHorizontal
	case isKeyword(t, verticalEdges):
		return axisVertical
	case pa.IsIdent(t, "center"):
		return axisBoth
	}
	return axisNone
}

func isEdge(t pa.Token) bool {
	axis := positionAxis(t)
	return axis == axisHorizontal || axis == axisVertical
}

// differentAxes returns true if the two keywords may
// position the two different axes.
func differentAxes(a, b pa.Token) bool {
	axisA, axisB := positionAxis(a), positionAxis(b)
	return axisA == axisBoth || axisB == axisBoth || axisA != axisB
}

// isPosition validates a background position made of 1 to 4 tokens.
// The 3 and 4 values forms must alternate edge keywords (I) and
// offsets (N) as I N I N, I N I or I I N.
func isPosition(tokens []pa.Token) bool {
	isOffset := func(t pa.Token) bool { return isLengthPercentage(t, true) }
	switch len(tokens) {
	case 1:
		return positionAxis(tokens[0]) != axisNone || isOffset(tokens[0])
	case 2:
		a, b := tokens[0], tokens[1]
		axisA, axisB := positionAxis(a), positionAxis(b)
		switch {
		case axisA != axisNone && axisB != axisNone:
			return differentAxes(a, b)
		case axisA == axisNone && axisB == axisNone:
			return isOffset(a) && isOffset(b)
		case axisA == axisNone: // N I
			return isOffset(a) && axisB != axisHorizontal
		default: // I N
			return isOffset(b) && axisA != axisVertical
		}
	case 3:
		a, b, c := tokens[0], tokens[1], tokens[2]
		if isEdge(a) && isOffset(b) && positionAxis(c) != axisNone { // I N I
			return differentAxes(a, c)
		}
		if positionAxis(a) != axisNone && isEdge(b) && isOffset(c) { // I I N
			return differentAxes(a, b)
		}
		return false
	case 4:
		a, b, c, d := tokens[0], tokens[1], tokens[2], tokens[3]
		return isEdge(a) && isOffset(b) && isEdge(c) && isOffset(d) && positionAxis(a) != positionAxis(c)
	}
	return false
}

func isSize(tokens []pa.Token) bool {
	isAutoLength := func(t pa.Token) bool { return pa.IsIdent(t, "auto") || isLengthPercentage(t, false) }
	switch len(tokens) {
	case 1:
		return pa.IsIdent(tokens[0], "cover") || pa.IsIdent(tokens[0], "contain") || isAutoLength(tokens[0])
	case 2:
		return isAutoLength(tokens[0]) && isAutoLength(tokens[1])
	}
	return false
}

// matchPositionSize greedily matches a position, trying the longest
// forms first, optionally followed by `/ size`.
func matchPositionSize(tokens []pa.Token) int {
	for n := min(4, len(tokens)); n >= 1; n-- {
		if !isPosition(tokens[:n]) {
			continue
		}
		if n < len(tokens) && pa.IsLiteral(tokens[n], "/") {
			rest := tokens[n+1:]
			for k := min(2, len(rest)); k >= 1; k-- {
				if isSize(rest[:k]) {
					return n + 1 + k
				}
			}
		}
		return n
	}
	return 0
}

func matchRepeat(tokens []pa.Token) int {
	if len(tokens) == 0 {
		return 0
	}
	if pa.IsIdent(tokens[0], "repeat-x") || pa.IsIdent(tokens[0], "repeat-y") {
		return 1
	}
	if !isKeyword(tokens[0], repeatKeywords) {
		return 0
	}
	if len(tokens) >= 2 && isKeyword(tokens[1], repeatKeywords) {
		return 2
	}
	return 1
}

// fixupBackground moves the size after the slash to its own longhand,
// and uses the origin box for the clip box when only one is given.
func fixupBackground(layer assignment) error {
	if position, ok := layer["background-position"]; ok {
		for i, token := range position {
			if pa.IsLiteral(token, "/") {
				layer["background-position"] = position[:i]
				layer["background-size"] = position[i+1:]
				break
			}
		}
	}
	if origin, ok := layer["background-origin"]; ok {
		if _, ok := layer["background-clip"]; !ok {
			layer["background-clip"] = origin
		}
	}
	return nil
}

// background grammar, where the color is only valid
// in the final layer
var backgroundGrammar = &grammar{
	components: []component{
		{"background-position", matchPositionSize},
		{"background-repeat", matchRepeat},
		{"background-attachment", keywords("scroll", "fixed", "local")},
		{"background-origin", single(func(t pa.Token) bool { return isKeyword(t, boxKeywords) })},
		{"background-clip", single(func(t pa.Token) bool { return isKeyword(t, boxKeywords) })},
		{"background-color", matchColor},
		{"background-image", matchImage},
	},
	finalOnly: "background-color",
	fixup:     fixupBackground,
}
