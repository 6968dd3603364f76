package validation

import (
	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/utils"
)

var borderImageRepeats = utils.NewSet("stretch", "repeat", "round", "space")

func isBorderImageSlice(tokens []pa.Token) bool {
	count, fill := 0, false
	for i, token := range tokens {
		switch token := token.(type) {
		case pa.Percentage:
			if token.Float() < 0 {
				return false
			}
		case pa.Number:
			if token.Float() < 0 {
				return false
			}
		default:
			if pa.IsIdent(token, "fill") && !fill && (i == 0 || i == len(tokens)-1) {
				fill = true
				continue
			}
			return false
		}
		count++
	}
	return 1 <= count && count <= 4
}

// isQuad validates 1 to 4 tokens accepted by pred.
func isQuad(tokens []pa.Token, pred func(pa.Token) bool) bool {
	if len(tokens) == 0 || len(tokens) > 4 {
		return false
	}
	for _, token := range tokens {
		if !pred(token) {
			return false
		}
	}
	return true
}

func isBorderImageWidth(tokens []pa.Token) bool {
	return isQuad(tokens, func(t pa.Token) bool {
		return pa.IsIdent(t, "auto") || isNumber(t, false) || isLengthPercentage(t, false)
	})
}

func isBorderImageOutset(tokens []pa.Token) bool {
	return isQuad(tokens, func(t pa.Token) bool { return isNumber(t, false) || isLength(t, false) })
}

// longest returns the length of the longest prefix of tokens accepted by valid.
func longest(tokens []pa.Token, valid func([]pa.Token) bool) int {
	n := 0
	for n < len(tokens) && valid(tokens[:n+1]) {
		n++
	}
	return n
}

// matchSlice is like longest, accepting a leading `fill`.
func matchSlice(tokens []pa.Token) int {
	n := 0
	for k := 1; k <= len(tokens) && k <= 5; k++ {
		if isBorderImageSlice(tokens[:k]) {
			n = k
		} else if k != 1 || !pa.IsIdent(tokens[0], "fill") {
			break
		}
	}
	return n
}

// Expand the `border-image` shorthand property.
// Width and outset are only accepted after the slice,
// separated by slashes.
func expandBorderImage(s shorthand, tokens []pa.Token) (Longhands, error) {
	const (
		source = "border-image-source"
		slice  = "border-image-slice"
		width  = "border-image-width"
		outset = "border-image-outset"
		repeat = "border-image-repeat"
	)
	out := assignment{}
	set := func(name string, values []pa.Token) error {
		if _, done := out[name]; done {
			return newError(UnassignedValues, s.Name, values)
		}
		out[name] = values
		return nil
	}
	isSlash := func(i int) bool { return i < len(tokens) && pa.IsLiteral(tokens[i], "/") }
	for i := 0; i < len(tokens); {
		token := tokens[i]
		if pa.IsIdent(token, "none") || isImage(token) {
			if err := set(source, tokens[i:i+1]); err != nil {
				return nil, err
			}
			i++
			continue
		}
		if isKeyword(token, borderImageRepeats) {
			n := 1
			if i+1 < len(tokens) && isKeyword(tokens[i+1], borderImageRepeats) {
				n = 2
			}
			if err := set(repeat, tokens[i:i+n]); err != nil {
				return nil, err
			}
			i += n
			continue
		}
		n := matchSlice(tokens[i:])
		if n == 0 {
			return nil, unmatched(s.Name, tokens[i:], s.Longhands)
		}
		if err := set(slice, tokens[i:i+n]); err != nil {
			return nil, err
		}
		i += n
		if !isSlash(i) {
			continue // slices other
		}
		i++
		if i == len(tokens) { // slices /
			return nil, newError(WrongValueType, s.Name, tokens[i-1:], width, outset)
		}
		if n := longest(tokens[i:], isBorderImageWidth); n != 0 {
			out[width] = tokens[i : i+n]
			i += n
			if !isSlash(i) {
				continue // slices / widths
			}
		} else if !isSlash(i) { // slices / other
			return nil, newError(WrongValueType, s.Name, tokens[i:], width, outset)
		}
		i++
		n = longest(tokens[i:], isBorderImageOutset)
		if n == 0 { // slices / widths? / other
			return nil, newError(WrongValueType, s.Name, tokens[i-1:], outset)
		}
		out[outset] = tokens[i : i+n]
		i += n
	}
	return s.values(out), nil
}
