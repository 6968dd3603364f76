package validation

import (
	"strings"

	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/utils"
)

var trackKeywords = utils.NewSet("auto", "min-content", "max-content")

func isTrackBreadth(t pa.Token) bool {
	if d, ok := t.(pa.Dimension); ok && d.LowerUnit() == "fr" {
		return d.Float() >= 0
	}
	return isKeyword(t, trackKeywords) || isLengthPercentage(t, false)
}

func isTrackSize(t pa.Token) bool {
	return isTrackBreadth(t) || pa.IsFunction(t, "minmax") || pa.IsFunction(t, "fit-content")
}

// isLineNames accepts a bracketed list of custom identifiers.
func isLineNames(t pa.Token) bool {
	block, ok := t.(pa.SquareBracketsBlock)
	if !ok {
		return false
	}
	for _, token := range pa.RemoveWhitespace(block.Content) {
		if !isCustomIdent(token, utils.NewSet("span", "auto")) {
			return false
		}
	}
	return true
}

// isTrackList validates an explicit track list, made of track sizes
// or repeat() functions, with optional line names between them.
func isTrackList(tokens []pa.Token) bool {
	if len(tokens) == 0 {
		return false
	}
	if len(tokens) == 1 && pa.IsIdent(tokens[0], "none") {
		return true
	}
	if pa.IsIdent(tokens[0], "subgrid") {
		for _, token := range tokens[1:] {
			if !isLineNames(token) && !pa.IsFunction(token, "repeat") {
				return false
			}
		}
		return true
	}
	hasTrack, prevNames := false, false
	for _, token := range tokens {
		if isLineNames(token) {
			if prevNames {
				return false
			}
			prevNames = true
			continue
		}
		prevNames = false
		if !isTrackSize(token) && !pa.IsFunction(token, "repeat") {
			return false
		}
		hasTrack = true
	}
	return hasTrack
}

// splitOnSlash splits tokens on top-level slashes.
func splitOnSlash(tokens []pa.Token) [][]pa.Token {
	parts := [][]pa.Token{nil}
	for _, token := range tokens {
		if pa.IsLiteral(token, "/") {
			parts = append(parts, nil)
			continue
		}
		parts[len(parts)-1] = append(parts[len(parts)-1], token)
	}
	return parts
}

func hasString(tokens []pa.Token) bool {
	for _, token := range tokens {
		if isString(token) {
			return true
		}
	}
	return false
}

// lineNamesBuilder merges adjacent line names blocks.
type lineNamesBuilder struct {
	pos   pa.Pos
	names []pa.Token
}

func (b *lineNamesBuilder) add(block pa.SquareBracketsBlock) {
	if len(b.names) == 0 {
		b.pos = block.Pos
	}
	for _, token := range pa.RemoveWhitespace(block.Content) {
		if len(b.names) != 0 {
			b.names = append(b.names, pa.Whitespace{Pos: token.Position(), Value: " "})
		}
		b.names = append(b.names, token)
	}
}

// flush appends the pending names, if any, to out.
func (b *lineNamesBuilder) flush(out []pa.Token) []pa.Token {
	if len(b.names) == 0 {
		return out
	}
	out = append(out, pa.SquareBracketsBlock{Pos: b.pos, Content: b.names})
	b.names = nil
	return out
}

// areaColumns returns the number of cells of an area string, or 0
// if it is invalid.
func areaColumns(s string) int {
	for _, r := range s {
		if !(r == ' ' || r == '\t' || r == '\n' || r == '.' || r == '-' || r == '_' ||
			'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r > 0x7F) {
			return 0
		}
	}
	return len(strings.Fields(s))
}

// parseTemplateAreas handles the `[ <line-names>? <string> <track-size>? <line-names>? ]+`
// form of grid-template rows. An implicit `auto` row is inserted for
// strings without track size, and adjacent line names are merged.
func parseTemplateAreas(shorthand string, tokens []pa.Token) (rows, areas []pa.Token, err error) {
	var (
		names    lineNamesBuilder
		needSize bool
		columns  int
		auto     = pa.Ident{Value: "auto"}
	)
	for i, token := range tokens {
		switch {
		case isLineNames(token):
			if needSize {
				rows = append(rows, auto)
				needSize = false
			}
			names.add(token.(pa.SquareBracketsBlock))
		case isString(token):
			if needSize {
				rows = append(rows, auto)
			}
			rows = names.flush(rows)
			n := areaColumns(token.(pa.String).Value)
			if n == 0 || (columns != 0 && n != columns) {
				return nil, nil, newError(WrongValueType, shorthand, tokens[i:i+1], "grid-template-areas")
			}
			columns = n
			areas = append(areas, token)
			needSize = true
		case needSize && isTrackSize(token):
			rows = names.flush(rows)
			rows = append(rows, token)
			needSize = false
		default:
			return nil, nil, unmatched(shorthand, tokens[i:], []string{"grid-template-rows"})
		}
	}
	if needSize {
		rows = append(rows, auto)
	}
	rows = names.flush(rows)
	return rows, areas, nil
}

// parseGridTemplate returns the rows, columns and areas.
func parseGridTemplate(shorthand string, tokens []pa.Token) (assignment, error) {
	const (
		rows    = "grid-template-rows"
		columns = "grid-template-columns"
		areas   = "grid-template-areas"
	)
	none := []pa.Token{pa.Ident{Pos: tokens[0].Position(), Value: "none"}}
	if len(tokens) == 1 && pa.IsIdent(tokens[0], "none") {
		return assignment{rows: none, columns: none, areas: none}, nil
	}
	parts := splitOnSlash(tokens)
	if len(parts) > 2 {
		return nil, newError(UnassignedValues, shorthand, tokens)
	}
	if !hasString(parts[0]) {
		if len(parts) != 2 {
			return nil, newError(MissingRequiredLonghand, shorthand, tokens, columns)
		}
		if !isTrackList(parts[0]) {
			return nil, newError(WrongValueType, shorthand, parts[0], rows, columns)
		}
		if !isTrackList(parts[1]) {
			return nil, newError(WrongValueType, shorthand, parts[1], columns)
		}
		return assignment{rows: parts[0], columns: parts[1], areas: none}, nil
	}
	rowTokens, areaTokens, err := parseTemplateAreas(shorthand, parts[0])
	if err != nil {
		return nil, err
	}
	out := assignment{rows: rowTokens, areas: areaTokens, columns: none}
	if len(parts) == 2 {
		if !isTrackList(parts[1]) || pa.IsIdent(parts[1][0], "none") || pa.IsIdent(parts[1][0], "subgrid") {
			return nil, newError(WrongValueType, shorthand, parts[1], columns)
		}
		out[columns] = parts[1]
	}
	return out, nil
}

// Expand the `grid-template` shorthand property.
func expandGridTemplate(s shorthand, tokens []pa.Token) (Longhands, error) {
	out, err := parseGridTemplate(s.Name, tokens)
	if err != nil {
		return nil, err
	}
	return s.values(out), nil
}

// Expand the `grid` shorthand property: either a template,
// resetting the implicit grid, or an auto-flow form
// `<rows> / auto-flow dense? <auto-columns>?` (or the symmetric one).
func expandGrid(s shorthand, tokens []pa.Token) (Longhands, error) {
	if out, err := parseGridTemplate(s.Name, tokens); err == nil {
		return s.values(out), nil
	}

	parts := splitOnSlash(tokens)
	if len(parts) != 2 {
		return nil, newError(WrongValueType, s.Name, tokens, s.Longhands...)
	}
	const (
		rowT    = 0
		columnT = 1
	)
	var (
		autoTrack = -1
		dense     pa.Token
		templates [2][]pa.Token
	)
	for track, part := range parts {
		for _, token := range part {
			switch {
			case pa.IsIdent(token, "dense"):
				if dense != nil || (autoTrack != -1 && autoTrack != track) {
					return nil, newError(UnassignedValues, s.Name, []pa.Token{token})
				}
				dense = token
			case pa.IsIdent(token, "auto-flow"):
				if autoTrack != -1 {
					return nil, newError(UnassignedValues, s.Name, []pa.Token{token})
				}
				autoTrack = track
			default:
				templates[track] = append(templates[track], token)
			}
		}
	}
	if autoTrack == -1 {
		return nil, newError(MissingRequiredLonghand, s.Name, tokens, "grid-auto-flow")
	}
	nonAutoTrack := 1 - autoTrack
	if !isTrackList(templates[nonAutoTrack]) {
		return nil, newError(WrongValueType, s.Name, templates[nonAutoTrack], s.Longhands...)
	}
	for i, token := range templates[autoTrack] {
		if !isTrackSize(token) {
			return nil, unmatched(s.Name, templates[autoTrack][i:], []string{"grid-auto-rows", "grid-auto-columns"})
		}
	}

	names := [2]string{rowT: "row", columnT: "column"}
	flow := []pa.Token{pa.Ident{Value: names[autoTrack]}}
	if dense != nil {
		flow = append(flow, dense)
	}
	out := assignment{"grid-auto-flow": flow}
	out["grid-template-"+names[nonAutoTrack]+"s"] = templates[nonAutoTrack]
	if len(templates[autoTrack]) != 0 {
		out["grid-auto-"+names[autoTrack]+"s"] = templates[autoTrack]
	}
	return s.values(out), nil
}

// isGridLine validates a grid line, and reports whether
// it is a single custom identifier.
func isGridLine(tokens []pa.Token) (valid, customIdent bool) {
	excluded := utils.NewSet("span", "auto")
	switch len(tokens) {
	case 0:
		return false, false
	case 1:
		token := tokens[0]
		if pa.IsIdent(token, "auto") {
			return true, false
		}
		if isCustomIdent(token, excluded) {
			return true, true
		}
		nb, ok := token.(pa.Number)
		return ok && nb.IsInt() && nb.Int() != 0, false
	case 2, 3:
		var span, number, ident bool
		for i, token := range tokens {
			if nb, ok := token.(pa.Number); ok && nb.IsInt() && nb.Int() != 0 && !number {
				number = true
			} else if pa.IsIdent(token, "span") && !span && (i == 0 || i == len(tokens)-1) {
				span = true
			} else if isCustomIdent(token, excluded) && !ident {
				ident = true
			} else {
				return false, false
			}
		}
		if span {
			for _, token := range tokens {
				if nb, ok := token.(pa.Number); ok && nb.Int() < 0 {
					return false, false
				}
			}
			return number || ident, false
		}
		return number && ident && len(tokens) == 2, false
	}
	return false, false
}

// expandGridLines handles `grid-row`, `grid-column` (count = 2) and
// `grid-area` (count = 4). An omitted line copies the opposite one when it
// is a custom identifier, and is `auto` otherwise.
func expandGridLines(count int) expander {
	return func(s shorthand, tokens []pa.Token) (Longhands, error) {
		lines := splitOnSlash(tokens)
		if len(lines) > count {
			return nil, newError(UnassignedValues, s.Name, tokens)
		}
		values := make([][]pa.Token, count)
		custom := make([]bool, count)
		for i, line := range lines {
			valid, isCustom := isGridLine(line)
			if !valid {
				return nil, unmatched(s.Name, line, s.Longhands[i:])
			}
			values[i], custom[i] = line, isCustom
		}
		auto := []pa.Token{pa.Ident{Value: "auto"}}
		for i := len(lines); i < count; i++ {
			opposite := 0
			if i >= 2 {
				opposite = i - 2
			}
			if custom[opposite] {
				values[i], custom[i] = values[opposite], true
			} else {
				values[i] = auto
			}
		}
		out := assignment{}
		for i, name := range s.Longhands {
			out[name] = values[i]
		}
		return s.values(out), nil
	}
}
