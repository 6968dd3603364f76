package shorthands

import (
	"strings"

	pa "github.com/benoitkugler/cascade/css/parser"
)

const (
	templateRows    = "grid-template-rows"
	templateColumns = "grid-template-columns"
	templateAreas   = "grid-template-areas"
)

func buildGridTemplate(l longhands) []string {
	rows, columns, areas := l.values[templateRows], l.values[templateColumns], l.values[templateAreas]
	switch {
	case rows.IsKeyword("none") && columns.IsKeyword("none") && areas.IsKeyword("none"):
		return []string{"none"}
	case areas.IsKeyword("none"):
		return []string{rows.String() + " / " + columns.String()}
	}
	text, ok := interleaveAreas(rows.Tokens(), areas.Tokens())
	if !ok {
		return nil
	}
	if !columns.IsKeyword("none") {
		text += " / " + columns.String()
	}
	return []string{text}
}

// interleaveAreas writes each area string before its row size,
// omitting the implicit `auto` sizes. The line names stay in place.
func interleaveAreas(rows, areas []pa.Token) (string, bool) {
	var (
		parts []string
		index int
	)
	for _, token := range rows {
		if _, isNames := token.(pa.SquareBracketsBlock); isNames {
			parts = append(parts, pa.Serialize([]pa.Token{token}))
			continue
		}
		if index == len(areas) {
			return "", false
		}
		parts = append(parts, pa.Serialize(areas[index:index+1]))
		if !pa.IsIdent(token, "auto") {
			parts = append(parts, pa.SerializeCompact([]pa.Token{token}))
		}
		index++
	}
	if index != len(areas) {
		return "", false
	}
	return strings.Join(parts, " "), true
}

// The auto-flow forms are `auto-flow dense? <auto-rows>? / <columns>`
// and `<rows> / auto-flow dense? <auto-columns>?`. Without implicit
// tracks, `grid` falls back to the template forms.
func buildGrid(l longhands) []string {
	const (
		autoRows    = "grid-auto-rows"
		autoColumns = "grid-auto-columns"
		autoFlow    = "grid-auto-flow"
	)
	if l.isInitial(autoRows) && l.isInitial(autoColumns) && l.isInitial(autoFlow) {
		return buildGridTemplate(l)
	}
	if !l.values[templateAreas].IsKeyword("none") {
		return nil
	}
	flow := l.values[autoFlow].Tokens()
	if len(flow) == 0 {
		return nil
	}
	keyword := "auto-flow"
	if len(flow) == 2 && pa.IsIdent(flow[1], "dense") {
		keyword += " dense"
	}
	auto := func(name string) string {
		if l.isInitial(name) {
			return ""
		}
		return l.text(name)
	}
	switch {
	case pa.IsIdent(flow[0], "row") && l.isInitial(autoColumns) && l.values[templateRows].IsKeyword("none"):
		return []string{join(keyword, auto(autoRows)) + " / " + l.text(templateColumns)}
	case pa.IsIdent(flow[0], "column") && l.isInitial(autoRows) && l.values[templateColumns].IsKeyword("none"):
		return []string{l.text(templateRows) + " / " + join(keyword, auto(autoColumns))}
	}
	return nil
}
