package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeValues(t *testing.T) {
	tokens := RemoveWhitespace(TokenizeString(`12px/1.5 "Helvetica Neue", 50% #fff url( "a b.png" ) rgb(1, 2, 3) 1e3 -.5em`))
	require.Len(t, tokens, 11)

	assert.Equal(t, Dimension{Pos: Pos{1, 1}, Value: "12", Unit: "px"}, tokens[0])
	assert.True(t, IsLiteral(tokens[1], "/"))
	assert.Equal(t, "1.5", tokens[2].(Number).Value)
	assert.Equal(t, "Helvetica Neue", tokens[3].(String).Value)
	assert.True(t, IsLiteral(tokens[4], ","))
	assert.Equal(t, 50., tokens[5].(Percentage).Float())
	assert.Equal(t, "fff", tokens[6].(Hash).Value)
	assert.Equal(t, "a b.png", tokens[7].(URL).Value)

	fn := tokens[8].(FunctionBlock)
	assert.Equal(t, "rgb", fn.Name)
	assert.Len(t, SplitOnComma(RemoveWhitespace(fn.Arguments)), 3)

	assert.Equal(t, 1000., tokens[9].(Number).Float())
	assert.False(t, tokens[9].(Number).IsInt())
	dim := tokens[10].(Dimension)
	assert.Equal(t, "-.5", dim.Value)
	assert.Equal(t, "em", dim.Unit)
}

func TestTokenizeBlocks(t *testing.T) {
	tokens := RemoveWhitespace(TokenizeString(`(width >= 500px) [a] {x: y} (unclosed`))
	require.Len(t, tokens, 4)
	paren := tokens[0].(ParenthesesBlock)
	content := RemoveWhitespace(paren.Content)
	require.Len(t, content, 4)
	assert.True(t, IsIdent(content[0], "width"))
	assert.True(t, IsLiteral(content[1], ">"))
	assert.True(t, IsLiteral(content[2], "="))

	assert.IsType(t, SquareBracketsBlock{}, tokens[1])
	assert.IsType(t, CurlyBracketsBlock{}, tokens[2])
	assert.IsType(t, ParenthesesBlock{}, tokens[3])

	tokens = TokenizeString("a )")
	assert.IsType(t, ParseError{}, tokens[len(tokens)-1])
}

func TestPositions(t *testing.T) {
	tokens := TokenizeString("a\n  bc")
	require.Len(t, tokens, 3)
	assert.Equal(t, Pos{1, 1}, tokens[0].Position())
	assert.Equal(t, Pos{2, 3}, tokens[2].Position())
}

func TestDeclarations(t *testing.T) {
	decls, errs := ParseDeclarations("color: red !important; margin : 1px 2px; 12: x; --Custom: a")
	require.Len(t, decls, 3)
	require.Len(t, errs, 1)

	assert.Equal(t, "color", decls[0].Name)
	assert.True(t, decls[0].Important)
	assert.Equal(t, "red", SerializeCompact(decls[0].Value))

	assert.False(t, decls[1].Important)
	assert.Equal(t, "1px 2px", SerializeCompact(decls[1].Value))

	assert.Equal(t, "--Custom", decls[2].LowerName())
}

func TestParseSheet(t *testing.T) {
	sheet := ParseSheetString(`
		@import url(base.css) print;
		@import "other.css";
		p { color: red }
		@import "late.css";
		@media (min-width: 500px) {
			.a, .b { margin: 0 }
			@supports (display: grid) { .c { display: grid } }
		}
		@font-face { font-family: Test; src: url(test.woff) }
		@page { margin: 1cm }
	`)
	require.Len(t, sheet.Rules, 6)
	require.Len(t, sheet.Errors, 1) // late import

	imp := sheet.Rules[0].(*ImportRule)
	assert.Equal(t, "base.css", imp.URL)
	assert.Equal(t, "print", SerializeCompact(imp.Media))
	assert.Equal(t, "other.css", sheet.Rules[1].(*ImportRule).URL)

	style := sheet.Rules[2].(*StyleRule)
	assert.Equal(t, "p", SerializeCompact(style.Selector))
	require.Len(t, style.Declarations, 1)

	media := sheet.Rules[3].(*MediaRule)
	assert.Equal(t, "(min-width: 500px)", SerializeCompact(media.Query))
	require.Len(t, media.Rules, 2)
	assert.IsType(t, &SupportsRule{}, media.Rules[1])

	assert.IsType(t, &FontFaceRule{}, sheet.Rules[4])
	assert.Equal(t, "page", sheet.Rules[5].(*UnknownAtRule).Name)

	var styles int
	sheet.Walk(func(r Rule) bool {
		if _, ok := r.(*StyleRule); ok {
			styles++
		}
		return true
	})
	assert.Equal(t, 3, styles)
}

func TestClone(t *testing.T) {
	sheet := ParseSheetString(`@media print { a { color: red } }`)
	clone := sheet.Clone()
	clone.Rules[0].(*MediaRule).Rules[0].(*StyleRule).Declarations[0].Name = "background"

	original := sheet.Rules[0].(*MediaRule).Rules[0].(*StyleRule)
	assert.Equal(t, "color", original.Declarations[0].Name)
}

func TestSerializeCompact(t *testing.T) {
	for _, test := range []struct{ in, out string }{
		{"10px   5px", "10px 5px"},
		{"a ,b,  c", "a, b, c"},
		{"12px / 1.5 serif", "12px/1.5 serif"},
		{`"x" url(y)`, `"x" url(y)`},
		{"calc(1px + 2em)", "calc(1px + 2em)"},
	} {
		assert.Equal(t, test.out, SerializeCompact(TokenizeString(test.in)), test.in)
	}
}

func TestParseNth(t *testing.T) {
	for _, test := range []struct {
		in  string
		exp *[2]int
	}{
		{"odd", &[2]int{2, 1}},
		{"even", &[2]int{2, 0}},
		{"3", &[2]int{0, 3}},
		{"2n+1", &[2]int{2, 1}},
		{"-n+3", &[2]int{-1, 3}},
		{"n", &[2]int{1, 0}},
		{"+5", &[2]int{0, 5}},
		{"2n + 1", &[2]int{2, 1}},
		{"3n- 2", &[2]int{3, -2}},
		{"-2n -1", &[2]int{-2, -1}},
		{"N-1", &[2]int{1, -1}},
		{"+ n", nil},
		{"2 n", nil},
		{"2n + +1", nil},
		{"foo", nil},
		{"", nil},
	} {
		assert.Equal(t, test.exp, ParseNth(TokenizeString(test.in)), test.in)
	}
}

func TestMatchNth(t *testing.T) {
	assert.True(t, MatchNth([2]int{2, 1}, 1))
	assert.True(t, MatchNth([2]int{2, 1}, 5))
	assert.False(t, MatchNth([2]int{2, 1}, 4))
	assert.True(t, MatchNth([2]int{0, 3}, 3))
	assert.False(t, MatchNth([2]int{0, 3}, 6))
	assert.True(t, MatchNth([2]int{-1, 3}, 2))
	assert.False(t, MatchNth([2]int{-1, 3}, 4))
}

func TestCustomPropertyNames(t *testing.T) {
	tokens := TokenizeString("--main-color")
	require.Len(t, tokens, 1)
	assert.Equal(t, Ident{Pos: Pos{1, 1}, Value: "--main-color"}, tokens[0])

	decls, errs := ParseDeclarations("--main: red; color: var(--main)")
	require.Empty(t, errs)
	require.Len(t, decls, 2)
	assert.Equal(t, "--main", decls[0].Name)
	fn := RemoveWhitespace(decls[1].Value)[0].(FunctionBlock)
	assert.True(t, IsIdent(fn.Arguments[0], "--main"))
}
