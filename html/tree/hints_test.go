package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveHints resolves the elements matching each selector with
// presentational hints enabled, and returns the value of property.
func resolveHints(t *testing.T, content, property string, selectors ...string) []string {
	t.Helper()
	doc := parseDoc(t, content)
	r := NewResolver(nil, Options{PresentationalHints: true})
	var out []string
	for _, sel := range selectors {
		elements, err := doc.Select(sel)
		require.NoError(t, err)
		for _, element := range elements {
			out = append(out, r.Resolve(element, "").Value(property).String())
		}
	}
	return out
}

func TestHintsDisabled(t *testing.T) {
	doc := parseDoc(t, `<hr size=100 /><table align=right width=100><td>0</td></table>`)
	r := NewResolver(nil, Options{})
	for _, element := range doc.Elements() {
		assert.Zero(t, r.Resolve(element, "").Len())
	}
}

func TestHintsBody(t *testing.T) {
	doc := parseDoc(t, `<body marginheight=2 topmargin=3 leftmargin=5 bgcolor=red text=blue />`)
	r := NewResolver(nil, Options{PresentationalHints: true})
	block := r.Resolve(selectOne(t, doc, "body"), "")
	assert.Equal(t, "2px", block.Value("margin-top").String())
	assert.Equal(t, "2px", block.Value("margin-bottom").String())
	assert.Equal(t, "5px", block.Value("margin-left").String())
	_, ok := block.Get("margin-right")
	assert.False(t, ok)
	assert.Equal(t, "red", block.Value("background-color").String())
	assert.Equal(t, "blue", block.Value("color").String())
}

func TestHintsFlow(t *testing.T) {
	assert.Equal(t, []string{"pre-wrap"}, resolveHints(t, `<pre wrap></pre>`, "white-space", "pre"))
	assert.Equal(t, []string{"center", "center", "center", "left", "right", "justify"},
		resolveHints(t, `
		<center></center>
		<div align=center></div>
		<div align=middle></div>
		<div align=left></div>
		<div align=right></div>
		<div align=justify></div>`, "text-align", "center, div"))
}

func TestHintsPhrasing(t *testing.T) {
	content := `
		<br clear=left>
		<br clear=right />
		<br clear=both />
		<br clear=all />
		<font color=red face=weasyprint size=7></font>
		<Font size=4></Font>
		<font size=+5 ></font>
		<font size=-5 ></font>`
	assert.Equal(t, []string{"left", "right", "both", "both"}, resolveHints(t, content, "clear", "br"))
	assert.Equal(t, []string{"48px", "large", "48px", "x-small"}, resolveHints(t, content, "font-size", "font"))
	assert.Equal(t, []string{"weasyprint", "", "", ""}, resolveHints(t, content, "font-family", "font"))
}

func TestHintsLists(t *testing.T) {
	content := `
		<ol>
			<li type=A></li>
			<li type=1></li>
			<li type=a></li>
			<li type=i></li>
			<li type=I></li>
		</ol>
		<ul>
			<li type=circle></li>
			<li type=DISC></li>
			<li type=square></li>
		</ul>
		<ol type=i></ol>`
	assert.Equal(t, []string{
		"upper-alpha", "decimal", "lower-alpha", "lower-roman", "upper-roman",
		"circle", "disc", "square",
	}, resolveHints(t, content, "list-style-type", "li"))
	assert.Equal(t, []string{"", "lower-roman"}, resolveHints(t, content, "list-style-type", "ol"))
}

func TestHintsTables(t *testing.T) {
	content := `
		<table align=left></table>
		<table align=right></table>
		<table align=center></table>
		<table border=10 cellspacing=3 bordercolor=green>
			<thead><tr><th valign=top></th></tr></thead>
			<tr><td nowrap><h1 align=right></h1><p align=center></p></td></tr>
			<tfoot align=justify><tr><td></td></tr></tfoot>
		</table>`
	assert.Equal(t, []string{"left", "right", "", ""}, resolveHints(t, content, "float", "table"))
	assert.Equal(t, []string{"", "", "auto", ""}, resolveHints(t, content, "margin-left", "table"))
	assert.Equal(t, []string{"", "", "", "outset"}, resolveHints(t, content, "border-top-style", "table"))
	assert.Equal(t, []string{"", "", "", "10px"}, resolveHints(t, content, "border-top-width", "table"))
	assert.Equal(t, []string{"", "", "", "3px"}, resolveHints(t, content, "border-spacing", "table"))
	assert.Equal(t, []string{"", "", "", "green"}, resolveHints(t, content, "border-left-color", "table"))

	assert.Equal(t, []string{"top"}, resolveHints(t, content, "vertical-align", "th"))
	assert.Equal(t, []string{"nowrap", ""}, resolveHints(t, content, "white-space", "td"))
	assert.Equal(t, []string{"1px", "1px"}, resolveHints(t, content, "border-top-width", "td"))
	assert.Equal(t, []string{"inset", "inset"}, resolveHints(t, content, "border-top-style", "td"))
	assert.Equal(t, []string{"right", "center"}, resolveHints(t, content, "text-align", "h1, p"))
	assert.Equal(t, []string{"justify"}, resolveHints(t, content, "text-align", "tfoot"))
}

func TestHintsHr(t *testing.T) {
	content := `
		<hr align=left>
		<hr align=right />
		<hr align=both color=red />
		<hr align=center noshade size=10 />
		<hr align=all size=8 width=100 />`
	assert.Equal(t, []string{"0", "auto", "", "auto", ""}, resolveHints(t, content, "margin-left", "hr"))
	assert.Equal(t, []string{"auto", "0", "", "auto", ""}, resolveHints(t, content, "margin-right", "hr"))
	assert.Equal(t, []string{"", "", "red", "", ""}, resolveHints(t, content, "color", "hr"))
	assert.Equal(t, []string{"", "", "", "5px", ""}, resolveHints(t, content, "border-top-width", "hr"))
	assert.Equal(t, []string{"", "", "", "", "6px"}, resolveHints(t, content, "height", "hr"))
	assert.Equal(t, []string{"", "", "", "", "100px"}, resolveHints(t, content, "width", "hr"))
}

func TestHintsEmbedded(t *testing.T) {
	content := `
		<object data="image.svg" align=top hspace=10 vspace=20></object>
		<img src="image.svg" alt=text align=right width=10 height=20 />
		<embed src="image.svg" align=texttop />`
	assert.Equal(t, []string{"top", "", "text-top"}, resolveHints(t, content, "vertical-align", "object, img, embed"))
	assert.Equal(t, []string{"20px"}, resolveHints(t, content, "margin-top", "object"))
	assert.Equal(t, []string{"10px"}, resolveHints(t, content, "margin-left", "object"))
	assert.Equal(t, []string{"right"}, resolveHints(t, content, "float", "img"))
	assert.Equal(t, []string{"10px"}, resolveHints(t, content, "width", "img"))
	assert.Equal(t, []string{"20px"}, resolveHints(t, content, "height", "img"))
}
