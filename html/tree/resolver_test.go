package tree

import (
	"errors"
	"testing"

	"github.com/benoitkugler/cascade/css/media"
	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/css/validation"
	"github.com/benoitkugler/cascade/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseDoc(t *testing.T, content string) *Document {
	t.Helper()
	doc, err := ParseDocumentString(content)
	require.NoError(t, err)
	return doc
}

func selectOne(t *testing.T, doc *Document, sel string) *html.Node {
	t.Helper()
	elements, err := doc.Select(sel)
	require.NoError(t, err)
	require.Len(t, elements, 1, sel)
	return elements[0]
}

func authorResolver(t *testing.T, css string, opts Options) *Resolver {
	t.Helper()
	return NewResolver([]Sheet{NewSheet(css, Author)}, opts)
}

func TestSpecificityWins(t *testing.T) {
	doc := parseDoc(t, `<body id="id"><div class="cls">text</div></body>`)
	div := selectOne(t, doc, "div")

	r := authorResolver(t, `
		#id .cls { color: red }
		div.cls { color: blue }
	`, Options{})
	assert.Equal(t, "red", r.Resolve(div, "").Value("color").String())

	// equal specificity: the last one wins
	r = authorResolver(t, `
		.cls { color: red }
		.cls { color: blue }
	`, Options{})
	assert.Equal(t, "blue", r.Resolve(div, "").Value("color").String())

	// the most specific matching alternative is used
	r = authorResolver(t, `
		p, #id div { color: red }
		body .cls { color: blue }
	`, Options{})
	assert.Equal(t, "red", r.Resolve(div, "").Value("color").String())
}

func TestArgumentSelectorsMatch(t *testing.T) {
	doc := parseDoc(t, `<p class="c" id="x">text</p>`)
	p := selectOne(t, doc, "p")
	r := authorResolver(t, `
		p:is(#x, .c) { color: red }
		:nth-child(1 of .c) { margin-top: 1px }
		p { color: blue }
		:where(#x) { margin-bottom: 2px }
		p { margin-bottom: 3px }
	`, Options{})
	block := r.Resolve(p, "")
	assert.Equal(t, "red", block.Value("color").String())
	assert.Equal(t, "1px", block.Value("margin-top").String())
	assert.Equal(t, "3px", block.Value("margin-bottom").String())
}

func TestCustomProperties(t *testing.T) {
	doc := parseDoc(t, `<p style="--Accent: blue">text</p>`)
	p := selectOne(t, doc, "p")
	r := authorResolver(t, `p { --main: red; color: var(--main) }`, Options{})
	block := r.Resolve(p, "")
	assert.Equal(t, "red", block.Value("--main").String())
	assert.Equal(t, "blue", block.Value("--Accent").String())
	assert.Equal(t, "var(--main)", block.Value("color").String())
}

func TestShorthandsAreResolvedPerLonghand(t *testing.T) {
	doc := parseDoc(t, `<p class="a">text</p>`)
	p := selectOne(t, doc, "p")
	r := authorResolver(t, `
		p.a { margin-left: 4px }
		p { margin: 1px 2px }
	`, Options{})
	block := r.Resolve(p, "")
	assert.Equal(t, "1px", block.Value("margin-top").String())
	assert.Equal(t, "2px", block.Value("margin-right").String())
	assert.Equal(t, "4px", block.Value("margin-left").String())
	assert.Equal(t, "margin:1px 2px 1px 4px;", block.Text())
}

func TestOriginLadder(t *testing.T) {
	doc := parseDoc(t, `<p id="p" style="color: green; margin-top: 1px !important; width: 10px">text</p>`)
	p := selectOne(t, doc, "p")

	sheets := []Sheet{
		NewSheet(`p { color: gray; display: inline !important; float: left; height: 1px !important }`, UserAgent),
		NewSheet(`p { float: right; height: 2px !important; position: absolute }`, User),
		NewSheet(`#p { color: red; margin-top: 5px !important; width: 20px !important; display: flex !important; position: relative }`, Author),
	}
	r := NewResolver(sheets, Options{
		OverrideStyle: func(element *html.Node) string { return "width: 30px; visibility: hidden" },
	})
	block := r.Resolve(p, "")

	expected := map[string]struct {
		value      string
		precedence Precedence
	}{
		"color":      {"green", InlineNormal},        // inline beats an id selector
		"margin-top": {"1px", InlineImportant},       // inline important beats author important
		"width":      {"20px", AuthorImportant},      // author important beats override normal
		"display":    {"inline", UserAgentImportant}, // user agent important beats author important
		"height":     {"2px", UserImportant},         // user important always wins
		"float":      {"right", UserNormal},          // user beats user agent
		"position":   {"relative", AuthorNormal},     // author beats user
		"visibility": {"hidden", OverrideNormal},
	}
	for name, exp := range expected {
		entry, ok := block.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, exp.value, entry.Value.String(), name)
		assert.Equal(t, exp.precedence, entry.Precedence, name)
	}
	height, _ := block.Get("height")
	assert.Equal(t, User, height.Origin())
	assert.True(t, height.Important)
}

func TestPseudoElements(t *testing.T) {
	doc := parseDoc(t, `<p style="color: green">text</p>`)
	p := selectOne(t, doc, "p")
	r := authorResolver(t, `
		p { color: red }
		p::before { content: "a" }
		p:after { content: "b" }
		p::before, div { color: blue }
	`, Options{})

	block := r.Resolve(p, "")
	assert.Equal(t, "green", block.Value("color").String())
	_, ok := block.Get("content")
	assert.False(t, ok)

	before := r.Resolve(p, "before")
	assert.Equal(t, `"a"`, before.Value("content").String())
	assert.Equal(t, "blue", before.Value("color").String())

	after := r.Resolve(p, "after")
	assert.Equal(t, `"b"`, after.Value("content").String())
	_, ok = after.Get("color")
	assert.False(t, ok)
}

func TestConditionalRules(t *testing.T) {
	doc := parseDoc(t, `<p>text</p>`)
	p := selectOne(t, doc, "p")
	env := &media.StaticEnvironment{Type: "screen", Width: 800, Height: 600}

	r := authorResolver(t, `
		p { color: black; width: 1px; height: 1px; float: none; position: static }
		@media print { p { color: red } }
		@media (min-width: 500px) {
			p { width: 2px }
			@media (min-width: 300px) { p { height: 2px } }
			@media (max-width: 600px) { p { height: 3px } }
		}
		@supports (display: grid) { p { float: left } }
		@supports (margin: nonsense) or (unknown-property: 1) { p { position: absolute } }
	`, Options{Environment: env})
	block := r.Resolve(p, "")
	assert.Equal(t, "black", block.Value("color").String())
	assert.Equal(t, "2px", block.Value("width").String())
	assert.Equal(t, "2px", block.Value("height").String())
	assert.Equal(t, "left", block.Value("float").String())
	assert.Equal(t, "static", block.Value("position").String())
}

func TestRedundantMediaIsLogged(t *testing.T) {
	log, logs := testutils.CaptureLogs()
	authorResolver(t, `
		@media (min-width: 500px) {
			@media (min-width: 300px) { p { height: 2px } }
		}
	`, Options{Logger: log})
	assert.Contains(t, logs.Messages(), "redundant media query")
}

func TestImports(t *testing.T) {
	doc := parseDoc(t, `<p>text</p>`)
	p := selectOne(t, doc, "p")

	loaded := map[string]int{}
	loader := func(url string) (*pa.Stylesheet, error) {
		loaded[url]++
		switch url {
		case "base.css":
			return pa.ParseSheetString(`p { color: blue; width: 1px }`), nil
		case "print.css":
			return pa.ParseSheetString(`p { color: red }`), nil
		case "loop.css":
			return pa.ParseSheetString(`@import "loop.css"; p { height: 3px }`), nil
		}
		return nil, errors.New("not found")
	}
	log, logs := testutils.CaptureLogs()
	r := authorResolver(t, `
		@import "base.css";
		@import "base.css";
		@import "print.css" print;
		@import "missing.css";
		@import "loop.css";
		p { width: 2px }
	`, Options{Loader: loader, Logger: log})

	block := r.Resolve(p, "")
	assert.Equal(t, "blue", block.Value("color").String())
	// rules after the imports win
	assert.Equal(t, "2px", block.Value("width").String())
	assert.Equal(t, "3px", block.Value("height").String())

	assert.Equal(t, map[string]int{"base.css": 1, "missing.css": 1, "loop.css": 1}, loaded)
	msgs := logs.Messages()
	assert.Contains(t, msgs, "duplicate import")
	assert.Contains(t, msgs, "failed to load import")
	assert.Contains(t, msgs, "recursive import")
}

func TestFontFacesReportedOnce(t *testing.T) {
	doc := parseDoc(t, `<p>text</p><div>text</div>`)
	var faces []validation.FontFace
	log, logs := testutils.CaptureLogs()
	r := authorResolver(t, `
		@font-face { font-family: Test; src: url(test.woff) format("woff") }
		@font-face { font-family: Broken }
		@media print { @font-face { font-family: Print; src: url(print.woff) } }
		p { font-family: Test }
	`, Options{
		FontFaces: func(face validation.FontFace) { faces = append(faces, face) },
		Logger:    log,
	})
	for _, element := range doc.Elements() {
		r.Resolve(element, "")
	}
	require.Len(t, faces, 1)
	assert.Equal(t, "Test", faces[0].Family)
	assert.Equal(t, "test.woff", faces[0].Src[0].Value)
	assert.Contains(t, logs.Messages(), "ignored font-face rule")
}

func TestInvalidDeclarationsAreReported(t *testing.T) {
	doc := parseDoc(t, `<p style="margin: nonsense; color: blue">text</p>`)
	p := selectOne(t, doc, "p")
	var dropped []string
	r := authorResolver(t, `p { unknown: 1; color: red; font: 12px }`, Options{
		Errors: func(decl pa.Declaration, err error) { dropped = append(dropped, decl.Name) },
	})
	block := r.Resolve(p, "")
	assert.Equal(t, "blue", block.Value("color").String())
	_, ok := block.Get("margin-top")
	assert.False(t, ok)
	assert.Equal(t, []string{"unknown", "font", "margin"}, dropped)
}

func TestPresentationalHints(t *testing.T) {
	doc := parseDoc(t, `
		<table cellpadding="3" border="1" bgcolor="red"><tr><td align="right" width="20">cell</td></tr></table>
		<font size="+2" color="blue">big</font>
		<p hidden>hidden</p>
	`)
	table := selectOne(t, doc, "table")
	td := selectOne(t, doc, "td")
	font := selectOne(t, doc, "font")
	p := selectOne(t, doc, "p")

	r := NewResolver(nil, Options{})
	_, ok := r.Resolve(td, "").Get("padding-top")
	assert.False(t, ok)

	r = NewResolver([]Sheet{NewSheet(`td { text-align: left }`, Author)}, Options{PresentationalHints: true})
	block := r.Resolve(td, "")
	assert.Equal(t, "3px", block.Value("padding-top").String())
	assert.Equal(t, "20px", block.Value("width").String())
	assert.Equal(t, "inset", block.Value("border-left-style").String())
	// author rules beat hints
	entry, _ := block.Get("text-align")
	assert.Equal(t, "left", entry.Value.String())
	assert.Equal(t, AuthorNormal, entry.Precedence)
	entry, _ = block.Get("width")
	assert.Equal(t, HintNormal, entry.Precedence)

	assert.Equal(t, "red", r.Resolve(table, "").Value("background-color").String())
	block = r.Resolve(font, "")
	assert.Equal(t, "x-large", block.Value("font-size").String())
	assert.Equal(t, "blue", block.Value("color").String())
	assert.Equal(t, "none", r.Resolve(p, "").Value("display").String())
}

func TestUserAgentSheet(t *testing.T) {
	doc := parseDoc(t, `<body><h1>Title</h1><p>text</p></body>`)
	r := NewResolver([]Sheet{UserAgentSheet(), NewSheet(`p { margin-top: 0 }`, Author)}, Options{})

	body := r.Resolve(selectOne(t, doc, "body"), "")
	assert.Equal(t, "8px", body.Value("margin-left").String())
	assert.Equal(t, "block", body.Value("display").String())

	h1 := r.Resolve(selectOne(t, doc, "h1"), "")
	assert.Equal(t, "2em", h1.Value("font-size").String())

	p, _ := r.Resolve(selectOne(t, doc, "p"), "").Get("margin-top")
	assert.Equal(t, "0", p.Value.String())
	assert.Equal(t, Author, p.Origin())

	head := r.Resolve(selectOne(t, doc, "head"), "")
	assert.Equal(t, "none", head.Value("display").String())
}

func TestResolveDocument(t *testing.T) {
	doc := parseDoc(t, `<p>a</p><p class="b">b</p>`)
	r := authorResolver(t, `p { color: red } .b { color: blue }`, Options{})
	blocks := r.ResolveDocument(doc)
	assert.Len(t, blocks, len(doc.Elements()))
	b := selectOne(t, doc, ".b")
	assert.Equal(t, "blue", blocks[b].Value("color").String())
}
