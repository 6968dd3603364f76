package tree

import (
	"errors"
	"testing"

	"github.com/benoitkugler/cascade/css/media"
	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocumentString(`<p>a</p><noscript><p>b</p></noscript>`)
	require.NoError(t, err)
	assert.Equal(t, "html", doc.Root.Data)

	ps, err := doc.Select("p")
	require.NoError(t, err)
	assert.Len(t, ps, 2)

	var names []string
	for _, element := range doc.Elements() {
		names = append(names, element.Data)
	}
	assert.Equal(t, []string{"html", "head", "body", "p", "noscript", "p"}, names)

	_, err = doc.Select("p[")
	assert.Error(t, err)
}

func TestAuthorSheets(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<style>p { color: red }</style>
		<style media="print">p { color: blue }</style>
		<style type="text/plain">p { color: green }</style>
		<link rel="stylesheet" href="a.css">
		<link rel="alternate stylesheet" href="b.css">
		<link rel="stylesheet" href="missing.css">
		<link rel="icon" href="c.css">
	</head><body><p>text</p></body></html>`)

	var requested []string
	loader := func(url string) (*pa.Stylesheet, error) {
		requested = append(requested, url)
		if url == "a.css" {
			return pa.ParseSheetString(`p { width: 1px }`), nil
		}
		return nil, errors.New("not found")
	}
	sheets, err := doc.AuthorSheets(&media.StaticEnvironment{Type: "screen"}, loader)
	assert.ErrorContains(t, err, "missing.css")
	assert.Equal(t, []string{"a.css", "missing.css"}, requested)
	require.Len(t, sheets, 2)
	assert.Equal(t, "", sheets[0].Href)
	assert.Equal(t, "a.css", sheets[1].Href)

	r := NewResolver(sheets, Options{})
	block := r.Resolve(selectOne(t, doc, "p"), "")
	assert.Equal(t, "red", block.Value("color").String())
	assert.Equal(t, "1px", block.Value("width").String())

	// without loader, links are ignored
	sheets, err = doc.AuthorSheets(&media.StaticEnvironment{Type: "print"}, nil)
	require.NoError(t, err)
	assert.Len(t, sheets, 2)
}

func TestOriginString(t *testing.T) {
	assert.Equal(t, "user agent", UserAgent.String())
	assert.Equal(t, "author", Author.String())
	assert.Equal(t, "user !important", UserImportant.String())
}
