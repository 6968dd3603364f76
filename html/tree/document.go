package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/benoitkugler/cascade/css/media"
	pa "github.com/benoitkugler/cascade/css/parser"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is an HTML document parsed by net/html.
type Document struct {
	// Root is the <html> element.
	Root *html.Node
}

// ParseDocument parses an HTML document, with scripting disabled
// so that <noscript> content is parsed as markup.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("invalid html input: %s", err)
	}
	// html.Parse wraps the <html> tag
	element := root.FirstChild
	for element != nil && element.Type != html.ElementNode {
		element = element.NextSibling
	}
	if element == nil {
		return nil, fmt.Errorf("invalid html input: missing root element")
	}
	return &Document{Root: element}, nil
}

// ParseDocumentString is a convenience wrapper around ParseDocument.
func ParseDocumentString(content string) (*Document, error) {
	return ParseDocument(strings.NewReader(content))
}

// Elements returns the elements of the document, in tree order.
func (doc *Document) Elements() []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc.Root)
	return out
}

// Select returns the elements matching the given CSS selector, in tree order.
func (doc *Document) Select(selector string) ([]*html.Node, error) {
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %s", selector, err)
	}
	return cascadia.QueryAll(doc.Root, sel), nil
}

func getAttr(element *html.Node, name string) string {
	for _, attr := range element.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

func hasAttr(element *html.Node, name string) bool {
	for _, attr := range element.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return true
		}
	}
	return false
}

// childrenText returns the text directly in element, not its descendants.
func childrenText(element *html.Node) string {
	var b strings.Builder
	for c := element.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// hasLinkType returns true if the `rel` attribute contains linkType.
func hasLinkType(element *html.Node, linkType string) bool {
	for _, token := range strings.Fields(getAttr(element, "rel")) {
		if strings.EqualFold(token, linkType) {
			return true
		}
	}
	return false
}

// AuthorSheets returns the style sheets of the document, from <style>
// elements and <link rel="stylesheet">, in source order.
// Sheets whose `media` attribute doesn't match env are skipped.
// Linked sheets are loaded by loader; when it is nil, they are ignored.
func (doc *Document) AuthorSheets(env media.Environment, loader ImportLoader) ([]Sheet, error) {
	sel := cascadia.MustCompile("style, link")
	var (
		out  []Sheet
		errs error
	)
	for _, element := range sel.MatchAll(doc.Root) {
		mimeType := getAttr(element, "type")
		if mimeType == "" {
			mimeType = "text/css"
		}
		// Only keep "type/subtype" from "type/subtype ; param1; param2".
		mimeType = strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])
		if mimeType != "text/css" {
			continue
		}
		if !media.ParseQueryListString(getAttr(element, "media")).Matches(env) {
			continue
		}
		switch element.DataAtom {
		case atom.Style:
			out = append(out, Sheet{Stylesheet: pa.ParseSheetString(childrenText(element)), Origin: Author})
		case atom.Link:
			href := getAttr(element, "href")
			if href == "" || loader == nil || !hasLinkType(element, "stylesheet") || hasLinkType(element, "alternate") {
				continue
			}
			sheet, err := loader(href)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("failed to load stylesheet at %s: %w", href, err))
				continue
			}
			out = append(out, Sheet{Stylesheet: sheet, Origin: Author, Href: href})
		}
	}
	return out, errs
}
