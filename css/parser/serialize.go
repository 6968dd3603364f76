package parser

import (
	"fmt"
	"io"
	"strings"
)

type stringWriter = io.StringWriter

var badPairs = map[[2]string]bool{}

func init() {
	for _, a := range []string{"ident", "at-keyword", "hash", "dimension", "#", "-", "number"} {
		for _, b := range []string{"ident", "function", "url", "number", "percentage", "dimension", "unicode-range"} {
			badPairs[[2]string{a, b}] = true
		}
	}
	for _, a := range []string{"ident", "at-keyword", "hash", "dimension"} {
		for _, b := range []string{"-", "-->"} {
			badPairs[[2]string{a, b}] = true
		}
	}
	for _, a := range []string{"#", "-", "number", "@"} {
		for _, b := range []string{"ident", "function", "url"} {
			badPairs[[2]string{a, b}] = true
		}
	}
	for _, a := range []string{"unicode-range", ".", "+"} {
		for _, b := range []string{"number", "percentage", "dimension"} {
			badPairs[[2]string{a, b}] = true
		}
	}
	for _, b := range []string{"ident", "function", "url", "unicode-range", "-"} {
		badPairs[[2]string{"@", b}] = true
	}
	for _, b := range []string{"ident", "function", "?"} {
		badPairs[[2]string{"unicode-range", b}] = true
	}
	for _, a := range []string{"$", "*", "^", "~", "|"} {
		badPairs[[2]string{a, "="}] = true
	}
	badPairs[[2]string{"ident", "() block"}] = true
	badPairs[[2]string{"|", "|"}] = true
	badPairs[[2]string{"/", "*"}] = true
}

func Serialize(l []Token) string {
	var w strings.Builder
	serializeTo(l, &w)
	return w.String()
}

func serializeName(value string) string {
	var chuncks strings.Builder
	for _, c := range value {
		var mapped string
		switch c {
		case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', '-', '_', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z':
			mapped = string(c)
		case '\n':
			mapped = `\A `
		case '\r':
			mapped = `\D `
		case '\f':
			mapped = `\C `
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			mapped = string(c)
		default:
			if c > 0x7F {
				mapped = string(c)
			} else {
				mapped = "\\" + string(c)
			}
		}
		chuncks.WriteString(mapped)
	}
	return chuncks.String()
}

func serializeStringValue(value string) string {
	var chuncks strings.Builder
	for _, c := range value {
		var mapped string
		switch c {
		case '"':
			mapped = `\"`
		case '\\':
			mapped = `\\`
		case '\n':
			mapped = `\A `
		case '\r':
			mapped = `\D `
		case '\f':
			mapped = `\C `
		default:
			mapped = string(c)
		}
		chuncks.WriteString(mapped)
	}
	return chuncks.String()
}

func serializeURL(value string) string {
	var chuncks strings.Builder
	for _, c := range value {
		var mapped string
		switch c {
		case '\'':
			mapped = `\'`
		case '"':
			mapped = `\"`
		case '\\':
			mapped = `\\`
		case ' ':
			mapped = `\ `
		case '\t':
			mapped = `\9 `
		case '\n':
			mapped = `\A `
		case '\r':
			mapped = `\D `
		case '\f':
			mapped = `\C `
		case '(':
			mapped = `\(`
		case ')':
			mapped = `\)`
		default:
			mapped = string(c)
		}
		chuncks.WriteString(mapped)
	}
	return chuncks.String()
}

func (t Literal) serializeTo(writer stringWriter) {
	writer.WriteString(t.Value)
}

func (t ParseError) serializeTo(writer stringWriter) {
	switch t.Reason {
	case "bad-string":
		writer.WriteString("\"[bad string]\n")
	case "bad-url":
		writer.WriteString("url([bad url])")
	case ")", "]", "}":
		writer.WriteString(t.Reason)
	}
}

func (t Comment) serializeTo(writer stringWriter) {
	writer.WriteString("/*")
	writer.WriteString(t.Value)
	writer.WriteString("*/")
}

func (t Whitespace) serializeTo(writer stringWriter) {
	writer.WriteString(t.Value)
}

// identifiers keep their source escapes
func (t Ident) serializeTo(writer stringWriter) {
	writer.WriteString(t.Value)
}

func (t AtKeyword) serializeTo(writer stringWriter) {
	writer.WriteString("@")
	writer.WriteString(t.Value)
}

func (t Hash) serializeTo(writer stringWriter) {
	writer.WriteString("#")
	writer.WriteString(t.Value)
}

func (t String) serializeTo(writer stringWriter) {
	writer.WriteString(`"`)
	writer.WriteString(serializeStringValue(t.Value))
	writer.WriteString(`"`)
}

func (t URL) serializeTo(writer stringWriter) {
	writer.WriteString(`url(` + serializeURL(t.Value) + ")")
}

func (t UnicodeRange) serializeTo(writer stringWriter) {
	if t.End == t.Start {
		writer.WriteString(fmt.Sprintf("U+%X", t.Start))
	} else {
		writer.WriteString(fmt.Sprintf("U+%X-%X", t.Start, t.End))
	}
}

func (t Number) serializeTo(writer stringWriter) {
	writer.WriteString(t.Value)
}

func (t Percentage) serializeTo(writer stringWriter) {
	writer.WriteString(t.Value)
	writer.WriteString("%")
}

func (t Dimension) serializeTo(writer stringWriter) {
	writer.WriteString(t.Value)
	// Disambiguate with scientific notation
	if t.Unit == "e" || t.Unit == "E" || strings.HasPrefix(t.Unit, "e-") || strings.HasPrefix(t.Unit, "E-") {
		writer.WriteString("\\65 ")
		writer.WriteString(serializeName(t.Unit[1:]))
	} else {
		writer.WriteString(t.Unit)
	}
}

func (t ParenthesesBlock) serializeTo(writer stringWriter) {
	writer.WriteString("(")
	serializeTo(t.Content, writer)
	writer.WriteString(")")
}

func (t SquareBracketsBlock) serializeTo(writer stringWriter) {
	writer.WriteString("[")
	serializeTo(t.Content, writer)
	writer.WriteString("]")
}

func (t CurlyBracketsBlock) serializeTo(writer stringWriter) {
	writer.WriteString("{")
	serializeTo(t.Content, writer)
	writer.WriteString("}")
}

func (t FunctionBlock) serializeTo(writer stringWriter) {
	writer.WriteString(t.Name)
	writer.WriteString("(")
	serializeTo(t.Arguments, writer)
	writer.WriteString(")")
}

// http://drafts.csswg.org/csswg/css-syntax/#serialization-tables
// Serialize an iterable of nodes to CSS syntax,
// writing chunks to `writer`.
func serializeTo(nodes []Token, writer stringWriter) {
	var previousType string
	for _, node := range nodes {
		serializationType := node.Kind().String()
		if literal, ok := node.(Literal); ok {
			serializationType = literal.Value
		}
		if badPairs[[2]string{previousType, serializationType}] {
			writer.WriteString("/**/")
		}
		node.serializeTo(writer)
		previousType = serializationType
	}
}

// SerializeCompact writes significant tokens separated by a single
// space, with no space before commas and around slashes.
// Whitespace and comments are dropped, nested blocks keep their content verbatim.
func SerializeCompact(tokens []Token) string {
	var w strings.Builder
	prevSlash := true
	for _, token := range tokens {
		switch token.Kind() {
		case KWhitespace, KComment:
			continue
		}
		isComma, isSlash := IsLiteral(token, ","), IsLiteral(token, "/")
		if !prevSlash && !isComma && !isSlash {
			w.WriteByte(' ')
		}
		token.serializeTo(&w)
		prevSlash = isSlash
	}
	return w.String()
}

func (d Declaration) String() string {
	var w strings.Builder
	w.WriteString(d.Name)
	w.WriteString(":")
	serializeTo(d.Value, &w)
	if d.Important {
		w.WriteString("!important")
	}
	return w.String()
}
