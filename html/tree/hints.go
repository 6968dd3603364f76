package tree

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Return true if all characters in s are digits and there is at least one character in s.
func isDigit(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// pixels appends `px` to unitless integers.
func pixels(s string) string {
	if isDigit(s) {
		return s + "px"
	}
	return s
}

var fontSizes = [8]string{
	1: "x-small",
	2: "small",
	3: "medium",
	4: "large",
	5: "x-large",
	6: "xx-large",
	7: "48px", // 1.5 * xx-large
}

// listTypes maps the `type` attribute of lists. Single letter
// values are case sensitive.
var listTypes = map[string]string{
	"1":      "decimal",
	"a":      "lower-alpha",
	"A":      "upper-alpha",
	"i":      "lower-roman",
	"I":      "upper-roman",
	"disc":   "disc",
	"circle": "circle",
	"square": "square",
	"none":   "none",
}

// ancestorTable returns the nearest <table> ancestor of a cell.
func ancestorTable(element *html.Node) *html.Node {
	for n := element.Parent; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			return n
		}
	}
	return nil
}

// presentationalHints returns the declarations mapped from the
// legacy HTML attributes of element, as `name:value` strings.
func presentationalHints(element *html.Node) (out []string) {
	add := func(format string, args ...any) { out = append(out, fmt.Sprintf(format, args...)) }

	if hasAttr(element, "hidden") {
		add("display:none")
	}

	switch element.DataAtom {
	case atom.Body:
		for _, pp := range [4][2]string{{"height", "top"}, {"height", "bottom"}, {"width", "left"}, {"width", "right"}} {
			part, position := pp[0], pp[1]
			for _, prop := range [2]string{"margin" + part, position + "margin"} {
				if s := getAttr(element, prop); s != "" {
					add("margin-%s:%spx", position, s)
					break
				}
			}
		}
		if s := getAttr(element, "background"); s != "" {
			add("background-image:url(%s)", s)
		}
		if s := getAttr(element, "bgcolor"); s != "" {
			add("background-color:%s", s)
		}
		if s := getAttr(element, "text"); s != "" {
			add("color:%s", s)
		}
	case atom.Center:
		add("text-align:center")
	case atom.Div, atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		switch align := strings.ToLower(getAttr(element, "align")); align {
		case "middle":
			add("text-align:center")
		case "center", "left", "right", "justify":
			add("text-align:%s", align)
		}
	case atom.Font:
		if s := getAttr(element, "color"); s != "" {
			add("color:%s", s)
		}
		if s := getAttr(element, "face"); s != "" {
			add("font-family:%s", s)
		}
		if size := strings.TrimSpace(getAttr(element, "size")); size != "" {
			relativePlus := strings.HasPrefix(size, "+")
			relativeMinus := strings.HasPrefix(size, "-")
			if relativePlus || relativeMinus {
				size = strings.TrimSpace(size[1:])
			}
			if sizeI, err := strconv.Atoi(size); err == nil {
				if relativePlus {
					sizeI += 3
				} else if relativeMinus {
					sizeI = 3 - sizeI
				}
				add("font-size:%s", fontSizes[max(1, min(7, sizeI))])
			}
		}
	case atom.Br:
		switch clear := strings.ToLower(getAttr(element, "clear")); clear {
		case "left", "right", "both":
			add("clear:%s", clear)
		case "all":
			add("clear:both")
		}
	case atom.Pre, atom.Listing, atom.Xmp, atom.Plaintext:
		if hasAttr(element, "wrap") {
			add("white-space:pre-wrap")
		}
	case atom.Ol, atom.Ul, atom.Li:
		if s := getAttr(element, "type"); s != "" {
			if listType, ok := listTypes[s]; ok {
				add("list-style-type:%s", listType)
			} else if listType, ok := listTypes[strings.ToLower(s)]; ok && len(s) > 1 {
				add("list-style-type:%s", listType)
			}
		}
	case atom.Table:
		switch strings.ToLower(getAttr(element, "align")) {
		case "left":
			add("float:left")
		case "right":
			add("float:right")
		case "center":
			add("margin-left:auto;margin-right:auto")
		}
		if s := getAttr(element, "cellspacing"); s != "" {
			add("border-spacing:%spx", s)
		}
		if s := getAttr(element, "hspace"); s != "" {
			add("margin-left:%s;margin-right:%s", pixels(s), pixels(s))
		}
		if s := getAttr(element, "vspace"); s != "" {
			add("margin-top:%s;margin-bottom:%s", pixels(s), pixels(s))
		}
		if s := getAttr(element, "width"); s != "" {
			add("width:%s", pixels(s))
		}
		if s := getAttr(element, "height"); s != "" {
			add("height:%s", pixels(s))
		}
		if s := getAttr(element, "background"); s != "" {
			add("background-image:url(%s)", s)
		}
		if s := getAttr(element, "bgcolor"); s != "" {
			add("background-color:%s", s)
		}
		if s := getAttr(element, "bordercolor"); s != "" {
			add("border-color:%s", s)
		}
		if s := getAttr(element, "border"); s != "" {
			add("border-width:%spx;border-style:outset", s)
		}
	case atom.Tr, atom.Td, atom.Th, atom.Thead, atom.Tbody, atom.Tfoot:
		if align := strings.ToLower(getAttr(element, "align")); align == "left" || align == "right" || align == "justify" || align == "center" {
			add("text-align:%s", align)
		}
		if valign := strings.ToLower(getAttr(element, "valign")); valign != "" {
			add("vertical-align:%s", valign)
		}
		if s := getAttr(element, "background"); s != "" {
			add("background-image:url(%s)", s)
		}
		if s := getAttr(element, "bgcolor"); s != "" {
			add("background-color:%s", s)
		}
		if element.DataAtom == atom.Tr || element.DataAtom == atom.Td || element.DataAtom == atom.Th {
			if s := getAttr(element, "height"); s != "" {
				add("height:%s", pixels(s))
			}
		}
		if element.DataAtom == atom.Td || element.DataAtom == atom.Th {
			if hasAttr(element, "nowrap") {
				add("white-space:nowrap")
			}
			if s := getAttr(element, "width"); s != "" {
				add("width:%s", pixels(s))
			}
			if table := ancestorTable(element); table != nil {
				if s := getAttr(table, "cellpadding"); s != "" {
					s = pixels(s)
					add("padding-left:%s;padding-right:%s;padding-top:%s;padding-bottom:%s", s, s, s, s)
				}
				if s := getAttr(table, "border"); s != "" && s != "0" {
					add("border-width:1px;border-style:inset")
				}
			}
		}
	case atom.Caption:
		if align := strings.ToLower(getAttr(element, "align")); align == "left" || align == "right" || align == "justify" {
			add("text-align:%s", align)
		}
	case atom.Col:
		if s := getAttr(element, "width"); s != "" {
			add("width:%s", pixels(s))
		}
	case atom.Hr:
		switch strings.ToLower(getAttr(element, "align")) {
		case "left":
			add("margin-left:0;margin-right:auto")
		case "right":
			add("margin-left:auto;margin-right:0")
		case "center":
			add("margin-left:auto;margin-right:auto")
		}
		size := 0
		if s := getAttr(element, "size"); s != "" {
			size, _ = strconv.Atoi(s)
		}
		if hasAttr(element, "color") || hasAttr(element, "noshade") {
			if size >= 1 {
				add("border-width:%dpx", size/2)
			}
		} else if size == 1 {
			add("border-bottom-width:0")
		} else if size > 1 {
			add("height:%dpx", size-2)
		}
		if s := getAttr(element, "width"); s != "" {
			add("width:%s", pixels(s))
		}
		if s := getAttr(element, "color"); s != "" {
			add("color:%s", s)
		}
	case atom.Iframe, atom.Embed, atom.Img, atom.Input, atom.Object:
		if element.DataAtom == atom.Input && strings.ToLower(getAttr(element, "type")) != "image" {
			break
		}
		switch align := strings.ToLower(getAttr(element, "align")); align {
		case "middle", "center", "absmiddle", "abscenter":
			add("vertical-align:middle")
		case "top", "bottom", "baseline":
			add("vertical-align:%s", align)
		case "texttop":
			add("vertical-align:text-top")
		case "left", "right":
			add("float:%s", align)
		}
		if s := getAttr(element, "hspace"); s != "" {
			add("margin-left:%s;margin-right:%s", pixels(s), pixels(s))
		}
		if s := getAttr(element, "vspace"); s != "" {
			add("margin-top:%s;margin-bottom:%s", pixels(s), pixels(s))
		}
		if s := getAttr(element, "width"); s != "" {
			add("width:%s", pixels(s))
		}
		if s := getAttr(element, "height"); s != "" {
			add("height:%s", pixels(s))
		}
		if element.DataAtom == atom.Img || element.DataAtom == atom.Object || element.DataAtom == atom.Input {
			if s := getAttr(element, "border"); s != "" {
				add("border-width:%spx;border-style:solid", s)
			}
		}
	}
	return out
}
