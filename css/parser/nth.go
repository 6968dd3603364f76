package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// the 'n' is glued to its sign and coefficient; the offset sign may be spaced
	anbRe    = regexp.MustCompile(`^([+-]?)(\d*)n(?:\s*([+-])\s*(\d+))?$`)
	offsetRe = regexp.MustCompile(`^[+-]?\d+$`)
)

// nthText rebuilds the source text of an <An+B> argument, whitespace
// collapsed to a single space. It returns false for tokens which can't
// be part of the micro syntax.
func nthText(tokens []Token) (string, bool) {
	var b strings.Builder
	for _, token := range tokens {
		switch token := token.(type) {
		case Whitespace, Comment:
			b.WriteByte(' ')
		case Number:
			b.WriteString(token.Value)
		case Dimension:
			b.WriteString(token.Value + token.Unit)
		case Ident:
			b.WriteString(token.Value)
		case Literal:
			if token.Value != "+" && token.Value != "-" {
				return "", false
			}
			b.WriteString(token.Value)
		default:
			return "", false
		}
	}
	return strings.ToLower(strings.TrimSpace(b.String())), true
}

// ParseNth parses the <An+B> micro syntax of `:nth-child()` and related
// pseudo-classes (see https://drafts.csswg.org/css-syntax-3/#anb-microsyntax).
//
// Returns [a, b] or nil
func ParseNth(input []Token) *[2]int {
	text, ok := nthText(input)
	if !ok {
		return nil
	}
	switch text {
	case "odd":
		return &[2]int{2, 1}
	case "even":
		return &[2]int{2, 0}
	}
	if offsetRe.MatchString(text) {
		b, err := strconv.Atoi(text)
		if err != nil {
			return nil
		}
		return &[2]int{0, b}
	}
	match := anbRe.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	a := 1
	if match[2] != "" {
		var err error
		if a, err = strconv.Atoi(match[2]); err != nil {
			return nil
		}
	}
	if match[1] == "-" {
		a = -a
	}
	b := 0
	if match[4] != "" {
		var err error
		if b, err = strconv.Atoi(match[4]); err != nil {
			return nil
		}
		if match[3] == "-" {
			b = -b
		}
	}
	return &[2]int{a, b}
}

// MatchNth returns true if position (starting at 1) is a*n+b
// for some n >= 0.
func MatchNth(ab [2]int, position int) bool {
	a, b := ab[0], ab[1]
	if a == 0 {
		return position == b
	}
	diff := position - b
	return diff%a == 0 && diff/a >= 0
}
