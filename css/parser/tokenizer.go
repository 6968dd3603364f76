package parser

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// frame is an open block waiting for its closing token.
type frame struct {
	opening Token // FunctionBlock, ParenthesesBlock, SquareBracketsBlock or CurlyBracketsBlock
	closer  css.TokenType
	tokens  []Token
}

func (f frame) close() Token {
	switch b := f.opening.(type) {
	case FunctionBlock:
		b.Arguments = f.tokens
		return b
	case ParenthesesBlock:
		b.Content = f.tokens
		return b
	case SquareBracketsBlock:
		b.Content = f.tokens
		return b
	case CurlyBracketsBlock:
		b.Content = f.tokens
		return b
	}
	return nil
}

// Tokenize parses a list of component values, nesting blocks and functions.
// If `skipComments` is true, ignore CSS comments :
// the return values (and recursively its blocks and functions)
// will not contain any `Comment` object.
func Tokenize(input []byte, skipComments bool) []Token {
	input = bytes.ReplaceAll(input, []byte("\r\n"), []byte("\n"))

	lexer := css.NewLexer(parse.NewInputBytes(input))
	line, column := 1, 1

	stack := []frame{{}} // the root frame is never closed
	push := func(t Token) {
		top := &stack[len(stack)-1]
		top.tokens = append(top.tokens, t)
	}

	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		pos := Pos{Line: line, Column: column}
		if n := bytes.Count(data, []byte{'\n'}); n > 0 {
			line += n
			column = len(data) - bytes.LastIndexByte(data, '\n')
		} else {
			column += len(data)
		}
		value := string(data)

		switch tt {
		case css.WhitespaceToken:
			push(Whitespace{Pos: pos, Value: value})
		case css.CommentToken:
			if !skipComments {
				push(Comment{Pos: pos, Value: strings.TrimSuffix(strings.TrimPrefix(value, "/*"), "*/")})
			}
		case css.IdentToken, css.CustomPropertyNameToken:
			push(Ident{Pos: pos, Value: value})
		case css.AtKeywordToken:
			push(AtKeyword{Pos: pos, Value: value[1:]})
		case css.HashToken:
			name := value[1:]
			push(Hash{Pos: pos, Value: name, IsIdentifier: isIdentStart(name)})
		case css.StringToken:
			push(String{Pos: pos, Value: unquote(value)})
		case css.BadStringToken:
			push(ParseError{Pos: pos, Reason: "bad-string", Message: "bad string token"})
		case css.URLToken:
			push(URL{Pos: pos, Value: urlContent(value)})
		case css.BadURLToken:
			push(ParseError{Pos: pos, Reason: "bad-url", Message: "bad URL token"})
		case css.NumberToken:
			push(Number{Pos: pos, Value: value})
		case css.PercentageToken:
			push(Percentage{Pos: pos, Value: strings.TrimSuffix(value, "%")})
		case css.DimensionToken:
			n := numericPrefix(value)
			push(Dimension{Pos: pos, Value: value[:n], Unit: value[n:]})
		case css.UnicodeRangeToken:
			if start, end, ok := parseUnicodeRange(value); ok {
				push(UnicodeRange{Pos: pos, Start: start, End: end})
			} else {
				push(ParseError{Pos: pos, Reason: "invalid-number", Message: "invalid unicode range " + value})
			}
		case css.FunctionToken:
			stack = append(stack, frame{opening: FunctionBlock{Pos: pos, Name: strings.TrimSuffix(value, "(")}, closer: css.RightParenthesisToken})
		case css.LeftParenthesisToken:
			stack = append(stack, frame{opening: ParenthesesBlock{Pos: pos}, closer: css.RightParenthesisToken})
		case css.LeftBracketToken:
			stack = append(stack, frame{opening: SquareBracketsBlock{Pos: pos}, closer: css.RightBracketToken})
		case css.LeftBraceToken:
			stack = append(stack, frame{opening: CurlyBracketsBlock{Pos: pos}, closer: css.RightBraceToken})
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			if len(stack) > 1 && stack[len(stack)-1].closer == tt {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				push(top.close())
			} else {
				push(ParseError{Pos: pos, Reason: value, Message: "Unmatched " + value})
			}
		case css.CDOToken, css.CDCToken:
			push(Literal{Pos: pos, Value: value})
		default: // delimiters, punctuation and match tokens
			push(Literal{Pos: pos, Value: value})
		}
	}

	// close blocks left open at EOF
	for len(stack) > 1 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(top.close())
	}
	return stack[0].tokens
}

// TokenizeString is a convenience wrapper around Tokenize, skipping comments.
func TokenizeString(input string) []Token {
	return Tokenize([]byte(input), true)
}

func isIdentStart(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if c == '-' {
		if len(s) == 1 {
			return false
		}
		c = s[1]
		if c == '-' {
			return true
		}
	}
	return c == '_' || c == '\\' || c >= 0x80 || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// numericPrefix returns the length of the number starting a dimension token.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func unquote(s string) string {
	if len(s) >= 2 {
		s = s[1 : len(s)-1]
	} else if len(s) == 1 { // unterminated at EOF
		s = ""
	}
	return unescape(s)
}

// unescape resolves the CSS escapes of a quoted string.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			out.WriteByte(s[i])
			continue
		}
		i++
		if s[i] == '\n' { // escaped newline is removed
			continue
		}
		j := i
		for j < len(s) && j-i < 6 && isHex(s[j]) {
			j++
		}
		if j == i {
			out.WriteByte(s[i])
			continue
		}
		code, _ := strconv.ParseUint(s[i:j], 16, 32)
		if code == 0 || code > 0x10FFFF || (0xD800 <= code && code <= 0xDFFF) {
			code = 0xFFFD
		}
		out.WriteRune(rune(code))
		if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
			j++
		}
		i = j - 1
	}
	return out.String()
}

func isHex(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func urlContent(s string) string {
	s = s[4:] // url(
	s = strings.TrimSuffix(s, ")")
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return unquote(s)
	}
	return unescape(s)
}

func parseUnicodeRange(s string) (start, end uint32, ok bool) {
	s = s[2:] // U+
	first, last := s, ""
	if i := strings.IndexByte(s, '-'); i != -1 {
		first, last = s[:i], s[i+1:]
	}
	if strings.Contains(first, "?") {
		if last != "" {
			return 0, 0, false
		}
		lo, err1 := strconv.ParseUint(strings.ReplaceAll(first, "?", "0"), 16, 32)
		hi, err2 := strconv.ParseUint(strings.ReplaceAll(first, "?", "F"), 16, 32)
		return uint32(lo), uint32(hi), err1 == nil && err2 == nil
	}
	lo, err := strconv.ParseUint(first, 16, 32)
	if err != nil {
		return 0, 0, false
	}
	hi := lo
	if last != "" {
		if hi, err = strconv.ParseUint(last, 16, 32); err != nil {
			return 0, 0, false
		}
	}
	return uint32(lo), uint32(hi), hi <= 0x10FFFF && lo <= hi
}
