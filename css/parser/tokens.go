package parser

import (
	"strconv"
	"strings"

	"github.com/benoitkugler/cascade/utils"
)

// Kind identifies the concrete type of a Token.
type Kind string

const (
	KIdent               Kind = "ident"
	KAtKeyword           Kind = "at-keyword"
	KHash                Kind = "hash"
	KString              Kind = "string"
	KURL                 Kind = "url"
	KNumber              Kind = "number"
	KPercentage          Kind = "percentage"
	KDimension           Kind = "dimension"
	KUnicodeRange        Kind = "unicode-range"
	KLiteral             Kind = "literal"
	KWhitespace          Kind = "whitespace"
	KComment             Kind = "comment"
	KFunctionBlock       Kind = "function"
	KParenthesesBlock    Kind = "() block"
	KSquareBracketsBlock Kind = "[] block"
	KCurlyBracketsBlock  Kind = "{} block"
	KParseError          Kind = "error"
)

func (k Kind) String() string { return string(k) }

// Pos is the position of a token in the source, starting at 1:1.
type Pos struct {
	Line, Column int
}

// Token is one component value: a lexical token or a nested block.
// Tokens are immutable once built.
type Token interface {
	Kind() Kind
	Position() Pos
	serializeTo(writer stringWriter)
}

type (
	Ident struct {
		Pos   Pos
		Value string
	}
	AtKeyword struct {
		Pos   Pos
		Value string
	}
	// Hash value does not include the '#'.
	Hash struct {
		Pos          Pos
		Value        string
		IsIdentifier bool
	}
	// String value is unquoted and unescaped.
	String struct {
		Pos   Pos
		Value string
	}
	URL struct {
		Pos   Pos
		Value string
	}
	// Number, Percentage and Dimension keep the source representation
	// of the numeric part in Value.
	Number struct {
		Pos   Pos
		Value string
	}
	Percentage struct {
		Pos   Pos
		Value string
	}
	Dimension struct {
		Pos   Pos
		Value string
		Unit  string
	}
	UnicodeRange struct {
		Pos        Pos
		Start, End uint32
	}
	// Literal holds delimiters and punctuation: ":", ";", ",", "/", "<", "~=", "||", ...
	Literal struct {
		Pos   Pos
		Value string
	}
	Whitespace struct {
		Pos   Pos
		Value string
	}
	Comment struct {
		Pos   Pos
		Value string
	}
	FunctionBlock struct {
		Pos       Pos
		Name      string
		Arguments []Token
	}
	ParenthesesBlock struct {
		Pos     Pos
		Content []Token
	}
	SquareBracketsBlock struct {
		Pos     Pos
		Content []Token
	}
	CurlyBracketsBlock struct {
		Pos     Pos
		Content []Token
	}
	ParseError struct {
		Pos     Pos
		Reason  string
		Message string
	}
)

func (Ident) Kind() Kind               { return KIdent }
func (AtKeyword) Kind() Kind           { return KAtKeyword }
func (Hash) Kind() Kind                { return KHash }
func (String) Kind() Kind              { return KString }
func (URL) Kind() Kind                 { return KURL }
func (Number) Kind() Kind              { return KNumber }
func (Percentage) Kind() Kind          { return KPercentage }
func (Dimension) Kind() Kind           { return KDimension }
func (UnicodeRange) Kind() Kind        { return KUnicodeRange }
func (Literal) Kind() Kind             { return KLiteral }
func (Whitespace) Kind() Kind          { return KWhitespace }
func (Comment) Kind() Kind             { return KComment }
func (FunctionBlock) Kind() Kind       { return KFunctionBlock }
func (ParenthesesBlock) Kind() Kind    { return KParenthesesBlock }
func (SquareBracketsBlock) Kind() Kind { return KSquareBracketsBlock }
func (CurlyBracketsBlock) Kind() Kind  { return KCurlyBracketsBlock }
func (ParseError) Kind() Kind          { return KParseError }

func (t Ident) Position() Pos               { return t.Pos }
func (t AtKeyword) Position() Pos           { return t.Pos }
func (t Hash) Position() Pos                { return t.Pos }
func (t String) Position() Pos              { return t.Pos }
func (t URL) Position() Pos                 { return t.Pos }
func (t Number) Position() Pos              { return t.Pos }
func (t Percentage) Position() Pos          { return t.Pos }
func (t Dimension) Position() Pos           { return t.Pos }
func (t UnicodeRange) Position() Pos        { return t.Pos }
func (t Literal) Position() Pos             { return t.Pos }
func (t Whitespace) Position() Pos          { return t.Pos }
func (t Comment) Position() Pos             { return t.Pos }
func (t FunctionBlock) Position() Pos       { return t.Pos }
func (t ParenthesesBlock) Position() Pos    { return t.Pos }
func (t SquareBracketsBlock) Position() Pos { return t.Pos }
func (t CurlyBracketsBlock) Position() Pos  { return t.Pos }
func (t ParseError) Position() Pos          { return t.Pos }

func (t ParseError) Error() string { return t.Message }

func parseFloat(repr string) float64 {
	f, _ := strconv.ParseFloat(repr, 64)
	if f == 0 {
		return 0 // avoid -0
	}
	return f
}

func isIntRepr(repr string) bool {
	return !strings.ContainsAny(repr, ".eE")
}

func intRepr(repr string) int {
	i, _ := strconv.Atoi(strings.TrimPrefix(repr, "+"))
	return i
}

func (t Number) Float() float64 { return parseFloat(t.Value) }
func (t Number) IsInt() bool    { return isIntRepr(t.Value) }
func (t Number) Int() int       { return intRepr(t.Value) }

func (t Percentage) Float() float64 { return parseFloat(t.Value) }
func (t Percentage) IsInt() bool    { return isIntRepr(t.Value) }

func (t Dimension) Float() float64 { return parseFloat(t.Value) }
func (t Dimension) IsInt() bool    { return isIntRepr(t.Value) }
func (t Dimension) Int() int       { return intRepr(t.Value) }

// LowerUnit returns the ASCII lowercase unit.
func (t Dimension) LowerUnit() string { return utils.AsciiLower(t.Unit) }

// LowerName returns the ASCII lowercase function name.
func (t FunctionBlock) LowerName() string { return utils.AsciiLower(t.Name) }

// Lower returns the ASCII lowercase identifier.
func (t Ident) Lower() string { return utils.AsciiLower(t.Value) }

// IsLiteral returns true if t is the literal v.
func IsLiteral(t Token, v string) bool {
	lit, ok := t.(Literal)
	return ok && lit.Value == v
}

// IsIdent returns true if t is an identifier matching v, ASCII case-insensitively.
// An empty v matches any identifier.
func IsIdent(t Token, v string) bool {
	id, ok := t.(Ident)
	return ok && (v == "" || id.Lower() == v)
}

// IsFunction returns true if t is a function named name (ASCII case-insensitive).
func IsFunction(t Token, name string) bool {
	fn, ok := t.(FunctionBlock)
	return ok && fn.LowerName() == name
}

// ContainsVar returns true if a var() reference appears in tokens,
// at any nesting level.
func ContainsVar(tokens []Token) bool {
	for _, token := range tokens {
		switch token := token.(type) {
		case FunctionBlock:
			if token.LowerName() == "var" || ContainsVar(token.Arguments) {
				return true
			}
		case ParenthesesBlock:
			if ContainsVar(token.Content) {
				return true
			}
		case SquareBracketsBlock:
			if ContainsVar(token.Content) {
				return true
			}
		case CurlyBracketsBlock:
			if ContainsVar(token.Content) {
				return true
			}
		}
	}
	return false
}

// RemoveWhitespace returns tokens without whitespace and comments.
func RemoveWhitespace(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, token := range tokens {
		if k := token.Kind(); k != KWhitespace && k != KComment {
			out = append(out, token)
		}
	}
	return out
}

// SplitOnComma splits a list of tokens on commas, ie “LiteralToken(',')“.
// Only “LiteralToken“ tokens are considered, commas nested inside blocks
// are ignored.
func SplitOnComma(tokens []Token) [][]Token {
	parts := [][]Token{nil}
	for _, token := range tokens {
		if IsLiteral(token, ",") {
			parts = append(parts, nil)
			continue
		}
		parts[len(parts)-1] = append(parts[len(parts)-1], token)
	}
	return parts
}

// TokensIter is a forward-only iterator over a token list, with one
// token of lookahead.
type TokensIter struct {
	tokens []Token
	index  int
}

func NewIter(tokens []Token) *TokensIter {
	return &TokensIter{tokens: tokens}
}

func (it TokensIter) HasNext() bool {
	return it.index < len(it.tokens)
}

// Next returns the next token or nil at the end.
func (it *TokensIter) Next() Token {
	if !it.HasNext() {
		return nil
	}
	t := it.tokens[it.index]
	it.index++
	return t
}

// Peek returns the next token without consuming it, or nil.
func (it *TokensIter) Peek() Token {
	if !it.HasNext() {
		return nil
	}
	return it.tokens[it.index]
}

// NextSignificant returns the next significant (neither whitespace or comment) token, or nil.
func (it *TokensIter) NextSignificant() Token {
	for it.HasNext() {
		token := it.Next()
		if k := token.Kind(); k != KWhitespace && k != KComment {
			return token
		}
	}
	return nil
}

// PeekSignificant returns the next significant token without consuming it.
func (it *TokensIter) PeekSignificant() Token {
	for i := it.index; i < len(it.tokens); i++ {
		if k := it.tokens[i].Kind(); k != KWhitespace && k != KComment {
			return it.tokens[i]
		}
	}
	return nil
}

// Rest returns the remaining tokens, consuming them.
func (it *TokensIter) Rest() []Token {
	out := it.tokens[it.index:]
	it.index = len(it.tokens)
	return out
}
