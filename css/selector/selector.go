// Package selector parses selector shapes, computes their specificity
// and matches them against HTML elements.
package selector

import (
	"errors"
	"fmt"
	"strings"

	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/utils"
)

// Combinator joins two compound selectors.
type Combinator byte

const (
	Descendant        Combinator = ' '
	Child             Combinator = '>'
	NextSibling       Combinator = '+'
	SubsequentSibling Combinator = '~'
)

type SimpleKind uint8

const (
	Type SimpleKind = iota
	Universal
	ID
	Class
	Attribute
	PseudoClass   // plain or functional pseudo-class, with Args
	Not           // :not(List)
	Is            // :is(List), :matches(), :-webkit-any(), :-moz-any()
	Where         // :where(List)
	Has           // :has(relative List)
	Nth           // :nth-child(An+B [of List]), :nth-last-child()
	PseudoElement // ::name, or a legacy single colon pseudo-element
)

// Simple is one simple selector of a compound.
type Simple struct {
	Kind SimpleKind
	// Name is the tag name, id, class, attribute or pseudo name,
	// lower cased for pseudo-classes and pseudo-elements.
	Name string
	// Args are the raw tokens of attribute selectors and functional
	// pseudo-classes.
	Args []pa.Token
	// List is the argument selector list of :not(), :is(), :where(),
	// :has() and :nth-child(... of S).
	List List
	// AB is the parsed An+B of Nth selectors.
	AB [2]int
}

// Compound is a sequence of simple selectors not separated by a combinator.
type Compound []Simple

// Complex is a chain of compounds, read from left to right.
type Complex struct {
	Compounds   []Compound
	Combinators []Combinator // len(Compounds) - 1 items
	// Leading is the combinator opening a relative selector
	// (an argument of :has()), zero otherwise.
	Leading Combinator
}

// List is a comma separated selector list.
type List []Complex

var legacyPseudoElements = utils.NewSet("before", "after", "first-line", "first-letter")

var errEmpty = errors.New("empty selector")

// ParseString tokenizes and parses a selector list.
func ParseString(s string) (List, error) {
	return Parse(pa.TokenizeString(s))
}

// Parse parses a selector list from tokens, whitespace included.
func Parse(tokens []pa.Token) (List, error) {
	var out List
	for _, part := range pa.SplitOnComma(tokens) {
		c, err := parseComplex(part, false)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MustParse is like ParseString but panics on invalid input.
func MustParse(s string) List {
	l, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return l
}

type parser struct {
	tokens []pa.Token
	pos    int
}

func (p *parser) done() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() pa.Token {
	if p.done() {
		return nil
	}
	return p.tokens[p.pos]
}

func (p *parser) next() pa.Token {
	t := p.peek()
	p.pos++
	return t
}

func trimWhitespace(tokens []pa.Token) []pa.Token {
	for len(tokens) > 0 && tokens[0].Kind() == pa.KWhitespace {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].Kind() == pa.KWhitespace {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// relative selectors (in :has) may start with a combinator
func parseComplex(tokens []pa.Token, relative bool) (Complex, error) {
	p := parser{tokens: trimWhitespace(tokens)}
	var out Complex
	if p.done() {
		return out, errEmpty
	}
	if relative {
		out.Leading, _ = p.combinator()
		if out.Leading == 0 {
			out.Leading = Descendant
		}
	}
	for {
		compound, err := p.compound()
		if err != nil {
			return out, err
		}
		out.Compounds = append(out.Compounds, compound)
		if p.done() {
			return out, nil
		}
		for _, s := range compound {
			if s.Kind == PseudoElement {
				return out, fmt.Errorf("pseudo-element ::%s is not in the last compound", s.Name)
			}
		}
		comb, ok := p.combinator()
		if !ok {
			return out, fmt.Errorf("unexpected %s in selector", p.peek().Kind())
		}
		if p.done() {
			return out, errors.New("dangling combinator")
		}
		out.Combinators = append(out.Combinators, comb)
	}
}

func (p *parser) combinator() (Combinator, bool) {
	comb, found := Combinator(0), false
	for !p.done() {
		t := p.peek()
		if t.Kind() == pa.KWhitespace || t.Kind() == pa.KComment {
			p.pos++
			if !found {
				comb, found = Descendant, true
			}
			continue
		}
		lit, isLit := t.(pa.Literal)
		if isLit && (lit.Value == ">" || lit.Value == "+" || lit.Value == "~") {
			if found && comb != Descendant {
				return 0, false
			}
			p.pos++
			comb, found = Combinator(lit.Value[0]), true
			continue
		}
		break
	}
	return comb, found
}

// userActionPseudoClasses may follow a pseudo-element
var userActionPseudoClasses = utils.NewSet("hover", "active", "focus", "focus-visible", "focus-within")

func (p *parser) compound() (Compound, error) {
	var out Compound
	afterPseudoElement := false
loop:
	for !p.done() {
		if afterPseudoElement {
			if err := p.checkAfterPseudoElement(); err != nil {
				return nil, err
			}
		}
		switch t := p.peek().(type) {
		case pa.Whitespace, pa.Comment:
			break loop
		case pa.Ident:
			if len(out) != 0 {
				return nil, fmt.Errorf("unexpected type selector %s", t.Value)
			}
			p.pos++
			out = append(out, Simple{Kind: Type, Name: t.Lower()})
		case pa.Hash:
			if !t.IsIdentifier {
				return nil, fmt.Errorf("invalid id selector #%s", t.Value)
			}
			p.pos++
			out = append(out, Simple{Kind: ID, Name: t.Value})
		case pa.SquareBracketsBlock:
			p.pos++
			content := pa.RemoveWhitespace(t.Content)
			if len(content) == 0 || !pa.IsIdent(content[0], "") {
				return nil, errors.New("invalid attribute selector")
			}
			out = append(out, Simple{Kind: Attribute, Name: content[0].(pa.Ident).Value, Args: t.Content})
		case pa.Literal:
			switch t.Value {
			case "*":
				if len(out) != 0 {
					return nil, errors.New("unexpected universal selector")
				}
				p.pos++
				out = append(out, Simple{Kind: Universal, Name: "*"})
			case ".":
				p.pos++
				id, ok := p.next().(pa.Ident)
				if !ok {
					return nil, errors.New("expected class name after '.'")
				}
				out = append(out, Simple{Kind: Class, Name: id.Value})
			case ":":
				p.pos++
				s, err := p.pseudo()
				if err != nil {
					return nil, err
				}
				if afterPseudoElement && (s.Kind != PseudoClass || !userActionPseudoClasses.Has(s.Name)) {
					return nil, fmt.Errorf("unexpected :%s after a pseudo-element", s.Name)
				}
				if s.Kind == PseudoElement {
					afterPseudoElement = true
				}
				out = append(out, s)
			case ">", "+", "~":
				break loop
			default:
				return nil, fmt.Errorf("unexpected %q in selector", t.Value)
			}
		default:
			return nil, fmt.Errorf("unexpected %s in selector", t.Kind())
		}
	}
	if len(out) == 0 {
		return nil, errEmpty
	}
	return out, nil
}

// checkAfterPseudoElement rejects the simple selectors which can't follow
// a pseudo-element: only user action pseudo-classes, checked by the caller,
// and combinators are allowed.
func (p *parser) checkAfterPseudoElement() error {
	switch t := p.peek().(type) {
	case pa.Whitespace, pa.Comment:
		return nil
	case pa.Literal:
		switch t.Value {
		case ":", ">", "+", "~":
			return nil
		}
	}
	return fmt.Errorf("unexpected %s after a pseudo-element", p.peek().Kind())
}

// pseudo parses what follows a ':'
func (p *parser) pseudo() (Simple, error) {
	if pa.IsLiteral(p.peek(), ":") {
		p.pos++
		switch t := p.next().(type) {
		case pa.Ident:
			return Simple{Kind: PseudoElement, Name: t.Lower()}, nil
		case pa.FunctionBlock:
			return Simple{Kind: PseudoElement, Name: t.LowerName(), Args: t.Arguments}, nil
		}
		return Simple{}, errors.New("invalid pseudo-element")
	}
	switch t := p.next().(type) {
	case pa.Ident:
		name := t.Lower()
		if legacyPseudoElements.Has(name) {
			return Simple{Kind: PseudoElement, Name: name}, nil
		}
		return Simple{Kind: PseudoClass, Name: name}, nil
	case pa.FunctionBlock:
		return parseFunctional(t)
	}
	return Simple{}, errors.New("invalid pseudo-class")
}

func parseFunctional(fn pa.FunctionBlock) (Simple, error) {
	name := fn.LowerName()
	out := Simple{Name: name, Args: fn.Arguments}
	var err error
	switch name {
	case "not", "is", "matches", "-webkit-any", "-moz-any", "where":
		out.Kind = Is
		if name == "not" {
			out.Kind = Not
		} else if name == "where" {
			out.Kind = Where
		}
		out.List, err = Parse(fn.Arguments)
	case "has":
		out.Kind = Has
		for _, part := range pa.SplitOnComma(fn.Arguments) {
			var c Complex
			c, err = parseComplex(part, true)
			if err != nil {
				break
			}
			out.List = append(out.List, c)
		}
	case "nth-child", "nth-last-child", "nth-of-type", "nth-last-of-type":
		out.Kind = Nth
		anb, of := fn.Arguments, []pa.Token(nil)
		if name == "nth-child" || name == "nth-last-child" {
			for i, t := range fn.Arguments {
				if pa.IsIdent(t, "of") {
					anb, of = fn.Arguments[:i], fn.Arguments[i+1:]
					break
				}
			}
		}
		ab := pa.ParseNth(anb)
		if ab == nil {
			return out, fmt.Errorf("invalid argument for :%s()", name)
		}
		out.AB = *ab
		if of != nil {
			out.List, err = Parse(of)
		}
	default:
		out.Kind = PseudoClass
	}
	return out, err
}

// PseudoElement returns the pseudo-element of the subject compound,
// or an empty string.
func (c Complex) PseudoElement() string {
	if len(c.Compounds) == 0 {
		return ""
	}
	for _, s := range c.Compounds[len(c.Compounds)-1] {
		if s.Kind == PseudoElement {
			return s.Name
		}
	}
	return ""
}

func (s Simple) writeTo(b *strings.Builder) {
	switch s.Kind {
	case Type, Universal:
		b.WriteString(s.Name)
	case ID:
		b.WriteString("#" + s.Name)
	case Class:
		b.WriteString("." + s.Name)
	case Attribute:
		b.WriteString("[" + pa.Serialize(s.Args) + "]")
	case PseudoElement:
		b.WriteString("::" + s.Name)
		if s.Args != nil {
			b.WriteString("(" + pa.Serialize(s.Args) + ")")
		}
	case Not, Is, Where, Has:
		b.WriteString(":" + s.Name + "(" + s.List.String() + ")")
	default:
		b.WriteString(":" + s.Name)
		if s.Args != nil {
			b.WriteString("(" + pa.Serialize(s.Args) + ")")
		}
	}
}

func (c Complex) write(b *strings.Builder) {
	if c.Leading != 0 && c.Leading != Descendant {
		b.WriteString(string(c.Leading) + " ")
	}
	for i, compound := range c.Compounds {
		if i > 0 {
			switch comb := c.Combinators[i-1]; comb {
			case Descendant:
				b.WriteByte(' ')
			default:
				b.WriteString(" " + string(comb) + " ")
			}
		}
		for _, s := range compound {
			s.writeTo(b)
		}
	}
}

func (c Complex) String() string {
	var b strings.Builder
	c.write(&b)
	return b.String()
}

func (l List) String() string {
	chunks := make([]string, len(l))
	for i, c := range l {
		chunks[i] = c.String()
	}
	return strings.Join(chunks, ", ")
}
