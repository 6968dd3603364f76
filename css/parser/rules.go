package parser

import (
	"github.com/benoitkugler/cascade/utils"
)

// Rule is one node of a parsed stylesheet. The set of implementations
// is closed: *StyleRule, *MediaRule, *SupportsRule, *ImportRule,
// *FontFaceRule and *UnknownAtRule.
type Rule interface {
	Position() Pos
	// Clone returns a deep copy of the rule, sharing only
	// the (immutable) tokens.
	Clone() Rule
	isRule()
}

// StyleRule is a qualified rule with its selector prelude.
type StyleRule struct {
	Pos          Pos
	Selector     []Token
	Declarations []Declaration
}

// MediaRule is a conditional group gated by a media query list.
type MediaRule struct {
	Pos   Pos
	Query []Token
	Rules []Rule
}

// SupportsRule is a conditional group gated by a feature query.
type SupportsRule struct {
	Pos       Pos
	Condition []Token
	Rules     []Rule
}

// ImportRule references another sheet. Sheet is filled by the
// caller when the referenced sheet has been loaded.
type ImportRule struct {
	Pos   Pos
	URL   string
	Media []Token
	Sheet *Stylesheet
}

type FontFaceRule struct {
	Pos          Pos
	Declarations []Declaration
}

// UnknownAtRule is kept for serialization but ignored by the cascade.
type UnknownAtRule struct {
	Pos              Pos
	Name             string
	Prelude, Content []Token
}

func (*StyleRule) isRule()     {}
func (*MediaRule) isRule()     {}
func (*SupportsRule) isRule()  {}
func (*ImportRule) isRule()    {}
func (*FontFaceRule) isRule()  {}
func (*UnknownAtRule) isRule() {}

func (r *StyleRule) Position() Pos     { return r.Pos }
func (r *MediaRule) Position() Pos     { return r.Pos }
func (r *SupportsRule) Position() Pos  { return r.Pos }
func (r *ImportRule) Position() Pos    { return r.Pos }
func (r *FontFaceRule) Position() Pos  { return r.Pos }
func (r *UnknownAtRule) Position() Pos { return r.Pos }

func cloneTokens(l []Token) []Token {
	if l == nil {
		return nil
	}
	return append([]Token(nil), l...)
}

func cloneDeclarations(l []Declaration) []Declaration {
	if l == nil {
		return nil
	}
	out := make([]Declaration, len(l))
	for i, d := range l {
		d.Value = cloneTokens(d.Value)
		out[i] = d
	}
	return out
}

func cloneRules(l []Rule) []Rule {
	if l == nil {
		return nil
	}
	out := make([]Rule, len(l))
	for i, r := range l {
		out[i] = r.Clone()
	}
	return out
}

func (r *StyleRule) Clone() Rule {
	return &StyleRule{Pos: r.Pos, Selector: cloneTokens(r.Selector), Declarations: cloneDeclarations(r.Declarations)}
}

func (r *MediaRule) Clone() Rule {
	return &MediaRule{Pos: r.Pos, Query: cloneTokens(r.Query), Rules: cloneRules(r.Rules)}
}

func (r *SupportsRule) Clone() Rule {
	return &SupportsRule{Pos: r.Pos, Condition: cloneTokens(r.Condition), Rules: cloneRules(r.Rules)}
}

func (r *ImportRule) Clone() Rule {
	out := &ImportRule{Pos: r.Pos, URL: r.URL, Media: cloneTokens(r.Media)}
	if r.Sheet != nil {
		out.Sheet = r.Sheet.Clone()
	}
	return out
}

func (r *FontFaceRule) Clone() Rule {
	return &FontFaceRule{Pos: r.Pos, Declarations: cloneDeclarations(r.Declarations)}
}

func (r *UnknownAtRule) Clone() Rule {
	return &UnknownAtRule{Pos: r.Pos, Name: r.Name, Prelude: cloneTokens(r.Prelude), Content: cloneTokens(r.Content)}
}

// Stylesheet is the rule tree of one sheet, plus the
// syntax errors met while building it.
type Stylesheet struct {
	Rules  []Rule
	Errors []ParseError
}

func (s *Stylesheet) Clone() *Stylesheet {
	return &Stylesheet{Rules: cloneRules(s.Rules), Errors: append([]ParseError(nil), s.Errors...)}
}

// Walk calls fn for each rule in depth-first order, descending into
// conditional groups and loaded imports when fn returns true.
func (s *Stylesheet) Walk(fn func(Rule) bool) {
	walkRules(s.Rules, fn)
}

func walkRules(rules []Rule, fn func(Rule) bool) {
	for _, rule := range rules {
		if !fn(rule) {
			continue
		}
		switch rule := rule.(type) {
		case *MediaRule:
			walkRules(rule.Rules, fn)
		case *SupportsRule:
			walkRules(rule.Rules, fn)
		case *ImportRule:
			if rule.Sheet != nil {
				walkRules(rule.Sheet.Rules, fn)
			}
		}
	}
}

// ParseSheet parses CSS source into a rule tree.
func ParseSheet(input []byte) *Stylesheet {
	var out Stylesheet
	out.Rules = out.buildRules(Tokenize(input, true), true)
	return &out
}

// ParseSheetString is a convenience wrapper around ParseSheet.
func ParseSheetString(input string) *Stylesheet {
	return ParseSheet([]byte(input))
}

// ParseDeclarations parses a declaration block content, such as
// a `style` attribute, dropping invalid entries.
func ParseDeclarations(input string) ([]Declaration, []ParseError) {
	var s Stylesheet
	decls := s.buildDeclarations(TokenizeString(input))
	return decls, s.Errors
}

func (s *Stylesheet) buildDeclarations(tokens []Token) []Declaration {
	decls, atRules, errs := splitDeclarations(tokens)
	s.Errors = append(s.Errors, errs...)
	for _, r := range atRules {
		s.Errors = append(s.Errors, invalid(r.pos, "unexpected @%s rule in a declaration list", r.atName))
	}
	return decls
}

func (s *Stylesheet) buildRules(tokens []Token, topLevel bool) []Rule {
	raws, errs := splitRules(tokens, topLevel)
	s.Errors = append(s.Errors, errs...)
	var out []Rule
	importsAllowed := topLevel
	for _, r := range raws {
		if r.atName == "" {
			importsAllowed = false
			out = append(out, &StyleRule{Pos: r.pos, Selector: r.prelude, Declarations: s.buildDeclarations(r.block)})
			continue
		}
		rule := s.buildAtRule(r, importsAllowed)
		if rule == nil {
			continue
		}
		if _, isImport := rule.(*ImportRule); !isImport {
			switch utils.AsciiLower(r.atName) {
			case "charset", "namespace", "layer":
			default:
				importsAllowed = false
			}
		}
		out = append(out, rule)
	}
	return out
}

func (s *Stylesheet) buildAtRule(r rawRule, importsAllowed bool) Rule {
	name := utils.AsciiLower(r.atName)
	switch name {
	case "media", "supports", "font-face":
		if r.block == nil {
			s.Errors = append(s.Errors, invalid(r.pos, "invalid @%s rule without a block", name))
			return nil
		}
	}
	switch name {
	case "media":
		return &MediaRule{Pos: r.pos, Query: r.prelude, Rules: s.buildRules(r.block, false)}
	case "supports":
		return &SupportsRule{Pos: r.pos, Condition: r.prelude, Rules: s.buildRules(r.block, false)}
	case "font-face":
		return &FontFaceRule{Pos: r.pos, Declarations: s.buildDeclarations(r.block)}
	case "import":
		if !importsAllowed {
			s.Errors = append(s.Errors, invalid(r.pos, "@import rule not at the beginning of the stylesheet, ignored"))
			return nil
		}
		if r.block != nil {
			s.Errors = append(s.Errors, invalid(r.pos, "invalid @import rule with a block"))
			return nil
		}
		tokens := NewIter(r.prelude)
		var url string
		switch first := tokens.NextSignificant().(type) {
		case URL:
			url = first.Value
		case String:
			url = first.Value
		default:
			s.Errors = append(s.Errors, invalid(r.pos, "invalid @import rule: missing URL"))
			return nil
		}
		return &ImportRule{Pos: r.pos, URL: url, Media: tokens.Rest()}
	default:
		return &UnknownAtRule{Pos: r.pos, Name: r.atName, Prelude: r.prelude, Content: r.block}
	}
}
