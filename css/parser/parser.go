package parser

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/cascade/utils"
)

// Declaration is a raw `name: value` pair. Value excludes the
// `!important` marker.
type Declaration struct {
	Name      string
	Value     []Token
	Pos       Pos
	Important bool
}

// LowerName returns the ASCII lowercase declaration name,
// custom properties being case sensitive.
func (d Declaration) LowerName() string {
	if strings.HasPrefix(d.Name, "--") {
		return d.Name
	}
	return utils.AsciiLower(d.Name)
}

// rawRule is a qualified rule or an at-rule, split from its
// surroundings but not interpreted yet.
type rawRule struct {
	pos    Pos
	atName string // empty for qualified rules
	// prelude is the content before the block (or the ';')
	prelude []Token
	// block is nil for at-rules ended by ';'
	block []Token
}

func invalid(pos Pos, format string, args ...interface{}) ParseError {
	return ParseError{Pos: pos, Reason: "invalid", Message: fmt.Sprintf(format, args...)}
}

func isSignificant(t Token) bool {
	k := t.Kind()
	return k != KWhitespace && k != KComment
}

// splitAtRule consumes the at-rule starting at tokens[0],
// returning the rule and the remaining tokens.
func splitAtRule(tokens []Token) (rawRule, []Token) {
	at := tokens[0].(AtKeyword)
	out := rawRule{pos: at.Pos, atName: at.Value}
	for i, t := range tokens[1:] {
		if curly, ok := t.(CurlyBracketsBlock); ok {
			out.prelude = tokens[1 : i+1]
			out.block = curly.Content
			if out.block == nil {
				out.block = []Token{}
			}
			return out, tokens[i+2:]
		}
		if IsLiteral(t, ";") {
			out.prelude = tokens[1 : i+1]
			return out, tokens[i+2:]
		}
	}
	out.prelude = tokens[1:]
	return out, nil
}

// splitRules splits a rule list. At the top level of a sheet,
// the legacy "<!--" and "-->" markers are ignored.
func splitRules(tokens []Token, topLevel bool) ([]rawRule, []ParseError) {
	var (
		rules []rawRule
		errs  []ParseError
	)
	for len(tokens) > 0 {
		first := tokens[0]
		if !isSignificant(first) {
			tokens = tokens[1:]
			continue
		}
		if topLevel && (IsLiteral(first, "<!--") || IsLiteral(first, "-->")) {
			tokens = tokens[1:]
			continue
		}
		if _, ok := first.(AtKeyword); ok {
			var rule rawRule
			rule, tokens = splitAtRule(tokens)
			rules = append(rules, rule)
			continue
		}
		end := -1
		for i, t := range tokens {
			if _, ok := t.(CurlyBracketsBlock); ok {
				end = i
				break
			}
		}
		if end == -1 {
			errs = append(errs, invalid(tokens[len(tokens)-1].Position(), "EOF reached before {} block for a qualified rule."))
			break
		}
		block := tokens[end].(CurlyBracketsBlock).Content
		rules = append(rules, rawRule{pos: first.Position(), prelude: tokens[:end], block: block})
		tokens = tokens[end+1:]
	}
	return rules, errs
}

// splitDeclarations splits a declaration list on top level semicolons.
// At-rules met in the list are returned separately.
func splitDeclarations(tokens []Token) ([]Declaration, []rawRule, []ParseError) {
	var (
		decls   []Declaration
		atRules []rawRule
		errs    []ParseError
	)
	for len(tokens) > 0 {
		first := tokens[0]
		if !isSignificant(first) || IsLiteral(first, ";") {
			tokens = tokens[1:]
			continue
		}
		if _, ok := first.(AtKeyword); ok {
			var rule rawRule
			rule, tokens = splitAtRule(tokens)
			atRules = append(atRules, rule)
			continue
		}
		end := len(tokens)
		for i, t := range tokens {
			if IsLiteral(t, ";") {
				end = i
				break
			}
		}
		decl, err := parseDeclaration(tokens[:end])
		if err != nil {
			errs = append(errs, *err)
		} else {
			decls = append(decls, decl)
		}
		tokens = tokens[end:]
	}
	return decls, atRules, errs
}

// parseDeclaration parses `name : value [! important]`,
// chunk starting with a significant token.
func parseDeclaration(chunk []Token) (Declaration, *ParseError) {
	name, ok := chunk[0].(Ident)
	if !ok {
		err := invalid(chunk[0].Position(), "Expected <ident> for declaration name, got %s.", chunk[0].Kind())
		return Declaration{}, &err
	}
	rest := chunk[1:]
	for len(rest) > 0 && !isSignificant(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		err := invalid(name.Pos, "Expected ':' after declaration name, got EOF")
		return Declaration{}, &err
	}
	if !IsLiteral(rest[0], ":") {
		err := invalid(rest[0].Position(), "Expected ':' after declaration name, got %s.", rest[0].Kind())
		return Declaration{}, &err
	}
	value, important := splitImportant(rest[1:])
	return Declaration{Pos: name.Pos, Name: name.Value, Value: value, Important: important}, nil
}

// splitImportant removes a trailing `! important` from value.
func splitImportant(value []Token) ([]Token, bool) {
	var significant []int
	for i := len(value) - 1; i >= 0 && len(significant) < 2; i-- {
		if isSignificant(value[i]) {
			significant = append(significant, i)
		}
	}
	if len(significant) == 2 && IsIdent(value[significant[0]], "important") && IsLiteral(value[significant[1]], "!") {
		return value[:significant[1]], true
	}
	return value, false
}
