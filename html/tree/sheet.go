package tree

import (
	"fmt"

	"github.com/benoitkugler/cascade/css/media"
	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/css/selector"
	"github.com/benoitkugler/cascade/css/validation"
	"go.uber.org/zap"
)

// Origin is the provenance of a style sheet.
type Origin uint8

const (
	UserAgent Origin = iota
	User
	Author
)

func (o Origin) String() string {
	switch o {
	case UserAgent:
		return "user agent"
	case User:
		return "user"
	case Author:
		return "author"
	default:
		return fmt.Sprintf("<origin %d>", o)
	}
}

// Sheet is a parsed style sheet tagged with its origin.
type Sheet struct {
	Stylesheet *pa.Stylesheet
	Origin     Origin
	// Href is used when logging, and to resolve imports.
	Href string
}

// NewSheet parses the given CSS source.
func NewSheet(css string, origin Origin) Sheet {
	return Sheet{Stylesheet: pa.ParseSheetString(css), Origin: origin}
}

// ImportLoader loads the sheet referenced by an `@import` rule
// without a pre-loaded child sheet.
type ImportLoader func(url string) (*pa.Stylesheet, error)

// FontFaceSink receives the valid `@font-face` rules.
type FontFaceSink func(face validation.FontFace)

// styleRule is a style rule which passed its conditions, with its
// selector and expanded declarations.
type styleRule struct {
	selector     selector.List
	declarations []validation.Declaration
	origin       Origin
	order        int // source order across all the sheets
}

// preprocessor flattens the rule trees of the sheets, keeping only
// the style rules whose conditions match the environment.
type preprocessor struct {
	env        media.Environment
	supports   media.SupportsChecker
	decomposer *validation.Decomposer
	loader     ImportLoader
	sink       validation.ErrorSink
	fontFaces  FontFaceSink
	log        *zap.Logger

	rules []styleRule
	// loading stores the URLs of the imports being processed
	loading map[string]bool
}

func (p *preprocessor) addSheet(sheet Sheet) {
	if sheet.Stylesheet == nil {
		return
	}
	for _, err := range sheet.Stylesheet.Errors {
		p.log.Warn("invalid rule", zap.String("sheet", sheet.Href), zap.Int("line", err.Pos.Line), zap.String("error", err.Message))
	}
	p.addRules(sheet, sheet.Stylesheet.Rules, nil)
}

// addRules processes the rules, whose enclosing media queries
// (already matching) are given by enclosing.
func (p *preprocessor) addRules(sheet Sheet, rules []pa.Rule, enclosing media.QueryList) {
	var (
		lastImport      string
		lastImportMedia media.QueryList
	)
	for _, rule := range rules {
		switch rule := rule.(type) {
		case *pa.StyleRule:
			p.addStyleRule(sheet, rule)
		case *pa.MediaRule:
			query := media.ParseQueryList(rule.Query)
			if len(enclosing) != 0 && enclosing.Implies(query) {
				p.log.Debug("redundant media query", zap.Stringer("query", query), zap.Int("line", rule.Pos.Line))
			} else if !query.Matches(p.env) {
				continue
			}
			nested := query
			if len(enclosing) != 0 {
				nested = enclosing
			}
			p.addRules(sheet, rule.Rules, nested)
		case *pa.SupportsRule:
			if !media.ParseSupports(rule.Condition).Supports(p.supports) {
				continue
			}
			p.addRules(sheet, rule.Rules, enclosing)
		case *pa.ImportRule:
			query := media.ParseQueryList(rule.Media)
			if rule.URL == lastImport && query.Implies(lastImportMedia) {
				p.log.Debug("duplicate import", zap.String("url", rule.URL))
				continue
			}
			lastImport, lastImportMedia = rule.URL, query
			if !query.Matches(p.env) {
				continue
			}
			p.addImport(sheet, rule)
		case *pa.FontFaceRule:
			p.addFontFace(sheet, rule)
		case *pa.UnknownAtRule:
			p.log.Debug("ignored at-rule", zap.String("name", rule.Name), zap.Int("line", rule.Pos.Line))
		}
	}
}

func (p *preprocessor) addImport(sheet Sheet, rule *pa.ImportRule) {
	child := rule.Sheet
	if child == nil {
		if p.loader == nil {
			p.log.Warn("unloaded import", zap.String("url", rule.URL))
			return
		}
		if p.loading[rule.URL] {
			p.log.Warn("recursive import", zap.String("url", rule.URL))
			return
		}
		var err error
		child, err = p.loader(rule.URL)
		if err != nil {
			p.log.Warn("failed to load import", zap.String("url", rule.URL), zap.Error(err))
			return
		}
	}
	p.loading[rule.URL] = true
	defer delete(p.loading, rule.URL)
	p.addSheet(Sheet{Stylesheet: child, Origin: sheet.Origin, Href: rule.URL})
}

func (p *preprocessor) addStyleRule(sheet Sheet, rule *pa.StyleRule) {
	sel, err := selector.Parse(rule.Selector)
	if err != nil {
		p.log.Warn("invalid selector", zap.String("selector", pa.Serialize(rule.Selector)),
			zap.Int("line", rule.Pos.Line), zap.Error(err))
		return
	}
	declarations, _ := p.decomposer.ExpandDeclarations(rule.Declarations, p.sink)
	if len(declarations) == 0 {
		return
	}
	p.rules = append(p.rules, styleRule{
		selector:     sel,
		declarations: declarations,
		origin:       sheet.Origin,
		order:        len(p.rules),
	})
}

func (p *preprocessor) addFontFace(sheet Sheet, rule *pa.FontFaceRule) {
	face, err := p.decomposer.FontFace(rule)
	if err != nil {
		p.log.Warn("ignored font-face rule", zap.String("sheet", sheet.Href), zap.Int("line", rule.Pos.Line), zap.Error(err))
		return
	}
	if p.fontFaces != nil {
		p.fontFaces(face)
	}
}

// supportsChecker validates `@supports` tests with the decomposer
// and the selector parser.
type supportsChecker struct {
	decomposer *validation.Decomposer
}

func (s supportsChecker) SupportsDeclaration(name string, value []pa.Token) bool {
	return s.decomposer.ValidateDeclaration(name, value) == nil
}

func (s supportsChecker) SupportsSelector(tokens []pa.Token) bool {
	_, err := selector.Parse(tokens)
	return err == nil
}
