package tree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/benoitkugler/cascade/css/media"
	"github.com/benoitkugler/cascade/css/selector"
	"github.com/benoitkugler/cascade/css/shorthands"
	"github.com/benoitkugler/cascade/css/validation"
	"github.com/benoitkugler/cascade/logger"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Precedence orders the declarations coming from different origins.
// Precedence values have no meaning unless compared to each other.
type Precedence uint8

// See https://www.w3.org/TR/css-cascade-4/#cascading
const (
	UserAgentNormal Precedence = iota
	UserNormal
	HintNormal
	AuthorNormal
	InlineNormal
	OverrideNormal
	AuthorImportant
	InlineImportant
	OverrideImportant
	UserAgentImportant
	UserImportant
)

func (p Precedence) String() string {
	switch p {
	case UserAgentNormal:
		return "user agent"
	case UserNormal:
		return "user"
	case HintNormal:
		return "presentational hint"
	case AuthorNormal:
		return "author"
	case InlineNormal:
		return "inline"
	case OverrideNormal:
		return "override"
	case AuthorImportant:
		return "author !important"
	case InlineImportant:
		return "inline !important"
	case OverrideImportant:
		return "override !important"
	case UserAgentImportant:
		return "user agent !important"
	case UserImportant:
		return "user !important"
	default:
		return fmt.Sprintf("<precedence %d>", p)
	}
}

// Return the precedence for a declaration found in a sheet.
func declarationPrecedence(origin Origin, important bool) Precedence {
	switch origin {
	case UserAgent:
		if important {
			return UserAgentImportant
		}
		return UserAgentNormal
	case User:
		if important {
			return UserImportant
		}
		return UserNormal
	default:
		if important {
			return AuthorImportant
		}
		return AuthorNormal
	}
}

type weight struct {
	precedence  Precedence
	specificity selector.Specificity
	order       int
}

// Less return `true` if w is overridden by other.
func (w weight) Less(other weight) bool {
	if w.precedence != other.precedence {
		return w.precedence < other.precedence
	}
	if c := w.specificity.Compare(other.specificity); c != 0 {
		return c < 0
	}
	return w.order < other.order
}

type weightedDeclaration struct {
	validation.Declaration
	weight weight
}

// Options customizes a Resolver. The zero value is usable.
type Options struct {
	// Environment defaults to a 800x600 screen.
	Environment media.Environment
	// Matcher defaults to a [selector.CascadiaMatcher].
	Matcher selector.Matcher
	// Decomposer defaults to one using the default registry.
	Decomposer *validation.Decomposer

	// Loader is used for the `@import` rules without a loaded child sheet.
	Loader ImportLoader
	// FontFaces is called once per valid `@font-face` rule.
	FontFaces FontFaceSink
	// Errors is called for each dropped declaration.
	Errors validation.ErrorSink

	// PresentationalHints enables the mapping of legacy HTML attributes.
	PresentationalHints bool
	// OverrideStyle returns, if not nil, a declaration list applied
	// after the inline style of an element.
	OverrideStyle func(element *html.Node) string

	Logger *zap.Logger
}

// Resolver computes the cascaded declarations of elements against a
// fixed set of sheets. The sheets are preprocessed once, when the
// Resolver is created: conditional rules are evaluated against the
// environment at that time.
//
// A Resolver is safe for concurrent use, provided the matcher is.
type Resolver struct {
	rules      []styleRule
	matcher    selector.Matcher
	decomposer *validation.Decomposer
	composer   *shorthands.Composer
	errors     validation.ErrorSink
	hints      bool
	override   func(element *html.Node) string
	log        *zap.Logger
}

// NewResolver preprocesses the given sheets, in order.
// Font faces are reported to opts.FontFaces before returning.
func NewResolver(sheets []Sheet, opts Options) *Resolver {
	log := logger.OrNop(opts.Logger).Named("cascade")
	env := opts.Environment
	if env == nil {
		env = &media.StaticEnvironment{Width: 800, Height: 600}
	}
	matcher := opts.Matcher
	if matcher == nil {
		matcher = selector.NewCascadiaMatcher()
	}
	decomposer := opts.Decomposer
	if decomposer == nil {
		decomposer = validation.NewDecomposer(nil, log)
	}

	p := preprocessor{
		env:        env,
		supports:   supportsChecker{decomposer: decomposer},
		decomposer: decomposer,
		loader:     opts.Loader,
		sink:       opts.Errors,
		fontFaces:  opts.FontFaces,
		log:        log,
		loading:    map[string]bool{},
	}
	for _, sheet := range sheets {
		p.addSheet(sheet)
	}
	log.Debug("sheets preprocessed", zap.Int("sheets", len(sheets)), zap.Int("rules", len(p.rules)))

	return &Resolver{
		rules:      p.rules,
		matcher:    matcher,
		decomposer: decomposer,
		composer:   shorthands.NewComposer(decomposer, log),
		errors:     opts.Errors,
		hints:      opts.PresentationalHints,
		override:   opts.OverrideStyle,
		log:        log,
	}
}

// Decomposer returns the decomposer used to expand the declarations.
func (r *Resolver) Decomposer() *validation.Decomposer { return r.decomposer }

// matchRule returns the specificity of the most specific alternative of
// sel matching element, restricted to the alternatives whose subject
// carries the pseudo-element pseudo (or none if pseudo is empty).
func (r *Resolver) matchRule(sel selector.List, element *html.Node, pseudo string) (selector.Specificity, bool) {
	var (
		best    selector.Specificity
		matched bool
	)
	for _, c := range sel {
		if c.PseudoElement() != pseudo {
			continue
		}
		if r.matcher.Match(selector.List{c}, element) < 0 {
			continue
		}
		if sp := c.SpecificityFor(r.matcher, element); !matched || best.Less(sp) {
			best, matched = sp, true
		}
	}
	return best, matched
}

// elementDeclarations expands the inline style, the override style or
// the presentational hints of an element.
func (r *Resolver) elementDeclarations(css string, element *html.Node, source string) []validation.Declaration {
	declarations, err := r.decomposer.ExpandDeclarationsString(css, r.errors)
	if err != nil {
		r.log.Debug("invalid element style", zap.String("element", element.Data),
			zap.String("source", source), zap.Error(err))
	}
	return declarations
}

// Resolve returns the cascaded declarations for element, or for its
// pseudo-element pseudo (like "before") if not empty.
// Properties with no declaration are absent from the result.
func (r *Resolver) Resolve(element *html.Node, pseudo string) Block {
	var candidates []weightedDeclaration
	add := func(decls []validation.Declaration, precedence func(important bool) Precedence, specificity selector.Specificity) {
		for _, decl := range decls {
			candidates = append(candidates, weightedDeclaration{
				Declaration: decl,
				weight: weight{
					precedence:  precedence(decl.Important),
					specificity: specificity,
					order:       len(candidates),
				},
			})
		}
	}

	if pseudo == "" && r.hints {
		if hints := presentationalHints(element); len(hints) != 0 {
			add(r.elementDeclarations(strings.Join(hints, ";"), element, "hints"),
				func(bool) Precedence { return HintNormal }, selector.Specificity{})
		}
	}

	for _, rule := range r.rules {
		specificity, ok := r.matchRule(rule.selector, element, pseudo)
		if !ok {
			continue
		}
		origin := rule.origin
		add(rule.declarations, func(important bool) Precedence { return declarationPrecedence(origin, important) }, specificity)
	}

	if pseudo == "" {
		if style := getAttr(element, "style"); style != "" {
			add(r.elementDeclarations(style, element, "style attribute"), func(important bool) Precedence {
				if important {
					return InlineImportant
				}
				return InlineNormal
			}, selector.Specificity{1, 0, 0})
		}
		if r.override != nil {
			if style := r.override(element); style != "" {
				add(r.elementDeclarations(style, element, "override"), func(important bool) Precedence {
					if important {
						return OverrideImportant
					}
					return OverrideNormal
				}, selector.Specificity{1, 0, 0})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].weight.Less(candidates[j].weight) })

	out := Block{composer: r.composer}
	for _, decl := range candidates {
		out.set(Entry{
			Name:       decl.Name,
			Value:      decl.Value,
			Important:  decl.Important,
			Precedence: decl.weight.precedence,
		})
	}
	return out
}

// ResolveDocument resolves the elements of doc, in tree order.
func (r *Resolver) ResolveDocument(doc *Document) map[*html.Node]Block {
	out := map[*html.Node]Block{}
	for _, element := range doc.Elements() {
		out[element] = r.Resolve(element, "")
	}
	return out
}
