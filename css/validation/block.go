package validation

import (
	"errors"
	"fmt"
	"strings"

	pa "github.com/benoitkugler/cascade/css/parser"
	pr "github.com/benoitkugler/cascade/css/properties"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Declaration is a longhand (or custom property) declaration,
// after shorthand expansion.
type Declaration struct {
	Name      string
	Value     pr.Value
	Important bool
	Pos       pa.Pos
	// Shorthand is the name of the shorthand the declaration
	// was expanded from, or empty.
	Shorthand string
}

// ErrorSink is called for each dropped declaration.
type ErrorSink func(decl pa.Declaration, err error)

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrEmptyValue      = errors.New("empty value")
	ErrInvalidValue    = errors.New("invalid value")
)

// DeclarationError wraps the reason a declaration was dropped.
type DeclarationError struct {
	Property string
	Pos      pa.Pos
	Err      error
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("line %d: ignored %s: %s", e.Pos.Line, e.Property, e.Err)
}

func (e *DeclarationError) Unwrap() error { return e.Err }

// ExpandDeclarations filters unsupported properties or invalid values,
// and expands shorthand properties. Longhands appear in declaration
// order, the ones of a shorthand in the order of its definition.
//
// Each dropped declaration is logged, reported to sink (if not nil) and
// included in the returned error, which combines them all.
// The returned declarations are valid even when the error is not nil.
func (d *Decomposer) ExpandDeclarations(declarations []pa.Declaration, sink ErrorSink) ([]Declaration, error) {
	var (
		out  []Declaration
		errs error
	)
	for _, decl := range declarations {
		expanded, err := d.expandDeclaration(decl)
		if err != nil {
			d.log.Warn("ignored declaration",
				zap.String("property", decl.Name),
				zap.String("value", pa.SerializeCompact(decl.Value)),
				zap.Int("line", decl.Pos.Line),
				zap.Error(err))
			if sink != nil {
				sink(decl, err)
			}
			errs = multierr.Append(errs, &DeclarationError{Property: decl.Name, Pos: decl.Pos, Err: err})
			continue
		}
		out = append(out, expanded...)
	}
	return out, errs
}

func (d *Decomposer) expandDeclaration(decl pa.Declaration) ([]Declaration, error) {
	name := decl.LowerName()
	tokens := pa.RemoveWhitespace(decl.Value)
	if strings.HasPrefix(name, "--") {
		// custom properties accept any value, including an empty one
		return []Declaration{{Name: name, Value: pr.NewValue(tokens), Important: decl.Important, Pos: decl.Pos}}, nil
	}
	if len(tokens) == 0 {
		return nil, ErrEmptyValue
	}
	if def, ok := d.registry.Shorthand(name); ok && expanders[name] != nil {
		longhands, err := d.Decompose(name, tokens)
		if err != nil {
			return nil, err
		}
		out := make([]Declaration, len(def.Longhands))
		for i, longhand := range def.Longhands {
			out[i] = Declaration{
				Name: longhand, Value: longhands[longhand],
				Important: decl.Important, Pos: decl.Pos, Shorthand: name,
			}
		}
		return out, nil
	}
	if err := d.validateLonghand(name, tokens); err != nil {
		return nil, err
	}
	return []Declaration{{Name: name, Value: pr.NewValue(tokens), Important: decl.Important, Pos: decl.Pos}}, nil
}

// ExpandDeclarationsString parses and expands a declaration list,
// like the content of a `style` attribute. Syntax errors are
// included in the returned error.
func (d *Decomposer) ExpandDeclarationsString(css string, sink ErrorSink) ([]Declaration, error) {
	declarations, parseErrors := pa.ParseDeclarations(css)
	var errs error
	for _, e := range parseErrors {
		d.log.Warn("invalid declaration", zap.Int("line", e.Pos.Line), zap.String("error", e.Message))
		errs = multierr.Append(errs, e)
	}
	out, err := d.ExpandDeclarations(declarations, sink)
	return out, multierr.Append(errs, err)
}

// validateLonghand checks a longhand value. Longhands without
// a known grammar accept any non empty value.
func (d *Decomposer) validateLonghand(name string, tokens []pa.Token) error {
	if !d.registry.IsKnown(name) {
		return ErrUnknownProperty
	}
	value := pr.NewValue(tokens)
	if value.Kind() == pr.KindWide || value.IsCompat() || pa.ContainsVar(tokens) {
		return nil
	}
	m, ok := longhandGrammars[name]
	if !ok {
		return nil
	}
	if layered[name] {
		layers := pa.SplitOnComma(tokens)
		for _, layer := range layers {
			if !whole(m, layer) || (name == "transition-property" && len(layers) > 1 && isNoneList(layer)) {
				return fmt.Errorf("%w: %s", ErrInvalidValue, pa.SerializeCompact(layer))
			}
		}
		return nil
	}
	if !whole(m, tokens) {
		return fmt.Errorf("%w: %s", ErrInvalidValue, pa.SerializeCompact(tokens))
	}
	return nil
}

// ValidateDeclaration returns nil if the declaration `name: value`
// would be kept by ExpandDeclarations.
func (d *Decomposer) ValidateDeclaration(name string, value []pa.Token) error {
	_, err := d.expandDeclaration(pa.Declaration{Name: name, Value: value})
	return err
}

var (
	// longhandGrammars are the value grammars of the longhands
	// which are components of a shorthand grammar.
	longhandGrammars = map[string]matcher{}
	// layered longhands accept a comma separated list
	layered = map[string]bool{}
)

func init() {
	for _, g := range []*grammar{
		sideGrammar("border-top", matchLineStyle), sideGrammar("border-right", matchLineStyle),
		sideGrammar("border-bottom", matchLineStyle), sideGrammar("border-left", matchLineStyle),
		sideGrammar("outline", anyOf(keywords("auto"), matchLineStyle)),
		sideGrammar("column-rule", matchLineStyle),
		flexFlowGrammar,
	} {
		for _, c := range g.components {
			longhandGrammars[c.longhand] = c.match
		}
	}
	for _, g := range []*grammar{backgroundGrammar, transitionGrammar, animationGrammar} {
		for _, c := range g.components {
			longhandGrammars[c.longhand] = c.match
			layered[c.longhand] = true
		}
	}
	// the size is not a component of the background grammar
	longhandGrammars["background-position"] = func(tokens []pa.Token) int {
		if isPosition(tokens) {
			return len(tokens)
		}
		return 0
	}
	longhandGrammars["background-size"] = func(tokens []pa.Token) int {
		if isSize(tokens) {
			return len(tokens)
		}
		return 0
	}
	layered["background-size"] = true

	for _, side := range [4]string{"top", "right", "bottom", "left"} {
		longhandGrammars["margin-"+side] = matchLengthPercentageAuto
		longhandGrammars["padding-"+side] = single(func(t pa.Token) bool { return isLengthPercentage(t, false) })
		longhandGrammars[side] = matchLengthPercentageAuto
	}
	longhandGrammars["color"] = matchColor
	longhandGrammars["row-gap"] = single(isGap)
	longhandGrammars["column-gap"] = single(isGap)
	longhandGrammars["font-size"] = single(isFontSize)
	longhandGrammars["font-weight"] = single(isFontWeight)
	longhandGrammars["line-height"] = single(isLineHeight)
	longhandGrammars["font-family"] = func(tokens []pa.Token) int {
		if isFontFamily(tokens) {
			return len(tokens)
		}
		return 0
	}
}
