// Package validation expands shorthand properties into their longhands.
//
// Each shorthand is described either by a grammar table, interpreted
// by a shared driver, or by a hand-written expander for the few
// properties whose syntax is not a simple juxtaposition of components
// (font, grid, background, border-image).
package validation

import (
	"fmt"

	pa "github.com/benoitkugler/cascade/css/parser"
	pr "github.com/benoitkugler/cascade/css/properties"
	"github.com/benoitkugler/cascade/logger"
	"go.uber.org/zap"
)

// Longhands maps each longhand controlled by a shorthand to its value.
// After a successful decomposition, every controlled longhand is present.
type Longhands map[string]pr.Value

// Decomposer expands shorthand declarations. It is safe for concurrent use.
type Decomposer struct {
	registry *pr.Registry
	log      *zap.Logger
}

// NewDecomposer returns a decomposer using the given property database.
// A nil registry means pr.Default(), a nil logger disables logging.
func NewDecomposer(registry *pr.Registry, log *zap.Logger) *Decomposer {
	if registry == nil {
		registry = pr.Default()
	}
	return &Decomposer{registry: registry, log: logger.OrNop(log).Named("decompose")}
}

// Registry returns the property database used by d.
func (d *Decomposer) Registry() *pr.Registry { return d.registry }

// IsShorthand returns true if name is a supported shorthand.
func (d *Decomposer) IsShorthand(name string) bool {
	_, ok := d.registry.Shorthand(name)
	return ok && expanders[name] != nil
}

// shorthand gives access to the shorthand definition and the
// initial values while expanding.
type shorthand struct {
	pr.Shorthand
	registry *pr.Registry
}

func (s shorthand) initial(longhand string) pr.Value { return s.registry.Initial(longhand) }

// values converts the assigned tokens, using initial values for the others.
func (s shorthand) values(assigned assignment) Longhands {
	out := make(Longhands, len(s.Longhands))
	for _, name := range s.Longhands {
		if tokens, ok := assigned[name]; ok {
			out[name] = pr.NewValue(tokens)
		} else {
			out[name] = s.initial(name)
		}
	}
	return out
}

// layeredValues joins the per layer assignments, back-filling each
// missing component with its initial value.
func (s shorthand) layeredValues(layers []assignment) Longhands {
	out := make(Longhands, len(s.Longhands))
	for _, name := range s.Longhands {
		values := make([]pr.Value, len(layers))
		for i, layer := range layers {
			if tokens, ok := layer[name]; ok {
				values[i] = pr.NewValue(tokens)
			} else {
				values[i] = s.initial(name)
			}
		}
		out[name] = pr.JoinLayers(values)
	}
	return out
}

type expander func(s shorthand, tokens []pa.Token) (Longhands, error)

// Decompose expands the shorthand name, given its value tokens.
//
// CSS-wide keywords and values using the legacy compat hack are
// propagated to every longhand. A value referencing var() which can't
// be assigned otherwise yields pending-substitution values.
// The returned values are flagged as subproperties.
func (d *Decomposer) Decompose(name string, tokens []pa.Token) (Longhands, error) {
	def, ok := d.registry.Shorthand(name)
	exp := expanders[name]
	if !ok || exp == nil {
		return nil, fmt.Errorf("unsupported shorthand %s", name)
	}
	tokens = pa.RemoveWhitespace(tokens)
	if len(tokens) == 0 {
		return nil, newError(MissingRequiredLonghand, name, nil, def.Longhands...)
	}

	out := make(Longhands, len(def.Longhands))
	if value := pr.NewValue(tokens); value.Kind() == pr.KindWide || value.IsCompat() {
		for _, longhand := range def.Longhands {
			out[longhand] = value.AsSubproperty()
		}
		return out, nil
	}

	s := shorthand{Shorthand: def, registry: d.registry}
	values, err := exp(s, tokens)
	if err != nil {
		if !pa.ContainsVar(tokens) {
			return nil, err
		}
		pending := pr.PendingValue(name, tokens).AsSubproperty()
		for _, longhand := range def.Longhands {
			out[longhand] = pending
		}
		return out, nil
	}
	for _, longhand := range def.Longhands {
		value, ok := values[longhand]
		if !ok {
			value = s.initial(longhand)
		}
		out[longhand] = value.AsSubproperty()
	}
	return out, nil
}

// DecomposeString is a convenience wrapper tokenizing value.
func (d *Decomposer) DecomposeString(name, value string) (Longhands, error) {
	return d.Decompose(name, pa.TokenizeString(value))
}
