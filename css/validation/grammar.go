package validation

import (
	pa "github.com/benoitkugler/cascade/css/parser"
)

// assignment stores the tokens assigned to each longhand of one layer.
type assignment map[string][]pa.Token

// component is one longhand of a shorthand grammar.
type component struct {
	longhand string
	match    matcher
}

// grammar describes a shorthand whose components may appear in any
// order, each at most once. Components are tried in order, so that
// the more specific value types come first.
type grammar struct {
	components []component
	// required components, checked after matching
	required []string
	// finalOnly is a longhand only accepted in the last layer.
	finalOnly string
	// fixup adjusts a layer after matching.
	fixup func(layer assignment) error
	// checkLayers validates the layers as a whole, before postLayers.
	checkLayers func(shorthand string, layers []assignment) error
	// postLayers adjusts the layers once all of them are parsed.
	postLayers func(layers []assignment)
}

func (g *grammar) remaining(layer assignment, final bool) []string {
	var out []string
	for _, c := range g.components {
		if _, done := layer[c.longhand]; done || (!final && c.longhand == g.finalOnly) {
			continue
		}
		out = append(out, c.longhand)
	}
	return out
}

// parseLayer assigns the given tokens to the components.
func (g *grammar) parseLayer(shorthand string, tokens []pa.Token, final bool) (assignment, error) {
	layer := assignment{}
	for i := 0; i < len(tokens); {
		n := 0
		for _, c := range g.components {
			if _, done := layer[c.longhand]; done || (!final && c.longhand == g.finalOnly) {
				continue
			}
			if n = c.match(tokens[i:]); n != 0 {
				layer[c.longhand] = tokens[i : i+n]
				break
			}
		}
		if n == 0 {
			remaining := g.remaining(layer, final)
			// last chance: a var() standing for the only remaining component
			if isVar(tokens[i]) && len(remaining) == 1 {
				layer[remaining[0]] = tokens[i : i+1]
				n = 1
			} else {
				return nil, unmatched(shorthand, tokens[i:], remaining)
			}
		}
		i += n
	}
	for _, name := range g.required {
		if _, ok := layer[name]; !ok {
			return nil, newError(MissingRequiredLonghand, shorthand, nil, g.remaining(layer, final)...)
		}
	}
	if g.fixup != nil {
		if err := g.fixup(layer); err != nil {
			return nil, err
		}
	}
	return layer, nil
}

// parseLayers splits tokens on commas and parses each layer.
func (g *grammar) parseLayers(shorthand string, tokens []pa.Token) ([]assignment, error) {
	parts := pa.SplitOnComma(tokens)
	layers := make([]assignment, len(parts))
	for i, part := range parts {
		if len(part) == 0 {
			return nil, newError(AmbiguousLayerCount, shorthand, tokens)
		}
		layer, err := g.parseLayer(shorthand, part, i == len(parts)-1)
		if err != nil {
			return nil, err
		}
		layers[i] = layer
	}
	if g.checkLayers != nil {
		if err := g.checkLayers(shorthand, layers); err != nil {
			return nil, err
		}
	}
	if g.postLayers != nil {
		g.postLayers(layers)
	}
	return layers, nil
}

// expand returns the expander for a non layered grammar.
func (g *grammar) expand() expander {
	return func(s shorthand, tokens []pa.Token) (Longhands, error) {
		layer, err := g.parseLayer(s.Name, tokens, true)
		if err != nil {
			return nil, err
		}
		return s.values(layer), nil
	}
}

// expandLayers returns the expander for a layered grammar.
func (g *grammar) expandLayers() expander {
	return func(s shorthand, tokens []pa.Token) (Longhands, error) {
		layers, err := g.parseLayers(s.Name, tokens)
		if err != nil {
			return nil, err
		}
		return s.layeredValues(layers), nil
	}
}
