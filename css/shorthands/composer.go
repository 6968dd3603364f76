// Package shorthands builds the minimal shorthand text for a set
// of declared longhands.
//
// Each shorthand family proposes candidate values, from the most
// compact to the most explicit. A candidate is only returned if
// decomposing it gives back exactly the declared longhands.
package shorthands

import (
	"strings"

	pa "github.com/benoitkugler/cascade/css/parser"
	pr "github.com/benoitkugler/cascade/css/properties"
	"github.com/benoitkugler/cascade/css/validation"
	"github.com/benoitkugler/cascade/logger"
	"go.uber.org/zap"
)

// Declared is a longhand value with its importance.
type Declared struct {
	Value     pr.Value
	Important bool
}

// Composer builds shorthands. It is safe for concurrent use.
type Composer struct {
	registry   *pr.Registry
	decomposer *validation.Decomposer
	log        *zap.Logger
}

// NewComposer returns a composer checking its candidates with
// the given decomposer. A nil decomposer uses the default registry.
func NewComposer(decomposer *validation.Decomposer, log *zap.Logger) *Composer {
	log = logger.OrNop(log)
	if decomposer == nil {
		decomposer = validation.NewDecomposer(nil, log)
	}
	return &Composer{registry: decomposer.Registry(), decomposer: decomposer, log: log.Named("compose")}
}

// longhands gives access to the declared values of one shorthand.
type longhands struct {
	values   map[string]pr.Value
	registry *pr.Registry
}

func (l longhands) text(name string) string { return l.values[name].String() }

func (l longhands) isInitial(name string) bool {
	return l.values[name].Equal(l.registry.Initial(name))
}

// allKeyword returns true if every longhand is the keyword kw.
func (l longhands) allKeyword(kw string) bool {
	for _, v := range l.values {
		if !v.IsKeyword(kw) {
			return false
		}
	}
	return true
}

// builder returns candidate values, most compact first.
type builder func(l longhands) []string

// Compose returns the shorthand declaration `name:value;` equivalent
// to the declared longhands, or false if there is none.
//
// At least [pr.Shorthand.MinLonghands] longhands must be declared, the
// other ones being read as initial. Every declared longhand must have
// the same importance, and no var() reference.
func (c *Composer) Compose(name string, declared map[string]Declared) (string, bool) {
	value, important, ok := c.ComposeValue(name, declared)
	if !ok {
		return "", false
	}
	return formatDeclaration(name, value, important), true
}

// ComposeValue is like Compose but returns the value and its importance.
func (c *Composer) ComposeValue(name string, declared map[string]Declared) (value string, important bool, ok bool) {
	def, isShorthand := c.registry.Shorthand(name)
	build := builders[name]
	if !isShorthand || build == nil {
		return "", false, false
	}

	l := longhands{values: make(map[string]pr.Value, len(def.Longhands)), registry: c.registry}
	count := 0
	for _, longhand := range def.Longhands {
		decl, ok := declared[longhand]
		if !ok {
			l.values[longhand] = c.registry.Initial(longhand)
			continue
		}
		if count == 0 {
			important = decl.Important
		} else if decl.Important != important {
			// mixed priorities can't be expressed by one shorthand
			return "", false, false
		}
		count++
		if decl.Value.Kind() == pr.KindPending || decl.Value.Kind() == pr.KindEmpty || pa.ContainsVar(decl.Value.Tokens()) {
			return "", false, false
		}
		l.values[longhand] = decl.Value
	}
	if count == 0 || count < def.MinLonghands {
		return "", false, false
	}
	switch text, wide := wideShortcut(def, l); wide {
	case allWide:
		return text, important, true
	case someWide:
		return "", false, false
	}

	for _, candidate := range build(l) {
		if c.roundTrips(def, candidate, l) {
			return candidate, important, true
		}
		c.log.Debug("candidate rejected", zap.String("shorthand", name), zap.String("value", candidate))
	}
	return "", false, false
}

const (
	noWide = iota
	someWide
	allWide
)

// wideShortcut handles CSS-wide keywords and compat values, which
// must be shared by every longhand to be written once.
func wideShortcut(def pr.Shorthand, l longhands) (string, int) {
	first := l.values[def.Longhands[0]]
	special := 0
	for _, name := range def.Longhands {
		if l.values[name].Wide() != pr.NotWide {
			special++
		}
	}
	switch special {
	case 0:
		return "", noWide
	case len(def.Longhands):
		for _, name := range def.Longhands[1:] {
			if !l.values[name].Equal(first) {
				return "", someWide
			}
		}
		return first.String(), allWide
	default:
		return "", someWide
	}
}

// roundTrips checks that decomposing candidate gives back l.
func (c *Composer) roundTrips(def pr.Shorthand, candidate string, l longhands) bool {
	out, err := c.decomposer.DecomposeString(def.Name, candidate)
	if err != nil {
		return false
	}
	for _, longhand := range def.Longhands {
		got := out[longhand]
		if got.Kind() == pr.KindPending || !sameValue(longhand, got, l.values[longhand]) {
			return false
		}
	}
	return true
}

// sameValue compares a and b, background repeat keywords being
// compared in their two values form.
func sameValue(longhand string, a, b pr.Value) bool {
	if a.Equal(b) {
		return true
	}
	if longhand != "background-repeat" || a.Wide() != b.Wide() {
		return false
	}
	la, lb := a.Layers(), b.Layers()
	if len(la) != len(lb) {
		return false
	}
	for i := range la {
		if repeatPair(la[i]) != repeatPair(lb[i]) {
			return false
		}
	}
	return true
}

// repeatPair returns the `x y` form of a background-repeat layer.
func repeatPair(v pr.Value) string {
	tokens := v.Tokens()
	switch len(tokens) {
	case 1:
		switch k := strings.ToLower(pa.SerializeCompact(tokens)); k {
		case "repeat-x":
			return "repeat no-repeat"
		case "repeat-y":
			return "no-repeat repeat"
		default:
			return k + " " + k
		}
	case 2:
		return strings.ToLower(pa.SerializeCompact(tokens))
	}
	return v.String()
}

func formatDeclaration(name, value string, important bool) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte(':')
	b.WriteString(value)
	if important {
		b.WriteString(" !important")
	}
	b.WriteByte(';')
	return b.String()
}
