// Package properties provides the property database (longhands,
// shorthands and initial values) and the opaque declared value model.
package properties

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Longhand is an atomic property.
type Longhand struct {
	Name      string
	Initial   Value
	Inherited bool
}

// Shorthand sets several longhands at once.
type Shorthand struct {
	Name string
	// Longhands are the controlled longhands, in canonical order.
	Longhands []string
	// Layered shorthands accept comma separated repetitions.
	Layered bool
	// MinLonghands is the minimum number of declared longhands
	// required to attempt a composition.
	MinLonghands int
}

// Registry is a read-only property database. It is built once and
// passed to the components needing it, so that tests may use fixtures.
type Registry struct {
	longhands  map[string]Longhand
	shorthands map[string]Shorthand
	owners     map[string][]string // longhand -> shorthands
	ordered    []string            // shorthands, largest first
}

// LonghandDef is the literal description of a longhand.
type LonghandDef struct {
	Name      string
	Initial   string
	Inherited bool
}

// NewRegistry validates and indexes the given definitions.
func NewRegistry(longhands []LonghandDef, shorthands []Shorthand) (*Registry, error) {
	r := &Registry{
		longhands:  make(map[string]Longhand, len(longhands)),
		shorthands: make(map[string]Shorthand, len(shorthands)),
		owners:     make(map[string][]string),
	}
	for _, l := range longhands {
		if _, dup := r.longhands[l.Name]; dup {
			return nil, fmt.Errorf("duplicate longhand %s", l.Name)
		}
		r.longhands[l.Name] = Longhand{Name: l.Name, Initial: ParseValue(l.Initial), Inherited: l.Inherited}
	}
	for _, s := range shorthands {
		if _, dup := r.shorthands[s.Name]; dup {
			return nil, fmt.Errorf("duplicate shorthand %s", s.Name)
		}
		if _, clash := r.longhands[s.Name]; clash {
			return nil, fmt.Errorf("%s is both a longhand and a shorthand", s.Name)
		}
		for _, name := range s.Longhands {
			if _, ok := r.longhands[name]; !ok {
				return nil, fmt.Errorf("shorthand %s: unknown longhand %s", s.Name, name)
			}
			r.owners[name] = append(r.owners[name], s.Name)
		}
		if s.MinLonghands == 0 {
			s.MinLonghands = len(s.Longhands)
		}
		r.shorthands[s.Name] = s
		r.ordered = append(r.ordered, s.Name)
	}
	sort.SliceStable(r.ordered, func(i, j int) bool {
		return len(r.shorthands[r.ordered[i]].Longhands) > len(r.shorthands[r.ordered[j]].Longhands)
	})
	return r, nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(defaultLonghands, defaultShorthands)
	if err != nil {
		panic(fmt.Sprintf("invalid property tables: %s", err))
	}
	return r
})

// Default returns the registry of the supported CSS properties.
func Default() *Registry { return defaultRegistry() }

func (r *Registry) Longhand(name string) (Longhand, bool) {
	l, ok := r.longhands[name]
	return l, ok
}

func (r *Registry) Shorthand(name string) (Shorthand, bool) {
	s, ok := r.shorthands[name]
	return s, ok
}

// IsKnown returns true for custom properties and registered
// longhands or shorthands.
func (r *Registry) IsKnown(name string) bool {
	if strings.HasPrefix(name, "--") {
		return true
	}
	_, isLong := r.longhands[name]
	_, isShort := r.shorthands[name]
	return isLong || isShort
}

// Initial returns the initial value of a longhand, or an empty value.
func (r *Registry) Initial(name string) Value {
	return r.longhands[name].Initial
}

// IsInherited returns true for inherited longhands and custom properties.
func (r *Registry) IsInherited(name string) bool {
	if strings.HasPrefix(name, "--") {
		return true
	}
	return r.longhands[name].Inherited
}

// Owners returns the shorthands controlling the given longhand.
func (r *Registry) Owners(longhand string) []string {
	return r.owners[longhand]
}

// Shorthands returns the shorthands, those controlling
// the most longhands first.
func (r *Registry) Shorthands() []Shorthand {
	out := make([]Shorthand, len(r.ordered))
	for i, name := range r.ordered {
		out[i] = r.shorthands[name]
	}
	return out
}
