package selector

import (
	"fmt"

	"golang.org/x/net/html"
)

// Specificity is the CSS specificity as defined in
// https://www.w3.org/TR/selectors/#specificity-rules
// with the convention Specificity = [ids, classes/attributes/pseudo-classes, types/pseudo-elements].
type Specificity [3]int

// Compare returns the first non zero difference between s and other,
// comparing ids, then classes, then types.
func (s Specificity) Compare(other Specificity) int {
	for i := range s {
		if d := s[i] - other[i]; d != 0 {
			return d
		}
	}
	return 0
}

// Less returns `true` if s < other (strictly), false otherwise
func (s Specificity) Less(other Specificity) bool {
	return s.Compare(other) < 0
}

func (s Specificity) Add(other Specificity) Specificity {
	for i, sp := range other {
		s[i] += sp
	}
	return s
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s[0], s[1], s[2])
}

// Matcher resolves a selector list against an element.
type Matcher interface {
	// Match returns the index in list of the matching alternative,
	// or -1 if no alternative matches.
	Match(list List, element *html.Node) int
}

// maximum returns the greatest specificity of the alternatives.
func (l List) maximum() Specificity {
	var out Specificity
	for _, c := range l {
		if sp := c.Specificity(); out.Less(sp) {
			out = sp
		}
	}
	return out
}

// Specificity returns the specificity of c, independently of any element:
// argument selector lists contribute their most specific alternative.
func (c Complex) Specificity() Specificity {
	return c.SpecificityFor(nil, nil)
}

// SpecificityFor returns the specificity of c when matched against element.
// Argument selectors of the subject compound contribute the alternative
// reported by m; those of other compounds, or all of them when m is nil,
// contribute their most specific alternative.
func (c Complex) SpecificityFor(m Matcher, element *html.Node) Specificity {
	var out Specificity
	for i, compound := range c.Compounds {
		subject := i == len(c.Compounds)-1
		if subject {
			out = out.Add(compound.specificity(m, element))
		} else {
			out = out.Add(compound.specificity(nil, nil))
		}
	}
	return out
}

func (compound Compound) specificity(m Matcher, element *html.Node) Specificity {
	var out Specificity
	for _, s := range compound {
		switch s.Kind {
		case Universal, Where:
		case Type, PseudoElement:
			out[2]++
		case ID:
			out[0]++
		case Class, Attribute:
			out[1]++
		case PseudoClass:
			if s.Name == "root" {
				out[2]++
			} else {
				out[1]++
			}
		case Not, Has:
			out = out.Add(s.List.maximum())
		case Is:
			out = out.Add(s.List.matched(m, element))
		case Nth:
			out[1]++
			if s.List != nil {
				out = out.Add(s.List.matched(m, element))
			}
		}
	}
	return out
}

// matched returns the specificity of the alternative reported by m,
// or the maximum when m is nil or reports no match.
func (l List) matched(m Matcher, element *html.Node) Specificity {
	if m == nil || element == nil {
		return l.maximum()
	}
	index := m.Match(l, element)
	if index >= len(l) || index < -1 {
		panic(fmt.Sprintf("matcher returned index %d for a list of %d selectors", index, len(l)))
	}
	if index == -1 {
		return l.maximum()
	}
	return l[index].SpecificityFor(m, element)
}

// MatchWithSpecificity return `true` if `element` matches `l`.
// In this case, the specificity of the alternative reported by m is returned.
func (l List) MatchWithSpecificity(m Matcher, element *html.Node) (bool, Specificity) {
	index := m.Match(l, element)
	if index >= len(l) || index < -1 {
		panic(fmt.Sprintf("matcher returned index %d for a list of %d selectors", index, len(l)))
	}
	if index == -1 {
		return false, Specificity{}
	}
	return true, l[index].SpecificityFor(m, element)
}
