package selector

import (
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	pa "github.com/benoitkugler/cascade/css/parser"
	"golang.org/x/net/html"
)

// CascadiaMatcher implements Matcher. Combinators and selectors taking
// selector arguments (:not(), :is(), :where(), :has() and
// :nth-child(An+B of S)) are matched here, while attribute selectors and
// the other pseudo-classes are compiled with cascadia, once per text.
// Pseudo-elements are ignored when matching: callers filter on
// Complex.PseudoElement.
//
// It is safe for concurrent use.
type CascadiaMatcher struct {
	compiled sync.Map // simple selector text -> cascadia.Sel (nil when unsupported)
}

func NewCascadiaMatcher() *CascadiaMatcher { return &CascadiaMatcher{} }

func (m *CascadiaMatcher) compile(text string) cascadia.Sel {
	if sel, ok := m.compiled.Load(text); ok {
		s, _ := sel.(cascadia.Sel)
		return s
	}
	sel, err := cascadia.Parse(text)
	if err != nil {
		m.compiled.Store(text, nil)
		return nil
	}
	m.compiled.Store(text, sel)
	return sel
}

// Matches returns true if element matches c.
func (m *CascadiaMatcher) Matches(c Complex, element *html.Node) bool {
	if element == nil || element.Type != html.ElementNode || len(c.Compounds) == 0 {
		return false
	}
	return m.matchFrom(c, len(c.Compounds)-1, element, nil)
}

// Match returns the index of the most specific alternative matching element.
func (m *CascadiaMatcher) Match(list List, element *html.Node) int {
	best := -1
	var bestSpec Specificity
	for i, c := range list {
		if !m.Matches(c, element) {
			continue
		}
		if sp := c.SpecificityFor(m, element); best == -1 || bestSpec.Less(sp) {
			best, bestSpec = i, sp
		}
	}
	return best
}

func (m *CascadiaMatcher) matchesAny(list List, element *html.Node) bool {
	for _, c := range list {
		if m.Matches(c, element) {
			return true
		}
	}
	return false
}

// matchFrom matches the compounds [0, index] of c, right to left,
// the compound at index being matched by element.
// When anchor is not nil, the leftmost compound must be related
// to anchor by c.Leading.
func (m *CascadiaMatcher) matchFrom(c Complex, index int, element *html.Node, anchor *html.Node) bool {
	if !m.matchCompound(c.Compounds[index], element) {
		return false
	}
	if index == 0 {
		return anchor == nil || related(c.Leading, anchor, element)
	}
	switch c.Combinators[index-1] {
	case Child:
		parent := parentElement(element)
		return parent != nil && m.matchFrom(c, index-1, parent, anchor)
	case Descendant:
		for parent := parentElement(element); parent != nil; parent = parentElement(parent) {
			if m.matchFrom(c, index-1, parent, anchor) {
				return true
			}
		}
	case NextSibling:
		prev := previousElement(element)
		return prev != nil && m.matchFrom(c, index-1, prev, anchor)
	case SubsequentSibling:
		for prev := previousElement(element); prev != nil; prev = previousElement(prev) {
			if m.matchFrom(c, index-1, prev, anchor) {
				return true
			}
		}
	}
	return false
}

func (m *CascadiaMatcher) matchCompound(compound Compound, element *html.Node) bool {
	for _, s := range compound {
		if !m.matchSimple(s, element) {
			return false
		}
	}
	return true
}

func (m *CascadiaMatcher) matchSimple(s Simple, element *html.Node) bool {
	switch s.Kind {
	case Universal, PseudoElement:
		return true
	case Type:
		return element.Data == s.Name
	case ID:
		return attr(element, "id") == s.Name
	case Class:
		for _, class := range strings.Fields(attr(element, "class")) {
			if class == s.Name {
				return true
			}
		}
		return false
	case Not:
		return !m.matchesAny(s.List, element)
	case Is, Where:
		return m.matchesAny(s.List, element)
	case Has:
		return m.matchHas(s.List, element)
	case Nth:
		return m.matchNth(s, element)
	default: // attributes and pseudo-classes
		var b strings.Builder
		s.writeTo(&b)
		sel := m.compile(b.String())
		return sel != nil && sel.Match(element)
	}
}

func (m *CascadiaMatcher) matchHas(list List, anchor *html.Node) bool {
	for _, c := range list {
		var found bool
		visit := func(n *html.Node) bool {
			found = m.matchFrom(c, len(c.Compounds)-1, n, anchor)
			return found
		}
		switch c.Leading {
		case NextSibling, SubsequentSibling:
			for sibling := nextElement(anchor); sibling != nil && !found; sibling = nextElement(sibling) {
				walkElements(sibling, visit)
			}
		default:
			for child := anchor.FirstChild; child != nil && !found; child = child.NextSibling {
				walkElements(child, visit)
			}
		}
		if found {
			return true
		}
	}
	return false
}

func (m *CascadiaMatcher) matchNth(s Simple, element *html.Node) bool {
	if s.List != nil && !m.matchesAny(s.List, element) {
		return false
	}
	last := strings.Contains(s.Name, "last")
	ofType := strings.HasSuffix(s.Name, "of-type")
	counts := func(n *html.Node) bool {
		if ofType {
			return n.Data == element.Data
		}
		return s.List == nil || m.matchesAny(s.List, n)
	}
	position := 1
	sibling := previousElement
	if last {
		sibling = nextElement
	}
	for n := sibling(element); n != nil; n = sibling(n) {
		if counts(n) {
			position++
		}
	}
	return pa.MatchNth(s.AB, position)
}

// related returns true if element stands in the relation comb
// to anchor, as the leftmost compound of a relative selector.
func related(comb Combinator, anchor, element *html.Node) bool {
	switch comb {
	case Child:
		return parentElement(element) == anchor
	case NextSibling:
		return previousElement(element) == anchor
	case SubsequentSibling:
		for prev := previousElement(element); prev != nil; prev = previousElement(prev) {
			if prev == anchor {
				return true
			}
		}
		return false
	default:
		for parent := parentElement(element); parent != nil; parent = parentElement(parent) {
			if parent == anchor {
				return true
			}
		}
		return false
	}
}

func attr(element *html.Node, key string) string {
	for _, a := range element.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func parentElement(n *html.Node) *html.Node {
	if p := n.Parent; p != nil && p.Type == html.ElementNode {
		return p
	}
	return nil
}

func previousElement(n *html.Node) *html.Node {
	for n = n.PrevSibling; n != nil; n = n.PrevSibling {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

func nextElement(n *html.Node) *html.Node {
	for n = n.NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

// walkElements calls fn on n and its element descendants, in document order,
// until fn returns true.
func walkElements(n *html.Node, fn func(*html.Node) bool) bool {
	if n.Type == html.ElementNode && fn(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walkElements(c, fn) {
			return true
		}
	}
	return false
}
