package media

import (
	"math"
	"sort"
	"strings"
)

// interval is the set of values allowed for a range feature,
// inside the [0, +inf) domain.
type interval struct {
	feature        string
	class          unitClass
	lo, hi         float64
	loOpen, hiOpen bool
}

func fullInterval(feature string, class unitClass) interval {
	return interval{feature: feature, class: class, hi: math.Inf(1), hiOpen: true}
}

func (iv interval) isEmpty() bool {
	return iv.lo > iv.hi || (iv.lo == iv.hi && (iv.loOpen || iv.hiOpen))
}

func (iv interval) isFull() bool {
	return iv.lo <= 0 && !iv.loOpen && math.IsInf(iv.hi, 1)
}

func (iv interval) sameAxis(other interval) bool {
	return iv.feature == other.feature && iv.class == other.class
}

// bound restricts iv with `feature op v`.
func (iv interval) bound(op RangeKind, v float64) interval {
	switch op {
	case Eq:
		iv = iv.bound(Ge, v)
		return iv.bound(Le, v)
	case Gt, Ge:
		open := op == Gt
		if v > iv.lo || (v == iv.lo && open) {
			iv.lo, iv.loOpen = v, open
		}
	case Lt, Le:
		open := op == Lt
		if v < iv.hi || (v == iv.hi && open) {
			iv.hi, iv.hiOpen = v, open
		}
	}
	if iv.lo < 0 {
		iv.lo, iv.loOpen = 0, false
	}
	return iv
}

func (iv interval) intersect(other interval) interval {
	if other.lo > iv.lo || (other.lo == iv.lo && other.loOpen) {
		iv.lo, iv.loOpen = other.lo, other.loOpen
	}
	if other.hi < iv.hi || (other.hi == iv.hi && other.hiOpen) {
		iv.hi, iv.hiOpen = other.hi, other.hiOpen
	}
	return iv
}

// contains returns true if other is a subset of iv.
func (iv interval) contains(other interval) bool {
	if other.isEmpty() {
		return true
	}
	loOK := iv.lo < other.lo || (iv.lo == other.lo && (!iv.loOpen || other.loOpen))
	hiOK := iv.hi > other.hi || (iv.hi == other.hi && (!iv.hiOpen || other.hiOpen))
	return loOK && hiOK
}

// complement returns the (at most two) intervals covering the domain minus iv.
func (iv interval) complement() []interval {
	var out []interval
	if iv.lo > 0 || iv.loOpen {
		below := fullInterval(iv.feature, iv.class)
		below.hi, below.hiOpen = iv.lo, !iv.loOpen
		out = append(out, below)
	}
	if !math.IsInf(iv.hi, 1) {
		above := fullInterval(iv.feature, iv.class)
		above.lo, above.loOpen = iv.hi, !iv.hiOpen
		out = append(out, above)
	}
	return out
}

func (iv interval) String() string {
	var b strings.Builder
	b.WriteString(iv.feature)
	if iv.loOpen {
		b.WriteString("(")
	} else {
		b.WriteString("[")
	}
	b.WriteString(formatFloat(iv.lo) + "," + formatFloat(iv.hi))
	if iv.hiOpen {
		b.WriteString(")")
	} else {
		b.WriteString("]")
	}
	return b.String()
}

type exprKind uint8

const (
	exprAnd exprKind = iota
	exprOr
	exprTrue
	exprFalse
	exprRange   // interval
	exprLiteral // opaque test, compared by its canonical text
)

// expr is a condition in negation normal form.
type expr struct {
	kind     exprKind
	children []*expr
	iv       interval
	key      string // canonical text of literals
	negated  bool   // for literals
}

var (
	exprT = &expr{kind: exprTrue}
	exprF = &expr{kind: exprFalse}
)

func (e *expr) String() string {
	switch e.kind {
	case exprTrue:
		return "true"
	case exprFalse:
		return "false"
	case exprRange:
		return e.iv.String()
	case exprLiteral:
		if e.negated {
			return "not " + e.key
		}
		return e.key
	}
	sep := " and "
	if e.kind == exprOr {
		sep = " or "
	}
	chunks := make([]string, len(e.children))
	for i, c := range e.children {
		chunks[i] = c.String()
	}
	sort.Strings(chunks)
	return "(" + strings.Join(chunks, sep) + ")"
}

// normalize returns the negation normal form of node id,
// negated if neg is true.
func (c *Condition) normalize(id int, neg bool) *expr {
	n := c.nodes[id]
	switch n.kind {
	case NodeNot:
		return c.normalize(n.children[0], !neg)
	case NodeAnd, NodeOr:
		kind := exprAnd
		if (n.kind == NodeOr) != neg {
			kind = exprOr
		}
		out := &expr{kind: kind}
		for _, child := range n.children {
			out.children = append(out.children, c.normalize(child, neg))
		}
		return out
	case NodeTrue, NodeFalse:
		if (n.kind == NodeTrue) != neg {
			return exprT
		}
		return exprF
	case NodePredicate:
		if iv, ok := predicateInterval(n.pred); ok {
			if !neg {
				return &expr{kind: exprRange, iv: iv}
			}
			out := &expr{kind: exprOr}
			for _, part := range iv.complement() {
				out.children = append(out.children, &expr{kind: exprRange, iv: part})
			}
			return out
		}
	}
	var b strings.Builder
	c.write(&b, id, true)
	return &expr{kind: exprLiteral, key: b.String(), negated: neg}
}

// predicateInterval returns the interval of range predicates whose
// values can be resolved without environment.
func predicateInterval(p Predicate) (interval, bool) {
	if !IsRangeFeature(p.Feature) {
		return interval{}, false
	}
	if p.Kind == Boolean {
		iv := fullInterval(p.Feature, featureClass(p.Feature))
		return iv.bound(Gt, 0), true
	}
	if p.Kind == Plain {
		return interval{}, false
	}
	v1, class, ok := resolve(p.Value, nil)
	if !ok {
		return interval{}, false
	}
	iv := fullInterval(p.Feature, class)
	if !p.Kind.isTwoSided() {
		return iv.bound(p.Kind, v1), true
	}
	v2, class2, ok := resolve(p.Value2, nil)
	if !ok || class2 != class {
		return interval{}, false
	}
	op1, op2 := p.Kind.sides()
	// v1 op1 f is f flip(op1) v1
	return iv.bound(op1.flip(), v1).bound(op2, v2), true
}

func featureClass(feature string) unitClass {
	switch rangeFeatures[feature] {
	case TLength:
		return classLength
	case TResolution:
		return classResolution
	default:
		return classNumber
	}
}

// simplify flattens nested groups, folds constants, intersects
// ranges on the same feature and removes duplicates.
func simplify(e *expr) *expr {
	switch e.kind {
	case exprRange:
		if e.iv.isEmpty() {
			return exprF
		}
		if e.iv.isFull() {
			return exprT
		}
		return e
	case exprAnd, exprOr:
	default:
		return e
	}
	isAnd := e.kind == exprAnd
	absorbing, neutral := exprFalse, exprTrue
	if !isAnd {
		absorbing, neutral = exprTrue, exprFalse
	}

	var children []*expr
	for _, child := range e.children {
		child = simplify(child)
		switch {
		case child.kind == absorbing:
			return child
		case child.kind == neutral:
			continue
		case child.kind == e.kind:
			children = append(children, child.children...)
		default:
			children = append(children, child)
		}
	}

	if isAnd {
		// intersect ranges on the same axis
		var merged []*expr
		for _, child := range children {
			if child.kind == exprRange {
				found := false
				for i, m := range merged {
					if m.kind == exprRange && m.iv.sameAxis(child.iv) {
						merged[i] = &expr{kind: exprRange, iv: m.iv.intersect(child.iv)}
						if merged[i].iv.isEmpty() {
							return exprF
						}
						found = true
						break
					}
				}
				if found {
					continue
				}
			}
			merged = append(merged, child)
		}
		children = merged
	}

	// dedupe, and detect x and not x
	seen := map[string]bool{}
	var out []*expr
	for _, child := range children {
		key := child.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		if child.kind == exprLiteral {
			opposite := *child
			opposite.negated = !child.negated
			if seen[opposite.String()] {
				return &expr{kind: absorbing}
			}
		}
		out = append(out, child)
	}

	switch len(out) {
	case 0:
		return &expr{kind: neutral}
	case 1:
		return out[0]
	}
	if !isAnd && coversDomain(out) {
		return exprT
	}
	return &expr{kind: e.kind, children: out}
}

type axis struct {
	feature string
	class   unitClass
}

// coversDomain returns true if the ranges in l, on the same
// axis, cover the whole domain.
func coversDomain(l []*expr) bool {
	byAxis := map[axis][]interval{}
	for _, e := range l {
		if e.kind == exprRange {
			key := axis{e.iv.feature, e.iv.class}
			byAxis[key] = append(byAxis[key], e.iv)
		}
	}
	for key, ivs := range byAxis {
		if covers(ivs, fullInterval(key.feature, key.class)) {
			return true
		}
	}
	return false
}

// covers returns true if the union of ivs contains target.
func covers(ivs []interval, target interval) bool {
	sorted := append([]interval(nil), ivs...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].lo != sorted[j].lo {
			return sorted[i].lo < sorted[j].lo
		}
		return !sorted[i].loOpen && sorted[j].loOpen
	})
	// everything below hi is covered, and hi itself unless hiOpen
	hi, hiOpen := target.lo, !target.loOpen
	for _, iv := range sorted {
		if iv.isEmpty() {
			continue
		}
		if iv.lo > hi || (iv.lo == hi && iv.loOpen && hiOpen) {
			break
		}
		if iv.hi > hi || (iv.hi == hi && !iv.hiOpen) {
			hi, hiOpen = iv.hi, iv.hiOpen
		}
	}
	return hi > target.hi || (hi == target.hi && (!hiOpen || target.hiOpen))
}

// implies returns true if a => b. It is sound but not complete:
// a false result means the implication could not be proved.
func implies(a, b *expr) bool {
	if a.kind == exprFalse || b.kind == exprTrue {
		return true
	}
	if a.kind == exprTrue || b.kind == exprFalse {
		return false
	}
	if b.kind == exprAnd {
		for _, child := range b.children {
			if !implies(a, child) {
				return false
			}
		}
		return true
	}
	if a.kind == exprOr {
		for _, child := range a.children {
			if !implies(child, b) {
				return false
			}
		}
		return true
	}
	if b.kind == exprOr {
		for _, child := range b.children {
			if implies(a, child) {
				return true
			}
		}
		if a.kind == exprRange {
			var ivs []interval
			for _, child := range b.children {
				if child.kind == exprRange && child.iv.sameAxis(a.iv) {
					ivs = append(ivs, child.iv)
				}
			}
			if len(ivs) > 0 && covers(ivs, a.iv) {
				return true
			}
		}
	}
	if a.kind == exprAnd {
		for _, child := range a.children {
			if implies(child, b) {
				return true
			}
		}
		return false
	}
	// leaves
	switch {
	case a.kind == exprRange && b.kind == exprRange:
		return a.iv.sameAxis(b.iv) && b.iv.contains(a.iv)
	case a.kind == exprLiteral && b.kind == exprLiteral:
		return a.key == b.key && a.negated == b.negated
	}
	return false
}

func (c *Condition) expr() *expr {
	if c == nil {
		return exprT
	}
	return simplify(c.normalize(c.root, false))
}

// Implies returns true if every environment matching c also matches other.
// Both conditions are first brought to a normalized form, in which
// `min-`/`max-` prefixes, negations and redundant terms are resolved.
func (c *Condition) Implies(other *Condition) bool {
	return implies(c.expr(), other.expr())
}

// Normalized returns the canonical text of the simplified condition,
// used to compare conditions independently of their surface syntax.
func (c *Condition) Normalized() string { return c.expr().String() }

func (q MediaQuery) matchesAll() bool {
	return !q.Negated && (q.Type == "" || q.Type == "all") && (q.Condition == nil || q.Condition.expr().kind == exprTrue)
}

// Implies returns true if q matching an environment guarantees
// that other matches it too.
func (q MediaQuery) Implies(other MediaQuery) bool {
	if q.isNotAll() || other.matchesAll() {
		return true
	}
	if q.Negated || other.Negated {
		return q.Negated == other.Negated && q.Type == other.Type &&
			q.Condition.Normalized() == other.Condition.Normalized()
	}
	if other.Type != "" && other.Type != "all" && other.Type != q.Type {
		return false
	}
	return q.Condition.Implies(other.Condition)
}

// Implies returns true if each query of l implies a query of other.
func (l QueryList) Implies(other QueryList) bool {
	if len(other) == 0 {
		return true
	}
	if len(l) == 0 {
		l = QueryList{{}}
	}
	for _, q := range l {
		found := false
		for _, o := range other {
			if q.Implies(o) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
