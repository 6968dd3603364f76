// Package media implements the boolean condition engine of
// `@media` and `@supports` rules: parsing into a canonical form,
// evaluation against an environment, and static subsumption.
package media

import (
	"strings"

	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/xlab/treeprint"
)

// RangeKind is the canonical comparison of a feature predicate.
// Two-sided kinds read `Value op1 feature op2 Value2`.
type RangeKind uint8

const (
	Boolean RangeKind = iota // (feature)
	Plain                    // (feature: value) for discrete features
	Eq
	Lt
	Le
	Gt
	Ge
	LtLt
	LtLe
	LeLt
	LeLe
	GtGt
	GtGe
	GeGt
	GeGe
)

// twoSided returns the two-sided kind for `v1 op1 f op2 v2`
func twoSided(op1, op2 RangeKind) (RangeKind, bool) {
	switch [2]RangeKind{op1, op2} {
	case [2]RangeKind{Lt, Lt}:
		return LtLt, true
	case [2]RangeKind{Lt, Le}:
		return LtLe, true
	case [2]RangeKind{Le, Lt}:
		return LeLt, true
	case [2]RangeKind{Le, Le}:
		return LeLe, true
	case [2]RangeKind{Gt, Gt}:
		return GtGt, true
	case [2]RangeKind{Gt, Ge}:
		return GtGe, true
	case [2]RangeKind{Ge, Gt}:
		return GeGt, true
	case [2]RangeKind{Ge, Ge}:
		return GeGe, true
	}
	return 0, false
}

// sides splits a two-sided kind into its two comparisons.
func (k RangeKind) sides() (op1, op2 RangeKind) {
	switch k {
	case LtLt:
		return Lt, Lt
	case LtLe:
		return Lt, Le
	case LeLt:
		return Le, Lt
	case LeLe:
		return Le, Le
	case GtGt:
		return Gt, Gt
	case GtGe:
		return Gt, Ge
	case GeGt:
		return Ge, Gt
	case GeGe:
		return Ge, Ge
	}
	return k, k
}

func (k RangeKind) isTwoSided() bool { return k >= LtLt }

func (k RangeKind) operator() string {
	switch k {
	case Eq:
		return "="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	}
	return ""
}

// Predicate is a feature test, with a canonical feature name
// (lower case, without min-/max- prefix).
type Predicate struct {
	Feature string
	Kind    RangeKind
	Value   FeatureValue
	Value2  FeatureValue
}

func (p Predicate) String() string {
	switch {
	case p.Kind == Boolean:
		return "(" + p.Feature + ")"
	case p.Kind == Plain:
		return "(" + p.Feature + ":" + p.Value.String() + ")"
	case p.Kind.isTwoSided():
		op1, op2 := p.Kind.sides()
		return "(" + p.Value.String() + op1.operator() + p.Feature + op2.operator() + p.Value2.String() + ")"
	default:
		return "(" + p.Feature + p.Kind.operator() + p.Value.String() + ")"
	}
}

// NodeKind is the type of a condition node.
type NodeKind uint8

const (
	NodeAnd NodeKind = iota
	NodeOr
	NodeNot
	NodePredicate
	NodeTrue
	NodeFalse
	// NodeUnknown is a general enclosed or malformed test, never matching.
	NodeUnknown
	// NodeDeclaration is a `@supports (name: value)` test.
	NodeDeclaration
	// NodeSelector is a `@supports selector(...)` test.
	NodeSelector
)

type node struct {
	kind     NodeKind
	parent   int // -1 for the root
	children []int
	pred     Predicate
	name     string     // declaration name
	tokens   []pa.Token // declaration value, selector or unknown content
}

// Condition is an immutable boolean tree, whose nodes are stored
// in an arena and reference each other by index.
type Condition struct {
	nodes []node
	root  int
}

func (c *Condition) add(n node) int {
	n.parent = -1
	c.nodes = append(c.nodes, n)
	return len(c.nodes) - 1
}

func (c *Condition) addParent(kind NodeKind, children ...int) int {
	id := c.add(node{kind: kind, children: children})
	for _, child := range children {
		c.nodes[child].parent = id
	}
	return id
}

// Parent returns the parent index of node id, or -1.
func (c *Condition) Parent(id int) int { return c.nodes[id].parent }

// Root returns the index of the root node.
func (c *Condition) Root() int { return c.root }

// Kind returns the kind of node id.
func (c *Condition) Kind(id int) NodeKind { return c.nodes[id].kind }

// Predicate returns the predicate of a NodePredicate node.
func (c *Condition) Predicate(id int) Predicate { return c.nodes[id].pred }

// Children returns the children of node id. The slice must not be modified.
func (c *Condition) Children(id int) []int { return c.nodes[id].children }

// Len returns the number of nodes in the arena.
func (c *Condition) Len() int { return len(c.nodes) }

func (c *Condition) String() string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	c.write(&b, c.root, false)
	return b.String()
}

func (c *Condition) write(b *strings.Builder, id int, nested bool) {
	n := c.nodes[id]
	switch n.kind {
	case NodeAnd, NodeOr:
		sep := " and "
		if n.kind == NodeOr {
			sep = " or "
		}
		if nested {
			b.WriteByte('(')
		}
		for i, child := range n.children {
			if i > 0 {
				b.WriteString(sep)
			}
			c.write(b, child, true)
		}
		if nested {
			b.WriteByte(')')
		}
	case NodeNot:
		if nested {
			b.WriteByte('(')
		}
		b.WriteString("not ")
		c.write(b, n.children[0], true)
		if nested {
			b.WriteByte(')')
		}
	case NodePredicate:
		b.WriteString(n.pred.String())
	case NodeTrue:
		b.WriteString("(true)")
	case NodeFalse:
		b.WriteString("(false)")
	case NodeDeclaration:
		b.WriteString("(" + n.name + ":" + pa.SerializeCompact(n.tokens) + ")")
	case NodeSelector:
		b.WriteString("selector(" + pa.Serialize(n.tokens) + ")")
	case NodeUnknown:
		b.WriteString("(" + pa.Serialize(n.tokens) + ")")
	}
}

// Tree returns a human readable dump of the arena.
func (c *Condition) Tree() string {
	tree := treeprint.New()
	if c != nil {
		c.branch(tree, c.root)
	}
	return tree.String()
}

func (c *Condition) branch(tree treeprint.Tree, id int) {
	n := c.nodes[id]
	switch n.kind {
	case NodeAnd:
		sub := tree.AddBranch("and")
		for _, child := range n.children {
			c.branch(sub, child)
		}
	case NodeOr:
		sub := tree.AddBranch("or")
		for _, child := range n.children {
			c.branch(sub, child)
		}
	case NodeNot:
		c.branch(tree.AddBranch("not"), n.children[0])
	default:
		var b strings.Builder
		c.write(&b, id, false)
		tree.AddNode(b.String())
	}
}

// MediaQuery is one query of a comma separated media query list.
type MediaQuery struct {
	Negated bool
	Only    bool
	// Type is the lower case media type, empty when omitted.
	Type      string
	Condition *Condition
}

// notAll is the query replacing malformed queries.
var notAll = MediaQuery{Negated: true, Type: "all"}

func (q MediaQuery) isNotAll() bool {
	return q.Negated && q.Type == "all" && q.Condition == nil
}

func (q MediaQuery) String() string {
	var chunks []string
	if q.Negated {
		chunks = append(chunks, "not")
	} else if q.Only {
		chunks = append(chunks, "only")
	}
	if q.Type != "" {
		chunks = append(chunks, q.Type)
	}
	if q.Condition != nil {
		if q.Type != "" {
			chunks = append(chunks, "and")
		}
		chunks = append(chunks, q.Condition.String())
	}
	return strings.Join(chunks, " ")
}

// QueryList is a media query list. An empty list matches all media.
type QueryList []MediaQuery

func (l QueryList) String() string {
	chunks := make([]string, len(l))
	for i, q := range l {
		chunks[i] = q.String()
	}
	return strings.Join(chunks, ", ")
}
