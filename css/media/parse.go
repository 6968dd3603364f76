package media

import (
	"strings"

	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/utils"
)

// features compared with ranges, with the value type they accept
var rangeFeatures = map[string]ValueType{
	"width":               TLength,
	"height":              TLength,
	"device-width":        TLength,
	"device-height":       TLength,
	"aspect-ratio":        TRatio,
	"device-aspect-ratio": TRatio,
	"resolution":          TResolution,
	"color":               TNumber,
	"color-index":         TNumber,
	"monochrome":          TNumber,
}

// IsRangeFeature returns true for features accepting range comparisons
// (and min-/max- prefixes).
func IsRangeFeature(name string) bool {
	_, ok := rangeFeatures[name]
	return ok
}

// reserved identifiers which can't be media types
var reservedTypes = utils.NewSet("and", "or", "not", "only", "layer")

// ParseQueryListString tokenizes and parses a media query list.
func ParseQueryListString(s string) QueryList {
	return ParseQueryList(pa.TokenizeString(s))
}

// ParseQueryList parses a comma separated media query list.
// Malformed queries are replaced by `not all`, without affecting
// their siblings. An empty input returns an empty list, matching all media.
func ParseQueryList(tokens []pa.Token) QueryList {
	tokens = pa.RemoveWhitespace(tokens)
	if len(tokens) == 0 {
		return nil
	}
	parts := pa.SplitOnComma(tokens)
	out := make(QueryList, len(parts))
	for i, part := range parts {
		q, ok := parseQuery(part)
		if !ok {
			q = notAll
		}
		out[i] = q
	}
	return out
}

func parseQuery(tokens []pa.Token) (MediaQuery, bool) {
	if len(tokens) == 0 {
		return MediaQuery{}, false
	}
	var q MediaQuery
	first, isIdent := tokens[0].(pa.Ident)
	if !isIdent {
		// <media-condition>
		cond, ok := parseCondition(tokens, mediaLeaf, true)
		q.Condition = cond
		return q, ok
	}
	keyword := first.Lower()
	if keyword == "not" {
		if len(tokens) > 1 && !pa.IsIdent(tokens[1], "") {
			// not (feature)
			cond, ok := parseCondition(tokens, mediaLeaf, true)
			q.Condition = cond
			return q, ok
		}
		q.Negated = true
		tokens = tokens[1:]
	} else if keyword == "only" {
		q.Only = true
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return q, false
	}
	mediaType, ok := tokens[0].(pa.Ident)
	if !ok || reservedTypes.Has(mediaType.Lower()) {
		return q, false
	}
	q.Type = mediaType.Lower()
	tokens = tokens[1:]
	if len(tokens) == 0 {
		return q, true
	}
	if !pa.IsIdent(tokens[0], "and") || len(tokens) == 1 {
		return q, false
	}
	cond, ok := parseCondition(tokens[1:], mediaLeaf, false)
	q.Condition = cond
	return q, ok
}

// ParseSupportsString tokenizes and parses a feature query.
func ParseSupportsString(s string) *Condition {
	return ParseSupports(pa.TokenizeString(s))
}

// ParseSupports parses the prelude of a `@supports` rule.
// A malformed prelude returns a condition which never matches.
func ParseSupports(tokens []pa.Token) *Condition {
	tokens = pa.RemoveWhitespace(tokens)
	cond, ok := parseCondition(tokens, supportsLeaf, true)
	if !ok {
		cond = &Condition{}
		cond.root = cond.add(node{kind: NodeUnknown, tokens: tokens})
	}
	return cond
}

// leafParser builds the node of an atomic test, found
// inside a parentheses block (or as a function for @supports).
type leafParser func(c *Condition, t pa.Token) int

type conditionParser struct {
	cond *Condition
	leaf leafParser
}

// parseCondition parses `not <in-parens>` or a flat chain
// of <in-parens> joined by `and`, or (if allowOr is true) by `or`.
// tokens must not contain whitespace.
func parseCondition(tokens []pa.Token, leaf leafParser, allowOr bool) (*Condition, bool) {
	p := conditionParser{cond: &Condition{}, leaf: leaf}
	root, ok := p.condition(tokens, allowOr)
	if !ok {
		return nil, false
	}
	p.cond.root = root
	return p.cond, true
}

func (p conditionParser) condition(tokens []pa.Token, allowOr bool) (int, bool) {
	if len(tokens) == 0 {
		return 0, false
	}
	if pa.IsIdent(tokens[0], "not") {
		if len(tokens) != 2 {
			return 0, false
		}
		inner, ok := p.inParens(tokens[1])
		if !ok {
			return 0, false
		}
		return p.cond.addParent(NodeNot, inner), true
	}

	var (
		children []int
		operator string
	)
	for i, token := range tokens {
		if i%2 == 1 {
			kw, ok := token.(pa.Ident)
			if !ok {
				return 0, false
			}
			op := kw.Lower()
			if op != "and" && (op != "or" || !allowOr) {
				return 0, false
			}
			if operator != "" && operator != op {
				// mixing and/or without parentheses
				return 0, false
			}
			operator = op
			continue
		}
		child, ok := p.inParens(token)
		if !ok {
			return 0, false
		}
		children = append(children, child)
	}
	if len(tokens)%2 == 0 {
		// trailing operator
		return 0, false
	}
	if len(children) == 1 {
		return children[0], true
	}
	kind := NodeAnd
	if operator == "or" {
		kind = NodeOr
	}
	return p.cond.addParent(kind, children...), true
}

// inParens parses a nested condition or delegates to the leaf parser.
// It only fails for tokens which can't start an <in-parens> production.
func (p conditionParser) inParens(t pa.Token) (int, bool) {
	switch t := t.(type) {
	case pa.ParenthesesBlock:
		content := pa.RemoveWhitespace(t.Content)
		if len(content) > 0 {
			if _, isBlock := content[0].(pa.ParenthesesBlock); isBlock || pa.IsIdent(content[0], "not") {
				if id, ok := p.condition(content, true); ok {
					return id, true
				}
				return p.cond.add(node{kind: NodeUnknown, tokens: t.Content}), true
			}
		}
		return p.leaf(p.cond, t), true
	case pa.FunctionBlock:
		return p.leaf(p.cond, t), true
	}
	return 0, false
}

func unknownNode(c *Condition, t pa.Token) int {
	var content []pa.Token
	switch t := t.(type) {
	case pa.ParenthesesBlock:
		content = t.Content
	default:
		content = []pa.Token{t}
	}
	return c.add(node{kind: NodeUnknown, tokens: content})
}

func mediaLeaf(c *Condition, t pa.Token) int {
	block, ok := t.(pa.ParenthesesBlock)
	if !ok {
		return unknownNode(c, t)
	}
	pred, ok := parseFeature(pa.RemoveWhitespace(block.Content))
	if !ok {
		return unknownNode(c, t)
	}
	return c.add(node{kind: NodePredicate, pred: pred})
}

func supportsLeaf(c *Condition, t pa.Token) int {
	switch t := t.(type) {
	case pa.FunctionBlock:
		if t.LowerName() == "selector" {
			return c.add(node{kind: NodeSelector, tokens: t.Arguments})
		}
	case pa.ParenthesesBlock:
		it := pa.NewIter(t.Content)
		name, isIdent := it.NextSignificant().(pa.Ident)
		if isIdent && pa.IsLiteral(it.NextSignificant(), ":") {
			value := pa.RemoveWhitespace(it.Rest())
			if len(value) > 0 {
				lowerName := name.Value
				if !strings.HasPrefix(lowerName, "--") {
					lowerName = name.Lower()
				}
				return c.add(node{kind: NodeDeclaration, name: lowerName, tokens: value})
			}
		}
	}
	return unknownNode(c, t)
}

// comparison operators, as sequences of delimiters
func parseOperator(tokens []pa.Token, i int) (RangeKind, int) {
	lit, ok := tokens[i].(pa.Literal)
	if !ok {
		return 0, 0
	}
	followedByEq := i+1 < len(tokens) && pa.IsLiteral(tokens[i+1], "=")
	switch lit.Value {
	case "=":
		return Eq, 1
	case "<":
		if followedByEq {
			return Le, 2
		}
		return Lt, 1
	case ">":
		if followedByEq {
			return Ge, 2
		}
		return Gt, 1
	case "<=":
		return Le, 1
	case ">=":
		return Ge, 1
	}
	return 0, 0
}

// flip returns the kind of `f op v` given `v op f`.
func (k RangeKind) flip() RangeKind {
	switch k {
	case Lt:
		return Gt
	case Le:
		return Ge
	case Gt:
		return Lt
	case Ge:
		return Le
	}
	return k
}

// parseFeature parses the content of a media feature block,
// returning the canonical predicate.
func parseFeature(tokens []pa.Token) (Predicate, bool) {
	if len(tokens) == 0 {
		return Predicate{}, false
	}
	// (feature)
	if len(tokens) == 1 {
		name, ok := tokens[0].(pa.Ident)
		if !ok {
			return Predicate{}, false
		}
		feature := name.Lower()
		if strings.HasPrefix(feature, "min-") || strings.HasPrefix(feature, "max-") {
			return Predicate{}, false
		}
		return Predicate{Feature: feature, Kind: Boolean}, true
	}

	// (feature: value)
	if name, ok := tokens[0].(pa.Ident); ok && pa.IsLiteral(tokens[1], ":") {
		feature, kind := name.Lower(), Plain
		if base := strings.TrimPrefix(feature, "min-"); base != feature && IsRangeFeature(base) {
			feature, kind = base, Ge
		} else if base := strings.TrimPrefix(feature, "max-"); base != feature && IsRangeFeature(base) {
			feature, kind = base, Le
		} else if IsRangeFeature(feature) {
			kind = Eq
		} else if strings.HasPrefix(feature, "min-") || strings.HasPrefix(feature, "max-") {
			return Predicate{}, false
		}
		value, ok := parseFeatureValue(feature, tokens[2:])
		if !ok {
			return Predicate{}, false
		}
		return Predicate{Feature: feature, Kind: kind, Value: value}, true
	}

	// range syntax: split on comparison operators
	var (
		segments [][]pa.Token
		ops      []RangeKind
		start    int
	)
	for i := 0; i < len(tokens); {
		op, n := parseOperator(tokens, i)
		if n == 0 {
			i++
			continue
		}
		segments = append(segments, tokens[start:i])
		ops = append(ops, op)
		i += n
		start = i
	}
	segments = append(segments, tokens[start:])

	featureName := func(segment []pa.Token) (string, bool) {
		if len(segment) != 1 {
			return "", false
		}
		name, ok := segment[0].(pa.Ident)
		if !ok || !IsRangeFeature(name.Lower()) {
			return "", false
		}
		return name.Lower(), true
	}

	switch len(ops) {
	case 1:
		if feature, ok := featureName(segments[0]); ok {
			value, ok := parseFeatureValue(feature, segments[1])
			return Predicate{Feature: feature, Kind: ops[0], Value: value}, ok
		}
		if feature, ok := featureName(segments[1]); ok {
			value, ok := parseFeatureValue(feature, segments[0])
			return Predicate{Feature: feature, Kind: ops[0].flip(), Value: value}, ok
		}
	case 2:
		feature, ok := featureName(segments[1])
		if !ok {
			return Predicate{}, false
		}
		kind, ok := twoSided(ops[0], ops[1])
		if !ok {
			return Predicate{}, false
		}
		v1, ok1 := parseFeatureValue(feature, segments[0])
		v2, ok2 := parseFeatureValue(feature, segments[2])
		if !ok1 || !ok2 {
			return Predicate{}, false
		}
		return Predicate{Feature: feature, Kind: kind, Value: v1, Value2: v2}, true
	}
	return Predicate{}, false
}

// parseFeatureValue parses and type checks the value of feature.
func parseFeatureValue(feature string, tokens []pa.Token) (FeatureValue, bool) {
	value, ok := parseValue(tokens)
	if !ok {
		return value, false
	}
	expected, isRange := rangeFeatures[feature]
	if !isRange {
		// discrete features accept keywords and plain numbers
		return value, value.Type == TIdent || value.Type == TNumber
	}
	switch expected {
	case TLength:
		if value.Type == TNumber && value.Num == 0 {
			return Length(0, "px"), true
		}
		return value, value.Type == TLength || value.Type == TCalc
	case TRatio:
		if value.Type == TNumber && value.Num >= 0 {
			return Ratio(value.Num, 1), true
		}
		return value, value.Type == TRatio
	case TResolution:
		if value.Type == TIdent && value.Ident == "infinite" {
			return value, true
		}
		return value, value.Type == TResolution || value.Type == TCalc
	case TNumber:
		return value, value.Type == TNumber && value.Num == float64(int(value.Num)) && value.Num >= 0
	}
	return value, false
}
