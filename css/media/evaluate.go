package media

import (
	"math"

	pa "github.com/benoitkugler/cascade/css/parser"
)

// FontMetrics are the sizes, in px, used to resolve font relative units.
type FontMetrics struct {
	Em, Rem, Ex, Ch float64
}

// Environment is the oracle queried by the live evaluation of media queries.
type Environment interface {
	// MediaType returns the lower case media type, like "screen" or "print".
	MediaType() string
	// FeatureValue returns the current value of the given (canonical) feature.
	FeatureValue(name string) (FeatureValue, bool)
	// MatchesFeature returns true if the discrete feature has the given value.
	MatchesFeature(name string, value FeatureValue) bool
	FontMetrics() FontMetrics
	// ViewportSize returns the viewport width and height, in px.
	ViewportSize() (width, height float64)
}

// SupportsChecker is the oracle used by `@supports` conditions.
type SupportsChecker interface {
	// SupportsDeclaration returns true if the declaration `name: value` is valid.
	SupportsDeclaration(name string, value []pa.Token) bool
	// SupportsSelector returns true if the selector is valid.
	SupportsSelector(selector []pa.Token) bool
}

// StaticEnvironment is an Environment with fixed values.
type StaticEnvironment struct {
	Type          string
	Width, Height float64 // viewport, in px
	// DeviceWidth and DeviceHeight default to Width and Height
	DeviceWidth, DeviceHeight float64
	Resolution                float64 // in dppx, default to 1
	Color                     int     // bits per color component
	ColorIndex                int
	Monochrome                int
	FontSize                  float64 // initial font size in px, default to 16
	RootFontSize              float64 // default to FontSize
	// Features stores additional discrete features, like
	// "prefers-color-scheme": "dark". Keys are lower case.
	Features map[string]string
}

var _ Environment = (*StaticEnvironment)(nil)

func (env *StaticEnvironment) MediaType() string {
	if env.Type == "" {
		return "screen"
	}
	return env.Type
}

func (env *StaticEnvironment) ViewportSize() (float64, float64) { return env.Width, env.Height }

func (env *StaticEnvironment) FontMetrics() FontMetrics {
	em := env.FontSize
	if em == 0 {
		em = 16
	}
	rem := env.RootFontSize
	if rem == 0 {
		rem = em
	}
	return FontMetrics{Em: em, Rem: rem, Ex: em / 2, Ch: em / 2}
}

func (env *StaticEnvironment) deviceSize() (float64, float64) {
	w, h := env.DeviceWidth, env.DeviceHeight
	if w == 0 {
		w = env.Width
	}
	if h == 0 {
		h = env.Height
	}
	return w, h
}

func (env *StaticEnvironment) FeatureValue(name string) (FeatureValue, bool) {
	switch name {
	case "width":
		return Length(env.Width, "px"), true
	case "height":
		return Length(env.Height, "px"), true
	case "device-width":
		w, _ := env.deviceSize()
		return Length(w, "px"), true
	case "device-height":
		_, h := env.deviceSize()
		return Length(h, "px"), true
	case "aspect-ratio":
		return Ratio(env.Width, env.Height), true
	case "device-aspect-ratio":
		return Ratio(env.deviceSize()), true
	case "resolution":
		if env.Resolution == 0 {
			return Resolution(1), true
		}
		return Resolution(env.Resolution), true
	case "color":
		return Number(float64(env.Color)), true
	case "color-index":
		return Number(float64(env.ColorIndex)), true
	case "monochrome":
		return Number(float64(env.Monochrome)), true
	case "orientation":
		if env.Height >= env.Width {
			return Keyword("portrait"), true
		}
		return Keyword("landscape"), true
	case "grid":
		return Number(0), true
	}
	raw, ok := env.Features[name]
	if !ok {
		return FeatureValue{}, false
	}
	return parseValue(pa.RemoveWhitespace(pa.TokenizeString(raw)))
}

func (env *StaticEnvironment) MatchesFeature(name string, value FeatureValue) bool {
	actual, ok := env.FeatureValue(name)
	if !ok {
		return false
	}
	if IsRangeFeature(name) {
		return compareValues(env, actual, Eq, value)
	}
	return actual.String() == value.String()
}

// Matches returns true if one of the queries matches env.
// An empty list always matches.
func (l QueryList) Matches(env Environment) bool {
	if len(l) == 0 {
		return true
	}
	for _, q := range l {
		if q.Matches(env) {
			return true
		}
	}
	return false
}

// Matches evaluates the query against env.
func (q MediaQuery) Matches(env Environment) bool {
	ok := q.Type == "" || q.Type == "all" || q.Type == env.MediaType()
	if ok && q.Condition != nil {
		ok = q.Condition.eval(q.Condition.root, env, nil) == triTrue
	}
	return ok != q.Negated
}

// Matches evaluates a media condition against env.
// Unknown tests make the result unknown, which is not a match.
func (c *Condition) Matches(env Environment) bool {
	return c.eval(c.root, env, nil) == triTrue
}

// Supports evaluates a feature query. Unknown tests are false.
func (c *Condition) Supports(checker SupportsChecker) bool {
	return c.eval(c.root, nil, checker) == triTrue
}

// Kleene logic
type tri uint8

const (
	triFalse tri = iota
	triTrue
	triUnknown
)

func triOf(b bool) tri {
	if b {
		return triTrue
	}
	return triFalse
}

func (c *Condition) eval(id int, env Environment, checker SupportsChecker) tri {
	n := c.nodes[id]
	switch n.kind {
	case NodeAnd:
		out := triTrue
		for _, child := range n.children {
			switch c.eval(child, env, checker) {
			case triFalse:
				return triFalse
			case triUnknown:
				out = triUnknown
			}
		}
		return out
	case NodeOr:
		out := triFalse
		for _, child := range n.children {
			switch c.eval(child, env, checker) {
			case triTrue:
				return triTrue
			case triUnknown:
				out = triUnknown
			}
		}
		return out
	case NodeNot:
		switch c.eval(n.children[0], env, checker) {
		case triTrue:
			return triFalse
		case triFalse:
			return triTrue
		}
		return triUnknown
	case NodeTrue:
		return triTrue
	case NodeFalse:
		return triFalse
	case NodePredicate:
		if env == nil {
			return triUnknown
		}
		return evalPredicate(n.pred, env)
	case NodeDeclaration:
		return triOf(checker != nil && checker.SupportsDeclaration(n.name, n.tokens))
	case NodeSelector:
		return triOf(checker != nil && checker.SupportsSelector(n.tokens))
	default: // NodeUnknown
		if checker != nil {
			return triFalse
		}
		return triUnknown
	}
}

func evalPredicate(p Predicate, env Environment) tri {
	switch p.Kind {
	case Boolean:
		actual, ok := env.FeatureValue(p.Feature)
		if !ok {
			return triFalse
		}
		if actual.Type == TIdent {
			return triOf(actual.Ident != "none")
		}
		f, _, ok := resolve(actual, env)
		return triOf(ok && f != 0)
	case Plain:
		return triOf(env.MatchesFeature(p.Feature, p.Value))
	}
	actual, ok := env.FeatureValue(p.Feature)
	if !ok {
		return triFalse
	}
	if p.Kind.isTwoSided() {
		op1, op2 := p.Kind.sides()
		// v1 op1 feature op2 v2
		return triOf(compareValues(env, p.Value, op1, actual) && compareValues(env, actual, op2, p.Value2))
	}
	return triOf(compareValues(env, actual, p.Kind, p.Value))
}

const epsilon = 1e-9

// compareValues returns `a op b`, or false if a and b are not comparable.
func compareValues(env Environment, a FeatureValue, op RangeKind, b FeatureValue) bool {
	fa, ca, ok1 := resolve(a, env)
	fb, cb, ok2 := resolve(b, env)
	if !ok1 || !ok2 || ca != cb {
		return false
	}
	return compareFloats(fa, op, fb)
}

func compareFloats(a float64, op RangeKind, b float64) bool {
	eq := a == b || math.Abs(a-b) < epsilon
	switch op {
	case Eq:
		return eq
	case Lt:
		return a < b && !eq
	case Le:
		return a < b || eq
	case Gt:
		return a > b && !eq
	case Ge:
		return a > b || eq
	}
	return false
}
