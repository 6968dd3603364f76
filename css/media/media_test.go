package media

import (
	"testing"

	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalForm(t *testing.T) {
	for _, test := range []struct {
		input, expected string
	}{
		{"(min-width:500px)", "(width>=500px)"},
		{"(max-width: 50em)", "(width<=50em)"},
		{"(MIN-WIDTH: 500PX)", "(width>=500px)"},
		{"screen and (color)", "screen and (color)"},
		{"only screen", "only screen"},
		{"not screen and (color)", "not screen and (color)"},
		{"not (color)", "not (color)"},
		{"(400px <= width < 700px)", "(400px<=width<700px)"},
		{"(500px < width)", "(width>500px)"},
		{"(width = 100px)", "(width=100px)"},
		{"(orientation: landscape)", "(orientation:landscape)"},
		{"(min-aspect-ratio: 16/9)", "(aspect-ratio>=16/9)"},
		{"((width > 1px) or (height > 1px)) and (color)", "((width>1px) or (height>1px)) and (color)"},
		{"print, (width = 100px)", "print, (width=100px)"},
		{"(min-orientation: portrait)", "(min-orientation: portrait)"},
		{"screen and (color) or (grid)", "not all"},
		{"(width > 1px) and (height > 1px) or (color)", "not all"},
		{"and", "not all"},
		{"screen, and, print", "screen, not all, print"},
	} {
		assert.Equal(t, test.expected, ParseQueryListString(test.input).String(), test.input)
	}
}

func TestConditionArena(t *testing.T) {
	q := ParseQueryListString("(width > 1px) and (height > 1px)")
	require.Len(t, q, 1)
	c := q[0].Condition
	require.NotNil(t, c)

	assert.Equal(t, NodeAnd, c.Kind(c.Root()))
	assert.Equal(t, -1, c.Parent(c.Root()))
	for _, child := range c.Children(c.Root()) {
		assert.Equal(t, c.Root(), c.Parent(child))
		assert.Equal(t, NodePredicate, c.Kind(child))
	}
	assert.Equal(t, Predicate{Feature: "width", Kind: Gt, Value: Length(1, "px")}, c.Predicate(c.Children(c.Root())[0]))

	tree := c.Tree()
	assert.Contains(t, tree, "and")
	assert.Contains(t, tree, "(height>1px)", tree)
}

func TestMatches(t *testing.T) {
	env := &StaticEnvironment{
		Type: "screen", Width: 800, Height: 600, Color: 8,
		Features: map[string]string{"prefers-color-scheme": "dark"},
	}
	for _, test := range []struct {
		query    string
		expected bool
	}{
		{"", true},
		{"all", true},
		{"screen", true},
		{"print", false},
		{"not print", true},
		{"(min-width: 500px)", true},
		{"(max-width: 500px)", false},
		{"(width = 800px)", true},
		{"screen and (orientation: landscape)", true},
		{"(orientation: portrait)", false},
		{"(400px <= width < 800px)", false},
		{"(400px <= width <= 800px)", true},
		{"(900px > width > 700px)", true},
		{"(width > 40em)", true},
		{"(width > 60em)", false},
		{"(width < calc(100px + 50em))", true},
		{"(width < max(10px, 2in))", false},
		{"(aspect-ratio: 4/3)", true},
		{"(min-aspect-ratio: 16/9)", false},
		{"(min-resolution: 2dppx)", false},
		{"(resolution: 96dpi)", true},
		{"(color)", true},
		{"(monochrome)", false},
		{"not (monochrome)", true},
		{"(color) and (monochrome)", false},
		{"(color) or (monochrome)", true},
		{"(prefers-color-scheme: dark)", true},
		{"(prefers-color-scheme: light)", false},
		// type mismatch: unknown, even when negated
		{"not (width: foo)", false},
		{"(width: foo) or (color)", true},
		// a malformed query does not invalidate its siblings
		{"screen and (color) or (grid), print", false},
		{"screen and (color) or (grid), (min-width: 100px)", true},
	} {
		assert.Equal(t, test.expected, ParseQueryListString(test.query).Matches(env), test.query)
	}
}

type fakeChecker struct{}

func (fakeChecker) SupportsDeclaration(name string, value []pa.Token) bool {
	return name == "display" && pa.SerializeCompact(value) == "grid"
}

func (fakeChecker) SupportsSelector(selector []pa.Token) bool {
	return len(pa.RemoveWhitespace(selector)) != 0
}

func TestSupports(t *testing.T) {
	for _, test := range []struct {
		condition string
		expected  bool
	}{
		{"(display: grid)", true},
		{"(DISPLAY: grid)", true},
		{"(display: flexbox)", false},
		{"not (display: flexbox)", true},
		{"(display: grid) and (not (display: inline-grid))", true},
		{"(display: flexbox) or (display: grid)", true},
		{"selector(a > b)", true},
		{"selector()", false},
		{"foo(bar)", false},
		{"not foo(bar)", true},
		{"(display: grid) or", false},
		{"(display: grid) and (color: red) or (x: y)", false},
	} {
		c := ParseSupportsString(test.condition)
		assert.Equal(t, test.expected, c.Supports(fakeChecker{}), test.condition)
	}
}

func TestImplies(t *testing.T) {
	for _, test := range []struct {
		a, b     string
		expected bool
	}{
		{"(min-width:500px)", "(width>=300px)", true},
		{"(width>=300px)", "(min-width:500px)", false},
		{"screen and (min-width: 500px)", "screen", true},
		{"screen", "screen and (min-width: 500px)", false},
		{"screen", "all", true},
		{"print", "screen", false},
		{"(width > 500px)", "not (width <= 400px)", true},
		{"not (width < 5px)", "(width >= 5px)", true},
		{"(width >= 5px)", "not (width < 5px)", true},
		{"(400px <= width <= 600px)", "(width >= 300px) and (width < 700px)", true},
		{"(400px <= width <= 700px)", "(width >= 300px) and (width < 700px)", false},
		{"(width >= 500px) and (height >= 200px)", "(height > 100px)", true},
		{"(width >= 500px)", "(height >= 100px)", false},
		{"(width >= 500px)", "(width < 100px) or (width >= 200px)", true},
		{"(width >= 100px)", "(width < 300px) or (width >= 200px)", true},
		{"(width >= 100px)", "(width < 200px) or (width >= 300px)", false},
		{"(color)", "(color) or (monochrome)", true},
		{"(min-width: 500px)", "(width >= 0px)", true},
		{"(width >= 1in)", "(width > 95px)", true},
		{"(width >= calc(100px + 200px))", "(width > 250px)", true},
		{"(width >= calc(100px + 200px))", "(width > 350px)", false},
		{"(width <= max(1in, 50px))", "(width < 100px)", true},
		{"(width >= calc(1em + 10px))", "(width > 5px)", false},
		{"not all", "print", true},
		{"(orientation: portrait)", "(orientation: portrait)", true},
		{"(orientation: portrait)", "(orientation: landscape)", false},
		{"(width >= 30em)", "(width >= 30em)", true},
		{"(width >= 30em)", "(width >= 20em)", false},
		{"screen, print", "all", true},
		{"screen, print", "screen", false},
		{"screen", "print, screen", true},
		{"", "screen", false},
		{"screen", "", true},
	} {
		a, b := ParseQueryListString(test.a), ParseQueryListString(test.b)
		assert.Equal(t, test.expected, a.Implies(b), "%s => %s", test.a, test.b)
	}
}

func TestImpliesProperties(t *testing.T) {
	queries := []string{
		"(width>=500px)",
		"(width>=300px)",
		"(width<500px)",
		"(400px<width<600px)",
		"screen",
		"print",
		"screen and (color)",
		"(orientation:portrait)",
		"not (color)",
		"(color) or (monochrome)",
		"not screen and (color)",
		"(width >= 30em)",
	}
	for i, a := range queries {
		qa := ParseQueryListString(a)
		assert.True(t, qa.Implies(qa), a)
		for j, b := range queries {
			if i == j {
				continue
			}
			qb := ParseQueryListString(b)
			assert.False(t, qa.Implies(qb) && qb.Implies(qa), "%s <=> %s", a, b)
		}
	}
}

func TestNormalized(t *testing.T) {
	a := ParseQueryListString("(min-width: 500px) and (width >= 400px)")[0].Condition
	b := ParseQueryListString("(width >= 500px)")[0].Condition
	assert.Equal(t, a.Normalized(), b.Normalized())
	assert.True(t, a.Implies(b))
	assert.True(t, b.Implies(a))

	c := ParseQueryListString("(width >= 500px) and (width < 100px)")[0].Condition
	assert.Equal(t, "false", c.Normalized())

	d := ParseQueryListString("(width >= 500px) or (width < 600px)")[0].Condition
	assert.Equal(t, "true", d.Normalized())
}
