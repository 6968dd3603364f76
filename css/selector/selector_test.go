package selector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestParse(t *testing.T) {
	l, err := ParseString("div.a > p + #b ~ [href], ul li::before")
	require.NoError(t, err)
	require.Len(t, l, 2)
	assert.Equal(t, []Combinator{Child, NextSibling, SubsequentSibling}, l[0].Combinators)
	assert.Equal(t, "div.a > p + #b ~ [href]", l[0].String())
	assert.Equal(t, "before", l[1].PseudoElement())
	assert.Equal(t, "ul li::before", l[1].String())

	l, err = ParseString("a:not(.x, #y):nth-child(2n+1 of .z)")
	require.NoError(t, err)
	nth := l[0].Compounds[0][2]
	assert.Equal(t, Nth, nth.Kind)
	assert.Equal(t, [2]int{2, 1}, nth.AB)
	require.Len(t, nth.List, 1)

	assert.Equal(t, "first-line", MustParse("p:first-line")[0].PseudoElement())

	_, err = ParseString("a::before:hover, p:first-line:focus")
	assert.NoError(t, err)

	l, err = ParseString("div:has(> p, + .x)")
	require.NoError(t, err)
	has := l[0].Compounds[0][1]
	assert.Equal(t, Child, has.List[0].Leading)
	assert.Equal(t, NextSibling, has.List[1].Leading)
	assert.Equal(t, "div:has(> p, + .x)", l[0].String())

	for _, invalid := range []string{
		"", "a >", "a,", "..b", "a::before.c", "a::before#x", "a::before[x]",
		"a::before span", "a::before:first-child", ":nth-child(foo)", "#1",
	} {
		_, err := ParseString(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestSpecificity(t *testing.T) {
	for _, test := range []struct {
		selector string
		exp      Specificity
	}{
		{"*", Specificity{0, 0, 0}},
		{"li", Specificity{0, 0, 1}},
		{"ul li", Specificity{0, 0, 2}},
		{"ul ol+li", Specificity{0, 0, 3}},
		{"h1 + *[rel=up]", Specificity{0, 1, 1}},
		{"ul ol li.red", Specificity{0, 1, 3}},
		{"li.red.level", Specificity{0, 2, 1}},
		{"#x34y", Specificity{1, 0, 0}},
		{"#s12:not(FOO)", Specificity{1, 0, 1}},
		{":root", Specificity{0, 0, 1}},
		{":lang(fr)", Specificity{0, 1, 0}},
		{"p::before", Specificity{0, 0, 2}},
		{"p:before", Specificity{0, 0, 2}},
		{":where(#a, .b) p", Specificity{0, 0, 1}},
		{":is(#a, .b) p", Specificity{1, 0, 1}},
		{":not(#a, .b)", Specificity{1, 0, 0}},
		{":nth-child(2n of .a, #b)", Specificity{1, 1, 0}},
		{"a:hover", Specificity{0, 1, 1}},
		{"#id .cls", Specificity{1, 1, 0}},
		{"div.cls", Specificity{0, 1, 1}},
	} {
		l := MustParse(test.selector)
		assert.Equal(t, test.exp, l[0].Specificity(), test.selector)
	}
}

func TestCompare(t *testing.T) {
	assert.True(t, Specificity{1, 0, 0}.Compare(Specificity{0, 9, 9}) > 0)
	assert.True(t, Specificity{0, 1, 1}.Less(Specificity{1, 1, 0}))
	assert.Equal(t, 0, Specificity{0, 2, 0}.Compare(Specificity{0, 2, 0}))
	assert.Equal(t, -2, Specificity{0, 1, 3}.Compare(Specificity{0, 3, 0}))
}

func TestExtraIDMonotonic(t *testing.T) {
	for _, base := range []string{"div", "div.a.b.c", "ul li a[href]:hover", "*", ".x .y .z .w"} {
		without := MustParse(base)[0].Specificity()
		with := MustParse(base + "#extra")[0].Specificity()
		assert.True(t, without.Less(with), base)
	}
}

// fixedMatcher always reports the same alternative
type fixedMatcher int

func (f fixedMatcher) Match(List, *html.Node) int { return int(f) }

func TestArgumentSpecificity(t *testing.T) {
	c := MustParse(":is(#a, .b, c)")[0]
	el := &html.Node{Type: html.ElementNode, Data: "c"}

	assert.Equal(t, Specificity{1, 0, 0}, c.SpecificityFor(fixedMatcher(0), el))
	assert.Equal(t, Specificity{0, 1, 0}, c.SpecificityFor(fixedMatcher(1), el))
	assert.Equal(t, Specificity{0, 0, 1}, c.SpecificityFor(fixedMatcher(2), el))
	assert.Equal(t, Specificity{1, 0, 0}, c.SpecificityFor(fixedMatcher(-1), el))

	assert.Panics(t, func() { c.SpecificityFor(fixedMatcher(3), el) })
}

const doc = `<html><body>
<div id="id"><p class="cls" id="target">text</p></div>
<ul><li class="x" id="l1">a</li><li id="l2">b</li></ul>
</body></html>`

func findByID(root *html.Node, id string) *html.Node {
	if root.Type == html.ElementNode {
		for _, attr := range root.Attr {
			if attr.Key == "id" && attr.Val == id {
				return root
			}
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := findByID(c, id); n != nil {
			return n
		}
	}
	return nil
}

func TestCascadiaMatcher(t *testing.T) {
	root, err := html.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	target := findByID(root, "target")
	require.NotNil(t, target)

	m := NewCascadiaMatcher()
	l := MustParse("span, div.cls, #id .cls, p")
	assert.Equal(t, 2, m.Match(l, target))

	ok, sp := l.MatchWithSpecificity(m, target)
	assert.True(t, ok)
	assert.Equal(t, Specificity{1, 1, 0}, sp)

	ok, _ = MustParse("li").MatchWithSpecificity(m, target)
	assert.False(t, ok)

	// pseudo-elements are ignored by the structural match
	assert.True(t, m.Matches(MustParse("p::after")[0], target))
}

func TestArgumentSelectors(t *testing.T) {
	root, err := html.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	target, l1, l2 := findByID(root, "target"), findByID(root, "l1"), findByID(root, "l2")
	div := findByID(root, "id")

	m := NewCascadiaMatcher()
	for _, test := range []struct {
		selector string
		element  *html.Node
		matches  bool
		expected Specificity
	}{
		{"p:is(#target, .cls)", target, true, Specificity{1, 0, 1}},
		{"p:is(.cls, #other)", target, true, Specificity{0, 1, 1}},
		{"p:is(#other, span)", target, false, Specificity{}},
		{":nth-child(1 of .cls)", target, true, Specificity{0, 2, 0}},
		{":nth-child(2 of .cls)", target, false, Specificity{}},
		{":where(#id) p", target, true, Specificity{0, 0, 1}},
		{"p:not(#other, span)", target, true, Specificity{1, 0, 1}},
		{"p:not(.cls)", target, false, Specificity{}},
		{"div:has(> p.cls)", div, true, Specificity{0, 1, 2}},
		{"ul:has(> p)", div, false, Specificity{}},
		{"li:has(+ li)", l1, true, Specificity{0, 0, 2}},
		{"li:has(+ li)", l2, false, Specificity{}},
		{"li:nth-child(2)", l2, true, Specificity{0, 1, 1}},
		{"li.x:nth-child(2)", l2, false, Specificity{}},
		{"li:nth-child(1 of :not(.x))", l2, true, Specificity{0, 2, 1}},
		{"li:nth-last-child(1)", l2, true, Specificity{0, 1, 1}},
		{"li:nth-of-type(odd)", l1, true, Specificity{0, 1, 1}},
		{"ul > li + li", l2, true, Specificity{0, 0, 3}},
		{"ul li ~ li", l1, false, Specificity{}},
		{"[id=target]:first-child", target, true, Specificity{0, 2, 0}},
		{"body div > p::before", target, true, Specificity{0, 0, 4}},
	} {
		ok, sp := MustParse(test.selector).MatchWithSpecificity(m, test.element)
		assert.Equal(t, test.matches, ok, test.selector)
		assert.Equal(t, test.expected, sp, test.selector)
	}
}
