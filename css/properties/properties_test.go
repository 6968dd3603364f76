package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	bg, ok := r.Shorthand("background")
	require.True(t, ok)
	assert.True(t, bg.Layered)
	assert.Len(t, bg.Longhands, 8)
	assert.Equal(t, 8, bg.MinLonghands)

	assert.Equal(t, "0% 0%", r.Initial("background-position").String())
	assert.True(t, r.IsInherited("font-style"))
	assert.False(t, r.IsInherited("margin-top"))
	assert.True(t, r.IsInherited("--custom"))
	assert.True(t, r.IsKnown("--custom"))
	assert.False(t, r.IsKnown("marging"))

	assert.ElementsMatch(t, []string{"border-top", "border-width", "border"}, r.Owners("border-top-width"))
	assert.Equal(t, "font", r.Shorthands()[0].Name)
}

func TestRegistryFixture(t *testing.T) {
	_, err := NewRegistry([]LonghandDef{{Name: "a", Initial: "0"}}, []Shorthand{{Name: "ab", Longhands: []string{"a", "b"}}})
	assert.Error(t, err)

	_, err = NewRegistry([]LonghandDef{{Name: "a"}, {Name: "a"}}, nil)
	assert.Error(t, err)

	r, err := NewRegistry([]LonghandDef{{Name: "a", Initial: "0"}, {Name: "b", Initial: "1"}},
		[]Shorthand{{Name: "ab", Longhands: []string{"a", "b"}}})
	require.NoError(t, err)
	s, _ := r.Shorthand("ab")
	assert.Equal(t, 2, s.MinLonghands)
}

func TestValue(t *testing.T) {
	v := ParseValue(" INHERIT ")
	assert.True(t, v.IsInherit())
	assert.Equal(t, KindWide, v.Kind())
	assert.Equal(t, "inherit", v.String())

	v = ParseValue("url(a.png) , none,linear-gradient(red, blue)")
	assert.Equal(t, KindTokens, v.Kind())
	assert.Equal(t, "url(a.png), none, linear-gradient(red, blue)", v.String())
	layers := v.Layers()
	require.Len(t, layers, 3)
	assert.True(t, layers[1].IsKeyword("none"))
	assert.True(t, JoinLayers(layers).Equal(v))

	v = ParseValue(`red\9`)
	assert.True(t, v.IsCompat())
	assert.Equal(t, KindTokens, v.Kind())

	p := PendingValue("margin", ParseValue("var(--x) 1px").Tokens())
	assert.Equal(t, KindPending, p.Kind())
	assert.Equal(t, "margin", p.PendingShorthand())
	assert.False(t, p.Equal(ParseValue("var(--x) 1px")))

	sub := ParseValue("1px").AsSubproperty()
	assert.True(t, sub.IsSubproperty())
	assert.True(t, sub.Equal(ParseValue("1px")))
	assert.Equal(t, "bold", ParseValue("BOLD").Keyword())
	assert.True(t, ParseValue("BOLD").EqualFold(ParseValue("bold")))
}
