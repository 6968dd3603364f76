package validation

import (
	"errors"
	"testing"

	pa "github.com/benoitkugler/cascade/css/parser"
	pr "github.com/benoitkugler/cascade/css/properties"
	"github.com/benoitkugler/cascade/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expandToStrings(t *testing.T, name, value string) map[string]string {
	t.Helper()
	out, err := NewDecomposer(nil, nil).DecomposeString(name, value)
	require.NoError(t, err, "%s: %s", name, value)
	m := make(map[string]string, len(out))
	for k, v := range out {
		m[k] = v.String()
	}
	return m
}

func expectShorthandError(t *testing.T, name, value string, kind ErrorKind) *ShorthandError {
	t.Helper()
	_, err := NewDecomposer(nil, nil).DecomposeString(name, value)
	var se *ShorthandError
	require.True(t, errors.As(err, &se), "%s: %s -> %v", name, value, err)
	assert.Equal(t, kind, se.Kind, "%s: %s -> %v", name, value, err)
	return se
}

func TestEveryLonghandAssigned(t *testing.T) {
	d := NewDecomposer(nil, nil)
	for _, sh := range d.Registry().Shorthands() {
		assert.True(t, d.IsShorthand(sh.Name), sh.Name)
		out, err := d.DecomposeString(sh.Name, "inherit")
		require.NoError(t, err)
		assert.Len(t, out, len(sh.Longhands))
		for _, longhand := range sh.Longhands {
			assert.True(t, out[longhand].IsInherit(), longhand)
			assert.True(t, out[longhand].IsSubproperty(), longhand)
		}
	}
}

func TestFourSides(t *testing.T) {
	assert.Equal(t, map[string]string{
		"margin-top": "1px", "margin-right": "2px", "margin-bottom": "3px", "margin-left": "2px",
	}, expandToStrings(t, "margin", "1px 2px 3px"))
	assert.Equal(t, map[string]string{
		"padding-top": "10px", "padding-right": "5px", "padding-bottom": "10px", "padding-left": "5px",
	}, expandToStrings(t, "padding", "10px 5px"))
	assert.Equal(t, map[string]string{
		"border-top-color": "red", "border-right-color": "red", "border-bottom-color": "red", "border-left-color": "red",
	}, expandToStrings(t, "border-color", "red"))

	expectShorthandError(t, "margin", "1px 2px 3px 4px 5px", UnassignedValues)
	expectShorthandError(t, "padding", "-1px", WrongValueType)
	expectShorthandError(t, "border-style", "solid foo", UnknownIdentifier)
}

func TestBorderRadius(t *testing.T) {
	assert.Equal(t, map[string]string{
		"border-top-left-radius":     "1px 3px",
		"border-top-right-radius":    "2px 3px",
		"border-bottom-right-radius": "1px 3px",
		"border-bottom-left-radius":  "2px 3px",
	}, expandToStrings(t, "border-radius", "1px 2px / 3px"))
	assert.Equal(t, "4px", expandToStrings(t, "border-radius", "4px")["border-bottom-left-radius"])

	expectShorthandError(t, "border-radius", "1px / 2px / 3px", WrongValueType)
}

func TestBorder(t *testing.T) {
	out := expandToStrings(t, "border", "1px solid red")
	assert.Len(t, out, 17)
	for _, side := range []string{"top", "right", "bottom", "left"} {
		assert.Equal(t, "1px", out["border-"+side+"-width"])
		assert.Equal(t, "solid", out["border-"+side+"-style"])
		assert.Equal(t, "red", out["border-"+side+"-color"])
	}
	assert.Equal(t, "none", out["border-image-source"])
	assert.Equal(t, "stretch", out["border-image-repeat"])

	assert.Equal(t, map[string]string{
		"border-top-width": "medium", "border-top-style": "dashed", "border-top-color": "currentcolor",
	}, expandToStrings(t, "border-top", "dashed"))
	assert.Equal(t, "auto", expandToStrings(t, "outline", "auto")["outline-style"])

	expectShorthandError(t, "border", "1px solid red blue", UnassignedValues)
}

func TestFont(t *testing.T) {
	out := expandToStrings(t, "font", `italic bold 12px/1.5 "Helvetica Neue", sans-serif`)
	assert.Equal(t, "italic", out["font-style"])
	assert.Equal(t, "bold", out["font-weight"])
	assert.Equal(t, "12px", out["font-size"])
	assert.Equal(t, "1.5", out["line-height"])
	assert.Equal(t, `"Helvetica Neue", sans-serif`, out["font-family"])
	assert.Len(t, out, 18)
	registry := pr.Default()
	for _, name := range []string{"font-variant-caps", "font-variant-ligatures", "font-variant-position",
		"font-variant-numeric", "font-variant-alternates", "font-variant-east-asian",
		"font-kerning", "font-size-adjust", "font-stretch"} {
		assert.Equal(t, registry.Initial(name).String(), out[name], name)
	}

	out = expandToStrings(t, "font", "normal small-caps normal condensed 1em serif")
	assert.Equal(t, "small-caps", out["font-variant-caps"])
	assert.Equal(t, "condensed", out["font-stretch"])
	assert.Equal(t, "normal", out["font-weight"])
	assert.Equal(t, "serif", out["font-family"])

	expectShorthandError(t, "font", "italic bold", MissingRequiredLonghand)
	expectShorthandError(t, "font", "12px", MissingRequiredLonghand)
	expectShorthandError(t, "font", "12px/ serif", WrongValueType)
	expectShorthandError(t, "font", "caption serif", MissingRequiredLonghand)
	expectShorthandError(t, "font", "italic italic 12px serif", UnassignedValues)
}

func TestSystemFont(t *testing.T) {
	for _, kw := range []string{"caption", "icon", "menu", "message-box", "small-caption", "status-bar"} {
		out := expandToStrings(t, "font", kw)
		assert.Len(t, out, 18)
		for name, value := range out {
			assert.Equal(t, kw, value, name)
		}
	}
}

func TestFontVariant(t *testing.T) {
	out := expandToStrings(t, "font-variant", "small-caps oldstyle-nums no-common-ligatures")
	assert.Equal(t, "small-caps", out["font-variant-caps"])
	assert.Equal(t, "oldstyle-nums", out["font-variant-numeric"])
	assert.Equal(t, "no-common-ligatures", out["font-variant-ligatures"])
	assert.Equal(t, "normal", out["font-variant-position"])

	assert.Equal(t, "none", expandToStrings(t, "font-variant", "none")["font-variant-ligatures"])

	expectShorthandError(t, "font-variant", "lining-nums oldstyle-nums", UnassignedValues)
	expectShorthandError(t, "font-variant", "small-caps normal", UnknownIdentifier)
}

func TestBackgroundLayers(t *testing.T) {
	d := NewDecomposer(nil, nil)
	out, err := d.DecomposeString("background", "url(a.png) left top, url(b.png) center, url(c.png) 10px 20px")
	require.NoError(t, err)
	assert.Len(t, out, 8)
	for name, value := range out {
		assert.Len(t, value.Layers(), 3, name)
	}
	assert.Equal(t, "left top, center, 10px 20px", out["background-position"].String())
	assert.Equal(t, "transparent, transparent, transparent", out["background-color"].String())
	assert.Equal(t, "repeat, repeat, repeat", out["background-repeat"].String())
}

func TestBackground(t *testing.T) {
	out := expandToStrings(t, "background", "center / cover red")
	assert.Equal(t, "center", out["background-position"])
	assert.Equal(t, "cover", out["background-size"])
	assert.Equal(t, "red", out["background-color"])
	assert.Equal(t, "none", out["background-image"])

	out = expandToStrings(t, "background", "content-box no-repeat")
	assert.Equal(t, "content-box", out["background-origin"])
	assert.Equal(t, "content-box", out["background-clip"])
	assert.Equal(t, "no-repeat", out["background-repeat"])

	out = expandToStrings(t, "background", "padding-box border-box fixed repeat-x")
	assert.Equal(t, "padding-box", out["background-origin"])
	assert.Equal(t, "border-box", out["background-clip"])
	assert.Equal(t, "fixed", out["background-attachment"])
	assert.Equal(t, "repeat-x", out["background-repeat"])

	out = expandToStrings(t, "background", "left 10px top 15px")
	assert.Equal(t, "left 10px top 15px", out["background-position"])

	// color is only valid in the final layer
	expectShorthandError(t, "background", "red, url(a.png)", UnknownIdentifier)
	expectShorthandError(t, "background", "url(a.png),, none", AmbiguousLayerCount)
}

func TestBackgroundPosition(t *testing.T) {
	for _, test := range []struct {
		value string
		valid bool
	}{
		{"left", true},
		{"10px", true},
		{"left top", true},
		{"top left", true},
		{"10px top", true},
		{"top 10px", false},
		{"left right", false},
		{"left 10px top", true},
		{"center top 10px", true},
		{"left top 10px", true},
		{"center 10px top", false},
		{"left 10px top 15px", true},
		{"left 10px left 15px", false},
		{"10px left 15px top", false},
	} {
		assert.Equal(t, test.valid, isPosition(pa.RemoveWhitespace(pa.TokenizeString(test.value))), test.value)
	}
}

func TestVarFallbacks(t *testing.T) {
	d := NewDecomposer(nil, nil)

	// last chance assignment
	out, err := d.DecomposeString("border-top", "1px solid var(--c)")
	require.NoError(t, err)
	assert.Equal(t, "var(--c)", out["border-top-color"].String())
	assert.Equal(t, pr.KindTokens, out["border-top-color"].Kind())

	// pending substitution
	out, err = d.DecomposeString("margin", "var(--m) 2px")
	require.NoError(t, err)
	for _, name := range []string{"margin-top", "margin-right", "margin-bottom", "margin-left"} {
		assert.Equal(t, pr.KindPending, out[name].Kind())
		assert.Equal(t, "margin", out[name].PendingShorthand())
		assert.Equal(t, "var(--m) 2px", out[name].String())
	}
}

func TestTransitionBackPropagation(t *testing.T) {
	out := expandToStrings(t, "transition", "opacity 1s, all 2s ease-in 0.5s")
	assert.Equal(t, "opacity, all", out["transition-property"])
	assert.Equal(t, "1s, 2s", out["transition-duration"])
	assert.Equal(t, "ease-in, ease-in", out["transition-timing-function"])
	assert.Equal(t, "0.5s, 0.5s", out["transition-delay"])

	// later layers are not modified
	out = expandToStrings(t, "transition", "all 2s ease-in, opacity 1s")
	assert.Equal(t, "ease-in, ease", out["transition-timing-function"])
	assert.Equal(t, "2s, 1s", out["transition-duration"])

	out = expandToStrings(t, "animation", "slide 3s infinite alternate, all 1s linear")
	assert.Equal(t, "slide, all", out["animation-name"])
	assert.Equal(t, "linear, linear", out["animation-timing-function"])
	assert.Equal(t, "infinite, 1", out["animation-iteration-count"])
	assert.Equal(t, "alternate, normal", out["animation-direction"])
}

func TestTransitionNone(t *testing.T) {
	out := expandToStrings(t, "transition", "none")
	assert.Equal(t, "none", out["transition-property"])
	out = expandToStrings(t, "transition", "none 1s")
	assert.Equal(t, "1s", out["transition-duration"])

	expectShorthandError(t, "transition", "1s, none", WrongValueType)
	expectShorthandError(t, "transition", "none, opacity 2s", WrongValueType)

	d := NewDecomposer(nil, nil)
	assert.NoError(t, d.ValidateDeclaration("transition-property", pa.TokenizeString("none")))
	assert.Error(t, d.ValidateDeclaration("transition-property", pa.TokenizeString("opacity, none")))

	// animation names may be none in any layer
	out = expandToStrings(t, "animation", "none, spin 1s")
	assert.Equal(t, "none, spin", out["animation-name"])
}

func TestFlex(t *testing.T) {
	for value, expected := range map[string][3]string{
		"1":             {"1", "1", "0%"},
		"none":          {"0", "0", "auto"},
		"auto":          {"1", "1", "auto"},
		"2 3 10px":      {"2", "3", "10px"},
		"0":             {"0", "1", "0%"},
		"content":       {"1", "1", "content"},
		"10em 2":        {"2", "1", "10em"},
		"0 0 0":         {"0", "0", "0"},
		"1 min-content": {"1", "1", "min-content"},
	} {
		out := expandToStrings(t, "flex", value)
		assert.Equal(t, expected, [3]string{out["flex-grow"], out["flex-shrink"], out["flex-basis"]}, value)
	}
	expectShorthandError(t, "flex", "1 2 3 4", WrongValueType)

	assert.Equal(t, map[string]string{"flex-direction": "column", "flex-wrap": "wrap"},
		expandToStrings(t, "flex-flow", "wrap column"))
	expectShorthandError(t, "flex-flow", "row foo", UnknownIdentifier)
}

func TestSmallShorthands(t *testing.T) {
	assert.Equal(t, map[string]string{"row-gap": "10px", "column-gap": "10px"}, expandToStrings(t, "gap", "10px"))
	assert.Equal(t, map[string]string{"overflow-x": "hidden", "overflow-y": "auto"}, expandToStrings(t, "overflow", "hidden auto"))
	assert.Equal(t, map[string]string{"column-width": "12em", "column-count": "auto"}, expandToStrings(t, "columns", "12em"))
	assert.Equal(t, map[string]string{"column-width": "auto", "column-count": "3"}, expandToStrings(t, "columns", "auto 3"))
	assert.Equal(t, map[string]string{"column-width": "12em", "column-count": "3"}, expandToStrings(t, "columns", "3 12em"))

	assert.Equal(t, map[string]string{
		"list-style-position": "inside", "list-style-image": "none", "list-style-type": "none",
	}, expandToStrings(t, "list-style", "none inside none"))
	assert.Equal(t, "square", expandToStrings(t, "list-style", "square")["list-style-type"])
	expectShorthandError(t, "list-style", "none none none", UnassignedValues)

	assert.Equal(t, map[string]string{
		"text-decoration-line": "underline overline", "text-decoration-style": "wavy", "text-decoration-color": "red",
	}, expandToStrings(t, "text-decoration", "underline red wavy overline"))

	assert.Equal(t, map[string]string{"align-content": "baseline", "justify-content": "start"},
		expandToStrings(t, "place-content", "baseline"))
	assert.Equal(t, map[string]string{"align-items": "center", "justify-items": "center"},
		expandToStrings(t, "place-items", "center"))
	assert.Equal(t, map[string]string{"align-self": "safe end", "justify-self": "auto"},
		expandToStrings(t, "place-self", "safe end auto"))
}

func TestBorderImage(t *testing.T) {
	out := expandToStrings(t, "border-image", "url(b.png) 30 fill / 10px / 2px round")
	assert.Equal(t, "30 fill", out["border-image-slice"])
	assert.Equal(t, "10px", out["border-image-width"])
	assert.Equal(t, "2px", out["border-image-outset"])
	assert.Equal(t, "round", out["border-image-repeat"])

	out = expandToStrings(t, "border-image", "fill 10% 20% // 1 space repeat")
	assert.Equal(t, "fill 10% 20%", out["border-image-slice"])
	assert.Equal(t, "1", out["border-image-width"])
	assert.Equal(t, "1", out["border-image-outset"])
	assert.Equal(t, "space repeat", out["border-image-repeat"])

	expectShorthandError(t, "border-image", "10 /", WrongValueType)
	expectShorthandError(t, "border-image", "none none", UnassignedValues)
}

func TestGridTemplate(t *testing.T) {
	out := expandToStrings(t, "grid-template", `"a a" "b b" 20px`)
	assert.Equal(t, "auto 20px", out["grid-template-rows"])
	assert.Equal(t, `"a a" "b b"`, out["grid-template-areas"])
	assert.Equal(t, "none", out["grid-template-columns"])

	out = expandToStrings(t, "grid-template", `[top] "a" [mid] [mid2] "b" 1fr [bottom] / 100px`)
	assert.Equal(t, "[top] auto [mid mid2] 1fr [bottom]", out["grid-template-rows"])
	assert.Equal(t, "100px", out["grid-template-columns"])

	out = expandToStrings(t, "grid-template", "100px 1fr / repeat(2, 50px)")
	assert.Equal(t, "100px 1fr", out["grid-template-rows"])
	assert.Equal(t, "none", out["grid-template-areas"])

	expectShorthandError(t, "grid-template", `"a b" "c"`, WrongValueType)
	expectShorthandError(t, "grid-template", "1px / 2px / 3px", UnassignedValues)
}

func TestGrid(t *testing.T) {
	out := expandToStrings(t, "grid", "auto-flow dense 40px / 1fr 2fr")
	assert.Equal(t, "row dense", out["grid-auto-flow"])
	assert.Equal(t, "40px", out["grid-auto-rows"])
	assert.Equal(t, "auto", out["grid-auto-columns"])
	assert.Equal(t, "1fr 2fr", out["grid-template-columns"])
	assert.Equal(t, "none", out["grid-template-rows"])

	out = expandToStrings(t, "grid", "100px / auto-flow")
	assert.Equal(t, "column", out["grid-auto-flow"])
	assert.Equal(t, "100px", out["grid-template-rows"])

	out = expandToStrings(t, "grid", "none")
	assert.Equal(t, "row", out["grid-auto-flow"])
	assert.Equal(t, "none", out["grid-template-areas"])

	expectShorthandError(t, "grid", "auto-flow / auto-flow", UnassignedValues)
}

func TestGridLines(t *testing.T) {
	assert.Equal(t, map[string]string{
		"grid-row-start": "a", "grid-column-start": "a", "grid-row-end": "a", "grid-column-end": "a",
	}, expandToStrings(t, "grid-area", "a"))
	assert.Equal(t, map[string]string{
		"grid-row-start": "1", "grid-column-start": "b", "grid-row-end": "auto", "grid-column-end": "b",
	}, expandToStrings(t, "grid-area", "1 / b"))
	assert.Equal(t, map[string]string{"grid-row-start": "span 2", "grid-row-end": "3"},
		expandToStrings(t, "grid-row", "span 2 / 3"))
	assert.Equal(t, map[string]string{"grid-column-start": "2", "grid-column-end": "auto"},
		expandToStrings(t, "grid-column", "2"))

	expectShorthandError(t, "grid-row", "1 / 2 / 3", UnassignedValues)
	expectShorthandError(t, "grid-row", "0", WrongValueType)
}

func TestExpandDeclarations(t *testing.T) {
	log, logs := testutils.CaptureLogs()
	d := NewDecomposer(nil, log)

	var dropped []string
	sink := func(decl pa.Declaration, err error) { dropped = append(dropped, decl.Name) }
	out, err := d.ExpandDeclarationsString("margin: 1px !important; color: red; foo: bar; padding: -1px; --x: { a }", sink)
	require.Error(t, err)

	var names []string
	for _, decl := range out {
		names = append(names, decl.Name)
	}
	assert.Equal(t, []string{"margin-top", "margin-right", "margin-bottom", "margin-left", "color", "--x"}, names)
	assert.True(t, out[0].Important)
	assert.Equal(t, "margin", out[0].Shorthand)
	assert.False(t, out[4].Important)

	assert.Equal(t, []string{"foo", "padding"}, dropped)
	assert.Equal(t, []string{"foo", "padding"}, logs.Fields("property"))
	assert.Equal(t, []string{"bar", "-1px"}, logs.Fields("value"))

	var declErr *DeclarationError
	require.True(t, errors.As(err, &declErr))
	assert.Equal(t, "foo", declErr.Property)
	assert.True(t, errors.Is(err, ErrUnknownProperty))
}

func TestValidateDeclaration(t *testing.T) {
	d := NewDecomposer(nil, nil)
	for _, test := range []struct {
		decl  string
		valid bool
	}{
		{"color: red", true},
		{"color: 12px", false},
		{"margin-top: auto", true},
		{"background-position: left top, 10px", true},
		{"font-size: large", true},
		{"font: 12px serif", true},
		{"font: serif", false},
		{"unknown: 1", false},
		{"display: flex", true},
		{"color: var(--c)", true},
	} {
		decls, _ := pa.ParseDeclarations(test.decl)
		require.Len(t, decls, 1)
		err := d.ValidateDeclaration(decls[0].Name, decls[0].Value)
		assert.Equal(t, test.valid, err == nil, "%s: %v", test.decl, err)
	}
}
