package shorthands

import (
	"strings"

	pa "github.com/benoitkugler/cascade/css/parser"
	pr "github.com/benoitkugler/cascade/css/properties"
)

var builders = map[string]builder{
	"margin":          buildFourSides("margin-top", "margin-right", "margin-bottom", "margin-left"),
	"padding":         buildFourSides("padding-top", "padding-right", "padding-bottom", "padding-left"),
	"inset":           buildFourSides("top", "right", "bottom", "left"),
	"border-width":    buildFourSides("border-top-width", "border-right-width", "border-bottom-width", "border-left-width"),
	"border-style":    buildFourSides("border-top-style", "border-right-style", "border-bottom-style", "border-left-style"),
	"border-color":    buildFourSides("border-top-color", "border-right-color", "border-bottom-color", "border-left-color"),
	"border-radius":   buildBorderRadius,
	"border-top":      buildSide("border-top"),
	"border-right":    buildSide("border-right"),
	"border-bottom":   buildSide("border-bottom"),
	"border-left":     buildSide("border-left"),
	"border":          buildBorder,
	"border-image":    buildBorderImage,
	"outline":         buildSide("outline"),
	"column-rule":     buildSide("column-rule"),
	"columns":         juxtapose("column-width", "column-count"),
	"background":      buildBackground,
	"font":            buildFont,
	"font-variant":    buildFontVariant,
	"list-style":      juxtapose("list-style-position", "list-style-image", "list-style-type"),
	"text-decoration": juxtapose("text-decoration-line", "text-decoration-style", "text-decoration-color"),
	"flex":            buildFlex,
	"flex-flow":       juxtapose("flex-direction", "flex-wrap"),
	"gap":             buildPair("row-gap", "column-gap"),
	"overflow":        buildPair("overflow-x", "overflow-y"),
	"transition":      buildLayers("transition-property", "transition-duration", "transition-timing-function", "transition-delay"),
	"animation":       buildAnimation,
	"grid-template":   buildGridTemplate,
	"grid":            buildGrid,
	"grid-area":       buildGridLines("grid-row-start", "grid-column-start", "grid-row-end", "grid-column-end"),
	"grid-row":        buildGridLines("grid-row-start", "grid-row-end"),
	"grid-column":     buildGridLines("grid-column-start", "grid-column-end"),
	"place-content":   buildPair("align-content", "justify-content"),
	"place-items":     buildPair("align-items", "justify-items"),
	"place-self":      buildPair("align-self", "justify-self"),
}

var buildAnimation = buildLayers("animation-duration", "animation-timing-function", "animation-delay",
	"animation-iteration-count", "animation-direction", "animation-fill-mode", "animation-play-state", "animation-name")

// join concatenates the non empty parts with a space.
func join(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// dedup removes the repeated candidates, keeping the first ones.
func dedup(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// compactTexts returns the texts whose initial flag is false, or
// texts[fallback] if they are all initial.
func compactTexts(texts []string, initial []bool, fallback int) string {
	var kept []string
	for i, text := range texts {
		if !initial[i] {
			kept = append(kept, text)
		}
	}
	if len(kept) == 0 {
		return texts[fallback]
	}
	return strings.Join(kept, " ")
}

// juxtapose builds shorthands whose components are separated by
// spaces, in any order, and default to their initial values.
func juxtapose(names ...string) builder {
	return func(l longhands) []string {
		texts := make([]string, len(names))
		initial := make([]bool, len(names))
		for i, name := range names {
			texts[i] = l.text(name)
			initial[i] = l.isInitial(name)
		}
		return dedup([]string{compactTexts(texts, initial, 0), strings.Join(texts, " ")})
	}
}

// buildSide handles `border-top`-like shorthands.
func buildSide(prefix string) builder {
	return juxtapose(prefix+"-width", prefix+"-style", prefix+"-color")
}

// fourSides returns the shortest list of values which
// expands to the given top, right, bottom, left values.
func fourSides(sides [4]string) []string {
	top, right, bottom, left := sides[0], sides[1], sides[2], sides[3]
	switch {
	case top == right && right == bottom && bottom == left:
		return sides[:1]
	case top == bottom && right == left:
		return sides[:2]
	case right == left:
		return sides[:3]
	default:
		return sides[:]
	}
}

func buildFourSides(top, right, bottom, left string) builder {
	return func(l longhands) []string {
		sides := [4]string{l.text(top), l.text(right), l.text(bottom), l.text(left)}
		return []string{strings.Join(fourSides(sides), " ")}
	}
}

// Each corner holds one horizontal radius, optionally followed
// by a vertical one.
func buildBorderRadius(l longhands) []string {
	var horizontal, vertical [4]string
	for i, name := range [4]string{"border-top-left-radius", "border-top-right-radius", "border-bottom-right-radius", "border-bottom-left-radius"} {
		tokens := l.values[name].Tokens()
		if len(tokens) == 0 || len(tokens) > 2 {
			return nil
		}
		horizontal[i] = pa.SerializeCompact(tokens[:1])
		vertical[i] = pa.SerializeCompact(tokens[len(tokens)-1:])
	}
	h := strings.Join(fourSides(horizontal), " ")
	v := strings.Join(fourSides(vertical), " ")
	if h == v {
		return []string{h, h + " / " + v}
	}
	return []string{h + " / " + v}
}

// `border` is only possible when the four sides are equal, and
// `border-image` is the initial one.
func buildBorder(l longhands) []string {
	for _, kind := range [3]string{"width", "style", "color"} {
		top := l.values["border-top-"+kind]
		for _, side := range [3]string{"right", "bottom", "left"} {
			if !l.values["border-"+side+"-"+kind].Equal(top) {
				return nil
			}
		}
	}
	for _, name := range [5]string{"border-image-source", "border-image-slice", "border-image-width", "border-image-outset", "border-image-repeat"} {
		if !l.isInitial(name) {
			return nil
		}
	}
	return buildSide("border-top")(l)
}

func buildBorderImage(l longhands) []string {
	const (
		source = "border-image-source"
		slice  = "border-image-slice"
		width  = "border-image-width"
		outset = "border-image-outset"
		repeat = "border-image-repeat"
	)
	full := l.text(source) + " " + l.text(slice) + " / " + l.text(width) + " / " + l.text(outset) + " " + l.text(repeat)

	var sizes string
	switch {
	case !l.isInitial(outset):
		sizes = l.text(slice) + " / " + l.text(width) + " / " + l.text(outset)
	case !l.isInitial(width):
		sizes = l.text(slice) + " / " + l.text(width)
	case !l.isInitial(slice):
		sizes = l.text(slice)
	}
	var src, rep string
	if !l.isInitial(source) {
		src = l.text(source)
	}
	if !l.isInitial(repeat) {
		rep = l.text(repeat)
	}
	compact := join(src, sizes, rep)
	if compact == "" {
		compact = "none"
	}
	return dedup([]string{compact, full})
}

func buildFlex(l longhands) []string {
	grow, shrink, basis := l.text("flex-grow"), l.text("flex-shrink"), l.text("flex-basis")
	var candidates []string
	switch {
	case grow == "0" && shrink == "0" && basis == "auto":
		candidates = append(candidates, "none")
	case grow == "1" && shrink == "1" && basis == "auto":
		candidates = append(candidates, "auto")
	}
	if shrink == "1" {
		if basis == "0%" {
			candidates = append(candidates, grow)
		}
		candidates = append(candidates, grow+" "+basis)
	}
	if basis == "0%" {
		candidates = append(candidates, grow+" "+shrink)
	}
	return append(candidates, grow+" "+shrink+" "+basis)
}

// buildPair handles shorthands whose second value
// defaults to the first one.
func buildPair(first, second string) builder {
	return func(l longhands) []string {
		a, b := l.text(first), l.text(second)
		return dedup([]string{a, a + " " + b})
	}
}

// buildLayers handles the comma separated shorthands whose
// components all have the same number of layers.
// An initial layer is written with its name (or property) component.
func buildLayers(names ...string) builder {
	fallback := 0
	for i, name := range names {
		if strings.HasSuffix(name, "-name") || strings.HasSuffix(name, "-property") {
			fallback = i
		}
	}
	return func(l longhands) []string {
		columns := make([][]pr.Value, len(names))
		for i, name := range names {
			columns[i] = l.values[name].Layers()
			if len(columns[i]) != len(columns[0]) {
				return nil
			}
		}
		count := len(columns[0])
		compact, full := make([]string, count), make([]string, count)
		for layer := 0; layer < count; layer++ {
			texts := make([]string, len(names))
			initial := make([]bool, len(names))
			for i, name := range names {
				texts[i] = columns[i][layer].String()
				initial[i] = columns[i][layer].Equal(l.registry.Initial(name))
			}
			keepDurations(names, initial)
			compact[layer] = compactTexts(texts, initial, fallback)
			full[layer] = strings.Join(texts, " ")
		}
		return dedup([]string{strings.Join(compact, ", "), strings.Join(full, ", ")})
	}
}

// keepDurations marks the duration as set when the delay is,
// since the first time value is always read as the duration.
func keepDurations(names []string, initial []bool) {
	duration, delay := -1, -1
	for i, name := range names {
		switch {
		case strings.HasSuffix(name, "-duration"):
			duration = i
		case strings.HasSuffix(name, "-delay"):
			delay = i
		}
	}
	if duration >= 0 && delay >= 0 && !initial[delay] {
		initial[duration] = false
	}
}

func buildGridLines(names ...string) builder {
	return func(l longhands) []string {
		candidates := make([]string, len(names))
		for n := range names {
			texts := make([]string, n+1)
			for i := range texts {
				texts[i] = l.text(names[i])
			}
			candidates[n] = strings.Join(texts, " / ")
		}
		return candidates
	}
}
