package shorthands

import (
	"strings"

	pa "github.com/benoitkugler/cascade/css/parser"
	pr "github.com/benoitkugler/cascade/css/properties"
)

var backgroundLonghands = [...]string{
	"background-image", "background-position", "background-size", "background-repeat",
	"background-attachment", "background-origin", "background-clip", "background-color",
}

// backgroundLayer stores the values of one layer, in the
// order of backgroundLonghands.
type backgroundLayer [len(backgroundLonghands)]pr.Value

func (layer backgroundLayer) text(i int) string { return layer[i].String() }

// foldRepeat returns the one keyword form of a repeat pair, if any.
func foldRepeat(value pr.Value) string {
	tokens := value.Tokens()
	if len(tokens) != 2 {
		return value.String()
	}
	x, y := pa.SerializeCompact(tokens[:1]), pa.SerializeCompact(tokens[1:])
	switch {
	case x == "repeat" && y == "no-repeat":
		return "repeat-x"
	case x == "no-repeat" && y == "repeat":
		return "repeat-y"
	case x == y:
		return x
	}
	return value.String()
}

// compact returns the shortest text of the layer, omitting the
// initial values. The color is only written for the final layer.
// If fold is true, repeat pairs use their one keyword form.
func (layer backgroundLayer) compact(l longhands, final, fold bool) string {
	isInitial := func(i int) bool { return layer[i].Equal(l.registry.Initial(backgroundLonghands[i])) }

	var image, position, repeat, attachment, boxes, color string
	if !isInitial(0) {
		image = layer.text(0)
	}
	if !isInitial(2) {
		// the size needs an explicit position
		position = layer.text(1) + " / " + layer.text(2)
	} else if !isInitial(1) {
		position = layer.text(1)
	}
	if r := layer.text(3); fold {
		if r = foldRepeat(layer[3]); r != "repeat" {
			repeat = r
		}
	} else if !isInitial(3) {
		repeat = r
	}
	if !isInitial(4) {
		attachment = layer.text(4)
	}
	switch origin, clip := layer.text(5), layer.text(6); {
	case origin == clip:
		boxes = origin
	case !isInitial(5) || !isInitial(6):
		boxes = origin + " " + clip
	}
	if final && !isInitial(7) {
		color = layer.text(7)
	}
	text := join(image, position, repeat, attachment, boxes, color)
	if text == "" {
		return "none"
	}
	return text
}

func (layer backgroundLayer) full(final bool) string {
	text := layer.text(0) + " " + layer.text(1) + " / " + layer.text(2) + " " +
		layer.text(3) + " " + layer.text(4) + " " + layer.text(5) + " " + layer.text(6)
	if final {
		text += " " + layer.text(7)
	}
	return text
}

// The number of layers is given by background-image. Colors
// of the non final layers must stay initial.
func buildBackground(l longhands) []string {
	count := len(l.values["background-image"].Layers())
	layers := make([]backgroundLayer, count)
	for j, name := range backgroundLonghands {
		values := l.values[name].Layers()
		if len(values) != count {
			return nil
		}
		for i, value := range values {
			layers[i][j] = value
		}
	}
	transparent := l.registry.Initial("background-color")
	folded, compact, full := make([]string, count), make([]string, count), make([]string, count)
	for i, layer := range layers {
		final := i == count-1
		if !final && !layer[7].Equal(transparent) {
			return nil
		}
		folded[i] = layer.compact(l, final, true)
		compact[i] = layer.compact(l, final, false)
		full[i] = layer.full(final)
	}
	return dedup([]string{strings.Join(folded, ", "), strings.Join(compact, ", "), strings.Join(full, ", ")})
}
