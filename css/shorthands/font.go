package shorthands

// fontResets are the longhands the `font` shorthand
// can only set to their initial value.
var fontResets = [...]string{
	"font-size-adjust", "font-kerning",
	"font-variant-ligatures", "font-variant-position", "font-variant-numeric",
	"font-variant-alternates", "font-variant-east-asian",
	"font-language-override", "font-feature-settings",
	"font-optical-sizing", "font-variation-settings",
}

// The compact form is `[style] [caps] [weight] [stretch] size[/line-height] family`.
// Otherwise, the font longhands are serialized through
// `font-variant` and individual declarations.
func buildFont(l longhands) []string {
	if kw := l.values["font-family"].Keyword(); kw != "" && l.allKeyword(kw) {
		// system font, checked by the round trip
		return []string{l.text("font-family")}
	}
	for _, name := range fontResets {
		if !l.isInitial(name) {
			return nil
		}
	}
	if caps := l.values["font-variant-caps"]; !caps.IsKeyword("normal") && !caps.IsKeyword("small-caps") {
		return nil
	}

	var optional []string
	for _, name := range [4]string{"font-style", "font-variant-caps", "font-weight", "font-stretch"} {
		if !l.values[name].IsKeyword("normal") {
			optional = append(optional, l.text(name))
		}
	}
	size := l.text("font-size")
	if !l.isInitial("line-height") {
		size += "/" + l.text("line-height")
	}
	return []string{join(append(optional, size, l.text("font-family"))...)}
}

var fontVariantOrder = [...]string{
	"font-variant-ligatures", "font-variant-caps", "font-variant-alternates",
	"font-variant-numeric", "font-variant-east-asian", "font-variant-position",
}

func buildFontVariant(l longhands) []string {
	var features []string
	for _, name := range fontVariantOrder {
		if !l.values[name].IsKeyword("normal") {
			features = append(features, l.text(name))
		}
	}
	if len(features) == 0 {
		return []string{"normal"}
	}
	return []string{join(features...)}
}
