package properties

var defaultLonghands = []LonghandDef{
	{Name: "margin-top", Initial: "0"},
	{Name: "margin-right", Initial: "0"},
	{Name: "margin-bottom", Initial: "0"},
	{Name: "margin-left", Initial: "0"},
	{Name: "padding-top", Initial: "0"},
	{Name: "padding-right", Initial: "0"},
	{Name: "padding-bottom", Initial: "0"},
	{Name: "padding-left", Initial: "0"},
	{Name: "top", Initial: "auto"},
	{Name: "right", Initial: "auto"},
	{Name: "bottom", Initial: "auto"},
	{Name: "left", Initial: "auto"},
	{Name: "border-top-width", Initial: "medium"},
	{Name: "border-right-width", Initial: "medium"},
	{Name: "border-bottom-width", Initial: "medium"},
	{Name: "border-left-width", Initial: "medium"},
	{Name: "border-top-style", Initial: "none"},
	{Name: "border-right-style", Initial: "none"},
	{Name: "border-bottom-style", Initial: "none"},
	{Name: "border-left-style", Initial: "none"},
	{Name: "border-top-color", Initial: "currentcolor"},
	{Name: "border-right-color", Initial: "currentcolor"},
	{Name: "border-bottom-color", Initial: "currentcolor"},
	{Name: "border-left-color", Initial: "currentcolor"},
	{Name: "border-top-left-radius", Initial: "0"},
	{Name: "border-top-right-radius", Initial: "0"},
	{Name: "border-bottom-right-radius", Initial: "0"},
	{Name: "border-bottom-left-radius", Initial: "0"},
	{Name: "border-image-source", Initial: "none"},
	{Name: "border-image-slice", Initial: "100%"},
	{Name: "border-image-width", Initial: "1"},
	{Name: "border-image-outset", Initial: "0"},
	{Name: "border-image-repeat", Initial: "stretch"},
	{Name: "outline-color", Initial: "currentcolor"},
	{Name: "outline-style", Initial: "none"},
	{Name: "outline-width", Initial: "medium"},
	{Name: "column-rule-width", Initial: "medium"},
	{Name: "column-rule-style", Initial: "none"},
	{Name: "column-rule-color", Initial: "currentcolor"},
	{Name: "column-width", Initial: "auto"},
	{Name: "column-count", Initial: "auto"},
	{Name: "background-color", Initial: "transparent"},
	{Name: "background-image", Initial: "none"},
	{Name: "background-repeat", Initial: "repeat"},
	{Name: "background-attachment", Initial: "scroll"},
	{Name: "background-position", Initial: "0% 0%"},
	{Name: "background-size", Initial: "auto"},
	{Name: "background-clip", Initial: "border-box"},
	{Name: "background-origin", Initial: "padding-box"},
	{Name: "font-style", Initial: "normal", Inherited: true},
	{Name: "font-variant-caps", Initial: "normal", Inherited: true},
	{Name: "font-weight", Initial: "normal", Inherited: true},
	{Name: "font-stretch", Initial: "normal", Inherited: true},
	{Name: "font-size", Initial: "medium", Inherited: true},
	{Name: "line-height", Initial: "normal", Inherited: true},
	{Name: "font-family", Initial: "serif", Inherited: true},
	{Name: "font-size-adjust", Initial: "none", Inherited: true},
	{Name: "font-kerning", Initial: "auto", Inherited: true},
	{Name: "font-variant-ligatures", Initial: "normal", Inherited: true},
	{Name: "font-variant-position", Initial: "normal", Inherited: true},
	{Name: "font-variant-numeric", Initial: "normal", Inherited: true},
	{Name: "font-variant-alternates", Initial: "normal", Inherited: true},
	{Name: "font-variant-east-asian", Initial: "normal", Inherited: true},
	{Name: "font-language-override", Initial: "normal", Inherited: true},
	{Name: "font-feature-settings", Initial: "normal", Inherited: true},
	{Name: "font-optical-sizing", Initial: "auto", Inherited: true},
	{Name: "font-variation-settings", Initial: "normal", Inherited: true},
	{Name: "list-style-type", Initial: "disc", Inherited: true},
	{Name: "list-style-position", Initial: "outside", Inherited: true},
	{Name: "list-style-image", Initial: "none", Inherited: true},
	{Name: "text-decoration-line", Initial: "none"},
	{Name: "text-decoration-style", Initial: "solid"},
	{Name: "text-decoration-color", Initial: "currentcolor"},
	{Name: "flex-grow", Initial: "0"},
	{Name: "flex-shrink", Initial: "1"},
	{Name: "flex-basis", Initial: "auto"},
	{Name: "flex-direction", Initial: "row"},
	{Name: "flex-wrap", Initial: "nowrap"},
	{Name: "row-gap", Initial: "normal"},
	{Name: "column-gap", Initial: "normal"},
	{Name: "overflow-x", Initial: "visible"},
	{Name: "overflow-y", Initial: "visible"},
	{Name: "transition-property", Initial: "all"},
	{Name: "transition-duration", Initial: "0s"},
	{Name: "transition-timing-function", Initial: "ease"},
	{Name: "transition-delay", Initial: "0s"},
	{Name: "animation-name", Initial: "none"},
	{Name: "animation-duration", Initial: "0s"},
	{Name: "animation-timing-function", Initial: "ease"},
	{Name: "animation-delay", Initial: "0s"},
	{Name: "animation-iteration-count", Initial: "1"},
	{Name: "animation-direction", Initial: "normal"},
	{Name: "animation-fill-mode", Initial: "none"},
	{Name: "animation-play-state", Initial: "running"},
	{Name: "grid-template-rows", Initial: "none"},
	{Name: "grid-template-columns", Initial: "none"},
	{Name: "grid-template-areas", Initial: "none"},
	{Name: "grid-auto-rows", Initial: "auto"},
	{Name: "grid-auto-columns", Initial: "auto"},
	{Name: "grid-auto-flow", Initial: "row"},
	{Name: "grid-row-start", Initial: "auto"},
	{Name: "grid-column-start", Initial: "auto"},
	{Name: "grid-row-end", Initial: "auto"},
	{Name: "grid-column-end", Initial: "auto"},
	{Name: "align-content", Initial: "normal"},
	{Name: "justify-content", Initial: "normal"},
	{Name: "align-items", Initial: "normal"},
	{Name: "justify-items", Initial: "legacy"},
	{Name: "align-self", Initial: "auto"},
	{Name: "justify-self", Initial: "auto"},
	{Name: "color", Initial: "canvastext", Inherited: true},
	{Name: "display", Initial: "inline"},
	{Name: "position", Initial: "static"},
	{Name: "float", Initial: "none"},
	{Name: "clear", Initial: "none"},
	{Name: "visibility", Initial: "visible", Inherited: true},
	{Name: "z-index", Initial: "auto"},
	{Name: "opacity", Initial: "1"},
	{Name: "width", Initial: "auto"},
	{Name: "height", Initial: "auto"},
	{Name: "min-width", Initial: "auto"},
	{Name: "max-width", Initial: "none"},
	{Name: "min-height", Initial: "auto"},
	{Name: "max-height", Initial: "none"},
	{Name: "box-sizing", Initial: "content-box"},
	{Name: "vertical-align", Initial: "baseline"},
	{Name: "text-align", Initial: "start", Inherited: true},
	{Name: "text-indent", Initial: "0", Inherited: true},
	{Name: "text-transform", Initial: "none", Inherited: true},
	{Name: "white-space", Initial: "normal", Inherited: true},
	{Name: "letter-spacing", Initial: "normal", Inherited: true},
	{Name: "word-spacing", Initial: "normal", Inherited: true},
	{Name: "direction", Initial: "ltr", Inherited: true},
	{Name: "cursor", Initial: "auto", Inherited: true},
	{Name: "content", Initial: "normal"},
	{Name: "quotes", Initial: "auto", Inherited: true},
	{Name: "order", Initial: "0"},
	{Name: "caption-side", Initial: "top", Inherited: true},
	{Name: "empty-cells", Initial: "show", Inherited: true},
	{Name: "border-collapse", Initial: "separate", Inherited: true},
	{Name: "border-spacing", Initial: "0", Inherited: true},
	{Name: "table-layout", Initial: "auto"},
	{Name: "unicode-bidi", Initial: "normal"},
	{Name: "hyphens", Initial: "manual", Inherited: true},
	{Name: "tab-size", Initial: "8", Inherited: true},
	{Name: "word-break", Initial: "normal", Inherited: true},
	{Name: "overflow-wrap", Initial: "normal", Inherited: true},
}

var defaultShorthands = []Shorthand{
	{Name: "margin", Longhands: []string{"margin-top", "margin-right", "margin-bottom", "margin-left"}},
	{Name: "padding", Longhands: []string{"padding-top", "padding-right", "padding-bottom", "padding-left"}},
	{Name: "inset", Longhands: []string{"top", "right", "bottom", "left"}},
	{Name: "border-width", Longhands: []string{"border-top-width", "border-right-width", "border-bottom-width", "border-left-width"}},
	{Name: "border-style", Longhands: []string{"border-top-style", "border-right-style", "border-bottom-style", "border-left-style"}},
	{Name: "border-color", Longhands: []string{"border-top-color", "border-right-color", "border-bottom-color", "border-left-color"}},
	{Name: "border-top", Longhands: []string{"border-top-width", "border-top-style", "border-top-color"}},
	{Name: "border-right", Longhands: []string{"border-right-width", "border-right-style", "border-right-color"}},
	{Name: "border-bottom", Longhands: []string{"border-bottom-width", "border-bottom-style", "border-bottom-color"}},
	{Name: "border-left", Longhands: []string{"border-left-width", "border-left-style", "border-left-color"}},
	{Name: "border", Longhands: []string{"border-top-width", "border-right-width", "border-bottom-width", "border-left-width", "border-top-style", "border-right-style", "border-bottom-style", "border-left-style", "border-top-color", "border-right-color", "border-bottom-color", "border-left-color", "border-image-source", "border-image-slice", "border-image-width", "border-image-outset", "border-image-repeat"}},
	{Name: "border-radius", Longhands: []string{"border-top-left-radius", "border-top-right-radius", "border-bottom-right-radius", "border-bottom-left-radius"}},
	{Name: "border-image", Longhands: []string{"border-image-source", "border-image-slice", "border-image-width", "border-image-outset", "border-image-repeat"}},
	{Name: "outline", Longhands: []string{"outline-color", "outline-style", "outline-width"}},
	{Name: "column-rule", Longhands: []string{"column-rule-width", "column-rule-style", "column-rule-color"}},
	{Name: "columns", Longhands: []string{"column-width", "column-count"}},
	{Name: "background", Longhands: []string{"background-color", "background-image", "background-repeat", "background-attachment", "background-position", "background-size", "background-clip", "background-origin"}, Layered: true},
	{Name: "font", Longhands: []string{"font-style", "font-variant-caps", "font-weight", "font-stretch", "font-size", "line-height", "font-family", "font-size-adjust", "font-kerning", "font-variant-ligatures", "font-variant-position", "font-variant-numeric", "font-variant-alternates", "font-variant-east-asian", "font-language-override", "font-feature-settings", "font-optical-sizing", "font-variation-settings"}},
	{Name: "font-variant", Longhands: []string{"font-variant-ligatures", "font-variant-caps", "font-variant-alternates", "font-variant-numeric", "font-variant-east-asian", "font-variant-position"}},
	{Name: "list-style", Longhands: []string{"list-style-position", "list-style-image", "list-style-type"}},
	{Name: "text-decoration", Longhands: []string{"text-decoration-line", "text-decoration-style", "text-decoration-color"}},
	{Name: "flex", Longhands: []string{"flex-grow", "flex-shrink", "flex-basis"}},
	{Name: "flex-flow", Longhands: []string{"flex-direction", "flex-wrap"}},
	{Name: "gap", Longhands: []string{"row-gap", "column-gap"}},
	{Name: "overflow", Longhands: []string{"overflow-x", "overflow-y"}},
	{Name: "transition", Longhands: []string{"transition-property", "transition-duration", "transition-timing-function", "transition-delay"}, Layered: true},
	{Name: "animation", Longhands: []string{"animation-name", "animation-duration", "animation-timing-function", "animation-delay", "animation-iteration-count", "animation-direction", "animation-fill-mode", "animation-play-state"}, Layered: true},
	{Name: "grid-template", Longhands: []string{"grid-template-rows", "grid-template-columns", "grid-template-areas"}},
	{Name: "grid", Longhands: []string{"grid-template-rows", "grid-template-columns", "grid-template-areas", "grid-auto-rows", "grid-auto-columns", "grid-auto-flow"}},
	{Name: "grid-area", Longhands: []string{"grid-row-start", "grid-column-start", "grid-row-end", "grid-column-end"}},
	{Name: "grid-row", Longhands: []string{"grid-row-start", "grid-row-end"}},
	{Name: "grid-column", Longhands: []string{"grid-column-start", "grid-column-end"}},
	{Name: "place-content", Longhands: []string{"align-content", "justify-content"}},
	{Name: "place-items", Longhands: []string{"align-items", "justify-items"}},
	{Name: "place-self", Longhands: []string{"align-self", "justify-self"}},
}
