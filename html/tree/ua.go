package tree

import (
	_ "embed"
	"sync"

	pa "github.com/benoitkugler/cascade/css/parser"
)

//go:embed ua.css
var uaCSS string

var (
	uaOnce  sync.Once
	uaSheet *pa.Stylesheet
)

// UserAgentSheet returns the default HTML style sheet.
// The parsed rules are shared and must not be modified.
func UserAgentSheet() Sheet {
	uaOnce.Do(func() { uaSheet = pa.ParseSheetString(uaCSS) })
	return Sheet{Stylesheet: uaSheet, Origin: UserAgent, Href: "ua.css"}
}
