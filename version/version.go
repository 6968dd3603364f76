package version

import (
	"fmt"
)

const (
	Version = "0.3.0"
)

// Used for the `version` command and when loading remote sheets.
var VersionString = fmt.Sprintf("Go-Cascade %s", Version)
