// Command cascade resolves, expands and composes CSS declarations
// from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render(styleError, "error:", true), err)
		os.Exit(1)
	}
}
