package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newExpandCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "expand DECLARATIONS",
		Short:   "Expand shorthand declarations into longhands",
		Example: `  cascade expand 'font: italic 12px/1.5 serif'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decls, err := a.decomposer().ExpandDeclarationsString(strings.Join(args, " "), nil)
			out := cmd.OutOrStdout()
			for _, decl := range decls {
				line := render(styleProperty, decl.Name, a.useColors) + ": " + decl.Value.String()
				if decl.Important {
					line += " " + render(styleImportant, "!important", a.useColors)
				}
				fmt.Fprintln(out, line)
			}
			return err
		},
	}
}
