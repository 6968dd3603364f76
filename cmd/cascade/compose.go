package main

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/cascade/css/shorthands"
	"github.com/spf13/cobra"
)

func newComposeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "compose DECLARATIONS",
		Short:   "Print the shortest equivalent of a declaration list",
		Example: `  cascade compose 'margin-top:1px; margin-right:2px; margin-bottom:1px; margin-left:2px'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			composer := shorthands.NewComposer(a.decomposer(), a.log)
			text, err := composer.ComposeString(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}
