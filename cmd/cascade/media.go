package main

import (
	"fmt"
	"io"

	"github.com/benoitkugler/cascade/css/media"
	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/css/selector"
	"github.com/benoitkugler/cascade/css/validation"
	"github.com/spf13/cobra"
)

func newMediaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media QUERY",
		Short: "Evaluate a media query list or a feature query",
		Example: `  cascade media 'screen and (min-width: 500px)' --width 800
  cascade media '(width > 600px)' --implies '(min-width: 300px)' --tree
  cascade media --supports '(display: grid) and (not (margin: nonsense))'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			supports, _ := cmd.Flags().GetBool("supports")
			withTree, _ := cmd.Flags().GetBool("tree")
			if supports {
				a.runSupports(cmd.OutOrStdout(), args[0], withTree)
				return nil
			}
			implies, _ := cmd.Flags().GetString("implies")
			a.runMedia(cmd.OutOrStdout(), args[0], implies, cmd.Flags().Changed("implies"), withTree)
			return nil
		},
	}
	f := cmd.Flags()
	f.String("implies", "", "check whether the query implies this other query")
	f.Bool("tree", false, "print the condition trees")
	f.Bool("supports", false, "evaluate an @supports condition instead of a media query")
	return cmd
}

func (a *app) printLine(out io.Writer, label, value string) {
	fmt.Fprintf(out, "%s %s\n", render(styleProperty, label+":", a.useColors), value)
}

func (a *app) runMedia(out io.Writer, query, implies string, withImplies, withTree bool) {
	list := media.ParseQueryListString(query)
	a.printLine(out, "query", list.String())
	a.printLine(out, "matches", renderBool(list.Matches(a.conf.Environment()), a.useColors))
	if withImplies {
		other := media.ParseQueryListString(implies)
		a.printLine(out, "implies "+other.String(), renderBool(list.Implies(other), a.useColors))
	}
	if withTree {
		for _, q := range list {
			if q.Condition == nil {
				continue
			}
			fmt.Fprintln(out, render(styleHeading, q.String(), a.useColors))
			fmt.Fprint(out, q.Condition.Tree())
		}
	}
}

// supportsChecker validates declarations with a decomposer.
type supportsChecker struct {
	decomposer *validation.Decomposer
}

func (s supportsChecker) SupportsDeclaration(name string, value []pa.Token) bool {
	return s.decomposer.ValidateDeclaration(name, value) == nil
}

func (s supportsChecker) SupportsSelector(tokens []pa.Token) bool {
	_, err := selector.Parse(tokens)
	return err == nil
}

func (a *app) runSupports(out io.Writer, condition string, withTree bool) {
	cond := media.ParseSupportsString(condition)
	a.printLine(out, "condition", cond.String())
	a.printLine(out, "supported", renderBool(cond.Supports(supportsChecker{a.decomposer()}), a.useColors))
	if withTree {
		fmt.Fprint(out, cond.Tree())
	}
}
