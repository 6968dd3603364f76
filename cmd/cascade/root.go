package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/benoitkugler/cascade/config"
	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/css/validation"
	"github.com/benoitkugler/cascade/logger"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by the commands, built once
// the flags are parsed.
type app struct {
	conf      *config.Config
	log       *zap.Logger
	useColors bool
}

func (a *app) load(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	conf, err := config.Load(path, cmd.Flags())
	if err != nil {
		return err
	}
	log, err := logger.New(conf.Log)
	if err != nil {
		return err
	}
	a.conf, a.log = conf, log
	a.useColors, _ = cmd.Flags().GetBool("color")
	return nil
}

func (a *app) decomposer() *validation.Decomposer {
	return validation.NewDecomposer(nil, a.log)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "cascade",
		Short: "CSS cascade resolver and shorthand tool",
		Long: `Resolve the cascaded declarations of HTML elements, expand
shorthand properties into longhands, compose longhands back into the
shortest equivalent declarations and evaluate media queries.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "YAML configuration file")
	flags.Bool("color", false, "Force color output")
	config.RegisterFlags(flags)

	root.AddCommand(
		newResolveCmd(a),
		newExpandCmd(a),
		newComposeCmd(a),
		newMediaCmd(a),
		newVersionCmd(),
	)
	return root
}

// expandGlobs returns the files matching the patterns, which
// support `**`. A pattern without match is an error.
func expandGlobs(patterns []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no file matches %q", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// readSheet reads and parses a CSS file.
func readSheet(path string) (*pa.Stylesheet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	css, err := pa.DecodeSheet(content, "", "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pa.ParseSheetString(css), nil
}

// fileLoader loads the files referenced by @import rules and
// <link> elements, relative to dir.
func fileLoader(dir string) func(url string) (*pa.Stylesheet, error) {
	return func(url string) (*pa.Stylesheet, error) {
		if !filepath.IsAbs(url) {
			url = filepath.Join(dir, filepath.FromSlash(url))
		}
		return readSheet(url)
	}
}
