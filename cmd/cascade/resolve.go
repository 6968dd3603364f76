package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/cascade/config"
	"github.com/benoitkugler/cascade/css/validation"
	"github.com/benoitkugler/cascade/html/tree"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

func newResolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the cascaded declarations of HTML elements",
		Example: `  cascade resolve --html index.html --css 'themes/**/*.css' --select 'main p'
  cascade resolve --html index.html --select h1 --pseudo before --longhands`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runResolve(cmd)
		},
	}
	f := cmd.Flags()
	f.String("html", "", "HTML document")
	f.StringSlice("css", nil, "additional author style sheets (glob patterns)")
	f.String("select", "body *", "CSS selector of the elements to resolve")
	f.String("pseudo", "", "pseudo-element to resolve, like before")
	f.Bool("longhands", false, "print one longhand per line instead of the composed block")
	_ = cmd.MarkFlagRequired("html")
	return cmd
}

// userAgentSheet returns the configured user agent sheet, if any.
func userAgentSheet(conf *config.Config) ([]tree.Sheet, error) {
	switch path := conf.Cascade.UserAgentSheet; path {
	case "", "none":
		return nil, nil
	case config.BuiltinSheet:
		return []tree.Sheet{tree.UserAgentSheet()}, nil
	default:
		sheet, err := readSheet(path)
		if err != nil {
			return nil, err
		}
		return []tree.Sheet{{Stylesheet: sheet, Origin: tree.UserAgent, Href: path}}, nil
	}
}

// loadSheets returns the sheets applying to doc, in cascade order.
func (a *app) loadSheets(doc *tree.Document, dir string, authorGlobs []string) ([]tree.Sheet, error) {
	sheets, err := userAgentSheet(a.conf)
	if err != nil {
		return nil, err
	}

	userFiles, err := expandGlobs(a.conf.Cascade.UserSheets)
	if err != nil {
		return nil, err
	}
	for _, path := range userFiles {
		sheet, err := readSheet(path)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, tree.Sheet{Stylesheet: sheet, Origin: tree.User, Href: path})
	}

	documentSheets, err := doc.AuthorSheets(a.conf.Environment(), fileLoader(dir))
	if err != nil {
		a.log.Warn("missing document style sheets", zap.Error(err))
	}
	sheets = append(sheets, documentSheets...)

	authorFiles, err := expandGlobs(authorGlobs)
	if err != nil {
		return nil, err
	}
	for _, path := range authorFiles {
		sheet, err := readSheet(path)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, tree.Sheet{Stylesheet: sheet, Origin: tree.Author, Href: path})
	}
	return sheets, nil
}

func (a *app) runResolve(cmd *cobra.Command) error {
	htmlPath, _ := cmd.Flags().GetString("html")
	cssGlobs, _ := cmd.Flags().GetStringSlice("css")
	sel, _ := cmd.Flags().GetString("select")
	pseudo, _ := cmd.Flags().GetString("pseudo")
	longhands, _ := cmd.Flags().GetBool("longhands")

	file, err := os.Open(htmlPath)
	if err != nil {
		return err
	}
	defer file.Close()
	doc, err := tree.ParseDocument(file)
	if err != nil {
		return err
	}
	elements, err := doc.Select(sel)
	if err != nil {
		return err
	}

	dir := filepath.Dir(htmlPath)
	sheets, err := a.loadSheets(doc, dir, cssGlobs)
	if err != nil {
		return err
	}
	resolver := tree.NewResolver(sheets, tree.Options{
		Environment:         a.conf.Environment(),
		Loader:              fileLoader(dir),
		PresentationalHints: a.conf.Cascade.PresentationalHints,
		FontFaces: func(face validation.FontFace) {
			a.log.Info("font face", zap.String("family", face.Family), zap.Int("sources", len(face.Src)))
		},
		Logger: a.log,
	})

	out := cmd.OutOrStdout()
	for _, element := range elements {
		block := resolver.Resolve(element, strings.TrimLeft(pseudo, ":"))
		a.printBlock(out, describe(element, pseudo), block, longhands)
	}
	return nil
}

// describe returns a short selector-like description of element.
func describe(element *html.Node, pseudo string) string {
	var b strings.Builder
	b.WriteString(element.Data)
	for _, attr := range element.Attr {
		switch attr.Key {
		case "id":
			b.WriteString("#" + attr.Val)
		case "class":
			for _, class := range strings.Fields(attr.Val) {
				b.WriteString("." + class)
			}
		}
	}
	if pseudo = strings.TrimLeft(pseudo, ":"); pseudo != "" {
		b.WriteString("::" + pseudo)
	}
	return b.String()
}

func (a *app) printBlock(out io.Writer, title string, block tree.Block, longhands bool) {
	fmt.Fprintln(out, render(styleHeading, title, a.useColors))
	if !longhands {
		if block.Len() != 0 {
			fmt.Fprintln(out, "  "+block.Text())
		}
		return
	}
	for _, entry := range block.Entries() {
		line := "  " + render(styleProperty, entry.Name, a.useColors) + ": " + entry.Value.String()
		if entry.Important {
			line += " " + render(styleImportant, "!important", a.useColors)
		}
		line += " " + render(styleOrigin, "("+entry.Precedence.String()+")", a.useColors)
		fmt.Fprintln(out, line)
	}
}
