package shorthands

import (
	"sort"
	"strings"

	pr "github.com/benoitkugler/cascade/css/properties"
	"github.com/benoitkugler/cascade/css/validation"
)

// retained keeps the winning declaration of each property:
// the last one, unless an earlier one is important.
func retained(decls []validation.Declaration) []validation.Declaration {
	winner := make(map[string]int, len(decls))
	for i, decl := range decls {
		if j, ok := winner[decl.Name]; ok && decls[j].Important && !decl.Important {
			continue
		}
		winner[decl.Name] = i
	}
	out := make([]validation.Declaration, 0, len(winner))
	for i, decl := range decls {
		if winner[decl.Name] == i {
			out = append(out, decl)
		}
	}
	return out
}

// overridable lists, per shorthand, the longhands the shorthand can
// only write with their initial value. When they are not initial,
// the shorthand resets them and their own declaration follows.
var overridable = map[string][]string{
	"font": append(fontResets[:], "font-variant-caps"),
}

type serialized struct {
	pos       int
	important bool
	text      string
}

// blockComposer composes the shorthands of one declaration block.
type blockComposer struct {
	*Composer
	decls    []validation.Declaration
	index    map[string]int
	consumed []bool
}

// members returns the positions of the longhands of def,
// or false if one of them is missing or already used.
func (b *blockComposer) members(def pr.Shorthand) ([]int, bool) {
	out := make([]int, len(def.Longhands))
	for j, name := range def.Longhands {
		i, ok := b.index[name]
		if !ok || b.consumed[i] {
			return nil, false
		}
		out[j] = i
	}
	return out, true
}

// compose tries to replace the longhands of def by the shorthand.
//
// When the longhands have mixed priorities, the shorthand is built with
// normal priority from every value, and the important longhands are
// left for their own declaration. Overridable longhands which prevent the
// composition are reset by the shorthand and written right after it.
func (b *blockComposer) compose(def pr.Shorthand, members []int) (serialized, bool) {
	important := b.decls[members[0]].Important
	for _, i := range members[1:] {
		if b.decls[i].Important != important {
			important = false
			break
		}
	}
	declared := make(map[string]Declared, len(members))
	first := len(b.decls)
	for _, i := range members {
		decl := b.decls[i]
		declared[decl.Name] = Declared{Value: decl.Value, Important: important}
		if decl.Important == important {
			first = min(first, i)
		}
	}

	text, ok := b.Compose(def.Name, declared)
	var overridden []int
	if !ok {
		reset := false
		for _, name := range overridable[def.Name] {
			i := b.index[name]
			initial := b.registry.Initial(name)
			if b.decls[i].Value.Equal(initial) {
				continue
			}
			reset = true
			declared[name] = Declared{Value: initial, Important: important}
			if b.decls[i].Important == important {
				overridden = append(overridden, i)
			}
		}
		if !reset {
			return serialized{}, false
		}
		if text, ok = b.Compose(def.Name, declared); !ok {
			return serialized{}, false
		}
	}

	for _, i := range members {
		if b.decls[i].Important == important {
			b.consumed[i] = true
		}
	}
	chunks := []string{text}
	for _, i := range overridden {
		decl := b.decls[i]
		chunks = append(chunks, formatDeclaration(decl.Name, decl.Value.String(), decl.Important))
	}
	return serialized{pos: first, important: important, text: strings.Join(chunks, " ")}, true
}

// ComposeBlock returns the minimal text of a declaration block,
// using shorthands when they are lossless, the largest first.
// Each shorthand takes the place of its first longhand. Normal
// declarations come first, followed by the important ones.
func (c *Composer) ComposeBlock(decls []validation.Declaration) string {
	b := blockComposer{Composer: c, decls: retained(decls), index: map[string]int{}}
	for i, decl := range b.decls {
		b.index[decl.Name] = i
	}
	b.consumed = make([]bool, len(b.decls))

	var items []serialized
	for _, def := range c.registry.Shorthands() {
		members, ok := b.members(def)
		if !ok {
			continue
		}
		if item, ok := b.compose(def, members); ok {
			items = append(items, item)
		}
	}
	for i, decl := range b.decls {
		if !b.consumed[i] {
			items = append(items, serialized{pos: i, important: decl.Important, text: formatDeclaration(decl.Name, decl.Value.String(), decl.Important)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].important != items[j].important {
			return !items[i].important
		}
		return items[i].pos < items[j].pos
	})
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.text
	}
	return strings.Join(out, " ")
}

// ComposeString expands the given declarations and composes
// them back. Invalid declarations are dropped, and reported by
// the returned error.
func (c *Composer) ComposeString(css string) (string, error) {
	decls, err := c.decomposer.ExpandDeclarationsString(css, nil)
	return c.ComposeBlock(decls), err
}
