package tree

import (
	pr "github.com/benoitkugler/cascade/css/properties"
	"github.com/benoitkugler/cascade/css/shorthands"
	"github.com/benoitkugler/cascade/css/validation"
)

// Entry is the winning declaration of a property.
type Entry struct {
	Name       string
	Value      pr.Value
	Important  bool
	Precedence Precedence
}

// Origin returns the origin of the sheet (or element attribute) the
// declaration comes from. Hints, inline and override styles are
// considered as author styles.
func (e Entry) Origin() Origin {
	switch e.Precedence {
	case UserAgentNormal, UserAgentImportant:
		return UserAgent
	case UserNormal, UserImportant:
		return User
	default:
		return Author
	}
}

// Block is an ordered mapping from longhand (or custom property)
// names to their cascaded declaration. Properties keep the position
// of their first candidate declaration.
type Block struct {
	entries  []Entry
	index    map[string]int
	composer *shorthands.Composer
}

func (b *Block) set(e Entry) {
	if i, ok := b.index[e.Name]; ok {
		b.entries[i] = e
		return
	}
	if b.index == nil {
		b.index = map[string]int{}
	}
	b.index[e.Name] = len(b.entries)
	b.entries = append(b.entries, e)
}

// Len returns the number of properties.
func (b Block) Len() int { return len(b.entries) }

// Get returns the declaration for name.
func (b Block) Get(name string) (Entry, bool) {
	i, ok := b.index[name]
	if !ok {
		return Entry{}, false
	}
	return b.entries[i], true
}

// Value returns the value of name, or the empty value.
func (b Block) Value(name string) pr.Value {
	e, _ := b.Get(name)
	return e.Value
}

// Entries returns the declarations, in order.
// The returned slice must not be modified.
func (b Block) Entries() []Entry { return b.entries }

// Declarations returns the block as a declaration list.
func (b Block) Declarations() []validation.Declaration {
	out := make([]validation.Declaration, len(b.entries))
	for i, e := range b.entries {
		out[i] = validation.Declaration{Name: e.Name, Value: e.Value, Important: e.Important}
	}
	return out
}

// Text returns the minimal CSS text of the block,
// using shorthands when possible.
func (b Block) Text() string {
	c := b.composer
	if c == nil {
		c = shorthands.NewComposer(nil, nil)
	}
	return c.ComposeBlock(b.Declarations())
}
