package chardef

import (
	"github.com/RoaringBitmap/roaring"
	"github.com/npillmayer/kaiseki/errs"
)

// Builder assembles character definitions programmatically. Categories are
// numbered in order of definition; a DEFAULT category is appended by Build if
// none has been defined.
type Builder struct {
	categories []Category
	members    []*roaring.Bitmap
	err        error
}

// NewBuilder creates an empty character definitions builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Define adds a category. Re-defining a category replaces its rules but keeps
// its code points.
func (b *Builder) Define(c Category) *Builder {
	if b.err != nil {
		return b
	}
	if c.Name == "" || c.Length < 0 {
		b.err = errs.Argsf("invalid character category %+v", c)
		return b
	}
	for i := range b.categories {
		if b.categories[i].Name == c.Name {
			b.categories[i] = c
			return b
		}
	}
	if len(b.categories) == MaxCategories {
		b.err = errs.Argsf("more than %d character categories", MaxCategories)
		return b
	}
	b.categories = append(b.categories, c)
	b.members = append(b.members, roaring.New())
	return b
}

// Range assigns the code points lo..hi (inclusive) to the named categories,
// which must have been defined before.
func (b *Builder) Range(lo, hi rune, names ...string) *Builder {
	if b.err != nil {
		return b
	}
	if lo < 0 || hi < lo || hi > 0x10FFFF {
		b.err = errs.Argsf("invalid code point range %#x..%#x", lo, hi)
		return b
	}
	for _, name := range names {
		id, ok := b.index(name)
		if !ok {
			b.err = errs.Argsf("undefined character category %q", name)
			return b
		}
		b.members[id].AddRange(uint64(lo), uint64(hi)+1)
	}
	return b
}

func (b *Builder) index(name string) (int, bool) {
	for i, c := range b.categories {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Build returns the finished definitions, or the first error encountered
// while defining.
func (b *Builder) Build() (*Definitions, error) {
	if b.err != nil {
		return nil, b.err
	}
	def, ok := b.index(DefaultCategory)
	if !ok {
		b.Define(Category{Name: DefaultCategory})
		if b.err != nil {
			return nil, b.err
		}
		def = len(b.categories) - 1
	}
	for _, bm := range b.members {
		bm.RunOptimize()
	}
	cats := append([]Category(nil), b.categories...)
	return newDefinitions(cats, b.members, CategoryID(def)), nil
}
