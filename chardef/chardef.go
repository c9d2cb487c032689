/*
Package chardef holds character definitions: the assignment of code points to
character categories, and per category the rules for unknown-word
synthesis.

Every code point resolves to at least one category. Code points not covered
by any category resolve to DEFAULT. Membership of code points in categories is
stored as one roaring bitmap per category; for the BMP a dense table of
category sets is derived at construction time, as tokenization asks for the
categories of every input rune.
*/
package chardef

import (
	"math/bits"

	"github.com/RoaringBitmap/roaring"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("kaiseki")
}

// DefaultCategory is the name of the fallback category.
const DefaultCategory = "DEFAULT"

// MaxCategories is the maximum number of categories in a definition.
const MaxCategories = 32

// CategoryID identifies a category within a Definitions set.
type CategoryID uint8

// Category carries the unknown-word rules of a character class.
type Category struct {
	Name   string
	Invoke bool // synthesize unknown words even if dictionary words match
	Group  bool // group consecutive runes of this category into one unknown word
	Length int  // max runes of a grouped unknown word, 0 = unbounded
}

// Set is a set of category IDs.
type Set uint32

// Has is a predicate: is id a member of s?
func (s Set) Has(id CategoryID) bool { return s&(1<<id) != 0 }

// Len returns the number of categories in s.
func (s Set) Len() int { return bits.OnesCount32(uint32(s)) }

// Each calls fn for every category of s, in ascending id order.
func (s Set) Each(fn func(CategoryID)) {
	for s != 0 {
		id := CategoryID(bits.TrailingZeros32(uint32(s)))
		fn(id)
		s &^= 1 << id
	}
}

// Definitions maps code points to categories. Immutable after construction.
type Definitions struct {
	categories []Category
	members    []*roaring.Bitmap
	defaultID  CategoryID
	bmp        []Set // derived, len 0x10000
}

func newDefinitions(cats []Category, members []*roaring.Bitmap, def CategoryID) *Definitions {
	d := &Definitions{
		categories: cats,
		members:    members,
		defaultID:  def,
		bmp:        make([]Set, 0x10000),
	}
	for id, bm := range members {
		it := bm.Iterator()
		for it.HasNext() {
			cp := it.Next()
			if cp > 0xFFFF {
				break
			}
			d.bmp[cp] |= 1 << uint(id)
		}
	}
	for cp, s := range d.bmp {
		if s == 0 {
			d.bmp[cp] = 1 << def
		}
	}
	return d
}

// Lookup returns the categories of r. The result is never empty.
func (d *Definitions) Lookup(r rune) Set {
	if r >= 0 && r <= 0xFFFF {
		return d.bmp[r]
	}
	var s Set
	if r >= 0 {
		for id, bm := range d.members {
			if bm.Contains(uint32(r)) {
				s |= 1 << uint(id)
			}
		}
	}
	if s == 0 {
		s = 1 << d.defaultID
	}
	return s
}

// Category returns the category with a given id.
func (d *Definitions) Category(id CategoryID) Category {
	return d.categories[id]
}

// ID finds a category by name.
func (d *Definitions) ID(name string) (CategoryID, bool) {
	for i, c := range d.categories {
		if c.Name == name {
			return CategoryID(i), true
		}
	}
	return 0, false
}

// Len returns the number of categories.
func (d *Definitions) Len() int { return len(d.categories) }

// Default returns the id of the DEFAULT category.
func (d *Definitions) Default() CategoryID { return d.defaultID }
