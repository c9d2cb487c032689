package dict

import (
	"fmt"
	"io"

	"github.com/npillmayer/kaiseki/chardef"
	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/kaiseki/internal/binio"
)

// UnknownDictionary holds, per character category, the entries used to
// synthesize unknown words.
type UnknownDictionary struct {
	categories [][]uint32 // indexed by chardef.CategoryID
	entries    []WordEntry
}

// Entries returns the word entries for a character category, in dictionary
// order. The result must not be modified.
func (u *UnknownDictionary) Entries(id chardef.CategoryID) []uint32 {
	if int(id) >= len(u.categories) {
		return nil
	}
	return u.categories[id]
}

// Entry returns the entry of unknown word i.
func (u *UnknownDictionary) Entry(i uint32) WordEntry {
	return u.entries[i]
}

func errUnknownCategories(have, want int) error {
	return fmt.Errorf("unknown dictionary covers %d categories, character definitions %d", have, want)
}

// WriteTo serializes the unknown dictionary:
//
//	c u16 | c*(n u32 | [n]u32) | m u32 | m*(cost i16 | left u16 | right u16)
func (u *UnknownDictionary) WriteTo(w io.Writer) (int64, error) {
	bw := binio.NewWriter(w)
	bw.U16(uint16(len(u.categories)))
	for _, words := range u.categories {
		bw.Count(len(words))
		bw.Uint32s(words)
	}
	writeEntries(bw, u.entries)
	return bw.N(), bw.Err()
}

// DecodeUnknown reads an unknown dictionary written by WriteTo.
func DecodeUnknown(data []byte) (*UnknownDictionary, error) {
	r := binio.NewReader(data)
	u := &UnknownDictionary{}
	c := int(r.U16())
	if c > chardef.MaxCategories {
		return nil, errs.Deserializef("unknown dictionary: %d categories", c)
	}
	u.categories = make([][]uint32, c)
	for i := range u.categories {
		u.categories[i] = r.Uint32s(r.Count(4))
	}
	u.entries = readEntries(r)
	if err := r.Err(); err != nil {
		return nil, errs.Deserializef("unknown dictionary: %v", err)
	}
	if r.Len() != 0 {
		return nil, errs.Deserializef("unknown dictionary: %d trailing bytes", r.Len())
	}
	for cat, words := range u.categories {
		for _, w := range words {
			if int(w) >= len(u.entries) {
				return nil, errs.Deserializef("unknown dictionary: category %d: word %d out of range", cat, w)
			}
		}
	}
	return u, nil
}
