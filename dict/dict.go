/*
Package dict holds the dictionary structures queried by the tokenizer: the
prefix dictionary of known words, the connection-cost matrix, the unknown-word
dictionary and the character definitions, bundled as a Dictionary. A user
dictionary may be overlaid on top of a system dictionary.

Dictionaries are loaded once from a set of binary blobs and are immutable
afterwards. They may be shared between goroutines without locking.
*/
package dict

import (
	"github.com/npillmayer/kaiseki/chardef"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("kaiseki")
}

// UnknownIndex is the word index of words synthesized from character
// categories.
const UnknownIndex uint32 = 0xFFFFFFFF

// WordID identifies a word within a dictionary. System tells whether the
// index refers to the system dictionary or to the user dictionary.
type WordID struct {
	Index  uint32
	System bool
}

// UnknownWord is the WordID of every unknown word.
var UnknownWord = WordID{Index: UnknownIndex, System: true}

// IsUnknown is a predicate: has w been synthesized for unknown text?
func (w WordID) IsUnknown() bool { return w.Index == UnknownIndex }

// WordEntry holds the cost and the connection context of a word.
type WordEntry struct {
	Cost    int16
	LeftID  uint16
	RightID uint16
}

// Match is a dictionary word found at a position of the input. Len is the
// length of the surface in bytes.
type Match struct {
	Len  int
	Word WordID
}

// Dictionary is a system dictionary.
type Dictionary struct {
	CharDefs *chardef.Definitions
	Prefix   *PrefixDictionary
	Matrix   *Matrix
	Unknown  *UnknownDictionary
	Words    *Details
}

// Entry returns the word entry of a system word.
func (d *Dictionary) Entry(w WordID) WordEntry {
	return d.Prefix.Entry(w.Index)
}

// Details returns the detail fields (part of speech, readings, ...) of a
// system word. Unknown words have the single detail "UNK".
func (d *Dictionary) Details(w WordID) []string {
	if w.IsUnknown() {
		return []string{"UNK"}
	}
	return d.Words.Get(w.Index)
}

// validate checks that all context ids are within the matrix bounds.
func (d *Dictionary) validate() error {
	if err := d.Matrix.checkEntries(d.Prefix.entries); err != nil {
		return err
	}
	if err := d.Matrix.checkEntries(d.Unknown.entries); err != nil {
		return err
	}
	if n := len(d.Unknown.categories); n != d.CharDefs.Len() {
		return errUnknownCategories(n, d.CharDefs.Len())
	}
	return nil
}
