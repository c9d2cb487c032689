package dict

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/npillmayer/kaiseki/dat"
	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/kaiseki/internal/binio"
)

// maxHomographs is the maximum number of words sharing one surface. The count
// is packed into the low bits of a trie value.
const maxHomographs = 1<<5 - 1

func packValue(offset, count int) uint32 {
	return uint32(offset)<<5 | uint32(count)
}

func unpackValue(v uint32) (offset, count int) {
	return int(v >> 5), int(v & maxHomographs)
}

// PrefixDictionary finds all dictionary words which are prefixes of an
// input. The trie maps a surface to a run of word indices in words; the
// entries are indexed by word index.
type PrefixDictionary struct {
	trie    *dat.DAT
	words   []uint32
	entries []WordEntry
}

// Lookup appends to out every word whose surface is a prefix of input, in
// order of increasing length. Runes outside of the dictionary's alphabet end
// the search.
func (p *PrefixDictionary) Lookup(input string, out []Match) []Match {
	it := p.trie.Iterator()
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		i += size
		if it.Next(r) == 0 {
			break
		}
		if v, ok := it.Value(); ok {
			off, n := unpackValue(v)
			for _, w := range p.words[off : off+n] {
				out = append(out, Match{Len: i, Word: WordID{Index: w, System: true}})
			}
		}
	}
	return out
}

// Entry returns the entry of word index i.
func (p *PrefixDictionary) Entry(i uint32) WordEntry {
	return p.entries[i]
}

// Len returns the number of words.
func (p *PrefixDictionary) Len() int { return len(p.entries) }

// Stats returns statistics about the underlying trie.
func (p *PrefixDictionary) Stats() dat.Stats { return p.trie.Stats() }

// writeValsTo serializes word indices and entries:
//
//	n u32 | words [n]u32 | m u32 | m*(cost i16 | left u16 | right u16)
func (p *PrefixDictionary) writeValsTo(w io.Writer) (int64, error) {
	bw := binio.NewWriter(w)
	bw.Count(len(p.words))
	bw.Uint32s(p.words)
	writeEntries(bw, p.entries)
	return bw.N(), bw.Err()
}

func writeEntries(bw *binio.Writer, entries []WordEntry) {
	bw.Count(len(entries))
	for _, e := range entries {
		bw.I16(e.Cost)
		bw.U16(e.LeftID)
		bw.U16(e.RightID)
	}
}

func readEntries(r *binio.Reader) []WordEntry {
	n := r.Count(6)
	entries := make([]WordEntry, n)
	for i := range entries {
		entries[i] = WordEntry{Cost: r.I16(), LeftID: r.U16(), RightID: r.U16()}
	}
	return entries
}

// decodePrefix creates a prefix dictionary from a trie blob and a value blob,
// checking that every trie value and word index is in range.
func decodePrefix(trieData, vals []byte) (*PrefixDictionary, error) {
	trie, err := dat.Decode(trieData)
	if err != nil {
		return nil, err
	}
	r := binio.NewReader(vals)
	p := &PrefixDictionary{trie: trie}
	p.words = r.Uint32s(r.Count(4))
	p.entries = readEntries(r)
	if err := r.Err(); err != nil {
		return nil, errs.Deserializef("dictionary values: %v", err)
	}
	if r.Len() != 0 {
		return nil, errs.Deserializef("dictionary values: %d trailing bytes", r.Len())
	}
	if err := p.validate(); err != nil {
		return nil, errs.Deserializef("dictionary values: %v", err)
	}
	return p, nil
}

func (p *PrefixDictionary) validate() error {
	for s, v := range p.trie.Values {
		if v == 0 {
			continue
		}
		off, n := unpackValue(v)
		if n == 0 || off+n > len(p.words) {
			return fmt.Errorf("trie state %d: word run %d+%d out of range", s, off, n)
		}
	}
	for i, w := range p.words {
		if int(w) >= len(p.entries) {
			return fmt.Errorf("word index %d at %d out of range", w, i)
		}
	}
	return nil
}
