package dict

import (
	"errors"
	"io"

	"github.com/npillmayer/kaiseki/chardef"
	"github.com/npillmayer/kaiseki/dat"
	"github.com/npillmayer/kaiseki/errs"
)

// Builder assembles a system dictionary in memory. Word indices are assigned
// in order of insertion.
type Builder struct {
	defs       *chardef.Definitions
	matrix     *Matrix
	surfaces   []string // in order of first appearance
	bySurface  map[string][]uint32
	entries    []WordEntry
	details    Details
	unknown    [][]uint32
	unkEntries []WordEntry
}

// NewBuilder creates a dictionary builder for given character definitions
// and connection matrix.
func NewBuilder(defs *chardef.Definitions, m *Matrix) *Builder {
	return &Builder{
		defs:      defs,
		matrix:    m,
		bySurface: make(map[string][]uint32),
		unknown:   make([][]uint32, defs.Len()),
	}
}

// Add adds a word.
func (b *Builder) Add(e Entry) error {
	if e.Surface == "" {
		return errs.Argsf("dictionary entry with empty surface")
	}
	we := e.wordEntry()
	if !b.matrix.Accepts(we) {
		return errs.Argsf("entry %q: context ids (%d, %d) outside connection matrix",
			e.Surface, e.LeftID, e.RightID)
	}
	words := b.bySurface[e.Surface]
	if len(words) == maxHomographs {
		return errs.Argsf("entry %q: more than %d words share the surface", e.Surface, maxHomographs)
	}
	if words == nil {
		b.surfaces = append(b.surfaces, e.Surface)
	}
	if err := b.details.Append(e.Details); err != nil {
		return errs.Argsf("entry %q: %v", e.Surface, err)
	}
	b.bySurface[e.Surface] = append(words, uint32(len(b.entries)))
	b.entries = append(b.entries, we)
	return nil
}

// AddReader adds all words of a stream of entries.
func (b *Builder) AddReader(r EntryReader) error {
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err = b.Add(e); err != nil {
			return err
		}
	}
}

// AddUnknown adds an unknown-word entry for a character category. The
// surface and details of e are ignored.
func (b *Builder) AddUnknown(category string, e Entry) error {
	id, ok := b.defs.ID(category)
	if !ok {
		return errs.Argsf("undefined character category %q", category)
	}
	we := e.wordEntry()
	if !b.matrix.Accepts(we) {
		return errs.Argsf("unknown entry for %s: context ids (%d, %d) outside connection matrix",
			category, e.LeftID, e.RightID)
	}
	b.unknown[id] = append(b.unknown[id], uint32(len(b.unkEntries)))
	b.unkEntries = append(b.unkEntries, we)
	return nil
}

// Build freezes the collected words into a dictionary.
func (b *Builder) Build() (*Dictionary, error) {
	tb := dat.NewBuilder()
	words := make([]uint32, 0, len(b.entries))
	for _, s := range b.surfaces {
		ids := b.bySurface[s]
		if len(words) >= 1<<27 {
			return nil, errs.Argsf("dictionary too large")
		}
		if err := tb.Insert(s, packValue(len(words), len(ids))); err != nil {
			return nil, errs.Argsf("entry %q: %v", s, err)
		}
		words = append(words, ids...)
	}
	d := &Dictionary{
		CharDefs: b.defs,
		Prefix: &PrefixDictionary{
			trie:    tb.Freeze(),
			words:   words,
			entries: b.entries,
		},
		Matrix: b.matrix,
		Unknown: &UnknownDictionary{
			categories: b.unknown,
			entries:    b.unkEntries,
		},
		Words: &Details{index: b.details.index, data: b.details.data},
	}
	stats := d.Prefix.Stats()
	tracer().Infof("dictionary built: %d words, %d surfaces, trie fill=%.2f",
		len(b.entries), len(b.surfaces), stats.FillRatio())
	return d, nil
}
