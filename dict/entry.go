package dict

import (
	"io"
	"strings"

	"github.com/npillmayer/kaiseki/errs"
)

// Entry is a format-agnostic dictionary entry.
type Entry struct {
	Surface string
	LeftID  uint16
	RightID uint16
	Cost    int16
	Details []string
}

func (e Entry) wordEntry() WordEntry {
	return WordEntry{Cost: e.Cost, LeftID: e.LeftID, RightID: e.RightID}
}

// EntryReader yields dictionary entries one-by-one.
// It should return io.EOF when the stream is exhausted.
type EntryReader interface {
	Next() (Entry, error)
}

// SliceReader is an EntryReader over an in-memory list of entries.
type SliceReader struct {
	Entries []Entry
	index   int
}

// Next returns the next entry or io.EOF.
func (r *SliceReader) Next() (Entry, error) {
	if r.index >= len(r.Entries) {
		return Entry{}, io.EOF
	}
	e := r.Entries[r.index]
	r.index++
	return e, nil
}

// Kind names a dictionary flavor. The kind determines the layout of the
// detail fields of words.
type Kind string

// Dictionary kinds.
const (
	IPADIC   Kind = "ipadic"
	UniDic   Kind = "unidic"
	KoDic    Kind = "ko-dic"
	CcCedict Kind = "cc-cedict"
)

// ParseKind checks a dictionary kind name. Names are case-insensitive.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(name)); k {
	case IPADIC, UniDic, KoDic, CcCedict:
		return k, nil
	}
	return "", errs.Configf("unknown dictionary kind %q", name)
}
