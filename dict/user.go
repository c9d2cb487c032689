package dict

import (
	"errors"
	"io"

	"github.com/armon/go-radix"
	"github.com/npillmayer/kaiseki/errs"
)

// UserDictionary is a dictionary of additional words, consulted before the
// system dictionary. Its word ids have System == false.
type UserDictionary struct {
	tree    *radix.Tree // surface -> []uint32 word indices
	entries []WordEntry
	details Details
}

// NewUserDictionary reads all entries from r. Every entry's context ids must
// be valid for m, the connection matrix of the system dictionary the user
// dictionary will be overlaid on; otherwise, or if m is nil, an error of kind
// errs.ErrArgs is returned.
func NewUserDictionary(r EntryReader, m *Matrix) (*UserDictionary, error) {
	if m == nil {
		return nil, errs.Argsf("user dictionary: no connection matrix")
	}
	u := &UserDictionary{tree: radix.New()}
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := u.add(e, m); err != nil {
			return nil, err
		}
	}
	tracer().Infof("user dictionary: %d words, %d surfaces", len(u.entries), u.tree.Len())
	return u, nil
}

func (u *UserDictionary) add(e Entry, m *Matrix) error {
	if e.Surface == "" {
		return errs.Argsf("user dictionary: empty surface")
	}
	we := e.wordEntry()
	if !m.Accepts(we) {
		fw, bw := m.Size()
		return errs.Argsf("user dictionary: %q: context ids (%d, %d) outside matrix %dx%d",
			e.Surface, e.LeftID, e.RightID, fw, bw)
	}
	if err := u.details.Append(e.Details); err != nil {
		return errs.Argsf("user dictionary: %v", err)
	}
	index := uint32(len(u.entries))
	u.entries = append(u.entries, we)
	var words []uint32
	if v, ok := u.tree.Get(e.Surface); ok {
		words = v.([]uint32)
	}
	u.tree.Insert(e.Surface, append(words, index))
	return nil
}

// Validate checks the context ids of all user words against connection
// matrix m. A user dictionary must be validated against the matrix of every
// system dictionary it is overlaid on.
func (u *UserDictionary) Validate(m *Matrix) error {
	if m == nil {
		return errs.Argsf("user dictionary: no connection matrix")
	}
	for i, we := range u.entries {
		if !m.Accepts(we) {
			fw, bw := m.Size()
			return errs.Argsf("user dictionary: word %d: context ids (%d, %d) outside matrix %dx%d",
				i, we.LeftID, we.RightID, fw, bw)
		}
	}
	return nil
}

// Lookup appends to out every user word whose surface is a prefix of input,
// in order of increasing length.
func (u *UserDictionary) Lookup(input string, out []Match) []Match {
	u.tree.WalkPath(input, func(s string, v interface{}) bool {
		for _, w := range v.([]uint32) {
			out = append(out, Match{Len: len(s), Word: WordID{Index: w}})
		}
		return false
	})
	return out
}

// Entry returns the entry of user word i.
func (u *UserDictionary) Entry(i uint32) WordEntry {
	return u.entries[i]
}

// Details returns the detail fields of user word i.
func (u *UserDictionary) Details(i uint32) []string {
	return u.details.Get(i)
}

// Len returns the number of user words.
func (u *UserDictionary) Len() int { return len(u.entries) }
