package kaiseki

import "github.com/npillmayer/kaiseki/dict"

// Token is a word of a tokenized text. ByteStart and ByteEnd are offsets
// into the text given to the tokenizer (or, after character filtering, into
// the original text).
type Token struct {
	Text           string
	ByteStart      int
	ByteEnd        int
	Position       int
	PositionLength int
	WordID         dict.WordID

	details  []string
	resolved bool
	sys      *dict.Dictionary
	user     *dict.UserDictionary
}

// Details returns the detail fields of the token's word, looking them up in
// the dictionary on first call. Unknown words have the details ["UNK"].
// The result is nil if the dictionary has no details for the word.
func (t *Token) Details() []string {
	if !t.resolved {
		t.details = t.lookupDetails()
		t.resolved = true
	}
	return t.details
}

// SetDetails overrides the token's details.
func (t *Token) SetDetails(details []string) {
	t.details = details
	t.resolved = true
}

// Detail returns detail field i, or "" if there is none.
func (t *Token) Detail(i int) string {
	d := t.Details()
	if i < 0 || i >= len(d) {
		return ""
	}
	return d[i]
}

func (t *Token) lookupDetails() []string {
	switch {
	case t.WordID.IsUnknown():
		return []string{"UNK"}
	case !t.WordID.System && t.user != nil:
		return t.user.Details(t.WordID.Index)
	case t.WordID.System && t.sys != nil:
		return t.sys.Details(t.WordID)
	}
	return nil
}

// IsUnknown is a predicate: was the token synthesized for unknown text?
func (t *Token) IsUnknown() bool { return t.WordID.IsUnknown() }
