package charfilter

import "sort"

// OffsetTable maps byte positions of a filtered text back to the text the
// filter was applied to. Offsets are strictly increasing positions in the
// filtered text; Diffs[k] is the cumulative difference to add to a position
// at or beyond Offsets[k].
type OffsetTable struct {
	Offsets []int
	Diffs   []int
}

// add appends an entry. An entry at the same offset as the last one replaces
// it.
func (t *OffsetTable) add(offset, diff int) {
	if n := len(t.Offsets); n > 0 && t.Offsets[n-1] == offset {
		t.Diffs[n-1] = diff
		return
	}
	t.Offsets = append(t.Offsets, offset)
	t.Diffs = append(t.Diffs, diff)
}

func (t *OffsetTable) lastDiff() int {
	if len(t.Diffs) == 0 {
		return 0
	}
	return t.Diffs[len(t.Diffs)-1]
}

// replaced records the replacement of a span of targetLen bytes ending at
// byte inputEnd of the input by replLen bytes.
func (t *OffsetTable) replaced(inputEnd, targetLen, replLen int) {
	diff := targetLen - replLen
	if diff == 0 {
		return
	}
	prev := t.lastDiff()
	if diff > 0 { // replacement is shorter
		t.add(inputEnd-diff-prev, prev+diff)
		return
	}
	start := inputEnd - prev // replacement is longer
	for i := 0; i < -diff; i++ {
		t.add(start+i, prev-i-1)
	}
}

// Len returns the number of entries.
func (t *OffsetTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Offsets)
}

// Correct maps position i of the filtered text to a position in the input
// text. Results are clamped at 0.
func (t *OffsetTable) Correct(i int) int {
	if t.Len() == 0 {
		return i
	}
	k := sort.Search(len(t.Offsets), func(k int) bool { return t.Offsets[k] > i }) - 1
	if k < 0 {
		return i
	}
	if c := i + t.Diffs[k]; c > 0 {
		return c
	}
	return 0
}

// Compose flattens a chain of offset tables into one. tables[0] belongs to
// the first filter applied, tables[len-1] to the last; finalLen is the length
// of the text produced by the last filter. The result maps positions of the
// final text directly to positions of the original text.
func Compose(finalLen int, tables ...*OffsetTable) *OffsetTable {
	out := &OffsetTable{}
	prev := 0
	for i := 0; i <= finalLen; i++ {
		c := i
		for k := len(tables) - 1; k >= 0; k-- {
			c = tables[k].Correct(c)
		}
		if d := c - i; d != prev {
			out.Offsets = append(out.Offsets, i)
			out.Diffs = append(out.Diffs, d)
			prev = d
		}
	}
	return out
}
