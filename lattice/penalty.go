package lattice

import (
	"unicode"
	"unicode/utf8"
)

// Penalty makes long words expensive, so that compounds decompose into their
// parts. A word with no more than KanjiThreshold runes is never penalized.
// A word consisting of kanji only pays KanjiPenalty per rune beyond
// KanjiThreshold, any other word pays OtherPenalty per rune beyond
// OtherThreshold.
type Penalty struct {
	KanjiThreshold int
	KanjiPenalty   int
	OtherThreshold int
	OtherPenalty   int
}

// DefaultPenalty returns the penalty used by decompose mode.
func DefaultPenalty() Penalty {
	return Penalty{
		KanjiThreshold: 2,
		KanjiPenalty:   3000,
		OtherThreshold: 7,
		OtherPenalty:   1700,
	}
}

// Cost returns the penalty for a word with a given surface.
func (p *Penalty) Cost(surface string) int64 {
	n := utf8.RuneCountInString(surface)
	if n <= p.KanjiThreshold {
		return 0
	}
	if isKanjiOnly(surface) {
		return int64(n-p.KanjiThreshold) * int64(p.KanjiPenalty)
	}
	if n > p.OtherThreshold {
		return int64(n-p.OtherThreshold) * int64(p.OtherPenalty)
	}
	return 0
}

func isKanjiOnly(s string) bool {
	for _, r := range s {
		if !unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return true
}
