/*
Package dat implements a frozen double-array trie over a dense rune alphabet.

The trie maps string keys to non-zero uint32 values. Its main operation is a
rune-by-rune walk from the root, which visits every key that is a prefix of
the input in order of increasing length:

	it := d.Iterator()
	for i, r := range input {
		if it.Next(r) == 0 {
			break
		}
		if v, ok := it.Value(); ok {
			// input[:i+utf8.RuneLen(r)] is a key with value v
		}
	}

A DAT is built with a Builder and is immutable afterwards; it may be shared
between goroutines without locking.
*/
package dat

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("kaiseki")
}

// DAT is a frozen double-array trie.
//   - States are indices into Base/Check (0 is unused, Root is 1).
//   - Transition: t := Base[s] + c; valid if Check[t] == s; next state is t.
//   - c is a dense alphabet ID in [1..Sigma]. c==0 means "not in alphabet".
//   - Values[s] != 0 marks s as terminal. The trie does not interpret values.
type DAT struct {
	Root  uint32
	Sigma uint16 // size of the dense alphabet

	Base   []int32  // len == N
	Check  []int32  // len == N
	Values []uint32 // len == N

	Alphabet Alphabet
}

// NStates returns number of allocated slots/states in the arrays.
func (d *DAT) NStates() int { return len(d.Base) }

// Transition returns (nextState, ok). dense must be in [1..Sigma].
func (d *DAT) Transition(state uint32, dense uint16) (uint32, bool) {
	if dense == 0 || int(state) >= len(d.Base) {
		return 0, false
	}
	t := d.Base[state] + int32(dense)
	if t <= 0 || int(t) >= len(d.Check) {
		return 0, false
	}
	if d.Check[t] != int32(state) {
		return 0, false
	}
	return uint32(t), true
}

// Dense maps a rune to its dense alphabet ID, 0 if it is not in the alphabet.
func (d *DAT) Dense(r rune) uint16 { return d.Alphabet.Dense(r) }

// Value returns the value stored at a state, if the state is terminal.
func (d *DAT) Value(state uint32) (uint32, bool) {
	if int(state) >= len(d.Values) {
		return 0, false
	}
	v := d.Values[state]
	return v, v != 0
}

// Lookup returns the value stored for key, if key is in the trie.
func (d *DAT) Lookup(key string) (uint32, bool) {
	if key == "" {
		return 0, false
	}
	it := d.Iterator()
	for _, r := range key {
		if it.Next(r) == 0 {
			return 0, false
		}
	}
	return it.Value()
}

// Iterator starts a walk at the root state.
func (d *DAT) Iterator() Iterator {
	return Iterator{d: d, state: d.Root}
}

// Iterator walks the trie one rune at a time. Once a transition fails the
// iterator is dead and stays dead.
type Iterator struct {
	d     *DAT
	state uint32
	dead  bool
}

// Next follows the transition for r and returns the new state, or 0 if there
// is none.
func (it *Iterator) Next(r rune) uint32 {
	if it.dead || it.d == nil {
		return 0
	}
	next, ok := it.d.Transition(it.state, it.d.Dense(r))
	if !ok {
		it.dead = true
		return 0
	}
	it.state = next
	return next
}

// Value returns the value of the current state, if it is terminal.
func (it *Iterator) Value() (uint32, bool) {
	if it.dead || it.d == nil {
		return 0, false
	}
	return it.d.Value(it.state)
}

// Stats reports on the space efficiency of a trie.
type Stats struct {
	UsedSlots  int
	TotalSlots int
	MaxStateID int
	Terminals  int
	Sigma      int
}

// FillRatio is the share of array slots occupied by states.
func (s Stats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// Stats collects statistics about d.
func (d *DAT) Stats() Stats {
	stats := Stats{
		TotalSlots: d.NStates(),
		MaxStateID: int(d.Root),
		Sigma:      int(d.Sigma),
	}
	for i := range d.Check {
		if i == int(d.Root) || d.Check[i] != 0 {
			stats.UsedSlots++
			if i > stats.MaxStateID {
				stats.MaxStateID = i
			}
		}
		if i < len(d.Values) && d.Values[i] != 0 {
			stats.Terminals++
		}
	}
	return stats
}
