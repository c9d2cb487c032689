/*
Package lattice builds the word lattice of an input text and finds its
minimum-cost path.

For every byte position reachable from the start of the text, the lattice
holds the candidate words starting there: user dictionary words, system
dictionary words and unknown words synthesized from character categories. Each
candidate is connected to its cheapest predecessor while the lattice is built
(forward Viterbi), so the best path is found by following back-pointers from
EOS.

Ties between equally cheap predecessors are broken deterministically: the
longer predecessor wins, then a dictionary word beats an unknown word, then the
lower word index wins, then a system word beats a user word.
*/
package lattice

import (
	"math"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/kaiseki/chardef"
	"github.com/npillmayer/kaiseki/dict"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("kaiseki")
}

// Node is a word candidate in the lattice. Start and End are byte offsets
// into the text, Cost is the cost of the cheapest path from BOS up to and
// including the node.
type Node struct {
	Word  dict.WordID
	Entry dict.WordEntry
	Start int
	End   int
	Cost  int64
	prev  int32 // best predecessor, -1 for BOS
}

// Len returns the length of the node's surface in bytes.
func (n *Node) Len() int { return n.End - n.Start }

const bos = 0 // index of the BOS node

// Lattice is the word lattice of one text. Lattices are not safe for
// concurrent use; obtain one per tokenization call with Acquire.
type Lattice struct {
	text    string
	nodes   []Node
	ends    [][]int32 // ends[p] = nodes ending at byte position p
	matches []dict.Match
	eos     Node
}

var pool = sync.Pool{
	New: func() interface{} { return &Lattice{} },
}

// Acquire returns an empty lattice from a pool.
func Acquire() *Lattice {
	return pool.Get().(*Lattice)
}

// Release returns a lattice to the pool. The lattice and its nodes must not
// be used afterwards.
func Release(l *Lattice) {
	l.text = ""
	pool.Put(l)
}

func (l *Lattice) reset(text string) {
	l.text = text
	l.nodes = l.nodes[:0]
	if cap(l.ends) < len(text)+1 {
		l.ends = append(l.ends[:cap(l.ends)], make([][]int32, len(text)+1-cap(l.ends))...)
	}
	l.ends = l.ends[:len(text)+1]
	for i := range l.ends {
		l.ends[i] = l.ends[i][:0]
	}
	l.eos = Node{Start: len(text), End: len(text), prev: -1}
}

// Node returns the node with index i.
func (l *Lattice) Node(i int32) *Node {
	return &l.nodes[i]
}

// Len returns the number of nodes in the lattice, including BOS.
func (l *Lattice) Len() int { return len(l.nodes) }

// Build fills the lattice for text. user may be nil. If penalty is non-nil,
// long words are penalized as in decompose mode.
func (l *Lattice) Build(text string, sys *dict.Dictionary, user *dict.UserDictionary, penalty *Penalty) {
	l.reset(text)
	l.nodes = append(l.nodes, Node{prev: -1})
	l.ends[0] = append(l.ends[0], bos)
	for p := 0; p < len(text); p++ {
		if len(l.ends[p]) == 0 {
			continue // not reachable, or inside a rune
		}
		l.addCandidates(p, sys, user, penalty)
	}
	l.connectEOS(sys.Matrix)
	tracer().Debugf("lattice: %d bytes, %d nodes", len(text), len(l.nodes))
}

func (l *Lattice) addCandidates(p int, sys *dict.Dictionary, user *dict.UserDictionary, penalty *Penalty) {
	rest := l.text[p:]
	l.matches = l.matches[:0]
	if user != nil {
		l.matches = user.Lookup(rest, l.matches)
	}
	l.matches = sys.Prefix.Lookup(rest, l.matches)
	for _, m := range l.matches {
		var e dict.WordEntry
		if m.Word.System {
			e = sys.Prefix.Entry(m.Word.Index)
		} else {
			e = user.Entry(m.Word.Index)
		}
		l.add(p, p+m.Len, m.Word, e, sys.Matrix, penalty)
	}
	found := len(l.matches) > 0
	r, _ := utf8.DecodeRuneInString(rest)
	cats := sys.CharDefs.Lookup(r)
	added := false
	cats.Each(func(id chardef.CategoryID) {
		cat := sys.CharDefs.Category(id)
		if found && !cat.Invoke {
			return
		}
		end := p + unknownLength(rest, sys.CharDefs, id, cat)
		for _, w := range sys.Unknown.Entries(id) {
			l.add(p, end, dict.UnknownWord, sys.Unknown.Entry(w), sys.Matrix, penalty)
			added = true
		}
	})
	if !found && !added {
		// no unknown entries for the categories of r: keep the path alive
		_, size := utf8.DecodeRuneInString(rest)
		l.add(p, p+size, dict.UnknownWord, dict.WordEntry{}, sys.Matrix, penalty)
	}
}

// unknownLength returns the byte length of an unknown word of category id
// starting at text[0].
func unknownLength(text string, defs *chardef.Definitions, id chardef.CategoryID, cat chardef.Category) int {
	_, n := utf8.DecodeRuneInString(text)
	if !cat.Group {
		return n
	}
	runes := 1
	for n < len(text) && (cat.Length == 0 || runes < cat.Length) {
		r, size := utf8.DecodeRuneInString(text[n:])
		if !defs.Lookup(r).Has(id) {
			break
		}
		n += size
		runes++
	}
	return n
}

// add connects a candidate to its best predecessor ending at start and
// appends it to the lattice.
func (l *Lattice) add(start, end int, w dict.WordID, e dict.WordEntry, m *dict.Matrix, penalty *Penalty) {
	n := Node{Word: w, Entry: e, Start: start, End: end}
	l.connect(&n, l.ends[start], m)
	n.Cost += int64(e.Cost)
	if penalty != nil {
		n.Cost += penalty.Cost(l.text[start:end])
	}
	l.nodes = append(l.nodes, n)
	l.ends[end] = append(l.ends[end], int32(len(l.nodes)-1))
}

// connect sets n.prev to the cheapest of the predecessors and n.Cost to the
// path cost up to n's left edge.
func (l *Lattice) connect(n *Node, preds []int32, m *dict.Matrix) {
	n.prev = -1
	best := int64(math.MaxInt64)
	for _, i := range preds {
		q := &l.nodes[i]
		c := q.Cost + int64(m.Cost(q.Entry.RightID, n.Entry.LeftID))
		if c < best || (c == best && preferred(q, &l.nodes[n.prev])) {
			best, n.prev = c, i
		}
	}
	n.Cost = best
}

// preferred decides between two predecessors of equal path cost.
func preferred(q, b *Node) bool {
	if q.Len() != b.Len() {
		return q.Len() > b.Len()
	}
	if qu, bu := q.Word.IsUnknown(), b.Word.IsUnknown(); qu != bu {
		return bu
	}
	if q.Word.Index != b.Word.Index {
		return q.Word.Index < b.Word.Index
	}
	return q.Word.System && !b.Word.System
}

func (l *Lattice) connectEOS(m *dict.Matrix) {
	if len(l.text) == 0 {
		return
	}
	l.connect(&l.eos, l.ends[len(l.text)], m)
}

// BestPath appends the indices of the nodes on the minimum-cost path from BOS
// to EOS to out, in text order. BOS and EOS are not included. For an empty
// text the path is empty.
func (l *Lattice) BestPath(out []int32) []int32 {
	start := len(out)
	for i := l.eos.prev; i > bos; i = l.nodes[i].prev {
		out = append(out, i)
	}
	path := out[start:]
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return out
}

// Cost returns the cost of the best path, including the connection to EOS.
func (l *Lattice) Cost() int64 {
	if len(l.text) == 0 {
		return 0
	}
	return l.eos.Cost
}
