package dat

import (
	"errors"
	"fmt"
	"sort"
)

// ErrFrozen is returned when inserting into a builder that has been frozen.
var ErrFrozen = errors.New("dat: builder is frozen")

type buildNode struct {
	state    uint32
	value    uint32
	children map[uint16]*buildNode
}

// Builder collects keys in a pointer-based trie and freezes them into a DAT.
// The zero value is not usable, create builders with NewBuilder.
type Builder struct {
	root     *buildNode
	alphabet Alphabet
	sigma    uint16
	keys     int
	frozen   bool
	free     int // lowest slot index which may be unoccupied
}

// NewBuilder creates an empty trie builder.
func NewBuilder() *Builder {
	return &Builder{
		root: &buildNode{children: make(map[uint16]*buildNode)},
	}
}

// Len returns the number of distinct keys inserted so far.
func (b *Builder) Len() int { return b.keys }

// Insert stores value for key. Inserting an existing key overwrites its value.
// Keys must be non-empty and values non-zero.
func (b *Builder) Insert(key string, value uint32) error {
	if b.frozen {
		return ErrFrozen
	}
	if key == "" {
		return fmt.Errorf("dat: empty key")
	}
	if value == 0 {
		return fmt.Errorf("dat: zero value for key %q", key)
	}
	n := b.root
	for _, r := range key {
		c, err := b.dense(r)
		if err != nil {
			return err
		}
		child := n.children[c]
		if child == nil {
			child = &buildNode{}
			if n.children == nil {
				n.children = make(map[uint16]*buildNode)
			}
			n.children[c] = child
		}
		n = child
	}
	if n.value == 0 {
		b.keys++
	}
	n.value = value
	return nil
}

func (b *Builder) dense(r rune) (uint16, error) {
	if r < 0 {
		return 0, fmt.Errorf("dat: invalid rune %d", r)
	}
	if c := b.alphabet.Dense(r); c != 0 {
		return c, nil
	}
	if b.sigma == ^uint16(0) {
		return 0, fmt.Errorf("dat: alphabet overflow at rune %q", r)
	}
	b.sigma++
	b.alphabet.Set(r, b.sigma)
	return b.sigma, nil
}

// Freeze lays out the collected keys as a double array, breadth first. The
// builder cannot be used for inserting afterwards.
func (b *Builder) Freeze() *DAT {
	d := &DAT{
		Root:     1,
		Sigma:    b.sigma,
		Alphabet: b.alphabet,
	}
	d.Base = make([]int32, 2)
	d.Check = make([]int32, 2)
	d.Values = make([]uint32, 2)
	b.free = 2
	b.root.state = d.Root
	queue := []*buildNode{b.root}
	for q := 0; q < len(queue); q++ {
		n := queue[q]
		d.Values[n.state] = n.value
		if len(n.children) == 0 {
			continue
		}
		labels := sortedLabels(n.children)
		base := b.findBase(d, labels)
		ensureIndex(d, base+int(labels[len(labels)-1]))
		d.Base[n.state] = int32(base)
		for _, label := range labels {
			t := base + int(label)
			child := n.children[label]
			child.state = uint32(t)
			d.Check[t] = int32(n.state)
			queue = append(queue, child)
		}
	}
	b.root = nil
	b.frozen = true
	s := d.Stats()
	tracer().Debugf("dat: froze %d keys into %d slots, fill ratio %.2f, sigma %d",
		b.keys, s.TotalSlots, s.FillRatio(), s.Sigma)
	return d
}

func sortedLabels(children map[uint16]*buildNode) []uint16 {
	labels := make([]uint16, 0, len(children))
	for label := range children {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})
	return labels
}

func occupied(d *DAT, t int) bool {
	return t < len(d.Check) && (t == int(d.Root) || d.Check[t] != 0)
}

// findBase returns the smallest base >= 1 for which all child slots are free,
// starting the scan at the lowest possibly free slot.
func (b *Builder) findBase(d *DAT, labels []uint16) int {
	for occupied(d, b.free) {
		b.free++
	}
	base := b.free - int(labels[0])
	if base < 1 {
		base = 1
	}
	for ; ; base++ {
		ok := true
		for _, label := range labels {
			if occupied(d, base+int(label)) {
				ok = false
				break
			}
		}
		if ok {
			return base
		}
	}
}

func ensureIndex(d *DAT, idx int) {
	if idx < len(d.Base) {
		return
	}
	grow := idx + 1 - len(d.Base)
	d.Base = append(d.Base, make([]int32, grow)...)
	d.Check = append(d.Check, make([]int32, grow)...)
	d.Values = append(d.Values, make([]uint32, grow)...)
}
