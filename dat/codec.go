package dat

import (
	"fmt"
	"io"
	"sort"

	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/kaiseki/internal/binio"
)

// WriteTo serializes d in little-endian layout:
//
//	root u32 | sigma u16 | n u32 | base [n]i32 | check [n]i32 | values [n]u32 |
//	top [256]u16 | pages u32 | pages*256 u16 | astral u32 | astral*(rune u32, dense u16)
func (d *DAT) WriteTo(w io.Writer) (int64, error) {
	bw := binio.NewWriter(w)
	bw.U32(d.Root)
	bw.U16(d.Sigma)
	bw.Count(len(d.Base))
	bw.Int32s(d.Base)
	bw.Int32s(d.Check)
	bw.Uint32s(d.Values)
	bw.Uint16s(d.Alphabet.BMP.Top[:])
	bw.Count(d.Alphabet.BMP.NumPages())
	bw.Uint16s(d.Alphabet.BMP.Pages)
	astral := sortedAstral(d.Alphabet.Astral)
	bw.Count(len(astral))
	for _, r := range astral {
		bw.U32(uint32(r))
		bw.U16(d.Alphabet.Astral[r])
	}
	return bw.N(), bw.Err()
}

// Decode reads a trie written by WriteTo and checks its structural
// consistency. Errors are of kind errs.ErrDeserialize.
func Decode(data []byte) (*DAT, error) {
	r := binio.NewReader(data)
	d := &DAT{}
	d.Root = r.U32()
	d.Sigma = r.U16()
	n := r.Count(12)
	d.Base = r.Int32s(n)
	d.Check = r.Int32s(n)
	d.Values = r.Uint32s(n)
	copy(d.Alphabet.BMP.Top[:], r.Uint16s(256))
	pages := r.Count(512)
	d.Alphabet.BMP.Pages = r.Uint16s(pages * 256)
	na := r.Count(6)
	for i := 0; i < na && r.Err() == nil; i++ {
		cp, dense := rune(r.U32()), r.U16()
		d.Alphabet.Set(cp, dense)
	}
	if err := r.Err(); err != nil {
		return nil, errs.Deserializef("double-array trie: %v", err)
	}
	if r.Len() != 0 {
		return nil, errs.Deserializef("double-array trie: %d trailing bytes", r.Len())
	}
	if err := d.validate(); err != nil {
		return nil, errs.Deserializef("double-array trie: %v", err)
	}
	return d, nil
}

func (d *DAT) validate() error {
	n := len(d.Base)
	if d.Root == 0 || int(d.Root) >= n {
		return fmt.Errorf("root state %d out of range", d.Root)
	}
	for i, c := range d.Check {
		if c < 0 || int(c) >= n {
			return fmt.Errorf("check[%d] = %d out of range", i, c)
		}
	}
	for hi, pi := range d.Alphabet.BMP.Top {
		if int(pi) > d.Alphabet.BMP.NumPages() {
			return fmt.Errorf("page index %d for block %#x out of range", pi, hi)
		}
	}
	for _, c := range d.Alphabet.BMP.Pages {
		if c > d.Sigma {
			return fmt.Errorf("dense id %d exceeds alphabet size %d", c, d.Sigma)
		}
	}
	for _, c := range d.Alphabet.Astral {
		if c > d.Sigma {
			return fmt.Errorf("dense id %d exceeds alphabet size %d", c, d.Sigma)
		}
	}
	return nil
}

func sortedAstral(m map[rune]uint16) []rune {
	rs := make([]rune, 0, len(m))
	for r := range m {
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return rs
}
