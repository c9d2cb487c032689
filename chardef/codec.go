package chardef

import (
	"bytes"
	"io"

	"github.com/RoaringBitmap/roaring"
	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/kaiseki/internal/binio"
)

// WriteTo serializes the definitions:
//
//	n u16 | n*(name str16 | invoke u8 | group u8 | length u32) |
//	n*(size u32 | roaring bitmap) | default u8
func (d *Definitions) WriteTo(w io.Writer) (int64, error) {
	bw := binio.NewWriter(w)
	bw.U16(uint16(len(d.categories)))
	for _, c := range d.categories {
		bw.String(c.Name)
		bw.U8(boolByte(c.Invoke))
		bw.U8(boolByte(c.Group))
		bw.U32(uint32(c.Length))
	}
	var buf bytes.Buffer
	for _, bm := range d.members {
		buf.Reset()
		if _, err := bm.WriteTo(&buf); err != nil {
			return bw.N(), err
		}
		bw.Count(buf.Len())
		bw.Bytes(buf.Bytes())
	}
	bw.U8(uint8(d.defaultID))
	return bw.N(), bw.Err()
}

// Decode reads definitions written by WriteTo. Errors are of kind
// errs.ErrDeserialize.
func Decode(data []byte) (*Definitions, error) {
	r := binio.NewReader(data)
	n := int(r.U16())
	if n == 0 || n > MaxCategories {
		return nil, errs.Deserializef("character definitions: invalid category count %d", n)
	}
	cats := make([]Category, n)
	for i := range cats {
		cats[i].Name = r.String()
		cats[i].Invoke = r.U8() != 0
		cats[i].Group = r.U8() != 0
		cats[i].Length = int(r.U32())
	}
	members := make([]*roaring.Bitmap, n)
	for i := range members {
		raw := r.Bytes(r.Count(1))
		if r.Err() != nil {
			break
		}
		members[i] = roaring.New()
		if _, err := members[i].ReadFrom(bytes.NewReader(raw)); err != nil {
			return nil, errs.Deserializef("character definitions: category %q: %v", cats[i].Name, err)
		}
	}
	def := int(r.U8())
	if err := r.Err(); err != nil {
		return nil, errs.Deserializef("character definitions: %v", err)
	}
	if r.Len() != 0 {
		return nil, errs.Deserializef("character definitions: %d trailing bytes", r.Len())
	}
	if def >= n {
		return nil, errs.Deserializef("character definitions: default category %d out of range", def)
	}
	for _, c := range cats {
		if c.Length < 0 || c.Length > 0xFFFF {
			return nil, errs.Deserializef("character definitions: invalid length %d for %q", c.Length, c.Name)
		}
	}
	d := newDefinitions(cats, members, CategoryID(def))
	tracer().Debugf("character definitions: %d categories", n)
	return d, nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
