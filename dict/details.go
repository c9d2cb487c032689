package dict

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/kaiseki/internal/binio"
)

// Details keeps the detail fields of words, indexed by word index.
// Record format at offset index[i]:
//   - uvarint N (number of fields)
//   - N times: uvarint L, followed by L bytes of UTF-8 text
type Details struct {
	index []uint32
	data  []byte
}

// Len returns the number of records.
func (d *Details) Len() int {
	if d == nil {
		return 0
	}
	return len(d.index)
}

// Get returns the detail fields of word i, or nil if there are none.
func (d *Details) Get(i uint32) []string {
	if d == nil || int(i) >= len(d.index) {
		return nil
	}
	rec := d.data[d.index[i]:]
	n, k := binary.Uvarint(rec)
	if k <= 0 || n > uint64(len(rec)) {
		return nil
	}
	rec = rec[k:]
	fields := make([]string, 0, n)
	for j := uint64(0); j < n; j++ {
		l, k := binary.Uvarint(rec)
		if k <= 0 || uint64(len(rec)-k) < l {
			return nil
		}
		fields = append(fields, string(rec[k:k+int(l)]))
		rec = rec[k+int(l):]
	}
	return fields
}

// Append adds a record for the next word index.
func (d *Details) Append(fields []string) error {
	if uint64(len(d.data)) > math.MaxUint32 {
		return fmt.Errorf("word details exceed 4 GiB")
	}
	d.index = append(d.index, uint32(len(d.data)))
	d.data = binary.AppendUvarint(d.data, uint64(len(fields)))
	for _, f := range fields {
		d.data = binary.AppendUvarint(d.data, uint64(len(f)))
		d.data = append(d.data, f...)
	}
	return nil
}

// WriteIndexTo serializes the record offsets as n u32 | offsets [n]u32.
func (d *Details) WriteIndexTo(w io.Writer) (int64, error) {
	bw := binio.NewWriter(w)
	bw.Count(len(d.index))
	bw.Uint32s(d.index)
	return bw.N(), bw.Err()
}

// WriteDataTo writes the raw records.
func (d *Details) WriteDataTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.data)
	return int64(n), err
}

// DecodeDetails creates a details store from an index blob and a data blob.
func DecodeDetails(index, data []byte) (*Details, error) {
	r := binio.NewReader(index)
	d := &Details{data: data}
	d.index = r.Uint32s(r.Count(4))
	if err := r.Err(); err != nil {
		return nil, errs.Deserializef("word details index: %v", err)
	}
	if r.Len() != 0 {
		return nil, errs.Deserializef("word details index: %d trailing bytes", r.Len())
	}
	prev := uint32(0)
	for i, off := range d.index {
		if off < prev || int(off) >= len(data) {
			return nil, errs.Deserializef("word details index: offset %d of word %d out of range", off, i)
		}
		prev = off
	}
	return d, nil
}
