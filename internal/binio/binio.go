// Package binio reads and writes the fixed little-endian layouts of the
// dictionary blobs. Readers never panic on short input: the first failure is
// latched and reported by Err, subsequent reads return zero values.
package binio

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// ErrShort is latched by a Reader when a read runs past the end of its data.
var ErrShort = errors.New("unexpected end of data")

// ErrTooLarge is latched by a Writer when a slice does not fit its length prefix.
var ErrTooLarge = errors.New("slice too large for length prefix")

var le = binary.LittleEndian

// Reader decodes values from an in-memory blob.
type Reader struct {
	data []byte
	off  int
	err  error
}

// NewReader creates a reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error { return r.err }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.data) - r.off }

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > r.Len() {
		r.err = ErrShort
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) U8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *Reader) U16() uint16 {
	if b := r.take(2); b != nil {
		return le.Uint16(b)
	}
	return 0
}

func (r *Reader) I16() int16 { return int16(r.U16()) }

func (r *Reader) U32() uint32 {
	if b := r.take(4); b != nil {
		return le.Uint32(b)
	}
	return 0
}

func (r *Reader) I32() int32 { return int32(r.U32()) }

// Count reads a u32 element count and checks that at least count*width bytes
// remain, so corrupt counts cannot trigger huge allocations.
func (r *Reader) Count(width int) int {
	n := int(r.U32())
	if r.err != nil {
		return 0
	}
	if width > 0 && n > r.Len()/width {
		r.err = ErrShort
		return 0
	}
	return n
}

// Bytes returns the next n bytes. The result aliases the underlying data.
func (r *Reader) Bytes(n int) []byte {
	return r.take(n)
}

// String reads a u16 length-prefixed string.
func (r *Reader) String() string {
	n := int(r.U16())
	return string(r.take(n))
}

func (r *Reader) Int32s(n int) []int32 {
	b := r.take(n * 4)
	if b == nil {
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(le.Uint32(b[i*4:]))
	}
	return out
}

func (r *Reader) Uint32s(n int) []uint32 {
	b := r.take(n * 4)
	if b == nil {
		return nil
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = le.Uint32(b[i*4:])
	}
	return out
}

func (r *Reader) Uint16s(n int) []uint16 {
	b := r.take(n * 2)
	if b == nil {
		return nil
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = le.Uint16(b[i*2:])
	}
	return out
}

func (r *Reader) Int16s(n int) []int16 {
	b := r.take(n * 2)
	if b == nil {
		return nil
	}
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(le.Uint16(b[i*2:]))
	}
	return out
}

// Writer encodes values to an io.Writer, latching the first error.
type Writer struct {
	w   io.Writer
	n   int64
	err error
	buf [4]byte
}

// NewWriter creates a writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error { return w.err }

// N returns the number of bytes written so far.
func (w *Writer) N() int64 { return w.n }

func (w *Writer) Bytes(b []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(b)
	w.n += int64(n)
	w.err = err
}

func (w *Writer) U8(v uint8) {
	w.buf[0] = v
	w.Bytes(w.buf[:1])
}

func (w *Writer) U16(v uint16) {
	le.PutUint16(w.buf[:2], v)
	w.Bytes(w.buf[:2])
}

func (w *Writer) I16(v int16) { w.U16(uint16(v)) }

func (w *Writer) U32(v uint32) {
	le.PutUint32(w.buf[:4], v)
	w.Bytes(w.buf[:4])
}

func (w *Writer) I32(v int32) { w.U32(uint32(v)) }

// Count writes a u32 element count.
func (w *Writer) Count(n int) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		if w.err == nil {
			w.err = ErrTooLarge
		}
		return
	}
	w.U32(uint32(n))
}

// String writes a u16 length-prefixed string.
func (w *Writer) String(s string) {
	if len(s) > math.MaxUint16 {
		if w.err == nil {
			w.err = ErrTooLarge
		}
		return
	}
	w.U16(uint16(len(s)))
	w.Bytes([]byte(s))
}

func (w *Writer) Int32s(v []int32) {
	b := make([]byte, len(v)*4)
	for i, x := range v {
		le.PutUint32(b[i*4:], uint32(x))
	}
	w.Bytes(b)
}

func (w *Writer) Uint32s(v []uint32) {
	b := make([]byte, len(v)*4)
	for i, x := range v {
		le.PutUint32(b[i*4:], x)
	}
	w.Bytes(b)
}

func (w *Writer) Uint16s(v []uint16) {
	b := make([]byte, len(v)*2)
	for i, x := range v {
		le.PutUint16(b[i*2:], x)
	}
	w.Bytes(b)
}

func (w *Writer) Int16s(v []int16) {
	b := make([]byte, len(v)*2)
	for i, x := range v {
		le.PutUint16(b[i*2:], uint16(x))
	}
	w.Bytes(b)
}
