package dict

import (
	"fmt"
	"io"

	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/kaiseki/internal/binio"
)

// Matrix is the connection-cost matrix. The cost of connecting a word with
// right context r to a following word with left context l is
// costs[l*forward+r]. Context id 0 is reserved for BOS/EOS.
type Matrix struct {
	forward  int
	backward int
	costs    []int16
}

// NewMatrix creates a zero-cost matrix for forward right-context ids and
// backward left-context ids.
func NewMatrix(forward, backward int) (*Matrix, error) {
	if forward <= 0 || backward <= 0 || forward > 0xFFFF || backward > 0xFFFF {
		return nil, errs.Argsf("invalid connection matrix size %dx%d", forward, backward)
	}
	return &Matrix{
		forward:  forward,
		backward: backward,
		costs:    make([]int16, forward*backward),
	}, nil
}

// Size returns the number of right-context ids (forward) and left-context ids
// (backward).
func (m *Matrix) Size() (forward, backward int) {
	return m.forward, m.backward
}

// Cost returns the cost of connecting a left word with right context id
// rightID to a right word with left context id leftID.
func (m *Matrix) Cost(rightID, leftID uint16) int32 {
	return int32(m.costs[int(leftID)*m.forward+int(rightID)])
}

// SetCost sets the cost of a connection.
func (m *Matrix) SetCost(rightID, leftID uint16, cost int16) error {
	if int(rightID) >= m.forward || int(leftID) >= m.backward {
		return errs.Argsf("context ids (%d, %d) outside matrix %dx%d", rightID, leftID, m.forward, m.backward)
	}
	m.costs[int(leftID)*m.forward+int(rightID)] = cost
	return nil
}

// Accepts is a predicate: can a word with these context ids be connected?
func (m *Matrix) Accepts(e WordEntry) bool {
	return int(e.RightID) < m.forward && int(e.LeftID) < m.backward
}

func (m *Matrix) checkEntries(entries []WordEntry) error {
	for i, e := range entries {
		if !m.Accepts(e) {
			return fmt.Errorf("word %d: context ids (%d, %d) outside matrix %dx%d",
				i, e.LeftID, e.RightID, m.forward, m.backward)
		}
	}
	return nil
}

// WriteTo serializes the matrix as forward u16 | backward u16 | costs [f*b]i16.
func (m *Matrix) WriteTo(w io.Writer) (int64, error) {
	bw := binio.NewWriter(w)
	bw.U16(uint16(m.forward))
	bw.U16(uint16(m.backward))
	bw.Int16s(m.costs)
	return bw.N(), bw.Err()
}

// DecodeMatrix reads a matrix written by WriteTo.
func DecodeMatrix(data []byte) (*Matrix, error) {
	r := binio.NewReader(data)
	m := &Matrix{forward: int(r.U16()), backward: int(r.U16())}
	if r.Err() == nil && (m.forward == 0 || m.backward == 0) {
		return nil, errs.Deserializef("connection matrix: empty dimension %dx%d", m.forward, m.backward)
	}
	m.costs = r.Int16s(m.forward * m.backward)
	if err := r.Err(); err != nil {
		return nil, errs.Deserializef("connection matrix: %v", err)
	}
	if r.Len() != 0 {
		return nil, errs.Deserializef("connection matrix: %d trailing bytes", r.Len())
	}
	return m, nil
}
