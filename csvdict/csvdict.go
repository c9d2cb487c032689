/*
Package csvdict reads user dictionaries from CSV.

Two row formats are understood. A simple row has three columns,

	surface,part-of-speech,reading

and is expanded to a word with cost -10000, context ids 0 and detail fields
laid out as the dictionary kind expects them. A detailed row carries context
ids and cost explicitly, followed by the detail fields:

	surface,left-id,right-id,cost,detail...

Lines starting with '#' are comments.
*/
package csvdict

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/kaiseki/dict"
	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("kaiseki")
}

// SimpleCost is the cost of words from simple rows.
const SimpleCost int16 = -10000

// Reader streams dictionary entries from CSV input.
type Reader struct {
	csv  *csv.Reader
	kind dict.Kind
}

// NewReader creates a reader for CSV data. kind determines the layout of
// detail fields for simple rows; the empty kind means IPADIC.
func NewReader(r io.Reader, kind dict.Kind) *Reader {
	c := csv.NewReader(r)
	c.FieldsPerRecord = -1
	c.Comment = '#'
	c.ReuseRecord = true
	if kind == "" {
		kind = dict.IPADIC
	}
	return &Reader{csv: c, kind: kind}
}

// Next returns the next entry. It returns io.EOF when exhausted. Malformed
// rows are reported as errors of kind errs.ErrArgs.
func (r *Reader) Next() (dict.Entry, error) {
	row, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return dict.Entry{}, io.EOF
	}
	if err != nil {
		return dict.Entry{}, errs.Argsf("user dictionary: %v", err)
	}
	line, _ := r.csv.FieldPos(0)
	switch {
	case len(row) == 3:
		return r.simple(row, line)
	case len(row) >= 4:
		return detailed(row, line)
	}
	return dict.Entry{}, errs.Argsf("user dictionary line %d: %d columns", line, len(row))
}

func (r *Reader) simple(row []string, line int) (dict.Entry, error) {
	surface, pos, reading := row[0], row[1], row[2]
	if surface == "" {
		return dict.Entry{}, errs.Argsf("user dictionary line %d: empty surface", line)
	}
	return dict.Entry{
		Surface: surface,
		Cost:    SimpleCost,
		Details: SimpleDetails(r.kind, surface, pos, reading),
	}, nil
}

func detailed(row []string, line int) (dict.Entry, error) {
	e := dict.Entry{Surface: row[0]}
	if e.Surface == "" {
		return e, errs.Argsf("user dictionary line %d: empty surface", line)
	}
	left, err1 := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 16)
	right, err2 := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 16)
	cost, err3 := strconv.ParseInt(strings.TrimSpace(row[3]), 10, 16)
	if err := errors.Join(err1, err2, err3); err != nil {
		return e, errs.Argsf("user dictionary line %d: %v", line, err)
	}
	e.LeftID, e.RightID, e.Cost = uint16(left), uint16(right), int16(cost)
	e.Details = append([]string(nil), row[4:]...)
	return e, nil
}

// SimpleDetails lays out the detail fields of a simple user dictionary row
// for a dictionary kind.
func SimpleDetails(kind dict.Kind, surface, pos, reading string) []string {
	switch kind {
	case dict.UniDic:
		return []string{pos, "*", "*", "*", "*", "*", reading, surface, surface,
			reading, surface, reading, "*", "*", "*", "*", "*"}
	case dict.KoDic:
		return []string{pos, "*", "*", reading, "*", "*", "*", "*"}
	case dict.CcCedict:
		return []string{pos, "*", "*", "*", reading, "*", "*", "*"}
	}
	return []string{pos, "*", "*", "*", "*", "*", surface, reading, reading}
}

// Load reads a user dictionary from CSV data, checking context ids against
// the connection matrix of the system dictionary.
func Load(r io.Reader, kind dict.Kind, m *dict.Matrix) (*dict.UserDictionary, error) {
	return dict.NewUserDictionary(NewReader(r, kind), m)
}

// LoadFile reads a user dictionary from a CSV file.
func LoadFile(path string, kind dict.Kind, m *dict.Matrix) (*dict.UserDictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO(path, err)
	}
	defer f.Close()
	u, err := Load(f, kind, m)
	if err != nil {
		tracer().Errorf("user dictionary %s: %v", path, err)
		return nil, err
	}
	return u, nil
}
