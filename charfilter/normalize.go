package charfilter

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/kaiseki/errs"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName is the kind of the Unicode normalization filter.
const NormalizeName = "unicode_normalize"

// NormalizeConfig configures a normalization filter. Kind is one of nfc,
// nfd, nfkc or nfkd.
type NormalizeConfig struct {
	Kind string `json:"kind"`
}

// Normalize applies a Unicode normalization form.
type Normalize struct {
	form norm.Form
}

// NewNormalize creates a normalization filter. An unknown form is an error
// of kind errs.ErrConfiguration.
func NewNormalize(c NormalizeConfig) (*Normalize, error) {
	var f norm.Form
	switch strings.ToLower(c.Kind) {
	case "nfc":
		f = norm.NFC
	case "nfd":
		f = norm.NFD
	case "nfkc":
		f = norm.NFKC
	case "nfkd":
		f = norm.NFKD
	default:
		return nil, errs.Configf("unicode_normalize filter: unknown kind %q", c.Kind)
	}
	return &Normalize{form: f}, nil
}

func (f *Normalize) Name() string { return NormalizeName }

// Apply normalizes text. The text is split into normalization segments,
// spans the form never composes or reorders across, and each segment is
// normalized on its own. A segment is the unit of offset correction.
func (f *Normalize) Apply(text string) (string, *OffsetTable, error) {
	t := &OffsetTable{}
	var b strings.Builder
	b.Grow(len(text))
	for inputOff := 0; inputOff < len(text); {
		n := f.form.NextBoundaryInString(text[inputOff:], true)
		if n <= 0 {
			_, n = utf8.DecodeRuneInString(text[inputOff:])
		}
		segment := text[inputOff : inputOff+n]
		replacement := f.form.String(segment)
		b.WriteString(replacement)
		inputOff += n
		t.replaced(inputOff, n, len(replacement))
	}
	return b.String(), t, nil
}
