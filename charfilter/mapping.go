package charfilter

import (
	"strings"
	"unicode/utf8"

	"github.com/armon/go-radix"
	"github.com/npillmayer/kaiseki/errs"
)

// MappingName is the kind of the mapping filter.
const MappingName = "mapping"

// MappingConfig configures a mapping filter.
type MappingConfig struct {
	Mapping map[string]string `json:"mapping"`
}

// Mapping replaces strings by other strings, preferring the longest match at
// each position.
type Mapping struct {
	tree *radix.Tree
}

// NewMapping creates a mapping filter. Empty source strings are an error of
// kind errs.ErrArgs.
func NewMapping(c MappingConfig) (*Mapping, error) {
	tree := radix.New()
	for from, to := range c.Mapping {
		if from == "" {
			return nil, errs.Argsf("mapping filter: empty source string")
		}
		tree.Insert(from, to)
	}
	return &Mapping{tree: tree}, nil
}

func (f *Mapping) Name() string { return MappingName }

func (f *Mapping) Apply(text string) (string, *OffsetTable, error) {
	t := &OffsetTable{}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if from, to, ok := f.tree.LongestPrefix(text[i:]); ok && from != "" {
			repl := to.(string)
			b.WriteString(repl)
			i += len(from)
			t.replaced(i, len(from), len(repl))
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		b.WriteString(text[i : i+size])
		i += size
	}
	return b.String(), t, nil
}
