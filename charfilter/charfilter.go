/*
Package charfilter implements character filters, text transformations applied
before tokenization.

A filter returns the transformed text together with an offset table, which
maps byte positions of the transformed text back to the input. Tables of a
chain of filters are flattened with Compose, so tokens of the final text can
be anchored in the original text.

Filters are configured from JSON:

	{ "kind": "regex", "args": { "pattern": "\\s{2,}", "replacement": " " } }
	{ "kind": "unicode_normalize", "args": { "kind": "nfkc" } }
	{ "kind": "mapping", "args": { "mapping": { "ｱ": "ア", "ﾘﾝﾃﾞﾗ": "リンデラ" } } }
*/
package charfilter

import (
	"bytes"
	"encoding/json"

	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("kaiseki")
}

// Filter is a character filter. Filters are immutable and safe for
// concurrent use.
type Filter interface {
	Name() string
	Apply(text string) (string, *OffsetTable, error)
}

// New creates a filter of a given kind from its JSON arguments. Unknown kinds
// and malformed arguments are errors of kind errs.ErrConfiguration.
func New(kind string, args json.RawMessage) (Filter, error) {
	switch kind {
	case RegexName:
		var c RegexConfig
		if err := decodeArgs(kind, args, &c); err != nil {
			return nil, err
		}
		return NewRegex(c)
	case NormalizeName:
		var c NormalizeConfig
		if err := decodeArgs(kind, args, &c); err != nil {
			return nil, err
		}
		return NewNormalize(c)
	case MappingName:
		var c MappingConfig
		if err := decodeArgs(kind, args, &c); err != nil {
			return nil, err
		}
		return NewMapping(c)
	}
	tracer().Errorf("unknown character filter %q", kind)
	return nil, errs.Configf("unknown character filter %q", kind)
}

func decodeArgs(kind string, args json.RawMessage, v interface{}) error {
	if len(bytes.TrimSpace(args)) == 0 {
		return errs.Configf("character filter %s: missing arguments", kind)
	}
	dec := json.NewDecoder(bytes.NewReader(args))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Configf("character filter %s: %v", kind, err)
	}
	return nil
}

// Chain applies filters in order and returns the final text with a single
// offset table mapping it back to text.
func Chain(text string, filters ...Filter) (string, *OffsetTable, error) {
	if len(filters) == 0 {
		return text, &OffsetTable{}, nil
	}
	tables := make([]*OffsetTable, 0, len(filters))
	for _, f := range filters {
		var t *OffsetTable
		var err error
		if text, t, err = f.Apply(text); err != nil {
			return "", nil, err
		}
		tables = append(tables, t)
	}
	if len(tables) == 1 {
		return text, tables[0], nil
	}
	return text, Compose(len(text), tables...), nil
}
