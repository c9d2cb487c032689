/*
Package tokenfilter implements token filters, transformations of the token
stream produced by a tokenizer. Filters may rewrite token texts or drop
tokens; they never change byte offsets.

Filters are configured from JSON:

	{ "kind": "japanese_kana", "args": { "kind": "hiragana" } }
	{ "kind": "japanese_stop_tags", "args": { "tags": ["助詞,係助詞,*,*"] } }
	{ "kind": "length", "args": { "min": 2 } }
*/
package tokenfilter

import (
	"bytes"
	"encoding/json"

	"github.com/npillmayer/kaiseki"
	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("kaiseki")
}

// Filter is a token filter. Filters are immutable and safe for concurrent
// use; Apply may modify the tokens it is given.
type Filter interface {
	Name() string
	Apply(tokens []*kaiseki.Token) ([]*kaiseki.Token, error)
}

// Filter kinds.
const (
	KanaName         = "japanese_kana"
	ReadingFormName  = "japanese_reading_form"
	BaseFormName     = "japanese_base_form"
	StopTagsName     = "japanese_stop_tags"
	KeepTagsName     = "japanese_keep_tags"
	KatakanaStemName = "japanese_katakana_stem"
	StopWordsName    = "stop_words"
	KeepWordsName    = "keep_words"
	LowercaseName    = "lowercase"
	UppercaseName    = "uppercase"
	LengthName       = "length"
)

// New creates a filter of a given kind from its JSON arguments. Unknown kinds
// and malformed arguments are errors of kind errs.ErrConfiguration.
func New(kind string, args json.RawMessage) (Filter, error) {
	switch kind {
	case KanaName:
		var c KanaConfig
		if err := decodeArgs(kind, args, &c, true); err != nil {
			return nil, err
		}
		return NewKana(c)
	case ReadingFormName:
		var c FormConfig
		if err := decodeArgs(kind, args, &c, true); err != nil {
			return nil, err
		}
		return NewReadingForm(c)
	case BaseFormName:
		var c FormConfig
		if err := decodeArgs(kind, args, &c, true); err != nil {
			return nil, err
		}
		return NewBaseForm(c)
	case StopTagsName, KeepTagsName:
		var c TagsConfig
		if err := decodeArgs(kind, args, &c, true); err != nil {
			return nil, err
		}
		return NewTags(c, kind == KeepTagsName), nil
	case StopWordsName, KeepWordsName:
		var c WordsConfig
		if err := decodeArgs(kind, args, &c, true); err != nil {
			return nil, err
		}
		return NewWords(c, kind == KeepWordsName), nil
	case KatakanaStemName:
		c := KatakanaStemConfig{Min: DefaultKatakanaStemMin}
		if err := decodeArgs(kind, args, &c, false); err != nil {
			return nil, err
		}
		return NewKatakanaStem(c)
	case LowercaseName:
		if err := decodeArgs(kind, args, &struct{}{}, false); err != nil {
			return nil, err
		}
		return NewLowercase(), nil
	case UppercaseName:
		if err := decodeArgs(kind, args, &struct{}{}, false); err != nil {
			return nil, err
		}
		return NewUppercase(), nil
	case LengthName:
		var c LengthConfig
		if err := decodeArgs(kind, args, &c, true); err != nil {
			return nil, err
		}
		return NewLength(c)
	}
	return nil, errs.Configf("unknown token filter %q", kind)
}

func decodeArgs(kind string, args json.RawMessage, v interface{}, required bool) error {
	if len(bytes.TrimSpace(args)) == 0 {
		if required {
			return errs.Configf("token filter %s: missing arguments", kind)
		}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(args))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Configf("token filter %s: %v", kind, err)
	}
	return nil
}

// isUnknown is a predicate: does the token carry the details of an unknown
// word?
func isUnknown(t *kaiseki.Token) bool {
	d := t.Details()
	return len(d) > 0 && d[0] == "UNK"
}

// retain keeps the tokens for which keep returns true, in place.
func retain(tokens []*kaiseki.Token, keep func(*kaiseki.Token) bool) []*kaiseki.Token {
	out := tokens[:0]
	for _, t := range tokens {
		if keep(t) {
			out = append(out, t)
		}
	}
	for i := len(out); i < len(tokens); i++ {
		tokens[i] = nil
	}
	return out
}
