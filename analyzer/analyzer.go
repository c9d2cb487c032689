/*
Package analyzer composes character filters, a tokenizer and token filters
into an analysis pipeline.

An analyzer is configured from one JSON document:

	{
	  "character_filters": [
	    { "kind": "unicode_normalize", "args": { "kind": "nfkc" } }
	  ],
	  "tokenizer": {
	    "dictionary": { "kind": "ipadic", "path": "/usr/local/share/kaiseki/ipadic" },
	    "mode": "normal"
	  },
	  "token_filters": [
	    { "kind": "japanese_stop_tags", "args": { "tags": ["助詞,係助詞"] } }
	  ]
	}

Tokens returned by Analyze carry the text produced by the character filters,
but their byte offsets point into the original input.
*/
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/npillmayer/kaiseki"
	"github.com/npillmayer/kaiseki/charfilter"
	"github.com/npillmayer/kaiseki/config"
	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/kaiseki/tokenfilter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/sourcegraph/conc/iter"
)

func tracer() tracing.Trace {
	return tracing.Select("kaiseki")
}

// Analyzer is an analysis pipeline. It is immutable and safe for concurrent
// use.
type Analyzer struct {
	charFilters  []charfilter.Filter
	tokenizer    *kaiseki.Tokenizer
	tokenFilters []tokenfilter.Filter
}

// New creates an analyzer from its parts.
func New(tok *kaiseki.Tokenizer, charFilters []charfilter.Filter, tokenFilters []tokenfilter.Filter) (*Analyzer, error) {
	if tok == nil {
		return nil, errs.Configf("analyzer needs a tokenizer")
	}
	return &Analyzer{
		charFilters:  charFilters,
		tokenizer:    tok,
		tokenFilters: tokenFilters,
	}, nil
}

// FromJSON creates an analyzer from a JSON configuration, loading the
// configured dictionaries.
func FromJSON(ctx context.Context, data []byte) (*Analyzer, error) {
	var c config.Analyzer
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, errs.Configf("analyzer: %v", err)
	}
	return FromConfig(ctx, c)
}

// FromConfig creates an analyzer from a configuration, loading the configured
// dictionaries.
func FromConfig(ctx context.Context, c config.Analyzer) (*Analyzer, error) {
	charFilters, err := CharFilters(c.CharacterFilters)
	if err != nil {
		return nil, err
	}
	tokenFilters, err := TokenFilters(c.TokenFilters)
	if err != nil {
		return nil, err
	}
	tok, err := c.Tokenizer.Build(ctx)
	if err != nil {
		return nil, err
	}
	return New(tok, charFilters, tokenFilters)
}

// CharFilters creates the character filters of a configuration.
func CharFilters(configs []config.Filter) ([]charfilter.Filter, error) {
	filters := make([]charfilter.Filter, 0, len(configs))
	for _, c := range configs {
		args, err := c.RawArgs()
		if err != nil {
			return nil, err
		}
		f, err := charfilter.New(c.Kind, args)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// TokenFilters creates the token filters of a configuration.
func TokenFilters(configs []config.Filter) ([]tokenfilter.Filter, error) {
	filters := make([]tokenfilter.Filter, 0, len(configs))
	for _, c := range configs {
		args, err := c.RawArgs()
		if err != nil {
			return nil, err
		}
		f, err := tokenfilter.New(c.Kind, args)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// Tokenizer returns the tokenizer of the pipeline.
func (a *Analyzer) Tokenizer() *kaiseki.Tokenizer { return a.tokenizer }

// Analyze runs text through the pipeline.
func (a *Analyzer) Analyze(text string) ([]*kaiseki.Token, error) {
	filtered, offsets, err := charfilter.Chain(text, a.charFilters...)
	if err != nil {
		return nil, err
	}
	tokens, err := a.tokenizer.Tokenize(filtered)
	if err != nil {
		return nil, err
	}
	if offsets.Len() > 0 {
		for _, t := range tokens {
			t.ByteStart = clamp(offsets.Correct(t.ByteStart), len(text))
			t.ByteEnd = clamp(offsets.Correct(t.ByteEnd), len(text))
		}
	}
	for _, f := range a.tokenFilters {
		if tokens, err = f.Apply(tokens); err != nil {
			tracer().Errorf("token filter %s: %v", f.Name(), err)
			return nil, err
		}
	}
	return tokens, nil
}

// AnalyzeAll analyzes texts concurrently. The result for texts[i] is at
// index i. Texts not yet analyzed when ctx is canceled fail with ctx's error.
func (a *Analyzer) AnalyzeAll(ctx context.Context, texts []string) ([][]*kaiseki.Token, error) {
	return iter.MapErr(texts, func(text *string) ([]*kaiseki.Token, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return a.Analyze(*text)
	})
}

func clamp(i, n int) int {
	if i > n {
		return n
	}
	return i
}
