/*
Package kaiseki is a morphological analyzer for CJK text.

It segments unsegmented text (primarily Japanese, with Korean and Chinese
dictionary flavors) into words annotated with part of speech and readings.
Text is matched against a system dictionary (and optionally a user
dictionary) to build a word lattice; unknown text is covered by words
synthesized from character categories. The minimum-cost path through the
lattice, as judged by word costs and a connection-cost matrix, is the
segmentation.

	sys, err := dict.LoadDir(ctx, "/usr/share/kaiseki/ipadic")
	...
	tok, err := kaiseki.New(sys, kaiseki.WithMode(kaiseki.Decompose))
	tokens, err := tok.Tokenize("関西国際空港限定トートバッグ")
	for _, t := range tokens {
		fmt.Println(t.Text, t.Details())
	}

Package charfilter offers text normalizations applied before tokenization
(with byte offsets of tokens mapped back to the original text), package
tokenfilter offers transformations of token streams, and package analyzer
combines both with a tokenizer, configured from JSON.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package kaiseki

import (
	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'kaiseki'
func tracer() tracing.Trace {
	return tracing.Select("kaiseki")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

// Error kinds, re-exported from package errs.
var (
	ErrConfiguration = errs.ErrConfiguration
	ErrDeserialize   = errs.ErrDeserialize
	ErrArgs          = errs.ErrArgs
	ErrIO            = errs.ErrIO
)
