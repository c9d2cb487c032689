package kaiseki

import (
	"strings"

	"github.com/npillmayer/kaiseki/dict"
	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/kaiseki/lattice"
)

// Mode selects how compounds are treated.
type Mode int

const (
	// Normal segments by plain minimum cost.
	Normal Mode = iota
	// Decompose penalizes long words, splitting compounds into their parts.
	Decompose
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Decompose:
		return "decompose"
	}
	return "invalid"
}

// ParseMode parses a mode name. "search" is accepted as an alias of
// "decompose".
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "normal":
		return Normal, nil
	case "decompose", "search":
		return Decompose, nil
	}
	return Normal, errs.Configf("unknown tokenizer mode %q", name)
}

// Tokenizer segments text into tokens. A tokenizer is immutable and safe for
// concurrent use.
type Tokenizer struct {
	sys         *dict.Dictionary
	user        *dict.UserDictionary
	mode        Mode
	penalty     lattice.Penalty
	withDetails bool
}

// Option configures a tokenizer.
type Option func(*Tokenizer)

// WithUserDictionary overlays a user dictionary on the system dictionary.
// New fails with errs.ErrArgs if the context ids of a user word lie outside
// the connection matrix of the system dictionary.
func WithUserDictionary(u *dict.UserDictionary) Option {
	return func(t *Tokenizer) { t.user = u }
}

// WithMode sets the default mode of Tokenize.
func WithMode(m Mode) Option {
	return func(t *Tokenizer) { t.mode = m }
}

// WithPenalty replaces the penalty of decompose mode.
func WithPenalty(p lattice.Penalty) Option {
	return func(t *Tokenizer) { t.penalty = p }
}

// WithDetails makes Tokenize resolve token details eagerly.
func WithDetails(eager bool) Option {
	return func(t *Tokenizer) { t.withDetails = eager }
}

// New creates a tokenizer for a system dictionary.
func New(sys *dict.Dictionary, opts ...Option) (*Tokenizer, error) {
	if sys == nil {
		return nil, errs.Configf("tokenizer needs a system dictionary")
	}
	t := &Tokenizer{sys: sys, penalty: lattice.DefaultPenalty()}
	for _, opt := range opts {
		opt(t)
	}
	if t.mode != Normal && t.mode != Decompose {
		return nil, errs.Configf("invalid tokenizer mode %d", t.mode)
	}
	if t.user != nil {
		if err := t.user.Validate(sys.Matrix); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Mode returns the default mode of the tokenizer.
func (t *Tokenizer) Mode() Mode { return t.mode }

// Dictionary returns the system dictionary of the tokenizer.
func (t *Tokenizer) Dictionary() *dict.Dictionary { return t.sys }

// Tokenize segments text using the tokenizer's default mode.
func (t *Tokenizer) Tokenize(text string) ([]*Token, error) {
	return t.TokenizeMode(text, t.mode, t.withDetails)
}

// TokenizeMode segments text in a given mode. With withDetails set, the
// details of all tokens are resolved before returning. The tokens tile the
// text: the first starts at 0, each starts where its predecessor ends, and
// the last ends at len(text). Empty text yields an empty, non-nil slice.
func (t *Tokenizer) TokenizeMode(text string, mode Mode, withDetails bool) ([]*Token, error) {
	var penalty *lattice.Penalty
	switch mode {
	case Normal:
	case Decompose:
		penalty = &t.penalty
	default:
		return nil, errs.Configf("invalid tokenizer mode %d", mode)
	}
	tokens := []*Token{}
	if text == "" {
		return tokens, nil
	}
	l := lattice.Acquire()
	defer lattice.Release(l)
	l.Build(text, t.sys, t.user, penalty)
	path := l.BestPath(make([]int32, 0, len(text)/3+1))
	tokens = make([]*Token, 0, len(path))
	for i, index := range path {
		n := l.Node(index)
		token := &Token{
			Text:           text[n.Start:n.End],
			ByteStart:      n.Start,
			ByteEnd:        n.End,
			Position:       i,
			PositionLength: 1,
			WordID:         n.Word,
			sys:            t.sys,
			user:           t.user,
		}
		if withDetails {
			token.Details()
		}
		tokens = append(tokens, token)
	}
	assert(tokens[len(tokens)-1].ByteEnd == len(text), "token path does not reach end of text")
	tracer().Debugf("tokenized %d bytes into %d tokens, cost %d", len(text), len(tokens), l.Cost())
	return tokens, nil
}
