package tokenfilter

import (
	"github.com/derekparker/trie"
	"github.com/npillmayer/kaiseki"
)

// WordsConfig configures the stop_words and keep_words filters.
type WordsConfig struct {
	Words []string `json:"words"`
}

// Words drops (or keeps only) tokens whose text is one of a set of words.
type Words struct {
	words *trie.Trie
	keep  bool
}

// NewWords creates a stop_words filter, or a keep_words filter if keep is
// set.
func NewWords(c WordsConfig, keep bool) *Words {
	f := &Words{words: trie.New(), keep: keep}
	for _, w := range c.Words {
		if w != "" {
			f.words.Add(w, nil)
		}
	}
	tracer().Debugf("%d words in word filter", len(c.Words))
	return f
}

func (f *Words) Name() string {
	if f.keep {
		return KeepWordsName
	}
	return StopWordsName
}

func (f *Words) Apply(tokens []*kaiseki.Token) ([]*kaiseki.Token, error) {
	return retain(tokens, func(t *kaiseki.Token) bool {
		_, found := f.words.Find(t.Text)
		return found == f.keep
	}), nil
}
