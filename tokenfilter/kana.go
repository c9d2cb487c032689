package tokenfilter

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/kaiseki"
	"github.com/npillmayer/kaiseki/errs"
)

// Kana targets of the japanese_kana filter.
const (
	Hiragana = "hiragana"
	Katakana = "katakana"
)

// KanaConfig configures the japanese_kana filter.
type KanaConfig struct {
	Kind string `json:"kind"`
}

// Kana converts tokens between katakana and hiragana. Code points outside
// the convertible range (e.g. the prolonged sound mark ー) are left as they
// are.
type Kana struct {
	target string
}

// NewKana creates a japanese_kana filter.
func NewKana(c KanaConfig) (*Kana, error) {
	switch c.Kind {
	case Hiragana, Katakana:
		return &Kana{target: c.Kind}, nil
	}
	return nil, errs.Configf("japanese_kana: unknown kana kind %q", c.Kind)
}

func (k *Kana) Name() string { return KanaName }

func (k *Kana) Apply(tokens []*kaiseki.Token) ([]*kaiseki.Token, error) {
	conv := toHiragana
	if k.target == Katakana {
		conv = toKatakana
	}
	for _, t := range tokens {
		t.Text = strings.Map(conv, t.Text)
	}
	return tokens, nil
}

// The katakana block U+30A1..U+30F6 and the hiragana block U+3041..U+3096
// are 0x60 code points apart.
const kanaShift = 0x60

func toHiragana(r rune) rune {
	if r >= 0x30A1 && r <= 0x30F6 {
		return r - kanaShift
	}
	return r
}

func toKatakana(r rune) rune {
	if r >= 0x3041 && r <= 0x3096 {
		return r + kanaShift
	}
	return r
}

// --- Katakana stemming -----------------------------------------------------

// DefaultKatakanaStemMin is the default minimum length, in runes, of a
// katakana word to be stemmed.
const DefaultKatakanaStemMin = 3

const prolongedSoundMark = 'ー'

// KatakanaStemConfig configures the japanese_katakana_stem filter.
type KatakanaStemConfig struct {
	Min int `json:"min"`
}

// KatakanaStem removes a trailing prolonged sound mark from katakana words
// of at least Min runes, so that コンピューター and コンピュータ match.
type KatakanaStem struct {
	min int
}

// NewKatakanaStem creates a japanese_katakana_stem filter.
func NewKatakanaStem(c KatakanaStemConfig) (*KatakanaStem, error) {
	if c.Min < 1 {
		return nil, errs.Configf("japanese_katakana_stem: min must be positive, is %d", c.Min)
	}
	return &KatakanaStem{min: c.Min}, nil
}

func (k *KatakanaStem) Name() string { return KatakanaStemName }

func (k *KatakanaStem) Apply(tokens []*kaiseki.Token) ([]*kaiseki.Token, error) {
	for _, t := range tokens {
		if !isKatakana(t.Text) || utf8.RuneCountInString(t.Text) < k.min {
			continue
		}
		if r, size := utf8.DecodeLastRuneInString(t.Text); r == prolongedSoundMark {
			t.Text = t.Text[:len(t.Text)-size]
		}
	}
	return tokens, nil
}

// isKatakana is a predicate: does s consist of katakana only?
func isKatakana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 0x30A0 || r > 0x30FF {
			return false
		}
	}
	return true
}
