// Package testdict builds a small IPADIC-flavored system dictionary in memory,
// for tests throughout the module.
package testdict

import (
	"github.com/npillmayer/kaiseki/chardef"
	"github.com/npillmayer/kaiseki/dict"
)

// Context ids of the test dictionary. 0 is BOS/EOS.
const (
	Noun     uint16 = 1
	Particle uint16 = 2
	Verb     uint16 = 3
)

// Definitions returns the character definitions of the test dictionary.
func Definitions() (*chardef.Definitions, error) {
	return chardef.NewBuilder().
		Define(chardef.Category{Name: "DEFAULT"}).
		Define(chardef.Category{Name: "SPACE", Group: true}).
		Define(chardef.Category{Name: "KANJI", Length: 2}).
		Define(chardef.Category{Name: "HIRAGANA", Group: true}).
		Define(chardef.Category{Name: "KATAKANA", Invoke: true, Group: true}).
		Define(chardef.Category{Name: "ALPHA", Invoke: true, Group: true}).
		Define(chardef.Category{Name: "NUMERIC", Invoke: true, Group: true}).
		Range(' ', ' ', "SPACE").
		Range('\t', '\t', "SPACE").
		Range(0x3000, 0x3000, "SPACE").
		Range(0x4E00, 0x9FFF, "KANJI").
		Range(0x3041, 0x309F, "HIRAGANA").
		Range(0x30A1, 0x30FF, "KATAKANA").
		Range('A', 'Z', "ALPHA").
		Range('a', 'z', "ALPHA").
		Range(0xFF21, 0xFF3A, "ALPHA").
		Range(0xFF41, 0xFF5A, "ALPHA").
		Range('0', '9', "NUMERIC").
		Range(0xFF10, 0xFF19, "NUMERIC").
		Build()
}

// Matrix returns the connection matrix of the test dictionary: a noun
// following a noun costs 1000, a particle following a particle costs 1000,
// all other connections are free.
func Matrix() (*dict.Matrix, error) {
	m, err := dict.NewMatrix(4, 4)
	if err != nil {
		return nil, err
	}
	if err = m.SetCost(Noun, Noun, 1000); err != nil {
		return nil, err
	}
	if err = m.SetCost(Particle, Particle, 1000); err != nil {
		return nil, err
	}
	return m, nil
}

func noun(surface, reading string, cost int16) dict.Entry {
	return dict.Entry{
		Surface: surface, LeftID: Noun, RightID: Noun, Cost: cost,
		Details: []string{"名詞", "一般", "*", "*", "*", "*", surface, reading, reading},
	}
}

func properNoun(surface, reading string, cost int16) dict.Entry {
	e := noun(surface, reading, cost)
	e.Details[1], e.Details[2] = "固有名詞", "地域"
	return e
}

func particle(surface string) dict.Entry {
	reading := string(toKatakana([]rune(surface)))
	return dict.Entry{
		Surface: surface, LeftID: Particle, RightID: Particle, Cost: 100,
		Details: []string{"助詞", "係助詞", "*", "*", "*", "*", surface, reading, reading},
	}
}

func verb(surface, base, reading string) dict.Entry {
	return dict.Entry{
		Surface: surface, LeftID: Verb, RightID: Verb, Cost: 100,
		Details: []string{"動詞", "自立", "*", "*", "五段・マ行", "基本形", base, reading, reading},
	}
}

func toKatakana(rs []rune) []rune {
	for i, r := range rs {
		if r >= 0x3041 && r <= 0x3096 {
			rs[i] = r + 0x60
		}
	}
	return rs
}

// Entries returns the words of the test dictionary.
func Entries() []dict.Entry {
	return []dict.Entry{
		noun("すもも", "スモモ", 100),
		noun("もも", "モモ", 100),
		particle("も"),
		particle("の"),
		particle("に"),
		particle("は"),
		noun("うち", "ウチ", 100),
		properNoun("東京", "トウキョウ", 100),
		properNoun("京都", "キョウト", 100),
		noun("都", "ト", 100),
		properNoun("東京都", "トウキョウト", 100),
		properNoun("関西", "カンサイ", 100),
		noun("国際", "コクサイ", 100),
		noun("空港", "クウコウ", 100),
		properNoun("関西国際空港", "カンサイコクサイクウコウ", 100),
		noun("駅", "エキ", 100),
		verb("住む", "住む", "スム"),
		verb("住ん", "住む", "スン"),
	}
}

// Unknown returns the unknown-word entries per character category.
func Unknown() map[string]dict.Entry {
	return map[string]dict.Entry{
		"DEFAULT":  {LeftID: Noun, RightID: Noun, Cost: 5000},
		"SPACE":    {LeftID: Noun, RightID: Noun, Cost: 0},
		"KANJI":    {LeftID: Noun, RightID: Noun, Cost: 5000},
		"HIRAGANA": {LeftID: Noun, RightID: Noun, Cost: 5000},
		"KATAKANA": {LeftID: Noun, RightID: Noun, Cost: 3000},
		"ALPHA":    {LeftID: Noun, RightID: Noun, Cost: 3000},
		"NUMERIC":  {LeftID: Noun, RightID: Noun, Cost: 3000},
	}
}

// Build assembles the test dictionary.
func Build() (*dict.Dictionary, error) {
	defs, err := Definitions()
	if err != nil {
		return nil, err
	}
	m, err := Matrix()
	if err != nil {
		return nil, err
	}
	b := dict.NewBuilder(defs, m)
	if err = b.AddReader(&dict.SliceReader{Entries: Entries()}); err != nil {
		return nil, err
	}
	for _, cat := range []string{"DEFAULT", "SPACE", "KANJI", "HIRAGANA", "KATAKANA", "ALPHA", "NUMERIC"} {
		if err = b.AddUnknown(cat, Unknown()[cat]); err != nil {
			return nil, err
		}
	}
	return b.Build()
}
