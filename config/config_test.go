package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/kaiseki"
	"github.com/npillmayer/kaiseki/dict"
	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/kaiseki/internal/testdict"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

// writeDictionary compiles the test dictionary into a directory and writes a
// user dictionary next to it.
func writeDictionary(t *testing.T) (dictDir, userCSV string) {
	t.Helper()
	d, err := testdict.Build()
	require.NoError(t, err)
	dir := t.TempDir()
	dictDir = filepath.Join(dir, "ipadic")
	require.NoError(t, d.WriteDir(dictDir, dict.CompressionZSTD))
	userCSV = filepath.Join(dir, "user.csv")
	require.NoError(t, os.WriteFile(userCSV, []byte("# user words\n東京タワー,名詞,トウキョウタワー\n"), 0o644))
	return
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kaiseki")
	defer teardown()
	//
	path := writeFile(t, "kaiseki.yaml", `
tokenizer:
  dictionary:
    path: /usr/local/share/kaiseki/ipadic
  user_dictionary:
    kind: ipadic
    path: user.csv
  mode: decompose
  penalty:
    kanji_penalty_length_threshold: 3
    kanji_penalty_length_penalty: 2000
    other_penalty_length_threshold: 8
    other_penalty_length_penalty: 1000
character_filters:
  - kind: unicode_normalize
    args:
      kind: nfkc
token_filters:
  - kind: japanese_stop_tags
    args:
      tags: ["助詞,係助詞"]
  - kind: lowercase
`)
	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "ipadic", c.Tokenizer.Dictionary.Kind) // default
	require.Equal(t, "/usr/local/share/kaiseki/ipadic", c.Tokenizer.Dictionary.Path)
	require.NotNil(t, c.Tokenizer.UserDictionary)
	require.Equal(t, "user.csv", c.Tokenizer.UserDictionary.Path)
	require.Equal(t, "decompose", c.Tokenizer.Mode)
	require.Equal(t, &Penalty{3, 2000, 8, 1000}, c.Tokenizer.Penalty)
	require.Len(t, c.CharacterFilters, 1)
	require.Equal(t, "unicode_normalize", c.CharacterFilters[0].Kind)
	args, err := c.CharacterFilters[0].RawArgs()
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"nfkc"}`, string(args))
	require.Len(t, c.TokenFilters, 2)
	args, err = c.TokenFilters[0].RawArgs()
	require.NoError(t, err)
	require.JSONEq(t, `{"tags":["助詞,係助詞"]}`, string(args))
	args, err = c.TokenFilters[1].RawArgs()
	require.NoError(t, err)
	require.Nil(t, args)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, errors.Is(err, errs.ErrIO), "expected i/o error, got %v", err)

	path := writeFile(t, "broken.yaml", "tokenizer: [unclosed\n")
	_, err = Load(path)
	require.True(t, errors.Is(err, errs.ErrConfiguration), "expected configuration error, got %v", err)

	path = writeFile(t, "kaiseki.ini5", "tokenizer=1\n")
	_, err = Load(path)
	require.True(t, errors.Is(err, errs.ErrConfiguration), "expected configuration error, got %v", err)
}

func TestFromConfiguration(t *testing.T) {
	conf := testconfig.Conf{
		KeyDictionaryKind:     "unidic",
		KeyDictionaryPath:     "/opt/unidic",
		KeyUserDictionaryPath: "user.csv",
		KeyMode:               "normal",
		KeyWithDetails:        true,
	}
	c := FromConfiguration(conf)
	require.Equal(t, Dictionary{Kind: "unidic", Path: "/opt/unidic"}, c.Dictionary)
	require.Equal(t, &Dictionary{Path: "user.csv"}, c.UserDictionary)
	require.Equal(t, "normal", c.Mode)
	require.True(t, c.WithDetails)

	c = FromConfiguration(testconfig.Conf{KeyDictionaryPath: "/opt/ipadic"})
	require.Nil(t, c.UserDictionary)
	require.False(t, c.WithDetails)
}

func TestBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kaiseki")
	defer teardown()
	//
	dictDir, userCSV := writeDictionary(t)
	conf := testconfig.Conf{
		KeyDictionaryPath:     dictDir,
		KeyUserDictionaryPath: userCSV,
		KeyWithDetails:        "true",
	}
	tok, err := FromConfiguration(conf).Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, kaiseki.Normal, tok.Mode())
	tokens, err := tok.Tokenize("東京タワーに住む")
	require.NoError(t, err)
	s := make([]string, len(tokens))
	for i, token := range tokens {
		s[i] = token.Text
	}
	require.Equal(t, "東京タワー/に/住む", strings.Join(s, "/"))
	require.Equal(t, "トウキョウタワー", tokens[0].Detail(7))

	c := Tokenizer{Dictionary: Dictionary{Path: dictDir}, Mode: "decompose"}
	tok, err = c.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, kaiseki.Decompose, tok.Mode())
}

func TestBuildErrors(t *testing.T) {
	dictDir, _ := writeDictionary(t)
	ctx := context.Background()
	for _, tc := range []struct {
		c   Tokenizer
		err error
	}{
		{Tokenizer{}, errs.ErrConfiguration},
		{Tokenizer{Dictionary: Dictionary{Path: dictDir, Kind: "mecab"}}, errs.ErrConfiguration},
		{Tokenizer{Dictionary: Dictionary{Path: dictDir}, Mode: "fast"}, errs.ErrConfiguration},
		{Tokenizer{Dictionary: Dictionary{Path: filepath.Join(dictDir, "missing")}}, errs.ErrIO},
		{Tokenizer{Dictionary: Dictionary{Path: dictDir}, UserDictionary: &Dictionary{Path: filepath.Join(dictDir, "none.csv")}}, errs.ErrIO},
	} {
		_, err := tc.c.Build(ctx)
		require.True(t, errors.Is(err, tc.err), "%+v: expected %v, got %v", tc.c, tc.err, err)
	}
}
