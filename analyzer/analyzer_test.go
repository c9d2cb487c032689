package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/kaiseki"
	"github.com/npillmayer/kaiseki/charfilter"
	"github.com/npillmayer/kaiseki/dict"
	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/kaiseki/internal/testdict"
	"github.com/npillmayer/kaiseki/tokenfilter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func testAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	sys, err := testdict.Build()
	require.NoError(t, err)
	tok, err := kaiseki.New(sys)
	require.NoError(t, err)
	norm, err := charfilter.NewNormalize(charfilter.NormalizeConfig{Kind: "nfkc"})
	require.NoError(t, err)
	stop := tokenfilter.NewTags(tokenfilter.TagsConfig{Tags: []string{"助詞,係助詞"}}, false)
	a, err := New(tok, []charfilter.Filter{norm}, []tokenfilter.Filter{stop, tokenfilter.NewLowercase()})
	require.NoError(t, err)
	return a
}

type span struct {
	text       string
	start, end int
}

func spans(tokens []*kaiseki.Token) []span {
	s := make([]span, len(tokens))
	for i, t := range tokens {
		s[i] = span{t.Text, t.ByteStart, t.ByteEnd}
	}
	return s
}

func TestAnalyze(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kaiseki")
	defer teardown()
	//
	a := testAnalyzer(t)
	text := "ＴＯＫＹＯの駅"
	tokens, err := a.Analyze(text)
	require.NoError(t, err)
	require.Equal(t, []span{{"tokyo", 0, 15}, {"駅", 18, 21}}, spans(tokens))
	require.Equal(t, "駅", text[tokens[1].ByteStart:tokens[1].ByteEnd])

	tokens, err = a.Analyze("")
	require.NoError(t, err)
	require.Empty(t, tokens)
}

func TestAnalyzeWithoutFilters(t *testing.T) {
	sys, err := testdict.Build()
	require.NoError(t, err)
	tok, err := kaiseki.New(sys)
	require.NoError(t, err)
	a, err := New(tok, nil, nil)
	require.NoError(t, err)
	tokens, err := a.Analyze("東京タワーに住む")
	require.NoError(t, err)
	require.Equal(t, []span{{"東京", 0, 6}, {"タワー", 6, 15}, {"に", 15, 18}, {"住む", 18, 24}}, spans(tokens))

	_, err = New(nil, nil, nil)
	require.True(t, errors.Is(err, errs.ErrConfiguration))
}

func TestAnalyzeTwoCharFilters(t *testing.T) {
	sys, err := testdict.Build()
	require.NoError(t, err)
	tok, err := kaiseki.New(sys)
	require.NoError(t, err)
	norm, err := charfilter.NewNormalize(charfilter.NormalizeConfig{Kind: "nfkc"})
	require.NoError(t, err)
	spaces, err := charfilter.NewRegex(charfilter.RegexConfig{Pattern: `\s+`, Replacement: ""})
	require.NoError(t, err)
	a, err := New(tok, []charfilter.Filter{norm, spaces}, nil)
	require.NoError(t, err)
	text := "ＴＯＫＹＯ  の駅"
	tokens, err := a.Analyze(text)
	require.NoError(t, err)
	// the removed spaces end up in the preceding token
	require.Equal(t, []span{{"TOKYO", 0, 17}, {"の", 17, 20}, {"駅", 20, 23}}, spans(tokens))
}

func TestFromJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kaiseki")
	defer teardown()
	//
	d, err := testdict.Build()
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "ipadic")
	require.NoError(t, d.WriteDir(dir, dict.CompressionLZ4))
	conf := map[string]interface{}{
		"character_filters": []interface{}{
			map[string]interface{}{"kind": "unicode_normalize", "args": map[string]interface{}{"kind": "nfkc"}},
		},
		"tokenizer": map[string]interface{}{
			"dictionary": map[string]interface{}{"kind": "ipadic", "path": dir},
			"mode":       "normal",
		},
		"token_filters": []interface{}{
			map[string]interface{}{"kind": "japanese_reading_form", "args": map[string]interface{}{"kind": "ipadic"}},
			map[string]interface{}{"kind": "japanese_kana", "args": map[string]interface{}{"kind": "hiragana"}},
		},
	}
	data, err := json.Marshal(conf)
	require.NoError(t, err)
	a, err := FromJSON(context.Background(), data)
	require.NoError(t, err)
	tokens, err := a.Analyze("東京ﾀﾜｰに住む")
	require.NoError(t, err)
	require.Equal(t, []span{{"とうきょう", 0, 6}, {"たわー", 6, 15}, {"に", 15, 18}, {"すむ", 18, 24}}, spans(tokens))
}

func TestFromJSONErrors(t *testing.T) {
	for _, conf := range []string{
		`{"tokenizer":{"dictionary":{"path":"/nowhere"}},"extra":1}`,
		`{"tokenizer":{"dictionary":{"path":"/nowhere"}},"character_filters":[{"kind":"html_strip"}]}`,
		`{"tokenizer":{"dictionary":{"path":"/nowhere"}},"token_filters":[{"kind":"stemmer"}]}`,
		`{"tokenizer":{"dictionary":{"path":"/nowhere"},"mode":"fast"}}`,
		`{"tokenizer":`,
	} {
		_, err := FromJSON(context.Background(), []byte(conf))
		require.True(t, errors.Is(err, errs.ErrConfiguration), "%s: expected configuration error, got %v", conf, err)
	}
	_, err := FromJSON(context.Background(), []byte(`{"tokenizer":{"dictionary":{"path":"/nowhere"}}}`))
	require.True(t, errors.Is(err, errs.ErrIO), "expected i/o error, got %v", err)
}

func TestAnalyzeAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kaiseki")
	defer teardown()
	//
	a := testAnalyzer(t)
	texts := []string{"すもももももももものうち", "東京タワーに住む", "", "関西国際空港", "ＴＯＫＹＯの駅"}
	for i := 0; i < 5; i++ {
		texts = append(texts, texts...)
	}
	all, err := a.AnalyzeAll(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, all, len(texts))
	for i, text := range texts {
		tokens, err := a.Analyze(text)
		require.NoError(t, err)
		require.Equal(t, spans(tokens), spans(all[i]), "text %d %q", i, text)
	}
	var sb strings.Builder
	for _, token := range all[1] {
		sb.WriteString(token.Text)
	}
	require.Equal(t, "東京タワー住む", sb.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.AnalyzeAll(ctx, texts)
	require.True(t, errors.Is(err, context.Canceled))
}
