package kaiseki

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/kaiseki/dict"
	"github.com/npillmayer/kaiseki/internal/testdict"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func testTokenizer(t *testing.T, opts ...Option) *Tokenizer {
	t.Helper()
	d, err := testdict.Build()
	if err != nil {
		t.Fatal(err)
	}
	tok, err := New(d, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func texts(tokens []*Token) string {
	s := make([]string, len(tokens))
	for i, t := range tokens {
		s[i] = t.Text
	}
	return strings.Join(s, "/")
}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kaiseki")
	defer teardown()
	//
	tok := testTokenizer(t)
	tokens, err := tok.Tokenize("すもももももももものうち")
	if err != nil {
		t.Fatal(err)
	}
	if got := texts(tokens); got != "すもも/も/もも/も/もも/の/うち" {
		t.Fatalf("unexpected tokens %q", got)
	}
	for i, token := range tokens {
		if token.Position != i || token.PositionLength != 1 {
			t.Fatalf("token %d has position %d/%d", i, token.Position, token.PositionLength)
		}
	}
	if d := tokens[0].Details(); len(d) != 9 || d[0] != "名詞" {
		t.Fatalf("unexpected details for すもも: %v", d)
	}
}

func TestTokensTileText(t *testing.T) {
	tok := testTokenizer(t)
	for _, text := range []string{
		"東京都に住む",
		"関西国際空港 kaiseki ２０２４年",
		"ｶﾀｶﾅと漢字とＡＢＣ",
		"\xf0\x28\x8c\x28不正",
		"😀絵文字",
	} {
		tokens, err := tok.Tokenize(text)
		if err != nil {
			t.Fatal(err)
		}
		if len(tokens) == 0 {
			t.Fatalf("no tokens for non-empty text %q", text)
		}
		end := 0
		for _, token := range tokens {
			if token.ByteStart != end || token.ByteEnd <= token.ByteStart {
				t.Fatalf("tokens of %q do not tile at %d: %+v", text, end, token)
			}
			if token.Text != text[token.ByteStart:token.ByteEnd] {
				t.Fatalf("token text %q does not match its offsets", token.Text)
			}
			end = token.ByteEnd
		}
		if end != len(text) {
			t.Fatalf("tokens of %q end at %d, text has %d bytes", text, end, len(text))
		}
	}
}

func TestEmptyText(t *testing.T) {
	tokens, err := testTokenizer(t).Tokenize("")
	if err != nil {
		t.Fatal(err)
	}
	if tokens == nil || len(tokens) != 0 {
		t.Fatalf("expected empty, non-nil token slice, got %v", tokens)
	}
}

func TestModes(t *testing.T) {
	tok := testTokenizer(t)
	normal, _ := tok.TokenizeMode("関西国際空港", Normal, false)
	decomposed, _ := tok.TokenizeMode("関西国際空港", Decompose, false)
	if texts(normal) != "関西国際空港" || texts(decomposed) != "関西/国際/空港" {
		t.Fatalf("unexpected segmentation: normal %q, decompose %q", texts(normal), texts(decomposed))
	}
	if _, err := tok.TokenizeMode("x", Mode(7), false); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for invalid mode, got %v", err)
	}
	for name, want := range map[string]Mode{"normal": Normal, "decompose": Decompose, "search": Decompose} {
		if m, err := ParseMode(name); err != nil || m != want {
			t.Fatalf("ParseMode(%q) = %v, %v", name, m, err)
		}
	}
	if _, err := ParseMode("extended"); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if _, err := New(nil); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration without dictionary, got %v", err)
	}
}

func TestDetailsResolution(t *testing.T) {
	tok := testTokenizer(t)
	tokens, _ := tok.Tokenize("東京タワー")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %q", texts(tokens))
	}
	unk := tokens[1]
	if unk.resolved {
		t.Fatal("expected details to be unresolved before first access")
	}
	if d := unk.Details(); !unk.IsUnknown() || len(d) != 1 || d[0] != "UNK" {
		t.Fatalf("expected UNK details, got %v", d)
	}
	if tokens[0].Detail(7) != "トウキョウ" || tokens[0].Detail(42) != "" {
		t.Fatalf("unexpected reading %q", tokens[0].Detail(7))
	}
	eager, _ := tok.TokenizeMode("東京", Normal, true)
	if !eager[0].resolved {
		t.Fatal("expected details to be resolved eagerly")
	}
}

func TestUserDictionaryFromForeignMatrix(t *testing.T) {
	d, err := testdict.Build()
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := dict.NewMatrix(600, 600)
	if err != nil {
		t.Fatal(err)
	}
	u, err := dict.NewUserDictionary(&dict.SliceReader{Entries: []dict.Entry{
		{Surface: "東京", LeftID: 500, RightID: 500, Cost: -10000},
	}}, foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = New(d, WithUserDictionary(u)); !errors.Is(err, ErrArgs) {
		t.Fatalf("expected ErrArgs for user words outside the matrix, got %v", err)
	}
}

func TestUserDictionaryOverlay(t *testing.T) {
	d, _ := testdict.Build()
	u, err := dict.NewUserDictionary(&dict.SliceReader{Entries: []dict.Entry{{
		Surface: "東京タワー", Cost: -10000,
		Details: []string{"カスタム名詞", "*", "*", "*", "*", "*", "東京タワー", "トウキョウタワー", "トウキョウタワー"},
	}}}, d.Matrix)
	if err != nil {
		t.Fatal(err)
	}
	tok, err := New(d, WithUserDictionary(u))
	if err != nil {
		t.Fatal(err)
	}
	tokens, _ := tok.Tokenize("東京タワーに住む")
	if texts(tokens) != "東京タワー/に/住む" {
		t.Fatalf("expected user word, got %q", texts(tokens))
	}
	if tokens[0].WordID.System || tokens[0].Detail(0) != "カスタム名詞" {
		t.Fatalf("expected user word details, got %v", tokens[0].Details())
	}
}

func TestConcurrentTokenization(t *testing.T) {
	tok := testTokenizer(t)
	inputs := []string{"すもももももももものうち", "東京タワーに住む", "関西国際空港", "kaisekiの駅"}
	want := make([]string, len(inputs))
	for i, in := range inputs {
		tokens, _ := tok.Tokenize(in)
		want[i] = texts(tokens)
	}
	var wg sync.WaitGroup
	errc := make(chan string, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for k := 0; k < 50; k++ {
				i := (g + k) % len(inputs)
				tokens, err := tok.Tokenize(inputs[i])
				if err != nil || texts(tokens) != want[i] {
					errc <- inputs[i]
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errc)
	for in := range errc {
		t.Fatalf("non-deterministic tokenization of %q", in)
	}
}
