package csvdict

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/kaiseki/dict"
	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/kaiseki/internal/testdict"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const userCSV = `# user words
東京スカイツリー,カスタム名詞,トウキョウスカイツリー
とうきょうスカイツリー駅,1,1,-8000,名詞,固有名詞,*,*,*,*,とうきょうスカイツリー駅,トウキョウスカイツリーエキ,トウキョウスカイツリーエキ
`

func TestReaderFormats(t *testing.T) {
	r := NewReader(strings.NewReader(userCSV), dict.IPADIC)
	e, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if e.Surface != "東京スカイツリー" || e.Cost != SimpleCost || e.LeftID != 0 || e.RightID != 0 {
		t.Fatalf("unexpected simple entry %+v", e)
	}
	want := []string{"カスタム名詞", "*", "*", "*", "*", "*", "東京スカイツリー",
		"トウキョウスカイツリー", "トウキョウスカイツリー"}
	if strings.Join(e.Details, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected simple details %v", e.Details)
	}
	e, err = r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if e.LeftID != 1 || e.RightID != 1 || e.Cost != -8000 || len(e.Details) != 9 {
		t.Fatalf("unexpected detailed entry %+v", e)
	}
	if _, err = r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestReaderRejectsMalformedRows(t *testing.T) {
	for _, row := range []string{
		"東京,名詞",
		",名詞,トウキョウ",
		"東京,x,1,100,名詞",
		"東京,1,1,99999,名詞",
		"東京,70000,1,100,名詞",
	} {
		_, err := NewReader(strings.NewReader(row+"\n"), dict.IPADIC).Next()
		if !errors.Is(err, errs.ErrArgs) {
			t.Fatalf("expected ErrArgs for %q, got %v", row, err)
		}
	}
}

func TestSimpleDetailsPerKind(t *testing.T) {
	tests := []struct {
		kind    dict.Kind
		reading int
		n       int
	}{
		{dict.IPADIC, 7, 9},
		{dict.UniDic, 6, 17},
		{dict.KoDic, 3, 8},
		{dict.CcCedict, 4, 8},
	}
	for _, tt := range tests {
		d := SimpleDetails(tt.kind, "s", "p", "r")
		if len(d) != tt.n || d[0] != "p" || d[tt.reading] != "r" {
			t.Fatalf("%s: unexpected details %v", tt.kind, d)
		}
	}
}

func TestLoadFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kaiseki")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "user.csv")
	if err := os.WriteFile(path, []byte(userCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := testdict.Matrix()
	if err != nil {
		t.Fatal(err)
	}
	u, err := LoadFile(path, dict.IPADIC, m)
	if err != nil {
		t.Fatal(err)
	}
	if u.Len() != 2 {
		t.Fatalf("expected 2 user words, have %d", u.Len())
	}
	if _, err = LoadFile(filepath.Join(t.TempDir(), "none.csv"), dict.IPADIC, m); !errors.Is(err, errs.ErrIO) {
		t.Fatalf("expected ErrIO for missing file, got %v", err)
	}
	bad := "東京,9,9,100,名詞\n"
	if _, err = Load(strings.NewReader(bad), dict.IPADIC, m); !errors.Is(err, errs.ErrArgs) {
		t.Fatalf("expected ErrArgs for context ids outside the matrix, got %v", err)
	}
}
