package chardef

import (
	"bytes"
	"errors"
	"testing"

	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func sampleDefinitions(t *testing.T) *Definitions {
	t.Helper()
	defs, err := NewBuilder().
		Define(Category{Name: "DEFAULT"}).
		Define(Category{Name: "ALPHA", Invoke: true, Group: true}).
		Define(Category{Name: "KANJI", Group: false, Length: 2}).
		Define(Category{Name: "KANJINUMERIC", Invoke: true, Group: true}).
		Define(Category{Name: "KATAKANA", Invoke: true, Group: true, Length: 2}).
		Range('A', 'Z', "ALPHA").
		Range('a', 'z', "ALPHA").
		Range(0x4E00, 0x9FFF, "KANJI").
		Range('一', '一', "KANJINUMERIC").
		Range('二', '二', "KANJINUMERIC").
		Range(0x30A1, 0x30FF, "KATAKANA").
		Range(0x20000, 0x2A6DF, "KANJI").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	return defs
}

func TestLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kaiseki")
	defer teardown()
	//
	defs := sampleDefinitions(t)
	kanji, _ := defs.ID("KANJI")
	num, _ := defs.ID("KANJINUMERIC")
	alpha, _ := defs.ID("ALPHA")
	if s := defs.Lookup('一'); !s.Has(kanji) || !s.Has(num) || s.Len() != 2 {
		t.Fatalf("expected 一 to be KANJI and KANJINUMERIC, have %b", s)
	}
	if s := defs.Lookup('x'); !s.Has(alpha) || s.Len() != 1 {
		t.Fatalf("expected x to be ALPHA, have %b", s)
	}
	if s := defs.Lookup('𠮷'); !s.Has(kanji) {
		t.Fatalf("expected non-BMP 𠮷 to be KANJI, have %b", s)
	}
	for _, r := range []rune{'!', 'あ', 0x1F600} {
		if s := defs.Lookup(r); s != 1<<defs.Default() {
			t.Fatalf("expected %q to resolve to DEFAULT, have %b", r, s)
		}
	}
	var order []CategoryID
	defs.Lookup('一').Each(func(id CategoryID) { order = append(order, id) })
	if len(order) != 2 || order[0] != kanji || order[1] != num {
		t.Fatalf("expected categories in id order, have %v", order)
	}
}

func TestImplicitDefault(t *testing.T) {
	defs, err := NewBuilder().Define(Category{Name: "ALPHA"}).Range('a', 'z', "ALPHA").Build()
	if err != nil {
		t.Fatal(err)
	}
	id, ok := defs.ID(DefaultCategory)
	if !ok || id != defs.Default() {
		t.Fatalf("expected DEFAULT to be appended")
	}
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder().Define(Category{Name: "A"}).Range('a', 'z', "B").Build()
	if !errors.Is(err, errs.ErrArgs) {
		t.Fatalf("expected ErrArgs for undefined category, got %v", err)
	}
	_, err = NewBuilder().Define(Category{Name: "A"}).Range('z', 'a', "A").Build()
	if !errors.Is(err, errs.ErrArgs) {
		t.Fatalf("expected ErrArgs for inverted range, got %v", err)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	defs := sampleDefinitions(t)
	var buf bytes.Buffer
	if _, err := defs.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	defs2, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if defs2.Len() != defs.Len() || defs2.Default() != defs.Default() {
		t.Fatalf("decoded definitions differ in shape")
	}
	for _, r := range []rune{'一', 'x', 'カ', '𠮷', '!'} {
		if defs.Lookup(r) != defs2.Lookup(r) {
			t.Fatalf("decoded definitions differ for %q", r)
		}
	}
	k, _ := defs2.ID("KATAKANA")
	if c := defs2.Category(k); !c.Invoke || !c.Group || c.Length != 2 {
		t.Fatalf("decoded KATAKANA rules differ: %+v", c)
	}
	if _, err := Decode(buf.Bytes()[:buf.Len()-3]); !errors.Is(err, errs.ErrDeserialize) {
		t.Fatalf("expected ErrDeserialize for truncated blob, got %v", err)
	}
}
