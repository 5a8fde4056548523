package summary

import (
	"bytes"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestDecodeBlockFormat(t *testing.T) {
	in := strings.Join([]string{
		"Food:",
		"  - Coffee",
		"- Bakery", // single-space/no-indent bullet is tolerated
		"",
		"Transport:",
		"  - Bus",
		"",
		"stray line without colon",
		"Empty:",
		"",
	}, "\n")

	ix, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Index{
		"Food":      {"Coffee", "Bakery"},
		"Transport": {"Bus"},
		"Empty":     nil,
	}
	if !reflect.DeepEqual(ix, want) {
		t.Fatalf("got %#v, want %#v", ix, want)
	}
}

func TestDecodeItemBeforeCategoryIgnored(t *testing.T) {
	ix, err := Decode(strings.NewReader("  - orphan\nFood:\n  - Coffee\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ix) != 1 || len(ix["Food"]) != 1 {
		t.Fatalf("orphan item should be dropped, got %#v", ix)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	ix := Index{
		"Food":      {"Coffee", "Bakery", "Coffee"},
		"Transport": {"Bus"},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, ix); err != nil {
		t.Fatalf("encode: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Food:\n  - Bakery\n  - Coffee\n  - Coffee\n\n") {
		t.Fatalf("unexpected first block:\n%s", out)
	}
	if !strings.HasSuffix(out, "Transport:\n  - Bus\n\n") {
		t.Fatalf("unexpected last block:\n%s", out)
	}

	back, err := Decode(strings.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(back["Food"]) != 3 || len(back["Transport"]) != 1 {
		t.Fatalf("round trip changed content: %#v", back)
	}
}

func TestDedupeLines(t *testing.T) {
	in := []byte("Food:\n  - Coffee\n  - Coffee\n\nDrink:\n  - Coffee\n\n")
	got := string(DedupeLines(in))
	// Uniqueness is file-wide: the Drink block loses its Coffee line too.
	want := "Food:\n  - Coffee\n\nDrink:\n\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDedupeLinesKeepsBlankSeparators(t *testing.T) {
	in := []byte("A:\n\n\nB:\n\n")
	if got := string(DedupeLines(in)); got != string(in) {
		t.Fatalf("blank lines must survive, got %q", got)
	}
}

func TestMergeUnion(t *testing.T) {
	a := Index{"X": {"a", "b"}}
	b := Index{"X": {"b", "c"}, "Y": {"d"}}

	got := Merge(a, b)
	want := Index{"X": {"a", "b", "c"}, "Y": {"d"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestMergeCommutativeAndIdempotent(t *testing.T) {
	a := Index{"X": {"a", "b", "a"}, "Z": {"q"}}
	b := Index{"X": {"b", "c"}, "Y": {"d", "d"}}

	ab, ba := Merge(a, b), Merge(b, a)
	if !reflect.DeepEqual(ab, ba) {
		t.Fatalf("merge not commutative: %#v vs %#v", ab, ba)
	}

	aa := Merge(a, a)
	for category, names := range aa {
		uniq := map[string]struct{}{}
		for _, n := range a[category] {
			uniq[n] = struct{}{}
		}
		var want []string
		for n := range uniq {
			want = append(want, n)
		}
		sort.Strings(want)
		if !reflect.DeepEqual(names, want) {
			t.Fatalf("merge(a,a)[%s] = %v, want %v", category, names, want)
		}
	}
}

func TestRenderMergedOrdering(t *testing.T) {
	ix := Index{
		"ארנונה": {"עיריית חיפה", "עיריית תל אביב"},
		"אוכל":   {"מאפיית ברמן", "קפה גרג"},
	}
	var buf bytes.Buffer
	if err := RenderMerged(&buf, ix); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	// Categories descend lexically, so ארנונה precedes אוכל.
	if !strings.HasPrefix(out, "ארנונה:\n") {
		t.Fatalf("expected descending category order:\n%s", out)
	}

	// Items sort by reversed rune sequence, grouping by common suffix:
	// both city names end with the same suffix pattern, compare reversed.
	food := out[strings.Index(out, "אוכל:"):]
	first := strings.Index(food, "מאפיית ברמן")
	second := strings.Index(food, "קפה גרג")
	wantFirst := reverseRunes("מאפיית ברמן") < reverseRunes("קפה גרג")
	if wantFirst != (first < second) {
		t.Fatalf("items not in reversed-comparison order:\n%s", out)
	}
}

func TestReverseRunes(t *testing.T) {
	cases := map[string]string{
		"abc":   "cba",
		"":      "",
		"שלום":  "םולש",
		"a b":   "b a",
	}
	for in, want := range cases {
		if got := reverseRunes(in); got != want {
			t.Fatalf("reverseRunes(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeFileMissing(t *testing.T) {
	ix, err := DecodeFile(t.TempDir() + "/nope.txt")
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(ix) != 0 {
		t.Fatalf("expected empty index, got %#v", ix)
	}
}
