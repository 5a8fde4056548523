package classify

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeTextInvertsBlocks(t *testing.T) {
	in := "Food:\n  - Coffee\n  - Bakery\n\nTransport:\n- Bus\n\n"
	s, err := DecodeText(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for name, want := range map[string]string{
		"Coffee": "Food",
		"Bakery": "Food",
		"Bus":    "Transport",
	} {
		if got, ok := s.Lookup(name); !ok || got != want {
			t.Fatalf("Lookup(%s) = %q, %v; want %q", name, got, ok, want)
		}
	}
}

func TestDecodeTextDuplicateNameLaterWins(t *testing.T) {
	in := "Alpha:\n  - Shop\n\nBeta:\n  - Shop\n\n"
	s, err := DecodeText(strings.NewReader(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got, _ := s.Lookup("Shop"); got != "Beta" {
		t.Fatalf("Lookup(Shop) = %q, want Beta", got)
	}
}

func TestTextRoundTrip(t *testing.T) {
	s := FromMap(map[string]string{
		"Coffee": "Food",
		"Bus":    "Transport",
		"Bakery": "Food",
	})
	var buf bytes.Buffer
	if err := EncodeText(&buf, s); err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeText(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Len() != s.Len() {
		t.Fatalf("round trip lost entries: %d vs %d", back.Len(), s.Len())
	}
	for _, name := range s.Names() {
		want, _ := s.Lookup(name)
		if got, _ := back.Lookup(name); got != want {
			t.Fatalf("%s: %q != %q", name, got, want)
		}
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	s := FromMap(map[string]string{"קפה גרג": "אוכל", "Bus": "Transport"})
	var buf bytes.Buffer
	if err := EncodeYAML(&buf, s); err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeYAML(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got, _ := back.Lookup("קפה גרג"); got != "אוכל" {
		t.Fatalf("unicode entry lost: %q", got)
	}
}

func TestLoadFileMissingAndEmptyPath(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "nope.txt")} {
		s, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%q): %v", path, err)
		}
		if s.Len() != 0 {
			t.Fatalf("LoadFile(%q) not empty", path)
		}
	}
}

func TestSaveAndLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	s := FromMap(map[string]string{"Coffee": "Food"})

	for _, name := range []string{"class.txt", "class.yml"} {
		path := filepath.Join(dir, name)
		if err := SaveFile(path, s); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		back, err := LoadFile(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if got, _ := back.Lookup("Coffee"); got != "Food" {
			t.Fatalf("%s round trip: got %q", name, got)
		}
	}
}
