package classify

import (
	"reflect"
	"testing"
)

func TestStoreLookupAndOverwrite(t *testing.T) {
	s := NewStore()
	if _, ok := s.Lookup("Coffee"); ok {
		t.Fatal("empty store should not resolve anything")
	}

	s.Set("Coffee", "Food")
	if got, ok := s.Lookup("Coffee"); !ok || got != "Food" {
		t.Fatalf("Lookup = %q, %v", got, ok)
	}

	// Re-classification overwrites; a name maps to at most one category.
	s.Set("Coffee", "Drinks")
	if got, _ := s.Lookup("Coffee"); got != "Drinks" {
		t.Fatalf("overwrite failed, got %q", got)
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

func TestStoreCaseSensitive(t *testing.T) {
	s := FromMap(map[string]string{"Coffee": "Food"})
	if _, ok := s.Lookup("coffee"); ok {
		t.Fatal("lookup must be case-sensitive")
	}
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	s := FromMap(map[string]string{"A": "X"})
	snap := s.Snapshot()
	snap["A"] = "mutated"
	if got, _ := s.Lookup("A"); got != "X" {
		t.Fatal("snapshot must not alias the store")
	}
}

func TestStoreNamesSorted(t *testing.T) {
	s := FromMap(map[string]string{"b": "1", "a": "2", "c": "3"})
	if got := s.Names(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("Names = %v", got)
	}
}
