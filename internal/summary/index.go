// Package summary holds the category→expense-name index produced by a
// classification run, its textual block format, and the merge logic that
// unions two previously exported summaries.
package summary

import "sort"

// Index maps a category to the expense names seen under it. During
// accumulation it is append-only and keeps duplicates; duplicate removal
// happens either at export time (DedupeLines) or as the set union in Merge.
type Index map[string][]string

// Add appends one expense name under a category.
func (ix Index) Add(category, name string) {
	ix[category] = append(ix[category], name)
}

// Extend appends all entries of other, keeping duplicates. Used when
// combining per-source indexes into one run-wide index.
func (ix Index) Extend(other Index) {
	for category, names := range other {
		ix[category] = append(ix[category], names...)
	}
}

// Categories returns the category names in ascending order.
func (ix Index) Categories() []string {
	out := make([]string, 0, len(ix))
	for c := range ix {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Merge unions two indexes per category: every category present in either
// input appears in the result, and each expense name appears exactly once
// per category no matter how often it occurred. Merge is commutative and
// idempotent when results are compared as sets.
func Merge(a, b Index) Index {
	merged := make(Index, len(a)+len(b))
	for category := range a {
		merged[category] = unionSorted(a[category], b[category])
	}
	for category := range b {
		if _, done := merged[category]; !done {
			merged[category] = unionSorted(b[category], nil)
		}
	}
	return merged
}

func unionSorted(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, s := range b {
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
