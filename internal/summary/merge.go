package summary

import (
	"fmt"
	"io"
	"sort"
)

// RenderMerged writes a merged index in its canonical order: categories by
// descending lexical order of the category text, items ascending compared
// by their reversed rune sequence. The reversed comparison groups names by
// common suffix, which is how right-to-left summaries have always been
// rendered; output compatibility requires reproducing it exactly.
func RenderMerged(w io.Writer, ix Index) error {
	categories := ix.Categories()
	sort.Sort(sort.Reverse(sort.StringSlice(categories)))

	for _, category := range categories {
		if _, err := fmt.Fprintf(w, "%s:\n", category); err != nil {
			return err
		}
		items := append([]string(nil), ix[category]...)
		sort.Slice(items, func(i, j int) bool {
			return reverseRunes(items[i]) < reverseRunes(items[j])
		})
		for _, item := range items {
			if _, err := fmt.Fprintf(w, "  - %s\n", item); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
