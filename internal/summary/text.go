package summary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// The block format is a small line grammar:
//
//	summary   = block { blank block }
//	block     = category items
//	category  = text ":"
//	items     = { indent "- " text }
//
// One or two leading spaces before the dash are tolerated on input; output
// always uses two.

type lineKind int

const (
	lineBlank lineKind = iota
	lineCategory
	lineItem
	lineOther
)

// classifyLine decides what a (already trimmed-right) line is and returns
// its payload: the category name without the colon, or the item name
// without the bullet.
func classifyLine(line string) (lineKind, string) {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return lineBlank, ""
	case strings.HasPrefix(trimmed, "- "):
		return lineItem, strings.TrimSpace(trimmed[2:])
	case strings.HasSuffix(trimmed, ":"):
		return lineCategory, strings.TrimSuffix(trimmed, ":")
	default:
		return lineOther, ""
	}
}

// Decode reads the block format into an Index. Item lines appearing before
// any category line are ignored, as are lines matching neither shape.
func Decode(r io.Reader) (Index, error) {
	ix := make(Index)
	current := ""
	haveCategory := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		kind, payload := classifyLine(scanner.Text())
		switch kind {
		case lineCategory:
			current = payload
			haveCategory = true
			if _, ok := ix[current]; !ok {
				ix[current] = nil
			}
		case lineItem:
			if haveCategory {
				ix.Add(current, payload)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read summary: %w", err)
	}
	return ix, nil
}

// Encode writes the index in the block format with categories ascending and
// items in plain ascending order, a blank line after every category block.
// Duplicates within a category are written as-is; callers wanting a unique
// file run DedupeLines over the result.
func Encode(w io.Writer, ix Index) error {
	for _, category := range ix.Categories() {
		if _, err := fmt.Fprintf(w, "%s:\n", category); err != nil {
			return err
		}
		names := append([]string(nil), ix[category]...)
		sort.Strings(names)
		for _, name := range names {
			if _, err := fmt.Fprintf(w, "  - %s\n", name); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// DedupeLines removes repeated lines while preserving blank separator
// lines. Uniqueness is file-wide, not per category: if two categories share
// an identical item line only the first survives. That matches the files
// already in circulation, so it stays this way.
func DedupeLines(in []byte) []byte {
	var out strings.Builder
	seen := make(map[string]struct{})
	for _, line := range strings.SplitAfter(string(in), "\n") {
		if line == "" {
			continue
		}
		if strings.TrimSpace(line) == "" {
			out.WriteString(line)
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out.WriteString(line)
	}
	return []byte(out.String())
}

// DedupeFile rewrites path with duplicate lines removed. A missing file is
// not an error.
func DedupeFile(path string) error {
	in, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := os.WriteFile(path, DedupeLines(in), 0644); err != nil {
		return fmt.Errorf("rewrite %s: %w", path, err)
	}
	return nil
}

// DecodeFile loads an exported summary from disk. A missing file yields an
// empty index, mirroring how a missing classification file means an empty
// store.
func DecodeFile(path string) (Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(Index), nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
