package classify

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"hotzaot/internal/summary"
)

// Two persisted shapes exist for the classification file: the colon/dash
// block format shared with summary exports (category header, bulleted
// expense names) and a flat YAML map of name to category. The extension
// picks the codec; .yml and .yaml mean YAML, everything else is the block
// format.

// LoadFile reads a classification store from path. An empty path or a
// missing file yields an empty store: classifying from scratch is the
// normal first run, not an error.
func LoadFile(path string) (*Store, error) {
	if path == "" {
		return NewStore(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(), nil
		}
		return nil, fmt.Errorf("open classifications %s: %w", path, err)
	}
	defer f.Close()

	if isYAMLPath(path) {
		return DecodeYAML(f)
	}
	return DecodeText(f)
}

// SaveFile writes the full store to path, whole-file rewrite, format
// chosen by extension.
func SaveFile(path string, s *Store) error {
	var buf strings.Builder
	var err error
	if isYAMLPath(path) {
		err = EncodeYAML(&buf, s)
	} else {
		err = EncodeText(&buf, s)
	}
	if err != nil {
		return fmt.Errorf("encode classifications: %w", err)
	}
	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("write classifications %s: %w", path, err)
	}
	return nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

// DecodeText parses the block format into a store. The file groups names
// under category headers, so the mapping gets inverted on the way in; when
// the same name appears under two categories the later one wins, matching
// how the store itself treats re-classification.
func DecodeText(r io.Reader) (*Store, error) {
	ix, err := summary.Decode(r)
	if err != nil {
		return nil, err
	}
	s := NewStore()
	for _, category := range ix.Categories() {
		for _, name := range ix[category] {
			s.Set(name, category)
		}
	}
	return s, nil
}

// EncodeText writes the store in the block format, grouped by category.
func EncodeText(w io.Writer, s *Store) error {
	ix := make(summary.Index)
	for name, category := range s.m {
		ix.Add(category, name)
	}
	return summary.Encode(w, ix)
}

// DecodeYAML parses a flat name→category YAML map.
func DecodeYAML(r io.Reader) (*Store, error) {
	var m map[string]string
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if err == io.EOF {
			return NewStore(), nil
		}
		return nil, fmt.Errorf("decode yaml classifications: %w", err)
	}
	return FromMap(m), nil
}

// EncodeYAML writes the store as a flat name→category YAML map.
func EncodeYAML(w io.Writer, s *Store) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(s.Snapshot())
}
