package rows

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"hotzaot/internal/core"
)

// XLSXSource reads one workbook's first sheet. The data offset is found by
// scanning for the marker phrase; data starts two rows after its first
// occurrence, or at row 0 when the phrase is absent or empty.
type XLSXSource struct {
	path    string
	columns Columns
	marker  string
	opened  bool
}

func NewXLSXSource(path string, columns Columns, marker string) *XLSXSource {
	return &XLSXSource{path: path, columns: columns, marker: marker}
}

func (s *XLSXSource) Name() string {
	return filepath.Base(s.path)
}

func (s *XLSXSource) Open(ctx context.Context) (Iterator, error) {
	if s.opened {
		return nil, fmt.Errorf("source %s already consumed", s.Name())
	}
	s.opened = true

	if err := s.columns.Validate(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", s.path)
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	width := 0
	for _, row := range cells {
		if len(row) > width {
			width = len(row)
		}
	}
	if s.columns.widest() > width {
		return nil, fmt.Errorf("%s: %w (need %d, sheet has %d)",
			s.Name(), ErrMissingColumns, s.columns.widest(), width)
	}

	start := FindStartRow(cells, s.marker)
	slog.InfoContext(ctx, "Opened source",
		"file", s.Name(), "start_row", start, "rows", len(cells))

	if start > len(cells) {
		start = len(cells)
	}
	return &cellIterator{source: s.Name(), cells: cells[start:], columns: s.columns}, nil
}

// FindStartRow scans for the first row containing the marker phrase in any
// cell and returns the index two rows past it. Row 0 when the phrase is
// empty or never found.
func FindStartRow(cells [][]string, phrase string) int {
	if phrase == "" {
		return 0
	}
	for i, row := range cells {
		for _, cell := range row {
			if strings.Contains(cell, phrase) {
				return i + 2
			}
		}
	}
	return 0
}

type cellIterator struct {
	source  string
	cells   [][]string
	columns Columns
	pos     int
}

func (it *cellIterator) Next() (core.Row, bool) {
	if it.pos >= len(it.cells) {
		return core.Row{}, false
	}
	line := it.cells[it.pos]
	it.pos++

	row := core.Row{
		Name:   cellAt(line, it.columns.Name),
		Amount: parseAmount(it.source, cellAt(line, it.columns.Amount)),
	}
	if date := cellAt(line, it.columns.Date); date != "" {
		row.RawDate = date
	}
	return row, true
}

func (it *cellIterator) Err() error {
	return nil
}

// cellAt returns the 1-based cell, empty when the row is short.
func cellAt(line []string, idx int) string {
	if idx < 1 || idx > len(line) {
		return ""
	}
	return strings.TrimSpace(line[idx-1])
}

// parseAmount reads a numeric cell, tolerating thousands separators. An
// unparseable cell becomes zero with a warning; the row itself is still
// subject to the engine's own skip rules (header rows fail the date check
// anyway).
func parseAmount(source, cell string) decimal.Decimal {
	if cell == "" {
		return decimal.Zero
	}
	cleaned := strings.ReplaceAll(cell, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		slog.Warn("Unparseable amount cell", "file", source, "cell", cell)
		return decimal.Zero
	}
	return d
}
