package rows

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"hotzaot/internal/core"
)

func writeWorkbook(t *testing.T, path string, cells [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range cells {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func collect(t *testing.T, it Iterator) []core.Row {
	t.Helper()
	var out []core.Row
	for {
		row, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, row)
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iterator error: %v", err)
	}
	return out
}

func TestXLSXSourceWithMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	writeWorkbook(t, path, [][]any{
		{"card statement for account 12345"}, // marker row
		{"Date", "Name", "Amount"},           // header, start offset lands here +1
		{"2025-01-02 00:00:00", "Coffee", "12.50"},
		{"2025-01-03 00:00:00", "Bakery", "1,200"},
	})

	src := NewXLSXSource(path, Columns{Name: 2, Amount: 3, Date: 1}, "statement for account")
	it, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got := collect(t, it)

	// Marker at row 0 → data starts at row 2.
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2: %#v", len(got), got)
	}
	if got[0].Name != "Coffee" || got[0].Amount.String() != "12.5" {
		t.Fatalf("row 0: %#v", got[0])
	}
	if got[1].Amount.String() != "1200" {
		t.Fatalf("thousands separator not handled: %#v", got[1])
	}
	if _, ok := core.NormalizeDate(got[0].RawDate); !ok {
		t.Fatalf("date cell should normalize: %#v", got[0].RawDate)
	}
}

func TestXLSXSourceMarkerAbsentStartsAtZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.xlsx")
	writeWorkbook(t, path, [][]any{
		{"2025-01-02 00:00:00", "Coffee", "3"},
		{"2025-01-03 00:00:00", "Bus", "4"},
	})

	src := NewXLSXSource(path, Columns{Name: 2, Amount: 3, Date: 1}, "no such phrase")
	it, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := collect(t, it); len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
}

func TestXLSXSourceMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "narrow.xlsx")
	writeWorkbook(t, path, [][]any{
		{"2025-01-02 00:00:00", "Coffee"},
	})

	src := NewXLSXSource(path, Columns{Name: 2, Amount: 5, Date: 1}, "")
	_, err := src.Open(context.Background())
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("want ErrMissingColumns, got %v", err)
	}
}

func TestXLSXSourceNotRestartable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "once.xlsx")
	writeWorkbook(t, path, [][]any{{"2025-01-02 00:00:00", "Coffee", "3"}})

	src := NewXLSXSource(path, Columns{Name: 2, Amount: 3, Date: 1}, "")
	if _, err := src.Open(context.Background()); err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := src.Open(context.Background()); err == nil {
		t.Fatal("second open must fail")
	}
}

func TestFindStartRow(t *testing.T) {
	cells := [][]string{
		{"a", "b"},
		{"x", "the marker phrase here"},
		{"header"},
		{"data"},
	}
	if got := FindStartRow(cells, "marker phrase"); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
	if got := FindStartRow(cells, "absent"); got != 0 {
		t.Fatalf("absent phrase: got %d, want 0", got)
	}
	if got := FindStartRow(cells, ""); got != 0 {
		t.Fatalf("empty phrase: got %d, want 0", got)
	}
}

func TestColumnsValidate(t *testing.T) {
	if err := (Columns{Name: 0, Amount: 1, Date: 1}).Validate(); err == nil {
		t.Fatal("zero index must be rejected")
	}
	if err := (Columns{Name: 2, Amount: 3, Date: 1}).Validate(); err != nil {
		t.Fatalf("valid columns rejected: %v", err)
	}
}

func TestDiscoverOrdersAndFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.xlsx", "notes.txt", "~$a.xlsx"} {
		writeFile := filepath.Join(dir, name)
		if filepath.Ext(name) == ".xlsx" && name[0] != '~' {
			writeWorkbook(t, writeFile, [][]any{{"x"}})
		} else {
			if err := writeDummy(writeFile); err != nil {
				t.Fatalf("dummy %s: %v", name, err)
			}
		}
	}

	sources, err := Discover(dir, Columns{Name: 1, Amount: 1, Date: 1}, "")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(sources) != 2 || sources[0].Name() != "a.xlsx" || sources[1].Name() != "b.xlsx" {
		var names []string
		for _, s := range sources {
			names = append(names, s.Name())
		}
		t.Fatalf("got %v, want [a.xlsx b.xlsx]", names)
	}
}
