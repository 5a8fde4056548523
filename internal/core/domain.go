package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type (
	// Row is one raw record read from a tabular source. It is immutable
	// once produced; the classification engine never writes back to it.
	Row struct {
		Name    string
		Amount  decimal.Decimal
		RawDate any // string, time.Time, or nil when the cell is empty
	}

	// LedgerEntry is one committed, classified transaction.
	LedgerEntry struct {
		Category string
		Date     string // already normalized, DD/MM/YY
		Name     string
		Amount   decimal.Decimal
	}

	// CategoryTotal pairs a category with its summed amount, used where
	// a deterministic ordering of totals is needed (reports, sheet sync).
	CategoryTotal struct {
		Category string
		Total    decimal.Decimal
	}
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrMissingName = errors.New("missing expense name")
)

// HasName reports whether the row carries a usable expense name.
func (r Row) HasName() bool {
	return strings.TrimSpace(r.Name) != ""
}

// Validate checks a ledger entry for internal consistency before it is
// written to durable output.
func (e LedgerEntry) Validate() error {
	if e.Date == "" {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.Name) == "" {
		return ErrMissingName
	}
	return nil
}
