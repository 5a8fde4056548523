// Package rows reads tabular transaction sources into domain rows.
package rows

import (
	"context"
	"errors"
	"fmt"

	"hotzaot/internal/core"
)

// ErrMissingColumns means a source is narrower than the configured column
// indices. The source contributes nothing; other sources proceed.
var ErrMissingColumns = errors.New("configured columns exceed available columns")

// Columns holds the 1-based indices of the expense name, amount and date
// columns in a source table.
type Columns struct {
	Name   int
	Amount int
	Date   int
}

func (c Columns) Validate() error {
	for _, idx := range []int{c.Name, c.Amount, c.Date} {
		if idx < 1 {
			return fmt.Errorf("column indices are 1-based, got %d", idx)
		}
	}
	return nil
}

func (c Columns) widest() int {
	w := c.Name
	if c.Amount > w {
		w = c.Amount
	}
	if c.Date > w {
		w = c.Date
	}
	return w
}

type (
	// Source produces a lazy, finite, non-restartable sequence of rows
	// from one tabular origin.
	Source interface {
		// Name identifies the source in logs and diagnostics.
		Name() string
		// Open returns the row iterator. Calling Open twice on the
		// same source is not supported.
		Open(ctx context.Context) (Iterator, error)
	}

	// Iterator walks the rows of one source. After Next returns false,
	// Err reports whether iteration ended cleanly.
	Iterator interface {
		Next() (core.Row, bool)
		Err() error
	}
)
