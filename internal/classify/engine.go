package classify

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"hotzaot/internal/core"
	"hotzaot/internal/summary"
)

// Engine classifies a sequence of rows against a store, keeping the ledger,
// the running per-category totals and the category→names index for one run.
// It is single-threaded by design: the store must see classifications in
// row order so later rows resolve against earlier answers.
type Engine struct {
	store    *Store
	resolver Resolver

	ledger  []core.LedgerEntry
	totals  map[string]decimal.Decimal
	index   summary.Index
	skipped int
	learned map[string]string
}

// Result is what one engine run hands back to the caller.
type Result struct {
	Ledger  []core.LedgerEntry
	Totals  map[string]decimal.Decimal
	Index   summary.Index
	Skipped int
	// Learned holds only the pairs classified interactively during this
	// run, for event publishing and durable stores.
	Learned map[string]string
}

func NewEngine(store *Store, resolver Resolver) *Engine {
	return &Engine{
		store:    store,
		resolver: resolver,
		totals:   make(map[string]decimal.Decimal),
		index:    make(summary.Index),
		learned:  make(map[string]string),
	}
}

// ClassifyRow runs one row through the skip checks, the store lookup and,
// when the name is new, the resolver loop. Malformed rows are skipped and
// counted, never an error; the only errors surfaced are the resolver's own
// (user abort, closed input).
func (e *Engine) ClassifyRow(ctx context.Context, row core.Row) error {
	date, ok := core.NormalizeDate(row.RawDate)
	if !ok {
		e.skipped++
		slog.Debug("Skipping row: invalid date", "name", row.Name)
		return nil
	}
	if !row.HasName() {
		e.skipped++
		slog.Debug("Skipping row: missing expense name")
		return nil
	}

	category, known := e.store.Lookup(row.Name)
	if !known {
		var err error
		category, err = e.resolve(ctx, row.Name)
		if err != nil {
			return err
		}
	}

	e.commit(category, date, row)
	return nil
}

// resolve asks the resolver until it produces a category. An undo answer
// reverses the latest commit (a no-op with an empty ledger) and then
// re-presents the same name: the popped entry is not re-emitted here, any
// edit-and-resubmit flow belongs to the resolver.
func (e *Engine) resolve(ctx context.Context, name string) (string, error) {
	for {
		res, err := e.resolver.Resolve(ctx, name, e.knownCategories())
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", name, err)
		}
		if res.Undo {
			if !e.Undo() {
				slog.Info("Nothing to undo")
			}
			continue
		}
		e.store.Set(name, res.Category)
		e.learned[name] = res.Category
		slog.Info("Learned classification", "name", name, "category", res.Category)
		return res.Category, nil
	}
}

func (e *Engine) commit(category, date string, row core.Row) {
	e.index.Add(category, row.Name)
	e.ledger = append(e.ledger, core.LedgerEntry{
		Category: category,
		Date:     date,
		Name:     row.Name,
		Amount:   row.Amount,
	})
	e.totals[category] = total(e.totals, category).Add(row.Amount)
}

// Undo removes the most recent ledger entry and reverses its effect on the
// totals, deleting the category when its total returns to exactly zero.
// The store and the index keep what they learned; only the committed entry
// is taken back. Returns false, without changing anything, when there is
// no history.
func (e *Engine) Undo() bool {
	if len(e.ledger) == 0 {
		return false
	}
	last := e.ledger[len(e.ledger)-1]
	e.ledger = e.ledger[:len(e.ledger)-1]

	remaining := total(e.totals, last.Category).Sub(last.Amount)
	if remaining.IsZero() {
		delete(e.totals, last.Category)
	} else {
		e.totals[last.Category] = remaining
	}
	slog.Info("Undid classification", "name", last.Name, "category", last.Category)
	return true
}

// Skipped returns how many rows were skipped so far.
func (e *Engine) Skipped() int {
	return e.skipped
}

// Result hands back the run state. The engine is done after this; it is
// not reset for reuse.
func (e *Engine) Result() Result {
	return Result{
		Ledger:  e.ledger,
		Totals:  e.totals,
		Index:   e.index,
		Skipped: e.skipped,
		Learned: e.learned,
	}
}

func (e *Engine) knownCategories() []string {
	out := make([]string, 0, len(e.totals))
	for category := range e.totals {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

func total(totals map[string]decimal.Decimal, category string) decimal.Decimal {
	if t, ok := totals[category]; ok {
		return t
	}
	return decimal.Zero
}
