// Package aggregate runs the classification engine across several row
// sources and combines their results.
package aggregate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hotzaot/internal/classify"
	"hotzaot/internal/core"
	"hotzaot/internal/rows"
	"hotzaot/internal/summary"
)

// ErrEmptyInput means no source yielded a single committed row. This is
// the one fatal condition of an aggregation run; per-source failures only
// degrade that source.
var ErrEmptyInput = errors.New("no source yielded any committed rows")

// Result is the combined outcome of one aggregation run.
type Result struct {
	RunID   string
	Ledger  []core.LedgerEntry
	Totals  map[string]decimal.Decimal
	Index   summary.Index
	Skipped int
	// FailedSources counts sources that contributed nothing because they
	// could not be read.
	FailedSources int
	// Learned holds the name→category pairs resolved interactively
	// anywhere in the run.
	Learned map[string]string
}

// Aggregator feeds one shared store through an ordered list of sources,
// strictly sequentially: a name classified while processing source i is
// auto-resolved when it recurs in source i+1.
type Aggregator struct {
	store    *classify.Store
	resolver classify.Resolver
}

func New(store *classify.Store, resolver classify.Resolver) *Aggregator {
	return &Aggregator{store: store, resolver: resolver}
}

// Run processes each source in order and combines the per-source results.
// Resolver errors (user abort, closed input) end the run; source read
// failures are logged, counted and skipped.
func (a *Aggregator) Run(ctx context.Context, sources []rows.Source) (Result, error) {
	combined := Result{
		RunID:   uuid.NewString(),
		Totals:  make(map[string]decimal.Decimal),
		Index:   make(summary.Index),
		Learned: make(map[string]string),
	}

	for _, src := range sources {
		res, failed, err := a.runSource(ctx, src)
		if err != nil {
			return combined, err
		}
		if failed {
			combined.FailedSources++
			continue
		}

		combined.Ledger = append(combined.Ledger, res.Ledger...)
		for category, amount := range res.Totals {
			if existing, ok := combined.Totals[category]; ok {
				combined.Totals[category] = existing.Add(amount)
			} else {
				combined.Totals[category] = amount
			}
		}
		combined.Index.Extend(res.Index)
		combined.Skipped += res.Skipped
		for name, category := range res.Learned {
			combined.Learned[name] = category
		}

		slog.InfoContext(ctx, "Source processed",
			"source", src.Name(),
			"committed", len(res.Ledger),
			"skipped", res.Skipped)
	}

	if len(combined.Ledger) == 0 {
		return combined, ErrEmptyInput
	}
	return combined, nil
}

// runSource classifies one source with a fresh engine over the shared
// store. A source that cannot be opened or read degrades to an empty
// contribution (failed=true); only resolver errors come back as err.
func (a *Aggregator) runSource(ctx context.Context, src rows.Source) (classify.Result, bool, error) {
	it, err := src.Open(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Source skipped", "source", src.Name(), "error", err)
		return classify.Result{}, true, nil
	}

	engine := classify.NewEngine(a.store, a.resolver)
	for {
		row, ok := it.Next()
		if !ok {
			break
		}
		if err := engine.ClassifyRow(ctx, row); err != nil {
			return classify.Result{}, false, err
		}
	}
	if err := it.Err(); err != nil {
		// Degrade the whole source, matching the all-or-nothing
		// per-source contract; the store keeps what it learned.
		slog.WarnContext(ctx, "Source read failed", "source", src.Name(), "error", err)
		return classify.Result{}, true, nil
	}
	return engine.Result(), false, nil
}
