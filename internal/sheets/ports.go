// Package sheets defines the outbound port for pushing a run's summary to
// a shared spreadsheet.
package sheets

import (
	"context"

	"hotzaot/internal/core"
)

// SummaryWriter replaces a spreadsheet's summary with the given totals.
type SummaryWriter interface {
	WriteSummary(ctx context.Context, totals []core.CategoryTotal) error
}
