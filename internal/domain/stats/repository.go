package stats

import "context"

// StatsRepository exposes the three grouped-aggregate sources the merge
// engine reconciles, plus the variance queries. Cost expressions evaluated in
// SQL must implement the same three-branch accrual formula as the in-process
// calculator.
type StatsRepository interface {
	// PositionCounts is source 1: one row per (vendor, shift, position).
	PositionCounts(ctx context.Context, q Query) ([]PositionCountRow, error)

	// ShiftTotals is source 2: one row per (vendor, shift) with costs.
	ShiftTotals(ctx context.Context, q Query) ([]ShiftTotalsRow, error)

	// VendorTotals is source 3: one row per vendor with a JSON-aggregated
	// position breakdown decoded into the canonical shape.
	VendorTotals(ctx context.Context, q Query) ([]VendorTotalsRow, error)

	// Variance returns per-vendor additions (added manually, still live) and
	// removals (soft-deleted) for the event.
	Variance(ctx context.Context, eventID string) (VarianceReport, error)
}
