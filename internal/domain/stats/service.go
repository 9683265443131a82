package stats

import "context"

type StatsService interface {
	// Overview returns the merged vendor tree for an event, optionally scoped
	// to venue-local calendar days and narrowed by vendor/shift.
	Overview(ctx context.Context, companyID string, req OverviewRequest) (*OverviewResponse, error)

	// DailyBreakdown returns one merged tree per requested venue-local day.
	DailyBreakdown(ctx context.Context, companyID string, req OverviewRequest) (*DailyBreakdownResponse, error)

	// Variance reports post-upload roster drift per vendor.
	Variance(ctx context.Context, companyID string, eventID string) (*VarianceReport, error)
}
