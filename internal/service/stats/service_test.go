package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewsync/crewsync-backend-go/internal/domain/event"
	"github.com/crewsync/crewsync-backend-go/internal/domain/stats"
)

type fakeEventRepo struct {
	event event.Event
	err   error
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string, companyID string) (event.Event, error) {
	if f.err != nil {
		return event.Event{}, f.err
	}
	return f.event, nil
}

func (f *fakeEventRepo) GetTimezone(ctx context.Context, id string, companyID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.event.Timezone, nil
}

// fakeStatsRepo serves the same single-vendor tree for every query and
// records the windows it was asked for.
type fakeStatsRepo struct {
	queries []stats.Query
}

func (f *fakeStatsRepo) PositionCounts(ctx context.Context, q stats.Query) ([]stats.PositionCountRow, error) {
	return []stats.PositionCountRow{{
		VendorID:       "v1",
		VendorName:     "Acme Staffing",
		ShiftID:        "sh1",
		ShiftName:      "2/23 Friday 9:00 AM",
		StartDate:      ts("2024-02-23T09:00:00Z"),
		PositionName:   "Bartender",
		TotalCount:     4,
		CheckedInCount: 2,
	}}, nil
}

func (f *fakeStatsRepo) ShiftTotals(ctx context.Context, q stats.Query) ([]stats.ShiftTotalsRow, error) {
	// Reads of the query list happen after Wait returns, so recording from a
	// single source is enough.
	f.queries = append(f.queries, q)
	return []stats.ShiftTotalsRow{{
		VendorID:           "v1",
		VendorName:         "Acme Staffing",
		ShiftID:            "sh1",
		ShiftName:          "2/23 Friday 9:00 AM",
		StartDate:          ts("2024-02-23T09:00:00Z"),
		TotalCount:         4,
		CheckedInCount:     2,
		TotalExpectedCost:  640,
		CurrentAccruedCost: 100,
	}}, nil
}

func (f *fakeStatsRepo) VendorTotals(ctx context.Context, q stats.Query) ([]stats.VendorTotalsRow, error) {
	return []stats.VendorTotalsRow{{
		VendorID:           "v1",
		VendorName:         "Acme Staffing",
		TotalCount:         4,
		CheckedInCount:     2,
		CheckedOutCount:    1,
		TotalExpectedCost:  640,
		CurrentAccruedCost: 100,
		Positions: []stats.PositionBreakdown{
			{Name: "Bartender", TotalCount: 4, CheckedInCount: 2},
		},
	}}, nil
}

func (f *fakeStatsRepo) Variance(ctx context.Context, eventID string) (stats.VarianceReport, error) {
	return stats.VarianceReport{
		Additions: []stats.VarianceRow{{VendorID: "v1", VendorName: "Acme Staffing", Count: 2, ExpectedCost: 320}},
	}, nil
}

func newTestStatsService(repo *fakeStatsRepo) *StatsServiceImpl {
	return &StatsServiceImpl{
		repo:   repo,
		events: &fakeEventRepo{event: event.Event{ID: "evt-1", CompanyID: "co-1", Timezone: "UTC"}},
		now:    func() time.Time { return ts("2024-02-23T12:00:00Z") },
	}
}

func TestStatsService_Overview_WholeEvent(t *testing.T) {
	// Setup
	repo := &fakeStatsRepo{}
	svc := newTestStatsService(repo)

	// Act
	resp, err := svc.Overview(context.Background(), "co-1", stats.OverviewRequest{EventID: "evt-1"})

	// Assert
	require.NoError(t, err)
	require.Len(t, resp.Vendors, 1)
	assert.Equal(t, 4, resp.Totals.TotalCount)
	assert.Equal(t, 640.0, resp.Totals.TotalExpectedCost)

	// One unbounded query for the whole event.
	require.Len(t, repo.queries, 1)
	assert.Nil(t, repo.queries[0].From)
	assert.Equal(t, ts("2024-02-23T12:00:00Z"), repo.queries[0].Now)
}

func TestStatsService_Overview_FoldsDateBuckets(t *testing.T) {
	// Setup
	repo := &fakeStatsRepo{}
	svc := newTestStatsService(repo)

	// Act
	resp, err := svc.Overview(context.Background(), "co-1", stats.OverviewRequest{
		EventID: "evt-1",
		Dates:   []string{"2024-02-23", "2024-02-24"},
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, repo.queries, 2)
	require.NotNil(t, repo.queries[0].From)
	assert.Equal(t, ts("2024-02-23T00:00:00Z"), *repo.queries[0].From)
	assert.Equal(t, ts("2024-02-24T00:00:00Z"), *repo.queries[1].From)

	// Both days share one clock anchor.
	assert.Equal(t, repo.queries[0].Now, repo.queries[1].Now)

	// Counts and costs sum across buckets; percentages come from the sums.
	require.Len(t, resp.Vendors, 1)
	all := resp.Vendors[0].All
	assert.Equal(t, 8, all.TotalCount)
	assert.Equal(t, 4, all.CheckedInCount)
	assert.Equal(t, 1280.0, all.TotalExpectedCost)
	assert.InDelta(t, 50.0, all.CheckedInPercentage, 0.001)
}

func TestStatsService_Overview_RejectsBadDate(t *testing.T) {
	// Setup
	svc := newTestStatsService(&fakeStatsRepo{})

	// Act
	_, err := svc.Overview(context.Background(), "co-1", stats.OverviewRequest{
		EventID: "evt-1",
		Dates:   []string{"23/02/2024"},
	})

	// Assert
	assert.Error(t, err)
}

func TestStatsService_DailyBreakdown_KeepsBucketsSeparate(t *testing.T) {
	// Setup
	repo := &fakeStatsRepo{}
	svc := newTestStatsService(repo)

	// Act
	resp, err := svc.DailyBreakdown(context.Background(), "co-1", stats.OverviewRequest{
		EventID: "evt-1",
		Dates:   []string{"2024-02-23", "2024-02-24"},
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, "2024-02-23", resp.Days[0].DateKey)
	assert.Equal(t, "2024-02-24", resp.Days[1].DateKey)
	// Each day stands alone, not folded into the other.
	assert.Equal(t, 4, resp.Days[0].Totals.TotalCount)
	assert.Equal(t, 4, resp.Days[1].Totals.TotalCount)
}

func TestStatsService_Variance_VerifiesEventOwnership(t *testing.T) {
	// Setup
	svc := &StatsServiceImpl{
		repo:   &fakeStatsRepo{},
		events: &fakeEventRepo{err: event.ErrEventNotFound},
		now:    time.Now,
	}

	// Act
	_, err := svc.Variance(context.Background(), "co-1", "evt-1")

	// Assert
	assert.ErrorIs(t, err, event.ErrEventNotFound)
}
