package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewsync/crewsync-backend-go/internal/domain/stats"
)

var mergeStart = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func sampleSources() ([]stats.PositionCountRow, []stats.ShiftTotalsRow, []stats.VendorTotalsRow) {
	positions := []stats.PositionCountRow{
		{VendorID: "v1", VendorName: "Acme Staffing", ShiftID: "s1", ShiftName: "6/1 Saturday 9:00 AM", StartDate: mergeStart, PositionName: "Bartender", TotalCount: 4, CheckedInCount: 3},
		{VendorID: "v1", VendorName: "Acme Staffing", ShiftID: "s1", ShiftName: "6/1 Saturday 9:00 AM", StartDate: mergeStart, PositionName: "Server", TotalCount: 6, CheckedInCount: 2},
		{VendorID: "v2", VendorName: "Best Crew", ShiftID: "s1", ShiftName: "6/1 Saturday 9:00 AM", StartDate: mergeStart, PositionName: "Security", TotalCount: 2, CheckedInCount: 2},
	}

	shifts := []stats.ShiftTotalsRow{
		{VendorID: "v1", VendorName: "Acme Staffing", ShiftID: "s1", ShiftName: "6/1 Saturday 9:00 AM", StartDate: mergeStart, TotalCount: 10, CheckedInCount: 5, CheckedOutCount: 1, CurrentlyCheckedInCount: 4, TotalExpectedCost: 1600, CurrentAccruedCost: 400},
		{VendorID: "v2", VendorName: "Best Crew", ShiftID: "s1", ShiftName: "6/1 Saturday 9:00 AM", StartDate: mergeStart, TotalCount: 2, CheckedInCount: 2, CheckedOutCount: 0, CurrentlyCheckedInCount: 2, TotalExpectedCost: 320, CurrentAccruedCost: 120},
	}

	vendors := []stats.VendorTotalsRow{
		{VendorID: "v1", VendorName: "Acme Staffing", TotalCount: 10, CheckedInCount: 5, CheckedOutCount: 1, CurrentlyCheckedInCount: 4, TotalExpectedCost: 1600, CurrentAccruedCost: 400,
			Positions: []stats.PositionBreakdown{{Name: "Bartender", TotalCount: 4, CheckedInCount: 3}, {Name: "Server", TotalCount: 6, CheckedInCount: 2}}},
		{VendorID: "v2", VendorName: "Best Crew", TotalCount: 2, CheckedInCount: 2, CheckedOutCount: 0, CurrentlyCheckedInCount: 2, TotalExpectedCost: 320, CurrentAccruedCost: 120,
			Positions: []stats.PositionBreakdown{{Name: "Security", TotalCount: 2, CheckedInCount: 2}}},
	}

	return positions, shifts, vendors
}

func TestMerge_ReconcilesAllThreeSources(t *testing.T) {
	positions, shifts, vendors := sampleSources()

	reports := Merge(positions, shifts, vendors)
	require.Len(t, reports, 2)

	acme := reports[0]
	assert.Equal(t, "v1", acme.VendorID)
	assert.Equal(t, 10, acme.All.TotalCount)
	assert.InDelta(t, 50.0, acme.All.CheckedInPercentage, 0.001)
	assert.InDelta(t, 20.0, acme.All.CheckedOutPercentage, 0.001) // 1 of 5 checked in

	require.Len(t, acme.Shifts, 1)
	shift := acme.Shifts[0]
	assert.Equal(t, 10, shift.TotalCount)
	assert.Equal(t, 1, shift.CheckedOutCount)
	assert.Equal(t, 4, shift.CurrentlyCheckedInCount)
	assert.InDelta(t, 1600.0, shift.TotalExpectedCost, 0.001)
	require.Len(t, shift.PositionCounts, 2)
	assert.Equal(t, "Bartender", shift.PositionCounts[0].Name)
}

// A vendor that appears in only one source must still surface in the output.
func TestMerge_VendorMissingFromOtherSourcesSurvives(t *testing.T) {
	shifts := []stats.ShiftTotalsRow{
		{VendorID: "v9", VendorName: "Lone Vendor", ShiftID: "s9", ShiftName: "6/1 Saturday 9:00 AM", StartDate: mergeStart, TotalCount: 3, CheckedInCount: 1, CheckedOutCount: 1, TotalExpectedCost: 240, CurrentAccruedCost: 80},
	}

	reports := Merge(nil, shifts, nil)
	require.Len(t, reports, 1)

	lone := reports[0]
	assert.Equal(t, "Lone Vendor", lone.VendorName)
	// No source-3 row: the "all" block is rolled up from shift totals.
	assert.Equal(t, 3, lone.All.TotalCount)
	assert.Equal(t, 1, lone.All.CheckedOutCount)
	assert.InDelta(t, 240.0, lone.All.TotalExpectedCost, 0.001)
	assert.InDelta(t, 100.0/3.0, lone.All.CheckedInPercentage, 0.001)
	assert.InDelta(t, 100.0, lone.All.CheckedOutPercentage, 0.001) // 1 of 1 checked in
}

func TestMerge_PositionOnlyShiftGetsEntry(t *testing.T) {
	positions := []stats.PositionCountRow{
		{VendorID: "v1", VendorName: "Acme Staffing", ShiftID: "s2", ShiftName: "6/2 Sunday 9:00 AM", StartDate: mergeStart.AddDate(0, 0, 1), PositionName: "Chef", TotalCount: 1, CheckedInCount: 0},
	}

	reports := Merge(positions, nil, nil)
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Shifts, 1)
	assert.Equal(t, "Chef", reports[0].Shifts[0].PositionCounts[0].Name)
}

func TestMerge_Deterministic(t *testing.T) {
	positions, shifts, vendors := sampleSources()

	first := Merge(positions, shifts, vendors)
	second := Merge(positions, shifts, vendors)

	assert.Equal(t, first, second)
}

func TestMerge_EmptySources(t *testing.T) {
	reports := Merge(nil, nil, nil)
	assert.Empty(t, reports)
}

func TestCombineSummaries_RecomputesPercentages(t *testing.T) {
	a := stats.VendorSummary{TotalCount: 10, CheckedInCount: 10, CheckedInPercentage: 100}
	b := stats.VendorSummary{TotalCount: 90, CheckedInCount: 0, CheckedInPercentage: 0}

	out := CombineSummaries(a, b)

	// 10 of 100, not the 50 an average of bucket percentages would give.
	assert.InDelta(t, 10.0, out.CheckedInPercentage, 0.001)
	assert.Equal(t, 100, out.TotalCount)
}

func TestCombineSummaries_ZeroDenominators(t *testing.T) {
	out := CombineSummaries(stats.VendorSummary{}, stats.VendorSummary{})

	assert.Equal(t, 0.0, out.CheckedInPercentage)
	assert.Equal(t, 0.0, out.CheckedOutPercentage)
}

func TestCombineSummaries_MergesPositionsByName(t *testing.T) {
	a := stats.VendorSummary{Positions: []stats.PositionBreakdown{{Name: "Server", TotalCount: 2, CheckedInCount: 1}}}
	b := stats.VendorSummary{Positions: []stats.PositionBreakdown{
		{Name: "Server", TotalCount: 3, CheckedInCount: 2},
		{Name: "Chef", TotalCount: 1, CheckedInCount: 0},
	}}

	out := CombineSummaries(a, b)

	require.Len(t, out.Positions, 2)
	assert.Equal(t, stats.PositionBreakdown{Name: "Server", TotalCount: 5, CheckedInCount: 3}, out.Positions[0])
	assert.Equal(t, "Chef", out.Positions[1].Name)
}

func TestCombineReports_FoldsBuckets(t *testing.T) {
	positions, shifts, vendors := sampleSources()
	day1 := Merge(positions, shifts, vendors)

	day2 := []stats.VendorReport{
		{
			VendorID:   "v1",
			VendorName: "Acme Staffing",
			All:        stats.VendorSummary{TotalCount: 5, CheckedInCount: 5, TotalExpectedCost: 800},
			Shifts: []stats.ShiftStats{
				{ShiftID: "s3", ShiftName: "6/2 Sunday 9:00 AM", TotalCount: 5, CheckedInCount: 5, CheckedInPercentage: 100, TotalExpectedCost: 800},
			},
		},
		{
			VendorID:   "v3",
			VendorName: "New Vendor",
			All:        stats.VendorSummary{TotalCount: 1},
		},
	}

	merged := CombineReports(day1, day2)
	require.Len(t, merged, 3)

	acme := merged[0]
	assert.Equal(t, 15, acme.All.TotalCount)
	assert.InDelta(t, 2400.0, acme.All.TotalExpectedCost, 0.001)
	assert.Len(t, acme.Shifts, 2)

	assert.Equal(t, "v3", merged[2].VendorID)
}

func TestCombineReports_SumsShiftCheckoutCounts(t *testing.T) {
	base := []stats.VendorReport{{
		VendorID:   "v1",
		VendorName: "Acme Staffing",
		Shifts: []stats.ShiftStats{
			{ShiftID: "s1", TotalCount: 10, CheckedInCount: 5, CheckedOutCount: 1, CurrentlyCheckedInCount: 4},
		},
	}}
	add := []stats.VendorReport{{
		VendorID:   "v1",
		VendorName: "Acme Staffing",
		Shifts: []stats.ShiftStats{
			{ShiftID: "s1", TotalCount: 6, CheckedInCount: 3, CheckedOutCount: 2, CurrentlyCheckedInCount: 1},
		},
	}}

	merged := CombineReports(base, add)

	require.Len(t, merged, 1)
	require.Len(t, merged[0].Shifts, 1)
	s := merged[0].Shifts[0]
	assert.Equal(t, 3, s.CheckedOutCount)
	assert.Equal(t, 5, s.CurrentlyCheckedInCount)
	assert.Equal(t, 16, s.TotalCount)
}

func TestTotalsOf(t *testing.T) {
	positions, shifts, vendors := sampleSources()
	reports := Merge(positions, shifts, vendors)

	totals := TotalsOf(reports)

	assert.Equal(t, 12, totals.TotalCount)
	assert.Equal(t, 7, totals.CheckedInCount)
	assert.InDelta(t, 1920.0, totals.TotalExpectedCost, 0.001)
	assert.InDelta(t, 700.0/12.0, totals.CheckedInPercentage, 0.01)
}
