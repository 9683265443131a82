package stats

import (
	"time"

	"github.com/crewsync/crewsync-backend-go/internal/domain/stats"
)

// The merge engine reconciles the three independently grouped aggregate
// sources into one vendor tree. The cardinal rule: a vendor or shift that
// appears in only one source must still surface in the output. Absence from
// the other sources means "zero detail there", never "drop it".

type shiftAcc struct {
	id                      string
	name                    string
	startDate               time.Time
	totalCount              int
	checkedInCount          int
	checkedOutCount         int
	currentlyCheckedInCount int
	checkedInPercentage     float64
	totalExpectedCost       float64
	currentAccruedCost      float64
	positionCounts          []stats.PositionBreakdown
}

type vendorAcc struct {
	id         string
	name       string
	all        *stats.VendorSummary
	shiftOrder []string
	shifts     map[string]*shiftAcc
}

type mergeState struct {
	order   []string
	vendors map[string]*vendorAcc
}

func newMergeState() *mergeState {
	return &mergeState{vendors: make(map[string]*vendorAcc)}
}

func (m *mergeState) vendor(id, name string) *vendorAcc {
	if v, ok := m.vendors[id]; ok {
		return v
	}
	v := &vendorAcc{id: id, name: name, shifts: make(map[string]*shiftAcc)}
	m.vendors[id] = v
	m.order = append(m.order, id)
	return v
}

func (v *vendorAcc) shift(id, name string, start time.Time) *shiftAcc {
	if s, ok := v.shifts[id]; ok {
		return s
	}
	s := &shiftAcc{id: id, name: name, startDate: start}
	v.shifts[id] = s
	v.shiftOrder = append(v.shiftOrder, id)
	return s
}

// Merge builds the vendor tree from the three sources.
//
// Source 1 seeds per-position tuples under their shift. Source 2 merges
// shift-level scalars into the same entries, creating vendor/shift entries
// where source 1 produced none (a shift whose staff all have unassigned
// positions still has totals). Source 3 attaches each vendor's rolled-up
// "all" block; vendors missing from source 3 get one synthesized from their
// shift totals so the tree never loses a vendor the other sources saw.
func Merge(positionRows []stats.PositionCountRow, shiftRows []stats.ShiftTotalsRow, vendorRows []stats.VendorTotalsRow) []stats.VendorReport {
	state := newMergeState()

	for _, row := range positionRows {
		v := state.vendor(row.VendorID, row.VendorName)
		s := v.shift(row.ShiftID, row.ShiftName, row.StartDate)
		s.positionCounts = append(s.positionCounts, stats.PositionBreakdown{
			Name:           row.PositionName,
			TotalCount:     row.TotalCount,
			CheckedInCount: row.CheckedInCount,
		})
	}

	for _, row := range shiftRows {
		v := state.vendor(row.VendorID, row.VendorName)
		s := v.shift(row.ShiftID, row.ShiftName, row.StartDate)
		s.totalCount = row.TotalCount
		s.checkedInCount = row.CheckedInCount
		s.checkedOutCount = row.CheckedOutCount
		s.currentlyCheckedInCount = row.CurrentlyCheckedInCount
		s.checkedInPercentage = pct(row.CheckedInCount, row.TotalCount)
		s.totalExpectedCost = row.TotalExpectedCost
		s.currentAccruedCost = row.CurrentAccruedCost
	}

	for _, row := range vendorRows {
		v := state.vendor(row.VendorID, row.VendorName)
		all := summaryFromVendorRow(row)
		v.all = &all
	}

	return state.flatten()
}

func (m *mergeState) flatten() []stats.VendorReport {
	reports := make([]stats.VendorReport, 0, len(m.order))

	for _, id := range m.order {
		v := m.vendors[id]

		shifts := make([]stats.ShiftStats, 0, len(v.shiftOrder))
		for _, sid := range v.shiftOrder {
			s := v.shifts[sid]
			shifts = append(shifts, stats.ShiftStats{
				ShiftID:                 s.id,
				ShiftName:               s.name,
				StartDate:               s.startDate,
				TotalCount:              s.totalCount,
				CheckedInCount:          s.checkedInCount,
				CheckedOutCount:         s.checkedOutCount,
				CurrentlyCheckedInCount: s.currentlyCheckedInCount,
				CheckedInPercentage:     s.checkedInPercentage,
				TotalExpectedCost:       s.totalExpectedCost,
				CurrentAccruedCost:      s.currentAccruedCost,
				PositionCounts:          s.positionCounts,
			})
		}

		all := v.synthesizedAll(shifts)

		reports = append(reports, stats.VendorReport{
			VendorID:   v.id,
			VendorName: v.name,
			All:        all,
			Shifts:     shifts,
		})
	}

	return reports
}

// synthesizedAll returns the vendor's source-3 block when present, otherwise
// rolls one up from the shift totals already merged.
func (v *vendorAcc) synthesizedAll(shifts []stats.ShiftStats) stats.VendorSummary {
	if v.all != nil {
		return *v.all
	}

	var all stats.VendorSummary
	byName := make(map[string]int)
	for _, s := range shifts {
		all.TotalCount += s.TotalCount
		all.CheckedInCount += s.CheckedInCount
		all.CheckedOutCount += s.CheckedOutCount
		all.CurrentlyCheckedInCount += s.CurrentlyCheckedInCount
		all.TotalExpectedCost += s.TotalExpectedCost
		all.CurrentAccruedCost += s.CurrentAccruedCost
		for _, p := range s.PositionCounts {
			if i, ok := byName[p.Name]; ok {
				all.Positions[i].TotalCount += p.TotalCount
				all.Positions[i].CheckedInCount += p.CheckedInCount
				continue
			}
			byName[p.Name] = len(all.Positions)
			all.Positions = append(all.Positions, p)
		}
	}
	all.CheckedInPercentage = pct(all.CheckedInCount, all.TotalCount)
	all.CheckedOutPercentage = pct(all.CheckedOutCount, all.CheckedInCount)
	return all
}

func summaryFromVendorRow(row stats.VendorTotalsRow) stats.VendorSummary {
	positions := make([]stats.PositionBreakdown, len(row.Positions))
	copy(positions, row.Positions)

	return stats.VendorSummary{
		TotalCount:              row.TotalCount,
		CheckedInCount:          row.CheckedInCount,
		CheckedOutCount:         row.CheckedOutCount,
		CurrentlyCheckedInCount: row.CurrentlyCheckedInCount,
		CheckedInPercentage:     pct(row.CheckedInCount, row.TotalCount),
		CheckedOutPercentage:    pct(row.CheckedOutCount, row.CheckedInCount),
		TotalExpectedCost:       row.TotalExpectedCost,
		CurrentAccruedCost:      row.CurrentAccruedCost,
		Positions:               positions,
	}
}

// CombineSummaries merges two vendor summary blocks additively: counts and
// costs sum, percentages are recomputed from the summed counts (averaging
// two pre-computed percentages would weight small buckets the same as large
// ones), and position breakdowns merge by position name.
func CombineSummaries(a, b stats.VendorSummary) stats.VendorSummary {
	out := stats.VendorSummary{
		TotalCount:              a.TotalCount + b.TotalCount,
		CheckedInCount:          a.CheckedInCount + b.CheckedInCount,
		CheckedOutCount:         a.CheckedOutCount + b.CheckedOutCount,
		CurrentlyCheckedInCount: a.CurrentlyCheckedInCount + b.CurrentlyCheckedInCount,
		TotalExpectedCost:       a.TotalExpectedCost + b.TotalExpectedCost,
		CurrentAccruedCost:      a.CurrentAccruedCost + b.CurrentAccruedCost,
	}
	out.CheckedInPercentage = pct(out.CheckedInCount, out.TotalCount)
	out.CheckedOutPercentage = pct(out.CheckedOutCount, out.CheckedInCount)
	out.Positions = combinePositions(a.Positions, b.Positions)
	return out
}

func combinePositions(a, b []stats.PositionBreakdown) []stats.PositionBreakdown {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	byName := make(map[string]int, len(a))
	out := make([]stats.PositionBreakdown, 0, len(a)+len(b))

	for _, lists := range [][]stats.PositionBreakdown{a, b} {
		for _, p := range lists {
			if i, ok := byName[p.Name]; ok {
				out[i].TotalCount += p.TotalCount
				out[i].CheckedInCount += p.CheckedInCount
				continue
			}
			byName[p.Name] = len(out)
			out = append(out, p)
		}
	}

	return out
}

// CombineReports folds a second set of vendor reports (typically another
// date bucket) into the first. Vendors merge by id; a shift id recurring
// across buckets merges additively rather than duplicating.
func CombineReports(base, add []stats.VendorReport) []stats.VendorReport {
	index := make(map[string]int, len(base))
	out := make([]stats.VendorReport, len(base))
	copy(out, base)
	for i, v := range out {
		index[v.VendorID] = i
	}

	for _, v := range add {
		i, ok := index[v.VendorID]
		if !ok {
			index[v.VendorID] = len(out)
			out = append(out, v)
			continue
		}
		out[i].All = CombineSummaries(out[i].All, v.All)
		out[i].Shifts = combineShifts(out[i].Shifts, v.Shifts)
	}

	return out
}

func combineShifts(base, add []stats.ShiftStats) []stats.ShiftStats {
	index := make(map[string]int, len(base))
	out := make([]stats.ShiftStats, len(base))
	copy(out, base)
	for i, s := range out {
		index[s.ShiftID] = i
	}

	for _, s := range add {
		i, ok := index[s.ShiftID]
		if !ok {
			index[s.ShiftID] = len(out)
			out = append(out, s)
			continue
		}
		merged := &out[i]
		merged.TotalCount += s.TotalCount
		merged.CheckedInCount += s.CheckedInCount
		merged.CheckedOutCount += s.CheckedOutCount
		merged.CurrentlyCheckedInCount += s.CurrentlyCheckedInCount
		merged.CheckedInPercentage = pct(merged.CheckedInCount, merged.TotalCount)
		merged.TotalExpectedCost += s.TotalExpectedCost
		merged.CurrentAccruedCost += s.CurrentAccruedCost
		merged.PositionCounts = combinePositions(merged.PositionCounts, s.PositionCounts)
	}

	return out
}

// TotalsOf rolls every vendor's "all" block into one event-wide summary.
func TotalsOf(vendors []stats.VendorReport) stats.VendorSummary {
	var totals stats.VendorSummary
	for _, v := range vendors {
		totals = CombineSummaries(totals, v.All)
	}
	return totals
}

// pct guards every percentage computation in the system: a zero denominator
// yields 0, never NaN or a panic.
func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
