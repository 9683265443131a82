package stats

import "time"

// The merge engine reconciles three independently grouped aggregate queries.
// Each source gets its own row type so a mismatched shape is a compile error,
// not a silently dropped vendor.

// PositionCountRow is source 1: grouped at (vendor, shift, position)
// granularity, carrying per-position head counts.
type PositionCountRow struct {
	VendorID       string
	VendorName     string
	ShiftID        string
	ShiftName      string
	StartDate      time.Time
	PositionName   string
	TotalCount     int
	CheckedInCount int
}

// ShiftTotalsRow is source 2: grouped at (vendor, shift) granularity,
// carrying shift totals and the two SQL-computed cost figures.
type ShiftTotalsRow struct {
	VendorID                string
	VendorName              string
	ShiftID                 string
	ShiftName               string
	StartDate               time.Time
	TotalCount              int
	CheckedInCount          int
	CheckedOutCount         int
	CurrentlyCheckedInCount int
	TotalExpectedCost       float64
	CurrentAccruedCost      float64
}

// VendorTotalsRow is source 3: grouped at vendor granularity with a nested
// JSON-aggregated position breakdown, decoded once at the repository
// boundary.
type VendorTotalsRow struct {
	VendorID                string
	VendorName              string
	TotalCount              int
	CheckedInCount          int
	CheckedOutCount         int
	CurrentlyCheckedInCount int
	TotalExpectedCost       float64
	CurrentAccruedCost      float64
	Positions               []PositionBreakdown
}

// PositionBreakdown is the canonical per-position tuple shared by all
// sources once decoded.
type PositionBreakdown struct {
	Name           string `json:"name"`
	TotalCount     int    `json:"total_count"`
	CheckedInCount int    `json:"checked_in_count"`
}

// VendorSummary is a vendor's rolled-up block ("all"). Percentages are
// always recomputed from counts, never averaged.
type VendorSummary struct {
	TotalCount              int                 `json:"total_count"`
	CheckedInCount          int                 `json:"checked_in_count"`
	CheckedOutCount         int                 `json:"checked_out_count"`
	CurrentlyCheckedInCount int                 `json:"currently_checked_in_count"`
	CheckedInPercentage     float64             `json:"checked_in_percentage"`
	CheckedOutPercentage    float64             `json:"checked_out_percentage"`
	TotalExpectedCost       float64             `json:"total_expected_cost"`
	CurrentAccruedCost      float64             `json:"current_accrued_cost"`
	Positions               []PositionBreakdown `json:"positions"`
}

// ShiftStats is one shift's merged block under a vendor.
type ShiftStats struct {
	ShiftID                 string              `json:"shift_id"`
	ShiftName               string              `json:"shift_name"`
	StartDate               time.Time           `json:"start_date"`
	TotalCount              int                 `json:"total_count"`
	CheckedInCount          int                 `json:"checked_in_count"`
	CheckedOutCount         int                 `json:"checked_out_count"`
	CurrentlyCheckedInCount int                 `json:"currently_checked_in_count"`
	CheckedInPercentage     float64             `json:"checked_in_percentage"`
	TotalExpectedCost       float64             `json:"total_expected_cost"`
	CurrentAccruedCost      float64             `json:"current_accrued_cost"`
	PositionCounts          []PositionBreakdown `json:"position_counts"`
}

// VendorReport is the merged tree for one vendor.
type VendorReport struct {
	VendorID   string        `json:"vendor_id"`
	VendorName string        `json:"vendor_name"`
	All        VendorSummary `json:"all"`
	Shifts     []ShiftStats  `json:"shifts"`
}

// VarianceRow is one vendor's post-upload roster drift: staff added manually
// after the original roster, or removed from it.
type VarianceRow struct {
	VendorID     string  `json:"vendor_id"`
	VendorName   string  `json:"vendor_name"`
	Count        int     `json:"count"`
	ExpectedCost float64 `json:"expected_cost"`
}

// VarianceReport separates additions from removals for an event.
type VarianceReport struct {
	Additions []VarianceRow `json:"additions"`
	Removals  []VarianceRow `json:"removals"`
}
