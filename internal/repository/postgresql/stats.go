package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/crewsync/crewsync-backend-go/internal/domain/stats"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/database"
)

type statsRepositoryImpl struct {
	db *database.DB
}

func NewStatsRepository(db *database.DB) stats.StatsRepository {
	return &statsRepositoryImpl{db: db}
}

// Cost expressions mirror the in-process accrual calculator exactly: expected
// cost from the scheduled window, accrued cost from the three-branch formula
// (checked out → actual hours; open under 24h → hours to "now"; open 24h or
// more → clamped to the scheduled shift end).
const (
	expectedCostExpr = `
		EXTRACT(EPOCH FROM (sh.end_date - sh.start_date)) / 3600.0 * st.hourly_rate`

	accruedCostExpr = `
		CASE
			WHEN st.checked_in_at IS NULL THEN 0
			WHEN st.checked_out_at IS NOT NULL THEN
				EXTRACT(EPOCH FROM (st.checked_out_at - st.checked_in_at)) / 3600.0 * st.hourly_rate
			WHEN {{now}} - st.checked_in_at < INTERVAL '24 hours' THEN
				EXTRACT(EPOCH FROM ({{now}} - st.checked_in_at)) / 3600.0 * st.hourly_rate
			ELSE
				EXTRACT(EPOCH FROM (sh.end_date - st.checked_in_at)) / 3600.0 * st.hourly_rate
		END`
)

// scopeFilter builds the WHERE fragment shared by all three sources, plus the
// positional args. Queries that evaluate cost expressions pass withNow=true,
// which makes the accrual anchor ("now") arg $1 so the expressions can
// reference it. Postgres rejects bound parameters the statement never uses,
// so count-only queries must leave it out.
func scopeFilter(q stats.Query, withNow bool) (string, []interface{}) {
	var args []interface{}
	if withNow {
		args = append(args, q.Now)
	}

	conditions := []string{"st.deleted_at IS NULL"}

	args = append(args, q.EventID)
	conditions = append(conditions, fmt.Sprintf("st.event_id = $%d", len(args)))

	if q.VendorID != "" {
		args = append(args, q.VendorID)
		conditions = append(conditions, fmt.Sprintf("st.vendor_id = $%d", len(args)))
	}
	if q.ShiftID != "" {
		args = append(args, q.ShiftID)
		conditions = append(conditions, fmt.Sprintf("st.shift_id = $%d", len(args)))
	}
	if q.PositionID != "" {
		args = append(args, q.PositionID)
		conditions = append(conditions, fmt.Sprintf("st.position_id = $%d", len(args)))
	}
	if q.From != nil {
		args = append(args, *q.From)
		conditions = append(conditions, fmt.Sprintf("sh.start_date >= $%d", len(args)))
	}
	if q.To != nil {
		args = append(args, *q.To)
		conditions = append(conditions, fmt.Sprintf("sh.start_date < $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

func bindNow(expr string) string {
	return strings.ReplaceAll(expr, "{{now}}", "$1")
}

// PositionCounts implements stats.StatsRepository (source 1).
func (r *statsRepositoryImpl) PositionCounts(ctx context.Context, query stats.Query) ([]stats.PositionCountRow, error) {
	q := GetQuerier(ctx, r.db)

	where, args := scopeFilter(query, false)

	sql := `
		SELECT v.id, v.name, sh.id, sh.name, sh.start_date, p.name,
			   COUNT(*) AS total_count,
			   COUNT(st.checked_in_at) AS checked_in_count
		FROM staff st
		JOIN shifts sh ON sh.id = st.shift_id
		JOIN vendors v ON v.id = st.vendor_id
		JOIN positions p ON p.id = st.position_id
		WHERE ` + where + `
		GROUP BY v.id, v.name, sh.id, sh.name, sh.start_date, p.name
		ORDER BY v.name, sh.start_date, p.name
	`

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query position counts: %w", err)
	}
	defer rows.Close()

	var result []stats.PositionCountRow
	for rows.Next() {
		var row stats.PositionCountRow
		err := rows.Scan(
			&row.VendorID, &row.VendorName, &row.ShiftID, &row.ShiftName,
			&row.StartDate, &row.PositionName,
			&row.TotalCount, &row.CheckedInCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position count row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// ShiftTotals implements stats.StatsRepository (source 2).
func (r *statsRepositoryImpl) ShiftTotals(ctx context.Context, query stats.Query) ([]stats.ShiftTotalsRow, error) {
	q := GetQuerier(ctx, r.db)

	where, args := scopeFilter(query, true)

	sql := `
		SELECT v.id, v.name, sh.id, sh.name, sh.start_date,
			   COUNT(*) AS total_count,
			   COUNT(st.checked_in_at) AS checked_in_count,
			   COUNT(st.checked_out_at) AS checked_out_count,
			   COUNT(*) FILTER (WHERE st.checked_in_at IS NOT NULL AND st.checked_out_at IS NULL) AS currently_checked_in_count,
			   COALESCE(SUM(` + expectedCostExpr + `), 0) AS total_expected_cost,
			   COALESCE(SUM(` + bindNow(accruedCostExpr) + `), 0) AS current_accrued_cost
		FROM staff st
		JOIN shifts sh ON sh.id = st.shift_id
		JOIN vendors v ON v.id = st.vendor_id
		WHERE ` + where + `
		GROUP BY v.id, v.name, sh.id, sh.name, sh.start_date
		ORDER BY v.name, sh.start_date
	`

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift totals: %w", err)
	}
	defer rows.Close()

	var result []stats.ShiftTotalsRow
	for rows.Next() {
		var row stats.ShiftTotalsRow
		err := rows.Scan(
			&row.VendorID, &row.VendorName, &row.ShiftID, &row.ShiftName, &row.StartDate,
			&row.TotalCount, &row.CheckedInCount, &row.CheckedOutCount,
			&row.CurrentlyCheckedInCount,
			&row.TotalExpectedCost, &row.CurrentAccruedCost,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift totals row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// positionAggEntry is the shape jsonb_agg produces inside the vendor totals
// query. Its field casing belongs to the SQL layer; it is re-keyed into the
// canonical stats.PositionBreakdown before the merge engine ever sees it.
type positionAggEntry struct {
	PositionName string `json:"positionName"`
	Total        int    `json:"total"`
	CheckedIn    int    `json:"checkedIn"`
}

// VendorTotals implements stats.StatsRepository (source 3).
func (r *statsRepositoryImpl) VendorTotals(ctx context.Context, query stats.Query) ([]stats.VendorTotalsRow, error) {
	q := GetQuerier(ctx, r.db)

	where, args := scopeFilter(query, true)

	sql := `
		WITH scoped AS (
			SELECT st.*, sh.start_date AS shift_start, sh.end_date AS shift_end,
				   ` + expectedCostExpr + ` AS expected_cost,
				   ` + bindNow(accruedCostExpr) + ` AS accrued_cost
			FROM staff st
			JOIN shifts sh ON sh.id = st.shift_id
			WHERE ` + where + `
		),
		per_position AS (
			SELECT s.vendor_id, p.name AS position_name,
				   COUNT(*) AS total,
				   COUNT(s.checked_in_at) AS checked_in
			FROM scoped s
			JOIN positions p ON p.id = s.position_id
			GROUP BY s.vendor_id, p.name
		)
		SELECT v.id, v.name,
			   COUNT(*) AS total_count,
			   COUNT(s.checked_in_at) AS checked_in_count,
			   COUNT(s.checked_out_at) AS checked_out_count,
			   COUNT(*) FILTER (WHERE s.checked_in_at IS NOT NULL AND s.checked_out_at IS NULL) AS currently_checked_in_count,
			   COALESCE(SUM(s.expected_cost), 0) AS total_expected_cost,
			   COALESCE(SUM(s.accrued_cost), 0) AS current_accrued_cost,
			   COALESCE((
					SELECT jsonb_agg(jsonb_build_object(
						'positionName', pp.position_name,
						'total', pp.total,
						'checkedIn', pp.checked_in
					) ORDER BY pp.position_name)
					FROM per_position pp
					WHERE pp.vendor_id = v.id
			   ), '[]'::jsonb) AS positions
		FROM scoped s
		JOIN vendors v ON v.id = s.vendor_id
		GROUP BY v.id, v.name
		ORDER BY v.name
	`

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor totals: %w", err)
	}
	defer rows.Close()

	var result []stats.VendorTotalsRow
	for rows.Next() {
		var (
			row stats.VendorTotalsRow
			raw []byte
		)
		err := rows.Scan(
			&row.VendorID, &row.VendorName,
			&row.TotalCount, &row.CheckedInCount, &row.CheckedOutCount,
			&row.CurrentlyCheckedInCount,
			&row.TotalExpectedCost, &row.CurrentAccruedCost,
			&raw,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor totals row: %w", err)
		}

		var entries []positionAggEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("failed to decode position aggregate: %w", err)
		}
		for _, e := range entries {
			row.Positions = append(row.Positions, stats.PositionBreakdown{
				Name:           e.PositionName,
				TotalCount:     e.Total,
				CheckedInCount: e.CheckedIn,
			})
		}

		result = append(result, row)
	}

	return result, rows.Err()
}

// Variance implements stats.StatsRepository. Additions are live rows added
// manually after the original roster; removals are soft-deleted rows, which
// stay queryable for exactly this report.
func (r *statsRepositoryImpl) Variance(ctx context.Context, eventID string) (stats.VarianceReport, error) {
	q := GetQuerier(ctx, r.db)

	sql := `
		SELECT v.id, v.name,
			   COUNT(*) AS cnt,
			   COALESCE(SUM(` + expectedCostExpr + `), 0) AS expected_cost,
			   (st.deleted_at IS NOT NULL) AS removed
		FROM staff st
		JOIN shifts sh ON sh.id = st.shift_id
		JOIN vendors v ON v.id = st.vendor_id
		WHERE st.event_id = $1
		  AND ((st.added_manually AND st.deleted_at IS NULL) OR st.deleted_at IS NOT NULL)
		GROUP BY v.id, v.name, (st.deleted_at IS NOT NULL)
		ORDER BY v.name
	`

	rows, err := q.Query(ctx, sql, eventID)
	if err != nil {
		return stats.VarianceReport{}, fmt.Errorf("failed to query variance: %w", err)
	}
	defer rows.Close()

	var report stats.VarianceReport
	for rows.Next() {
		var (
			row     stats.VarianceRow
			removed bool
		)
		if err := rows.Scan(&row.VendorID, &row.VendorName, &row.Count, &row.ExpectedCost, &removed); err != nil {
			return stats.VarianceReport{}, fmt.Errorf("failed to scan variance row: %w", err)
		}
		if removed {
			report.Removals = append(report.Removals, row)
		} else {
			report.Additions = append(report.Additions, row)
		}
	}

	return report, rows.Err()
}
