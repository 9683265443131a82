package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crewsync/crewsync-backend-go/internal/domain/staff"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

const staffColumns = `
	st.id, st.event_id, st.shift_id, st.vendor_id, st.position_id, st.hourly_rate,
	st.checked_in_at, st.checked_out_at, st.qr_code,
	st.is_flagged, st.is_priority, st.added_manually,
	st.deleted_at, st.created_at, st.updated_at
`

// Create implements staff.StaffRepository.
func (r *staffRepositoryImpl) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	// Insert then re-read through GetByID so the response carries the joined
	// vendor/position/shift names.
	insert := `
		INSERT INTO staff (
			id, event_id, shift_id, vendor_id, position_id, hourly_rate,
			is_flagged, is_priority, added_manually, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`

	id := uuid.NewString()
	_, err := q.Exec(ctx, insert,
		id, s.EventID, s.ShiftID, s.VendorID, s.PositionID, s.HourlyRate,
		s.IsFlagged, s.IsPriority, s.AddedManually,
	)
	if err != nil {
		return staff.Staff{}, fmt.Errorf("failed to create staff: %w", err)
	}

	return r.GetByID(ctx, id, s.EventID)
}

// CreateBatch implements staff.StaffRepository. Rows without ids get one.
func (r *staffRepositoryImpl) CreateBatch(ctx context.Context, rows []staff.Staff) error {
	if len(rows) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	var (
		sb   strings.Builder
		args []interface{}
	)
	sb.WriteString(`
		INSERT INTO staff (
			id, event_id, shift_id, vendor_id, position_id, hourly_rate,
			is_flagged, is_priority, added_manually, created_at, updated_at
		) VALUES `)

	for i, s := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 9
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, NOW(), NOW())",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		args = append(args, id, s.EventID, s.ShiftID, s.VendorID, s.PositionID,
			s.HourlyRate, s.IsFlagged, s.IsPriority, s.AddedManually)
	}

	if _, err := q.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("failed to batch create staff: %w", err)
	}

	return nil
}

// GetByID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string, eventID string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + staffColumns + `,
			   v.name, p.name, sh.name
		FROM staff st
		JOIN vendors v ON v.id = st.vendor_id
		JOIN positions p ON p.id = st.position_id
		JOIN shifts sh ON sh.id = st.shift_id
		WHERE st.id = $1 AND st.event_id = $2
	`

	var s staff.Staff
	err := q.QueryRow(ctx, query, id, eventID).Scan(
		&s.ID, &s.EventID, &s.ShiftID, &s.VendorID, &s.PositionID, &s.HourlyRate,
		&s.CheckedInAt, &s.CheckedOutAt, &s.QRCode,
		&s.IsFlagged, &s.IsPriority, &s.AddedManually,
		&s.DeletedAt, &s.CreatedAt, &s.UpdatedAt,
		&s.VendorName, &s.PositionName, &s.ShiftName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}

	return s, nil
}

// Update implements staff.StaffRepository.
func (r *staffRepositoryImpl) Update(ctx context.Context, s staff.Staff) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff
		SET shift_id = $1, vendor_id = $2, position_id = $3, hourly_rate = $4,
			checked_in_at = $5, checked_out_at = $6, qr_code = $7,
			is_flagged = $8, is_priority = $9, updated_at = NOW()
		WHERE id = $10
	`

	tag, err := q.Exec(ctx, query,
		s.ShiftID, s.VendorID, s.PositionID, s.HourlyRate,
		s.CheckedInAt, s.CheckedOutAt, s.QRCode,
		s.IsFlagged, s.IsPriority, s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}

	return nil
}

// List implements staff.StaffRepository.
func (r *staffRepositoryImpl) List(ctx context.Context, filter staff.ListFilter) ([]staff.Staff, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)

	add := func(cond string, val interface{}) {
		args = append(args, val)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	add("st.event_id = $%d", filter.EventID)
	if !filter.Deleted {
		conditions = append(conditions, "st.deleted_at IS NULL")
	}
	if filter.VendorID != "" {
		add("st.vendor_id = $%d", filter.VendorID)
	}
	if filter.ShiftID != "" {
		add("st.shift_id = $%d", filter.ShiftID)
	}
	if filter.PositionID != "" {
		add("st.position_id = $%d", filter.PositionID)
	}
	if filter.FlaggedOnly {
		conditions = append(conditions, "st.is_flagged = TRUE")
	}
	if filter.CheckedIn != nil {
		if *filter.CheckedIn {
			conditions = append(conditions, "st.checked_in_at IS NOT NULL AND st.checked_out_at IS NULL")
		} else {
			conditions = append(conditions, "(st.checked_in_at IS NULL OR st.checked_out_at IS NOT NULL)")
		}
	}
	if filter.From != nil {
		add("sh.start_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("sh.start_date < $%d", *filter.To)
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM staff st
		JOIN shifts sh ON sh.id = st.shift_id
		WHERE ` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count staff: %w", err)
	}

	query := `
		SELECT ` + staffColumns + `,
			   v.name, p.name, sh.name
		FROM staff st
		JOIN vendors v ON v.id = st.vendor_id
		JOIN positions p ON p.id = st.position_id
		JOIN shifts sh ON sh.id = st.shift_id
		WHERE ` + where + `
		ORDER BY sh.start_date ASC, v.name ASC, p.name ASC, st.created_at ASC
	`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		if filter.Page > 1 {
			args = append(args, (filter.Page-1)*filter.Limit)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var result []staff.Staff
	for rows.Next() {
		var s staff.Staff
		err := rows.Scan(
			&s.ID, &s.EventID, &s.ShiftID, &s.VendorID, &s.PositionID, &s.HourlyRate,
			&s.CheckedInAt, &s.CheckedOutAt, &s.QRCode,
			&s.IsFlagged, &s.IsPriority, &s.AddedManually,
			&s.DeletedAt, &s.CreatedAt, &s.UpdatedAt,
			&s.VendorName, &s.PositionName, &s.ShiftName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan staff: %w", err)
		}
		result = append(result, s)
	}

	return result, total, rows.Err()
}

// SetCheckIn implements staff.StaffRepository.
func (r *staffRepositoryImpl) SetCheckIn(ctx context.Context, id string, at time.Time) error {
	return r.setTimestamp(ctx, id, "checked_in_at", &at)
}

// SetCheckOut implements staff.StaffRepository.
func (r *staffRepositoryImpl) SetCheckOut(ctx context.Context, id string, at time.Time) error {
	return r.setTimestamp(ctx, id, "checked_out_at", &at)
}

// ClearCheckIn implements staff.StaffRepository.
func (r *staffRepositoryImpl) ClearCheckIn(ctx context.Context, id string) error {
	return r.setTimestamp(ctx, id, "checked_in_at", nil)
}

// ClearCheckOut implements staff.StaffRepository.
func (r *staffRepositoryImpl) ClearCheckOut(ctx context.Context, id string) error {
	return r.setTimestamp(ctx, id, "checked_out_at", nil)
}

func (r *staffRepositoryImpl) setTimestamp(ctx context.Context, id string, column string, at *time.Time) error {
	q := GetQuerier(ctx, r.db)

	// column is one of two compile-time constants, never user input
	query := fmt.Sprintf(`
		UPDATE staff
		SET %s = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`, column)

	tag, err := q.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}

	return nil
}

// QRCodeInUse implements staff.StaffRepository. Runs inside the claiming
// transaction so a concurrent scan of the same badge serializes on the row.
func (r *staffRepositoryImpl) QRCodeInUse(ctx context.Context, shiftID string, code string, excludeStaffID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM staff
			WHERE shift_id = $1 AND qr_code = $2 AND id <> $3 AND deleted_at IS NULL
		)
	`

	var inUse bool
	if err := q.QueryRow(ctx, query, shiftID, code, excludeStaffID).Scan(&inUse); err != nil {
		return false, fmt.Errorf("failed to check qr code: %w", err)
	}

	return inUse, nil
}

// SetQRCode implements staff.StaffRepository.
func (r *staffRepositoryImpl) SetQRCode(ctx context.Context, id string, code string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff
		SET qr_code = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, code, id)
	if err != nil {
		return fmt.Errorf("failed to set qr code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}

	return nil
}

// SetFlagged implements staff.StaffRepository.
func (r *staffRepositoryImpl) SetFlagged(ctx context.Context, id string, flagged bool) error {
	return r.setBool(ctx, id, "is_flagged", flagged)
}

// SetPriority implements staff.StaffRepository.
func (r *staffRepositoryImpl) SetPriority(ctx context.Context, id string, priority bool) error {
	return r.setBool(ctx, id, "is_priority", priority)
}

func (r *staffRepositoryImpl) setBool(ctx context.Context, id string, column string, value bool) error {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE staff
		SET %s = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`, column)

	tag, err := q.Exec(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}

	return nil
}

// BatchUpdate implements staff.StaffRepository.
func (r *staffRepositoryImpl) BatchUpdate(ctx context.Context, req staff.BatchUpdateRequest) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		sets []string
		args []interface{}
	)

	set := func(expr string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}

	if req.HourlyRate != nil {
		set("hourly_rate = $%d", *req.HourlyRate)
	}
	if req.VendorID != nil {
		set("vendor_id = $%d", *req.VendorID)
	}
	if req.PositionID != nil {
		set("position_id = $%d", *req.PositionID)
	}
	if len(sets) == 0 {
		return 0, staff.ErrNothingToUpdate
	}

	args = append(args, req.StaffIDs)
	idArg := len(args)
	args = append(args, req.EventID)
	eventArg := len(args)

	query := fmt.Sprintf(`
		UPDATE staff
		SET %s, updated_at = NOW()
		WHERE id = ANY($%d) AND event_id = $%d AND deleted_at IS NULL
	`, strings.Join(sets, ", "), idArg, eventArg)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to batch update staff: %w", err)
	}

	return tag.RowsAffected(), nil
}

// SoftDelete implements staff.StaffRepository.
func (r *staffRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}

	return nil
}

// SoftDeleteByVendorShift implements staff.StaffRepository.
func (r *staffRepositoryImpl) SoftDeleteByVendorShift(ctx context.Context, eventID string, vendorID string, shiftID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions = []string{"event_id = $1", "deleted_at IS NULL"}
		args       = []interface{}{eventID}
	)

	if vendorID != "" {
		args = append(args, vendorID)
		conditions = append(conditions, fmt.Sprintf("vendor_id = $%d", len(args)))
	}
	if shiftID != "" {
		args = append(args, shiftID)
		conditions = append(conditions, fmt.Sprintf("shift_id = $%d", len(args)))
	}

	query := `
		UPDATE staff
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE ` + strings.Join(conditions, " AND ")

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk soft delete staff: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListClosed implements staff.StaffRepository. "Closed" means both
// attendance timestamps null or both set; rows mid-shift are never returned.
func (r *staffRepositoryImpl) ListClosed(ctx context.Context, vendorID, shiftID, positionID string, limit int) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + staffColumns + `
		FROM staff st
		WHERE st.vendor_id = $1 AND st.shift_id = $2 AND st.position_id = $3
		  AND st.deleted_at IS NULL
		  AND ((st.checked_in_at IS NULL AND st.checked_out_at IS NULL)
			OR (st.checked_in_at IS NOT NULL AND st.checked_out_at IS NOT NULL))
		ORDER BY st.created_at ASC
		LIMIT $4
	`

	rows, err := q.Query(ctx, query, vendorID, shiftID, positionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed staff: %w", err)
	}
	defer rows.Close()

	var result []staff.Staff
	for rows.Next() {
		var s staff.Staff
		err := rows.Scan(
			&s.ID, &s.EventID, &s.ShiftID, &s.VendorID, &s.PositionID, &s.HourlyRate,
			&s.CheckedInAt, &s.CheckedOutAt, &s.QRCode,
			&s.IsFlagged, &s.IsPriority, &s.AddedManually,
			&s.DeletedAt, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan closed staff: %w", err)
		}
		result = append(result, s)
	}

	return result, rows.Err()
}

// CountClosed implements staff.StaffRepository.
func (r *staffRepositoryImpl) CountClosed(ctx context.Context, vendorID, shiftID, positionID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM staff
		WHERE vendor_id = $1 AND shift_id = $2 AND position_id = $3
		  AND deleted_at IS NULL
		  AND ((checked_in_at IS NULL AND checked_out_at IS NULL)
			OR (checked_in_at IS NOT NULL AND checked_out_at IS NOT NULL))
	`

	var count int
	if err := q.QueryRow(ctx, query, vendorID, shiftID, positionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count closed staff: %w", err)
	}

	return count, nil
}

// HardDeleteByIDs implements staff.StaffRepository. Used only by the bulk
// mutation guard for over-quota removal; normal deletion is soft.
func (r *staffRepositoryImpl) HardDeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM staff
		WHERE id = ANY($1)
	`

	tag, err := q.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to hard delete staff: %w", err)
	}

	return tag.RowsAffected(), nil
}
