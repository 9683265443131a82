package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewsync/crewsync-backend-go/internal/domain/shift"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (id, event_id, name, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, event_id, name, start_date, end_date, created_at, updated_at
	`

	var result shift.Shift
	err := q.QueryRow(ctx, query, uuid.NewString(), s.EventID, s.Name, s.StartDate, s.EndDate).Scan(
		&result.ID,
		&result.EventID,
		&result.Name,
		&result.StartDate,
		&result.EndDate,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return result, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, eventID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, event_id, name, start_date, end_date, created_at, updated_at
		FROM shifts
		WHERE id = $1 AND event_id = $2
	`

	var result shift.Shift
	err := q.QueryRow(ctx, query, id, eventID).Scan(
		&result.ID,
		&result.EventID,
		&result.Name,
		&result.StartDate,
		&result.EndDate,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return result, nil
}

// ListByEvent implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByEvent(ctx context.Context, eventID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.event_id, s.name, s.start_date, s.end_date, s.created_at, s.updated_at,
			   COUNT(st.id) FILTER (WHERE st.deleted_at IS NULL) AS staff_count
		FROM shifts s
		LEFT JOIN staff st ON st.shift_id = s.id
		WHERE s.event_id = $1
		GROUP BY s.id
		ORDER BY s.start_date ASC
	`

	rows, err := q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		var count int
		if err := rows.Scan(&s.ID, &s.EventID, &s.Name, &s.StartDate, &s.EndDate, &s.CreatedAt, &s.UpdatedAt, &count); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		s.StaffCount = &count
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

// ListWindows implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListWindows(ctx context.Context, eventID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, event_id, name, start_date, end_date, created_at, updated_at
		FROM shifts
		WHERE event_id = $1
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift windows: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(&s.ID, &s.EventID, &s.Name, &s.StartDate, &s.EndDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shift window: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

// DeleteIfEmpty implements shift.ShiftRepository. The NOT EXISTS guard and
// the delete run as one statement, so a concurrent insert either blocks the
// delete or lands after the shift is gone.
func (r *shiftRepositoryImpl) DeleteIfEmpty(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM shifts
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM staff WHERE shift_id = $1)
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete empty shift: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
