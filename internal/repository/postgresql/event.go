package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewsync/crewsync-backend-go/internal/domain/event"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.EventRepository {
	return &eventRepositoryImpl{db: db}
}

// GetByID implements event.EventRepository.
func (r *eventRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, start_date, end_date, timezone, created_at, updated_at
		FROM events
		WHERE id = $1 AND company_id = $2
	`

	var result event.Event
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&result.ID,
		&result.CompanyID,
		&result.Name,
		&result.StartDate,
		&result.EndDate,
		&result.Timezone,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrEventNotFound
		}
		return event.Event{}, fmt.Errorf("failed to get event: %w", err)
	}

	return result, nil
}

// GetTimezone implements event.EventRepository.
func (r *eventRepositoryImpl) GetTimezone(ctx context.Context, id string, companyID string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT timezone
		FROM events
		WHERE id = $1 AND company_id = $2
	`

	var timezone string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&timezone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", event.ErrEventNotFound
		}
		return "", fmt.Errorf("failed to get event timezone: %w", err)
	}

	return timezone, nil
}
