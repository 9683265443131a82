package staff

import (
	"context"
	"time"

	"github.com/crewsync/crewsync-backend-go/internal/domain/event"
	"github.com/crewsync/crewsync-backend-go/internal/domain/staff"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/database"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/qr"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/tz"
	"github.com/crewsync/crewsync-backend-go/internal/repository/postgresql"
)

type StaffServiceImpl struct {
	db     *database.DB
	events event.EventRepository
	repo   staff.StaffRepository
	qr     *qr.Generator
	now    func() time.Time
}

func NewStaffService(db *database.DB, events event.EventRepository, repo staff.StaffRepository, generator *qr.Generator) staff.StaffService {
	return &StaffServiceImpl{
		db:     db,
		events: events,
		repo:   repo,
		qr:     generator,
		now:    time.Now,
	}
}

func (s *StaffServiceImpl) Create(ctx context.Context, companyID string, req staff.CreateStaffRequest) (*staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.events.GetByID(ctx, req.EventID, companyID); err != nil {
		return nil, err
	}

	// Individually created staff count as manual additions in the variance
	// report; only bulk uploads produce the baseline roster.
	created, err := s.repo.Create(ctx, staff.Staff{
		EventID:       req.EventID,
		ShiftID:       req.ShiftID,
		VendorID:      req.VendorID,
		PositionID:    req.PositionID,
		HourlyRate:    req.HourlyRate,
		IsPriority:    req.IsPriority,
		AddedManually: true,
	})
	if err != nil {
		return nil, err
	}

	resp := staff.NewStaffResponse(created)
	return &resp, nil
}

func (s *StaffServiceImpl) List(ctx context.Context, companyID string, filter staff.ListFilter) (*staff.ListStaffResponse, error) {
	ev, err := s.events.GetByID(ctx, filter.EventID, companyID)
	if err != nil {
		return nil, err
	}

	if filter.DateKey != "" {
		from, to, err := tz.DayBounds(filter.DateKey, tz.Resolve(ev.Timezone))
		if err != nil {
			return nil, err
		}
		filter.From = &from
		filter.To = &to
	}

	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &staff.ListStaffResponse{
		Staff:      make([]staff.StaffResponse, 0, len(records)),
		TotalItems: total,
	}
	for _, rec := range records {
		resp.Staff = append(resp.Staff, staff.NewStaffResponse(rec))
	}
	return resp, nil
}

func (s *StaffServiceImpl) Get(ctx context.Context, companyID string, staffID string, eventID string) (*staff.StaffResponse, error) {
	rec, err := s.get(ctx, companyID, staffID, eventID)
	if err != nil {
		return nil, err
	}
	resp := staff.NewStaffResponse(rec)
	return &resp, nil
}

func (s *StaffServiceImpl) CheckIn(ctx context.Context, companyID string, req staff.CheckInRequest) (*staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.get(ctx, companyID, req.StaffID, req.EventID)
	if err != nil {
		return nil, err
	}
	if rec.CheckedInAt != nil {
		return nil, staff.ErrAlreadyCheckedIn
	}

	if err := s.repo.SetCheckIn(ctx, rec.ID, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.refresh(ctx, rec.ID, rec.EventID)
}

func (s *StaffServiceImpl) CheckOut(ctx context.Context, companyID string, req staff.CheckOutRequest) (*staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.get(ctx, companyID, req.StaffID, req.EventID)
	if err != nil {
		return nil, err
	}
	if rec.CheckedInAt == nil {
		return nil, staff.ErrNotCheckedIn
	}
	if rec.CheckedOutAt != nil {
		return nil, staff.ErrAlreadyCheckedOut
	}

	at := s.now().UTC()
	if at.Before(*rec.CheckedInAt) {
		return nil, staff.ErrCheckOutBeforeIn
	}

	if err := s.repo.SetCheckOut(ctx, rec.ID, at); err != nil {
		return nil, err
	}
	return s.refresh(ctx, rec.ID, rec.EventID)
}

// UndoCheckIn clears a mistaken check-in. Refused once a check-out exists:
// clearing the check-in alone would leave a record that ended before it began.
func (s *StaffServiceImpl) UndoCheckIn(ctx context.Context, companyID string, req staff.CheckInRequest) (*staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.get(ctx, companyID, req.StaffID, req.EventID)
	if err != nil {
		return nil, err
	}
	if rec.CheckedInAt == nil {
		return nil, staff.ErrNotCheckedIn
	}
	if rec.CheckedOutAt != nil {
		return nil, staff.ErrAlreadyCheckedOut
	}

	if err := s.repo.ClearCheckIn(ctx, rec.ID); err != nil {
		return nil, err
	}
	return s.refresh(ctx, rec.ID, rec.EventID)
}

func (s *StaffServiceImpl) UndoCheckOut(ctx context.Context, companyID string, req staff.CheckOutRequest) (*staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.get(ctx, companyID, req.StaffID, req.EventID)
	if err != nil {
		return nil, err
	}
	if rec.CheckedOutAt == nil {
		return nil, staff.ErrNotCheckedOut
	}

	if err := s.repo.ClearCheckOut(ctx, rec.ID); err != nil {
		return nil, err
	}
	return s.refresh(ctx, rec.ID, rec.EventID)
}

func (s *StaffServiceImpl) GenerateQR(ctx context.Context, companyID string, staffID string, eventID string) ([]byte, error) {
	rec, err := s.get(ctx, companyID, staffID, eventID)
	if err != nil {
		return nil, err
	}

	return s.qr.EncodePNG(qr.Payload{
		StaffID: rec.ID,
		ShiftID: rec.ShiftID,
		EventID: rec.EventID,
	})
}

// ClaimQR binds a scanned badge token to the record. The token must decrypt
// under our secret and name this event. The uniqueness check and the write
// share one transaction so two concurrent scans of the same badge cannot both
// claim it.
func (s *StaffServiceImpl) ClaimQR(ctx context.Context, companyID string, req staff.ClaimQRRequest) (*staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.get(ctx, companyID, req.StaffID, req.EventID)
	if err != nil {
		return nil, err
	}

	payload, err := s.qr.Decrypt(req.Token)
	if err != nil {
		return nil, err
	}
	if payload.EventID != rec.EventID {
		return nil, staff.ErrUnauthorized
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		inUse, err := s.repo.QRCodeInUse(txCtx, rec.ShiftID, req.Token, rec.ID)
		if err != nil {
			return err
		}
		if inUse {
			return staff.ErrQRCodeClaimed
		}
		return s.repo.SetQRCode(txCtx, rec.ID, req.Token)
	})
	if err != nil {
		return nil, err
	}

	return s.refresh(ctx, rec.ID, rec.EventID)
}

func (s *StaffServiceImpl) ToggleFlag(ctx context.Context, companyID string, req staff.ToggleFlagRequest) (*staff.StaffResponse, error) {
	rec, err := s.get(ctx, companyID, req.StaffID, req.EventID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetFlagged(ctx, rec.ID, req.Flagged); err != nil {
		return nil, err
	}
	return s.refresh(ctx, rec.ID, rec.EventID)
}

func (s *StaffServiceImpl) TogglePriority(ctx context.Context, companyID string, req staff.TogglePriorityRequest) (*staff.StaffResponse, error) {
	rec, err := s.get(ctx, companyID, req.StaffID, req.EventID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetPriority(ctx, rec.ID, req.Priority); err != nil {
		return nil, err
	}
	return s.refresh(ctx, rec.ID, rec.EventID)
}

func (s *StaffServiceImpl) BatchUpdate(ctx context.Context, companyID string, req staff.BatchUpdateRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	if _, err := s.events.GetByID(ctx, req.EventID, companyID); err != nil {
		return 0, err
	}

	return s.repo.BatchUpdate(ctx, req)
}

func (s *StaffServiceImpl) Delete(ctx context.Context, companyID string, staffID string, eventID string) error {
	rec, err := s.get(ctx, companyID, staffID, eventID)
	if err != nil {
		return err
	}
	if rec.IsCheckedIn() {
		return staff.ErrStaffCheckedIn
	}

	return s.repo.SoftDelete(ctx, rec.ID)
}

// get loads a record after proving the caller's company owns the event.
func (s *StaffServiceImpl) get(ctx context.Context, companyID string, staffID string, eventID string) (staff.Staff, error) {
	if _, err := s.events.GetByID(ctx, eventID, companyID); err != nil {
		return staff.Staff{}, err
	}
	return s.repo.GetByID(ctx, staffID, eventID)
}

func (s *StaffServiceImpl) refresh(ctx context.Context, id string, eventID string) (*staff.StaffResponse, error) {
	rec, err := s.repo.GetByID(ctx, id, eventID)
	if err != nil {
		return nil, err
	}
	resp := staff.NewStaffResponse(rec)
	return &resp, nil
}
