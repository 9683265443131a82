package roster

import (
	"context"
	"strings"

	"github.com/crewsync/crewsync-backend-go/internal/domain/event"
	"github.com/crewsync/crewsync-backend-go/internal/domain/master/position"
	"github.com/crewsync/crewsync-backend-go/internal/domain/master/vendor"
	"github.com/crewsync/crewsync-backend-go/internal/domain/roster"
	"github.com/crewsync/crewsync-backend-go/internal/domain/shift"
	"github.com/crewsync/crewsync-backend-go/internal/domain/staff"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/database"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/tz"
	"github.com/crewsync/crewsync-backend-go/internal/repository/postgresql"
)

type RosterServiceImpl struct {
	db        *database.DB
	events    event.EventRepository
	vendors   vendor.VendorRepository
	positions position.PositionRepository
	shifts    shift.ShiftRepository
	staff     staff.StaffRepository
}

func NewRosterService(
	db *database.DB,
	events event.EventRepository,
	vendors vendor.VendorRepository,
	positions position.PositionRepository,
	shifts shift.ShiftRepository,
	staffRepo staff.StaffRepository,
) roster.RosterService {
	return &RosterServiceImpl{
		db:        db,
		events:    events,
		vendors:   vendors,
		positions: positions,
		shifts:    shifts,
		staff:     staffRepo,
	}
}

// Upload resolves every shift group, reuses shifts whose window already
// exists for the event, creates the missing ones, and inserts all staff
// records. The whole upload runs in one transaction: a bad row on line 40
// must not leave lines 1-39 behind.
func (s *RosterServiceImpl) Upload(ctx context.Context, companyID string, req roster.UploadRequest) (*roster.UploadResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ev, err := s.events.GetByID(ctx, req.EventID, companyID)
	if err != nil {
		return nil, err
	}
	loc := tz.Resolve(ev.Timezone)

	// Lines carrying no staff rows contribute nothing to the roster; drop
	// them before expansion. An upload whose lines are all empty fails whole.
	groups := make([]roster.ShiftGroup, 0, len(req.Groups))
	for _, g := range req.Groups {
		if len(g.Staff) > 0 {
			groups = append(groups, g)
		}
	}
	if len(groups) == 0 {
		return nil, shift.ErrEmptyUpload
	}

	// Resolve and validate every group before touching the database.
	groupWindows := make([][]shift.Window, 0, len(groups))
	seen := make(map[string]struct{})
	for _, g := range groups {
		windows, err := Expand(g, loc)
		if err != nil {
			return nil, err
		}
		if err := ValidateRange(windows, ev, loc); err != nil {
			return nil, err
		}
		for _, w := range windows {
			key := windowKey(w)
			if _, dup := seen[key]; dup {
				return nil, shift.ErrDuplicateWindow
			}
			seen[key] = struct{}{}
		}
		groupWindows = append(groupWindows, windows)
	}

	result := &roster.UploadResult{}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.shifts.ListWindows(txCtx, req.EventID)
		if err != nil {
			return err
		}
		byWindow := make(map[string]shift.Shift, len(existing))
		for _, sh := range existing {
			byWindow[windowKey(shift.Window{Start: sh.StartDate, End: sh.EndDate})] = sh
		}

		// Vendor and position names resolve once per upload, not once per row.
		vendorCache := make(map[string]vendor.Vendor)
		positionCache := make(map[string]position.Position)

		var rows []staff.Staff

		for i, g := range groups {
			resolved := roster.ResolvedGroup{}

			for _, w := range groupWindows[i] {
				key := windowKey(w)
				sh, ok := byWindow[key]
				if !ok {
					sh, err = s.shifts.Create(txCtx, shift.Shift{
						EventID:   req.EventID,
						Name:      AutoName(w.Start, loc),
						StartDate: w.Start,
						EndDate:   w.End,
					})
					if err != nil {
						return err
					}
					byWindow[key] = sh
					resolved.Created++
				}
				resolved.Shifts = append(resolved.Shifts, sh)
			}

			for _, row := range g.Staff {
				v, err := s.resolveVendor(txCtx, companyID, row.VendorName, vendorCache)
				if err != nil {
					return err
				}
				p, err := s.resolvePosition(txCtx, companyID, row.PositionName, positionCache)
				if err != nil {
					return err
				}

				for _, sh := range resolved.Shifts {
					for n := 0; n < row.Quantity; n++ {
						rows = append(rows, staff.Staff{
							EventID:    req.EventID,
							ShiftID:    sh.ID,
							VendorID:   v.ID,
							PositionID: p.ID,
							HourlyRate: row.HourlyRate,
							IsPriority: row.IsPriority,
						})
					}
				}
			}

			result.Groups = append(result.Groups, resolved)
		}

		if len(rows) > 0 {
			if err := s.staff.CreateBatch(txCtx, rows); err != nil {
				return err
			}
		}
		result.StaffCreated = len(rows)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AddOrRemove adjusts head count for a vendor/shift/position triple. Adds are
// tracked as manual for variance reporting. Removes only ever touch closed
// records and fail whole when fewer are eligible than requested, so a partial
// removal never happens silently.
func (s *RosterServiceImpl) AddOrRemove(ctx context.Context, companyID string, req roster.AddOrRemoveRequest) (*roster.AddOrRemoveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.events.GetByID(ctx, req.EventID, companyID); err != nil {
		return nil, err
	}
	if _, err := s.shifts.GetByID(ctx, req.ShiftID, req.EventID); err != nil {
		return nil, err
	}

	result := &roster.AddOrRemoveResult{}

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if req.Quantity > 0 {
			rows := make([]staff.Staff, 0, req.Quantity)
			for n := 0; n < req.Quantity; n++ {
				rows = append(rows, staff.Staff{
					EventID:       req.EventID,
					ShiftID:       req.ShiftID,
					VendorID:      req.VendorID,
					PositionID:    req.PositionID,
					HourlyRate:    req.HourlyRate,
					AddedManually: true,
				})
			}
			if err := s.staff.CreateBatch(txCtx, rows); err != nil {
				return err
			}
			result.Added = req.Quantity
			return nil
		}

		want := -req.Quantity

		available, err := s.staff.CountClosed(txCtx, req.VendorID, req.ShiftID, req.PositionID)
		if err != nil {
			return err
		}
		if available < want {
			return &staff.InsufficientRemovableError{Requested: want, Available: available}
		}

		victims, err := s.staff.ListClosed(txCtx, req.VendorID, req.ShiftID, req.PositionID, want)
		if err != nil {
			return err
		}
		ids := make([]string, len(victims))
		for i, v := range victims {
			ids[i] = v.ID
		}

		removed, err := s.staff.HardDeleteByIDs(txCtx, ids)
		if err != nil {
			return err
		}
		result.Removed = int(removed)

		deleted, err := s.shifts.DeleteIfEmpty(txCtx, req.ShiftID)
		if err != nil {
			return err
		}
		result.ShiftDeleted = deleted

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ClearVendorShift soft-deletes every live staff record the vendor holds on
// the shift. Soft, not hard: cleared rosters still show up as removals in the
// variance report.
func (s *RosterServiceImpl) ClearVendorShift(ctx context.Context, companyID string, eventID string, vendorID string, shiftID string) (int64, error) {
	if _, err := s.events.GetByID(ctx, eventID, companyID); err != nil {
		return 0, err
	}
	if _, err := s.shifts.GetByID(ctx, shiftID, eventID); err != nil {
		return 0, err
	}

	return s.staff.SoftDeleteByVendorShift(ctx, eventID, vendorID, shiftID)
}

func (s *RosterServiceImpl) ListShifts(ctx context.Context, companyID string, eventID string) ([]shift.ShiftResponse, error) {
	if _, err := s.events.GetByID(ctx, eventID, companyID); err != nil {
		return nil, err
	}

	shifts, err := s.shifts.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.NewShiftResponse(sh))
	}
	return responses, nil
}

func (s *RosterServiceImpl) resolveVendor(ctx context.Context, companyID, name string, cache map[string]vendor.Vendor) (vendor.Vendor, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if v, ok := cache[key]; ok {
		return v, nil
	}
	v, err := s.vendors.GetOrCreateByName(ctx, companyID, strings.TrimSpace(name))
	if err != nil {
		return vendor.Vendor{}, err
	}
	cache[key] = v
	return v, nil
}

func (s *RosterServiceImpl) resolvePosition(ctx context.Context, companyID, name string, cache map[string]position.Position) (position.Position, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := cache[key]; ok {
		return p, nil
	}
	p, err := s.positions.GetOrCreateByName(ctx, companyID, strings.TrimSpace(name))
	if err != nil {
		return position.Position{}, err
	}
	cache[key] = p
	return p, nil
}
