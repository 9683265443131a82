package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewsync/crewsync-backend-go/internal/domain/event"
	"github.com/crewsync/crewsync-backend-go/internal/domain/roster"
	"github.com/crewsync/crewsync-backend-go/internal/domain/shift"
	"github.com/crewsync/crewsync-backend-go/internal/domain/staff"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/validator"
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

func testEvent() event.Event {
	return event.Event{
		ID:        "evt-1",
		CompanyID: "co-1",
		Name:      "Summer Festival",
		StartDate: ts("2024-02-23T00:00:00Z"),
		EndDate:   ts("2024-02-25T00:00:00Z"),
		Timezone:  "UTC",
	}
}

func TestRosterService_Upload_RejectsInvalidRequest(t *testing.T) {
	// Setup
	svc := NewRosterService(nil, &fakeEventRepo{event: testEvent()}, nil, nil, nil, nil)

	// Act
	_, err := svc.Upload(context.Background(), "co-1", roster.UploadRequest{EventID: "evt-1"})

	// Assert
	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestRosterService_Upload_RejectsDuplicateWindow(t *testing.T) {
	// Setup
	svc := NewRosterService(nil, &fakeEventRepo{event: testEvent()}, nil, nil, nil, nil)

	g := roster.ShiftGroup{
		StartDate: ts("2024-02-23T09:00:00Z"),
		EndDate:   ts("2024-02-23T17:00:00Z"),
		Staff:     []roster.StaffRow{{VendorName: "Acme", PositionName: "Server", Quantity: 1}},
	}
	req := roster.UploadRequest{EventID: "evt-1", Groups: []roster.ShiftGroup{g, g}}

	// Act
	_, err := svc.Upload(context.Background(), "co-1", req)

	// Assert
	assert.ErrorIs(t, err, shift.ErrDuplicateWindow)
}

func TestRosterService_Upload_RecurrenceCollidingWithTemplateIsDuplicate(t *testing.T) {
	// Setup
	svc := NewRosterService(nil, &fakeEventRepo{event: testEvent()}, nil, nil, nil, nil)

	req := roster.UploadRequest{
		EventID: "evt-1",
		Groups: []roster.ShiftGroup{{
			StartDate: ts("2024-02-23T09:00:00Z"),
			EndDate:   ts("2024-02-23T17:00:00Z"),
			Recursive: []string{"2024-02-23"},
			Staff:     []roster.StaffRow{{VendorName: "Acme", PositionName: "Server", Quantity: 1}},
		}},
	}

	// Act
	_, err := svc.Upload(context.Background(), "co-1", req)

	// Assert
	assert.ErrorIs(t, err, shift.ErrDuplicateWindow)
}

func TestRosterService_Upload_RejectsWindowOutsideEvent(t *testing.T) {
	// Setup
	svc := NewRosterService(nil, &fakeEventRepo{event: testEvent()}, nil, nil, nil, nil)

	req := roster.UploadRequest{
		EventID: "evt-1",
		Groups: []roster.ShiftGroup{{
			StartDate: ts("2024-03-01T09:00:00Z"),
			EndDate:   ts("2024-03-01T17:00:00Z"),
			Staff:     []roster.StaffRow{{VendorName: "Acme", PositionName: "Server", Quantity: 1}},
		}},
	}

	// Act
	_, err := svc.Upload(context.Background(), "co-1", req)

	// Assert
	assert.ErrorIs(t, err, shift.ErrOutsideEventRange)
}

// Groups whose staff lists are all empty resolve to nothing; the upload must
// fail whole instead of creating staff-less shifts.
func TestRosterService_Upload_AllEmptyStaffListsFails(t *testing.T) {
	// Setup
	svc := NewRosterService(nil, &fakeEventRepo{event: testEvent()}, nil, nil, nil, nil)

	req := roster.UploadRequest{
		EventID: "evt-1",
		Groups: []roster.ShiftGroup{
			{
				StartDate: ts("2024-02-23T09:00:00Z"),
				EndDate:   ts("2024-02-23T17:00:00Z"),
			},
			{
				StartDate: ts("2024-02-24T09:00:00Z"),
				EndDate:   ts("2024-02-24T17:00:00Z"),
				Staff:     []roster.StaffRow{},
			},
		},
	}

	// Act
	_, err := svc.Upload(context.Background(), "co-1", req)

	// Assert
	assert.ErrorIs(t, err, shift.ErrEmptyUpload)
}

func TestRosterService_Upload_PropagatesEventNotFound(t *testing.T) {
	// Setup
	svc := NewRosterService(nil, &fakeEventRepo{err: event.ErrEventNotFound}, nil, nil, nil, nil)

	req := roster.UploadRequest{
		EventID: "evt-missing",
		Groups: []roster.ShiftGroup{{
			StartDate: ts("2024-02-23T09:00:00Z"),
			EndDate:   ts("2024-02-23T17:00:00Z"),
		}},
	}

	// Act
	_, err := svc.Upload(context.Background(), "co-1", req)

	// Assert
	assert.ErrorIs(t, err, event.ErrEventNotFound)
}

func TestRosterService_AddOrRemove_RejectsZeroQuantity(t *testing.T) {
	// Setup
	svc := NewRosterService(nil, &fakeEventRepo{event: testEvent()}, nil, nil, nil, nil)

	req := roster.AddOrRemoveRequest{
		EventID:    "evt-1",
		VendorID:   "v-1",
		ShiftID:    "sh-1",
		PositionID: "p-1",
		Quantity:   0,
	}

	// Act
	_, err := svc.AddOrRemove(context.Background(), "co-1", req)

	// Assert
	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestRosterService_AddOrRemove_RejectsNegativeRateOnAdd(t *testing.T) {
	// Setup
	svc := NewRosterService(nil, &fakeEventRepo{event: testEvent()}, nil, nil, nil, nil)

	req := roster.AddOrRemoveRequest{
		EventID:    "evt-1",
		VendorID:   "v-1",
		ShiftID:    "sh-1",
		PositionID: "p-1",
		Quantity:   2,
		HourlyRate: -10,
	}

	// Act
	_, err := svc.AddOrRemove(context.Background(), "co-1", req)

	// Assert
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestInsufficientRemovableError_Message(t *testing.T) {
	err := &staff.InsufficientRemovableError{Requested: 3, Available: 2}
	assert.Equal(t, "cannot remove 3 staff: only 2 available", err.Error())
}

func TestUploadRequest_Validate_NegativeQuantity(t *testing.T) {
	req := roster.UploadRequest{
		EventID: "evt-1",
		Groups: []roster.ShiftGroup{{
			StartDate: ts("2024-02-23T09:00:00Z"),
			EndDate:   ts("2024-02-23T17:00:00Z"),
			Staff:     []roster.StaffRow{{VendorName: "Acme", PositionName: "Server", Quantity: -1}},
		}},
	}

	err := req.Validate()

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "quantity", verrs[0].Field)
}
