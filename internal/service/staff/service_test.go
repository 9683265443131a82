package staff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewsync/crewsync-backend-go/internal/domain/event"
	"github.com/crewsync/crewsync-backend-go/internal/domain/staff"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

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

// fakeStaffRepo holds a single record and tracks attendance writes.
type fakeStaffRepo struct {
	staff.StaffRepository

	record staff.Staff
	getErr error

	checkedInAt   *time.Time
	checkedOutAt  *time.Time
	clearedIn     bool
	clearedOut    bool
	softDeleted   bool
	flagged       *bool
	priority      *bool
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string, eventID string) (staff.Staff, error) {
	if f.getErr != nil {
		return staff.Staff{}, f.getErr
	}
	return f.record, nil
}

func (f *fakeStaffRepo) SetCheckIn(ctx context.Context, id string, at time.Time) error {
	f.checkedInAt = &at
	f.record.CheckedInAt = &at
	return nil
}

func (f *fakeStaffRepo) SetCheckOut(ctx context.Context, id string, at time.Time) error {
	f.checkedOutAt = &at
	f.record.CheckedOutAt = &at
	return nil
}

func (f *fakeStaffRepo) ClearCheckIn(ctx context.Context, id string) error {
	f.clearedIn = true
	f.record.CheckedInAt = nil
	return nil
}

func (f *fakeStaffRepo) ClearCheckOut(ctx context.Context, id string) error {
	f.clearedOut = true
	f.record.CheckedOutAt = nil
	return nil
}

func (f *fakeStaffRepo) SetFlagged(ctx context.Context, id string, flagged bool) error {
	f.flagged = &flagged
	f.record.IsFlagged = flagged
	return nil
}

func (f *fakeStaffRepo) SetPriority(ctx context.Context, id string, priority bool) error {
	f.priority = &priority
	f.record.IsPriority = priority
	return nil
}

func (f *fakeStaffRepo) SoftDelete(ctx context.Context, id string) error {
	f.softDeleted = true
	return nil
}

func newTestService(repo *fakeStaffRepo, now time.Time) *StaffServiceImpl {
	return &StaffServiceImpl{
		events: &fakeEventRepo{event: event.Event{ID: "evt-1", CompanyID: "co-1", Timezone: "UTC"}},
		repo:   repo,
		now:    func() time.Time { return now },
	}
}

func TestStaffService_CheckIn_RecordsTimestamp(t *testing.T) {
	// Setup
	now := ts("2024-02-23T10:00:00Z")
	repo := &fakeStaffRepo{record: staff.Staff{ID: "st-1", EventID: "evt-1"}}
	svc := newTestService(repo, now)

	// Act
	resp, err := svc.CheckIn(context.Background(), "co-1", staff.CheckInRequest{StaffID: "st-1", EventID: "evt-1"})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, repo.checkedInAt)
	assert.Equal(t, now, *repo.checkedInAt)
	require.NotNil(t, resp.CheckedInAt)
}

func TestStaffService_CheckIn_AlreadyCheckedIn(t *testing.T) {
	// Setup
	repo := &fakeStaffRepo{record: staff.Staff{
		ID:          "st-1",
		EventID:     "evt-1",
		CheckedInAt: tsp("2024-02-23T09:00:00Z"),
	}}
	svc := newTestService(repo, ts("2024-02-23T10:00:00Z"))

	// Act
	_, err := svc.CheckIn(context.Background(), "co-1", staff.CheckInRequest{StaffID: "st-1", EventID: "evt-1"})

	// Assert
	assert.ErrorIs(t, err, staff.ErrAlreadyCheckedIn)
	assert.Nil(t, repo.checkedInAt)
}

func TestStaffService_CheckOut_RequiresCheckIn(t *testing.T) {
	// Setup
	repo := &fakeStaffRepo{record: staff.Staff{ID: "st-1", EventID: "evt-1"}}
	svc := newTestService(repo, ts("2024-02-23T18:00:00Z"))

	// Act
	_, err := svc.CheckOut(context.Background(), "co-1", staff.CheckOutRequest{StaffID: "st-1", EventID: "evt-1"})

	// Assert
	assert.ErrorIs(t, err, staff.ErrNotCheckedIn)
}

func TestStaffService_CheckOut_AlreadyCheckedOut(t *testing.T) {
	// Setup
	repo := &fakeStaffRepo{record: staff.Staff{
		ID:           "st-1",
		EventID:      "evt-1",
		CheckedInAt:  tsp("2024-02-23T09:00:00Z"),
		CheckedOutAt: tsp("2024-02-23T17:00:00Z"),
	}}
	svc := newTestService(repo, ts("2024-02-23T18:00:00Z"))

	// Act
	_, err := svc.CheckOut(context.Background(), "co-1", staff.CheckOutRequest{StaffID: "st-1", EventID: "evt-1"})

	// Assert
	assert.ErrorIs(t, err, staff.ErrAlreadyCheckedOut)
}

func TestStaffService_CheckOut_RefusesClockBeforeCheckIn(t *testing.T) {
	// Setup
	repo := &fakeStaffRepo{record: staff.Staff{
		ID:          "st-1",
		EventID:     "evt-1",
		CheckedInAt: tsp("2024-02-23T09:00:00Z"),
	}}
	svc := newTestService(repo, ts("2024-02-23T08:00:00Z"))

	// Act
	_, err := svc.CheckOut(context.Background(), "co-1", staff.CheckOutRequest{StaffID: "st-1", EventID: "evt-1"})

	// Assert
	assert.ErrorIs(t, err, staff.ErrCheckOutBeforeIn)
	assert.Nil(t, repo.checkedOutAt)
}

func TestStaffService_CheckOut_CompletesSession(t *testing.T) {
	// Setup
	repo := &fakeStaffRepo{record: staff.Staff{
		ID:          "st-1",
		EventID:     "evt-1",
		CheckedInAt: tsp("2024-02-23T09:00:00Z"),
	}}
	svc := newTestService(repo, ts("2024-02-23T17:30:00Z"))

	// Act
	resp, err := svc.CheckOut(context.Background(), "co-1", staff.CheckOutRequest{StaffID: "st-1", EventID: "evt-1"})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, repo.checkedOutAt)
	assert.Equal(t, ts("2024-02-23T17:30:00Z"), *repo.checkedOutAt)
	require.NotNil(t, resp.CheckedOutAt)
}

func TestStaffService_UndoCheckIn_RefusedAfterCheckOut(t *testing.T) {
	// Setup
	repo := &fakeStaffRepo{record: staff.Staff{
		ID:           "st-1",
		EventID:      "evt-1",
		CheckedInAt:  tsp("2024-02-23T09:00:00Z"),
		CheckedOutAt: tsp("2024-02-23T17:00:00Z"),
	}}
	svc := newTestService(repo, ts("2024-02-23T18:00:00Z"))

	// Act
	_, err := svc.UndoCheckIn(context.Background(), "co-1", staff.CheckInRequest{StaffID: "st-1", EventID: "evt-1"})

	// Assert
	assert.ErrorIs(t, err, staff.ErrAlreadyCheckedOut)
	assert.False(t, repo.clearedIn)
}

func TestStaffService_UndoCheckIn_ClearsTimestamp(t *testing.T) {
	// Setup
	repo := &fakeStaffRepo{record: staff.Staff{
		ID:          "st-1",
		EventID:     "evt-1",
		CheckedInAt: tsp("2024-02-23T09:00:00Z"),
	}}
	svc := newTestService(repo, ts("2024-02-23T10:00:00Z"))

	// Act
	resp, err := svc.UndoCheckIn(context.Background(), "co-1", staff.CheckInRequest{StaffID: "st-1", EventID: "evt-1"})

	// Assert
	require.NoError(t, err)
	assert.True(t, repo.clearedIn)
	assert.Nil(t, resp.CheckedInAt)
}

func TestStaffService_UndoCheckOut_RequiresCheckOut(t *testing.T) {
	// Setup
	repo := &fakeStaffRepo{record: staff.Staff{
		ID:          "st-1",
		EventID:     "evt-1",
		CheckedInAt: tsp("2024-02-23T09:00:00Z"),
	}}
	svc := newTestService(repo, ts("2024-02-23T10:00:00Z"))

	// Act
	_, err := svc.UndoCheckOut(context.Background(), "co-1", staff.CheckOutRequest{StaffID: "st-1", EventID: "evt-1"})

	// Assert
	assert.ErrorIs(t, err, staff.ErrNotCheckedOut)
}

func TestStaffService_UndoCheckOut_ReopensSession(t *testing.T) {
	// Setup
	repo := &fakeStaffRepo{record: staff.Staff{
		ID:           "st-1",
		EventID:      "evt-1",
		CheckedInAt:  tsp("2024-02-23T09:00:00Z"),
		CheckedOutAt: tsp("2024-02-23T17:00:00Z"),
	}}
	svc := newTestService(repo, ts("2024-02-23T18:00:00Z"))

	// Act
	resp, err := svc.UndoCheckOut(context.Background(), "co-1", staff.CheckOutRequest{StaffID: "st-1", EventID: "evt-1"})

	// Assert
	require.NoError(t, err)
	assert.True(t, repo.clearedOut)
	assert.Nil(t, resp.CheckedOutAt)
	require.NotNil(t, resp.CheckedInAt)
}

func TestStaffService_Delete_RefusesWhileCheckedIn(t *testing.T) {
	// Setup
	repo := &fakeStaffRepo{record: staff.Staff{
		ID:          "st-1",
		EventID:     "evt-1",
		CheckedInAt: tsp("2024-02-23T09:00:00Z"),
	}}
	svc := newTestService(repo, ts("2024-02-23T10:00:00Z"))

	// Act
	err := svc.Delete(context.Background(), "co-1", "st-1", "evt-1")

	// Assert
	assert.ErrorIs(t, err, staff.ErrStaffCheckedIn)
	assert.False(t, repo.softDeleted)
}

func TestStaffService_Delete_AllowsClosedRecord(t *testing.T) {
	// Setup
	repo := &fakeStaffRepo{record: staff.Staff{
		ID:           "st-1",
		EventID:      "evt-1",
		CheckedInAt:  tsp("2024-02-23T09:00:00Z"),
		CheckedOutAt: tsp("2024-02-23T17:00:00Z"),
	}}
	svc := newTestService(repo, ts("2024-02-23T18:00:00Z"))

	// Act
	err := svc.Delete(context.Background(), "co-1", "st-1", "evt-1")

	// Assert
	require.NoError(t, err)
	assert.True(t, repo.softDeleted)
}

func TestStaffService_Get_PropagatesMissingEvent(t *testing.T) {
	// Setup
	svc := &StaffServiceImpl{
		events: &fakeEventRepo{err: event.ErrEventNotFound},
		repo:   &fakeStaffRepo{},
		now:    time.Now,
	}

	// Act
	_, err := svc.Get(context.Background(), "co-1", "st-1", "evt-1")

	// Assert
	assert.ErrorIs(t, err, event.ErrEventNotFound)
}

func TestStaffService_ToggleFlag(t *testing.T) {
	// Setup
	repo := &fakeStaffRepo{record: staff.Staff{ID: "st-1", EventID: "evt-1"}}
	svc := newTestService(repo, ts("2024-02-23T10:00:00Z"))

	// Act
	resp, err := svc.ToggleFlag(context.Background(), "co-1", staff.ToggleFlagRequest{
		StaffID: "st-1",
		EventID: "evt-1",
		Flagged: true,
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, repo.flagged)
	assert.True(t, *repo.flagged)
	assert.True(t, resp.IsFlagged)
}
