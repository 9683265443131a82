package staff

import (
	"errors"
	"fmt"
)

// Staff domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("staff member has already checked in")
	ErrNotCheckedIn      = errors.New("staff member has not checked in yet")
	ErrAlreadyCheckedOut = errors.New("staff member has already checked out")
	ErrNotCheckedOut     = errors.New("staff member has not checked out yet")
	ErrQRCodeClaimed     = errors.New("qr code already claimed within this shift")

	// Mutation errors
	ErrStaffNotFound    = errors.New("staff record not found")
	ErrStaffCheckedIn   = errors.New("cannot delete a staff member who is currently checked in")
	ErrUnauthorized     = errors.New("unauthorized to access this staff record")
	ErrInvalidQuantity  = errors.New("quantity must be a non-zero integer")
	ErrCheckOutBeforeIn = errors.New("check-out cannot precede check-in")
	ErrNothingToUpdate  = errors.New("batch update carries no changes")
	ErrEmptyBatch       = errors.New("batch update carries no staff ids")
)

// InsufficientRemovableError reports a bulk removal that asked for more
// closed records than the vendor/shift/position triple holds. The whole
// operation is rejected; Available tells the caller how many it could ask for.
type InsufficientRemovableError struct {
	Requested int
	Available int
}

func (e *InsufficientRemovableError) Error() string {
	return fmt.Sprintf("cannot remove %d staff: only %d available", e.Requested, e.Available)
}
