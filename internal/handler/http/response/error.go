package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/crewsync/crewsync-backend-go/internal/domain/event"
	"github.com/crewsync/crewsync-backend-go/internal/domain/master/position"
	"github.com/crewsync/crewsync-backend-go/internal/domain/master/vendor"
	"github.com/crewsync/crewsync-backend-go/internal/domain/report"
	"github.com/crewsync/crewsync-backend-go/internal/domain/shift"
	"github.com/crewsync/crewsync-backend-go/internal/domain/staff"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Bulk removal short of eligible records carries the counts in details.
	var insufficient *staff.InsufficientRemovableError
	if errors.As(err, &insufficient) {
		writeJSON(w, http.StatusConflict, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "INSUFFICIENT_REMOVABLE",
				Message: insufficient.Error(),
				Details: map[string]string{
					"requested": strconv.Itoa(insufficient.Requested),
					"available": strconv.Itoa(insufficient.Available),
				},
			},
		})
		return
	}

	switch {
	// Not found
	case errors.Is(err, event.ErrEventNotFound):
		NotFound(w, "Event not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff record not found")
	case errors.Is(err, vendor.ErrVendorNotFound):
		NotFound(w, "Vendor not found")
	case errors.Is(err, position.ErrPositionNotFound):
		NotFound(w, "Position not found")

	// Attendance state conflicts
	case errors.Is(err, staff.ErrAlreadyCheckedIn):
		Conflict(w, "Staff member has already checked in")
	case errors.Is(err, staff.ErrNotCheckedIn):
		Conflict(w, "Staff member has not checked in yet")
	case errors.Is(err, staff.ErrAlreadyCheckedOut):
		Conflict(w, "Staff member has already checked out")
	case errors.Is(err, staff.ErrNotCheckedOut):
		Conflict(w, "Staff member has not checked out yet")
	case errors.Is(err, staff.ErrCheckOutBeforeIn):
		Conflict(w, "Check-out cannot precede check-in")
	case errors.Is(err, staff.ErrQRCodeClaimed):
		Conflict(w, "QR code already claimed within this shift")
	case errors.Is(err, staff.ErrStaffCheckedIn):
		Conflict(w, "Cannot delete a staff member who is currently checked in")

	// Roster and shift conflicts
	case errors.Is(err, shift.ErrOutsideEventRange):
		BadRequest(w, "Shift date falls outside the event's operational range", nil)
	case errors.Is(err, shift.ErrDuplicateWindow):
		Conflict(w, "Duplicate shift time windows in one upload")
	case errors.Is(err, shift.ErrInvalidWindow):
		BadRequest(w, "Shift end must be after shift start", nil)
	case errors.Is(err, shift.ErrEmptyUpload):
		BadRequest(w, "Upload resolved to zero shifts", nil)

	// Master data conflicts
	case errors.Is(err, vendor.ErrVendorNameExists):
		Conflict(w, "Vendor with this name already exists")
	case errors.Is(err, position.ErrPositionNameExists):
		Conflict(w, "Position with this name already exists")
	case errors.Is(err, position.ErrGlobalReadOnly):
		Forbidden(w, "Global positions cannot be modified")
	case errors.Is(err, position.ErrUnauthorizedAccess), errors.Is(err, vendor.ErrUnauthorizedAccess):
		Forbidden(w, "Not allowed to access this resource")
	case errors.Is(err, staff.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this staff record")

	// External collaborators
	case errors.Is(err, report.ErrRendererUnavailable):
		BadGateway(w, "Report rendering service unavailable")
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported report format", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
