package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crewsync/crewsync-backend-go/internal/domain/staff"
	"github.com/crewsync/crewsync-backend-go/internal/handler/http/response"
	"github.com/crewsync/crewsync-backend-go/internal/service/broadcast"
	"github.com/go-chi/chi/v5"
)

type StaffHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	UndoCheckIn(w http.ResponseWriter, r *http.Request)
	UndoCheckOut(w http.ResponseWriter, r *http.Request)
	GenerateQR(w http.ResponseWriter, r *http.Request)
	ClaimQR(w http.ResponseWriter, r *http.Request)
	ToggleFlag(w http.ResponseWriter, r *http.Request)
	TogglePriority(w http.ResponseWriter, r *http.Request)
	BatchUpdate(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type staffHandlerImpl struct {
	staffService staff.StaffService
	broadcaster  *broadcast.Broadcaster
}

func NewStaffHandler(staffService staff.StaffService, broadcaster *broadcast.Broadcaster) StaffHandler {
	return &staffHandlerImpl{
		staffService: staffService,
		broadcaster:  broadcaster,
	}
}

// Create implements StaffHandler.
func (h *staffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req staff.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EventID = chi.URLParam(r, "eventID")

	result, err := h.staffService.Create(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.broadcaster.StaffUpdated(cid, req.EventID, result)
	response.Created(w, "Staff record created", result)
}

// List implements StaffHandler.
func (h *staffHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	q := r.URL.Query()
	filter := staff.ListFilter{
		EventID:     chi.URLParam(r, "eventID"),
		VendorID:    q.Get("vendor_id"),
		ShiftID:     q.Get("shift_id"),
		PositionID:  q.Get("position_id"),
		DateKey:     q.Get("date"),
		FlaggedOnly: q.Get("flagged") == "true",
		Deleted:     q.Get("deleted") == "true",
	}
	if v := q.Get("checked_in"); v != "" {
		checkedIn := v == "true"
		filter.CheckedIn = &checkedIn
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	result, err := h.staffService.List(r.Context(), cid, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Staff, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: result.TotalItems,
	})
}

// Get implements StaffHandler.
func (h *staffHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.staffService.Get(r.Context(), cid, chi.URLParam(r, "staffID"), chi.URLParam(r, "eventID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CheckIn implements StaffHandler.
func (h *staffHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.attendance(w, r, func(cid string, req staff.CheckInRequest) (*staff.StaffResponse, error) {
		return h.staffService.CheckIn(r.Context(), cid, req)
	}, "Checked in")
}

// CheckOut implements StaffHandler.
func (h *staffHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.attendance(w, r, func(cid string, req staff.CheckInRequest) (*staff.StaffResponse, error) {
		return h.staffService.CheckOut(r.Context(), cid, staff.CheckOutRequest(req))
	}, "Checked out")
}

// UndoCheckIn implements StaffHandler.
func (h *staffHandlerImpl) UndoCheckIn(w http.ResponseWriter, r *http.Request) {
	h.attendance(w, r, func(cid string, req staff.CheckInRequest) (*staff.StaffResponse, error) {
		return h.staffService.UndoCheckIn(r.Context(), cid, req)
	}, "Check-in undone")
}

// UndoCheckOut implements StaffHandler.
func (h *staffHandlerImpl) UndoCheckOut(w http.ResponseWriter, r *http.Request) {
	h.attendance(w, r, func(cid string, req staff.CheckInRequest) (*staff.StaffResponse, error) {
		return h.staffService.UndoCheckOut(r.Context(), cid, staff.CheckOutRequest(req))
	}, "Check-out undone")
}

// attendance factors the shared shape of the four attendance mutations: same
// URL params, same broadcast, different service call.
func (h *staffHandlerImpl) attendance(
	w http.ResponseWriter,
	r *http.Request,
	call func(cid string, req staff.CheckInRequest) (*staff.StaffResponse, error),
	message string,
) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	req := staff.CheckInRequest{
		StaffID: chi.URLParam(r, "staffID"),
		EventID: chi.URLParam(r, "eventID"),
	}

	result, err := call(cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.broadcaster.StaffUpdated(cid, req.EventID, result)
	response.SuccessWithMessage(w, message, result)
}

// GenerateQR implements StaffHandler.
func (h *staffHandlerImpl) GenerateQR(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	staffID := chi.URLParam(r, "staffID")
	png, err := h.staffService.GenerateQR(r.Context(), cid, staffID, chi.URLParam(r, "eventID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, "image/png", "badge-"+staffID+".png", png)
}

// ClaimQR implements StaffHandler.
func (h *staffHandlerImpl) ClaimQR(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req staff.ClaimQRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StaffID = chi.URLParam(r, "staffID")
	req.EventID = chi.URLParam(r, "eventID")

	result, err := h.staffService.ClaimQR(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.broadcaster.StaffUpdated(cid, req.EventID, result)
	response.SuccessWithMessage(w, "QR code claimed", result)
}

// ToggleFlag implements StaffHandler.
func (h *staffHandlerImpl) ToggleFlag(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req staff.ToggleFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StaffID = chi.URLParam(r, "staffID")
	req.EventID = chi.URLParam(r, "eventID")

	result, err := h.staffService.ToggleFlag(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.broadcaster.StaffUpdated(cid, req.EventID, result)
	response.Success(w, result)
}

// TogglePriority implements StaffHandler.
func (h *staffHandlerImpl) TogglePriority(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req staff.TogglePriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StaffID = chi.URLParam(r, "staffID")
	req.EventID = chi.URLParam(r, "eventID")

	result, err := h.staffService.TogglePriority(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.broadcaster.StaffUpdated(cid, req.EventID, result)
	response.Success(w, result)
}

// BatchUpdate implements StaffHandler.
func (h *staffHandlerImpl) BatchUpdate(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req staff.BatchUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EventID = chi.URLParam(r, "eventID")

	updated, err := h.staffService.BatchUpdate(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.broadcaster.StaffUpdated(cid, req.EventID, map[string]int64{"updated": updated})
	response.SuccessWithMessage(w, "Staff records updated", map[string]int64{"updated": updated})
}

// Delete implements StaffHandler.
func (h *staffHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	eventID := chi.URLParam(r, "eventID")
	staffID := chi.URLParam(r, "staffID")

	if err := h.staffService.Delete(r.Context(), cid, staffID, eventID); err != nil {
		response.HandleError(w, err)
		return
	}

	h.broadcaster.StaffUpdated(cid, eventID, map[string]string{"deleted": staffID})
	response.SuccessWithMessage(w, "Staff record removed", nil)
}
