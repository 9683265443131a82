package http

import (
	"encoding/json"
	"net/http"

	"github.com/crewsync/crewsync-backend-go/internal/domain/roster"
	"github.com/crewsync/crewsync-backend-go/internal/handler/http/response"
	"github.com/crewsync/crewsync-backend-go/internal/service/broadcast"
	"github.com/go-chi/chi/v5"
)

type RosterHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	AddOrRemove(w http.ResponseWriter, r *http.Request)
	ClearVendorShift(w http.ResponseWriter, r *http.Request)
	ListShifts(w http.ResponseWriter, r *http.Request)
}

type rosterHandlerImpl struct {
	rosterService roster.RosterService
	broadcaster   *broadcast.Broadcaster
}

func NewRosterHandler(rosterService roster.RosterService, broadcaster *broadcast.Broadcaster) RosterHandler {
	return &rosterHandlerImpl{
		rosterService: rosterService,
		broadcaster:   broadcaster,
	}
}

// Upload implements RosterHandler.
func (h *rosterHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req roster.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EventID = chi.URLParam(r, "eventID")

	result, err := h.rosterService.Upload(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.broadcaster.StaffUpdated(cid, req.EventID, result)
	response.Created(w, "Roster uploaded", result)
}

// AddOrRemove implements RosterHandler.
func (h *rosterHandlerImpl) AddOrRemove(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req roster.AddOrRemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EventID = chi.URLParam(r, "eventID")

	result, err := h.rosterService.AddOrRemove(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.broadcaster.StaffUpdated(cid, req.EventID, result)
	response.SuccessWithMessage(w, "Head count adjusted", result)
}

// ClearVendorShift implements RosterHandler.
func (h *rosterHandlerImpl) ClearVendorShift(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	eventID := chi.URLParam(r, "eventID")
	vendorID := chi.URLParam(r, "vendorID")
	shiftID := chi.URLParam(r, "shiftID")

	removed, err := h.rosterService.ClearVendorShift(r.Context(), cid, eventID, vendorID, shiftID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.broadcaster.RosterCleared(cid, eventID, map[string]interface{}{
		"vendor_id": vendorID,
		"shift_id":  shiftID,
		"removed":   removed,
	})
	response.SuccessWithMessage(w, "Roster cleared", map[string]int64{"removed": removed})
}

// ListShifts implements RosterHandler.
func (h *rosterHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	shifts, err := h.rosterService.ListShifts(r.Context(), cid, chi.URLParam(r, "eventID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}
