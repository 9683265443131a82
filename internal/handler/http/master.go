package http

import (
	"encoding/json"
	"net/http"

	"github.com/crewsync/crewsync-backend-go/internal/domain/master/position"
	"github.com/crewsync/crewsync-backend-go/internal/domain/master/vendor"
	"github.com/crewsync/crewsync-backend-go/internal/handler/http/response"
	"github.com/crewsync/crewsync-backend-go/internal/service/master"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	CreateVendor(w http.ResponseWriter, r *http.Request)
	GetVendor(w http.ResponseWriter, r *http.Request)
	ListVendors(w http.ResponseWriter, r *http.Request)
	UpdateVendor(w http.ResponseWriter, r *http.Request)
	DeleteVendor(w http.ResponseWriter, r *http.Request)

	CreatePosition(w http.ResponseWriter, r *http.Request)
	GetPosition(w http.ResponseWriter, r *http.Request)
	ListPositions(w http.ResponseWriter, r *http.Request)
	UpdatePosition(w http.ResponseWriter, r *http.Request)
	DeletePosition(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{masterService: masterService}
}

// ==================== VENDOR OPERATIONS ====================

// CreateVendor implements MasterHandler.
func (h *masterHandlerImpl) CreateVendor(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req vendor.CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateVendor(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Vendor created", result)
}

// GetVendor implements MasterHandler.
func (h *masterHandlerImpl) GetVendor(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.masterService.GetVendor(r.Context(), cid, chi.URLParam(r, "vendorID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListVendors implements MasterHandler.
func (h *masterHandlerImpl) ListVendors(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.masterService.ListVendors(r.Context(), cid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateVendor implements MasterHandler.
func (h *masterHandlerImpl) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req vendor.UpdateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "vendorID")
	req.CompanyID = cid

	if err := h.masterService.UpdateVendor(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vendor updated", nil)
}

// DeleteVendor implements MasterHandler.
func (h *masterHandlerImpl) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	if err := h.masterService.DeleteVendor(r.Context(), cid, chi.URLParam(r, "vendorID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vendor removed", nil)
}

// ==================== POSITION OPERATIONS ====================

// CreatePosition implements MasterHandler.
func (h *masterHandlerImpl) CreatePosition(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req position.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreatePosition(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position created", result)
}

// GetPosition implements MasterHandler.
func (h *masterHandlerImpl) GetPosition(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.masterService.GetPosition(r.Context(), cid, chi.URLParam(r, "positionID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPositions implements MasterHandler.
func (h *masterHandlerImpl) ListPositions(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.masterService.ListPositions(r.Context(), cid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdatePosition implements MasterHandler.
func (h *masterHandlerImpl) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req position.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "positionID")
	req.CompanyID = cid

	if err := h.masterService.UpdatePosition(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position updated", nil)
}

// DeletePosition implements MasterHandler.
func (h *masterHandlerImpl) DeletePosition(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	if err := h.masterService.DeletePosition(r.Context(), cid, chi.URLParam(r, "positionID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position removed", nil)
}
