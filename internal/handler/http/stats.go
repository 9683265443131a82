package http

import (
	"net/http"
	"strings"

	"github.com/crewsync/crewsync-backend-go/internal/domain/stats"
	"github.com/crewsync/crewsync-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type StatsHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
	DailyBreakdown(w http.ResponseWriter, r *http.Request)
	Variance(w http.ResponseWriter, r *http.Request)
}

type statsHandlerImpl struct {
	statsService stats.StatsService
}

func NewStatsHandler(statsService stats.StatsService) StatsHandler {
	return &statsHandlerImpl{statsService: statsService}
}

// overviewRequest reads the shared query parameters: dates is a
// comma-separated list of venue-local YYYY-MM-DD keys.
func overviewRequest(r *http.Request) stats.OverviewRequest {
	q := r.URL.Query()

	req := stats.OverviewRequest{
		EventID:  chi.URLParam(r, "eventID"),
		VendorID: q.Get("vendor_id"),
		ShiftID:  q.Get("shift_id"),
	}
	if raw := q.Get("dates"); raw != "" {
		req.Dates = strings.Split(raw, ",")
	}
	return req
}

// Overview implements StatsHandler.
func (h *statsHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.statsService.Overview(r.Context(), cid, overviewRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DailyBreakdown implements StatsHandler.
func (h *statsHandlerImpl) DailyBreakdown(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.statsService.DailyBreakdown(r.Context(), cid, overviewRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Variance implements StatsHandler.
func (h *statsHandlerImpl) Variance(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.statsService.Variance(r.Context(), cid, chi.URLParam(r, "eventID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
