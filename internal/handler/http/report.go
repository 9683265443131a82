package http

import (
	"encoding/json"
	"net/http"

	"github.com/crewsync/crewsync-backend-go/internal/domain/report"
	"github.com/crewsync/crewsync-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Generate implements ReportHandler.
func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req report.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EventID = chi.URLParam(r, "eventID")

	data, contentType, err := h.reportService.Generate(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, contentType, "labor-report-"+req.EventID+"."+req.Format, data)
}

// Preview returns the document structure without rendering, for clients that
// lay out their own view.
func (h *reportHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req report.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EventID = chi.URLParam(r, "eventID")
	if req.Format == "" {
		req.Format = "csv" // format is irrelevant for a preview
	}

	doc, err := h.reportService.BuildDocument(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, doc)
}
