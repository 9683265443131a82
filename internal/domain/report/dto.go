package report

import (
	"github.com/crewsync/crewsync-backend-go/internal/domain/stats"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/validator"
)

// ========================================
// LABOR REPORT DOCUMENT
// ========================================

// Document is the pre-formatted nested structure handed to the external
// rendering service. This system's responsibility ends here; CSV/PDF layout
// belongs to the renderer.
type Document struct {
	EventID     string                `json:"event_id"`
	EventName   string                `json:"event_name"`
	Timezone    string                `json:"timezone"`
	GeneratedAt string                `json:"generated_at"`
	Vendors     []VendorSection       `json:"vendors"`
	Totals      stats.VendorSummary   `json:"totals"`
	Variance    *stats.VarianceReport `json:"variance,omitempty"`
}

type VendorSection struct {
	VendorID   string              `json:"vendor_id"`
	VendorName string              `json:"vendor_name"`
	Summary    stats.VendorSummary `json:"summary"`
	Days       []DailySection      `json:"days"`
}

// DailySection is one venue-local calendar day of a vendor's activity.
type DailySection struct {
	DateKey   string                    `json:"date"`
	Summary   stats.VendorSummary       `json:"summary"`
	Positions []stats.PositionBreakdown `json:"positions"`
}

type GenerateRequest struct {
	EventID         string   `json:"event_id"`
	Dates           []string `json:"dates"`
	Format          string   `json:"format"` // "csv" or "pdf"
	IncludeVariance bool     `json:"include_variance"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EventID) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_id",
			Message: "event_id is required",
		})
	}

	if r.Format != "csv" && r.Format != "pdf" {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be csv or pdf",
		})
	}

	for _, d := range r.Dates {
		if _, ok := validator.IsValidDate(d); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dates",
				Message: "dates must be YYYY-MM-DD",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
