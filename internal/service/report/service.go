package report

import (
	"context"
	"time"

	"github.com/crewsync/crewsync-backend-go/internal/domain/event"
	"github.com/crewsync/crewsync-backend-go/internal/domain/report"
	"github.com/crewsync/crewsync-backend-go/internal/domain/stats"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/tz"
)

type ReportServiceImpl struct {
	events   event.EventRepository
	stats    stats.StatsService
	renderer report.Renderer
	now      func() time.Time
}

func NewReportService(events event.EventRepository, statsService stats.StatsService, renderer report.Renderer) report.ReportService {
	return &ReportServiceImpl{
		events:   events,
		stats:    statsService,
		renderer: renderer,
		now:      time.Now,
	}
}

func (s *ReportServiceImpl) Generate(ctx context.Context, companyID string, req report.GenerateRequest) ([]byte, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	doc, err := s.BuildDocument(ctx, companyID, req)
	if err != nil {
		return nil, "", err
	}

	switch req.Format {
	case "csv":
		data, err := s.renderer.RenderCSV(ctx, *doc)
		return data, "text/csv", err
	case "pdf":
		data, err := s.renderer.RenderPDF(ctx, *doc)
		return data, "application/pdf", err
	default:
		return nil, "", report.ErrUnsupportedFormat
	}
}

// BuildDocument assembles the nested vendor/day structure the renderer
// consumes. Vendor summaries cover the whole event; each vendor additionally
// carries a section per venue-local day it had staff on.
func (s *ReportServiceImpl) BuildDocument(ctx context.Context, companyID string, req report.GenerateRequest) (*report.Document, error) {
	ev, err := s.events.GetByID(ctx, req.EventID, companyID)
	if err != nil {
		return nil, err
	}

	dates := req.Dates
	if len(dates) == 0 {
		dates = eventDays(ev)
	}

	overview, err := s.stats.Overview(ctx, companyID, stats.OverviewRequest{EventID: req.EventID})
	if err != nil {
		return nil, err
	}

	daily, err := s.stats.DailyBreakdown(ctx, companyID, stats.OverviewRequest{
		EventID: req.EventID,
		Dates:   dates,
	})
	if err != nil {
		return nil, err
	}

	doc := &report.Document{
		EventID:     ev.ID,
		EventName:   ev.Name,
		Timezone:    ev.Timezone,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Totals:      overview.Totals,
	}

	for _, v := range overview.Vendors {
		section := report.VendorSection{
			VendorID:   v.VendorID,
			VendorName: v.VendorName,
			Summary:    v.All,
		}

		for _, day := range daily.Days {
			for _, dv := range day.Vendors {
				if dv.VendorID != v.VendorID || dv.All.TotalCount == 0 {
					continue
				}
				section.Days = append(section.Days, report.DailySection{
					DateKey:   day.DateKey,
					Summary:   dv.All,
					Positions: dv.All.Positions,
				})
			}
		}

		doc.Vendors = append(doc.Vendors, section)
	}

	if req.IncludeVariance {
		variance, err := s.stats.Variance(ctx, companyID, req.EventID)
		if err != nil {
			return nil, err
		}
		doc.Variance = variance
	}

	return doc, nil
}

// eventDays lists every venue-local calendar day in the event's range.
func eventDays(ev event.Event) []string {
	loc := tz.Resolve(ev.Timezone)

	first := ev.StartDate.In(loc)
	first = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc)
	lastKey := tz.DateKey(ev.EndDate, loc)

	var days []string
	for d := first; ; d = d.AddDate(0, 0, 1) {
		key := d.Format(tz.DateKeyLayout)
		days = append(days, key)
		if key >= lastKey {
			break
		}
	}
	return days
}
