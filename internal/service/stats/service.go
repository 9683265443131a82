package stats

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crewsync/crewsync-backend-go/internal/domain/event"
	"github.com/crewsync/crewsync-backend-go/internal/domain/stats"
	"github.com/crewsync/crewsync-backend-go/internal/pkg/tz"
)

type StatsServiceImpl struct {
	repo   stats.StatsRepository
	events event.EventRepository
	now    func() time.Time
}

func NewStatsService(repo stats.StatsRepository, events event.EventRepository) stats.StatsService {
	return &StatsServiceImpl{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

// Overview returns the merged vendor tree for an event. With no dates it
// covers the whole event; with dates it evaluates each venue-local day as its
// own bucket and folds them together additively so percentages come out of
// the summed counts, not averaged bucket percentages.
func (s *StatsServiceImpl) Overview(ctx context.Context, companyID string, req stats.OverviewRequest) (*stats.OverviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	loc, err := s.eventLocation(ctx, req.EventID, companyID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()

	if len(req.Dates) == 0 {
		vendors, err := s.collect(ctx, s.scopedQuery(req, now, nil, nil))
		if err != nil {
			return nil, err
		}
		return &stats.OverviewResponse{
			EventID: req.EventID,
			Vendors: vendors,
			Totals:  TotalsOf(vendors),
		}, nil
	}

	var merged []stats.VendorReport
	for _, key := range req.Dates {
		from, to, err := tz.DayBounds(key, loc)
		if err != nil {
			return nil, err
		}
		vendors, err := s.collect(ctx, s.scopedQuery(req, now, &from, &to))
		if err != nil {
			return nil, err
		}
		merged = CombineReports(merged, vendors)
	}

	return &stats.OverviewResponse{
		EventID: req.EventID,
		Dates:   req.Dates,
		Vendors: merged,
		Totals:  TotalsOf(merged),
	}, nil
}

// DailyBreakdown evaluates each requested venue-local day independently and
// returns the per-day trees without folding them.
func (s *StatsServiceImpl) DailyBreakdown(ctx context.Context, companyID string, req stats.OverviewRequest) (*stats.DailyBreakdownResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	loc, err := s.eventLocation(ctx, req.EventID, companyID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()

	days := make([]stats.DailyBucket, 0, len(req.Dates))
	for _, key := range req.Dates {
		from, to, err := tz.DayBounds(key, loc)
		if err != nil {
			return nil, err
		}
		vendors, err := s.collect(ctx, s.scopedQuery(req, now, &from, &to))
		if err != nil {
			return nil, err
		}
		days = append(days, stats.DailyBucket{
			DateKey: key,
			Vendors: vendors,
			Totals:  TotalsOf(vendors),
		})
	}

	return &stats.DailyBreakdownResponse{
		EventID: req.EventID,
		Days:    days,
	}, nil
}

func (s *StatsServiceImpl) Variance(ctx context.Context, companyID string, eventID string) (*stats.VarianceReport, error) {
	if _, err := s.events.GetByID(ctx, eventID, companyID); err != nil {
		return nil, err
	}

	report, err := s.repo.Variance(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// collect runs the three aggregate sources in parallel and merges them. All
// three share the same query, so they price open check-ins against the same
// now anchor.
func (s *StatsServiceImpl) collect(ctx context.Context, q stats.Query) ([]stats.VendorReport, error) {
	var (
		positionRows []stats.PositionCountRow
		shiftRows    []stats.ShiftTotalsRow
		vendorRows   []stats.VendorTotalsRow
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		positionRows, err = s.repo.PositionCounts(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		shiftRows, err = s.repo.ShiftTotals(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		vendorRows, err = s.repo.VendorTotals(gctx, q)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Merge(positionRows, shiftRows, vendorRows), nil
}

func (s *StatsServiceImpl) scopedQuery(req stats.OverviewRequest, now time.Time, from, to *time.Time) stats.Query {
	return stats.Query{
		EventID:  req.EventID,
		VendorID: req.VendorID,
		ShiftID:  req.ShiftID,
		From:     from,
		To:       to,
		Now:      now,
	}
}

func (s *StatsServiceImpl) eventLocation(ctx context.Context, eventID, companyID string) (*time.Location, error) {
	name, err := s.events.GetTimezone(ctx, eventID, companyID)
	if err != nil {
		return nil, err
	}
	return tz.Resolve(name), nil
}
