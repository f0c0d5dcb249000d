package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/dtos"
	internal_utils "github.com/insightventures/backoffice/backend/services/backoffice-service/internal/utils"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/insightventures/backoffice/backend/shared/go-repositories"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

type FinancialsService struct {
	leaseRepo    repositories.LeaseRepository
	propertyRepo repositories.PropertyRepository
}

func NewFinancialsService(
	leaseRepo repositories.LeaseRepository,
	propertyRepo repositories.PropertyRepository,
) *FinancialsService {
	return &FinancialsService{leaseRepo: leaseRepo, propertyRepo: propertyRepo}
}

// CandlestickFilter narrows the leases considered. Empty fields match all.
type CandlestickFilter struct {
	PropertyIDs []uuid.UUID
	TenantID    *uuid.UUID
}

func (f CandlestickFilter) matches(l *models.Lease) bool {
	if f.TenantID != nil && l.TenantID != *f.TenantID {
		return false
	}
	if len(f.PropertyIDs) == 0 {
		return true
	}
	for _, id := range f.PropertyIDs {
		if l.PropertyID == id {
			return true
		}
	}
	return false
}

func (s *FinancialsService) CandlestickData(ctx context.Context, filter CandlestickFilter) ([]dtos.CandlestickSeries, error) {
	var (
		leases     []*models.Lease
		properties []*models.Property
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		leases, err = s.leaseRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		properties, err = s.propertyRepo.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := leases[:0]
	for _, l := range leases {
		if filter.matches(l) {
			filtered = append(filtered, l)
		}
	}
	return BuildCandlestickSeries(filtered, properties), nil
}

// monthsBetween lists "YYYY-MM" for every calendar month from start's month to
// end's month inclusive.
func monthsBetween(start, end time.Time) ([]string, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, internal_utils.ErrInvalidChargeRange
	}
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	var out []string
	for !cur.After(last) {
		out = append(out, cur.Format("2006-01"))
		cur = cur.AddDate(0, 1, 0)
	}
	return out, nil
}

// BuildCandlestickSeries spreads every rent and CAM charge over the months it
// covers and reduces each property-month to open/high/low/close. High and low
// are clamped against zero. Series keep the order properties first appear in
// leases; points are sorted by month.
func BuildCandlestickSeries(leases []*models.Lease, properties []*models.Property) []dtos.CandlestickSeries {
	names := make(map[uuid.UUID]string, len(properties))
	for _, p := range properties {
		names[p.ID] = p.DisplayName()
	}

	var order []uuid.UUID
	byProperty := make(map[uuid.UUID]map[string][]float64)

	for _, l := range leases {
		for _, charge := range l.Charges() {
			months, err := monthsBetween(charge.StartDate.Time, charge.EndDate.Time)
			if err != nil {
				utils.Logger.WithError(err).WithField("leaseId", l.ID).Warn("Skipping lease charge with invalid date range")
				continue
			}
			monthly, ok := byProperty[l.PropertyID]
			if !ok {
				monthly = make(map[string][]float64)
				byProperty[l.PropertyID] = monthly
				order = append(order, l.PropertyID)
			}
			for _, m := range months {
				monthly[m] = append(monthly[m], charge.MonthlyAmount)
			}
		}
	}

	out := make([]dtos.CandlestickSeries, 0, len(order))
	for _, pid := range order {
		monthly := byProperty[pid]
		points := make([]dtos.CandlestickPoint, 0, len(monthly))
		for month, amounts := range monthly {
			points = append(points, ohlc(month, amounts))
		}
		sort.Slice(points, func(i, j int) bool { return points[i].X < points[j].X })

		label := names[pid]
		if label == "" {
			label = fmt.Sprintf("Property #%s", pid)
		}
		out = append(out, dtos.CandlestickSeries{Label: label, Data: points})
	}
	return out
}

func ohlc(month string, amounts []float64) dtos.CandlestickPoint {
	p := dtos.CandlestickPoint{X: month}
	if len(amounts) == 0 {
		return p
	}
	p.O = amounts[0]
	p.C = amounts[len(amounts)-1]
	p.H, p.L = 0, 0
	for _, a := range amounts {
		p.H = math.Max(p.H, a)
		p.L = math.Min(p.L, a)
	}
	return p
}
