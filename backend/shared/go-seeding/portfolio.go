package seeding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/insightventures/backoffice/backend/shared/go-repositories"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
	"github.com/jackc/pgconn"
)

const (
	DemoPropertyMainStID   = "33333333-3333-3333-3333-333333333333"
	DemoPropertyOakAveID   = "33333333-3333-3333-3333-333333333334"
	DemoTenantAcmeID       = "44444444-4444-4444-4444-444444444441"
	DemoTenantBrightsideID = "44444444-4444-4444-4444-444444444442"
	DemoLeaseAcmeID        = "55555555-5555-5555-5555-555555555551"
	DemoLeaseBrightsideID  = "55555555-5555-5555-5555-555555555552"
	DemoProjectRoofID      = "66666666-6666-6666-6666-666666666661"
	DemoReminderInspectID  = "77777777-7777-7777-7777-777777777771"
)

// PortfolioRepos groups the repositories the demo portfolio writes through.
type PortfolioRepos struct {
	Properties repositories.PropertyRepository
	Tenants    repositories.TenantRepository
	Leases     repositories.LeaseRepository
	Projects   repositories.ProjectRepository
	Reminders  repositories.CustomReminderRepository
}

// DemoPortfolio is the fixed demo data set. Dates are relative to now so the
// calendar and dashboard always have upcoming entries.
type DemoPortfolio struct {
	Properties []*models.Property
	Tenants    []*models.Tenant
	Leases     []*models.Lease
	Projects   []*models.Project
	Reminders  []*models.CustomReminder
}

func BuildDemoPortfolio(now time.Time) DemoPortfolio {
	today := utils.DateOnly(now)
	day := func(days int) time.Time { return today.AddDate(0, 0, days) }
	date := func(days int) *models.Date { d := models.NewDate(day(days)); return &d }

	mainSt := &models.Property{
		ID:           uuid.MustParse(DemoPropertyMainStID),
		PropertyCode: "IV-100",
		EntityName:   "Acme LLC",
		Name:         "Main Street Plaza",
		Address:      models.Address{Street: "123 Main St", City: "Huntsville", State: "AL", Zip: "35801"},
		Type:         models.PropertyTypeCommercial,
		Units: []models.PropertyUnit{
			{ID: "u-100-1", Name: "Unit 1", Sqft: 1200, Status: models.UnitStatusOccupied, Rent: 1500},
			{ID: "u-100-2", Name: "Unit 2", Sqft: 900, Status: models.UnitStatusVacant, Rent: 1100},
		},
		TaxDetails: &models.TaxDetails{ParcelNumber: "17-04-22-1-001", AnnualAmount: 8200, PaymentDeadline: date(7)},
		Insurance:  &models.InsuranceDetails{Provider: "Shelter Mutual", PolicyNumber: "SM-99812", EndDate: date(45)},
	}
	oakAve := &models.Property{
		ID:           uuid.MustParse(DemoPropertyOakAveID),
		PropertyCode: "IV-200",
		EntityName:   "Oak Holdings Inc",
		Address:      models.Address{Street: "48 Oak Ave", City: "Madison", State: "AL", Zip: "35758"},
		Type:         models.PropertyTypeMixedUse,
		Units: []models.PropertyUnit{
			{ID: "u-200-a", Name: "Suite A", Sqft: 2000, Status: models.UnitStatusOccupied, Rent: 2600},
		},
		Insurance: &models.InsuranceDetails{Provider: "Alfa", EndDate: date(120)},
	}

	acme := &models.Tenant{
		ID:     uuid.MustParse(DemoTenantAcmeID),
		Name:   "Acme Inc.",
		Email:  "ap@acme.example.com",
		Status: models.TenantStatusActive,
	}
	brightside := &models.Tenant{
		ID:     uuid.MustParse(DemoTenantBrightsideID),
		Name:   "Brightside Dental (Dr. Patel)",
		Email:  "office@brightside.example.com",
		Phone:  utils.Ptr("+12565550123"),
		Status: models.TenantStatusActive,
	}

	leaseStart := time.Date(today.Year()-1, today.Month(), 1, 0, 0, 0, 0, time.UTC)
	acmeEnd := day(5)
	brightEnd := day(300)
	chargeEnd := func(t time.Time) models.Date { return models.NewDate(t) }

	leases := []*models.Lease{
		{
			ID:         uuid.MustParse(DemoLeaseAcmeID),
			PropertyID: mainSt.ID,
			UnitID:     "u-100-1",
			TenantID:   acme.ID,
			StartDate:  leaseStart,
			EndDate:    &acmeEnd,
			RentSchedule: []models.Charge{
				{StartDate: models.NewDate(leaseStart), EndDate: chargeEnd(leaseStart.AddDate(0, 6, -1)), MonthlyAmount: 1450},
				{StartDate: models.NewDate(leaseStart.AddDate(0, 6, 0)), EndDate: chargeEnd(acmeEnd), MonthlyAmount: 1500},
			},
			CamitSchedule: []models.Charge{
				{StartDate: models.NewDate(leaseStart), EndDate: chargeEnd(acmeEnd), MonthlyAmount: 175},
			},
			Source: models.LeaseSourceManual,
		},
		{
			ID:         uuid.MustParse(DemoLeaseBrightsideID),
			PropertyID: oakAve.ID,
			UnitID:     "u-200-a",
			TenantID:   brightside.ID,
			StartDate:  leaseStart,
			EndDate:    &brightEnd,
			RentSchedule: []models.Charge{
				{StartDate: models.NewDate(leaseStart), EndDate: chargeEnd(brightEnd), MonthlyAmount: 2600},
			},
			Source: models.LeaseSourceManual,
		},
	}

	roofDue := day(21)
	projects := []*models.Project{{
		ID:               uuid.MustParse(DemoProjectRoofID),
		Name:             "Roof replacement",
		LinkedPropertyID: mainSt.ID,
		Status:           models.ProjectStatusInProgress,
		CompletionDate:   &roofDue,
		Description:      "Replace membrane roof over units 1-2.",
	}}

	reminders := []*models.CustomReminder{{
		ID:        uuid.MustParse(DemoReminderInspectID),
		Title:     "Walk-through inspection",
		StartDate: today,
		Color:     "green",
		Recurrence: &models.RecurrenceRule{
			Frequency: models.FrequencyMonth,
			Interval:  1,
		},
	}}

	return DemoPortfolio{
		Properties: []*models.Property{mainSt, oakAve},
		Tenants:    []*models.Tenant{acme, brightside},
		Leases:     leases,
		Projects:   projects,
		Reminders:  reminders,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// SeedDemoPortfolio writes the demo portfolio once. A present sentinel
// property means a previous run already seeded everything.
func SeedDemoPortfolio(ctx context.Context, repos PortfolioRepos, now time.Time) error {
	sentinel := uuid.MustParse(DemoPropertyMainStID)
	if existing, err := repos.Properties.GetByID(ctx, sentinel); err != nil {
		return fmt.Errorf("check existing seed property: %w", err)
	} else if existing != nil {
		utils.Logger.Info("seeding: demo portfolio already present; skipping")
		return nil
	}

	demo := BuildDemoPortfolio(now)
	create := func(kind string, id uuid.UUID, fn func() error) error {
		if err := fn(); err != nil {
			if isUniqueViolation(err) {
				utils.Logger.Infof("seeding: %s (id=%s) already exists; skipping", kind, id)
				return nil
			}
			return fmt.Errorf("create %s %s: %w", kind, id, err)
		}
		return nil
	}

	for _, p := range demo.Properties {
		if err := create("property", p.ID, func() error { return repos.Properties.Create(ctx, p) }); err != nil {
			return err
		}
	}
	for _, t := range demo.Tenants {
		if err := create("tenant", t.ID, func() error { return repos.Tenants.Create(ctx, t) }); err != nil {
			return err
		}
	}
	for _, l := range demo.Leases {
		if err := create("lease", l.ID, func() error { return repos.Leases.Create(ctx, l) }); err != nil {
			return err
		}
	}
	for _, p := range demo.Projects {
		if err := create("project", p.ID, func() error { return repos.Projects.Create(ctx, p) }); err != nil {
			return err
		}
	}
	for _, r := range demo.Reminders {
		if err := create("reminder", r.ID, func() error { return repos.Reminders.Create(ctx, r) }); err != nil {
			return err
		}
	}

	utils.Logger.Info("seeding: demo portfolio created")
	return nil
}
