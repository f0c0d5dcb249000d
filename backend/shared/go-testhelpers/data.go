package testhelpers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

// UniqueEmail generates a unique email for testing.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixNano(), utils.TestEmailSuffix)
}

// UniqueCode generates a short property code that will not collide between runs.
func UniqueCode(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// CreateTestProperty persists a property with two units, "Unit 1" and "Unit 2". Tax and insurance
// dates are set only when non-nil.
func (h *TestHelper) CreateTestProperty(ctx context.Context, entityName string, taxDeadline, insuranceEnd *time.Time) *models.Property {
	p := &models.Property{
		ID:           uuid.New(),
		PropertyCode: UniqueCode("IT"),
		EntityName:   entityName,
		Address:      models.Address{Street: fmt.Sprintf("%d Test Ave", time.Now().UnixNano()%10000), City: "Testville", State: "TX", Zip: "00000"},
		Type:         models.PropertyTypeCommercial,
		Units: []models.PropertyUnit{
			{ID: uuid.NewString(), Name: "Unit 1", Status: models.UnitStatusOccupied},
			{ID: uuid.NewString(), Name: "Unit 2", Status: models.UnitStatusVacant},
		},
	}
	if taxDeadline != nil {
		d := models.NewDate(*taxDeadline)
		p.TaxDetails = &models.TaxDetails{ParcelNumber: "P-" + p.PropertyCode, PaymentDeadline: &d}
	}
	if insuranceEnd != nil {
		d := models.NewDate(*insuranceEnd)
		p.Insurance = &models.InsuranceDetails{Provider: "Test Mutual", PolicyNumber: "POL-" + p.PropertyCode, EndDate: &d}
	}
	require.NoError(h.T, h.PropertyRepo.Create(ctx, p), "Failed to create test property")
	h.T.Cleanup(func() { _ = h.PropertyRepo.Delete(context.Background(), p.ID) })
	return p
}

// CreateTestTenant persists an active tenant.
func (h *TestHelper) CreateTestTenant(ctx context.Context, name string) *models.Tenant {
	t := &models.Tenant{
		ID:     uuid.New(),
		Name:   name,
		Email:  UniqueEmail("tenant"),
		Status: models.TenantStatusActive,
	}
	require.NoError(h.T, h.TenantRepo.Create(ctx, t), "Failed to create test tenant")
	h.T.Cleanup(func() { _ = h.TenantRepo.Delete(context.Background(), t.ID) })
	return t
}

// CreateTestLease persists a lease on the property's first unit with one rent period covering
// the whole term.
func (h *TestHelper) CreateTestLease(ctx context.Context, prop *models.Property, tenant *models.Tenant, start, end time.Time, rent float64) *models.Lease {
	require.NotEmpty(h.T, prop.Units, "test property has no units")
	l := &models.Lease{
		ID:         uuid.New(),
		PropertyID: prop.ID,
		UnitID:     prop.Units[0].ID,
		TenantID:   tenant.ID,
		StartDate:  start,
		EndDate:    &end,
		RentSchedule: []models.Charge{
			{StartDate: models.NewDate(start), EndDate: models.NewDate(end), MonthlyAmount: rent},
		},
	}
	require.NoError(h.T, h.LeaseRepo.Create(ctx, l), "Failed to create test lease")
	h.T.Cleanup(func() { _ = h.LeaseRepo.Delete(context.Background(), l.ID) })
	return l
}

// CreateTestProject persists a project due on completion.
func (h *TestHelper) CreateTestProject(ctx context.Context, name string, propertyID uuid.UUID, completion time.Time) *models.Project {
	p := &models.Project{
		ID:               uuid.New(),
		Name:             name,
		LinkedPropertyID: propertyID,
		Status:           models.ProjectStatusPlanning,
		CompletionDate:   &completion,
	}
	require.NoError(h.T, h.ProjectRepo.Create(ctx, p), "Failed to create test project")
	h.T.Cleanup(func() { _ = h.ProjectRepo.Delete(context.Background(), p.ID) })
	return p
}

// CountEventsBySource returns how many calendar rows, soft-deleted ones included, a source owns.
func (h *TestHelper) CountEventsBySource(ctx context.Context, sourceType models.EventSourceType, sourceID string) int {
	var n int
	err := h.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM calendar_events WHERE source_type = $1 AND source_id = $2`,
		string(sourceType), sourceID,
	).Scan(&n)
	require.NoError(h.T, err)
	return n
}
