package services

import (
	"fmt"
	"time"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/constants"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

// EventDraft is a calendar event before persistence. A nil EndDate marks an
// incomplete draft that is dropped before upsert.
type EventDraft struct {
	Title           string
	StartDate       *time.Time
	EndDate         *time.Time
	Color           models.EventColor
	SourceID        string
	SourceType      models.EventSourceType
	SourceSignature string
	URL             string
	AllDay          bool
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	d := utils.DateOnly(*t)
	return &d
}

func datePtr(d *models.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := utils.DateOnly(d.Time)
	return &t
}

// ProjectToDraft builds the deadline event of a project.
func ProjectToDraft(p *models.Project) EventDraft {
	color := constants.Palette[constants.ColorBlue]
	if p.Status == models.ProjectStatusCompleted {
		color = constants.Palette[constants.ColorGreen]
	}
	id := p.ID.String()
	day := dayPtr(p.CompletionDate)
	return EventDraft{
		Title:           "Project Deadline: " + p.Name,
		StartDate:       day,
		EndDate:         day,
		Color:           color,
		SourceID:        id,
		SourceType:      models.EventSourceProject,
		SourceSignature: fmt.Sprintf(constants.SigProjectDeadline, id),
		URL:             fmt.Sprintf(constants.URLProject, id),
		AllDay:          true,
	}
}

// LeaseToDraft builds the expiration event of a lease. Names are resolved
// through the lookup maps, keyed by id string.
func LeaseToDraft(l *models.Lease, tenantNames, propertyNames map[string]string) EventDraft {
	tenantName, ok := tenantNames[l.TenantID.String()]
	if !ok || tenantName == "" {
		tenantName = constants.UnknownTenant
	}
	propName, ok := propertyNames[l.PropertyID.String()]
	if !ok || propName == "" {
		propName = constants.UnknownProperty
	}

	id := l.ID.String()
	day := dayPtr(l.EndDate)
	return EventDraft{
		Title:           fmt.Sprintf("Lease Expiration: %s at %s", tenantName, propName),
		StartDate:       day,
		EndDate:         day,
		Color:           constants.Palette[constants.ColorOrange],
		SourceID:        id,
		SourceType:      models.EventSourceLeaseExpiration,
		SourceSignature: fmt.Sprintf(constants.SigLeaseExpiration, id),
		URL:             fmt.Sprintf(constants.URLTenant, l.TenantID.String()),
		AllDay:          true,
	}
}

// PropertyToDrafts yields the tax deadline and insurance renewal events of a
// property, each only when its date is set.
func PropertyToDrafts(p *models.Property) []EventDraft {
	var out []EventDraft
	id := p.ID.String()
	url := fmt.Sprintf(constants.URLProperty, id)

	if p.TaxDetails != nil {
		if day := datePtr(p.TaxDetails.PaymentDeadline); day != nil {
			out = append(out, EventDraft{
				Title:           "Tax Deadline: " + p.DisplayName(),
				StartDate:       day,
				EndDate:         day,
				Color:           constants.Palette[constants.ColorRed],
				SourceID:        id,
				SourceType:      models.EventSourceTaxDeadline,
				SourceSignature: fmt.Sprintf(constants.SigPropertyTax, id),
				URL:             url,
				AllDay:          true,
			})
		}
	}
	if p.Insurance != nil {
		if day := datePtr(p.Insurance.EndDate); day != nil {
			out = append(out, EventDraft{
				Title:           "Insurance Renewal: " + p.DisplayName(),
				StartDate:       day,
				EndDate:         day,
				Color:           constants.Palette[constants.ColorOrange],
				SourceID:        id,
				SourceType:      models.EventSourceInsuranceRenewal,
				SourceSignature: fmt.Sprintf(constants.SigPropertyInsurance, id),
				URL:             url,
				AllDay:          true,
			})
		}
	}
	return out
}

// BuildNameMaps returns id -> display name lookups for tenants and properties.
func BuildNameMaps(tenants []*models.Tenant, properties []*models.Property) (map[string]string, map[string]string) {
	tenantNames := make(map[string]string, len(tenants))
	for _, t := range tenants {
		tenantNames[t.ID.String()] = t.Name
	}
	propertyNames := make(map[string]string, len(properties))
	for _, p := range properties {
		propertyNames[p.ID.String()] = p.DisplayName()
	}
	return tenantNames, propertyNames
}

// TransformAll maps every entity to drafts and drops those lacking an end date.
func TransformAll(
	projects []*models.Project,
	leases []*models.Lease,
	properties []*models.Property,
	tenants []*models.Tenant,
) []EventDraft {
	tenantNames, propertyNames := BuildNameMaps(tenants, properties)

	drafts := make([]EventDraft, 0, len(projects)+len(leases)+2*len(properties))
	for _, p := range projects {
		drafts = append(drafts, ProjectToDraft(p))
	}
	for _, l := range leases {
		drafts = append(drafts, LeaseToDraft(l, tenantNames, propertyNames))
	}
	for _, p := range properties {
		drafts = append(drafts, PropertyToDrafts(p)...)
	}
	return completeDrafts(drafts)
}

func completeDrafts(drafts []EventDraft) []EventDraft {
	out := drafts[:0]
	for _, d := range drafts {
		if d.EndDate == nil || d.StartDate == nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (d EventDraft) toEvent() *models.CalendarEvent {
	return &models.CalendarEvent{
		Title:           d.Title,
		StartDate:       *d.StartDate,
		EndDate:         *d.EndDate,
		AllDay:          d.AllDay,
		Color:           d.Color,
		SourceID:        d.SourceID,
		SourceType:      d.SourceType,
		SourceSignature: d.SourceSignature,
		URL:             d.URL,
	}
}

func draftsToEvents(drafts []EventDraft) []*models.CalendarEvent {
	out := make([]*models.CalendarEvent, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, d.toEvent())
	}
	return out
}
