package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LeaseSourceManual    = "manual"
	LeaseSourceCSVImport = "csv_import"
)

// Charge is one period of a lease schedule. Periods are expected to be ordered
// and non-overlapping, but nothing downstream relies on it.
type Charge struct {
	StartDate     Date    `json:"startDate"`
	EndDate       Date    `json:"endDate"`
	MonthlyAmount float64 `json:"monthlyAmount"`
}

type Lease struct {
	ID            uuid.UUID  `json:"id"`
	PropertyID    uuid.UUID  `json:"propertyId"`
	UnitID        string     `json:"unitId"`
	TenantID      uuid.UUID  `json:"tenantId"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	RentSchedule  []Charge   `json:"rentSchedule"`
	CamitSchedule []Charge   `json:"camitSchedule"`
	Source        string     `json:"source"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Charges returns rent and CAM periods in schedule order.
func (l *Lease) Charges() []Charge {
	out := make([]Charge, 0, len(l.RentSchedule)+len(l.CamitSchedule))
	out = append(out, l.RentSchedule...)
	return append(out, l.CamitSchedule...)
}
