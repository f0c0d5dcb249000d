// go-models/unit.go
package models

type UnitStatus string

const (
	UnitStatusVacant   UnitStatus = "Vacant"
	UnitStatusOccupied UnitStatus = "Occupied"
)

// PropertyUnit is a leasable space embedded in a Property document. Its ID is a
// free-form string referenced by Lease.UnitID.
type PropertyUnit struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Sqft   float64    `json:"sqft,omitempty"`
	Status UnitStatus `json:"status,omitempty"`
	Rent   float64    `json:"rent,omitempty"`
}
