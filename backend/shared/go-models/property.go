package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrDuplicateUnitID = errors.New("duplicate_unit_id")

type PropertyType string

const (
	PropertyTypeResidential PropertyType = "Residential"
	PropertyTypeCommercial  PropertyType = "Commercial"
	PropertyTypeLand        PropertyType = "Land"
	PropertyTypeMixedUse    PropertyType = "Mixed Use"
)

type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type TaxDetails struct {
	ParcelNumber    string  `json:"parcelNumber,omitempty"`
	AnnualAmount    float64 `json:"annualAmount,omitempty"`
	PaymentDeadline *Date   `json:"paymentDeadline,omitempty"`
}

type InsuranceDetails struct {
	Provider     string `json:"provider,omitempty"`
	PolicyNumber string `json:"policyNumber,omitempty"`
	EndDate      *Date  `json:"endDate,omitempty"`
}

// Property is a managed asset. Units are embedded (JSONB) rather than a child
// table; unit ids must be unique within one property.
type Property struct {
	ID           uuid.UUID         `json:"id"`
	PropertyCode string            `json:"propertyId"`
	EntityName   string            `json:"entityName,omitempty"`
	Name         string            `json:"name,omitempty"`
	Address      Address           `json:"address"`
	County       string            `json:"county,omitempty"`
	Type         PropertyType      `json:"type"`
	Units        []PropertyUnit    `json:"units"`
	TaxDetails   *TaxDetails       `json:"taxDetails,omitempty"`
	Insurance    *InsuranceDetails `json:"insurance,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// DisplayName is the display name, falling back to the legal entity name.
func (p *Property) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.EntityName
}

// FindUnitByName returns the unit whose trimmed name equals name exactly.
func (p *Property) FindUnitByName(name string) *PropertyUnit {
	name = strings.TrimSpace(name)
	for i := range p.Units {
		if strings.TrimSpace(p.Units[i].Name) == name {
			return &p.Units[i]
		}
	}
	return nil
}

// ValidateUnits enforces unit id uniqueness within the property.
func (p *Property) ValidateUnits() error {
	seen := make(map[string]struct{}, len(p.Units))
	for _, u := range p.Units {
		if _, dup := seen[u.ID]; dup {
			return ErrDuplicateUnitID
		}
		seen[u.ID] = struct{}{}
	}
	return nil
}
