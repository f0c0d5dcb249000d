package models

import (
	"time"

	"github.com/google/uuid"
)

type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "Active"
	TenantStatusInactive TenantStatus = "Inactive"
	TenantStatusPending  TenantStatus = "Pending"
)

type Tenant struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	BusinessType *string      `json:"businessType,omitempty"`
	Email        string       `json:"email"`
	Phone        *string      `json:"phone,omitempty"`
	Status       TenantStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
