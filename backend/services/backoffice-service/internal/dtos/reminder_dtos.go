package dtos

import (
	"github.com/google/uuid"
	"github.com/insightventures/backoffice/backend/shared/go-models"
)

type RecurrenceRequest struct {
	Frequency models.RecurrenceFrequency `json:"frequency" validate:"required,oneof=day week month year"`
	Interval  *int                       `json:"interval,omitempty" validate:"omitempty,gte=0"`
	ByDay     []string                   `json:"byDay,omitempty" validate:"omitempty,dive,oneof=MO TU WE TH FR SA SU"`
	EndDate   *models.Date               `json:"endDate,omitempty"`
}

// SaveReminderRequest creates a reminder, or replaces it when ID names an
// existing one.
type SaveReminderRequest struct {
	ID          *uuid.UUID         `json:"id,omitempty"`
	Title       string             `json:"title" validate:"required,min=1"`
	StartDate   *models.Date       `json:"startDate" validate:"required"`
	Color       string             `json:"color,omitempty" validate:"omitempty,oneof=red blue orange green purple"`
	Notes       *string            `json:"notes,omitempty"`
	Recurrence  *RecurrenceRequest `json:"recurrence,omitempty" validate:"omitempty"`
	IsCompleted bool               `json:"isCompleted"`
}

// UpdateReminderRequest is a partial update; nil fields are left unchanged.
// ClearRecurrence turns a recurring reminder back into a single one.
type UpdateReminderRequest struct {
	Title           *string            `json:"title,omitempty" validate:"omitempty,min=1"`
	StartDate       *models.Date       `json:"startDate,omitempty"`
	Color           *string            `json:"color,omitempty" validate:"omitempty,oneof=red blue orange green purple"`
	Notes           *string            `json:"notes,omitempty"`
	Recurrence      *RecurrenceRequest `json:"recurrence,omitempty" validate:"omitempty"`
	ClearRecurrence bool               `json:"clearRecurrence,omitempty"`
	IsCompleted     *bool              `json:"isCompleted,omitempty"`
}
