package models

import (
	"time"

	"github.com/google/uuid"
)

type EventSourceType string

const (
	EventSourceProject          EventSourceType = "Project"
	EventSourceLeaseExpiration  EventSourceType = "Lease Expiration"
	EventSourceTaxDeadline      EventSourceType = "Tax Deadline"
	EventSourceInsuranceRenewal EventSourceType = "Insurance Renewal"
	EventSourceCustomReminder   EventSourceType = "Custom Reminder"
)

type EventColor struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// CalendarEvent is a derived row. SourceSignature is unique across the table
// and identifies one logical occurrence; regeneration upserts on it.
type CalendarEvent struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`
	AllDay          bool            `json:"allDay"`
	Color           EventColor      `json:"color"`
	SourceID        string          `json:"sourceId"`
	SourceType      EventSourceType `json:"sourceType"`
	SourceSignature string          `json:"sourceSignature"`
	URL             string          `json:"url,omitempty"`
	IsDone          bool            `json:"isDone"`
	DeletedAt       *time.Time      `json:"deletedAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
