package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "Planning"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusOnHold     ProjectStatus = "On Hold"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

type Project struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	LinkedPropertyID uuid.UUID     `json:"linkedPropertyId"`
	Status           ProjectStatus `json:"status"`
	CompletionDate   *time.Time    `json:"completionDate,omitempty"`
	Description      string        `json:"description"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}
