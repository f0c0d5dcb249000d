package dtos

import (
	"time"

	"github.com/insightventures/backoffice/backend/shared/go-models"
)

// CalendarEventMeta points the frontend back at the event's source record.
type CalendarEventMeta struct {
	ID             string                 `json:"id"`
	Type           models.EventSourceType `json:"type"`
	URL            string                 `json:"url,omitempty"`
	FederalHoliday bool                   `json:"federalHoliday"`
	HolidayName    string                 `json:"holidayName,omitempty"`
}

// CalendarEventResponse is the shape the calendar widget consumes.
type CalendarEventResponse struct {
	ID     string            `json:"id"`
	Start  time.Time         `json:"start"`
	End    *time.Time        `json:"end,omitempty"`
	Title  string            `json:"title"`
	Color  models.EventColor `json:"color"`
	AllDay bool              `json:"allDay"`
	IsDone bool              `json:"isDone"`
	Meta   CalendarEventMeta `json:"meta"`
}

type SetEventDoneRequest struct {
	IsDone *bool `json:"isDone" validate:"required"`
}
