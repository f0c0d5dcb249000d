package models

import (
	"time"

	"github.com/google/uuid"
)

type RecurrenceFrequency string

const (
	FrequencyDay   RecurrenceFrequency = "day"
	FrequencyWeek  RecurrenceFrequency = "week"
	FrequencyMonth RecurrenceFrequency = "month"
	FrequencyYear  RecurrenceFrequency = "year"
)

// RecurrenceRule is stored as JSONB on the reminder row. ByDay holds two-letter
// weekday codes (MO..SU).
type RecurrenceRule struct {
	Frequency RecurrenceFrequency `json:"frequency"`
	Interval  int                 `json:"interval,omitempty"`
	ByDay     []string            `json:"byDay,omitempty"`
	EndDate   *Date               `json:"endDate,omitempty"`
}

type CustomReminder struct {
	Versioned
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	StartDate   time.Time       `json:"startDate"`
	Color       string          `json:"color"`
	Notes       *string         `json:"notes,omitempty"`
	Recurrence  *RecurrenceRule `json:"recurrence,omitempty"`
	IsCompleted bool            `json:"isCompleted"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// IsRecurring reports whether the reminder carries a recurrence rule with a
// frequency set.
func (r *CustomReminder) IsRecurring() bool {
	return r.Recurrence != nil && r.Recurrence.Frequency != ""
}

// Versioned carries the row_version used for optimistic locking. Embed it
// anonymously.
type Versioned struct {
	RowVersion int64 `json:"rowVersion"`
}

func (v *Versioned) GetRowVersion() int64  { return v.RowVersion }
func (v *Versioned) SetRowVersion(n int64) { v.RowVersion = n }
