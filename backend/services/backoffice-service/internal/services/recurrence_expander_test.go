package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/constants"
	internal_utils "github.com/insightventures/backoffice/backend/services/backoffice-service/internal/utils"
	"github.com/insightventures/backoffice/backend/shared/go-models"
)

func recurringReminder(start time.Time, rule models.RecurrenceRule) *models.CustomReminder {
	return &models.CustomReminder{
		ID:         uuid.New(),
		Title:      "Inspect boiler",
		StartDate:  start,
		Color:      constants.ColorGreen,
		Recurrence: &rule,
	}
}

func TestExpansionWindow(t *testing.T) {
	from, to := ExpansionWindow(fixedNow)
	assert.Equal(t, fixedDay, from)
	assert.Equal(t, day(2027, 10, 16), to)
}

func TestExpandReminder_Single(t *testing.T) {
	rem := &models.CustomReminder{
		ID:        uuid.New(),
		Title:     "Call plumber",
		StartDate: day(2026, 10, 20),
	}

	exp, err := ExpandReminder(rem, fixedNow)
	require.NoError(t, err)
	require.Len(t, exp.Drafts, 1)
	assert.Empty(t, exp.SingleSignature)
	assert.Empty(t, exp.RecurringSignatures)

	d := exp.Drafts[0]
	assert.Equal(t, "Reminder: Call plumber", d.Title)
	assert.Equal(t, "reminder-single-"+rem.ID.String(), d.SourceSignature)
	assert.Equal(t, day(2026, 10, 20), *d.StartDate)
	assert.Equal(t, constants.Palette[constants.ColorPurple], d.Color, "unknown colour keys fall back to purple")
	assert.Equal(t, models.EventSourceCustomReminder, d.SourceType)
}

func TestExpandReminder_SingleCompleted(t *testing.T) {
	rem := &models.CustomReminder{ID: uuid.New(), Title: "Done", StartDate: day(2026, 10, 20), IsCompleted: true}

	exp, err := ExpandReminder(rem, fixedNow)
	require.NoError(t, err)
	assert.Empty(t, exp.Drafts)
	assert.Equal(t, "reminder-single-"+rem.ID.String(), exp.SingleSignature)
}

func TestExpandReminder_WeeklyFromPastStart(t *testing.T) {
	rem := recurringReminder(day(2024, 1, 1), models.RecurrenceRule{Frequency: models.FrequencyWeek, Interval: 1})

	exp, err := ExpandReminder(rem, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "reminder-single-"+rem.ID.String(), exp.SingleSignature)
	require.Len(t, exp.Drafts, 52)
	require.Len(t, exp.RecurringSignatures, 52)

	from, to := ExpansionWindow(fixedNow)
	assert.Equal(t, day(2026, 10, 19), *exp.Drafts[0].StartDate)
	for i, d := range exp.Drafts {
		assert.Equal(t, time.Monday, d.StartDate.Weekday())
		assert.False(t, d.StartDate.Before(from))
		assert.False(t, d.StartDate.After(to))
		if i > 0 {
			assert.Equal(t, 7*24*time.Hour, d.StartDate.Sub(*exp.Drafts[i-1].StartDate))
		}
		assert.Equal(t, constants.Palette[constants.ColorGreen], d.Color)
	}
	assert.Equal(t,
		"reminder-recurring-"+rem.ID.String()+"-2026-10-19",
		exp.RecurringSignatures[0],
	)
}

func TestExpandReminder_ByDay(t *testing.T) {
	rem := recurringReminder(fixedDay, models.RecurrenceRule{
		Frequency: models.FrequencyWeek,
		ByDay:     []string{"MO", "we", "XX"},
	})

	exp, err := ExpandReminder(rem, fixedNow)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(exp.Drafts), 2)
	assert.Equal(t, day(2026, 10, 19), *exp.Drafts[0].StartDate)
	assert.Equal(t, day(2026, 10, 21), *exp.Drafts[1].StartDate)
	for _, d := range exp.Drafts {
		wd := d.StartDate.Weekday()
		assert.True(t, wd == time.Monday || wd == time.Wednesday, "unexpected weekday %s", wd)
	}
}

func TestExpandReminder_DailyZeroIntervalCoversWholeWindow(t *testing.T) {
	rem := recurringReminder(day(2026, 1, 1), models.RecurrenceRule{Frequency: models.FrequencyDay, Interval: 0})

	exp, err := ExpandReminder(rem, fixedNow)
	require.NoError(t, err)
	require.Len(t, exp.Drafts, 366)
	assert.Equal(t, fixedDay, *exp.Drafts[0].StartDate)
	assert.Equal(t, day(2027, 10, 16), *exp.Drafts[365].StartDate)
}

func TestExpandReminder_EndDateBeforeToday(t *testing.T) {
	rem := recurringReminder(day(2025, 1, 1), models.RecurrenceRule{
		Frequency: models.FrequencyMonth,
		EndDate:   dateRef(day(2026, 6, 30)),
	})

	exp, err := ExpandReminder(rem, fixedNow)
	require.NoError(t, err)
	assert.Empty(t, exp.Drafts)
	assert.Empty(t, exp.RecurringSignatures)
	assert.NotEmpty(t, exp.SingleSignature)
}

func TestExpandReminder_RecurringCompleted(t *testing.T) {
	rem := recurringReminder(day(2025, 1, 1), models.RecurrenceRule{Frequency: models.FrequencyMonth})
	rem.IsCompleted = true

	exp, err := ExpandReminder(rem, fixedNow)
	require.NoError(t, err)
	assert.Empty(t, exp.Drafts)
	assert.Empty(t, exp.RecurringSignatures)
}

func TestExpandReminder_UnknownFrequency(t *testing.T) {
	rem := recurringReminder(day(2025, 1, 1), models.RecurrenceRule{Frequency: "fortnight"})

	exp, err := ExpandReminder(rem, fixedNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, internal_utils.ErrUnknownFrequency))
	assert.Empty(t, exp.Drafts)
}
