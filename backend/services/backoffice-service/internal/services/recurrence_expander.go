package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/constants"
	internal_utils "github.com/insightventures/backoffice/backend/services/backoffice-service/internal/utils"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
	"github.com/teambition/rrule-go"
)

var rruleFrequencies = map[models.RecurrenceFrequency]rrule.Frequency{
	models.FrequencyDay:   rrule.DAILY,
	models.FrequencyWeek:  rrule.WEEKLY,
	models.FrequencyMonth: rrule.MONTHLY,
	models.FrequencyYear:  rrule.YEARLY,
}

var rruleWeekdays = map[string]rrule.Weekday{
	"MO": rrule.MO,
	"TU": rrule.TU,
	"WE": rrule.WE,
	"TH": rrule.TH,
	"FR": rrule.FR,
	"SA": rrule.SA,
	"SU": rrule.SU,
}

// ReminderExpansion is what one reminder contributes to a generation run.
type ReminderExpansion struct {
	Drafts []EventDraft
	// SingleSignature is set when the reminder's single-event row must go.
	SingleSignature string
	// RecurringSignatures lists every occurrence signature inside the window;
	// future occurrences outside it are stale.
	RecurringSignatures []string
}

// ExpansionWindow is [today, today+1y], both ends inclusive, at UTC midnight.
func ExpansionWindow(now time.Time) (time.Time, time.Time) {
	today := utils.DateOnly(now)
	return today, today.AddDate(constants.RecurrenceWindowYears, 0, 0)
}

// ExpandReminder turns a reminder into drafts. A reminder with an unknown
// frequency yields internal_utils.ErrUnknownFrequency and nothing else.
func ExpandReminder(rem *models.CustomReminder, now time.Time) (ReminderExpansion, error) {
	id := rem.ID.String()
	single := fmt.Sprintf(constants.SigReminderSingle, id)

	if !rem.IsRecurring() {
		if rem.IsCompleted {
			return ReminderExpansion{SingleSignature: single}, nil
		}
		day := utils.DateOnly(rem.StartDate)
		return ReminderExpansion{Drafts: []EventDraft{
			reminderDraft(rem, day, single),
		}}, nil
	}

	exp := ReminderExpansion{SingleSignature: single}
	if rem.IsCompleted {
		return exp, nil
	}

	occurrences, err := occurrencesInWindow(rem.StartDate, rem.Recurrence, now)
	if err != nil {
		return ReminderExpansion{}, err
	}
	for _, occ := range occurrences {
		sig := fmt.Sprintf(constants.SigReminderRecurring, id, occ.Format(models.DateLayout))
		exp.Drafts = append(exp.Drafts, reminderDraft(rem, occ, sig))
		exp.RecurringSignatures = append(exp.RecurringSignatures, sig)
	}
	return exp, nil
}

func occurrencesInWindow(start time.Time, rule *models.RecurrenceRule, now time.Time) ([]time.Time, error) {
	freq, ok := rruleFrequencies[models.RecurrenceFrequency(strings.ToLower(string(rule.Frequency)))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", internal_utils.ErrUnknownFrequency, rule.Frequency)
	}

	interval := rule.Interval
	if interval <= 0 {
		interval = 1
	}

	opt := rrule.ROption{
		Freq:     freq,
		Interval: interval,
		Dtstart:  utils.DateOnly(start),
	}
	if rule.EndDate != nil && !rule.EndDate.IsZero() {
		opt.Until = utils.DateOnly(rule.EndDate.Time)
	}
	for _, code := range rule.ByDay {
		wd, ok := rruleWeekdays[strings.ToUpper(strings.TrimSpace(code))]
		if !ok {
			utils.Logger.WithField("byDay", code).Warn("Ignoring unknown weekday code in recurrence rule")
			continue
		}
		opt.Byweekday = append(opt.Byweekday, wd)
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("build recurrence rule: %w", err)
	}

	from, to := ExpansionWindow(now)
	out := r.Between(from, to, true)
	for i := range out {
		out[i] = utils.DateOnly(out[i])
	}
	return out, nil
}

func reminderDraft(rem *models.CustomReminder, day time.Time, signature string) EventDraft {
	d := day
	return EventDraft{
		Title:           "Reminder: " + rem.Title,
		StartDate:       &d,
		EndDate:         &d,
		Color:           constants.PaletteColor(rem.Color),
		SourceID:        rem.ID.String(),
		SourceType:      models.EventSourceCustomReminder,
		SourceSignature: signature,
		AllDay:          true,
	}
}
