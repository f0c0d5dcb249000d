package utils

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// Federal holidays the calendar annotates. Weekend holidays also flag the
// weekday they are observed on.
var federalHolidays = func() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	return c
}()

// FederalHoliday returns the name of the US federal holiday falling (or
// observed) on t's calendar day.
func FederalHoliday(t time.Time) (string, bool) {
	actual, observed, h := federalHolidays.IsHoliday(t)
	if h == nil || !(actual || observed) {
		return "", false
	}
	if observed && !actual {
		return h.Name + " (observed)", true
	}
	return h.Name, true
}
