package testhelpers

import (
	"time"

	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

// Today is midnight UTC of the current day, the anchor every calendar window
// is computed from.
func (h *TestHelper) Today() time.Time {
	return utils.DateOnly(time.Now())
}

// DaysFromToday returns Today shifted by n days.
func (h *TestHelper) DaysFromToday(n int) time.Time {
	return h.Today().AddDate(0, 0, n)
}
