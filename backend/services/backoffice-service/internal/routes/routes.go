package routes

const (
	// Health
	Health = "/health"

	// Calendar
	CalendarEvents         = "/api/v1/calendar-events"
	CalendarEventsGenerate = "/api/v1/calendar-events/generate"
	CalendarEventDone      = "/api/v1/calendar-events/{id}/done"
	CalendarEventByID      = "/api/v1/calendar-events/{id}"
	DashboardAlerts        = "/api/v1/dashboard/alerts"

	// Reminders
	Reminders    = "/api/v1/reminders"
	ReminderByID = "/api/v1/reminders/{id}"

	// Financials
	FinancialsCandlestick = "/api/v1/financials/candlestick-data"

	// Data import
	RentRollImport = "/api/v1/data-import/rent-roll"

	// Public contact form
	GetInTouch = "/api/v1/get-in-touch"
)
