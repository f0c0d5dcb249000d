package constants

import (
	"github.com/insightventures/backoffice/backend/shared/go-models"
)

// Calendar generation windows
const (
	RecurrenceWindowYears = 1  // recurring reminders expand up to today+1y
	DashboardAlertDays    = 10 // alerts cover [today, today+10d]
	DashboardAlertLimit   = 5
)

// Source signatures. Each identifies one logical calendar occurrence.
const (
	SigProjectDeadline   = "project-deadline-%s"
	SigLeaseExpiration   = "lease-expiration-%s"
	SigPropertyTax       = "property-tax-%s"
	SigPropertyInsurance = "property-insurance-%s"
	SigReminderSingle    = "reminder-single-%s"
	SigReminderRecurring = "reminder-recurring-%s-%s"
)

// Frontend deep links for event sources
const (
	URLProject  = "/projects/%s"
	URLTenant   = "/tenants/%s"
	URLProperty = "/properties/%s"
)

const (
	UnknownTenant   = "Unknown Tenant"
	UnknownProperty = "Unknown Property"
)

// Palette keys accepted on reminders
const (
	ColorRed    = "red"
	ColorBlue   = "blue"
	ColorOrange = "orange"
	ColorGreen  = "green"
	ColorPurple = "purple"
)

var Palette = map[string]models.EventColor{
	ColorRed:    {Primary: "#d32f2f", Secondary: "#ffcdd2"},
	ColorBlue:   {Primary: "#1976d2", Secondary: "#bbdefb"},
	ColorOrange: {Primary: "#f57c00", Secondary: "#ffe0b2"},
	ColorGreen:  {Primary: "#388e3c", Secondary: "#c8e6c9"},
	ColorPurple: {Primary: "#7b1fa2", Secondary: "#e1bee7"},
}

// PaletteColor resolves a palette key, falling back to purple.
func PaletteColor(key string) models.EventColor {
	if c, ok := Palette[key]; ok {
		return c
	}
	return Palette[ColorPurple]
}
