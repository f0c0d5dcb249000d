package controllers

import (
	"errors"
	"net/http"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/dtos"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/services"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

type CalendarController struct {
	calendarService *services.CalendarService
	generator       services.CalendarGenerator
}

func NewCalendarController(cs *services.CalendarService, gen services.CalendarGenerator) *CalendarController {
	return &CalendarController{calendarService: cs, generator: gen}
}

// GET /api/v1/calendar-events
func (c *CalendarController) ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	events, err := c.calendarService.ListEvents(r.Context())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Error fetching calendar events", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, events)
}

// POST /api/v1/calendar-events/generate
func (c *CalendarController) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.generator.GenerateAllCalendarEvents(r.Context()); err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Calendar generation failed", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Calendar events generated."})
}

// PATCH /api/v1/calendar-events/{id}/done
func (c *CalendarController) SetDoneHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	var req dtos.SetEventDoneRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := c.calendarService.SetDone(r.Context(), id, *req.IsDone); err != nil {
		respondEventError(w, err, "Could not update calendar event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/v1/calendar-events/{id}
func (c *CalendarController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	if err := c.calendarService.DeleteEvent(r.Context(), id); err != nil {
		respondEventError(w, err, "Could not delete calendar event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/dashboard/alerts
func (c *CalendarController) DashboardAlertsHandler(w http.ResponseWriter, r *http.Request) {
	events, err := c.calendarService.DashboardAlerts(r.Context())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Error fetching dashboard alerts", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, events)
}

func respondEventError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, utils.ErrEventNotFound) {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Calendar event not found", nil, err)
		return
	}
	utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, msg, nil, err)
}
