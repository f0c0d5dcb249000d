package controllers

import (
	"errors"
	"net/http"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/dtos"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/services"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

type RemindersController struct {
	reminderService *services.ReminderService
}

func NewRemindersController(rs *services.ReminderService) *RemindersController {
	return &RemindersController{reminderService: rs}
}

// POST /api/v1/reminders
func (c *RemindersController) SaveHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SaveReminderRequest
	if !decodeAndValidate(w, r, &req) || rejectZeroDate(w, "StartDate", req.StartDate) {
		return
	}
	rem, created, err := c.reminderService.Save(r.Context(), req)
	if err != nil {
		respondReminderError(w, err, "Error saving reminder")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.RespondWithJSON(w, status, rem)
}

// GET /api/v1/reminders
func (c *RemindersController) ListHandler(w http.ResponseWriter, r *http.Request) {
	rems, err := c.reminderService.List(r.Context())
	if err != nil {
		respondReminderError(w, err, "Error fetching reminders")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rems)
}

// GET /api/v1/reminders/{id}
func (c *RemindersController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	rem, err := c.reminderService.Get(r.Context(), id)
	if err != nil {
		respondReminderError(w, err, "Error fetching reminder")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rem)
}

// PUT /api/v1/reminders/{id}
func (c *RemindersController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	var req dtos.UpdateReminderRequest
	if !decodeAndValidate(w, r, &req) || rejectZeroDate(w, "StartDate", req.StartDate) {
		return
	}
	rem, err := c.reminderService.Update(r.Context(), id, req)
	if err != nil {
		respondReminderError(w, err, "Error updating reminder")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rem)
}

// DELETE /api/v1/reminders/{id}
func (c *RemindersController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	if err := c.reminderService.Delete(r.Context(), id); err != nil {
		respondReminderError(w, err, "Error deleting reminder")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondReminderError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, utils.ErrReminderNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Reminder not found.", nil, err)
	case errors.Is(err, utils.ErrRowVersionConflict):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeRowVersionConflict, "Reminder was modified concurrently, please retry", nil, err)
	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, msg, nil, err)
	}
}
