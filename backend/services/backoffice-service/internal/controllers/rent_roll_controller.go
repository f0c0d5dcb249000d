package controllers

import (
	"net/http"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/dtos"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/services"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

type RentRollController struct {
	rentRollService *services.RentRollService
}

func NewRentRollController(rs *services.RentRollService) *RentRollController {
	return &RentRollController{rentRollService: rs}
}

// POST /api/v1/data-import/rent-roll
// Row-level failures come back in the 200 body; only a failed commit is a 500.
func (c *RentRollController) ImportHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RentRollImportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := c.rentRollService.Import(r.Context(), req)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Error saving rent roll data", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/data-import/rent-roll
func (c *RentRollController) MonthlyTotalsHandler(w http.ResponseWriter, r *http.Request) {
	totals, err := c.rentRollService.MonthlyTotals(r.Context())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Error fetching rent roll data", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, totals)
}
