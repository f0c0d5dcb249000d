package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/services"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

type FinancialsController struct {
	financialsService *services.FinancialsService
}

func NewFinancialsController(fs *services.FinancialsService) *FinancialsController {
	return &FinancialsController{financialsService: fs}
}

// GET /api/v1/financials/candlestick-data?propertyIds=a,b&tenantId=x
func (c *FinancialsController) CandlestickHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter services.CandlestickFilter
	if raw := strings.TrimSpace(q.Get("propertyIds")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid propertyIds", nil, err)
				return
			}
			filter.PropertyIDs = append(filter.PropertyIDs, id)
		}
	}
	if raw := strings.TrimSpace(q.Get("tenantId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid tenantId", nil, err)
			return
		}
		filter.TenantID = &id
	}

	series, err := c.financialsService.CandlestickData(r.Context(), filter)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Error fetching candlestick data", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, series)
}
