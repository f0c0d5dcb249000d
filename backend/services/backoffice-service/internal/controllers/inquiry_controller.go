package controllers

import (
	"net/http"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/dtos"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/services"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

type InquiryController struct {
	inquiryService *services.InquiryService
}

func NewInquiryController(is *services.InquiryService) *InquiryController {
	return &InquiryController{inquiryService: is}
}

// POST /api/v1/get-in-touch
func (c *InquiryController) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateInquiryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	inq, err := c.inquiryService.Submit(r.Context(), req)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not save your request", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, inq)
}

// GET /api/v1/get-in-touch
func (c *InquiryController) ListHandler(w http.ResponseWriter, r *http.Request) {
	out, err := c.inquiryService.List(r.Context())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Error fetching inquiries", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}
