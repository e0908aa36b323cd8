package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/services"
	"github.com/brigadly/backend/internal/utils"
)

// CompanyApplicationsController serves the company side of the application
// lifecycle: confirming, rejecting, cancelling and marking shifts worked.
type CompanyApplicationsController struct {
	apps *services.ApplicationService
}

func NewCompanyApplicationsController(as *services.ApplicationService) *CompanyApplicationsController {
	return &CompanyApplicationsController{apps: as}
}

// ----------------------------------------------------------------
// GET /api/v1/company/shifts/{shiftID}/applications?status=PENDING
// ----------------------------------------------------------------
func (c *CompanyApplicationsController) ListForShiftHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	shiftID, ok := pathUUID(w, mux.Vars(r), "shiftID")
	if !ok {
		return
	}

	apps, err := c.apps.ListForShift(r.Context(), companyID, shiftID, parseStatusFilter(r))
	if err != nil {
		respondServiceError(w, err, "Failed to list applications")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, apps)
}

// ----------------------------------------------------------------
// POST /api/v1/company/applications/confirm
// ----------------------------------------------------------------
func (c *CompanyApplicationsController) ConfirmHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.ApplicationActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := c.apps.Confirm(r.Context(), companyID, req.ApplicationID)
	if err != nil {
		respondServiceError(w, err, "Cannot confirm application")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, app)
}

// ----------------------------------------------------------------
// POST /api/v1/company/applications/reject
// ----------------------------------------------------------------
func (c *CompanyApplicationsController) RejectHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.ApplicationActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := c.apps.Reject(r.Context(), companyID, req.ApplicationID)
	if err != nil {
		respondServiceError(w, err, "Cannot reject application")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, app)
}

// ----------------------------------------------------------------
// POST /api/v1/company/applications/cancel
// ----------------------------------------------------------------
func (c *CompanyApplicationsController) CancelHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.ApplicationActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := c.apps.CancelByCompany(r.Context(), companyID, req.ApplicationID)
	if err != nil {
		respondServiceError(w, err, "Cannot cancel application")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, app)
}

// ----------------------------------------------------------------
// POST /api/v1/company/applications/confirm-worked
// ----------------------------------------------------------------
func (c *CompanyApplicationsController) ConfirmWorkedHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.ConfirmWorkedRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := c.apps.ConfirmWorked(r.Context(), companyID, req)
	if err != nil {
		respondServiceError(w, err, "Cannot confirm worked shift")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, app)
}
