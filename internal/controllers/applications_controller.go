package controllers

import (
	"net/http"
	"strings"

	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/services"
	"github.com/brigadly/backend/internal/utils"
)

// ApplicationsController serves the worker side of the application lifecycle.
type ApplicationsController struct {
	apps   *services.ApplicationService
	collab *services.CollabSchedulerService
}

func NewApplicationsController(apps *services.ApplicationService, collab *services.CollabSchedulerService) *ApplicationsController {
	return &ApplicationsController{apps: apps, collab: collab}
}

// ----------------------------------------------------------------
// POST /api/v1/applications/apply
// ----------------------------------------------------------------
func (c *ApplicationsController) ApplyHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.ApplyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := c.apps.Apply(r.Context(), workerID, req)
	if err != nil {
		respondServiceError(w, err, "Cannot apply to shift")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, app)
}

// ----------------------------------------------------------------
// GET /api/v1/applications/my?status=PENDING,CONFIRMED
// ----------------------------------------------------------------
func (c *ApplicationsController) ListMyHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := contextUserID(w, r)
	if !ok {
		return
	}

	apps, err := c.apps.ListForWorker(r.Context(), workerID, parseStatusFilter(r))
	if err != nil {
		respondServiceError(w, err, "Failed to list applications")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, apps)
}

// ----------------------------------------------------------------
// POST /api/v1/applications/cancel
// ----------------------------------------------------------------
func (c *ApplicationsController) CancelHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.ApplicationActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := c.apps.CancelByWorker(r.Context(), workerID, req.ApplicationID)
	if err != nil {
		respondServiceError(w, err, "Cannot cancel application")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, app)
}

// ----------------------------------------------------------------
// POST /api/v1/applications/bulk-apply
// ----------------------------------------------------------------
func (c *ApplicationsController) BulkApplyHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.BulkApplyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.collab.BulkApply(r.Context(), workerID, req)
	if err != nil {
		respondServiceError(w, err, "Cannot run bulk apply")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func parseStatusFilter(r *http.Request) []models.ApplicationStatusType {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil
	}
	var statuses []models.ApplicationStatusType
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			statuses = append(statuses, models.ApplicationStatusType(s))
		}
	}
	return statuses
}
