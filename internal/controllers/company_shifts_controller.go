package controllers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/services"
	"github.com/brigadly/backend/internal/utils"
)

// CompanyShiftsController serves the company side of shift management.
type CompanyShiftsController struct {
	shifts *services.ShiftService
}

func NewCompanyShiftsController(ss *services.ShiftService) *CompanyShiftsController {
	return &CompanyShiftsController{shifts: ss}
}

// ----------------------------------------------------------------
// POST /api/v1/company/shifts
// ----------------------------------------------------------------
func (c *CompanyShiftsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.CreateShiftRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sh, err := c.shifts.CreateShift(r.Context(), companyID, req)
	if err != nil {
		respondServiceError(w, err, "Cannot create shift")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, sh)
}

// ----------------------------------------------------------------
// GET /api/v1/company/shifts?from=...&to=...
// ----------------------------------------------------------------
func (c *CompanyShiftsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}

	from, to := parseListWindow(r)
	shifts, err := c.shifts.ListCompanyShifts(r.Context(), companyID, from, to)
	if err != nil {
		respondServiceError(w, err, "Failed to list shifts")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, shifts)
}

// ----------------------------------------------------------------
// GET /api/v1/company/shifts/{shiftID}
// ----------------------------------------------------------------
func (c *CompanyShiftsController) GetHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	shiftID, ok := pathUUID(w, mux.Vars(r), "shiftID")
	if !ok {
		return
	}

	sh, err := c.shifts.GetShift(r.Context(), companyID, shiftID)
	if err != nil {
		respondServiceError(w, err, "Shift not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sh)
}

// ----------------------------------------------------------------
// POST /api/v1/company/shifts/slots
// ----------------------------------------------------------------
func (c *CompanyShiftsController) UpdateSlotsHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.UpdateNeededWorkersRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sh, err := c.shifts.UpdateNeededWorkers(r.Context(), companyID, req)
	if err != nil {
		respondServiceError(w, err, "Cannot update shift slots")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sh)
}

// ----------------------------------------------------------------
// POST /api/v1/company/shifts/promote-wave
// ----------------------------------------------------------------
func (c *CompanyShiftsController) PromoteWaveHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.PromoteWaveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sh, err := c.shifts.PromoteWave(r.Context(), companyID, req)
	if err != nil {
		respondServiceError(w, err, "Cannot promote shift wave")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sh)
}

// ----------------------------------------------------------------
// POST /api/v1/company/shifts/close
// ----------------------------------------------------------------
func (c *CompanyShiftsController) CloseHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.ShiftActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sh, err := c.shifts.CloseShift(r.Context(), companyID, req.ShiftID)
	if err != nil {
		respondServiceError(w, err, "Cannot close shift")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sh)
}

// ----------------------------------------------------------------
// POST /api/v1/company/shifts/cancel
// Cancels the shift and every open application on it in one transaction.
// ----------------------------------------------------------------
func (c *CompanyShiftsController) CancelHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.ShiftActionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sh, err := c.shifts.CancelShift(r.Context(), companyID, req.ShiftID)
	if err != nil {
		respondServiceError(w, err, "Cannot cancel shift")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sh)
}

func parseListWindow(r *http.Request) (time.Time, time.Time) {
	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now.AddDate(0, 3, 0)
	if v, err := time.Parse(time.RFC3339, r.URL.Query().Get("from")); err == nil {
		from = v
	}
	if v, err := time.Parse(time.RFC3339, r.URL.Query().Get("to")); err == nil {
		to = v
	}
	return from, to
}
