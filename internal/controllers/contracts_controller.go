package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/services"
	"github.com/brigadly/backend/internal/utils"
)

// ContractsController serves contract retrieval and signing for both sides.
// The company must sign before the worker can.
type ContractsController struct {
	contracts *services.ContractService
}

func NewContractsController(cs *services.ContractService) *ContractsController {
	return &ContractsController{contracts: cs}
}

// ----------------------------------------------------------------
// GET /api/v1/contracts/{applicationID}
// ----------------------------------------------------------------
func (c *ContractsController) WorkerGetHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	appID, ok := pathUUID(w, mux.Vars(r), "applicationID")
	if !ok {
		return
	}

	doc, err := c.contracts.GetForWorker(r.Context(), workerID, appID)
	if err != nil {
		respondServiceError(w, err, "Contract not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doc)
}

// ----------------------------------------------------------------
// POST /api/v1/contracts/sign
// ----------------------------------------------------------------
func (c *ContractsController) WorkerSignHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.SignContractRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	doc, err := c.contracts.SignByWorker(r.Context(), workerID, req, r.RemoteAddr, r.UserAgent())
	if err != nil {
		respondServiceError(w, err, "Cannot sign contract")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doc)
}

// ----------------------------------------------------------------
// GET /api/v1/company/contracts/{applicationID}
// ----------------------------------------------------------------
func (c *ContractsController) CompanyGetHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	appID, ok := pathUUID(w, mux.Vars(r), "applicationID")
	if !ok {
		return
	}

	doc, err := c.contracts.GetForCompany(r.Context(), companyID, appID)
	if err != nil {
		respondServiceError(w, err, "Contract not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doc)
}

// ----------------------------------------------------------------
// POST /api/v1/company/contracts/sign
// ----------------------------------------------------------------
func (c *ContractsController) CompanySignHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.SignContractRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	doc, err := c.contracts.SignByCompany(r.Context(), companyID, req, r.RemoteAddr, r.UserAgent())
	if err != nil {
		respondServiceError(w, err, "Cannot sign contract")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doc)
}
