package controllers

import (
	"net/http"

	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/services"
	"github.com/brigadly/backend/internal/utils"
)

// CompanyCollabController manages worker relations, collaboration groups and
// recurring schemes for a company.
type CompanyCollabController struct {
	company *services.CompanyService
}

func NewCompanyCollabController(cs *services.CompanyService) *CompanyCollabController {
	return &CompanyCollabController{company: cs}
}

// ----------------------------------------------------------------
// POST /api/v1/company/relations
// ----------------------------------------------------------------
func (c *CompanyCollabController) UpsertRelationHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.UpsertRelationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rel, err := c.company.UpsertRelation(r.Context(), companyID, req)
	if err != nil {
		respondServiceError(w, err, "Cannot update worker relation")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rel)
}

// ----------------------------------------------------------------
// POST /api/v1/company/collab/groups
// ----------------------------------------------------------------
func (c *CompanyCollabController) CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.CreateGroupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	group, err := c.company.CreateGroup(r.Context(), companyID, req)
	if err != nil {
		respondServiceError(w, err, "Cannot create collaboration group")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, group)
}

// ----------------------------------------------------------------
// POST /api/v1/company/collab/schemes
// ----------------------------------------------------------------
func (c *CompanyCollabController) CreateSchemeHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}
	var req dtos.CreateSchemeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	scheme, err := c.company.CreateScheme(r.Context(), companyID, req)
	if err != nil {
		respondServiceError(w, err, "Cannot create collaboration scheme")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, scheme)
}

// ----------------------------------------------------------------
// GET /api/v1/company/collab/schemes
// ----------------------------------------------------------------
func (c *CompanyCollabController) ListSchemesHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := contextUserID(w, r)
	if !ok {
		return
	}

	schemes, err := c.company.ListSchemes(r.Context(), companyID)
	if err != nil {
		respondServiceError(w, err, "Failed to list collaboration schemes")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, schemes)
}
