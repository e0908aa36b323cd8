package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/brigadly/backend/internal/constants"
	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/repositories"
	"github.com/brigadly/backend/internal/utils"
)

// CompanyService manages a company's worker relations and its
// narrow-collaboration groups and schemes.
type CompanyService struct {
	companyRepo repositories.CompanyRepository
	relRepo     repositories.RelationRepository
	collabRepo  repositories.CollabRepository
	workerRepo  repositories.WorkerRepository
}

func NewCompanyService(
	companyRepo repositories.CompanyRepository,
	relRepo repositories.RelationRepository,
	collabRepo repositories.CollabRepository,
	workerRepo repositories.WorkerRepository,
) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		relRepo:     relRepo,
		collabRepo:  collabRepo,
		workerRepo:  workerRepo,
	}
}

// UpsertRelation sets the company's flags for a worker. A narrow-collab
// relation must point at one of the company's own groups.
func (s *CompanyService) UpsertRelation(ctx context.Context, companyID uuid.UUID, req dtos.UpsertRelationRequest) (*models.CompanyWorkerRelation, error) {
	worker, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, utils.ErrNotFound
	}

	if req.NarrowCollab {
		if req.GroupID == nil {
			return nil, utils.ErrInvalidPayload
		}
		group, err := s.collabRepo.GetGroupByID(ctx, *req.GroupID)
		if err != nil {
			return nil, err
		}
		if group == nil || group.CompanyID != companyID {
			return nil, utils.ErrNotFound
		}
	}

	rel := &models.CompanyWorkerRelation{
		ID:           uuid.New(),
		CompanyID:    companyID,
		WorkerID:     req.WorkerID,
		Favorite:     req.Favorite,
		Priority:     req.Priority,
		NarrowCollab: req.NarrowCollab,
		GroupID:      req.GroupID,
	}
	if err := s.relRepo.Upsert(ctx, rel); err != nil {
		return nil, err
	}
	return s.relRepo.GetByCompanyAndWorker(ctx, companyID, req.WorkerID)
}

func (s *CompanyService) CreateGroup(ctx context.Context, companyID uuid.UUID, req dtos.CreateGroupRequest) (*models.CollabGroup, error) {
	maxWeeks := req.MaxAdvanceWeeks
	if maxWeeks > constants.MaxCollabWeeks {
		maxWeeks = constants.MaxCollabWeeks
	}
	g := &models.CollabGroup{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Name:            req.Name,
		MaxAdvanceWeeks: maxWeeks,
	}
	if err := s.collabRepo.CreateGroup(ctx, g); err != nil {
		return nil, err
	}
	return s.collabRepo.GetGroupByID(ctx, g.ID)
}

func (s *CompanyService) CreateScheme(ctx context.Context, companyID uuid.UUID, req dtos.CreateSchemeRequest) (*models.CollabScheme, error) {
	sc := &models.CollabScheme{
		ID:           uuid.New(),
		CompanyID:    companyID,
		Name:         req.Name,
		Weekdays:     req.Weekdays,
		SkipHolidays: req.SkipHolidays,
	}
	if err := s.collabRepo.CreateScheme(ctx, sc); err != nil {
		return nil, err
	}
	return s.collabRepo.GetSchemeByID(ctx, sc.ID)
}

func (s *CompanyService) ListSchemes(ctx context.Context, companyID uuid.UUID) ([]*models.CollabScheme, error) {
	return s.collabRepo.ListSchemesByCompany(ctx, companyID)
}
