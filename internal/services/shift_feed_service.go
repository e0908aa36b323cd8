package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/brigadly/backend/internal/constants"
	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/repositories"
	"github.com/brigadly/backend/internal/utils"
)

// ShiftFeedService builds the per-worker view of the open shift catalog:
// eligibility gates, wave visibility, effective rate and relevance ranking.
type ShiftFeedService struct {
	shiftRepo   repositories.ShiftRepository
	workerRepo  repositories.WorkerRepository
	appRepo     repositories.ApplicationRepository
	relRepo     repositories.RelationRepository
	companyRepo repositories.CompanyRepository

	waveCfg WaveConfig
	now     func() time.Time
}

func NewShiftFeedService(
	shiftRepo repositories.ShiftRepository,
	workerRepo repositories.WorkerRepository,
	appRepo repositories.ApplicationRepository,
	relRepo repositories.RelationRepository,
	companyRepo repositories.CompanyRepository,
	waveCfg WaveConfig,
) *ShiftFeedService {
	return &ShiftFeedService{
		shiftRepo:   shiftRepo,
		workerRepo:  workerRepo,
		appRepo:     appRepo,
		relRepo:     relRepo,
		companyRepo: companyRepo,
		waveCfg:     waveCfg,
		now:         time.Now,
	}
}

// ListOpenShifts returns the ranked, paged feed for a worker.
func (s *ShiftFeedService) ListOpenShifts(ctx context.Context, workerID uuid.UUID, q dtos.FeedQuery) (*dtos.FeedResponse, error) {
	worker, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, utils.ErrNotFound
	}

	now := s.now()
	from := now
	to := now.AddDate(0, 0, constants.DaysToListOpenShiftsRange)

	shifts, err := s.shiftRepo.ListOpenInRegion(ctx, worker.Region, from, to)
	if err != nil {
		return nil, err
	}

	relByCompany, err := s.relationsByCompany(ctx, workerID)
	if err != nil {
		return nil, err
	}

	var entries []dtos.FeedShiftDTO
	for _, sh := range shifts {
		if !sh.StartAt.After(now) {
			continue
		}
		if sh.ConfirmBy != nil && now.After(*sh.ConfirmBy) {
			continue
		}
		if !IsEligible(worker, sh) {
			continue
		}

		rel := relByCompany[sh.CompanyID]
		effective := EffectiveTier(sh.WaveTier, sh.WaveEnteredAt, now, s.waveCfg)
		if !CanSee(effective, VisibilityFlags{HasWorked: rel.HasWorked(), Priority: rel.IsPriority()}) {
			continue
		}

		entries = append(entries, dtos.FeedShiftDTO{
			Shift:         sh,
			EffectiveTier: effective,
			EffectiveRate: sh.EffectiveHourlyRate(),
			MatchScore:    MatchScore(worker, sh, worker.Region, rel),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].MatchScore != entries[j].MatchScore {
			return entries[i].MatchScore > entries[j].MatchScore
		}
		return entries[i].Shift.StartAt.Before(entries[j].Shift.StartAt)
	})

	total := len(entries)
	page, pageSize := normalizePaging(q)
	start := page * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &dtos.FeedResponse{
		Results: append([]dtos.FeedShiftDTO{}, entries[start:end]...),
		Total:   total,
		Page:    page,
	}, nil
}

// GetShiftDetail applies the same gates as the feed but with a distinct
// refusal reason per gate. A worker who already holds any application on the
// shift always passes, so applicants are never locked out of their own
// application view.
func (s *ShiftFeedService) GetShiftDetail(ctx context.Context, workerID, shiftID uuid.UUID) (*dtos.FeedShiftDTO, error) {
	worker, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, utils.ErrNotFound
	}

	sh, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, utils.ErrNotFound
	}

	company, err := s.companyRepo.GetByID(ctx, sh.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.Approved {
		return nil, utils.ErrNotFound
	}

	now := s.now()
	rel, err := s.relRepo.GetByCompanyAndWorker(ctx, sh.CompanyID, workerID)
	if err != nil {
		return nil, err
	}
	effective := EffectiveTier(sh.WaveTier, sh.WaveEnteredAt, now, s.waveCfg)

	buildDTO := func() *dtos.FeedShiftDTO {
		return &dtos.FeedShiftDTO{
			Shift:         sh,
			EffectiveTier: effective,
			EffectiveRate: sh.EffectiveHourlyRate(),
			MatchScore:    MatchScore(worker, sh, company.Region, rel),
		}
	}

	// applicants keep access to the shift behind their own application
	existing, err := s.appRepo.GetByShiftAndWorker(ctx, shiftID, workerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return buildDTO(), nil
	}

	if sh.Status != models.ShiftStatusOpen {
		return nil, utils.ErrShiftNotAccepting
	}
	if !sh.StartAt.After(now) {
		return nil, utils.ErrShiftAlreadyStarted
	}
	if sh.ConfirmBy != nil && now.After(*sh.ConfirmBy) {
		return nil, utils.ErrConfirmDeadline
	}
	if !MeetsCertifications(worker, sh) {
		return nil, utils.ErrCertificationRequired
	}
	if !MeetsExperience(worker, sh) {
		return nil, utils.ErrExperienceRequired
	}
	if !BundleThresholdValid(sh) {
		return nil, utils.ErrBundleThresholdUnmet
	}
	flex := CheckFlexPreferences(worker, sh, sh.EffectiveHourlyRate())
	switch {
	case !flex.ContractTypeOK:
		return nil, utils.ErrFlexContractMismatch
	case !flex.NoticeOK:
		return nil, utils.ErrFlexNoticeMismatch
	case !flex.RateOK:
		return nil, utils.ErrFlexRateMismatch
	}
	if !CanSee(effective, VisibilityFlags{HasWorked: rel.HasWorked(), Priority: rel.IsPriority()}) {
		return nil, utils.ErrShiftNotReleasedYet
	}

	return buildDTO(), nil
}

func (s *ShiftFeedService) relationsByCompany(ctx context.Context, workerID uuid.UUID) (map[uuid.UUID]*models.CompanyWorkerRelation, error) {
	rels, err := s.relRepo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	byCompany := make(map[uuid.UUID]*models.CompanyWorkerRelation, len(rels))
	for _, rel := range rels {
		byCompany[rel.CompanyID] = rel
	}
	return byCompany, nil
}

func normalizePaging(q dtos.FeedQuery) (page, pageSize int) {
	page = q.Page
	if page < 0 {
		page = 0
	}
	pageSize = q.PageSize
	if pageSize <= 0 {
		pageSize = constants.DefaultFeedPageSize
	}
	if pageSize > constants.MaxFeedPageSize {
		pageSize = constants.MaxFeedPageSize
	}
	return page, pageSize
}
