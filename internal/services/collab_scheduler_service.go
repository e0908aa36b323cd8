package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/brigadly/backend/internal/constants"
	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/repositories"
	"github.com/brigadly/backend/internal/utils"
)

// CollabSchedulerService runs bulk applications for narrow-collaboration
// workers: pick the company's matching shifts over the coming weeks and apply
// to each, one shift per calendar day at most.
type CollabSchedulerService struct {
	relRepo     repositories.RelationRepository
	collabRepo  repositories.CollabRepository
	companyRepo repositories.CompanyRepository
	workerRepo  repositories.WorkerRepository
	shiftRepo   repositories.ShiftRepository

	apps    *ApplicationService
	waveCfg WaveConfig
	now     func() time.Time
}

func NewCollabSchedulerService(
	relRepo repositories.RelationRepository,
	collabRepo repositories.CollabRepository,
	companyRepo repositories.CompanyRepository,
	workerRepo repositories.WorkerRepository,
	shiftRepo repositories.ShiftRepository,
	apps *ApplicationService,
	waveCfg WaveConfig,
) *CollabSchedulerService {
	return &CollabSchedulerService{
		relRepo:     relRepo,
		collabRepo:  collabRepo,
		companyRepo: companyRepo,
		workerRepo:  workerRepo,
		shiftRepo:   shiftRepo,
		apps:        apps,
		waveCfg:     waveCfg,
		now:         time.Now,
	}
}

// BulkApply applies the worker to every shift of the company that matches the
// scheme over the requested window. Individual failures are tallied, never
// fatal to the batch.
func (s *CollabSchedulerService) BulkApply(ctx context.Context, workerID uuid.UUID, req dtos.BulkApplyRequest) (*dtos.BulkApplyResponse, error) {
	rel, err := s.relRepo.GetByCompanyAndWorker(ctx, req.CompanyID, workerID)
	if err != nil {
		return nil, err
	}
	if rel == nil || !rel.NarrowCollab || rel.GroupID == nil {
		return nil, utils.ErrNotCollabWorker
	}

	group, err := s.collabRepo.GetGroupByID(ctx, *rel.GroupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, utils.ErrNotCollabWorker
	}

	scheme, err := s.collabRepo.GetSchemeByID(ctx, req.SchemeID)
	if err != nil {
		return nil, err
	}
	if scheme == nil || scheme.CompanyID != req.CompanyID {
		return nil, utils.ErrNotFound
	}

	company, err := s.companyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.Approved {
		return nil, utils.ErrNotFound
	}

	worker, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, utils.ErrNotFound
	}

	weeks := req.Weeks
	if weeks > group.MaxAdvanceWeeks {
		weeks = group.MaxAdvanceWeeks
	}
	if weeks > constants.MaxCollabWeeks {
		weeks = constants.MaxCollabWeeks
	}

	now := s.now()
	windowEnd := DateOnly(now).AddDate(0, 0, 7*weeks)

	candidates, err := s.selectCandidates(ctx, worker, rel, company, scheme, models.ShiftKind(req.ShiftKind), now, windowEnd)
	if err != nil {
		return nil, err
	}

	resp := &dtos.BulkApplyResponse{}
	for _, sh := range candidates {
		_, applyErr := s.apps.Apply(ctx, workerID, dtos.ApplyRequest{ShiftID: sh.ID})
		switch {
		case applyErr == nil:
			resp.Applied++
		case errors.Is(applyErr, utils.ErrDuplicateApplication):
			resp.AlreadyApplied++
		default:
			utils.Logger.WithError(applyErr).Warnf("Bulk apply failed for shift %s (worker %s)", sh.ID, workerID)
			resp.Failed++
		}
	}
	return resp, nil
}

// selectCandidates narrows the company's open shifts down to at most one per
// calendar day matching the scheme's weekday set and the requested kind.
func (s *CollabSchedulerService) selectCandidates(
	ctx context.Context,
	worker *models.WorkerProfile,
	rel *models.CompanyWorkerRelation,
	company *models.Company,
	scheme *models.CollabScheme,
	kind models.ShiftKind,
	now, windowEnd time.Time,
) ([]*models.Shift, error) {
	shifts, err := s.shiftRepo.ListOpenByCompany(ctx, company.ID, now, windowEnd)
	if err != nil {
		return nil, err
	}

	weekdaySet := make(map[time.Weekday]bool, len(scheme.Weekdays))
	for _, d := range scheme.Weekdays {
		weekdaySet[time.Weekday(d)] = true
	}

	cutoffHour := company.CollabCutoffHour
	if cutoffHour <= 0 {
		cutoffHour = constants.DefaultCollabCutoffHour
	}

	var matching []*models.Shift
	for _, sh := range shifts {
		if !sh.StartAt.After(now) {
			continue
		}
		if !weekdaySet[sh.StartAt.Weekday()] {
			continue
		}
		if models.ShiftKindOf(sh.StartAt) != kind {
			continue
		}
		if scheme.SkipHolidays && utils.IsPublicHoliday(sh.StartAt) {
			continue
		}
		// cutoff: the configured hour on the day before the shift
		dayBefore := DateOnly(sh.StartAt).AddDate(0, 0, -1)
		deadline := dayBefore.Add(time.Duration(cutoffHour) * time.Hour)
		if !now.Before(deadline) {
			continue
		}
		if !IsEligible(worker, sh) {
			continue
		}
		effective := EffectiveTier(sh.WaveTier, sh.WaveEnteredAt, now, s.waveCfg)
		if !CanSee(effective, VisibilityFlags{HasWorked: rel.HasWorked(), Priority: rel.IsPriority()}) {
			continue
		}
		matching = append(matching, sh)
	}

	sort.Slice(matching, func(i, j int) bool {
		return matching[i].StartAt.Before(matching[j].StartAt)
	})

	// one shift per calendar day: first by start time wins
	seenDays := make(map[time.Time]bool)
	var out []*models.Shift
	for _, sh := range matching {
		day := DateOnly(sh.StartAt)
		if seenDays[day] {
			continue
		}
		seenDays[day] = true
		out = append(out, sh)
	}
	return out, nil
}
