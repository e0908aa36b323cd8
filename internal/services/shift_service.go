package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/repositories"
	"github.com/brigadly/backend/internal/utils"
)

// ShiftService is the company-side mutation boundary for shifts. Wave
// promotion monotonicity is enforced here.
type ShiftService struct {
	shiftRepo   repositories.ShiftRepository
	companyRepo repositories.CompanyRepository
	apps        *ApplicationService

	now func() time.Time
}

func NewShiftService(
	shiftRepo repositories.ShiftRepository,
	companyRepo repositories.CompanyRepository,
	apps *ApplicationService,
) *ShiftService {
	return &ShiftService{
		shiftRepo:   shiftRepo,
		companyRepo: companyRepo,
		apps:        apps,
		now:         time.Now,
	}
}

func (s *ShiftService) CreateShift(ctx context.Context, companyID uuid.UUID, req dtos.CreateShiftRequest) (*models.Shift, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, utils.ErrNotFound
	}

	now := s.now()
	if !req.StartAt.After(now) {
		return nil, utils.ErrShiftAlreadyStarted
	}

	sh := &models.Shift{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Title:       req.Title,
		Description: req.Description,

		StartAt:       req.StartAt,
		EndAt:         req.StartAt.Add(time.Duration(req.DurationHours * float64(time.Hour))),
		DurationHours: req.DurationHours,
		HourlyRate:    req.HourlyRate,

		RequiresForklift: req.RequiresForklift,
		RequiresSafety:   req.RequiresSafety,
		RequiresFoodCard: req.RequiresFoodCard,
		MinExperience:    req.MinExperience,

		NeededWorkers: req.NeededWorkers,

		WaveTier:      req.WaveTier,
		WaveEnteredAt: now,

		Urgent:       req.Urgent,
		UrgencyBonus: req.UrgencyBonus,
		ConfirmBy:    req.ConfirmBy,

		Bundle:         req.Bundle,
		BundleMinHours: req.BundleMinHours,
		BundleMinDays:  req.BundleMinDays,
		BundleBonus:    req.BundleBonus,
		BundleRate:     req.BundleRate,

		ContractType: req.ContractType,
		NoticeWindow: req.NoticeWindow,

		CancellationCompensationPct: req.CancellationCompensationPct,

		Status: models.ShiftStatusOpen,
	}

	if !BundleThresholdValid(sh) {
		return nil, utils.ErrBundleThresholdUnmet
	}

	if err := s.shiftRepo.Create(ctx, sh); err != nil {
		return nil, err
	}
	return s.shiftRepo.GetByID(ctx, sh.ID)
}

func (s *ShiftService) GetShift(ctx context.Context, companyID, shiftID uuid.UUID) (*models.Shift, error) {
	sh, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if sh == nil || sh.CompanyID != companyID {
		return nil, utils.ErrNotFound
	}
	return sh, nil
}

func (s *ShiftService) ListCompanyShifts(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*models.Shift, error) {
	return s.shiftRepo.ListByCompany(ctx, companyID, from, to)
}

func (s *ShiftService) UpdateNeededWorkers(ctx context.Context, companyID uuid.UUID, req dtos.UpdateNeededWorkersRequest) (*models.Shift, error) {
	if _, err := s.GetShift(ctx, companyID, req.ShiftID); err != nil {
		return nil, err
	}

	err := s.shiftRepo.UpdateWithRetry(ctx, req.ShiftID, func(sh *models.Shift) error {
		if sh.Status != models.ShiftStatusOpen && sh.Status != models.ShiftStatusFull {
			return utils.ErrWrongStatus
		}
		sh.NeededWorkers = req.NeededWorkers
		if sh.ConfirmedCount >= sh.NeededWorkers {
			sh.Status = models.ShiftStatusFull
		} else {
			sh.Status = models.ShiftStatusOpen
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.shiftRepo.GetByID(ctx, req.ShiftID)
}

// PromoteWave moves the nominal tier forward. Regressions are rejected; a
// promotion to the current tier is a no-op.
func (s *ShiftService) PromoteWave(ctx context.Context, companyID uuid.UUID, req dtos.PromoteWaveRequest) (*models.Shift, error) {
	if _, err := s.GetShift(ctx, companyID, req.ShiftID); err != nil {
		return nil, err
	}

	now := s.now()
	err := s.shiftRepo.UpdateWithRetry(ctx, req.ShiftID, func(sh *models.Shift) error {
		if sh.Status == models.ShiftStatusClosed || sh.Status == models.ShiftStatusCancelled {
			return utils.ErrWrongStatus
		}
		if req.Tier.Rank() < sh.WaveTier.Rank() {
			return utils.ErrWaveRegression
		}
		if req.Tier == sh.WaveTier {
			return nil
		}
		sh.WaveTier = req.Tier
		sh.WaveEnteredAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.shiftRepo.GetByID(ctx, req.ShiftID)
}

func (s *ShiftService) CloseShift(ctx context.Context, companyID, shiftID uuid.UUID) (*models.Shift, error) {
	if _, err := s.GetShift(ctx, companyID, shiftID); err != nil {
		return nil, err
	}

	err := s.shiftRepo.UpdateWithRetry(ctx, shiftID, func(sh *models.Shift) error {
		if sh.Status != models.ShiftStatusOpen && sh.Status != models.ShiftStatusFull {
			return utils.ErrWrongStatus
		}
		sh.Status = models.ShiftStatusClosed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.shiftRepo.GetByID(ctx, shiftID)
}

// CancelShift cascades through the application service so every live
// application is cancelled with compensation where owed.
func (s *ShiftService) CancelShift(ctx context.Context, companyID, shiftID uuid.UUID) (*models.Shift, error) {
	return s.apps.CancelShiftCascade(ctx, companyID, shiftID)
}
