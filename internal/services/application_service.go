package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brigadly/backend/internal/constants"
	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/repositories"
	"github.com/brigadly/backend/internal/utils"
)

// ApplicationService owns every transition of the application state machine.
// Nothing else writes application statuses.
type ApplicationService struct {
	appRepo    repositories.ApplicationRepository
	shiftRepo  repositories.ShiftRepository
	workerRepo repositories.WorkerRepository
	relRepo    repositories.RelationRepository

	feed      *ShiftFeedService
	contracts *ContractService
	notifier  Notifier

	now func() time.Time
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	shiftRepo repositories.ShiftRepository,
	workerRepo repositories.WorkerRepository,
	relRepo repositories.RelationRepository,
	feed *ShiftFeedService,
	contracts *ContractService,
	notifier Notifier,
) *ApplicationService {
	return &ApplicationService{
		appRepo:    appRepo,
		shiftRepo:  shiftRepo,
		workerRepo: workerRepo,
		relRepo:    relRepo,
		feed:       feed,
		contracts:  contracts,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Apply creates a PENDING application after running the full detail-view
// gate set, storing the match score computed at this moment.
func (s *ApplicationService) Apply(ctx context.Context, workerID uuid.UUID, req dtos.ApplyRequest) (*models.Application, error) {
	detail, err := s.feed.GetShiftDetail(ctx, workerID, req.ShiftID)
	if err != nil {
		return nil, err
	}

	app := &models.Application{
		ID:         uuid.New(),
		ShiftID:    req.ShiftID,
		WorkerID:   workerID,
		Status:     models.ApplicationStatusPending,
		Note:       req.Note,
		MatchScore: detail.MatchScore,
	}

	inserted, err := s.appRepo.CreateIfNotExists(ctx, app)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, utils.ErrDuplicateApplication
	}

	if err := s.workerRepo.AdjustScoresAtomic(ctx, workerID, constants.ActivityDeltaApply, 0, "APPLY"); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to adjust scores for worker %s after apply", workerID)
	}

	created, err := s.appRepo.GetByShiftAndWorker(ctx, req.ShiftID, workerID)
	if err != nil {
		return nil, err
	}

	worker, _ := s.workerRepo.GetByID(ctx, workerID)
	workerName := ""
	if worker != nil {
		workerName = worker.FirstName + " " + worker.LastName
	}
	s.notifier.Notify(ctx, models.Notification{
		Kind: models.NotifyNewApplication,
		NewApplication: &models.NewApplicationPayload{
			CompanyID:     detail.Shift.CompanyID,
			ShiftID:       detail.Shift.ID,
			ApplicationID: created.ID,
			WorkerName:    workerName,
			ShiftTitle:    detail.Shift.Title,
			MatchScore:    created.MatchScore,
		},
	})

	return created, nil
}

// Confirm is company-initiated: PENDING -> CONFIRMED. The no-overlap
// invariant is checked here and the unique constraint plus the row-version
// check inside ConfirmAtomic keep it race-free.
func (s *ApplicationService) Confirm(ctx context.Context, companyID, applicationID uuid.UUID) (*models.Application, error) {
	app, sh, err := s.loadOwnedByCompany(ctx, companyID, applicationID)
	if err != nil {
		return nil, err
	}
	if sh.Status == models.ShiftStatusClosed || sh.Status == models.ShiftStatusCancelled {
		return nil, utils.ErrShiftNotAccepting
	}

	overlaps, err := s.appRepo.ExistsConfirmedOverlap(ctx, app.WorkerID, sh.StartAt, sh.EndAt, sh.ID)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, utils.ErrOverlappingShift
	}

	updated, _, err := s.appRepo.ConfirmAtomic(ctx, app.ID, app.RowVersion)
	if err != nil {
		return nil, err
	}

	if err := s.workerRepo.AdjustScoresAtomic(ctx, app.WorkerID, constants.ActivityDeltaConfirm, constants.ReliabilityDeltaConfirm, "CONFIRM"); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to adjust scores for worker %s after confirm", app.WorkerID)
	}

	// Contract creation is best-effort: a failure leaves the confirmation in
	// place with a null contract reference.
	hasContract := false
	if doc, cErr := s.contracts.GetOrCreate(ctx, updated); cErr != nil {
		utils.Logger.WithError(cErr).Warnf("Best-effort contract creation failed for application %s", updated.ID)
	} else if doc != nil {
		hasContract = true
		updated.ContractID = &doc.ID
	}

	s.notifier.Notify(ctx, models.Notification{
		Kind: models.NotifyShiftConfirmed,
		ShiftConfirmed: &models.ShiftConfirmedPayload{
			WorkerID:    updated.WorkerID,
			ShiftID:     sh.ID,
			ShiftTitle:  sh.Title,
			StartAt:     sh.StartAt,
			HasContract: hasContract,
		},
	})

	return updated, nil
}

// Reject is company-initiated and PENDING-only; a CONFIRMED application has
// to be cancelled instead.
func (s *ApplicationService) Reject(ctx context.Context, companyID, applicationID uuid.UUID) (*models.Application, error) {
	app, sh, err := s.loadOwnedByCompany(ctx, companyID, applicationID)
	if err != nil {
		return nil, err
	}

	updated, err := s.appRepo.RejectAtomic(ctx, app.ID, app.RowVersion)
	if err != nil {
		return nil, err
	}

	if err := s.workerRepo.AdjustScoresAtomic(ctx, app.WorkerID, constants.ActivityDeltaReject, 0, "REJECT"); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to adjust scores for worker %s after reject", app.WorkerID)
	}

	s.notifier.Notify(ctx, models.Notification{
		Kind: models.NotifyApplicationRejected,
		ApplicationRejected: &models.ApplicationRejectedPayload{
			WorkerID:   updated.WorkerID,
			ShiftID:    sh.ID,
			ShiftTitle: sh.Title,
		},
	})

	return updated, nil
}

// CancelByWorker withdraws a PENDING or CONFIRMED application before the
// shift starts. A CONFIRMED cancellation inside the notice window is late
// and costs reliability.
func (s *ApplicationService) CancelByWorker(ctx context.Context, workerID, applicationID uuid.UUID) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil || app.WorkerID != workerID {
		return nil, utils.ErrNotFound
	}
	sh, err := s.shiftRepo.GetByID(ctx, app.ShiftID)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, utils.ErrNotFound
	}

	now := s.now()
	if !now.Before(sh.StartAt) {
		return nil, utils.ErrShiftAlreadyStarted
	}

	late := isLateCancellation(now, sh, app.Status)
	newStatus := models.ApplicationStatusCancelledByWorker
	eventType := "CANCEL_WORKER"
	reliabilityDelta := 0
	if late {
		newStatus = models.ApplicationStatusWorkerCanceledLate
		eventType = "CANCEL_WORKER_LATE"
		reliabilityDelta = constants.ReliabilityDeltaLateCancel
	}

	updated, err := s.appRepo.CancelAtomic(ctx, app.ID, app.RowVersion, newStatus, models.CancelPartyWorker, now, nil)
	if err != nil {
		return nil, err
	}

	if err := s.workerRepo.AdjustScoresAtomic(ctx, workerID, constants.ActivityDeltaCancel, reliabilityDelta, eventType); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to adjust scores for worker %s after cancel", workerID)
	}

	if vErr := s.contracts.Void(ctx, updated.ID); vErr != nil {
		utils.Logger.WithError(vErr).Warnf("Failed to void contract for application %s", updated.ID)
	}

	s.notifier.Notify(ctx, models.Notification{
		Kind: models.NotifyCancelledByWorker,
		Cancelled: &models.CancelledPayload{
			WorkerID:   workerID,
			CompanyID:  sh.CompanyID,
			ShiftID:    sh.ID,
			ShiftTitle: sh.Title,
			CanceledBy: models.CancelPartyWorker,
			Late:       late,
		},
	})

	return updated, nil
}

// CancelByCompany cancels a single application before shift start. A late
// cancellation of a CONFIRMED application owes compensation when the shift
// declares a nonzero percentage.
func (s *ApplicationService) CancelByCompany(ctx context.Context, companyID, applicationID uuid.UUID) (*models.Application, error) {
	app, sh, err := s.loadOwnedByCompany(ctx, companyID, applicationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !now.Before(sh.StartAt) {
		return nil, utils.ErrShiftAlreadyStarted
	}

	newStatus, compensation := companyCancelOutcome(now, sh, app.Status)

	updated, err := s.appRepo.CancelAtomic(ctx, app.ID, app.RowVersion, newStatus, models.CancelPartyCompany, now, compensation)
	if err != nil {
		return nil, err
	}

	if vErr := s.contracts.Void(ctx, updated.ID); vErr != nil {
		utils.Logger.WithError(vErr).Warnf("Failed to void contract for application %s", updated.ID)
	}

	s.notifyCompanyCancel(ctx, updated, sh)
	return updated, nil
}

// CancelShiftCascade cancels the shift and all its live applications as one
// transactional batch, then fans out notifications post-commit so a partial
// cascade is never observable.
func (s *ApplicationService) CancelShiftCascade(ctx context.Context, companyID, shiftID uuid.UUID) (*models.Shift, error) {
	sh, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if sh == nil || sh.CompanyID != companyID {
		return nil, utils.ErrNotFound
	}

	now := s.now()
	updatedShift, cancelled, err := s.appRepo.CancelShiftCascadeAtomic(ctx, shiftID, sh.RowVersion, now,
		func(app *models.Application, sh *models.Shift) (models.ApplicationStatusType, *float64) {
			if app.Status == models.ApplicationStatusPending {
				return models.ApplicationStatusCancelledByCompany, nil
			}
			return companyCancelOutcome(now, sh, app.Status)
		})
	if err != nil {
		return nil, err
	}

	// post-commit fan-out
	for _, app := range cancelled {
		if vErr := s.contracts.Void(ctx, app.ID); vErr != nil {
			utils.Logger.WithError(vErr).Warnf("Failed to void contract for application %s", app.ID)
		}
		s.notifyCompanyCancel(ctx, app, updatedShift)
	}
	s.notifier.Notify(ctx, models.Notification{
		Kind: models.NotifyShiftCancelled,
		ShiftCancelled: &models.ShiftCancelledPayload{
			ShiftID:       updatedShift.ID,
			ShiftTitle:    updatedShift.Title,
			AffectedCount: len(cancelled),
		},
	})

	return updatedShift, nil
}

// ConfirmWorked records that a confirmed worker actually showed up and
// worked, making the worker "verified" for this company.
func (s *ApplicationService) ConfirmWorked(ctx context.Context, companyID uuid.UUID, req dtos.ConfirmWorkedRequest) (*models.Application, error) {
	app, sh, err := s.loadOwnedByCompany(ctx, companyID, req.ApplicationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if now.Before(sh.StartAt) {
		return nil, utils.ErrWrongStatus
	}

	updated, err := s.appRepo.ConfirmWorkedAtomic(ctx, app.ID, app.RowVersion, now, req.Rating)
	if err != nil {
		return nil, err
	}

	if rErr := s.relRepo.IncrementWorkedCount(ctx, companyID, app.WorkerID); rErr != nil {
		utils.Logger.WithError(rErr).Warnf("Failed to bump worked count for worker %s at company %s", app.WorkerID, companyID)
	}
	if sErr := s.workerRepo.AdjustScoresAtomic(ctx, app.WorkerID, 0, constants.ReliabilityDeltaWorked, "WORKED"); sErr != nil {
		utils.Logger.WithError(sErr).Warnf("Failed to adjust scores for worker %s after worked confirmation", app.WorkerID)
	}

	return updated, nil
}

// ListForWorker returns the worker's own applications, optionally filtered.
func (s *ApplicationService) ListForWorker(ctx context.Context, workerID uuid.UUID, statuses []models.ApplicationStatusType) ([]*models.Application, error) {
	return s.appRepo.ListByWorker(ctx, workerID, statuses)
}

// ListForShift returns the applications on one of the company's own shifts,
// best match first.
func (s *ApplicationService) ListForShift(ctx context.Context, companyID, shiftID uuid.UUID, statuses []models.ApplicationStatusType) ([]*models.Application, error) {
	sh, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if sh == nil || sh.CompanyID != companyID {
		return nil, utils.ErrNotFound
	}
	return s.appRepo.ListByShift(ctx, shiftID, statuses)
}

func (s *ApplicationService) loadOwnedByCompany(ctx context.Context, companyID, applicationID uuid.UUID) (*models.Application, *models.Shift, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	if app == nil {
		return nil, nil, utils.ErrNotFound
	}
	sh, err := s.shiftRepo.GetByID(ctx, app.ShiftID)
	if err != nil {
		return nil, nil, err
	}
	if sh == nil || sh.CompanyID != companyID {
		return nil, nil, utils.ErrNotFound
	}
	return app, sh, nil
}

func (s *ApplicationService) notifyCompanyCancel(ctx context.Context, app *models.Application, sh *models.Shift) {
	kind := models.NotifyCancelledByCompany
	compensation := 0.0
	if app.CompensationAmount != nil && *app.CompensationAmount > 0 {
		kind = models.NotifyCancelledWithComp
		compensation = *app.CompensationAmount
	}
	s.notifier.Notify(ctx, models.Notification{
		Kind: kind,
		Cancelled: &models.CancelledPayload{
			WorkerID:     app.WorkerID,
			CompanyID:    sh.CompanyID,
			ShiftID:      sh.ID,
			ShiftTitle:   sh.Title,
			CanceledBy:   models.CancelPartyCompany,
			Late:         app.Status == models.ApplicationStatusCompanyCanceledLate,
			Compensation: compensation,
		},
	})
}

// isLateCancellation: late iff the application is CONFIRMED and now is
// strictly past the notice boundary. Cancelling exactly on the boundary is
// not late.
func isLateCancellation(now time.Time, sh *models.Shift, status models.ApplicationStatusType) bool {
	if status != models.ApplicationStatusConfirmed {
		return false
	}
	boundary := sh.StartAt.Add(-sh.NoticeWindow.Duration())
	return now.After(boundary)
}

// companyCancelOutcome classifies a company-side cancellation and computes
// the compensation owed, using the worker's effective rate and the shift's
// declared duration.
func companyCancelOutcome(now time.Time, sh *models.Shift, status models.ApplicationStatusType) (models.ApplicationStatusType, *float64) {
	if !isLateCancellation(now, sh, status) {
		return models.ApplicationStatusCancelledByCompany, nil
	}
	if sh.CancellationCompensationPct <= 0 {
		return models.ApplicationStatusCompanyCanceledLate, nil
	}
	amount := RoundMoney(sh.EffectiveHourlyRate() * sh.DurationHours * float64(sh.CancellationCompensationPct) / 100)
	return models.ApplicationStatusCompanyCanceledLate, &amount
}
