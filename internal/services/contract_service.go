package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brigadly/backend/internal/constants"
	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/repositories"
	"github.com/brigadly/backend/internal/utils"
)

const (
	defaultContractTitle = "Short-Term Shift Work Agreement"
	defaultContractBody  = `This agreement covers a single shift engagement between the company and the worker.
The company engages the worker for the shift identified below, at the stated hourly rate.
The worker agrees to perform the shift personally and to observe the company's workplace rules.`
)

// ContractService owns the dual-signature document lifecycle. Documents are
// created at most once per application; a snapshot of the company template is
// rendered at creation and never changes afterwards.
type ContractService struct {
	contractRepo repositories.ContractRepository
	appRepo      repositories.ApplicationRepository
	shiftRepo    repositories.ShiftRepository
	companyRepo  repositories.CompanyRepository
	notifier     Notifier

	now func() time.Time
}

func NewContractService(
	contractRepo repositories.ContractRepository,
	appRepo repositories.ApplicationRepository,
	shiftRepo repositories.ShiftRepository,
	companyRepo repositories.CompanyRepository,
	notifier Notifier,
) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		appRepo:      appRepo,
		shiftRepo:    shiftRepo,
		companyRepo:  companyRepo,
		notifier:     notifier,
		now:          time.Now,
	}
}

// GetForWorker returns (creating if absent) the contract behind one of the
// worker's own applications.
func (s *ContractService) GetForWorker(ctx context.Context, workerID, applicationID uuid.UUID) (*models.ContractDocument, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil || app.WorkerID != workerID {
		return nil, utils.ErrNotFound
	}
	return s.GetOrCreate(ctx, app)
}

// GetForCompany returns (creating if absent) the contract behind an
// application on one of the company's own shifts.
func (s *ContractService) GetForCompany(ctx context.Context, companyID, applicationID uuid.UUID) (*models.ContractDocument, error) {
	app, _, err := s.loadOwnedByCompany(ctx, companyID, applicationID)
	if err != nil {
		return nil, err
	}
	return s.GetOrCreate(ctx, app)
}

// GetOrCreate is idempotent: the unique constraint on application_id makes
// concurrent creations converge on a single document. An existing document
// is always returned, but a new one is only ever minted for a CONFIRMED
// application; the document of a cancelled application stays readable (and
// VOID) without a fresh signable one appearing behind it.
func (s *ContractService) GetOrCreate(ctx context.Context, app *models.Application) (*models.ContractDocument, error) {
	existing, err := s.contractRepo.GetByApplicationID(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if app.Status != models.ApplicationStatusConfirmed {
		return nil, utils.ErrWrongStatus
	}

	sh, err := s.shiftRepo.GetByID(ctx, app.ShiftID)
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
	if company == nil {
		return nil, utils.ErrNotFound
	}

	title, body := renderContract(company, sh)
	doc := &models.ContractDocument{
		ID:            uuid.New(),
		ApplicationID: app.ID,
		Title:         title,
		Body:          body,
		ContentHash:   hashContent(title, body),
		Status:        models.ContractStatusPendingCompany,
	}

	inserted, err := s.contractRepo.CreateIfNotExists(ctx, doc)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// lost the race; the winner's document is the document
		return s.contractRepo.GetByApplicationID(ctx, app.ID)
	}

	if err := s.appRepo.SetContractID(ctx, app.ID, doc.ID); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to backlink contract %s on application %s", doc.ID, app.ID)
	}
	return s.contractRepo.GetByApplicationID(ctx, app.ID)
}

// SignByCompany moves PENDING_COMPANY to SIGNED_BY_COMPANY (or straight to
// COMPLETED if a worker signature is somehow already present). Re-signing is
// a no-op returning the document.
func (s *ContractService) SignByCompany(ctx context.Context, companyID uuid.UUID, req dtos.SignContractRequest, ip, userAgent string) (*models.ContractDocument, error) {
	app, sh, err := s.loadOwnedByCompany(ctx, companyID, req.ApplicationID)
	if err != nil {
		return nil, err
	}

	doc, err := s.GetOrCreate(ctx, app)
	if err != nil {
		return nil, err
	}
	if doc.Status == models.ContractStatusVoid {
		return doc, utils.ErrContractVoid
	}
	if doc.CompanySignature != nil {
		return doc, nil
	}
	if err := s.checkSigningWindow(sh); err != nil {
		return doc, err
	}

	sig := s.buildSignature(req, ip, userAgent)
	err = s.contractRepo.UpdateWithRetry(ctx, doc.ID, func(c *models.ContractDocument) error {
		if c.Status == models.ContractStatusVoid {
			return utils.ErrContractVoid
		}
		if c.CompanySignature != nil {
			return nil
		}
		c.CompanySignature = &sig
		if c.WorkerSignature != nil {
			c.Status = models.ContractStatusCompleted
		} else {
			c.Status = models.ContractStatusSignedByCompany
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.contractRepo.GetByID(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	switch updated.Status {
	case models.ContractStatusSignedByCompany:
		s.notifier.Notify(ctx, models.Notification{
			Kind: models.NotifyContractReady,
			ContractReady: &models.ContractReadyPayload{
				WorkerID:   app.WorkerID,
				ContractID: updated.ID,
				ShiftTitle: sh.Title,
			},
		})
	case models.ContractStatusCompleted:
		s.notifyCompleted(ctx, app, sh, updated)
	}
	return updated, nil
}

// SignByWorker requires the company signature to already be in place.
func (s *ContractService) SignByWorker(ctx context.Context, workerID uuid.UUID, req dtos.SignContractRequest, ip, userAgent string) (*models.ContractDocument, error) {
	app, err := s.appRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app == nil || app.WorkerID != workerID {
		return nil, utils.ErrNotFound
	}

	doc, err := s.contractRepo.GetByApplicationID(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, utils.ErrNotFound
	}
	if doc.Status == models.ContractStatusVoid {
		return doc, utils.ErrContractVoid
	}
	if doc.WorkerSignature != nil {
		return doc, nil
	}
	if doc.CompanySignature == nil {
		return doc, utils.ErrCompanyMustSignFirst
	}

	sh, err := s.shiftRepo.GetByID(ctx, app.ShiftID)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, utils.ErrNotFound
	}
	if err := s.checkSigningWindow(sh); err != nil {
		return doc, err
	}

	sig := s.buildSignature(req, ip, userAgent)
	err = s.contractRepo.UpdateWithRetry(ctx, doc.ID, func(c *models.ContractDocument) error {
		if c.Status == models.ContractStatusVoid {
			return utils.ErrContractVoid
		}
		if c.WorkerSignature != nil {
			return nil
		}
		if c.CompanySignature == nil {
			return utils.ErrCompanyMustSignFirst
		}
		c.WorkerSignature = &sig
		c.Status = models.ContractStatusCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.contractRepo.GetByID(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if updated.Status == models.ContractStatusCompleted {
		s.notifyCompleted(ctx, app, sh, updated)
	}
	return updated, nil
}

// Void terminates the document when its application or shift is cancelled.
// Missing documents are fine; a VOID one stays VOID.
func (s *ContractService) Void(ctx context.Context, applicationID uuid.UUID) error {
	doc, err := s.contractRepo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return err
	}
	if doc == nil || doc.Status == models.ContractStatusVoid {
		return nil
	}
	return s.contractRepo.UpdateWithRetry(ctx, doc.ID, func(c *models.ContractDocument) error {
		c.Status = models.ContractStatusVoid
		return nil
	})
}

func (s *ContractService) loadOwnedByCompany(ctx context.Context, companyID, applicationID uuid.UUID) (*models.Application, *models.Shift, error) {
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

func (s *ContractService) checkSigningWindow(sh *models.Shift) error {
	if !s.now().Before(sh.StartAt.Add(-constants.SigningBufferBeforeStart)) {
		return utils.ErrSigningWindowClosed
	}
	return nil
}

func (s *ContractService) buildSignature(req dtos.SignContractRequest, ip, userAgent string) models.Signature {
	sum := sha256.Sum256(req.Strokes)
	return models.Signature{
		SignerName:  req.SignerName,
		Strokes:     req.Strokes,
		StrokesHash: hex.EncodeToString(sum[:]),
		IPAddress:   ip,
		UserAgent:   userAgent,
		SignedAt:    s.now().UTC(),
	}
}

func (s *ContractService) notifyCompleted(ctx context.Context, app *models.Application, sh *models.Shift, doc *models.ContractDocument) {
	s.notifier.Notify(ctx, models.Notification{
		Kind: models.NotifyContractCompleted,
		ContractCompleted: &models.ContractCompletedPayload{
			WorkerID:   app.WorkerID,
			CompanyID:  sh.CompanyID,
			ContractID: doc.ID,
		},
	})
}

func renderContract(company *models.Company, sh *models.Shift) (title, body string) {
	shiftFacts := fmt.Sprintf(
		"Shift: %s\nStart: %s\nDuration: %.1f hours\nHourly rate: %.2f",
		sh.Title, sh.StartAt.Format(time.RFC3339), sh.DurationHours, sh.EffectiveHourlyRate(),
	)

	if company.ContractTemplateTitle != nil && *company.ContractTemplateTitle != "" &&
		company.ContractTemplateBody != nil && *company.ContractTemplateBody != "" {
		return *company.ContractTemplateTitle, *company.ContractTemplateBody + "\n\n" + shiftFacts
	}
	return defaultContractTitle, defaultContractBody + "\n\n" + shiftFacts
}

func hashContent(title, body string) string {
	sum := sha256.Sum256([]byte(title + "\n" + body))
	return hex.EncodeToString(sum[:])
}
