// internal/utils/errors.go
package utils

import (
	"errors"

	"github.com/brigadly/backend/internal/models"
)

/*
   Sentinel errors for the staffing engine.
   Controllers can do: if errors.Is(err, ErrXYZ) { ... }

   Not-found and not-owned are deliberately the same sentinel so callers can
   never distinguish "does not exist" from "belongs to someone else".
*/
var (
	ErrNotFound = errors.New("not_found")

	// invalid-state-transition family
	ErrWrongStatus           = errors.New("wrong_status")
	ErrShiftNotAccepting     = errors.New("shift_not_accepting")
	ErrConfirmedCannotReject = errors.New("confirmed_cannot_reject")
	ErrWaveRegression        = errors.New("wave_regression")
	ErrCompanyMustSignFirst  = errors.New("company_must_sign_first")
	ErrContractVoid          = errors.New("contract_void")

	// conflict family
	ErrDuplicateApplication = errors.New("duplicate_application")
	ErrOverlappingShift     = errors.New("overlapping_confirmed_shift")

	// deadline-exceeded family
	ErrShiftAlreadyStarted = errors.New("shift_already_started")
	ErrConfirmDeadline     = errors.New("confirm_deadline_passed")
	ErrSigningWindowClosed = errors.New("signing_window_closed")

	// policy-violation family
	ErrCertificationRequired = errors.New("certification_required")
	ErrExperienceRequired    = errors.New("experience_required")
	ErrFlexContractMismatch  = errors.New("flex_contract_mismatch")
	ErrFlexNoticeMismatch    = errors.New("flex_notice_mismatch")
	ErrFlexRateMismatch      = errors.New("flex_rate_mismatch")
	ErrBundleThresholdUnmet  = errors.New("bundle_threshold_unmet")
	ErrShiftNotReleasedYet   = errors.New("shift_not_released_yet")
	ErrNotCollabWorker       = errors.New("not_collab_worker")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	ErrNoRowsUpdated = errors.New("no_rows_updated")

	ErrInvalidPayload = errors.New("invalid_payload")
)

/*
   RowVersionConflictError is returned when there's a concurrency mismatch.
   It includes the "latest" Shift so the controller can return it to the
   client if desired.
*/
type RowVersionConflictError struct {
	Current *models.Shift
}

func (e *RowVersionConflictError) Error() string {
	return "row_version_conflict"
}

func NewRowVersionConflictError(current *models.Shift) error {
	return &RowVersionConflictError{Current: current}
}
