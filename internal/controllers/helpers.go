package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/brigadly/backend/internal/middleware"
	"github.com/brigadly/backend/internal/utils"
)

var validate = validator.New()

// contextUserID pulls the authenticated subject out of the request context and
// writes the 401 itself when it is missing or malformed.
func contextUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	v := r.Context().Value(middleware.ContextKeyUserID)
	if v == nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(v.(string))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Malformed userID in token", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate decodes the JSON body into dst and runs struct validation.
// On failure it writes the 400 and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid JSON body", nil, err)
		return false
	}
	if err := validate.StructCtx(r.Context(), dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", validationErrors, nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid request data", nil, err)
		}
		return false
	}
	return true
}

func pathUUID(w http.ResponseWriter, vars map[string]string, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(vars[key])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid "+key+" in path", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

// deniedErrs map to 400: the request is well-formed but the engine's rules
// refuse it in the current state.
var deniedErrs = []error{
	utils.ErrWrongStatus,
	utils.ErrShiftNotAccepting,
	utils.ErrConfirmedCannotReject,
	utils.ErrWaveRegression,
	utils.ErrCompanyMustSignFirst,
	utils.ErrContractVoid,
	utils.ErrShiftAlreadyStarted,
	utils.ErrConfirmDeadline,
	utils.ErrSigningWindowClosed,
	utils.ErrCertificationRequired,
	utils.ErrExperienceRequired,
	utils.ErrFlexContractMismatch,
	utils.ErrFlexNoticeMismatch,
	utils.ErrFlexRateMismatch,
	utils.ErrBundleThresholdUnmet,
	utils.ErrShiftNotReleasedYet,
	utils.ErrNotCollabWorker,
	utils.ErrInvalidPayload,
}

// respondServiceError translates service sentinels into HTTP responses.
// publicMsg is the client-facing text for the non-conflict cases.
func respondServiceError(w http.ResponseWriter, err error, publicMsg string) {
	var rvc *utils.RowVersionConflictError
	if errors.As(err, &rvc) {
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeVersionConflict,
			"Another update occurred, please refresh", rvc.Current, err,
		)
		return
	}
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, publicMsg, nil, err)
	case errors.Is(err, utils.ErrRowVersionConflict), errors.Is(err, utils.ErrNoRowsUpdated):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeVersionConflict,
			"Another update occurred, please refresh", nil, err,
		)
	case errors.Is(err, utils.ErrDuplicateApplication), errors.Is(err, utils.ErrOverlappingShift):
		utils.RespondErrorWithCode(w, http.StatusConflict, err.Error(), publicMsg, nil, err)
	default:
		for _, sentinel := range deniedErrs {
			if errors.Is(err, sentinel) {
				utils.RespondErrorWithCode(w, http.StatusBadRequest, err.Error(), publicMsg, nil, err)
				return
			}
		}
		utils.Logger.WithError(err).Error(publicMsg)
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, publicMsg, nil, err)
	}
}
