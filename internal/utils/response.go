// internal/utils/response.go
package utils

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in the machine-readable `errorCode` field.
const (
	ErrCodeValidation       = "validation_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeWrongStatus      = "wrong_status"
	ErrCodeConflict         = "conflict"
	ErrCodeDeadlineExceeded = "deadline_exceeded"
	ErrCodePolicyViolation  = "policy_violation"
	ErrCodeVersionConflict  = "version_conflict"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeInternal         = "internal_error"
)

type ErrorResponse struct {
	ErrorCode string      `json:"errorCode"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// RespondWithJSON writes the payload as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		Logger.Errorf("Failed to marshal JSON response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"errorCode":"internal_error","message":"failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// RespondErrorWithCode writes a structured error response. devErrs are logged
// server-side only and never leak to the client.
func RespondErrorWithCode(w http.ResponseWriter, status int, errorCode string, publicMessage string, details interface{}, devErrs ...error) {
	for _, devErr := range devErrs {
		if devErr != nil {
			Logger.Errorf("HTTP %d (%s): %v", status, errorCode, devErr)
		}
	}

	RespondWithJSON(w, status, ErrorResponse{
		ErrorCode: errorCode,
		Message:   publicMessage,
		Details:   details,
	})
}
