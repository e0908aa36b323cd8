package dtos

import (
	"encoding/json"

	"github.com/google/uuid"
)

type ApplyRequest struct {
	ShiftID uuid.UUID `json:"shift_id" validate:"required"`
	Note    string    `json:"note" validate:"max=500"`
}

type ApplicationActionRequest struct {
	ApplicationID uuid.UUID `json:"application_id" validate:"required"`
}

type ConfirmWorkedRequest struct {
	ApplicationID uuid.UUID `json:"application_id" validate:"required"`
	Rating        *int16    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
}

type SignContractRequest struct {
	ApplicationID uuid.UUID       `json:"application_id" validate:"required"`
	SignerName    string          `json:"signer_name" validate:"required,min=1"`
	Strokes       json.RawMessage `json:"strokes" validate:"required"`
}

type BulkApplyRequest struct {
	CompanyID uuid.UUID `json:"company_id" validate:"required"`
	SchemeID  uuid.UUID `json:"scheme_id" validate:"required"`
	ShiftKind string    `json:"shift_kind" validate:"required,oneof=MORNING AFTERNOON NIGHT"`
	Weeks     int       `json:"weeks" validate:"required,gt=0"`
}

// BulkApplyResponse tallies a batch run; the batch never aborts on a single
// failed date.
type BulkApplyResponse struct {
	Applied        int `json:"applied"`
	AlreadyApplied int `json:"already_applied"`
	Failed         int `json:"failed"`
}

type UpsertRelationRequest struct {
	WorkerID     uuid.UUID  `json:"worker_id" validate:"required"`
	Favorite     bool       `json:"favorite"`
	Priority     bool       `json:"priority"`
	NarrowCollab bool       `json:"narrow_collab"`
	GroupID      *uuid.UUID `json:"group_id,omitempty"`
}

type CreateGroupRequest struct {
	Name            string `json:"name" validate:"required,min=1"`
	MaxAdvanceWeeks int    `json:"max_advance_weeks" validate:"required,gt=0,lte=8"`
}

type CreateSchemeRequest struct {
	Name         string  `json:"name" validate:"required,min=1"`
	Weekdays     []int16 `json:"weekdays" validate:"required,min=1,dive,gte=0,lte=6"`
	SkipHolidays bool    `json:"skip_holidays"`
}
