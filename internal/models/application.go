package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatusType string

const (
	ApplicationStatusPending             ApplicationStatusType = "PENDING"
	ApplicationStatusConfirmed           ApplicationStatusType = "CONFIRMED"
	ApplicationStatusRejected            ApplicationStatusType = "REJECTED"
	ApplicationStatusCancelledByWorker   ApplicationStatusType = "CANCELLED_BY_WORKER"
	ApplicationStatusCancelledByCompany  ApplicationStatusType = "CANCELLED_BY_COMPANY"
	ApplicationStatusWorkerCanceledLate  ApplicationStatusType = "WORKER_CANCELED_LATE"
	ApplicationStatusCompanyCanceledLate ApplicationStatusType = "COMPANY_CANCELED_LATE"
)

// IsTerminal reports whether no further transition is allowed from st.
func (st ApplicationStatusType) IsTerminal() bool {
	switch st {
	case ApplicationStatusPending, ApplicationStatusConfirmed:
		return false
	}
	return true
}

type CancelPartyType string

const (
	CancelPartyWorker  CancelPartyType = "WORKER"
	CancelPartyCompany CancelPartyType = "COMPANY"
)

// Application joins a worker to a shift. Unique per (shift_id, worker_id);
// the DB constraint backstops concurrent duplicate applies.
type Application struct {
	Versioned

	ID       uuid.UUID `json:"id"`
	ShiftID  uuid.UUID `json:"shift_id"`
	WorkerID uuid.UUID `json:"worker_id"`

	Status ApplicationStatusType `json:"status"`
	Note   string                `json:"note,omitempty"`

	// MatchScore is computed once at creation and never recomputed.
	MatchScore int `json:"match_score"`

	CanceledBy         *CancelPartyType `json:"canceled_by,omitempty"`
	CanceledAt         *time.Time       `json:"canceled_at,omitempty"`
	CompensationAmount *float64         `json:"compensation_amount,omitempty"`

	WorkedConfirmedAt *time.Time `json:"worked_confirmed_at,omitempty"`
	Rating            *int16     `json:"rating,omitempty"`

	ContractID *uuid.UUID `json:"contract_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Application) GetID() string {
	return a.ID.String()
}
