package models

import (
	"time"

	"github.com/google/uuid"
)

// CompanyWorkerRelation is the optional per-(company, worker) record. It only
// feeds visibility/eligibility flags; scoring reads it for minor boosts.
// Unique per (company_id, worker_id).
type CompanyWorkerRelation struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	WorkerID  uuid.UUID `json:"worker_id"`

	Favorite bool `json:"favorite"`
	Priority bool `json:"priority"`

	NarrowCollab bool       `json:"narrow_collab"`
	GroupID      *uuid.UUID `json:"group_id,omitempty"`

	// WorkedShiftsCount > 0 makes the worker "verified" for this company.
	WorkedShiftsCount int `json:"worked_shifts_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *CompanyWorkerRelation) GetID() string {
	return r.ID.String()
}

func (r *CompanyWorkerRelation) HasWorked() bool {
	return r != nil && r.WorkedShiftsCount > 0
}

func (r *CompanyWorkerRelation) IsPriority() bool {
	return r != nil && r.Priority
}
