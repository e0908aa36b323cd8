package models

import (
	"time"

	"github.com/google/uuid"
)

/*
Notifications are a closed set of variants: one kind constant plus one payload
struct per kind. Dispatch is best-effort and fire-and-forget; the engine never
waits on delivery.
*/

type NotificationKind string

const (
	NotifyNewApplication      NotificationKind = "NEW_APPLICATION"
	NotifyShiftConfirmed      NotificationKind = "SHIFT_CONFIRMED"
	NotifyApplicationRejected NotificationKind = "APPLICATION_REJECTED"
	NotifyCancelledByWorker   NotificationKind = "CANCELLED_BY_WORKER"
	NotifyCancelledByCompany  NotificationKind = "CANCELLED_BY_COMPANY"
	NotifyCancelledWithComp   NotificationKind = "CANCELLED_WITH_COMPENSATION"
	NotifyContractReady       NotificationKind = "CONTRACT_READY"
	NotifyContractCompleted   NotificationKind = "CONTRACT_COMPLETED"
	NotifyShiftCancelled      NotificationKind = "SHIFT_CANCELLED"
)

type Notification struct {
	Kind NotificationKind

	// Exactly one of the payload pointers below is set, matching Kind.
	NewApplication      *NewApplicationPayload
	ShiftConfirmed      *ShiftConfirmedPayload
	ApplicationRejected *ApplicationRejectedPayload
	Cancelled           *CancelledPayload
	ContractReady       *ContractReadyPayload
	ContractCompleted   *ContractCompletedPayload
	ShiftCancelled      *ShiftCancelledPayload
}

type NewApplicationPayload struct {
	CompanyID     uuid.UUID
	ShiftID       uuid.UUID
	ApplicationID uuid.UUID
	WorkerName    string
	ShiftTitle    string
	MatchScore    int
}

type ShiftConfirmedPayload struct {
	WorkerID    uuid.UUID
	ShiftID     uuid.UUID
	ShiftTitle  string
	StartAt     time.Time
	HasContract bool
}

type ApplicationRejectedPayload struct {
	WorkerID   uuid.UUID
	ShiftID    uuid.UUID
	ShiftTitle string
}

type CancelledPayload struct {
	WorkerID     uuid.UUID
	CompanyID    uuid.UUID
	ShiftID      uuid.UUID
	ShiftTitle   string
	CanceledBy   CancelPartyType
	Late         bool
	Compensation float64
}

type ContractReadyPayload struct {
	WorkerID   uuid.UUID
	ContractID uuid.UUID
	ShiftTitle string
}

type ContractCompletedPayload struct {
	WorkerID   uuid.UUID
	CompanyID  uuid.UUID
	ContractID uuid.UUID
}

type ShiftCancelledPayload struct {
	ShiftID       uuid.UUID
	ShiftTitle    string
	AffectedCount int
}
