package models

import (
	"time"

	"github.com/google/uuid"
)

type ShiftStatusType string

const (
	ShiftStatusOpen      ShiftStatusType = "OPEN"
	ShiftStatusFull      ShiftStatusType = "FULL"
	ShiftStatusClosed    ShiftStatusType = "CLOSED"
	ShiftStatusCancelled ShiftStatusType = "CANCELLED"
)

// Shift is a posted work opportunity. EndAt is always StartAt plus
// DurationHours; the service layer derives it on create and keeps the two in
// sync on update.
type Shift struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`

	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`

	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	DurationHours float64   `json:"duration_hours"`
	HourlyRate    float64   `json:"hourly_rate"`

	RequiresForklift bool             `json:"requires_forklift"`
	RequiresSafety   bool             `json:"requires_safety"`
	RequiresFoodCard bool             `json:"requires_food_card"`
	MinExperience    *ExperienceLevel `json:"min_experience,omitempty"`

	NeededWorkers  int `json:"needed_workers"`
	ConfirmedCount int `json:"confirmed_count"`

	WaveTier      WaveTier  `json:"wave_tier"`
	WaveEnteredAt time.Time `json:"wave_entered_at"`

	Urgent       bool       `json:"urgent"`
	UrgencyBonus float64    `json:"urgency_bonus"`
	ConfirmBy    *time.Time `json:"confirm_by,omitempty"`

	Bundle         bool     `json:"bundle"`
	BundleMinHours *int     `json:"bundle_min_hours,omitempty"`
	BundleMinDays  *int     `json:"bundle_min_days,omitempty"`
	BundleBonus    float64  `json:"bundle_bonus"`
	BundleRate     *float64 `json:"bundle_rate,omitempty"`

	ContractType *ContractType `json:"contract_type,omitempty"`
	NoticeWindow NoticeWindow  `json:"notice_window"`

	CancellationCompensationPct int `json:"cancellation_compensation_pct"`

	Status ShiftStatusType `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Shift) GetID() string {
	return s.ID.String()
}

// EffectiveHourlyRate is the rate a worker is actually paid: the bundle
// override when one is declared, otherwise the base rate.
func (s *Shift) EffectiveHourlyRate() float64 {
	if s.Bundle && s.BundleRate != nil && *s.BundleRate > 0 {
		return *s.BundleRate
	}
	return s.HourlyRate
}
