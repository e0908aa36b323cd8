package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/brigadly/backend/internal/models"
)

// CreateShiftRequest posts a new shift. EndAt is derived server-side from
// StartAt + DurationHours.
type CreateShiftRequest struct {
	Title       string  `json:"title" validate:"required,min=1"`
	Description *string `json:"description,omitempty"`

	StartAt       time.Time `json:"start_at" validate:"required"`
	DurationHours float64   `json:"duration_hours" validate:"required,gt=0,lte=24"`
	HourlyRate    float64   `json:"hourly_rate" validate:"required,gt=0"`

	RequiresForklift bool                    `json:"requires_forklift"`
	RequiresSafety   bool                    `json:"requires_safety"`
	RequiresFoodCard bool                    `json:"requires_food_card"`
	MinExperience    *models.ExperienceLevel `json:"min_experience,omitempty" validate:"omitempty,oneof=NONE BASIC INTERMEDIATE ADVANCED"`

	NeededWorkers int `json:"needed_workers" validate:"required,gt=0"`

	WaveTier models.WaveTier `json:"wave_tier" validate:"required,oneof=WAVE1 WAVE2 PUBLIC"`

	Urgent       bool       `json:"urgent"`
	UrgencyBonus float64    `json:"urgency_bonus" validate:"gte=0"`
	ConfirmBy    *time.Time `json:"confirm_by,omitempty"`

	Bundle         bool     `json:"bundle"`
	BundleMinHours *int     `json:"bundle_min_hours,omitempty" validate:"omitempty,gt=0"`
	BundleMinDays  *int     `json:"bundle_min_days,omitempty" validate:"omitempty,gt=0"`
	BundleBonus    float64  `json:"bundle_bonus" validate:"gte=0"`
	BundleRate     *float64 `json:"bundle_rate,omitempty" validate:"omitempty,gt=0"`

	ContractType *models.ContractType `json:"contract_type,omitempty" validate:"omitempty,oneof=DPP DPC TRADE"`
	NoticeWindow models.NoticeWindow  `json:"notice_window" validate:"required,oneof=H12 H24 H48"`

	CancellationCompensationPct int `json:"cancellation_compensation_pct" validate:"gte=0,lte=100"`
}

type UpdateNeededWorkersRequest struct {
	ShiftID       uuid.UUID `json:"shift_id" validate:"required"`
	NeededWorkers int       `json:"needed_workers" validate:"required,gt=0"`
}

type PromoteWaveRequest struct {
	ShiftID uuid.UUID       `json:"shift_id" validate:"required"`
	Tier    models.WaveTier `json:"tier" validate:"required,oneof=WAVE1 WAVE2 PUBLIC"`
}

type ShiftActionRequest struct {
	ShiftID uuid.UUID `json:"shift_id" validate:"required"`
}

// FeedQuery pages the worker's open-shift feed.
type FeedQuery struct {
	Page     int `json:"page" validate:"gte=0"`
	PageSize int `json:"page_size" validate:"gte=0"`
}

// FeedShiftDTO is one feed entry: the shift plus the per-worker view of it.
type FeedShiftDTO struct {
	Shift         *models.Shift   `json:"shift"`
	EffectiveTier models.WaveTier `json:"effective_tier"`
	EffectiveRate float64         `json:"effective_rate"`
	MatchScore    int             `json:"match_score"`
}

type FeedResponse struct {
	Results []FeedShiftDTO `json:"results"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
}
