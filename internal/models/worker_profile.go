// models/worker_profile.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type WorkerProfile struct {
	Versioned

	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`

	Region string `json:"region"`

	// Certifications
	HasForkliftCert     bool `json:"has_forklift_cert"`   // VZV
	HasSafetyTraining   bool `json:"has_safety_training"` // BOZP
	HasFoodHandlingCard bool `json:"has_food_handling_card"`

	Experience ExperienceLevel `json:"experience"`

	// ActivityScore tracks marketplace engagement, ReliabilityScore tracks
	// follow-through. Both move on apply/confirm/cancel events.
	ActivityScore    int `json:"activity_score"`
	ReliabilityScore int `json:"reliability_score"`

	// Flex preferences; nil means no preference.
	MinHourlyRate         *float64      `json:"min_hourly_rate,omitempty"`
	PreferredContractType *ContractType `json:"preferred_contract_type,omitempty"`
	PreferredNotice       *NoticeWindow `json:"preferred_notice,omitempty"`

	HasTradeLicense bool `json:"has_trade_license"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *WorkerProfile) GetID() string {
	return w.ID.String()
}
