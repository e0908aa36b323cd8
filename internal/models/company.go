package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	Versioned

	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Region string    `json:"region"`

	// Approved companies are the only ones whose shifts enter the feed.
	Approved bool `json:"approved"`

	// CollabCutoffHour is the hour on the day before a shift after which the
	// narrow-collaboration scheduler no longer bulk-applies to it.
	CollabCutoffHour int `json:"collab_cutoff_hour"`

	// Active contract template; nil falls back to the system default.
	ContractTemplateTitle *string `json:"contract_template_title,omitempty"`
	ContractTemplateBody  *string `json:"contract_template_body,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Company) GetID() string {
	return c.ID.String()
}
