package models

import (
	"time"

	"github.com/google/uuid"
)

// CollabGroup caps how many weeks ahead its members may bulk-apply.
type CollabGroup struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`

	MaxAdvanceWeeks int `json:"max_advance_weeks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *CollabGroup) GetID() string {
	return g.ID.String()
}

// CollabScheme is a weekly day-of-week pattern matched against a shift kind
// chosen per bulk-apply request.
type CollabScheme struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`

	Weekdays     []int16 `json:"weekdays"` // 0=Sunday .. 6=Saturday, matches time.Weekday
	SkipHolidays bool    `json:"skip_holidays"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *CollabScheme) GetID() string {
	return s.ID.String()
}
