package models

import "time"

/*──────────────────────────────────────────────────────────────────────────────
  Ordinal enums

  These carry an explicit Rank() so comparisons never depend on declaration
  order or on a lookup table somewhere else.
──────────────────────────────────────────────────────────────────────────────*/

type ExperienceLevel string

const (
	ExperienceNone         ExperienceLevel = "NONE"
	ExperienceBasic        ExperienceLevel = "BASIC"
	ExperienceIntermediate ExperienceLevel = "INTERMEDIATE"
	ExperienceAdvanced     ExperienceLevel = "ADVANCED"
)

// Rank returns the position of the level on the ordinal scale.
// Unknown values rank below NONE so they never satisfy a minimum.
func (e ExperienceLevel) Rank() int {
	switch e {
	case ExperienceNone:
		return 0
	case ExperienceBasic:
		return 1
	case ExperienceIntermediate:
		return 2
	case ExperienceAdvanced:
		return 3
	default:
		return -1
	}
}

type NoticeWindow string

const (
	NoticeH12 NoticeWindow = "H12"
	NoticeH24 NoticeWindow = "H24"
	NoticeH48 NoticeWindow = "H48"
)

func (n NoticeWindow) Rank() int {
	switch n {
	case NoticeH12:
		return 0
	case NoticeH24:
		return 1
	case NoticeH48:
		return 2
	default:
		return -1
	}
}

// Duration is the span before shift start inside which a cancellation of a
// confirmed application counts as late.
func (n NoticeWindow) Duration() time.Duration {
	switch n {
	case NoticeH12:
		return 12 * time.Hour
	case NoticeH24:
		return 24 * time.Hour
	case NoticeH48:
		return 48 * time.Hour
	default:
		return 0
	}
}

type WaveTier string

const (
	WaveTier1      WaveTier = "WAVE1"
	WaveTier2      WaveTier = "WAVE2"
	WaveTierPublic WaveTier = "PUBLIC"
)

func (w WaveTier) Rank() int {
	switch w {
	case WaveTier1:
		return 0
	case WaveTier2:
		return 1
	case WaveTierPublic:
		return 2
	default:
		return -1
	}
}

type ContractType string

const (
	ContractTypeDPP   ContractType = "DPP"   // work-performance agreement
	ContractTypeDPC   ContractType = "DPC"   // work-activity agreement
	ContractTypeTrade ContractType = "TRADE" // trade-license invoicing
)

// ShiftKind buckets a shift by its local start hour.
type ShiftKind string

const (
	ShiftKindMorning   ShiftKind = "MORNING"
	ShiftKindAfternoon ShiftKind = "AFTERNOON"
	ShiftKindNight     ShiftKind = "NIGHT"
)

// ShiftKindOf derives the kind from a start time: before 12:00 morning,
// before 18:00 afternoon, else night.
func ShiftKindOf(start time.Time) ShiftKind {
	switch h := start.Hour(); {
	case h < 12:
		return ShiftKindMorning
	case h < 18:
		return ShiftKindAfternoon
	default:
		return ShiftKindNight
	}
}
