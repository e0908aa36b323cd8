package services

import (
	"time"

	"github.com/brigadly/backend/internal/constants"
	"github.com/brigadly/backend/internal/models"
)

/*
   Wave visibility. A shift enters a nominal tier and, after a fixed dwell,
   becomes effectively visible to the next tier even if nobody promoted it
   manually. The effective tier is computed on demand from timestamps; no
   timer mutates the stored tier. Manual promotion monotonicity is enforced
   at the company mutation boundary (shift service), not here.
*/

// WaveConfig is passed explicitly into the components that resolve
// visibility. No process-wide registry.
type WaveConfig struct {
	Wave1Dwell time.Duration
	Wave2Dwell time.Duration
}

func DefaultWaveConfig() WaveConfig {
	return WaveConfig{
		Wave1Dwell: constants.Wave1Dwell,
		Wave2Dwell: constants.Wave2Dwell,
	}
}

// EffectiveTier advances the nominal tier through the dwell windows elapsed
// since enteredAt. It never regresses as now increases.
func EffectiveTier(nominal models.WaveTier, enteredAt, now time.Time, cfg WaveConfig) models.WaveTier {
	elapsed := now.Sub(enteredAt)

	switch nominal {
	case models.WaveTier1:
		if elapsed >= cfg.Wave1Dwell+cfg.Wave2Dwell {
			return models.WaveTierPublic
		}
		if elapsed >= cfg.Wave1Dwell {
			return models.WaveTier2
		}
		return models.WaveTier1
	case models.WaveTier2:
		if elapsed >= cfg.Wave2Dwell {
			return models.WaveTierPublic
		}
		return models.WaveTier2
	default:
		return models.WaveTierPublic
	}
}

// VisibilityFlags are the per-(company, worker) facts the predicate needs.
type VisibilityFlags struct {
	HasWorked bool // at least one worked-and-confirmed shift with the company
	Priority  bool // manually flagged by the company for early access
}

// CanSee is the single visibility predicate shared by the feed, the detail
// view and the narrow-collab scheduler.
func CanSee(effective models.WaveTier, f VisibilityFlags) bool {
	switch effective {
	case models.WaveTier1:
		return f.Priority
	case models.WaveTier2:
		return f.Priority || f.HasWorked
	default:
		return true
	}
}
