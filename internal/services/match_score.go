package services

import (
	"math"

	"github.com/brigadly/backend/internal/constants"
	"github.com/brigadly/backend/internal/models"
)

/*
   Relevance scorer. Deterministic: same inputs, same score, no clock and no
   randomness. The score ranks the feed; it never gates visibility.

   Component weights live in constants so a perfect match sums to 100.
*/

// MatchScore rates how attractive a shift is for a worker, in [0,100].
// companyRegion is the region of the shift's owning company; rel may be nil
// when the worker has no relation with the company.
func MatchScore(w *models.WorkerProfile, s *models.Shift, companyRegion string, rel *models.CompanyWorkerRelation) int {
	score := 0.0

	// region
	if w.Region != "" && w.Region == companyRegion {
		score += constants.ScoreWeightRegion
	}

	// certifications: fraction of the required ones the worker holds;
	// nothing required counts as a full match
	score += constants.ScoreWeightCertification * certificationFraction(w, s)

	// experience surplus, diminishing: ADVANCED tops out the component
	expFrac := float64(w.Experience.Rank()) / float64(models.ExperienceAdvanced.Rank())
	if w.Experience.Rank() < 0 {
		expFrac = 0
	}
	score += constants.ScoreWeightExperience * diminishing(expFrac)

	// activity and reliability, diminishing
	score += constants.ScoreWeightActivity * diminishing(float64(w.ActivityScore)/float64(constants.WorkerScoreMax))
	score += constants.ScoreWeightReliability * diminishing(float64(w.ReliabilityScore)/float64(constants.WorkerScoreMax))

	// rate attractiveness relative to the worker's minimum
	score += constants.ScoreWeightRate * rateFraction(w, s.EffectiveHourlyRate())

	// contract-type / notice alignment, with minor relation boosts
	score += alignmentPoints(w, s, rel)

	result := int(math.Round(score))
	if result < 0 {
		return 0
	}
	if result > 100 {
		return 100
	}
	return result
}

func certificationFraction(w *models.WorkerProfile, s *models.Shift) float64 {
	required, held := 0, 0
	if s.RequiresForklift {
		required++
		if w.HasForkliftCert {
			held++
		}
	}
	if s.RequiresSafety {
		required++
		if w.HasSafetyTraining {
			held++
		}
	}
	if s.RequiresFoodCard {
		required++
		if w.HasFoodHandlingCard {
			held++
		}
	}
	if required == 0 {
		return 1
	}
	return float64(held) / float64(required)
}

// rateFraction: no declared minimum means any rate is attractive. Meeting the
// minimum exactly earns half the component; a rate at least double the
// minimum earns the whole of it.
func rateFraction(w *models.WorkerProfile, effectiveRate float64) float64 {
	if w.MinHourlyRate == nil || *w.MinHourlyRate <= 0 {
		return 1
	}
	minRate := *w.MinHourlyRate
	if effectiveRate < minRate {
		return 0
	}
	surplus := (effectiveRate - minRate) / minRate
	if surplus > 1 {
		surplus = 1
	}
	return 0.5 + 0.5*surplus
}

func alignmentPoints(w *models.WorkerProfile, s *models.Shift, rel *models.CompanyWorkerRelation) float64 {
	points := 0.0

	if s.ContractType == nil || w.PreferredContractType == nil || *w.PreferredContractType == *s.ContractType {
		points += 4
	}
	if w.PreferredNotice == nil || s.NoticeWindow.Rank() >= w.PreferredNotice.Rank() {
		points += 3
	}
	if rel != nil && rel.Favorite {
		points += 2
	}
	if rel.IsPriority() {
		points += 1
	}

	if points > constants.ScoreWeightAlignment {
		points = constants.ScoreWeightAlignment
	}
	return points
}
