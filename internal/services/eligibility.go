package services

import (
	"github.com/brigadly/backend/internal/models"
)

/*
   Eligibility predicates. Stateless and pure; the feed, the detail view and
   the narrow-collab scheduler all run the same gates so a shift can never be
   applied to through one path while being invisible through another.
*/

// MeetsCertifications reports whether the worker holds every certification
// the shift requires.
func MeetsCertifications(w *models.WorkerProfile, s *models.Shift) bool {
	if s.RequiresForklift && !w.HasForkliftCert {
		return false
	}
	if s.RequiresSafety && !w.HasSafetyTraining {
		return false
	}
	if s.RequiresFoodCard && !w.HasFoodHandlingCard {
		return false
	}
	return true
}

// MeetsExperience compares the worker's level against the shift's minimum on
// the ordinal scale. A shift with no minimum gates nobody.
func MeetsExperience(w *models.WorkerProfile, s *models.Shift) bool {
	if s.MinExperience == nil {
		return true
	}
	return w.Experience.Rank() >= s.MinExperience.Rank()
}

// BundleThresholdValid checks that a bundle offer declares at least one
// positive commitment threshold. The worker's actual availability is the
// caller's concern; a bundle that declares no threshold at all is malformed
// and gates everyone out.
func BundleThresholdValid(s *models.Shift) bool {
	if !s.Bundle {
		return true
	}
	if s.BundleMinHours != nil && *s.BundleMinHours > 0 {
		return true
	}
	if s.BundleMinDays != nil && *s.BundleMinDays > 0 {
		return true
	}
	return false
}

// FlexResult carries the outcome of the three independent flex-preference
// checks so callers can report exactly which one failed.
type FlexResult struct {
	ContractTypeOK bool
	NoticeOK       bool
	RateOK         bool
}

func (f FlexResult) OK() bool {
	return f.ContractTypeOK && f.NoticeOK && f.RateOK
}

// CheckFlexPreferences runs the worker's soft preferences against the shift.
// effectiveRate is the rate this worker would actually earn (bundle override
// already applied by the caller).
func CheckFlexPreferences(w *models.WorkerProfile, s *models.Shift, effectiveRate float64) FlexResult {
	res := FlexResult{ContractTypeOK: true, NoticeOK: true, RateOK: true}

	if s.ContractType != nil {
		if *s.ContractType == models.ContractTypeTrade && !w.HasTradeLicense {
			res.ContractTypeOK = false
		}
		if w.PreferredContractType != nil && *w.PreferredContractType != *s.ContractType {
			res.ContractTypeOK = false
		}
	}

	if w.PreferredNotice != nil && s.NoticeWindow.Rank() < w.PreferredNotice.Rank() {
		res.NoticeOK = false
	}

	if w.MinHourlyRate != nil && effectiveRate < *w.MinHourlyRate {
		res.RateOK = false
	}

	return res
}

// IsEligible bundles the hard gates (certifications, experience, bundle
// threshold, flex preferences) into one answer for the feed.
func IsEligible(w *models.WorkerProfile, s *models.Shift) bool {
	return MeetsCertifications(w, s) &&
		MeetsExperience(w, s) &&
		BundleThresholdValid(s) &&
		CheckFlexPreferences(w, s, s.EffectiveHourlyRate()).OK()
}
