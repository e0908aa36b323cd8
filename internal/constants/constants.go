package constants

import (
	"time"
)

// General marketplace settings
const (
	DefaultFeedPageSize       = 20
	MaxFeedPageSize           = 100
	DaysToListOpenShiftsRange = 60 // feed query window is [now...now+60d]
)

// Wave release dwell times. A shift that sits in a tier this long becomes
// effectively visible to the next tier even without a manual promotion.
const (
	Wave1Dwell = 24 * time.Hour
	Wave2Dwell = 24 * time.Hour
)

// Contract signing is blocked this close to shift start.
const SigningBufferBeforeStart = 1 * time.Hour

// Score deltas (activity tracks engagement, reliability tracks follow-through)
const (
	ActivityDeltaApply         = 1
	ActivityDeltaConfirm       = 2
	ReliabilityDeltaConfirm    = 2
	ActivityDeltaReject        = -2
	ActivityDeltaCancel        = -2
	ReliabilityDeltaLateCancel = -5
	ReliabilityDeltaWorked     = 1
)

const (
	WorkerScoreMin = 0
	WorkerScoreMax = 100
)

// Narrow-collaboration scheduler defaults
const (
	DefaultCollabCutoffHour = 12 // noon on the day before the shift
	MaxCollabWeeks          = 8  // hard ceiling regardless of group config
)

// Match score component weights; a perfect match sums to 100.
const (
	ScoreWeightRegion        = 20
	ScoreWeightCertification = 15
	ScoreWeightExperience    = 10
	ScoreWeightActivity      = 10
	ScoreWeightReliability   = 15
	ScoreWeightRate          = 20
	ScoreWeightAlignment     = 10
)

// Common concurrency conflict / row-version conflict messages
const (
	ErrMsgNoRowsUpdated                    = "No rows updated"
	ErrMsgRowVersionConflictRefresh        = "The shift has changed, please refresh"
	ErrMsgRowVersionConflictAnotherUpdated = "Another update occurred, please refresh"
)
