package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brigadly/backend/internal/models"
)

func TestEffectiveTierDwellProgression(t *testing.T) {
	cfg := WaveConfig{Wave1Dwell: 24 * time.Hour, Wave2Dwell: 24 * time.Hour}
	entered := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		nominal models.WaveTier
		elapsed time.Duration
		want    models.WaveTier
	}{
		{"wave1 fresh", models.WaveTier1, 0, models.WaveTier1},
		{"wave1 just before dwell", models.WaveTier1, 24*time.Hour - time.Second, models.WaveTier1},
		{"wave1 at dwell", models.WaveTier1, 24 * time.Hour, models.WaveTier2},
		{"wave1 after both dwells", models.WaveTier1, 48 * time.Hour, models.WaveTierPublic},
		{"wave2 fresh", models.WaveTier2, 0, models.WaveTier2},
		{"wave2 at dwell", models.WaveTier2, 24 * time.Hour, models.WaveTierPublic},
		{"public stays public", models.WaveTierPublic, 0, models.WaveTierPublic},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EffectiveTier(tc.nominal, entered, entered.Add(tc.elapsed), cfg)
			require.Equal(t, tc.want, got)
		})
	}
}

// The effective tier must never regress as the clock advances.
func TestEffectiveTierMonotonic(t *testing.T) {
	cfg := DefaultWaveConfig()
	entered := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	prev := EffectiveTier(models.WaveTier1, entered, entered, cfg)
	for h := 1; h <= 72; h++ {
		cur := EffectiveTier(models.WaveTier1, entered, entered.Add(time.Duration(h)*time.Hour), cfg)
		require.GreaterOrEqual(t, cur.Rank(), prev.Rank(), "tier regressed at hour %d", h)
		prev = cur
	}
}

func TestCanSeeMatrix(t *testing.T) {
	nobody := VisibilityFlags{}
	priority := VisibilityFlags{Priority: true}
	worked := VisibilityFlags{HasWorked: true}

	// WAVE1: priority only
	require.True(t, CanSee(models.WaveTier1, priority))
	require.False(t, CanSee(models.WaveTier1, worked))
	require.False(t, CanSee(models.WaveTier1, nobody))

	// WAVE2: priority or verified
	require.True(t, CanSee(models.WaveTier2, priority))
	require.True(t, CanSee(models.WaveTier2, worked))
	require.False(t, CanSee(models.WaveTier2, nobody))

	// PUBLIC: everyone
	require.True(t, CanSee(models.WaveTierPublic, nobody))
}
