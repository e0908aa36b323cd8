package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/utils"
)

func TestListOpenShiftsFilters(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")

	visible := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)

	// different region
	praha := f.addCompany("Praha", true)
	f.addShift(praha, testNow.Add(48*time.Hour), 8, 200)

	// unapproved company
	pending := f.addCompany("Brno", false)
	f.addShift(pending, testNow.Add(48*time.Hour), 8, 200)

	// certification the worker lacks
	forklift := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)
	forklift.RequiresForklift = true

	// first wave, fresh, and the worker has no relation
	wave1 := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)
	wave1.WaveTier = models.WaveTier1

	// confirm-by deadline already passed
	missed := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)
	missed.ConfirmBy = utils.Ptr(testNow.Add(-time.Hour))

	resp, err := f.feed.ListOpenShifts(ctx, worker.ID, dtos.FeedQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	require.Equal(t, visible.ID, resp.Results[0].Shift.ID)
}

func TestListOpenShiftsOrdering(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")
	worker.MinHourlyRate = utils.Ptr(100.0)

	// exact minimum rate scores lower than double the minimum
	exactLater := f.addShift(company, testNow.Add(72*time.Hour), 8, 100)
	generous := f.addShift(company, testNow.Add(96*time.Hour), 8, 200)
	exactSooner := f.addShift(company, testNow.Add(48*time.Hour), 8, 100)

	resp, err := f.feed.ListOpenShifts(ctx, worker.ID, dtos.FeedQuery{})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)

	// best score first, then earlier start among equals
	require.Equal(t, generous.ID, resp.Results[0].Shift.ID)
	require.Equal(t, exactSooner.ID, resp.Results[1].Shift.ID)
	require.Equal(t, exactLater.ID, resp.Results[2].Shift.ID)
}

func TestListOpenShiftsPaging(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")
	for i := 0; i < 3; i++ {
		f.addShift(company, testNow.Add(time.Duration(24*(i+1))*time.Hour), 8, 200)
	}

	first, err := f.feed.ListOpenShifts(ctx, worker.ID, dtos.FeedQuery{Page: 0, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 3, first.Total)
	require.Len(t, first.Results, 2)

	second, err := f.feed.ListOpenShifts(ctx, worker.ID, dtos.FeedQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, second.Results, 1)

	beyond, err := f.feed.ListOpenShifts(ctx, worker.ID, dtos.FeedQuery{Page: 5, PageSize: 2})
	require.NoError(t, err)
	require.Empty(t, beyond.Results)
}

func TestGetShiftDetailRefusalReasons(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	worker := f.addWorker("Brno")

	t.Run("unknown shift", func(t *testing.T) {
		_, err := f.feed.GetShiftDetail(ctx, worker.ID, uuid.New())
		require.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("unapproved company looks like not found", func(t *testing.T) {
		pending := f.addCompany("Brno", false)
		sh := f.addShift(pending, testNow.Add(48*time.Hour), 8, 200)
		_, err := f.feed.GetShiftDetail(ctx, worker.ID, sh.ID)
		require.ErrorIs(t, err, utils.ErrNotFound)
	})

	company := f.addCompany("Brno", true)

	t.Run("closed shift", func(t *testing.T) {
		sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)
		sh.Status = models.ShiftStatusClosed
		_, err := f.feed.GetShiftDetail(ctx, worker.ID, sh.ID)
		require.ErrorIs(t, err, utils.ErrShiftNotAccepting)
	})

	t.Run("already started", func(t *testing.T) {
		sh := f.addShift(company, testNow.Add(-time.Hour), 8, 200)
		_, err := f.feed.GetShiftDetail(ctx, worker.ID, sh.ID)
		require.ErrorIs(t, err, utils.ErrShiftAlreadyStarted)
	})

	t.Run("confirm deadline passed", func(t *testing.T) {
		sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)
		sh.ConfirmBy = utils.Ptr(testNow.Add(-time.Minute))
		_, err := f.feed.GetShiftDetail(ctx, worker.ID, sh.ID)
		require.ErrorIs(t, err, utils.ErrConfirmDeadline)
	})

	t.Run("missing certification", func(t *testing.T) {
		sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)
		sh.RequiresForklift = true
		_, err := f.feed.GetShiftDetail(ctx, worker.ID, sh.ID)
		require.ErrorIs(t, err, utils.ErrCertificationRequired)
	})

	t.Run("insufficient experience", func(t *testing.T) {
		sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)
		sh.MinExperience = utils.Ptr(models.ExperienceAdvanced)
		_, err := f.feed.GetShiftDetail(ctx, worker.ID, sh.ID)
		require.ErrorIs(t, err, utils.ErrExperienceRequired)
	})

	t.Run("rate below worker minimum", func(t *testing.T) {
		picky := f.addWorker("Brno")
		picky.MinHourlyRate = utils.Ptr(500.0)
		sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)
		_, err := f.feed.GetShiftDetail(ctx, picky.ID, sh.ID)
		require.ErrorIs(t, err, utils.ErrFlexRateMismatch)
	})

	t.Run("first wave not released yet", func(t *testing.T) {
		sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)
		sh.WaveTier = models.WaveTier1
		_, err := f.feed.GetShiftDetail(ctx, worker.ID, sh.ID)
		require.ErrorIs(t, err, utils.ErrShiftNotReleasedYet)
	})
}

func TestGetShiftDetailPriorityWorkerSeesFirstWave(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")
	sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)
	sh.WaveTier = models.WaveTier1

	_, err := f.feed.GetShiftDetail(ctx, worker.ID, sh.ID)
	require.ErrorIs(t, err, utils.ErrShiftNotReleasedYet)

	_ = f.rels.Upsert(ctx, &models.CompanyWorkerRelation{
		ID:        uuid.New(),
		CompanyID: company.ID,
		WorkerID:  worker.ID,
		Priority:  true,
	})

	detail, err := f.feed.GetShiftDetail(ctx, worker.ID, sh.ID)
	require.NoError(t, err)
	require.Equal(t, models.WaveTier1, detail.EffectiveTier)
}

func TestGetShiftDetailApplicantBypass(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")
	sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)
	f.addPendingApplication(sh, worker)

	// the shift closes and grows a requirement the worker never met; the
	// applicant still sees it behind their own application
	sh.Status = models.ShiftStatusClosed
	sh.RequiresForklift = true

	detail, err := f.feed.GetShiftDetail(ctx, worker.ID, sh.ID)
	require.NoError(t, err)
	require.Equal(t, sh.ID, detail.Shift.ID)
}

func TestFeedUsesBundleRateAsEffectiveRate(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")
	sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 150)
	sh.Bundle = true
	sh.BundleMinHours = utils.Ptr(18)
	sh.BundleRate = utils.Ptr(195.0)

	detail, err := f.feed.GetShiftDetail(ctx, worker.ID, sh.ID)
	require.NoError(t, err)
	require.Equal(t, 195.0, detail.EffectiveRate)
}
