package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brigadly/backend/internal/dtos"
	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/utils"
)

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func TestApplyCreatesPendingApplication(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")
	sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)

	app, err := f.appSvc.Apply(ctx, worker.ID, dtos.ApplyRequest{ShiftID: sh.ID, Note: "can start early"})
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusPending, app.Status)
	require.Equal(t, "can start early", app.Note)
	require.Greater(t, app.MatchScore, 0)

	require.Equal(t, 51, f.workers.workers[worker.ID].ActivityScore, "apply pays +1 activity")
	require.Contains(t, f.notifier.kinds(), models.NotifyNewApplication)
}

func TestApplyTwiceIsDuplicate(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")
	sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)

	_, err := f.appSvc.Apply(ctx, worker.ID, dtos.ApplyRequest{ShiftID: sh.ID})
	require.NoError(t, err)

	_, err = f.appSvc.Apply(ctx, worker.ID, dtos.ApplyRequest{ShiftID: sh.ID})
	require.ErrorIs(t, err, utils.ErrDuplicateApplication)
}

func TestConfirmCreatesContractAndFillsShift(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)
	sh.NeededWorkers = 1

	worker := f.addWorker("Brno")
	app := f.addPendingApplication(sh, worker)

	updated, err := f.appSvc.Confirm(ctx, company.ID, app.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusConfirmed, updated.Status)
	require.NotNil(t, updated.ContractID, "confirmation creates the contract")

	doc, err := f.contracts.GetByApplicationID(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Equal(t, models.ContractStatusPendingCompany, doc.Status)

	require.Equal(t, 1, sh.ConfirmedCount)
	require.Equal(t, models.ShiftStatusFull, sh.Status, "last slot flips the shift to FULL")

	w := f.workers.workers[worker.ID]
	require.Equal(t, 52, w.ActivityScore)
	require.Equal(t, 52, w.ReliabilityScore)
	require.Contains(t, f.notifier.kinds(), models.NotifyShiftConfirmed)
}

func TestConfirmRejectsOverlappingConfirmedShift(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")

	// worker already confirmed on 10:00-18:00 two days out
	dayStart := testNow.Add(48 * time.Hour)
	first := f.addShift(company, dayStart, 8, 200)
	firstApp := f.addPendingApplication(first, worker)
	_, err := f.appSvc.Confirm(ctx, company.ID, firstApp.ID)
	require.NoError(t, err)

	// overlapping 14:00-22:00 the same day
	overlapping := f.addShift(company, dayStart.Add(4*time.Hour), 8, 200)
	overlappingApp := f.addPendingApplication(overlapping, worker)
	_, err = f.appSvc.Confirm(ctx, company.ID, overlappingApp.ID)
	require.ErrorIs(t, err, utils.ErrOverlappingShift)

	// back-to-back 18:00-22:00 shares only the boundary instant and is fine
	adjacent := f.addShift(company, dayStart.Add(8*time.Hour), 4, 200)
	adjacentApp := f.addPendingApplication(adjacent, worker)
	_, err = f.appSvc.Confirm(ctx, company.ID, adjacentApp.ID)
	require.NoError(t, err)
}

func TestRejectIsPendingOnly(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")
	sh := f.addShift(company, testNow.Add(48*time.Hour), 8, 200)

	app := f.addPendingApplication(sh, worker)
	updated, err := f.appSvc.Reject(ctx, company.ID, app.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusRejected, updated.Status)
	require.Equal(t, 48, f.workers.workers[worker.ID].ActivityScore, "rejection costs 2 activity")

	other := f.addWorker("Brno")
	confirmed := f.addPendingApplication(sh, other)
	_, err = f.appSvc.Confirm(ctx, company.ID, confirmed.ID)
	require.NoError(t, err)

	_, err = f.appSvc.Reject(ctx, company.ID, confirmed.ID)
	require.ErrorIs(t, err, utils.ErrConfirmedCannotReject)
}

func TestCancelByWorkerOnNoticeBoundaryIsNotLate(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")

	// H24 notice, start exactly 24h out: the boundary itself is on time
	sh := f.addShift(company, testNow.Add(24*time.Hour), 8, 200)
	app := f.addPendingApplication(sh, worker)
	_, err := f.appSvc.Confirm(ctx, company.ID, app.ID)
	require.NoError(t, err)

	updated, err := f.appSvc.CancelByWorker(ctx, worker.ID, app.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusCancelledByWorker, updated.Status)

	w := f.workers.workers[worker.ID]
	require.Equal(t, 50, w.ActivityScore)    // 50 +2 confirm -2 cancel
	require.Equal(t, 52, w.ReliabilityScore, "an on-time cancel does not touch reliability")
}

func TestCancelByWorkerInsideNoticeWindowIsLate(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")

	sh := f.addShift(company, testNow.Add(24*time.Hour-time.Second), 8, 200)
	app := f.addPendingApplication(sh, worker)
	_, err := f.appSvc.Confirm(ctx, company.ID, app.ID)
	require.NoError(t, err)

	updated, err := f.appSvc.CancelByWorker(ctx, worker.ID, app.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusWorkerCanceledLate, updated.Status)

	w := f.workers.workers[worker.ID]
	require.Equal(t, 50, w.ActivityScore)    // 50 +2 confirm -2 cancel
	require.Equal(t, 47, w.ReliabilityScore) // 50 +2 confirm -5 late

	require.Equal(t, 0, sh.ConfirmedCount, "the slot is released")
	require.Equal(t, models.ShiftStatusOpen, sh.Status)
}

func TestCancelByWorkerAfterStartFails(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")
	sh := f.addShift(company, testNow.Add(time.Hour), 8, 200)
	app := f.addPendingApplication(sh, worker)

	f.now = sh.StartAt
	_, err := f.appSvc.CancelByWorker(ctx, worker.ID, app.ID)
	require.ErrorIs(t, err, utils.ErrShiftAlreadyStarted)
}

func TestCancelByCompanyLateOwesCompensation(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")

	// 4h at 20/h, 50% compensation, cancelled 2h before start under H24 notice
	sh := f.addShift(company, testNow.Add(2*time.Hour), 4, 20)
	sh.CancellationCompensationPct = 50

	app := f.addPendingApplication(sh, worker)
	_, err := f.appSvc.Confirm(ctx, company.ID, app.ID)
	require.NoError(t, err)

	updated, err := f.appSvc.CancelByCompany(ctx, company.ID, app.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusCompanyCanceledLate, updated.Status)
	require.NotNil(t, updated.CompensationAmount)
	require.Equal(t, 40.0, *updated.CompensationAmount)
	require.Contains(t, f.notifier.kinds(), models.NotifyCancelledWithComp)
}

func TestCancelByCompanyEarlyOwesNothing(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")

	sh := f.addShift(company, testNow.Add(72*time.Hour), 4, 20)
	sh.CancellationCompensationPct = 50

	app := f.addPendingApplication(sh, worker)
	_, err := f.appSvc.Confirm(ctx, company.ID, app.ID)
	require.NoError(t, err)

	updated, err := f.appSvc.CancelByCompany(ctx, company.ID, app.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusCancelledByCompany, updated.Status)
	require.Nil(t, updated.CompensationAmount)
}

func TestCancelShiftCascade(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	pendingWorker := f.addWorker("Brno")
	confirmedWorker := f.addWorker("Brno")

	sh := f.addShift(company, testNow.Add(2*time.Hour), 4, 20)
	sh.CancellationCompensationPct = 50

	pending := f.addPendingApplication(sh, pendingWorker)
	confirmed := f.addPendingApplication(sh, confirmedWorker)
	_, err := f.appSvc.Confirm(ctx, company.ID, confirmed.ID)
	require.NoError(t, err)

	updatedShift, err := f.appSvc.CancelShiftCascade(ctx, company.ID, sh.ID)
	require.NoError(t, err)
	require.Equal(t, models.ShiftStatusCancelled, updatedShift.Status)
	require.Equal(t, 0, updatedShift.ConfirmedCount)

	// the pending application is cancelled without compensation
	require.Equal(t, models.ApplicationStatusCancelledByCompany, f.apps.apps[pending.ID].Status)
	require.Nil(t, f.apps.apps[pending.ID].CompensationAmount)

	// the confirmed one is inside the notice window and gets paid
	require.Equal(t, models.ApplicationStatusCompanyCanceledLate, f.apps.apps[confirmed.ID].Status)
	require.NotNil(t, f.apps.apps[confirmed.ID].CompensationAmount)
	require.Equal(t, 40.0, *f.apps.apps[confirmed.ID].CompensationAmount)

	require.Contains(t, f.notifier.kinds(), models.NotifyShiftCancelled)
}

func TestCancelShiftCascadeRequiresOwnership(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	owner := f.addCompany("Brno", true)
	intruder := f.addCompany("Brno", true)
	sh := f.addShift(owner, testNow.Add(48*time.Hour), 8, 200)

	_, err := f.appSvc.CancelShiftCascade(ctx, intruder.ID, sh.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestConfirmWorked(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	worker := f.addWorker("Brno")
	sh := f.addShift(company, testNow.Add(time.Hour), 8, 200)
	app := f.addPendingApplication(sh, worker)
	_, err := f.appSvc.Confirm(ctx, company.ID, app.ID)
	require.NoError(t, err)

	// too early
	_, err = f.appSvc.ConfirmWorked(ctx, company.ID, dtos.ConfirmWorkedRequest{ApplicationID: app.ID})
	require.ErrorIs(t, err, utils.ErrWrongStatus)

	f.now = sh.StartAt.Add(9 * time.Hour)
	rating := int16(5)
	updated, err := f.appSvc.ConfirmWorked(ctx, company.ID, dtos.ConfirmWorkedRequest{ApplicationID: app.ID, Rating: &rating})
	require.NoError(t, err)
	require.NotNil(t, updated.WorkedConfirmedAt)
	require.Equal(t, int16(5), *updated.Rating)

	rel, err := f.rels.GetByCompanyAndWorker(ctx, company.ID, worker.ID)
	require.NoError(t, err)
	require.True(t, rel.HasWorked(), "a worked shift verifies the worker for the company")
	require.Equal(t, 53, f.workers.workers[worker.ID].ReliabilityScore) // 50 +2 confirm +1 worked
}
