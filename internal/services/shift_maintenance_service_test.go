package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brigadly/backend/internal/models"
)

func TestCloseStartedShiftsSweep(t *testing.T) {
	f := newFixture(testNow)
	ctx := context.Background()

	company := f.addCompany("Brno", true)
	started := f.addShift(company, testNow.Add(-2*time.Hour), 8, 200)
	upcoming := f.addShift(company, testNow.Add(2*time.Hour), 8, 200)
	cancelled := f.addShift(company, testNow.Add(-2*time.Hour), 8, 200)
	cancelled.Status = models.ShiftStatusCancelled

	m := NewShiftMaintenanceService(f.shifts)
	m.now = func() time.Time { return f.now }
	m.CloseStartedShifts(ctx)

	require.Equal(t, models.ShiftStatusClosed, started.Status)
	require.Equal(t, models.ShiftStatusOpen, upcoming.Status)
	require.Equal(t, models.ShiftStatusCancelled, cancelled.Status, "terminal shifts are left alone")
}
