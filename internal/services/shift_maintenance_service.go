package services

import (
	"context"
	"time"

	"github.com/brigadly/backend/internal/repositories"
	"github.com/brigadly/backend/internal/utils"
)

// ShiftMaintenanceService runs the daily catalog sweep. Wave promotion and
// lateness stay on-demand computations; the only thing the sweep does is
// retire shifts whose start has passed without being filled or closed.
type ShiftMaintenanceService struct {
	shiftRepo repositories.ShiftRepository

	now func() time.Time
}

func NewShiftMaintenanceService(shiftRepo repositories.ShiftRepository) *ShiftMaintenanceService {
	return &ShiftMaintenanceService{shiftRepo: shiftRepo, now: time.Now}
}

func (s *ShiftMaintenanceService) CloseStartedShifts(ctx context.Context) {
	count, err := s.shiftRepo.CloseStartedShifts(ctx, s.now())
	if err != nil {
		utils.Logger.WithError(err).Error("Daily shift sweep failed")
		return
	}
	if count > 0 {
		utils.Logger.Infof("Daily shift sweep closed %d started shifts", count)
	}
}
