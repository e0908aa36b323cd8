package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/repositories"
	"github.com/brigadly/backend/internal/utils"
)

// Fixed IDs so re-seeding an existing database is a no-op.
var (
	seedCompanyID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	seedGroupID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	seedSchemeID  = uuid.MustParse("33333333-3333-3333-3333-333333333333")

	seedWorkerAnnaID  = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaa1")
	seedWorkerPetrID  = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaa2")
	seedWorkerJanaID  = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaa3")
	seedShiftMorning  = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbb1")
	seedShiftEvening  = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbb2")
	seedShiftNextWeek = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbb3")
)

// SeedAllTestData inserts a small but complete local dataset: one approved
// company with a collab group and scheme, three workers in the same region
// and a few open shifts across the waves.
func SeedAllTestData(
	ctx context.Context,
	companyRepo repositories.CompanyRepository,
	workerRepo repositories.WorkerRepository,
	shiftRepo repositories.ShiftRepository,
	relRepo repositories.RelationRepository,
	collabRepo repositories.CollabRepository,
) error {
	if err := seedCompany(ctx, companyRepo); err != nil {
		return err
	}
	if err := seedCollab(ctx, collabRepo); err != nil {
		return err
	}
	if err := seedWorkers(ctx, workerRepo); err != nil {
		return err
	}
	if err := seedRelations(ctx, relRepo); err != nil {
		return err
	}
	return seedShifts(ctx, shiftRepo)
}

func seedCompany(ctx context.Context, repo repositories.CompanyRepository) error {
	existing, err := repo.GetByID(ctx, seedCompanyID)
	if err != nil {
		return err
	}
	if existing != nil {
		utils.Logger.Info("Seed company already present, skipping")
		return nil
	}
	return repo.Create(ctx, &models.Company{
		ID:               seedCompanyID,
		Name:             "Sklady Morava s.r.o.",
		Region:           "Brno",
		Approved:         true,
		CollabCutoffHour: 12,
	})
}

func seedCollab(ctx context.Context, repo repositories.CollabRepository) error {
	group, err := repo.GetGroupByID(ctx, seedGroupID)
	if err != nil {
		return err
	}
	if group == nil {
		if err := repo.CreateGroup(ctx, &models.CollabGroup{
			ID:              seedGroupID,
			CompanyID:       seedCompanyID,
			Name:            "Warehouse regulars",
			MaxAdvanceWeeks: 4,
		}); err != nil {
			return err
		}
	}

	scheme, err := repo.GetSchemeByID(ctx, seedSchemeID)
	if err != nil {
		return err
	}
	if scheme == nil {
		if err := repo.CreateScheme(ctx, &models.CollabScheme{
			ID:           seedSchemeID,
			CompanyID:    seedCompanyID,
			Name:         "Mon/Wed/Fri mornings",
			Weekdays:     []int16{1, 3, 5},
			SkipHolidays: true,
		}); err != nil {
			return err
		}
	}
	return nil
}

func seedWorkers(ctx context.Context, repo repositories.WorkerRepository) error {
	workers := []*models.WorkerProfile{
		{
			ID:                seedWorkerAnnaID,
			Email:             "anna.novakova@example.com",
			PhoneNumber:       "+420601111111",
			FirstName:         "Anna",
			LastName:          "Nováková",
			Region:            "Brno",
			HasForkliftCert:   true,
			HasSafetyTraining: true,
			Experience:        models.ExperienceIntermediate,
			ActivityScore:     50,
			ReliabilityScore:  50,
		},
		{
			ID:                  seedWorkerPetrID,
			Email:               "petr.svoboda@example.com",
			PhoneNumber:         "+420602222222",
			FirstName:           "Petr",
			LastName:            "Svoboda",
			Region:              "Brno",
			HasSafetyTraining:   true,
			HasFoodHandlingCard: true,
			Experience:          models.ExperienceBasic,
			ActivityScore:       50,
			ReliabilityScore:    50,
			MinHourlyRate:       utils.Ptr(180.0),
		},
		{
			ID:               seedWorkerJanaID,
			Email:            "jana.dvorakova@example.com",
			PhoneNumber:      "+420603333333",
			FirstName:        "Jana",
			LastName:         "Dvořáková",
			Region:           "Praha",
			Experience:       models.ExperienceNone,
			ActivityScore:    50,
			ReliabilityScore: 50,
		},
	}
	for _, w := range workers {
		existing, err := repo.GetByID(ctx, w.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := repo.Create(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

func seedRelations(ctx context.Context, repo repositories.RelationRepository) error {
	// Anna is the company's priority collab worker; Petr is merely a favorite.
	if err := repo.Upsert(ctx, &models.CompanyWorkerRelation{
		ID:           uuid.New(),
		CompanyID:    seedCompanyID,
		WorkerID:     seedWorkerAnnaID,
		Favorite:     true,
		Priority:     true,
		NarrowCollab: true,
		GroupID:      utils.Ptr(seedGroupID),
	}); err != nil {
		return err
	}
	return repo.Upsert(ctx, &models.CompanyWorkerRelation{
		ID:        uuid.New(),
		CompanyID: seedCompanyID,
		WorkerID:  seedWorkerPetrID,
		Favorite:  true,
	})
}

func seedShifts(ctx context.Context, repo repositories.ShiftRepository) error {
	now := time.Now()
	nextMorning := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, time.Local).AddDate(0, 0, 1)

	shifts := []*models.Shift{
		{
			ID:                          seedShiftMorning,
			CompanyID:                   seedCompanyID,
			Title:                       "Warehouse picker, morning",
			StartAt:                     nextMorning,
			EndAt:                       nextMorning.Add(8 * time.Hour),
			DurationHours:               8,
			HourlyRate:                  190,
			RequiresSafety:              true,
			NeededWorkers:               3,
			WaveTier:                    models.WaveTier1,
			WaveEnteredAt:               now,
			NoticeWindow:                models.NoticeH24,
			CancellationCompensationPct: 50,
			Status:                      models.ShiftStatusOpen,
		},
		{
			ID:                          seedShiftEvening,
			CompanyID:                   seedCompanyID,
			Title:                       "Forklift operator, evening",
			StartAt:                     nextMorning.Add(14 * time.Hour),
			EndAt:                       nextMorning.Add(22 * time.Hour),
			DurationHours:               8,
			HourlyRate:                  230,
			RequiresForklift:            true,
			RequiresSafety:              true,
			MinExperience:               utils.Ptr(models.ExperienceIntermediate),
			NeededWorkers:               1,
			WaveTier:                    models.WaveTierPublic,
			WaveEnteredAt:               now,
			Urgent:                      true,
			UrgencyBonus:                30,
			NoticeWindow:                models.NoticeH12,
			CancellationCompensationPct: 100,
			Status:                      models.ShiftStatusOpen,
		},
		{
			ID:                          seedShiftNextWeek,
			CompanyID:                   seedCompanyID,
			Title:                       "Inventory count, bundled week",
			StartAt:                     nextMorning.AddDate(0, 0, 7),
			EndAt:                       nextMorning.AddDate(0, 0, 7).Add(6 * time.Hour),
			DurationHours:               6,
			HourlyRate:                  175,
			NeededWorkers:               5,
			WaveTier:                    models.WaveTier2,
			WaveEnteredAt:               now,
			Bundle:                      true,
			BundleMinHours:              utils.Ptr(18),
			BundleBonus:                 500,
			BundleRate:                  utils.Ptr(195.0),
			NoticeWindow:                models.NoticeH48,
			CancellationCompensationPct: 30,
			Status:                      models.ShiftStatusOpen,
		},
	}
	for _, sh := range shifts {
		existing, err := repo.GetByID(ctx, sh.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := repo.Create(ctx, sh); err != nil {
			return err
		}
	}
	return nil
}
