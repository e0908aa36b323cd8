package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/brigadly/backend/internal/constants"
	"github.com/brigadly/backend/internal/models"
)

type WorkerRepository interface {
	Create(ctx context.Context, w *models.WorkerProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.WorkerProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.WorkerProfile, error)

	UpdateIfVersion(ctx context.Context, w *models.WorkerProfile, expectedVersion int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.WorkerProfile) error) error

	// AdjustScoresAtomic moves both scores under a row lock, clamps them to
	// [0,100] and appends a worker_score_events audit row.
	AdjustScoresAtomic(ctx context.Context, workerID uuid.UUID, activityDelta, reliabilityDelta int, eventType string) error
}

type workerRepo struct {
	db DB
	*BaseVersionedRepo[*models.WorkerProfile]
}

func NewWorkerRepository(db DB) WorkerRepository {
	r := &workerRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectWorker()+" WHERE id=$1", scanWorker)
	return r
}

func baseSelectWorker() string {
	return `
        SELECT
            id, email, phone_number, first_name, last_name, region,
            has_forklift_cert, has_safety_training, has_food_handling_card,
            experience, activity_score, reliability_score,
            min_hourly_rate, preferred_contract_type, preferred_notice,
            has_trade_license,
            row_version, created_at, updated_at
        FROM worker_profiles
    `
}

func scanWorker(row pgx.Row) (*models.WorkerProfile, error) {
	var w models.WorkerProfile
	err := row.Scan(
		&w.ID, &w.Email, &w.PhoneNumber, &w.FirstName, &w.LastName, &w.Region,
		&w.HasForkliftCert, &w.HasSafetyTraining, &w.HasFoodHandlingCard,
		&w.Experience, &w.ActivityScore, &w.ReliabilityScore,
		&w.MinHourlyRate, &w.PreferredContractType, &w.PreferredNotice,
		&w.HasTradeLicense,
		&w.RowVersion, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *workerRepo) Create(ctx context.Context, w *models.WorkerProfile) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO worker_profiles (
            id, email, phone_number, first_name, last_name, region,
            has_forklift_cert, has_safety_training, has_food_handling_card,
            experience, activity_score, reliability_score,
            min_hourly_rate, preferred_contract_type, preferred_notice,
            has_trade_license,
            row_version, created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,
            $7,$8,$9,
            $10,$11,$12,
            $13,$14,$15,
            $16,
            1,NOW(),NOW()
        )
    `,
		w.ID, w.Email, w.PhoneNumber, w.FirstName, w.LastName, w.Region,
		w.HasForkliftCert, w.HasSafetyTraining, w.HasFoodHandlingCard,
		w.Experience, w.ActivityScore, w.ReliabilityScore,
		w.MinHourlyRate, w.PreferredContractType, w.PreferredNotice,
		w.HasTradeLicense,
	)
	return err
}

func (r *workerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.WorkerProfile, error) {
	row := r.db.QueryRow(ctx, baseSelectWorker()+" WHERE id=$1", id)
	return scanWorker(row)
}

func (r *workerRepo) GetByEmail(ctx context.Context, email string) (*models.WorkerProfile, error) {
	row := r.db.QueryRow(ctx, baseSelectWorker()+" WHERE email=$1 LIMIT 1", email)
	return scanWorker(row)
}

func (r *workerRepo) UpdateIfVersion(ctx context.Context, w *models.WorkerProfile, expectedVersion int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE worker_profiles
        SET email=$1, phone_number=$2, first_name=$3, last_name=$4, region=$5,
            has_forklift_cert=$6, has_safety_training=$7, has_food_handling_card=$8,
            experience=$9, activity_score=$10, reliability_score=$11,
            min_hourly_rate=$12, preferred_contract_type=$13, preferred_notice=$14,
            has_trade_license=$15,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$16 AND row_version=$17
    `,
		w.Email, w.PhoneNumber, w.FirstName, w.LastName, w.Region,
		w.HasForkliftCert, w.HasSafetyTraining, w.HasFoodHandlingCard,
		w.Experience, w.ActivityScore, w.ReliabilityScore,
		w.MinHourlyRate, w.PreferredContractType, w.PreferredNotice,
		w.HasTradeLicense,
		w.ID, expectedVersion,
	)
}

func (r *workerRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.WorkerProfile) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *workerRepo) AdjustScoresAtomic(ctx context.Context, workerID uuid.UUID, activityDelta, reliabilityDelta int, eventType string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectWorker()+" WHERE id=$1 FOR UPDATE", workerID)
	w, err := scanWorker(row)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("worker not found for ID=%s", workerID)
	}

	oldActivity := w.ActivityScore
	oldReliability := w.ReliabilityScore
	newActivity := clampScore(oldActivity + activityDelta)
	newReliability := clampScore(oldReliability + reliabilityDelta)

	_, err = tx.Exec(ctx, `
        UPDATE worker_profiles
        SET activity_score=$1,
            reliability_score=$2,
            row_version=row_version+1,
            updated_at=NOW()
        WHERE id=$3
    `, newActivity, newReliability, w.ID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO worker_score_events (
            id, worker_id, event_type,
            activity_delta, reliability_delta,
            old_activity, new_activity, old_reliability, new_reliability,
            created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
    `,
		uuid.New(),
		w.ID,
		eventType,
		activityDelta,
		reliabilityDelta,
		oldActivity,
		newActivity,
		oldReliability,
		newReliability,
	)
	return err
}

func clampScore(v int) int {
	if v < constants.WorkerScoreMin {
		return constants.WorkerScoreMin
	}
	if v > constants.WorkerScoreMax {
		return constants.WorkerScoreMax
	}
	return v
}
