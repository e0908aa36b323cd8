package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/brigadly/backend/internal/models"
)

type ShiftRepository interface {
	Create(ctx context.Context, s *models.Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shift, error)

	// ListOpenInRegion returns OPEN shifts of approved companies in the given
	// region whose start falls inside [from, to].
	ListOpenInRegion(ctx context.Context, region string, from, to time.Time) ([]*models.Shift, error)

	ListByCompany(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*models.Shift, error)
	ListOpenByCompany(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*models.Shift, error)

	UpdateIfVersion(ctx context.Context, s *models.Shift, expectedVersion int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Shift) error) error

	// CloseStartedShifts retires OPEN and FULL shifts whose start has passed.
	CloseStartedShifts(ctx context.Context, now time.Time) (int64, error)
}

type shiftRepo struct {
	db DB
	*BaseVersionedRepo[*models.Shift]
}

func NewShiftRepository(db DB) ShiftRepository {
	r := &shiftRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectShift()+" WHERE id=$1", scanShift)
	return r
}

func baseSelectShift() string {
	return `
        SELECT
            id, company_id, title, description,
            start_at, end_at, duration_hours, hourly_rate,
            requires_forklift, requires_safety, requires_food_card, min_experience,
            needed_workers, confirmed_count,
            wave_tier, wave_entered_at,
            urgent, urgency_bonus, confirm_by,
            bundle, bundle_min_hours, bundle_min_days, bundle_bonus, bundle_rate,
            contract_type, notice_window, cancellation_compensation_pct,
            status, row_version, created_at, updated_at
        FROM shifts
    `
}

func scanShift(row pgx.Row) (*models.Shift, error) {
	var s models.Shift
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.Title, &s.Description,
		&s.StartAt, &s.EndAt, &s.DurationHours, &s.HourlyRate,
		&s.RequiresForklift, &s.RequiresSafety, &s.RequiresFoodCard, &s.MinExperience,
		&s.NeededWorkers, &s.ConfirmedCount,
		&s.WaveTier, &s.WaveEnteredAt,
		&s.Urgent, &s.UrgencyBonus, &s.ConfirmBy,
		&s.Bundle, &s.BundleMinHours, &s.BundleMinDays, &s.BundleBonus, &s.BundleRate,
		&s.ContractType, &s.NoticeWindow, &s.CancellationCompensationPct,
		&s.Status, &s.RowVersion, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *shiftRepo) Create(ctx context.Context, s *models.Shift) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO shifts (
            id, company_id, title, description,
            start_at, end_at, duration_hours, hourly_rate,
            requires_forklift, requires_safety, requires_food_card, min_experience,
            needed_workers, confirmed_count,
            wave_tier, wave_entered_at,
            urgent, urgency_bonus, confirm_by,
            bundle, bundle_min_hours, bundle_min_days, bundle_bonus, bundle_rate,
            contract_type, notice_window, cancellation_compensation_pct,
            status, row_version, created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,
            $5,$6,$7,$8,
            $9,$10,$11,$12,
            $13,0,
            $14,$15,
            $16,$17,$18,
            $19,$20,$21,$22,$23,
            $24,$25,$26,
            $27,1,NOW(),NOW()
        )
    `,
		s.ID, s.CompanyID, s.Title, s.Description,
		s.StartAt, s.EndAt, s.DurationHours, s.HourlyRate,
		s.RequiresForklift, s.RequiresSafety, s.RequiresFoodCard, s.MinExperience,
		s.NeededWorkers,
		s.WaveTier, s.WaveEnteredAt,
		s.Urgent, s.UrgencyBonus, s.ConfirmBy,
		s.Bundle, s.BundleMinHours, s.BundleMinDays, s.BundleBonus, s.BundleRate,
		s.ContractType, s.NoticeWindow, s.CancellationCompensationPct,
		s.Status,
	)
	return err
}

func (r *shiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	row := r.db.QueryRow(ctx, baseSelectShift()+" WHERE id=$1", id)
	return scanShift(row)
}

func (r *shiftRepo) ListOpenInRegion(ctx context.Context, region string, from, to time.Time) ([]*models.Shift, error) {
	q := baseSelectShift() + `
        WHERE status='OPEN'
          AND start_at >= $2
          AND start_at <= $3
          AND company_id IN (SELECT id FROM companies WHERE approved AND region=$1)
        ORDER BY start_at
    `
	rows, err := r.db.Query(ctx, q, region, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectShifts(rows)
}

func (r *shiftRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*models.Shift, error) {
	q := baseSelectShift() + `
        WHERE company_id=$1
          AND start_at >= $2
          AND start_at <= $3
        ORDER BY start_at
    `
	rows, err := r.db.Query(ctx, q, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectShifts(rows)
}

func (r *shiftRepo) ListOpenByCompany(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*models.Shift, error) {
	q := baseSelectShift() + `
        WHERE company_id=$1
          AND status='OPEN'
          AND start_at >= $2
          AND start_at <= $3
        ORDER BY start_at
    `
	rows, err := r.db.Query(ctx, q, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectShifts(rows)
}

func collectShifts(rows pgx.Rows) ([]*models.Shift, error) {
	var out []*models.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *shiftRepo) UpdateIfVersion(ctx context.Context, s *models.Shift, expectedVersion int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE shifts
        SET title=$1, description=$2,
            start_at=$3, end_at=$4, duration_hours=$5, hourly_rate=$6,
            requires_forklift=$7, requires_safety=$8, requires_food_card=$9, min_experience=$10,
            needed_workers=$11, confirmed_count=$12,
            wave_tier=$13, wave_entered_at=$14,
            urgent=$15, urgency_bonus=$16, confirm_by=$17,
            bundle=$18, bundle_min_hours=$19, bundle_min_days=$20, bundle_bonus=$21, bundle_rate=$22,
            contract_type=$23, notice_window=$24, cancellation_compensation_pct=$25,
            status=$26,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$27 AND row_version=$28
    `,
		s.Title, s.Description,
		s.StartAt, s.EndAt, s.DurationHours, s.HourlyRate,
		s.RequiresForklift, s.RequiresSafety, s.RequiresFoodCard, s.MinExperience,
		s.NeededWorkers, s.ConfirmedCount,
		s.WaveTier, s.WaveEnteredAt,
		s.Urgent, s.UrgencyBonus, s.ConfirmBy,
		s.Bundle, s.BundleMinHours, s.BundleMinDays, s.BundleBonus, s.BundleRate,
		s.ContractType, s.NoticeWindow, s.CancellationCompensationPct,
		s.Status,
		s.ID, expectedVersion,
	)
}

func (r *shiftRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Shift) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *shiftRepo) CloseStartedShifts(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE shifts
        SET status='CLOSED', row_version=row_version+1, updated_at=NOW()
        WHERE status IN ('OPEN','FULL')
          AND start_at <= $1
    `, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
