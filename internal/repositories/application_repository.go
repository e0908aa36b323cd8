package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/utils"
)

type ApplicationRepository interface {
	// CreateIfNotExists inserts the application unless one already exists for
	// the same (shift_id, worker_id). Returns false when the row was skipped.
	CreateIfNotExists(ctx context.Context, app *models.Application) (bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	GetByShiftAndWorker(ctx context.Context, shiftID, workerID uuid.UUID) (*models.Application, error)

	ListByWorker(ctx context.Context, workerID uuid.UUID, statuses []models.ApplicationStatusType) ([]*models.Application, error)
	ListByShift(ctx context.Context, shiftID uuid.UUID, statuses []models.ApplicationStatusType) ([]*models.Application, error)

	// ExistsConfirmedOverlap reports whether the worker holds a CONFIRMED
	// application on another shift whose interval intersects [start, end).
	ExistsConfirmedOverlap(ctx context.Context, workerID uuid.UUID, start, end time.Time, excludeShiftID uuid.UUID) (bool, error)

	// ConfirmAtomic flips a PENDING application to CONFIRMED and bumps the
	// shift's confirmed count, marking the shift FULL when it fills up.
	ConfirmAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64) (*models.Application, *models.Shift, error)

	RejectAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64) (*models.Application, error)

	// CancelAtomic moves the application to one of the cancelled statuses. If
	// it was CONFIRMED the shift's confirmed count is released and a FULL
	// shift reopens.
	CancelAtomic(
		ctx context.Context,
		appID uuid.UUID,
		expectedVersion int64,
		newStatus models.ApplicationStatusType,
		canceledBy models.CancelPartyType,
		canceledAt time.Time,
		compensation *float64,
	) (*models.Application, error)

	ConfirmWorkedAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64, at time.Time, rating *int16) (*models.Application, error)

	SetContractID(ctx context.Context, appID uuid.UUID, contractID uuid.UUID) error

	// CancelShiftCascadeAtomic cancels the shift and every live application on
	// it in one transaction. The outcome callback decides, per application,
	// the terminal status and the compensation owed.
	CancelShiftCascadeAtomic(
		ctx context.Context,
		shiftID uuid.UUID,
		expectedVersion int64,
		canceledAt time.Time,
		outcome func(app *models.Application, sh *models.Shift) (models.ApplicationStatusType, *float64),
	) (*models.Shift, []*models.Application, error)
}

type applicationRepo struct {
	db DB
}

func NewApplicationRepository(db DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func baseSelectApplication() string {
	return `
        SELECT
            id, shift_id, worker_id, status, note, match_score,
            canceled_by, canceled_at, compensation_amount,
            worked_confirmed_at, rating, contract_id,
            row_version, created_at, updated_at
        FROM applications
    `
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID, &a.ShiftID, &a.WorkerID, &a.Status, &a.Note, &a.MatchScore,
		&a.CanceledBy, &a.CanceledAt, &a.CompensationAmount,
		&a.WorkedConfirmedAt, &a.Rating, &a.ContractID,
		&a.RowVersion, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) CreateIfNotExists(ctx context.Context, app *models.Application) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        INSERT INTO applications (
            id, shift_id, worker_id, status, note, match_score,
            row_version, created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,1,NOW(),NOW()
        )
        ON CONFLICT (shift_id, worker_id) DO NOTHING
    `,
		app.ID, app.ShiftID, app.WorkerID, app.Status, app.Note, app.MatchScore,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	row := r.db.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", id)
	return scanApplication(row)
}

func (r *applicationRepo) GetByShiftAndWorker(ctx context.Context, shiftID, workerID uuid.UUID) (*models.Application, error) {
	row := r.db.QueryRow(ctx, baseSelectApplication()+" WHERE shift_id=$1 AND worker_id=$2", shiftID, workerID)
	return scanApplication(row)
}

func (r *applicationRepo) ListByWorker(ctx context.Context, workerID uuid.UUID, statuses []models.ApplicationStatusType) ([]*models.Application, error) {
	q := baseSelectApplication() + " WHERE worker_id=$1"
	args := []any{workerID}
	if len(statuses) > 0 {
		q += " AND status = ANY($2)"
		args = append(args, statusStrings(statuses))
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *applicationRepo) ListByShift(ctx context.Context, shiftID uuid.UUID, statuses []models.ApplicationStatusType) ([]*models.Application, error) {
	q := baseSelectApplication() + " WHERE shift_id=$1"
	args := []any{shiftID}
	if len(statuses) > 0 {
		q += " AND status = ANY($2)"
		args = append(args, statusStrings(statuses))
	}
	q += " ORDER BY match_score DESC, created_at"

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func statusStrings(statuses []models.ApplicationStatusType) []string {
	out := make([]string, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, string(st))
	}
	return out
}

func collectApplications(rows pgx.Rows) ([]*models.Application, error) {
	var out []*models.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *applicationRepo) ExistsConfirmedOverlap(ctx context.Context, workerID uuid.UUID, start, end time.Time, excludeShiftID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1
            FROM applications a
            JOIN shifts s ON s.id = a.shift_id
            WHERE a.worker_id=$1
              AND a.status='CONFIRMED'
              AND a.shift_id<>$2
              AND s.start_at < $4
              AND s.end_at > $3
        )
    `, workerID, excludeShiftID, start, end).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) ConfirmAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64) (*models.Application, *models.Shift, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	app, err := lockApplication(ctx, tx, appID)
	if err != nil {
		return nil, nil, err
	}
	if app.RowVersion != expectedVersion {
		err = utils.ErrRowVersionConflict
		return app, nil, err
	}
	if app.Status != models.ApplicationStatusPending {
		err = utils.ErrWrongStatus
		return app, nil, err
	}

	row := tx.QueryRow(ctx, baseSelectShift()+" WHERE id=$1 FOR UPDATE", app.ShiftID)
	sh, err := scanShift(row)
	if err != nil {
		return nil, nil, err
	}
	if sh == nil {
		err = pgx.ErrNoRows
		return nil, nil, err
	}
	if sh.Status != models.ShiftStatusOpen {
		err = utils.ErrShiftNotAccepting
		return app, sh, err
	}

	newStatus := models.ShiftStatusOpen
	if sh.ConfirmedCount+1 >= sh.NeededWorkers {
		newStatus = models.ShiftStatusFull
	}

	_, err = tx.Exec(ctx, `
        UPDATE applications
        SET status='CONFIRMED', row_version=row_version+1, updated_at=NOW()
        WHERE id=$1
    `, appID)
	if err != nil {
		return nil, nil, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE shifts
        SET confirmed_count=confirmed_count+1,
            status=$1,
            row_version=row_version+1,
            updated_at=NOW()
        WHERE id=$2
    `, newStatus, sh.ID)
	if err != nil {
		return nil, nil, err
	}

	newApp, err := scanApplication(tx.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", appID))
	if err != nil {
		return nil, nil, err
	}
	newShift, err := scanShift(tx.QueryRow(ctx, baseSelectShift()+" WHERE id=$1", sh.ID))
	return newApp, newShift, err
}

func (r *applicationRepo) RejectAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64) (*models.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	app, err := lockApplication(ctx, tx, appID)
	if err != nil {
		return nil, err
	}
	if app.RowVersion != expectedVersion {
		err = utils.ErrRowVersionConflict
		return app, err
	}
	if app.Status == models.ApplicationStatusConfirmed {
		err = utils.ErrConfirmedCannotReject
		return app, err
	}
	if app.Status != models.ApplicationStatusPending {
		err = utils.ErrWrongStatus
		return app, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE applications
        SET status='REJECTED', row_version=row_version+1, updated_at=NOW()
        WHERE id=$1
    `, appID)
	if err != nil {
		return nil, err
	}
	return scanApplication(tx.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", appID))
}

func (r *applicationRepo) CancelAtomic(
	ctx context.Context,
	appID uuid.UUID,
	expectedVersion int64,
	newStatus models.ApplicationStatusType,
	canceledBy models.CancelPartyType,
	canceledAt time.Time,
	compensation *float64,
) (*models.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	app, err := lockApplication(ctx, tx, appID)
	if err != nil {
		return nil, err
	}
	if app.RowVersion != expectedVersion {
		err = utils.ErrRowVersionConflict
		return app, err
	}
	if app.Status.IsTerminal() {
		err = utils.ErrWrongStatus
		return app, err
	}

	wasConfirmed := app.Status == models.ApplicationStatusConfirmed

	_, err = tx.Exec(ctx, `
        UPDATE applications
        SET status=$1,
            canceled_by=$2,
            canceled_at=$3,
            compensation_amount=$4,
            row_version=row_version+1,
            updated_at=NOW()
        WHERE id=$5
    `, newStatus, canceledBy, canceledAt, compensation, appID)
	if err != nil {
		return nil, err
	}

	if wasConfirmed {
		// release the slot; a FULL shift that has not started reopens
		_, err = tx.Exec(ctx, `
            UPDATE shifts
            SET confirmed_count=GREATEST(confirmed_count-1,0),
                status=CASE WHEN status='FULL' THEN 'OPEN' ELSE status END,
                row_version=row_version+1,
                updated_at=NOW()
            WHERE id=$1
              AND status IN ('OPEN','FULL')
        `, app.ShiftID)
		if err != nil {
			return nil, err
		}
	}

	return scanApplication(tx.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", appID))
}

func (r *applicationRepo) ConfirmWorkedAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64, at time.Time, rating *int16) (*models.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	app, err := lockApplication(ctx, tx, appID)
	if err != nil {
		return nil, err
	}
	if app.RowVersion != expectedVersion {
		err = utils.ErrRowVersionConflict
		return app, err
	}
	if app.Status != models.ApplicationStatusConfirmed {
		err = utils.ErrWrongStatus
		return app, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE applications
        SET worked_confirmed_at=$1,
            rating=$2,
            row_version=row_version+1,
            updated_at=NOW()
        WHERE id=$3
    `, at, rating, appID)
	if err != nil {
		return nil, err
	}
	return scanApplication(tx.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", appID))
}

func (r *applicationRepo) SetContractID(ctx context.Context, appID uuid.UUID, contractID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        UPDATE applications
        SET contract_id=$1, updated_at=NOW()
        WHERE id=$2
    `, contractID, appID)
	return err
}

func (r *applicationRepo) CancelShiftCascadeAtomic(
	ctx context.Context,
	shiftID uuid.UUID,
	expectedVersion int64,
	canceledAt time.Time,
	outcome func(app *models.Application, sh *models.Shift) (models.ApplicationStatusType, *float64),
) (*models.Shift, []*models.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectShift()+" WHERE id=$1 FOR UPDATE", shiftID)
	sh, err := scanShift(row)
	if err != nil {
		return nil, nil, err
	}
	if sh == nil {
		err = pgx.ErrNoRows
		return nil, nil, err
	}
	if sh.RowVersion != expectedVersion {
		err = utils.ErrRowVersionConflict
		return sh, nil, err
	}
	if sh.Status == models.ShiftStatusCancelled || sh.Status == models.ShiftStatusClosed {
		err = utils.ErrWrongStatus
		return sh, nil, err
	}

	rows, err := tx.Query(ctx, baseSelectApplication()+`
        WHERE shift_id=$1
          AND status IN ('PENDING','CONFIRMED')
        ORDER BY created_at
        FOR UPDATE
    `, shiftID)
	if err != nil {
		return nil, nil, err
	}
	live, err := collectApplications(rows)
	rows.Close()
	if err != nil {
		return nil, nil, err
	}

	var cancelled []*models.Application
	for _, app := range live {
		newStatus, comp := outcome(app, sh)
		_, err = tx.Exec(ctx, `
            UPDATE applications
            SET status=$1,
                canceled_by='COMPANY',
                canceled_at=$2,
                compensation_amount=$3,
                row_version=row_version+1,
                updated_at=NOW()
            WHERE id=$4
        `, newStatus, canceledAt, comp, app.ID)
		if err != nil {
			return nil, nil, err
		}
		updated, scanErr := scanApplication(tx.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", app.ID))
		if scanErr != nil {
			err = scanErr
			return nil, nil, err
		}
		cancelled = append(cancelled, updated)
	}

	_, err = tx.Exec(ctx, `
        UPDATE shifts
        SET status='CANCELLED',
            confirmed_count=0,
            row_version=row_version+1,
            updated_at=NOW()
        WHERE id=$1
    `, shiftID)
	if err != nil {
		return nil, nil, err
	}

	newShift, err := scanShift(tx.QueryRow(ctx, baseSelectShift()+" WHERE id=$1", shiftID))
	return newShift, cancelled, err
}

func lockApplication(ctx context.Context, tx pgx.Tx, appID uuid.UUID) (*models.Application, error) {
	row := tx.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1 FOR UPDATE", appID)
	app, err := scanApplication(row)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, pgx.ErrNoRows
	}
	return app, nil
}
