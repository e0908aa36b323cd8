package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/brigadly/backend/internal/models"
)

type RelationRepository interface {
	// Upsert creates the relation or updates its flags in place. The
	// (company_id, worker_id) pair is unique.
	Upsert(ctx context.Context, rel *models.CompanyWorkerRelation) error

	GetByCompanyAndWorker(ctx context.Context, companyID, workerID uuid.UUID) (*models.CompanyWorkerRelation, error)
	ListByWorker(ctx context.Context, workerID uuid.UUID) ([]*models.CompanyWorkerRelation, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*models.CompanyWorkerRelation, error)

	// IncrementWorkedCount bumps worked_shifts_count, creating the relation
	// on first completed shift.
	IncrementWorkedCount(ctx context.Context, companyID, workerID uuid.UUID) error
}

type relationRepo struct {
	db DB
}

func NewRelationRepository(db DB) RelationRepository {
	return &relationRepo{db: db}
}

func baseSelectRelation() string {
	return `
        SELECT
            id, company_id, worker_id,
            favorite, priority, narrow_collab, group_id,
            worked_shifts_count,
            row_version, created_at, updated_at
        FROM company_worker_relations
    `
}

func scanRelation(row pgx.Row) (*models.CompanyWorkerRelation, error) {
	var rel models.CompanyWorkerRelation
	err := row.Scan(
		&rel.ID, &rel.CompanyID, &rel.WorkerID,
		&rel.Favorite, &rel.Priority, &rel.NarrowCollab, &rel.GroupID,
		&rel.WorkedShiftsCount,
		&rel.RowVersion, &rel.CreatedAt, &rel.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

func (r *relationRepo) Upsert(ctx context.Context, rel *models.CompanyWorkerRelation) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO company_worker_relations (
            id, company_id, worker_id,
            favorite, priority, narrow_collab, group_id,
            worked_shifts_count,
            row_version, created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,0,1,NOW(),NOW()
        )
        ON CONFLICT (company_id, worker_id) DO UPDATE
        SET favorite=EXCLUDED.favorite,
            priority=EXCLUDED.priority,
            narrow_collab=EXCLUDED.narrow_collab,
            group_id=EXCLUDED.group_id,
            row_version=company_worker_relations.row_version+1,
            updated_at=NOW()
    `,
		rel.ID, rel.CompanyID, rel.WorkerID,
		rel.Favorite, rel.Priority, rel.NarrowCollab, rel.GroupID,
	)
	return err
}

func (r *relationRepo) GetByCompanyAndWorker(ctx context.Context, companyID, workerID uuid.UUID) (*models.CompanyWorkerRelation, error) {
	row := r.db.QueryRow(ctx, baseSelectRelation()+" WHERE company_id=$1 AND worker_id=$2", companyID, workerID)
	return scanRelation(row)
}

func (r *relationRepo) ListByWorker(ctx context.Context, workerID uuid.UUID) ([]*models.CompanyWorkerRelation, error) {
	rows, err := r.db.Query(ctx, baseSelectRelation()+" WHERE worker_id=$1", workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRelations(rows)
}

func (r *relationRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*models.CompanyWorkerRelation, error) {
	rows, err := r.db.Query(ctx, baseSelectRelation()+" WHERE group_id=$1 AND narrow_collab", groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRelations(rows)
}

func collectRelations(rows pgx.Rows) ([]*models.CompanyWorkerRelation, error) {
	var out []*models.CompanyWorkerRelation
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, rows.Err()
}

func (r *relationRepo) IncrementWorkedCount(ctx context.Context, companyID, workerID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO company_worker_relations (
            id, company_id, worker_id,
            favorite, priority, narrow_collab, group_id,
            worked_shifts_count,
            row_version, created_at, updated_at
        ) VALUES (
            $1,$2,$3,FALSE,FALSE,FALSE,NULL,1,1,NOW(),NOW()
        )
        ON CONFLICT (company_id, worker_id) DO UPDATE
        SET worked_shifts_count=company_worker_relations.worked_shifts_count+1,
            row_version=company_worker_relations.row_version+1,
            updated_at=NOW()
    `, uuid.New(), companyID, workerID)
	return err
}
