package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/brigadly/backend/internal/models"
)

type CollabRepository interface {
	CreateGroup(ctx context.Context, g *models.CollabGroup) error
	GetGroupByID(ctx context.Context, id uuid.UUID) (*models.CollabGroup, error)

	CreateScheme(ctx context.Context, s *models.CollabScheme) error
	GetSchemeByID(ctx context.Context, id uuid.UUID) (*models.CollabScheme, error)
	ListSchemesByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.CollabScheme, error)
}

type collabRepo struct {
	db DB
}

func NewCollabRepository(db DB) CollabRepository {
	return &collabRepo{db: db}
}

func (r *collabRepo) CreateGroup(ctx context.Context, g *models.CollabGroup) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO collab_groups (
            id, company_id, name, max_advance_weeks,
            row_version, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,1,NOW(),NOW())
    `, g.ID, g.CompanyID, g.Name, g.MaxAdvanceWeeks)
	return err
}

func (r *collabRepo) GetGroupByID(ctx context.Context, id uuid.UUID) (*models.CollabGroup, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, company_id, name, max_advance_weeks, row_version, created_at, updated_at
        FROM collab_groups
        WHERE id=$1
    `, id)

	var g models.CollabGroup
	err := row.Scan(&g.ID, &g.CompanyID, &g.Name, &g.MaxAdvanceWeeks, &g.RowVersion, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *collabRepo) CreateScheme(ctx context.Context, s *models.CollabScheme) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO collab_schemes (
            id, company_id, name, weekdays, skip_holidays,
            row_version, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,1,NOW(),NOW())
    `, s.ID, s.CompanyID, s.Name, s.Weekdays, s.SkipHolidays)
	return err
}

func scanScheme(row pgx.Row) (*models.CollabScheme, error) {
	var s models.CollabScheme
	var weekdays []int16
	err := row.Scan(&s.ID, &s.CompanyID, &s.Name, &weekdays, &s.SkipHolidays, &s.RowVersion, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	s.Weekdays = weekdays
	return &s, nil
}

func baseSelectScheme() string {
	return `
        SELECT id, company_id, name, weekdays, skip_holidays, row_version, created_at, updated_at
        FROM collab_schemes
    `
}

func (r *collabRepo) GetSchemeByID(ctx context.Context, id uuid.UUID) (*models.CollabScheme, error) {
	row := r.db.QueryRow(ctx, baseSelectScheme()+" WHERE id=$1", id)
	return scanScheme(row)
}

func (r *collabRepo) ListSchemesByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.CollabScheme, error) {
	rows, err := r.db.Query(ctx, baseSelectScheme()+" WHERE company_id=$1 ORDER BY name", companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.CollabScheme
	for rows.Next() {
		s, err := scanScheme(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
