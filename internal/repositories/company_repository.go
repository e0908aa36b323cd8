package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/brigadly/backend/internal/models"
)

type CompanyRepository interface {
	Create(ctx context.Context, c *models.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)

	UpdateIfVersion(ctx context.Context, c *models.Company, expectedVersion int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Company) error) error
}

type companyRepo struct {
	db DB
	*BaseVersionedRepo[*models.Company]
}

func NewCompanyRepository(db DB) CompanyRepository {
	r := &companyRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectCompany()+" WHERE id=$1", scanCompany)
	return r
}

func baseSelectCompany() string {
	return `
        SELECT
            id, name, region, approved, collab_cutoff_hour,
            contract_template_title, contract_template_body,
            row_version, created_at, updated_at
        FROM companies
    `
}

func scanCompany(row pgx.Row) (*models.Company, error) {
	var c models.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Region, &c.Approved, &c.CollabCutoffHour,
		&c.ContractTemplateTitle, &c.ContractTemplateBody,
		&c.RowVersion, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) Create(ctx context.Context, c *models.Company) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO companies (
            id, name, region, approved, collab_cutoff_hour,
            contract_template_title, contract_template_body,
            row_version, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,1,NOW(),NOW())
    `,
		c.ID, c.Name, c.Region, c.Approved, c.CollabCutoffHour,
		c.ContractTemplateTitle, c.ContractTemplateBody,
	)
	return err
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	row := r.db.QueryRow(ctx, baseSelectCompany()+" WHERE id=$1", id)
	return scanCompany(row)
}

func (r *companyRepo) UpdateIfVersion(ctx context.Context, c *models.Company, expectedVersion int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE companies
        SET name=$1, region=$2, approved=$3, collab_cutoff_hour=$4,
            contract_template_title=$5, contract_template_body=$6,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$7 AND row_version=$8
    `,
		c.Name, c.Region, c.Approved, c.CollabCutoffHour,
		c.ContractTemplateTitle, c.ContractTemplateBody,
		c.ID, expectedVersion,
	)
}

func (r *companyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Company) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}
