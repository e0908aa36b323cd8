package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/brigadly/backend/internal/models"
)

type ContractRepository interface {
	// CreateIfNotExists inserts the document unless the application already
	// has one. Returns false when the row was skipped.
	CreateIfNotExists(ctx context.Context, c *models.ContractDocument) (bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.ContractDocument, error)
	GetByApplicationID(ctx context.Context, applicationID uuid.UUID) (*models.ContractDocument, error)

	UpdateIfVersion(ctx context.Context, c *models.ContractDocument, expectedVersion int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.ContractDocument) error) error
}

type contractRepo struct {
	db DB
	*BaseVersionedRepo[*models.ContractDocument]
}

func NewContractRepository(db DB) ContractRepository {
	r := &contractRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectContract()+" WHERE id=$1", scanContract)
	return r
}

func baseSelectContract() string {
	return `
        SELECT
            id, application_id, title, body, content_hash, status,
            company_signature, worker_signature,
            row_version, created_at, updated_at
        FROM contract_documents
    `
}

func scanContract(row pgx.Row) (*models.ContractDocument, error) {
	var c models.ContractDocument
	var companySigB, workerSigB []byte
	err := row.Scan(
		&c.ID, &c.ApplicationID, &c.Title, &c.Body, &c.ContentHash, &c.Status,
		&companySigB, &workerSigB,
		&c.RowVersion, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(companySigB) > 0 {
		_ = json.Unmarshal(companySigB, &c.CompanySignature)
	}
	if len(workerSigB) > 0 {
		_ = json.Unmarshal(workerSigB, &c.WorkerSignature)
	}
	return &c, nil
}

func (r *contractRepo) CreateIfNotExists(ctx context.Context, c *models.ContractDocument) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        INSERT INTO contract_documents (
            id, application_id, title, body, content_hash, status,
            row_version, created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,1,NOW(),NOW()
        )
        ON CONFLICT (application_id) DO NOTHING
    `,
		c.ID, c.ApplicationID, c.Title, c.Body, c.ContentHash, c.Status,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *contractRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ContractDocument, error) {
	row := r.db.QueryRow(ctx, baseSelectContract()+" WHERE id=$1", id)
	return scanContract(row)
}

func (r *contractRepo) GetByApplicationID(ctx context.Context, applicationID uuid.UUID) (*models.ContractDocument, error) {
	row := r.db.QueryRow(ctx, baseSelectContract()+" WHERE application_id=$1", applicationID)
	return scanContract(row)
}

func (r *contractRepo) UpdateIfVersion(ctx context.Context, c *models.ContractDocument, expectedVersion int64) (pgconn.CommandTag, error) {
	companySigB, err := marshalSignature(c.CompanySignature)
	if err != nil {
		return nil, err
	}
	workerSigB, err := marshalSignature(c.WorkerSignature)
	if err != nil {
		return nil, err
	}

	return r.db.Exec(ctx, `
        UPDATE contract_documents
        SET status=$1,
            company_signature=$2,
            worker_signature=$3,
            row_version=row_version+1,
            updated_at=NOW()
        WHERE id=$4 AND row_version=$5
    `, c.Status, companySigB, workerSigB, c.ID, expectedVersion)
}

func (r *contractRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.ContractDocument) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func marshalSignature(sig *models.Signature) ([]byte, error) {
	if sig == nil {
		return nil, nil
	}
	return json.Marshal(sig)
}
