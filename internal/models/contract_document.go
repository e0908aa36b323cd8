package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ContractStatusType string

const (
	ContractStatusPendingCompany  ContractStatusType = "PENDING_COMPANY"
	ContractStatusSignedByCompany ContractStatusType = "SIGNED_BY_COMPANY"
	ContractStatusCompleted       ContractStatusType = "COMPLETED"
	ContractStatusVoid            ContractStatusType = "VOID"
)

// Signature is one party's signature on a contract document. Strokes is the
// raw stroke payload captured by the client; StrokesHash is its sha256 so
// tampering is detectable without interpreting the payload.
type Signature struct {
	SignerName  string          `json:"signer_name"`
	Strokes     json.RawMessage `json:"strokes"`
	StrokesHash string          `json:"strokes_hash"`
	IPAddress   string          `json:"ip_address"`
	UserAgent   string          `json:"user_agent"`
	SignedAt    time.Time       `json:"signed_at"`
}

// ContractDocument is the dual-signature record for one confirmed
// application. Title and Body are rendered once from the company template at
// creation and never change afterwards; ContentHash covers both.
type ContractDocument struct {
	Versioned

	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`

	Title       string `json:"title"`
	Body        string `json:"body"`
	ContentHash string `json:"content_hash"`

	Status ContractStatusType `json:"status"`

	CompanySignature *Signature `json:"company_signature,omitempty"`
	WorkerSignature  *Signature `json:"worker_signature,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *ContractDocument) GetID() string {
	return c.ID.String()
}
