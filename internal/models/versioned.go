package models

// Versioned carries the optimistic-lock row version. Embed it anonymously to
// satisfy the repositories' versioned-entity interface.
type Versioned struct {
	RowVersion int64 `json:"row_version"`
}

func (v *Versioned) GetRowVersion() int64  { return v.RowVersion }
func (v *Versioned) SetRowVersion(n int64) { v.RowVersion = n }
