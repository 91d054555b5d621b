package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType discriminates charges from owner deposits (versements).
type TransactionType string

const (
	TransactionTypeCharge  TransactionType = "charge"
	TransactionTypeDeposit TransactionType = "deposit"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeCharge || t == TransactionTypeDeposit
}

// TransactionSource records how a transaction entered the ledger.
type TransactionSource string

const (
	SourceManual TransactionSource = "manual"
	SourceImport TransactionSource = "import"
)

// Transaction is a single financial movement of a building.
type Transaction struct {
	ID           string            `json:"id"`
	BuildingID   string            `json:"building_id"`
	Date         time.Time         `json:"date"`
	PostingDate  *time.Time        `json:"posting_date,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	Amount       decimal.Decimal   `json:"amount"` // signed, bank debits are negative
	Type         TransactionType   `json:"type"`
	Description  string            `json:"description"`
	Counterparty string            `json:"counterparty"`
	OwnerID      *string           `json:"owner_id,omitempty"`
	Category     string            `json:"category,omitempty"`
	Source       TransactionSource `json:"source"`
	ImportHash   string            `json:"import_hash,omitempty"`
}

// EffectiveDate returns the first non-zero of the transaction date, the posting
// date and the creation timestamp.
func (t Transaction) EffectiveDate() time.Time {
	if !t.Date.IsZero() {
		return t.Date
	}
	if t.PostingDate != nil && !t.PostingDate.IsZero() {
		return *t.PostingDate
	}
	return t.CreatedAt
}

// InYear reports whether the effective date falls in year.
func (t Transaction) InYear(year int) bool {
	d := t.EffectiveDate()
	return !d.IsZero() && d.Year() == year
}

// IsCharge reports whether the transaction is a charge.
func (t Transaction) IsCharge() bool {
	return t.Type == TransactionTypeCharge
}

// TransactionPatch carries the fields that stay editable after import.
type TransactionPatch struct {
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	OwnerID     *string `json:"owner_id,omitempty"`
	ClearOwner  bool    `json:"clear_owner,omitempty"`
}

// Apply returns a copy of t with the patch applied.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.ClearOwner {
		t.OwnerID = nil
	} else if p.OwnerID != nil {
		id := *p.OwnerID
		t.OwnerID = &id
	}
	return t
}
