package models

import "time"

// TransactionType mirrors domain.TransactionType for DB storage.
type TransactionType string

// TransactionStatus mirrors domain.TransactionStatus for DB storage.
type TransactionStatus string

// Transaction is the DB representation of an append-only ledger entry.
// reference_id carries a unique constraint; duplicate inserts are no-ops.
type Transaction struct {
	TransactionID  string            `db:"transaction_id"`
	AccountID      string            `db:"account_id"`
	SaleID         string            `db:"sale_id"`
	Type           TransactionType   `db:"type"`
	AmountCents    int64             `db:"amount_cents"`
	FeeCents       int64             `db:"fee_cents"`
	NetAmountCents int64             `db:"net_amount_cents"`
	Status         TransactionStatus `db:"status"`
	ReferenceID    string            `db:"reference_id"`
	ReleaseAt      *time.Time        `db:"release_at"` // nullable
	Description    string            `db:"description"`
	AuditFields
}
