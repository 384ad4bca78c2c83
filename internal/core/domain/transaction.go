package domain

import "time"

// TransactionType indicates what kind of ledger entry a transaction is.
type TransactionType string

const (
	TransactionCredit     TransactionType = "CREDIT"
	TransactionRefund     TransactionType = "REFUND"
	TransactionChargeback TransactionType = "CHARGEBACK"
)

// TransactionStatus tracks maturation of a ledger entry. Pending credits mature
// into the available balance after their release date; compensating debits are
// written completed.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
)

// Transaction is an append-only ledger entry against one account. For a given
// ReferenceID at most one transaction ever exists; the store's uniqueness
// constraint turns duplicate webhook deliveries into no-ops instead of double
// postings. Rows are never mutated or deleted.
type Transaction struct {
	TransactionID  string            `json:"transactionID"` // Primary Key (UUID)
	AccountID      string            `json:"accountID"`
	SaleID         string            `json:"saleID"`
	Type           TransactionType   `json:"type"`
	AmountCents    int64             `json:"amountCents"` // signed: credits positive, reversals negative
	FeeCents       int64             `json:"feeCents"`
	NetAmountCents int64             `json:"netAmountCents"`
	Status         TransactionStatus `json:"status"`
	ReferenceID    string            `json:"referenceID"` // idempotency key, unique per (sale, event kind, split type)
	ReleaseAt      *time.Time        `json:"releaseAt,omitempty"`
	Description    string            `json:"description"`
	AuditFields
}

// IsMatured reports whether a credit has settled into the available balance.
// A reversal debits the pending bucket only while the original credit is still
// pending and its release date has not passed.
func (t Transaction) IsMatured(now time.Time) bool {
	if t.Status == TransactionCompleted {
		return true
	}
	return t.ReleaseAt != nil && !now.Before(*t.ReleaseAt)
}
