package models

import "github.com/shopspring/decimal"

// SplitType mirrors domain.SplitType for DB storage.
type SplitType string

// Split is the DB representation of a per-sale allocation row.
// Uniqueness: (sale_id, split_type, account_id).
type Split struct {
	SplitID             string          `db:"split_id"`
	SaleID              string          `db:"sale_id"`
	AccountID           string          `db:"account_id"` // nullable: platform-fee rows carry no account
	SplitType           SplitType       `db:"split_type"`
	GrossAmountCents    int64           `db:"gross_amount_cents"`
	FeeCents            int64           `db:"fee_cents"`
	NetAmountCents      int64           `db:"net_amount_cents"`
	Percentage          decimal.Decimal `db:"percentage"`
	LiableForRefund     bool            `db:"liable_for_refund"`
	LiableForChargeback bool            `db:"liable_for_chargeback"`
	CreditTransactionID string          `db:"credit_transaction_id"` // nullable
	AuditFields
}
