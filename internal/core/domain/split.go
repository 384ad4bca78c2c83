package domain

import "github.com/shopspring/decimal"

// SplitType classifies a split row by the beneficiary role it pays.
type SplitType string

const (
	SplitTenant      SplitType = "TENANT"
	SplitAffiliate   SplitType = "AFFILIATE"
	SplitCoproducer  SplitType = "COPRODUCER"
	SplitPlatformFee SplitType = "PLATFORM_FEE"
)

// Split records how one slice of a sale's proceeds was allocated to a
// beneficiary account. Rows are written once by the poster (or the affiliate
// attribution step) and are immutable afterwards: reversal reads but never
// edits them. Liability flags are fixed at posting time.
//
// The platform-fee split is never liable for refunds or chargebacks; the
// platform keeps its fee when a sale is reversed.
type Split struct {
	SplitID             string          `json:"splitID"` // Primary Key (UUID)
	SaleID              string          `json:"saleID"`
	AccountID           string          `json:"accountID"` // empty for the platform-fee row
	SplitType           SplitType       `json:"splitType"`
	GrossAmountCents    int64           `json:"grossAmountCents"`
	FeeCents            int64           `json:"feeCents"`
	NetAmountCents      int64           `json:"netAmountCents"`
	Percentage          decimal.Decimal `json:"percentage"` // stored for audit even if policy later changes
	LiableForRefund     bool            `json:"liableForRefund"`
	LiableForChargeback bool            `json:"liableForChargeback"`
	CreditTransactionID string          `json:"creditTransactionID"` // link to the original credit, set at posting time
	AuditFields
}

// LiableFor reports whether this split must be reversed for the given kind.
func (s Split) LiableFor(kind ReversalKind) bool {
	if kind == ReversalChargeback {
		return s.LiableForChargeback
	}
	return s.LiableForRefund
}

// ReversalAmountCents is the amount a reversal debits for this split: the
// net amount that was credited. Imported rows carrying only a gross and no
// credit link fall back to gross. A split whose credit applied nothing to
// the balance debits nothing.
func (s Split) ReversalAmountCents() int64 {
	if s.NetAmountCents > 0 {
		return s.NetAmountCents
	}
	if s.NetAmountCents == 0 && s.CreditTransactionID == "" {
		return s.GrossAmountCents
	}
	return 0
}
