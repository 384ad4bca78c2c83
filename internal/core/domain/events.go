package domain

import "time"

// ReversalKind distinguishes the two ways a paid sale comes back.
type ReversalKind string

const (
	ReversalRefund     ReversalKind = "refund"
	ReversalChargeback ReversalKind = "chargeback"
)

// TransactionType maps the reversal kind to the compensating ledger entry type.
func (k ReversalKind) TransactionType() TransactionType {
	if k == ReversalChargeback {
		return TransactionChargeback
	}
	return TransactionRefund
}

// TerminalPaymentStatus is the sale payment status a successful reversal sets.
func (k ReversalKind) TerminalPaymentStatus() PaymentStatus {
	if k == ReversalChargeback {
		return PaymentChargedBack
	}
	return PaymentRefunded
}

// PaymentConfirmed is the normalized "sale was paid" event. Gateway-specific
// webhook payloads are flattened into this shape by the adapter layer; the
// engine never inspects gateway fields.
type PaymentConfirmed struct {
	SaleID         string `json:"saleID"`
	OrganizationID string `json:"organizationID"`
	Reference      string `json:"reference"`
	TotalCents     int64  `json:"totalCents"`
}

// RefundRequested is the normalized reversal trigger: a manual refund request
// or a chargeback notice from the gateway.
type RefundRequested struct {
	SaleID      string       `json:"saleID"`
	AmountCents int64        `json:"amountCents"`
	Reason      string       `json:"reason"`
	Kind        ReversalKind `json:"kind"`
}

// DebitedBeneficiary describes one account actually debited during a reversal.
type DebitedBeneficiary struct {
	Role               AccountRole   `json:"role"`
	AccountID          string        `json:"accountID"`
	HolderName         string        `json:"holderName"`
	AmountDebitedCents int64         `json:"amountDebitedCents"`
	NewBalanceCents    int64         `json:"newBalanceCents"`
	Bucket             BalanceBucket `json:"bucket"`
}

// ReversalNotice is handed to the notification fan-out after a reversal. It
// contributes no ledger state; delivery failures never affect correctness.
type ReversalNotice struct {
	SaleID     string               `json:"saleID"`
	Kind       ReversalKind         `json:"kind"`
	Reason     string               `json:"reason"`
	Debited    []DebitedBeneficiary `json:"debited"`
	OccurredAt time.Time            `json:"occurredAt"`
}

// ReversalResult aggregates the outcome of one reversal invocation. A failure
// debiting one beneficiary must not block debiting the others, so per-split
// errors are collected rather than thrown.
type ReversalResult struct {
	SaleID       string               `json:"saleID"`
	Kind         ReversalKind         `json:"kind"`
	DebitedCount int                  `json:"debitedCount"`
	Debited      []DebitedBeneficiary `json:"debited"`
	Errors       []string             `json:"errors,omitempty"`
}

// PostingResult reports what the split poster did for one paid sale.
type PostingResult struct {
	SaleID              string `json:"saleID"`
	AlreadyPosted       bool   `json:"alreadyPosted"`
	PlatformFeeCents    int64  `json:"platformFeeCents"`
	AffiliateGrossCents int64  `json:"affiliateGrossCents"`
	TenantNetCents      int64  `json:"tenantNetCents"`
}
