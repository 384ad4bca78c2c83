package dto

import "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"

// RefundRequestedRequest is the normalized reversal trigger: a manual refund
// from an operator or a chargeback notice relayed by the gateway adapter.
// The "reversalkind" rule is registered on gin's validator engine at startup.
type RefundRequestedRequest struct {
	SaleID      string `json:"saleID" binding:"required"`
	AmountCents int64  `json:"amountCents" binding:"required,gt=0"`
	Reason      string `json:"reason"`
	Kind        string `json:"kind" binding:"required,reversalkind"`
}

// ToDomain converts the request to the engine's event type.
func (r RefundRequestedRequest) ToDomain() domain.RefundRequested {
	return domain.RefundRequested{
		SaleID:      r.SaleID,
		AmountCents: r.AmountCents,
		Reason:      r.Reason,
		Kind:        domain.ReversalKind(r.Kind),
	}
}

// DebitedBeneficiaryResponse mirrors domain.DebitedBeneficiary for callers.
type DebitedBeneficiaryResponse struct {
	Role               string `json:"role"`
	AccountID          string `json:"accountID"`
	HolderName         string `json:"holderName"`
	AmountDebitedCents int64  `json:"amountDebitedCents"`
	NewBalanceCents    int64  `json:"newBalanceCents"`
	Bucket             string `json:"bucket"`
}

// ReversalResponse aggregates the outcome of a reversal invocation.
type ReversalResponse struct {
	SaleID       string                       `json:"saleID"`
	Kind         string                       `json:"kind"`
	DebitedCount int                          `json:"debitedCount"`
	Debited      []DebitedBeneficiaryResponse `json:"debited"`
	Errors       []string                     `json:"errors,omitempty"`
}

// ToReversalResponse converts a domain reversal result for the HTTP surface.
func ToReversalResponse(res *domain.ReversalResult) ReversalResponse {
	debited := make([]DebitedBeneficiaryResponse, len(res.Debited))
	for i, d := range res.Debited {
		debited[i] = DebitedBeneficiaryResponse{
			Role:               string(d.Role),
			AccountID:          d.AccountID,
			HolderName:         d.HolderName,
			AmountDebitedCents: d.AmountDebitedCents,
			NewBalanceCents:    d.NewBalanceCents,
			Bucket:             string(d.Bucket),
		}
	}
	return ReversalResponse{
		SaleID:       res.SaleID,
		Kind:         string(res.Kind),
		DebitedCount: res.DebitedCount,
		Debited:      debited,
		Errors:       res.Errors,
	}
}
