package dto

import (
	"time"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse defines the data returned for a beneficiary account.
type AccountResponse struct {
	AccountID           string    `json:"accountID"`
	OrganizationID      string    `json:"organizationID"`
	Role                string    `json:"role"`
	HolderName          string    `json:"holderName"`
	BalanceCents        int64     `json:"balanceCents"`
	PendingBalanceCents int64     `json:"pendingBalanceCents"`
	TotalReceivedCents  int64     `json:"totalReceivedCents"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:           a.AccountID,
		OrganizationID:      a.OrganizationID,
		Role:                string(a.Role),
		HolderName:          a.HolderName,
		BalanceCents:        a.BalanceCents,
		PendingBalanceCents: a.PendingBalanceCents,
		TotalReceivedCents:  a.TotalReceivedCents,
		CreatedAt:           a.CreatedAt,
	}
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID  string     `json:"transactionID"`
	AccountID      string     `json:"accountID"`
	SaleID         string     `json:"saleID"`
	Type           string     `json:"type"`
	AmountCents    int64      `json:"amountCents"`
	FeeCents       int64      `json:"feeCents"`
	NetAmountCents int64      `json:"netAmountCents"`
	Status         string     `json:"status"`
	ReferenceID    string     `json:"referenceID"`
	ReleaseAt      *time.Time `json:"releaseAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = TransactionResponse{
			TransactionID:  txn.TransactionID,
			AccountID:      txn.AccountID,
			SaleID:         txn.SaleID,
			Type:           string(txn.Type),
			AmountCents:    txn.AmountCents,
			FeeCents:       txn.FeeCents,
			NetAmountCents: txn.NetAmountCents,
			Status:         string(txn.Status),
			ReferenceID:    txn.ReferenceID,
			ReleaseAt:      txn.ReleaseAt,
			CreatedAt:      txn.CreatedAt,
		}
	}
	return responses
}

// SplitResponse defines the data returned for a split row.
type SplitResponse struct {
	SplitID             string          `json:"splitID"`
	SaleID              string          `json:"saleID"`
	AccountID           string          `json:"accountID,omitempty"`
	SplitType           string          `json:"splitType"`
	GrossAmountCents    int64           `json:"grossAmountCents"`
	FeeCents            int64           `json:"feeCents"`
	NetAmountCents      int64           `json:"netAmountCents"`
	Percentage          decimal.Decimal `json:"percentage"`
	LiableForRefund     bool            `json:"liableForRefund"`
	LiableForChargeback bool            `json:"liableForChargeback"`
}

// ToSplitResponses converts a slice of domain splits.
func ToSplitResponses(splits []domain.Split) []SplitResponse {
	responses := make([]SplitResponse, len(splits))
	for i, s := range splits {
		responses[i] = SplitResponse{
			SplitID:             s.SplitID,
			SaleID:              s.SaleID,
			AccountID:           s.AccountID,
			SplitType:           string(s.SplitType),
			GrossAmountCents:    s.GrossAmountCents,
			FeeCents:            s.FeeCents,
			NetAmountCents:      s.NetAmountCents,
			Percentage:          s.Percentage,
			LiableForRefund:     s.LiableForRefund,
			LiableForChargeback: s.LiableForChargeback,
		}
	}
	return responses
}
