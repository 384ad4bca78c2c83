package dto

import "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"

// PaymentConfirmedRequest is the normalized payload the gateway adapter posts
// when a sale's payment is confirmed.
type PaymentConfirmedRequest struct {
	SaleID         string `json:"saleID" binding:"required"`
	OrganizationID string `json:"organizationID" binding:"required"`
	Reference      string `json:"reference" binding:"required"`
	TotalCents     int64  `json:"totalCents" binding:"required,gt=0"`
}

// ToDomain converts the request to the engine's event type.
func (r PaymentConfirmedRequest) ToDomain() domain.PaymentConfirmed {
	return domain.PaymentConfirmed{
		SaleID:         r.SaleID,
		OrganizationID: r.OrganizationID,
		Reference:      r.Reference,
		TotalCents:     r.TotalCents,
	}
}

// PostingResponse reports what the poster did for one confirmed payment.
type PostingResponse struct {
	SaleID              string `json:"saleID"`
	AlreadyPosted       bool   `json:"alreadyPosted"`
	PlatformFeeCents    int64  `json:"platformFeeCents"`
	AffiliateGrossCents int64  `json:"affiliateGrossCents"`
	TenantNetCents      int64  `json:"tenantNetCents"`
}

// ToPostingResponse converts a domain posting result for the HTTP surface.
func ToPostingResponse(res *domain.PostingResult) PostingResponse {
	return PostingResponse{
		SaleID:              res.SaleID,
		AlreadyPosted:       res.AlreadyPosted,
		PlatformFeeCents:    res.PlatformFeeCents,
		AffiliateGrossCents: res.AffiliateGrossCents,
		TenantNetCents:      res.TenantNetCents,
	}
}
