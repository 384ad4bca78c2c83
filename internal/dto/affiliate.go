package dto

// AttachAffiliateSplitRequest creates the affiliate allocation for a sale
// before its payment confirms. The poster later credits the affiliate account
// for this gross amount. Affiliates are exempt from chargebacks unless the
// caller says otherwise.
type AttachAffiliateSplitRequest struct {
	GrossAmountCents    int64  `json:"grossAmountCents" binding:"required,gt=0"`
	HolderName          string `json:"holderName" binding:"required"`
	HolderEmail         string `json:"holderEmail" binding:"required,email"`
	LiableForRefund     *bool  `json:"liableForRefund"`
	LiableForChargeback *bool  `json:"liableForChargeback"`
}

// RefundLiability returns the refund liability flag, defaulting to true.
func (r AttachAffiliateSplitRequest) RefundLiability() bool {
	if r.LiableForRefund == nil {
		return true
	}
	return *r.LiableForRefund
}

// ChargebackLiability returns the chargeback liability flag, defaulting to false.
func (r AttachAffiliateSplitRequest) ChargebackLiability() bool {
	if r.LiableForChargeback == nil {
		return false
	}
	return *r.LiableForChargeback
}
