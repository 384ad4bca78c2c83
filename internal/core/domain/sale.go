package domain

// SaleStatus is the CRM-facing lifecycle state of a sale.
type SaleStatus string

const (
	SaleOpen      SaleStatus = "OPEN"
	SaleCancelled SaleStatus = "CANCELLED"
)

// PaymentStatus tracks the payment lifecycle of a sale.
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "PENDING"
	PaymentPaid        PaymentStatus = "PAID"
	PaymentRefunded    PaymentStatus = "REFUNDED"
	PaymentChargedBack PaymentStatus = "CHARGEDBACK"
)

// Sale is the external entity owned by the surrounding CRM. The engine reads it
// to decide eligibility and writes back status/payment_status as the terminal
// effect of posting and reversal.
type Sale struct {
	SaleID         string        `json:"saleID"`
	OrganizationID string        `json:"organizationID"`
	Reference      string        `json:"reference"` // gateway reference, used to build idempotency keys
	TotalCents     int64         `json:"totalCents"`
	Status         SaleStatus    `json:"status"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	AuditFields
}
