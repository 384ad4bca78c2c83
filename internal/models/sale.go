package models

// Sale is the DB representation of the CRM-owned sale row the engine reads and
// advances.
type Sale struct {
	SaleID         string `db:"sale_id"`
	OrganizationID string `db:"organization_id"`
	Reference      string `db:"reference"`
	TotalCents     int64  `db:"total_cents"`
	Status         string `db:"status"`
	PaymentStatus  string `db:"payment_status"`
	AuditFields
}
