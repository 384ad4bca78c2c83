package models

import "github.com/shopspring/decimal"

// Organization is the DB representation of a platform tenant with optional fee
// policy overrides (nullable columns fall back to config defaults).
type Organization struct {
	OrganizationID string           `db:"organization_id"`
	Name           string           `db:"name"`
	FeePercentage  *decimal.Decimal `db:"fee_percentage"`
	FeeFixedCents  *int64           `db:"fee_fixed_cents"`
	ReleaseDays    *int             `db:"release_days"`
	AuditFields
}
