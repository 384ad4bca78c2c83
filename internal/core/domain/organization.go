package domain

import "github.com/shopspring/decimal"

// Organization is a tenant of the platform. It may carry fee policy overrides;
// nil fields fall back to the global configuration defaults.
type Organization struct {
	OrganizationID string           `json:"organizationID"` // Primary Key (UUID)
	Name           string           `json:"name"`
	FeePercentage  *decimal.Decimal `json:"feePercentage,omitempty"` // percentage points, e.g. 5 means 5%
	FeeFixedCents  *int64           `json:"feeFixedCents,omitempty"`
	ReleaseDays    *int             `json:"releaseDays,omitempty"`
	AuditFields
}

// FeePolicy is the platform fee policy resolved once per posting invocation.
// Modelling it as an explicit value keeps the posting logic a pure function of
// (sale, policy, existing splits) rather than ambient global state.
type FeePolicy struct {
	Percentage  decimal.Decimal `json:"percentage"` // percentage points
	FixedCents  int64           `json:"fixedCents"`
	ReleaseDays int             `json:"releaseDays"` // pending-balance maturation delay
}
