package domain

// AccountRole identifies which kind of beneficiary an account belongs to.
type AccountRole string

const (
	RoleTenant     AccountRole = "TENANT"
	RoleAffiliate  AccountRole = "AFFILIATE"
	RoleCoproducer AccountRole = "COPRODUCER"
	RoleIndustry   AccountRole = "INDUSTRY"
	RoleFactory    AccountRole = "FACTORY"
)

// BalanceBucket selects which of the two balance fields a mutation targets.
type BalanceBucket string

const (
	BucketAvailable BalanceBucket = "available"
	BucketPending   BalanceBucket = "pending"
)

// Account is one ledger entity per beneficiary. It is created lazily on the
// first credit for an (organization, role) pair and never deleted. Balances are
// integer cents and may go negative: a beneficiary can owe the platform after a
// chargeback exceeds their settled float.
type Account struct {
	AccountID           string      `json:"accountID"`      // Primary Key (UUID)
	OrganizationID      string      `json:"organizationID"` // FK -> organizations.organization_id
	Role                AccountRole `json:"role"`
	HolderName          string      `json:"holderName"`
	HolderEmail         string      `json:"holderEmail"`
	BalanceCents        int64       `json:"balanceCents"`        // settled / available
	PendingBalanceCents int64       `json:"pendingBalanceCents"` // awaiting release-date maturation
	TotalReceivedCents  int64       `json:"totalReceivedCents"`  // running total of credits
	AuditFields
}

// BalanceFor returns the current value of the requested bucket.
func (a Account) BalanceFor(bucket BalanceBucket) int64 {
	if bucket == BucketPending {
		return a.PendingBalanceCents
	}
	return a.BalanceCents
}
