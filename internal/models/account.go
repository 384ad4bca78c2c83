package models

// AccountRole mirrors domain.AccountRole for DB storage.
type AccountRole string

// Account is the DB representation of a beneficiary ledger account.
type Account struct {
	AccountID           string      `db:"account_id"`
	OrganizationID      string      `db:"organization_id"`
	Role                AccountRole `db:"role"`
	HolderName          string      `db:"holder_name"`
	HolderEmail         string      `db:"holder_email"`
	BalanceCents        int64       `db:"balance_cents"`
	PendingBalanceCents int64       `db:"pending_balance_cents"`
	TotalReceivedCents  int64       `db:"total_received_cents"`
	AuditFields
}
