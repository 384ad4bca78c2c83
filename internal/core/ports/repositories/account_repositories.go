package repositories

import (
	"context"
	"time"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for beneficiary accounts.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}

// AccountWriter defines write operations for beneficiary accounts.
type AccountWriter interface {
	// GetOrCreateAccount inserts the account if no row exists for its
	// (organization, role, holder email) key and returns the stored row either
	// way. Safe under concurrent invocation.
	GetOrCreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
}

// AccountTransactionSupport defines balance mutations that run inside a
// database transaction. All mutations are single relative increments; balances
// are permitted to go negative.
type AccountTransactionSupport interface {
	// AdjustBalanceInTx applies deltaCents to the given bucket and returns the
	// new bucket value.
	AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, bucket domain.BalanceBucket, deltaCents int64, userID string, now time.Time) (int64, error)

	// ApplyCreditInTx increments the pending balance and the running
	// total-received counter by netCents.
	ApplyCreditInTx(ctx context.Context, tx pgx.Tx, accountID string, netCents int64, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction management.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
