package repositories

import (
	"context"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for ledger entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a ledger entry by its primary key.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByReference retrieves a ledger entry by its idempotency key.
	FindTransactionByReference(ctx context.Context, referenceID string) (*domain.Transaction, error)

	// FindLatestCreditForSaleAccount retrieves the most recent credit entry for
	// a (sale, account) pair. Fallback path only: splits posted by this engine
	// carry a direct credit-transaction link.
	FindLatestCreditForSaleAccount(ctx context.Context, saleID string, accountID string) (*domain.Transaction, error)

	// ListTransactionsBySale retrieves all ledger entries originating from a sale.
	ListTransactionsBySale(ctx context.Context, saleID string) ([]domain.Transaction, error)

	// ListTransactionsByAccount retrieves a page of ledger entries for an account,
	// newest first.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines the single write operation on the append-only ledger.
type TransactionWriter interface {
	// InsertTransactionInTx appends a ledger entry. The insert carries
	// conflict-ignore semantics on reference_id: a duplicate delivery writes
	// nothing and returns false, which callers treat as "already processed".
	InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (bool, error)
}

// TransactionRepositoryFacade combines all ledger-entry repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with
// transaction management.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
