package repositories

import (
	"context"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SplitReader defines read operations for split rows.
type SplitReader interface {
	// HasPostedSplits probes for an existing tenant or platform-fee split for
	// the sale. A hit means the poster already ran; re-invocation is a no-op.
	HasPostedSplits(ctx context.Context, saleID string) (bool, error)

	// FindSplitsBySale retrieves every split row for a sale.
	FindSplitsBySale(ctx context.Context, saleID string) ([]domain.Split, error)

	// FindAffiliateSplit retrieves the affiliate split for a sale, or
	// apperrors.ErrNotFound when no attribution happened.
	FindAffiliateSplit(ctx context.Context, saleID string) (*domain.Split, error)

	// FindLiableSplits retrieves splits whose liability flag for the given
	// reversal kind is set. Platform-fee rows are never returned because their
	// flags are false by construction.
	FindLiableSplits(ctx context.Context, saleID string, kind domain.ReversalKind) ([]domain.Split, error)
}

// SplitWriter defines write operations for split rows. Splits are written once
// and immutable afterwards, except for the credit-transaction link set by the
// poster.
type SplitWriter interface {
	// SaveSplit inserts a new split row. Duplicate (sale, type, account) rows
	// surface apperrors.ErrDuplicate.
	SaveSplit(ctx context.Context, split domain.Split) error

	// SaveSplitInTx inserts a split row with conflict-ignore semantics and
	// reports whether a row was actually written.
	SaveSplitInTx(ctx context.Context, tx pgx.Tx, split domain.Split) (bool, error)

	// LinkCreditTransactionInTx records the id of the original credit
	// transaction on the split row.
	LinkCreditTransactionInTx(ctx context.Context, tx pgx.Tx, splitID string, transactionID string) error
}

// SplitRepositoryFacade combines all split-related repository interfaces.
type SplitRepositoryFacade interface {
	SplitReader
	SplitWriter
}

// SplitRepositoryWithTx extends SplitRepositoryFacade with transaction management.
type SplitRepositoryWithTx interface {
	SplitRepositoryFacade
	TransactionManager
}
