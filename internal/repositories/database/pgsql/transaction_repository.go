package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/apperrors"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	portsrepo "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/repositories"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/models"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, account_id, sale_id, type,
	amount_cents, fee_cents, net_amount_cents, status, reference_id, release_at, description,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the append-only ledger.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.SaleID,
		&m.Type,
		&m.AmountCents,
		&m.FeeCents,
		&m.NetAmountCents,
		&m.Status,
		&m.ReferenceID,
		&m.ReleaseAt,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// InsertTransactionInTx appends a ledger entry with conflict-ignore semantics
// on reference_id. Returns false when the reference already exists: the
// uniqueness constraint turns a retried webhook delivery into a no-op, and the
// caller must then skip the corresponding balance mutation.
func (r *PgxTransactionRepository) InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (bool, error) {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (reference_id) DO NOTHING;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		m.SaleID,
		m.Type,
		m.AmountCents,
		m.FeeCents,
		m.NetAmountCents,
		m.Status,
		m.ReferenceID,
		m.ReleaseAt,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert transaction %s (ref %s): %w", m.TransactionID, m.ReferenceID, err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

// FindTransactionByID retrieves a ledger entry by its primary key.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// FindTransactionByReference retrieves a ledger entry by its idempotency key.
func (r *PgxTransactionRepository) FindTransactionByReference(ctx context.Context, referenceID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reference_id = $1;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, referenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by reference %s: %w", referenceID, err)
	}
	return txn, nil
}

// FindLatestCreditForSaleAccount retrieves the most recent credit entry for a
// (sale, account) pair. Fallback for splits without a direct credit link.
func (r *PgxTransactionRepository) FindLatestCreditForSaleAccount(ctx context.Context, saleID string, accountID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE sale_id = $1 AND account_id = $2 AND type = $3
		ORDER BY created_at DESC
		LIMIT 1;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, saleID, accountID, models.TransactionType(domain.TransactionCredit)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit for sale %s account %s: %w", saleID, accountID, err)
	}
	return txn, nil
}

// ListTransactionsBySale retrieves all ledger entries originating from a sale.
func (r *PgxTransactionRepository) ListTransactionsBySale(ctx context.Context, saleID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE sale_id = $1
		ORDER BY created_at;
	`
	return r.queryTransactions(ctx, query, saleID)
}

// ListTransactionsByAccount retrieves a page of ledger entries for an account,
// newest first.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	return r.queryTransactions(ctx, query, accountID, limit, offset)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}
