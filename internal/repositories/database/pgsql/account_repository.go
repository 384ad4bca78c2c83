package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/apperrors"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	portsrepo "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/repositories"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/models"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, organization_id, role, holder_name, holder_email,
	balance_cents, pending_balance_cents, total_received_cents,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for beneficiary account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.OrganizationID,
		&m.Role,
		&m.HolderName,
		&m.HolderEmail,
		&m.BalanceCents,
		&m.PendingBalanceCents,
		&m.TotalReceivedCents,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// GetOrCreateAccount inserts the account if its (organization, role, holder
// email) key is unused, then returns the stored row. The conflict-ignore insert
// makes concurrent first credits for the same beneficiary converge on one row.
func (r *PgxAccountRepository) GetOrCreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)

	insertQuery := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (organization_id, role, holder_email) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, insertQuery,
		m.AccountID,
		m.OrganizationID,
		m.Role,
		m.HolderName,
		m.HolderEmail,
		m.BalanceCents,
		m.PendingBalanceCents,
		m.TotalReceivedCents,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure account for org %s role %s: %w", m.OrganizationID, m.Role, err)
	}

	selectQuery := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE organization_id = $1 AND role = $2 AND holder_email = $3;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, selectQuery, m.OrganizationID, m.Role, m.HolderEmail))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load account for org %s role %s: %w", m.OrganizationID, m.Role, err)
	}
	return acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. IDs with no
// matching row are simply absent from the returned map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[acc.AccountID] = *acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}

	return accountsMap, nil
}

// AdjustBalanceInTx applies a relative delta to one balance bucket and returns
// the new bucket value. A single UPDATE keeps the mutation atomic under
// concurrent postings and reversals for the same account; balances may go
// negative.
func (r *PgxAccountRepository) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, bucket domain.BalanceBucket, deltaCents int64, userID string, now time.Time) (int64, error) {
	var query string
	switch bucket {
	case domain.BucketPending:
		query = `
			UPDATE accounts
			SET pending_balance_cents = pending_balance_cents + $2, last_updated_at = $3, last_updated_by = $4
			WHERE account_id = $1
			RETURNING pending_balance_cents;
		`
	case domain.BucketAvailable:
		query = `
			UPDATE accounts
			SET balance_cents = balance_cents + $2, last_updated_at = $3, last_updated_by = $4
			WHERE account_id = $1
			RETURNING balance_cents;
		`
	default:
		return 0, fmt.Errorf("%w: unknown balance bucket %q", apperrors.ErrValidation, bucket)
	}

	var newBalance int64
	err := tx.QueryRow(ctx, query, accountID, deltaCents, now, userID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountID)
		}
		return 0, fmt.Errorf("failed to adjust %s balance for account %s: %w", bucket, accountID, err)
	}
	return newBalance, nil
}

// ApplyCreditInTx increments the pending balance and the running total-received
// counter in one statement.
func (r *PgxAccountRepository) ApplyCreditInTx(ctx context.Context, tx pgx.Tx, accountID string, netCents int64, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET pending_balance_cents = pending_balance_cents + $2,
		    total_received_cents = total_received_cents + $2,
		    last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, accountID, netCents, now, userID)
	if err != nil {
		return fmt.Errorf("failed to apply credit to account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s not found during credit", apperrors.ErrNotFound, accountID)
	}
	return nil
}
