package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/apperrors"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	portsrepo "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/repositories"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/models"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const splitColumns = `split_id, sale_id, account_id, split_type,
	gross_amount_cents, fee_cents, net_amount_cents, percentage,
	liable_for_refund, liable_for_chargeback, credit_transaction_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxSplitRepository struct {
	BaseRepository
}

// newPgxSplitRepository creates a new repository for split rows.
func newPgxSplitRepository(pool *pgxpool.Pool) portsrepo.SplitRepositoryWithTx {
	return &PgxSplitRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSplitRepository implements portsrepo.SplitRepositoryWithTx
var _ portsrepo.SplitRepositoryWithTx = (*PgxSplitRepository)(nil)

func scanSplit(row pgx.Row) (*domain.Split, error) {
	var m models.Split
	var accountID sql.NullString
	var creditTxnID sql.NullString
	err := row.Scan(
		&m.SplitID,
		&m.SaleID,
		&accountID,
		&m.SplitType,
		&m.GrossAmountCents,
		&m.FeeCents,
		&m.NetAmountCents,
		&m.Percentage,
		&m.LiableForRefund,
		&m.LiableForChargeback,
		&creditTxnID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if accountID.Valid {
		m.AccountID = accountID.String
	}
	if creditTxnID.Valid {
		m.CreditTransactionID = creditTxnID.String
	}
	split := mapping.ToDomainSplit(m)
	return &split, nil
}

func splitInsertArgs(m models.Split) []any {
	// Platform-fee rows carry no account; empty strings become NULLs.
	var accountID sql.NullString
	if m.AccountID != "" {
		accountID = sql.NullString{String: m.AccountID, Valid: true}
	}
	var creditTxnID sql.NullString
	if m.CreditTransactionID != "" {
		creditTxnID = sql.NullString{String: m.CreditTransactionID, Valid: true}
	}
	return []any{
		m.SplitID,
		m.SaleID,
		accountID,
		m.SplitType,
		m.GrossAmountCents,
		m.FeeCents,
		m.NetAmountCents,
		m.Percentage,
		m.LiableForRefund,
		m.LiableForChargeback,
		creditTxnID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

const splitInsertQuery = `
	INSERT INTO splits (` + splitColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

// SaveSplit inserts a new split row. A duplicate (sale, type, account) key
// surfaces apperrors.ErrDuplicate.
func (r *PgxSplitRepository) SaveSplit(ctx context.Context, split domain.Split) error {
	m := mapping.ToModelSplit(split)

	_, err := r.Pool.Exec(ctx, splitInsertQuery+";", splitInsertArgs(m)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: split of type %s already exists for sale %s", apperrors.ErrDuplicate, m.SplitType, m.SaleID)
		}
		return fmt.Errorf("failed to save split for sale %s: %w", m.SaleID, err)
	}
	return nil
}

// SaveSplitInTx inserts a split row with conflict-ignore semantics and reports
// whether a row was actually written. Retried postings fall through here
// without duplicating allocations.
func (r *PgxSplitRepository) SaveSplitInTx(ctx context.Context, tx pgx.Tx, split domain.Split) (bool, error) {
	m := mapping.ToModelSplit(split)

	query := splitInsertQuery + `
	ON CONFLICT (sale_id, split_type, COALESCE(account_id, '')) DO NOTHING;`

	cmdTag, err := tx.Exec(ctx, query, splitInsertArgs(m)...)
	if err != nil {
		return false, fmt.Errorf("failed to save split for sale %s: %w", m.SaleID, err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

// LinkCreditTransactionInTx records the id of the original credit transaction
// on the split row, so reversal can locate the credit without relying on the
// most-recent heuristic.
func (r *PgxSplitRepository) LinkCreditTransactionInTx(ctx context.Context, tx pgx.Tx, splitID string, transactionID string) error {
	query := `
		UPDATE splits
		SET credit_transaction_id = $2
		WHERE split_id = $1 AND credit_transaction_id IS NULL;
	`
	_, err := tx.Exec(ctx, query, splitID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to link credit transaction for split %s: %w", splitID, err)
	}
	return nil
}

// HasPostedSplits probes for an existing tenant or platform-fee split for the
// sale. A hit means the poster already ran.
func (r *PgxSplitRepository) HasPostedSplits(ctx context.Context, saleID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM splits
			WHERE sale_id = $1 AND split_type IN ($2, $3)
		);
	`
	var exists bool
	err := r.Pool.QueryRow(ctx, query, saleID, models.SplitType(domain.SplitTenant), models.SplitType(domain.SplitPlatformFee)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to probe posted splits for sale %s: %w", saleID, err)
	}
	return exists, nil
}

// FindSplitsBySale retrieves every split row for a sale.
func (r *PgxSplitRepository) FindSplitsBySale(ctx context.Context, saleID string) ([]domain.Split, error) {
	query := `
		SELECT ` + splitColumns + `
		FROM splits
		WHERE sale_id = $1
		ORDER BY created_at, split_type;
	`
	return r.querySplits(ctx, query, saleID)
}

// FindAffiliateSplit retrieves the affiliate split for a sale.
func (r *PgxSplitRepository) FindAffiliateSplit(ctx context.Context, saleID string) (*domain.Split, error) {
	query := `
		SELECT ` + splitColumns + `
		FROM splits
		WHERE sale_id = $1 AND split_type = $2;
	`
	split, err := scanSplit(r.Pool.QueryRow(ctx, query, saleID, models.SplitType(domain.SplitAffiliate)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find affiliate split for sale %s: %w", saleID, err)
	}
	return split, nil
}

// FindLiableSplits retrieves splits whose liability flag for the given
// reversal kind is set. Platform-fee rows never match: their flags are false
// by construction.
func (r *PgxSplitRepository) FindLiableSplits(ctx context.Context, saleID string, kind domain.ReversalKind) ([]domain.Split, error) {
	liabilityColumn := "liable_for_refund"
	if kind == domain.ReversalChargeback {
		liabilityColumn = "liable_for_chargeback"
	}

	query := `
		SELECT ` + splitColumns + `
		FROM splits
		WHERE sale_id = $1 AND ` + liabilityColumn + ` = TRUE
		ORDER BY created_at, split_type;
	`
	return r.querySplits(ctx, query, saleID)
}

func (r *PgxSplitRepository) querySplits(ctx context.Context, query string, args ...any) ([]domain.Split, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer rows.Close()

	splits := []domain.Split{}
	for rows.Next() {
		split, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split row: %w", err)
		}
		splits = append(splits, *split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating split rows: %w", err)
	}
	return splits, nil
}
