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

type PgxSaleRepository struct {
	pool *pgxpool.Pool
}

// newPgxSaleRepository creates a new repository for the CRM-owned sale rows.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{pool: pool}
}

// Ensure PgxSaleRepository implements portsrepo.SaleRepositoryFacade
var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

// FindSaleByID retrieves a sale by its identifier.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `
		SELECT sale_id, organization_id, reference, total_cents, status, payment_status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM sales
		WHERE sale_id = $1;
	`
	var m models.Sale
	err := r.pool.QueryRow(ctx, query, saleID).Scan(
		&m.SaleID,
		&m.OrganizationID,
		&m.Reference,
		&m.TotalCents,
		&m.Status,
		&m.PaymentStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID %s: %w", saleID, err)
	}

	sale := mapping.ToDomainSale(m)
	return &sale, nil
}

// EnsureSale inserts the sale row if it does not exist yet. Existing rows are
// left untouched; the CRM owns their contents.
func (r *PgxSaleRepository) EnsureSale(ctx context.Context, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)

	query := `
		INSERT INTO sales (sale_id, organization_id, reference, total_cents, status, payment_status,
		                   created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (sale_id) DO NOTHING;
	`
	_, err := r.pool.Exec(ctx, query,
		m.SaleID,
		m.OrganizationID,
		m.Reference,
		m.TotalCents,
		m.Status,
		m.PaymentStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure sale %s: %w", m.SaleID, err)
	}
	return nil
}

// UpdateSaleStatus advances the sale's status and payment status.
func (r *PgxSaleRepository) UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, paymentStatus domain.PaymentStatus, userID string, now time.Time) error {
	query := `
		UPDATE sales
		SET status = $2, payment_status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE sale_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, saleID, string(status), string(paymentStatus), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status for sale %s: %w", saleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
