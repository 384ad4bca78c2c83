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

type PgxOrganizationRepository struct {
	pool *pgxpool.Pool
}

// newPgxOrganizationRepository creates a new repository for platform tenants.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{pool: pool}
}

// Ensure PgxOrganizationRepository implements portsrepo.OrganizationRepositoryFacade
var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

// FindOrganizationByID retrieves an organization by its identifier.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, name, fee_percentage, fee_fixed_cents, release_days,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`
	var m models.Organization
	err := r.pool.QueryRow(ctx, query, organizationID).Scan(
		&m.OrganizationID,
		&m.Name,
		&m.FeePercentage,
		&m.FeeFixedCents,
		&m.ReleaseDays,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by ID %s: %w", organizationID, err)
	}

	org := domain.Organization{
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		FeePercentage:  m.FeePercentage,
		FeeFixedCents:  m.FeeFixedCents,
		ReleaseDays:    m.ReleaseDays,
		AuditFields:    mapping.ToDomainAuditFields(m.AuditFields),
	}
	return &org, nil
}

// EnsureOrganization inserts the organization if it does not exist yet.
func (r *PgxOrganizationRepository) EnsureOrganization(ctx context.Context, org domain.Organization) error {
	query := `
		INSERT INTO organizations (organization_id, name, fee_percentage, fee_fixed_cents, release_days,
		                           created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (organization_id) DO NOTHING;
	`
	_, err := r.pool.Exec(ctx, query,
		org.OrganizationID,
		org.Name,
		org.FeePercentage,
		org.FeeFixedCents,
		org.ReleaseDays,
		org.CreatedAt,
		org.CreatedBy,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure organization %s: %w", org.OrganizationID, err)
	}
	return nil
}
