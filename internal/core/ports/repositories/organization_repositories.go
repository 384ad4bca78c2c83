package repositories

import (
	"context"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
)

// OrganizationReader defines read operations for platform tenants.
type OrganizationReader interface {
	// FindOrganizationByID retrieves an organization by its identifier.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
}

// OrganizationWriter defines write operations for platform tenants.
type OrganizationWriter interface {
	// EnsureOrganization inserts the organization if it does not exist yet.
	EnsureOrganization(ctx context.Context, org domain.Organization) error
}

// OrganizationRepositoryFacade combines all organization repository interfaces.
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
