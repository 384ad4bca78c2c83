package services

import (
	"context"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
)

// OrganizationSvcFacade resolves tenant records and their fee policy.
type OrganizationSvcFacade interface {
	// EnsureOrganization makes sure the tenant row exists.
	EnsureOrganization(ctx context.Context, orgID string, name string, actorID string) error

	// ResolveFeePolicy returns the effective fee policy for an organization:
	// per-organization overrides where present, global defaults otherwise.
	// Resolved once per posting invocation and passed as a value.
	ResolveFeePolicy(ctx context.Context, orgID string) (domain.FeePolicy, error)
}
