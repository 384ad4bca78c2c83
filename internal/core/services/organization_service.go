package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/apperrors"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	portsrepo "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/services"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/middleware"
)

// OrganizationService resolves tenant records and their effective fee policy.
type OrganizationService struct {
	orgRepo  portsrepo.OrganizationRepositoryFacade
	defaults domain.FeePolicy
}

// NewOrganizationService creates a new OrganizationService. defaults is the
// global fee policy from configuration; per-organization overrides win.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade, defaults domain.FeePolicy) portssvc.OrganizationSvcFacade {
	return &OrganizationService{
		orgRepo:  orgRepo,
		defaults: defaults,
	}
}

// Ensure OrganizationService implements the portssvc.OrganizationSvcFacade interface
var _ portssvc.OrganizationSvcFacade = (*OrganizationService)(nil)

// EnsureOrganization makes sure the tenant row exists. Existing rows keep
// their name and overrides.
func (s *OrganizationService) EnsureOrganization(ctx context.Context, orgID string, name string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if orgID == "" {
		return fmt.Errorf("%w: organization id is required", apperrors.ErrValidation)
	}
	if name == "" {
		name = orgID
	}

	now := time.Now()
	org := domain.Organization{
		OrganizationID: orgID,
		Name:           name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.orgRepo.EnsureOrganization(ctx, org); err != nil {
		logger.Error("Failed to ensure organization", slog.String("error", err.Error()), slog.String("organization_id", orgID))
		return fmt.Errorf("failed to ensure organization %s: %w", orgID, err)
	}
	return nil
}

// ResolveFeePolicy returns the effective fee policy for an organization:
// per-organization overrides where present, global defaults otherwise. An
// unknown organization gets the defaults.
func (s *OrganizationService) ResolveFeePolicy(ctx context.Context, orgID string) (domain.FeePolicy, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	org, err := s.orgRepo.FindOrganizationByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.defaults, nil
		}
		logger.Error("Failed to load organization for fee policy", slog.String("error", err.Error()), slog.String("organization_id", orgID))
		return domain.FeePolicy{}, fmt.Errorf("failed to resolve fee policy for organization %s: %w", orgID, err)
	}

	policy := s.defaults
	if org.FeePercentage != nil {
		policy.Percentage = *org.FeePercentage
	}
	if org.FeeFixedCents != nil {
		policy.FixedCents = *org.FeeFixedCents
	}
	if org.ReleaseDays != nil {
		policy.ReleaseDays = *org.ReleaseDays
	}
	return policy, nil
}
