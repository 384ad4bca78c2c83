package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/apperrors"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	portsrepo "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/services"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/middleware"
	"github.com/google/uuid"
)

// AccountService handles beneficiary account reads and lazy creation.
type AccountService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	txnRepo     portsrepo.TransactionRepositoryWithTx
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx, txnRepo portsrepo.TransactionRepositoryWithTx) portssvc.AccountSvcFacade {
	return &AccountService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

// Ensure AccountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// GetAccount retrieves an account by id.
func (s *AccountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetOrCreateAccount resolves the account for an (organization, role, holder
// email) key, creating it with zero balances on first use. Accounts are never
// created ahead of need.
func (s *AccountService) GetOrCreateAccount(ctx context.Context, orgID string, role domain.AccountRole, holderName string, holderEmail string, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if orgID == "" {
		return nil, fmt.Errorf("%w: organization id is required", apperrors.ErrValidation)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: orgID,
		Role:           role,
		HolderName:     holderName,
		HolderEmail:    holderEmail,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	stored, err := s.accountRepo.GetOrCreateAccount(ctx, account)
	if err != nil {
		logger.Error("Failed to get or create account",
			slog.String("error", err.Error()),
			slog.String("organization_id", orgID),
			slog.String("role", string(role)),
		)
		return nil, fmt.Errorf("failed to get or create %s account for organization %s: %w", role, orgID, err)
	}
	return stored, nil
}

// ListAccountTransactions retrieves a page of ledger entries for an account,
// newest first.
func (s *AccountService) ListAccountTransactions(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.txnRepo.ListTransactionsByAccount(ctx, accountID, limit, offset)
}
