package services

import (
	"context"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
)

// AccountSvcFacade exposes beneficiary account reads and lazy creation.
type AccountSvcFacade interface {
	// GetAccount retrieves an account by id.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// GetOrCreateAccount resolves the account for an (organization, role,
	// holder) key, creating it on first use.
	GetOrCreateAccount(ctx context.Context, orgID string, role domain.AccountRole, holderName string, holderEmail string, actorID string) (*domain.Account, error)

	// ListAccountTransactions retrieves a page of ledger entries for an account.
	ListAccountTransactions(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error)
}
