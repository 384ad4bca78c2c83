package pgsql

import (
	portsrepo "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		SplitRepo:        newPgxSplitRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		SaleRepo:         newPgxSaleRepository(dbPool),
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
	}
}
