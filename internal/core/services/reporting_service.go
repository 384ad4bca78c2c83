package services

import (
	"context"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	portsrepo "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/services"
)

// ReportingService exposes the per-sale ledger reads consumed by the
// financial dashboards.
type ReportingService struct {
	splitRepo portsrepo.SplitRepositoryWithTx
	txnRepo   portsrepo.TransactionRepositoryWithTx
	saleRepo  portsrepo.SaleRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(repos portsrepo.RepositoryProvider) portssvc.ReportingSvcFacade {
	return &ReportingService{
		splitRepo: repos.SplitRepo,
		txnRepo:   repos.TransactionRepo,
		saleRepo:  repos.SaleRepo,
	}
}

// Ensure ReportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// GetSaleSplits retrieves every split row for a sale.
func (s *ReportingService) GetSaleSplits(ctx context.Context, saleID string) ([]domain.Split, error) {
	if _, err := s.saleRepo.FindSaleByID(ctx, saleID); err != nil {
		return nil, err
	}
	return s.splitRepo.FindSplitsBySale(ctx, saleID)
}

// GetSaleTransactions retrieves every ledger entry originating from a sale.
func (s *ReportingService) GetSaleTransactions(ctx context.Context, saleID string) ([]domain.Transaction, error) {
	if _, err := s.saleRepo.FindSaleByID(ctx, saleID); err != nil {
		return nil, err
	}
	return s.txnRepo.ListTransactionsBySale(ctx, saleID)
}
