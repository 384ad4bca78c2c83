package services

import (
	"context"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
)

// ReportingSvcFacade exposes the per-sale ledger reads consumed by the
// financial dashboards.
type ReportingSvcFacade interface {
	// GetSaleSplits retrieves every split row for a sale.
	GetSaleSplits(ctx context.Context, saleID string) ([]domain.Split, error)

	// GetSaleTransactions retrieves every ledger entry originating from a sale.
	GetSaleTransactions(ctx context.Context, saleID string) ([]domain.Transaction, error)
}
