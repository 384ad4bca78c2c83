package repositories

import (
	"context"
	"time"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
)

// SaleReader defines read operations for the CRM-owned sale rows.
type SaleReader interface {
	// FindSaleByID retrieves a sale by its identifier.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
}

// SaleWriter defines the writes the engine performs on sales.
type SaleWriter interface {
	// EnsureSale inserts the sale row if it does not exist yet. Existing rows
	// are left untouched; the CRM owns their contents.
	EnsureSale(ctx context.Context, sale domain.Sale) error

	// UpdateSaleStatus advances the sale's status and payment status.
	UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, paymentStatus domain.PaymentStatus, userID string, now time.Time) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
