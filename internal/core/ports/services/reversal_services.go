package services

import (
	"context"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
)

// ReversalSvcFacade is the refund/chargeback reverser: it deterministically
// debits exactly the liable portions of a previously posted sale.
type ReversalSvcFacade interface {
	// ReverseSale writes compensating debits for every liable split and
	// advances the sale to its terminal status. Per-split failures are
	// aggregated in the result, not raised; duplicate invocations debit
	// nothing further.
	ReverseSale(ctx context.Context, evt domain.RefundRequested, actorID string) (*domain.ReversalResult, error)
}
