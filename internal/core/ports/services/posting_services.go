package services

import (
	"context"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/dto"
)

// PostingSvcFacade is the split poster: it fans a paid sale's proceeds out
// across beneficiary accounts. Safe to invoke repeatedly for the same sale.
type PostingSvcFacade interface {
	// PostSale runs once per successfully-paid sale: computes the platform fee,
	// credits the affiliate when an attribution split exists, creates the
	// tenant and platform-fee splits, writes pending ledger credits and updates
	// pending balances. Re-invocation under webhook retry is a no-op.
	PostSale(ctx context.Context, evt domain.PaymentConfirmed, actorID string) (*domain.PostingResult, error)

	// AttachAffiliateSplit records the affiliate allocation for a sale ahead of
	// payment confirmation.
	AttachAffiliateSplit(ctx context.Context, saleID string, req dto.AttachAffiliateSplitRequest, actorID string) (*domain.Split, error)
}
