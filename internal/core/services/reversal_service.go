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
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/utils"
	"github.com/google/uuid"
)

// ReversalService is the refund/chargeback reverser. It walks the liable
// splits of a posted sale and writes one compensating debit per split, each in
// its own database transaction so one beneficiary's failure cannot block the
// others. The reference_id uniqueness constraint makes redelivery harmless.
type ReversalService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	splitRepo   portsrepo.SplitRepositoryWithTx
	txnRepo     portsrepo.TransactionRepositoryWithTx
	saleRepo    portsrepo.SaleRepositoryFacade
	notifier    portssvc.ReversalNotifier
	posthog     *utils.PosthogClientWrapper
}

// NewReversalService creates a new ReversalService.
func NewReversalService(
	repos portsrepo.RepositoryProvider,
	notifier portssvc.ReversalNotifier,
	posthog *utils.PosthogClientWrapper,
) portssvc.ReversalSvcFacade {
	return &ReversalService{
		accountRepo: repos.AccountRepo,
		splitRepo:   repos.SplitRepo,
		txnRepo:     repos.TransactionRepo,
		saleRepo:    repos.SaleRepo,
		notifier:    notifier,
		posthog:     posthog,
	}
}

// Ensure ReversalService implements the portssvc.ReversalSvcFacade interface
var _ portssvc.ReversalSvcFacade = (*ReversalService)(nil)

// ReverseSale writes compensating debits for every liable split and advances
// the sale to its terminal status. A sale already reversed for the same kind
// is a no-op; per-split failures are aggregated in the result.
func (s *ReversalService) ReverseSale(ctx context.Context, evt domain.RefundRequested, actorID string) (*domain.ReversalResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, evt.SaleID)
	if err != nil {
		return nil, err
	}

	result := domain.ReversalResult{
		SaleID: evt.SaleID,
		Kind:   evt.Kind,
	}

	if sale.PaymentStatus != domain.PaymentPaid {
		// A redelivered event for an already-reversed sale debits nothing
		// further; any other state means the poster never ran.
		if sale.PaymentStatus == evt.Kind.TerminalPaymentStatus() {
			logger.Info("Sale already reversed, skipping",
				slog.String("sale_id", evt.SaleID),
				slog.String("kind", string(evt.Kind)),
			)
			return &result, nil
		}
		return nil, fmt.Errorf("%w: sale %s has payment status %s, expected %s",
			apperrors.ErrInvalidState, evt.SaleID, sale.PaymentStatus, domain.PaymentPaid)
	}

	splits, err := s.splitRepo.FindLiableSplits(ctx, evt.SaleID, evt.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load liable splits for sale %s: %w", evt.SaleID, err)
	}

	now := time.Now()
	for _, split := range splits {
		debited, err := s.debitSplit(ctx, *sale, split, evt, actorID, now)
		if err != nil {
			logger.Error("Failed to debit liable split",
				slog.String("error", err.Error()),
				slog.String("sale_id", evt.SaleID),
				slog.String("split_id", split.SplitID),
				slog.String("split_type", string(split.SplitType)),
			)
			result.Errors = append(result.Errors, fmt.Sprintf("split %s (%s): %v", split.SplitID, split.SplitType, err))
			continue
		}
		if debited != nil {
			result.Debited = append(result.Debited, *debited)
			result.DebitedCount++
		}
	}

	// The sale reaches its terminal status even when nobody was liable: the
	// reversal itself happened at the gateway regardless of who eats it.
	if err := s.saleRepo.UpdateSaleStatus(ctx, evt.SaleID, domain.SaleCancelled, evt.Kind.TerminalPaymentStatus(), actorID, now); err != nil {
		logger.Error("Failed to mark sale reversed", slog.String("error", err.Error()), slog.String("sale_id", evt.SaleID))
		result.Errors = append(result.Errors, fmt.Sprintf("sale status: %v", err))
	}

	if len(splits) == 0 {
		logger.Warn("No liable splits for reversal",
			slog.String("sale_id", evt.SaleID),
			slog.String("kind", string(evt.Kind)),
		)
		return &result, fmt.Errorf("%w: sale %s has no splits liable for %s", apperrors.ErrNoLiableSplits, evt.SaleID, evt.Kind)
	}

	if result.DebitedCount > 0 {
		s.notifier.Notify(domain.ReversalNotice{
			SaleID:     evt.SaleID,
			Kind:       evt.Kind,
			Reason:     evt.Reason,
			Debited:    result.Debited,
			OccurredAt: now,
		})
	}

	logger.Info("Sale reversed",
		slog.String("sale_id", evt.SaleID),
		slog.String("kind", string(evt.Kind)),
		slog.Int("debited_count", result.DebitedCount),
		slog.Int("error_count", len(result.Errors)),
	)
	s.posthog.Enqueue(actorID, "sale_reversed", map[string]any{
		"sale_id":       evt.SaleID,
		"kind":          string(evt.Kind),
		"debited_count": result.DebitedCount,
		"error_count":   len(result.Errors),
	})

	return &result, nil
}

// debitSplit reverses one liable split. The idempotency insert and the balance
// decrement share a transaction scope: either both land or neither does, and a
// replayed event skips the decrement because the insert writes nothing.
// Returns nil when the split debits nothing or was already reversed.
func (s *ReversalService) debitSplit(ctx context.Context, sale domain.Sale, split domain.Split, evt domain.RefundRequested, actorID string, now time.Time) (*domain.DebitedBeneficiary, error) {
	debitCents := split.ReversalAmountCents()
	if debitCents <= 0 {
		// Nothing was credited for this split, so there is nothing to claw back.
		return nil, nil
	}

	account, err := s.accountRepo.FindAccountByID(ctx, split.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", split.AccountID, err)
	}

	bucket := s.bucketForSplit(ctx, sale.SaleID, split, now)

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin reversal transaction: %w", err)
	}
	defer s.txnRepo.Rollback(ctx, tx)

	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		AccountID:      split.AccountID,
		SaleID:         sale.SaleID,
		Type:           evt.Kind.TransactionType(),
		AmountCents:    -debitCents,
		NetAmountCents: -debitCents,
		Status:         domain.TransactionCompleted,
		ReferenceID:    fmt.Sprintf("%s:%s:%s", sale.Reference, evt.Kind, split.SplitType),
		Description:    fmt.Sprintf("%s for sale %s: %s", evt.Kind.TransactionType(), sale.SaleID, evt.Reason),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	inserted, err := s.txnRepo.InsertTransactionInTx(ctx, tx, txn)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// Already reversed by a prior delivery; the deferred rollback cleans up.
		return nil, nil
	}

	newBalance, err := s.accountRepo.AdjustBalanceInTx(ctx, tx, split.AccountID, bucket, -debitCents, actorID, now)
	if err != nil {
		return nil, err
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit reversal debit: %w", err)
	}

	return &domain.DebitedBeneficiary{
		Role:               account.Role,
		AccountID:          account.AccountID,
		HolderName:         account.HolderName,
		AmountDebitedCents: debitCents,
		NewBalanceCents:    newBalance,
		Bucket:             bucket,
	}, nil
}

// bucketForSplit decides which balance bucket the debit hits: pending while
// the original credit has not matured, available afterwards. Splits with no
// traceable credit debit the available balance.
func (s *ReversalService) bucketForSplit(ctx context.Context, saleID string, split domain.Split, now time.Time) domain.BalanceBucket {
	logger := middleware.GetLoggerFromCtx(ctx)

	var credit *domain.Transaction
	var err error
	if split.CreditTransactionID != "" {
		credit, err = s.txnRepo.FindTransactionByID(ctx, split.CreditTransactionID)
	} else {
		credit, err = s.txnRepo.FindLatestCreditForSaleAccount(ctx, saleID, split.AccountID)
	}
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Failed to trace original credit, debiting available balance",
				slog.String("error", err.Error()),
				slog.String("split_id", split.SplitID),
			)
		}
		return domain.BucketAvailable
	}

	if credit.IsMatured(now) {
		return domain.BucketAvailable
	}
	return domain.BucketPending
}
