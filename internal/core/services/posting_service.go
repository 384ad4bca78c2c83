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
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/dto"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/middleware"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/utils"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/utils/fees"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostingService is the split poster. It fans a paid sale's proceeds out
// across beneficiary accounts: affiliate first when attributed, the tenant
// with the platform fee deducted, and a platform-fee split that touches no
// balance. Every write is guarded by a uniqueness key so webhook retries
// cannot double-post.
type PostingService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	splitRepo   portsrepo.SplitRepositoryWithTx
	txnRepo     portsrepo.TransactionRepositoryWithTx
	saleRepo    portsrepo.SaleRepositoryFacade
	orgSvc      portssvc.OrganizationSvcFacade
	accountSvc  portssvc.AccountSvcFacade
	posthog     *utils.PosthogClientWrapper
}

// NewPostingService creates a new PostingService.
func NewPostingService(
	repos portsrepo.RepositoryProvider,
	orgSvc portssvc.OrganizationSvcFacade,
	accountSvc portssvc.AccountSvcFacade,
	posthog *utils.PosthogClientWrapper,
) portssvc.PostingSvcFacade {
	return &PostingService{
		accountRepo: repos.AccountRepo,
		splitRepo:   repos.SplitRepo,
		txnRepo:     repos.TransactionRepo,
		saleRepo:    repos.SaleRepo,
		orgSvc:      orgSvc,
		accountSvc:  accountSvc,
		posthog:     posthog,
	}
}

// Ensure PostingService implements the portssvc.PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*PostingService)(nil)

// PostSale runs once per successfully-paid sale. Re-invocation under webhook
// retry reports AlreadyPosted and writes nothing.
func (s *PostingService) PostSale(ctx context.Context, evt domain.PaymentConfirmed, actorID string) (*domain.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if evt.TotalCents <= 0 {
		return nil, fmt.Errorf("%w: sale total must be positive, got %d", apperrors.ErrValidation, evt.TotalCents)
	}
	if evt.Reference == "" {
		return nil, fmt.Errorf("%w: gateway reference is required", apperrors.ErrValidation)
	}

	// Cheap probe first; the conflict-guarded inserts below are the real
	// idempotency barrier under concurrent deliveries.
	posted, err := s.splitRepo.HasPostedSplits(ctx, evt.SaleID)
	if err != nil {
		return nil, fmt.Errorf("failed to probe existing splits for sale %s: %w", evt.SaleID, err)
	}
	if posted {
		logger.Info("Sale already posted, skipping", slog.String("sale_id", evt.SaleID))
		return s.resultFromExistingSplits(ctx, evt.SaleID, actorID)
	}

	if err := s.orgSvc.EnsureOrganization(ctx, evt.OrganizationID, "", actorID); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.saleRepo.EnsureSale(ctx, domain.Sale{
		SaleID:         evt.SaleID,
		OrganizationID: evt.OrganizationID,
		Reference:      evt.Reference,
		TotalCents:     evt.TotalCents,
		Status:         domain.SaleOpen,
		PaymentStatus:  domain.PaymentPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}); err != nil {
		return nil, err
	}

	policy, err := s.orgSvc.ResolveFeePolicy(ctx, evt.OrganizationID)
	if err != nil {
		return nil, err
	}

	feeCents, err := fees.PlatformFeeCents(policy, evt.TotalCents)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	// The affiliate allocation, when present, was attached before payment
	// confirmed. Its gross comes off the top before the tenant's share.
	var affSplit *domain.Split
	affGrossCents := int64(0)
	affSplit, err = s.splitRepo.FindAffiliateSplit(ctx, evt.SaleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load affiliate split for sale %s: %w", evt.SaleID, err)
		}
		affSplit = nil
	} else {
		affGrossCents = affSplit.GrossAmountCents
	}

	if feeCents+affGrossCents > evt.TotalCents {
		logger.Warn("Fee and affiliate allocation exceed sale total",
			slog.String("sale_id", evt.SaleID),
			slog.Int64("total_cents", evt.TotalCents),
			slog.Int64("fee_cents", feeCents),
			slog.Int64("affiliate_gross_cents", affGrossCents),
		)
		return nil, fmt.Errorf("%w: platform fee %d plus affiliate share %d exceed sale total %d",
			apperrors.ErrValidation, feeCents, affGrossCents, evt.TotalCents)
	}

	tenantGrossCents := evt.TotalCents - affGrossCents
	tenantNetCents := tenantGrossCents - feeCents

	tenantAccount, err := s.accountSvc.GetOrCreateAccount(ctx, evt.OrganizationID, domain.RoleTenant, "", "", actorID)
	if err != nil {
		return nil, err
	}

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin posting transaction for sale %s: %w", evt.SaleID, err)
	}
	defer s.txnRepo.Rollback(ctx, tx)

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}
	releaseAt := now.AddDate(0, 0, policy.ReleaseDays)

	// Tenant split: carries the platform fee and is liable for both reversal
	// kinds.
	tenantSplit := domain.Split{
		SplitID:             uuid.NewString(),
		SaleID:              evt.SaleID,
		AccountID:           tenantAccount.AccountID,
		SplitType:           domain.SplitTenant,
		GrossAmountCents:    tenantGrossCents,
		FeeCents:            feeCents,
		NetAmountCents:      tenantNetCents,
		Percentage:          fees.PercentageOf(tenantGrossCents, evt.TotalCents),
		LiableForRefund:     true,
		LiableForChargeback: true,
		AuditFields:         audit,
	}
	if _, err := s.splitRepo.SaveSplitInTx(ctx, tx, tenantSplit); err != nil {
		return nil, err
	}

	// Platform-fee split: no account, no balance effect, never liable. The
	// platform keeps its fee when the sale reverses.
	feeSplit := domain.Split{
		SplitID:          uuid.NewString(),
		SaleID:           evt.SaleID,
		SplitType:        domain.SplitPlatformFee,
		GrossAmountCents: feeCents,
		NetAmountCents:   feeCents,
		Percentage:       fees.PercentageOf(feeCents, evt.TotalCents),
		AuditFields:      audit,
	}
	if _, err := s.splitRepo.SaveSplitInTx(ctx, tx, feeSplit); err != nil {
		return nil, err
	}

	if err := s.creditSplit(ctx, tx, evt, tenantSplit, releaseAt, actorID, now); err != nil {
		return nil, err
	}
	if affSplit != nil {
		if err := s.creditSplit(ctx, tx, evt, *affSplit, releaseAt, actorID, now); err != nil {
			return nil, err
		}
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit posting for sale %s: %w", evt.SaleID, err)
	}

	if err := s.saleRepo.UpdateSaleStatus(ctx, evt.SaleID, domain.SaleOpen, domain.PaymentPaid, actorID, now); err != nil {
		logger.Error("Failed to mark sale paid after posting", slog.String("error", err.Error()), slog.String("sale_id", evt.SaleID))
		return nil, err
	}

	logger.Info("Sale posted",
		slog.String("sale_id", evt.SaleID),
		slog.Int64("platform_fee_cents", feeCents),
		slog.Int64("affiliate_gross_cents", affGrossCents),
		slog.Int64("tenant_net_cents", tenantNetCents),
	)
	s.posthog.Enqueue(actorID, "sale_posted", map[string]any{
		"sale_id":               evt.SaleID,
		"organization_id":       evt.OrganizationID,
		"total_cents":           evt.TotalCents,
		"platform_fee_cents":    feeCents,
		"affiliate_gross_cents": affGrossCents,
	})

	return &domain.PostingResult{
		SaleID:              evt.SaleID,
		PlatformFeeCents:    feeCents,
		AffiliateGrossCents: affGrossCents,
		TenantNetCents:      tenantNetCents,
	}, nil
}

// creditSplit writes the pending ledger credit for one split and applies it to
// the account's pending balance. The reference_id conflict guard turns a
// replayed delivery into a skip: when the insert writes nothing the balance is
// left alone too.
func (s *PostingService) creditSplit(ctx context.Context, tx pgx.Tx, evt domain.PaymentConfirmed, split domain.Split, releaseAt time.Time, actorID string, now time.Time) error {
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		AccountID:      split.AccountID,
		SaleID:         evt.SaleID,
		Type:           domain.TransactionCredit,
		AmountCents:    split.GrossAmountCents,
		FeeCents:       split.FeeCents,
		NetAmountCents: split.NetAmountCents,
		Status:         domain.TransactionPending,
		ReferenceID:    fmt.Sprintf("%s:credit:%s", evt.Reference, split.SplitType),
		ReleaseAt:      &releaseAt,
		Description:    fmt.Sprintf("Credit for sale %s (%s share)", evt.SaleID, split.SplitType),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	inserted, err := s.txnRepo.InsertTransactionInTx(ctx, tx, txn)
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}

	if err := s.accountRepo.ApplyCreditInTx(ctx, tx, split.AccountID, split.NetAmountCents, actorID, now); err != nil {
		return err
	}
	return s.splitRepo.LinkCreditTransactionInTx(ctx, tx, split.SplitID, txn.TransactionID)
}

// resultFromExistingSplits rebuilds the posting result from the rows a prior
// invocation wrote, so retries get the same answer. A prior run may have
// committed the splits and then failed to mark the sale paid; that write is
// re-asserted here so the sale cannot stay pending with its credits posted.
func (s *PostingService) resultFromExistingSplits(ctx context.Context, saleID string, actorID string) (*domain.PostingResult, error) {
	splits, err := s.splitRepo.FindSplitsBySale(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load splits for already-posted sale %s: %w", saleID, err)
	}

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.PaymentStatus == domain.PaymentPending {
		if err := s.saleRepo.UpdateSaleStatus(ctx, saleID, domain.SaleOpen, domain.PaymentPaid, actorID, time.Now()); err != nil {
			return nil, err
		}
	}

	result := domain.PostingResult{SaleID: saleID, AlreadyPosted: true}
	for _, split := range splits {
		switch split.SplitType {
		case domain.SplitPlatformFee:
			result.PlatformFeeCents = split.GrossAmountCents
		case domain.SplitAffiliate:
			result.AffiliateGrossCents = split.GrossAmountCents
		case domain.SplitTenant:
			result.TenantNetCents = split.NetAmountCents
		}
	}
	return &result, nil
}

// AttachAffiliateSplit records the affiliate allocation for a sale ahead of
// payment confirmation. The poster later credits the affiliate account for
// this gross amount.
func (s *PostingService) AttachAffiliateSplit(ctx context.Context, saleID string, req dto.AttachAffiliateSplitRequest, actorID string) (*domain.Split, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.PaymentStatus != domain.PaymentPending {
		return nil, fmt.Errorf("%w: cannot attach affiliate split to sale %s with payment status %s",
			apperrors.ErrInvalidState, saleID, sale.PaymentStatus)
	}
	if req.GrossAmountCents >= sale.TotalCents {
		return nil, fmt.Errorf("%w: affiliate share %d must be below sale total %d",
			apperrors.ErrValidation, req.GrossAmountCents, sale.TotalCents)
	}

	// One affiliate allocation per sale: the poster credits a single affiliate
	// split and computes the tenant remainder from it.
	if _, err := s.splitRepo.FindAffiliateSplit(ctx, saleID); err == nil {
		return nil, fmt.Errorf("%w: sale %s already has an affiliate split", apperrors.ErrDuplicate, saleID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing affiliate split for sale %s: %w", saleID, err)
	}

	account, err := s.accountSvc.GetOrCreateAccount(ctx, sale.OrganizationID, domain.RoleAffiliate, req.HolderName, req.HolderEmail, actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	split := domain.Split{
		SplitID:             uuid.NewString(),
		SaleID:              saleID,
		AccountID:           account.AccountID,
		SplitType:           domain.SplitAffiliate,
		GrossAmountCents:    req.GrossAmountCents,
		NetAmountCents:      req.GrossAmountCents,
		Percentage:          fees.PercentageOf(req.GrossAmountCents, sale.TotalCents),
		LiableForRefund:     req.RefundLiability(),
		LiableForChargeback: req.ChargebackLiability(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.splitRepo.SaveSplit(ctx, split); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Affiliate split already attached", slog.String("sale_id", saleID))
		}
		return nil, err
	}

	logger.Info("Affiliate split attached",
		slog.String("sale_id", saleID),
		slog.String("account_id", account.AccountID),
		slog.Int64("gross_amount_cents", req.GrossAmountCents),
	)
	return &split, nil
}
