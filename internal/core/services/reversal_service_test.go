package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/apperrors"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	portsrepo "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/services"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/services"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type ReversalServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockSplitRepo   *MockSplitRepository
	mockTxnRepo     *MockTransactionRepository
	mockSaleRepo    *MockSaleRepository
	mockNotifier    *MockReversalNotifier
	service         portssvc.ReversalSvcFacade
	sale            *domain.Sale
	actorID         string
}

func (suite *ReversalServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSplitRepo = new(MockSplitRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockNotifier = new(MockReversalNotifier)

	repos := portsrepo.RepositoryProvider{
		AccountRepo:      suite.mockAccountRepo,
		SplitRepo:        suite.mockSplitRepo,
		TransactionRepo:  suite.mockTxnRepo,
		SaleRepo:         suite.mockSaleRepo,
		OrganizationRepo: new(MockOrganizationRepository),
	}
	suite.service = services.NewReversalService(repos, suite.mockNotifier, &utils.PosthogClientWrapper{})

	suite.sale = &domain.Sale{
		SaleID:         uuid.NewString(),
		OrganizationID: uuid.NewString(),
		Reference:      "REF123",
		TotalCents:     10000,
		Status:         domain.SaleOpen,
		PaymentStatus:  domain.PaymentPaid,
	}
	suite.actorID = "admin-1"
}

// liableSplit builds a split linked to a credit with the given maturation.
func (suite *ReversalServiceTestSuite) liableSplit(splitType domain.SplitType, netCents int64, matured bool) (domain.Split, *domain.Transaction, *domain.Account) {
	accountID := uuid.NewString()
	creditID := uuid.NewString()

	release := time.Now().Add(72 * time.Hour)
	credit := &domain.Transaction{
		TransactionID: creditID,
		AccountID:     accountID,
		SaleID:        suite.sale.SaleID,
		Type:          domain.TransactionCredit,
		Status:        domain.TransactionPending,
		ReleaseAt:     &release,
	}
	if matured {
		credit.Status = domain.TransactionCompleted
	}

	split := domain.Split{
		SplitID:             uuid.NewString(),
		SaleID:              suite.sale.SaleID,
		AccountID:           accountID,
		SplitType:           splitType,
		GrossAmountCents:    netCents,
		NetAmountCents:      netCents,
		LiableForRefund:     true,
		LiableForChargeback: true,
		CreditTransactionID: creditID,
	}

	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.sale.OrganizationID,
		Role:           domain.RoleTenant,
		HolderName:     "Holder " + accountID[:8],
	}
	return split, credit, account
}

func (suite *ReversalServiceTestSuite) TestReverseSaleRefund() {
	evt := domain.RefundRequested{
		SaleID:      suite.sale.SaleID,
		AmountCents: 10000,
		Reason:      "customer request",
		Kind:        domain.ReversalRefund,
	}

	// Tenant credit still pending, affiliate credit already matured.
	tenantSplit, tenantCredit, tenantAccount := suite.liableSplit(domain.SplitTenant, 7000, false)
	affSplit, affCredit, affAccount := suite.liableSplit(domain.SplitAffiliate, 2000, true)
	affAccount.Role = domain.RoleAffiliate

	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, suite.sale.SaleID).Return(suite.sale, nil)
	suite.mockSplitRepo.On("FindLiableSplits", mock.Anything, suite.sale.SaleID, domain.ReversalRefund).
		Return([]domain.Split{tenantSplit, affSplit}, nil)

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, tenantAccount.AccountID).Return(tenantAccount, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, affAccount.AccountID).Return(affAccount, nil)
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, tenantCredit.TransactionID).Return(tenantCredit, nil)
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, affCredit.TransactionID).Return(affCredit, nil)

	suite.mockTxnRepo.On("Begin", mock.Anything).Return(nil, nil)
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)
	suite.mockTxnRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)

	var insertedTxns []domain.Transaction
	suite.mockTxnRepo.On("InsertTransactionInTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			insertedTxns = append(insertedTxns, args.Get(2).(domain.Transaction))
		}).Return(true, nil)

	suite.mockAccountRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, tenantAccount.AccountID, domain.BucketPending, int64(-7000), suite.actorID, mock.Anything).Return(int64(-1500), nil)
	suite.mockAccountRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, affAccount.AccountID, domain.BucketAvailable, int64(-2000), suite.actorID, mock.Anything).Return(int64(500), nil)

	suite.mockSaleRepo.On("UpdateSaleStatus", mock.Anything, suite.sale.SaleID, domain.SaleCancelled, domain.PaymentRefunded, suite.actorID, mock.Anything).Return(nil)

	var notice domain.ReversalNotice
	suite.mockNotifier.On("Notify", mock.Anything).Run(func(args mock.Arguments) {
		notice = args.Get(0).(domain.ReversalNotice)
	}).Return()

	result, err := suite.service.ReverseSale(context.Background(), evt, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	assert.Equal(suite.T(), 2, result.DebitedCount)
	assert.Empty(suite.T(), result.Errors)

	suite.Require().Len(insertedTxns, 2)
	assert.Equal(suite.T(), domain.TransactionRefund, insertedTxns[0].Type)
	assert.Equal(suite.T(), domain.TransactionCompleted, insertedTxns[0].Status)
	assert.Equal(suite.T(), int64(-7000), insertedTxns[0].AmountCents)
	assert.Equal(suite.T(), "REF123:refund:TENANT", insertedTxns[0].ReferenceID)
	assert.Equal(suite.T(), "REF123:refund:AFFILIATE", insertedTxns[1].ReferenceID)

	// Balances can go negative after a reversal.
	assert.Equal(suite.T(), int64(-1500), result.Debited[0].NewBalanceCents)
	assert.Equal(suite.T(), domain.BucketPending, result.Debited[0].Bucket)
	assert.Equal(suite.T(), domain.BucketAvailable, result.Debited[1].Bucket)

	assert.Equal(suite.T(), suite.sale.SaleID, notice.SaleID)
	assert.Len(suite.T(), notice.Debited, 2)

	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ReversalServiceTestSuite) TestReverseSaleChargebackSparesExemptAffiliate() {
	evt := domain.RefundRequested{
		SaleID: suite.sale.SaleID,
		Kind:   domain.ReversalChargeback,
		Reason: "bank dispute",
	}
	tenantSplit, tenantCredit, tenantAccount := suite.liableSplit(domain.SplitTenant, 7000, true)

	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, suite.sale.SaleID).Return(suite.sale, nil)
	// The store only returns chargeback-liable splits; the exempt affiliate
	// never shows up here.
	suite.mockSplitRepo.On("FindLiableSplits", mock.Anything, suite.sale.SaleID, domain.ReversalChargeback).
		Return([]domain.Split{tenantSplit}, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, tenantAccount.AccountID).Return(tenantAccount, nil)
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, tenantCredit.TransactionID).Return(tenantCredit, nil)
	suite.mockTxnRepo.On("Begin", mock.Anything).Return(nil, nil)
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)
	suite.mockTxnRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)

	var inserted domain.Transaction
	suite.mockTxnRepo.On("InsertTransactionInTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			inserted = args.Get(2).(domain.Transaction)
		}).Return(true, nil)
	suite.mockAccountRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, tenantAccount.AccountID, domain.BucketAvailable, int64(-7000), suite.actorID, mock.Anything).Return(int64(-7000), nil)
	suite.mockSaleRepo.On("UpdateSaleStatus", mock.Anything, suite.sale.SaleID, domain.SaleCancelled, domain.PaymentChargedBack, suite.actorID, mock.Anything).Return(nil)
	suite.mockNotifier.On("Notify", mock.Anything).Return()

	result, err := suite.service.ReverseSale(context.Background(), evt, suite.actorID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 1, result.DebitedCount)
	assert.Equal(suite.T(), domain.TransactionChargeback, inserted.Type)
	assert.Equal(suite.T(), "REF123:chargeback:TENANT", inserted.ReferenceID)
}

func (suite *ReversalServiceTestSuite) TestReverseSaleAlreadyReversed() {
	suite.sale.PaymentStatus = domain.PaymentRefunded
	evt := domain.RefundRequested{SaleID: suite.sale.SaleID, Kind: domain.ReversalRefund}

	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, suite.sale.SaleID).Return(suite.sale, nil)

	result, err := suite.service.ReverseSale(context.Background(), evt, suite.actorID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 0, result.DebitedCount)
	suite.mockSplitRepo.AssertNotCalled(suite.T(), "FindLiableSplits", mock.Anything, mock.Anything, mock.Anything)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "UpdateSaleStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestReverseSaleNotPaid() {
	suite.sale.PaymentStatus = domain.PaymentPending
	evt := domain.RefundRequested{SaleID: suite.sale.SaleID, Kind: domain.ReversalRefund}

	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, suite.sale.SaleID).Return(suite.sale, nil)

	result, err := suite.service.ReverseSale(context.Background(), evt, suite.actorID)

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidState)
	assert.Nil(suite.T(), result)
}

func (suite *ReversalServiceTestSuite) TestReverseSaleNoLiableSplits() {
	evt := domain.RefundRequested{SaleID: suite.sale.SaleID, Kind: domain.ReversalChargeback}

	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, suite.sale.SaleID).Return(suite.sale, nil)
	suite.mockSplitRepo.On("FindLiableSplits", mock.Anything, suite.sale.SaleID, domain.ReversalChargeback).
		Return([]domain.Split{}, nil)
	suite.mockSaleRepo.On("UpdateSaleStatus", mock.Anything, suite.sale.SaleID, domain.SaleCancelled, domain.PaymentChargedBack, suite.actorID, mock.Anything).Return(nil)

	result, err := suite.service.ReverseSale(context.Background(), evt, suite.actorID)

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNoLiableSplits)
	suite.Require().NotNil(result)
	assert.Equal(suite.T(), 0, result.DebitedCount)

	// The sale still reaches its terminal status.
	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestReverseSaleDuplicateDelivery() {
	evt := domain.RefundRequested{SaleID: suite.sale.SaleID, Kind: domain.ReversalRefund}
	tenantSplit, tenantCredit, tenantAccount := suite.liableSplit(domain.SplitTenant, 7000, true)

	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, suite.sale.SaleID).Return(suite.sale, nil)
	suite.mockSplitRepo.On("FindLiableSplits", mock.Anything, suite.sale.SaleID, domain.ReversalRefund).
		Return([]domain.Split{tenantSplit}, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, tenantAccount.AccountID).Return(tenantAccount, nil)
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, tenantCredit.TransactionID).Return(tenantCredit, nil)
	suite.mockTxnRepo.On("Begin", mock.Anything).Return(nil, nil)
	// A noisy rollback on the benign skip must not surface as a split failure.
	suite.mockTxnRepo.On("Rollback", mock.Anything, mock.Anything).Return(errors.New("tx already closed"))
	// The reference already exists: a prior delivery debited this split.
	suite.mockTxnRepo.On("InsertTransactionInTx", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	suite.mockSaleRepo.On("UpdateSaleStatus", mock.Anything, suite.sale.SaleID, domain.SaleCancelled, domain.PaymentRefunded, suite.actorID, mock.Anything).Return(nil)

	result, err := suite.service.ReverseSale(context.Background(), evt, suite.actorID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 0, result.DebitedCount)
	assert.Empty(suite.T(), result.Errors)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "AdjustBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestReverseSaleSkipsZeroNetSplit() {
	evt := domain.RefundRequested{SaleID: suite.sale.SaleID, Kind: domain.ReversalRefund}
	tenantSplit, tenantCredit, tenantAccount := suite.liableSplit(domain.SplitTenant, 7000, true)

	// This split's credit applied nothing to the balance; debiting its gross
	// would claw back money that was never paid out.
	zeroNetSplit := domain.Split{
		SplitID:             uuid.NewString(),
		SaleID:              suite.sale.SaleID,
		AccountID:           uuid.NewString(),
		SplitType:           domain.SplitCoproducer,
		GrossAmountCents:    500,
		NetAmountCents:      0,
		LiableForRefund:     true,
		CreditTransactionID: uuid.NewString(),
	}

	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, suite.sale.SaleID).Return(suite.sale, nil)
	suite.mockSplitRepo.On("FindLiableSplits", mock.Anything, suite.sale.SaleID, domain.ReversalRefund).
		Return([]domain.Split{tenantSplit, zeroNetSplit}, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, tenantAccount.AccountID).Return(tenantAccount, nil)
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, tenantCredit.TransactionID).Return(tenantCredit, nil)
	suite.mockTxnRepo.On("Begin", mock.Anything).Return(nil, nil)
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)
	suite.mockTxnRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockTxnRepo.On("InsertTransactionInTx", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	suite.mockAccountRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, tenantAccount.AccountID, domain.BucketAvailable, int64(-7000), suite.actorID, mock.Anything).Return(int64(0), nil)
	suite.mockSaleRepo.On("UpdateSaleStatus", mock.Anything, suite.sale.SaleID, domain.SaleCancelled, domain.PaymentRefunded, suite.actorID, mock.Anything).Return(nil)
	suite.mockNotifier.On("Notify", mock.Anything).Return()

	result, err := suite.service.ReverseSale(context.Background(), evt, suite.actorID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 1, result.DebitedCount)
	assert.Empty(suite.T(), result.Errors)
	assert.Equal(suite.T(), tenantAccount.AccountID, result.Debited[0].AccountID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, zeroNetSplit.AccountID)
}

func (suite *ReversalServiceTestSuite) TestReverseSalePartialFailure() {
	evt := domain.RefundRequested{SaleID: suite.sale.SaleID, Kind: domain.ReversalRefund, Reason: "dispute"}
	tenantSplit, tenantCredit, tenantAccount := suite.liableSplit(domain.SplitTenant, 7000, true)
	affSplit, affCredit, affAccount := suite.liableSplit(domain.SplitAffiliate, 2000, true)

	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, suite.sale.SaleID).Return(suite.sale, nil)
	suite.mockSplitRepo.On("FindLiableSplits", mock.Anything, suite.sale.SaleID, domain.ReversalRefund).
		Return([]domain.Split{tenantSplit, affSplit}, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, tenantAccount.AccountID).Return(tenantAccount, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, affAccount.AccountID).Return(affAccount, nil)
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, tenantCredit.TransactionID).Return(tenantCredit, nil)
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, affCredit.TransactionID).Return(affCredit, nil)
	suite.mockTxnRepo.On("Begin", mock.Anything).Return(nil, nil)
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil)
	suite.mockTxnRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockTxnRepo.On("InsertTransactionInTx", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	// Tenant debit fails; affiliate debit must still land.
	suite.mockAccountRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, tenantAccount.AccountID, domain.BucketAvailable, int64(-7000), suite.actorID, mock.Anything).
		Return(int64(0), errors.New("connection reset"))
	suite.mockAccountRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, affAccount.AccountID, domain.BucketAvailable, int64(-2000), suite.actorID, mock.Anything).
		Return(int64(0), nil)
	suite.mockSaleRepo.On("UpdateSaleStatus", mock.Anything, suite.sale.SaleID, domain.SaleCancelled, domain.PaymentRefunded, suite.actorID, mock.Anything).Return(nil)
	suite.mockNotifier.On("Notify", mock.Anything).Return()

	result, err := suite.service.ReverseSale(context.Background(), evt, suite.actorID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), 1, result.DebitedCount)
	suite.Require().Len(result.Errors, 1)
	assert.Contains(suite.T(), result.Errors[0], tenantSplit.SplitID)
	assert.Equal(suite.T(), affAccount.AccountID, result.Debited[0].AccountID)
}

func TestReversalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReversalServiceTestSuite))
}
