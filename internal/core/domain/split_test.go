package domain_test

import (
	"testing"
	"time"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSplitLiableFor(t *testing.T) {
	split := domain.Split{LiableForRefund: true, LiableForChargeback: false}

	assert.True(t, split.LiableFor(domain.ReversalRefund))
	assert.False(t, split.LiableFor(domain.ReversalChargeback))
}

func TestSplitReversalAmountFallsBackToGross(t *testing.T) {
	withNet := domain.Split{GrossAmountCents: 10000, NetAmountCents: 9000}
	assert.Equal(t, int64(9000), withNet.ReversalAmountCents())

	// Externally imported splits carry no net amount and no credit link.
	withoutNet := domain.Split{GrossAmountCents: 10000}
	assert.Equal(t, int64(10000), withoutNet.ReversalAmountCents())
}

func TestSplitReversalAmountZeroNetCreditedSplitDebitsNothing(t *testing.T) {
	// The credit for this split applied zero to the balance; debiting the
	// gross would take back more than was ever paid out.
	credited := domain.Split{
		GrossAmountCents:    500,
		NetAmountCents:      0,
		CreditTransactionID: "txn-1",
	}
	assert.Zero(t, credited.ReversalAmountCents())

	negative := domain.Split{GrossAmountCents: 500, NetAmountCents: -100}
	assert.Zero(t, negative.ReversalAmountCents())
}

func TestTransactionIsMatured(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	completed := domain.Transaction{Status: domain.TransactionCompleted}
	assert.True(t, completed.IsMatured(now))

	pendingReleased := domain.Transaction{Status: domain.TransactionPending, ReleaseAt: &past}
	assert.True(t, pendingReleased.IsMatured(now))

	pendingHeld := domain.Transaction{Status: domain.TransactionPending, ReleaseAt: &future}
	assert.False(t, pendingHeld.IsMatured(now))

	pendingNoRelease := domain.Transaction{Status: domain.TransactionPending}
	assert.False(t, pendingNoRelease.IsMatured(now))
}

func TestReversalKindMappings(t *testing.T) {
	assert.Equal(t, domain.TransactionRefund, domain.ReversalRefund.TransactionType())
	assert.Equal(t, domain.TransactionChargeback, domain.ReversalChargeback.TransactionType())
	assert.Equal(t, domain.PaymentRefunded, domain.ReversalRefund.TerminalPaymentStatus())
	assert.Equal(t, domain.PaymentChargedBack, domain.ReversalChargeback.TerminalPaymentStatus())
}

func TestAccountBalanceFor(t *testing.T) {
	account := domain.Account{BalanceCents: 500, PendingBalanceCents: -200}

	assert.Equal(t, int64(500), account.BalanceFor(domain.BucketAvailable))
	assert.Equal(t, int64(-200), account.BalanceFor(domain.BucketPending))
}
