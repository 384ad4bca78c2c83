package services

import (
	"log/slog"
	"sync"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	portssvc "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/services"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/utils"
)

// AsyncReversalNotifier fans reversal notices out to debited beneficiaries on
// a background goroutine. Delivery is best-effort: the ledger is already
// consistent by the time a notice is enqueued, so a dropped or failed notice
// never affects correctness.
type AsyncReversalNotifier struct {
	queue     chan domain.ReversalNotice
	logger    *slog.Logger
	posthog   *utils.PosthogClientWrapper
	closeOnce sync.Once
	done      chan struct{}
}

// NewAsyncReversalNotifier starts the delivery goroutine.
func NewAsyncReversalNotifier(logger *slog.Logger, posthog *utils.PosthogClientWrapper, queueSize int) portssvc.ReversalNotifier {
	if queueSize <= 0 {
		queueSize = 64
	}
	n := &AsyncReversalNotifier{
		queue:   make(chan domain.ReversalNotice, queueSize),
		logger:  logger,
		posthog: posthog,
		done:    make(chan struct{}),
	}
	go n.run()
	return n
}

// Ensure AsyncReversalNotifier implements the portssvc.ReversalNotifier interface
var _ portssvc.ReversalNotifier = (*AsyncReversalNotifier)(nil)

// Notify enqueues a reversal notice for asynchronous delivery. A full queue
// drops the notice with a log line rather than blocking the reverser.
func (n *AsyncReversalNotifier) Notify(notice domain.ReversalNotice) {
	select {
	case n.queue <- notice:
	default:
		n.logger.Warn("Reversal notice queue full, dropping notice",
			slog.String("sale_id", notice.SaleID),
			slog.String("kind", string(notice.Kind)),
		)
	}
}

// Close drains the queue and stops the delivery goroutine.
func (n *AsyncReversalNotifier) Close() {
	n.closeOnce.Do(func() {
		close(n.queue)
		<-n.done
	})
}

func (n *AsyncReversalNotifier) run() {
	defer close(n.done)
	for notice := range n.queue {
		n.deliver(notice)
	}
}

// deliver alerts each debited beneficiary. Today this is structured logging
// plus an analytics event per beneficiary; an email or webhook channel slots
// in here without touching the reverser.
func (n *AsyncReversalNotifier) deliver(notice domain.ReversalNotice) {
	for _, d := range notice.Debited {
		n.logger.Info("Notifying beneficiary of reversal debit",
			slog.String("sale_id", notice.SaleID),
			slog.String("kind", string(notice.Kind)),
			slog.String("account_id", d.AccountID),
			slog.String("holder_name", d.HolderName),
			slog.String("role", string(d.Role)),
			slog.Int64("amount_debited_cents", d.AmountDebitedCents),
			slog.Int64("new_balance_cents", d.NewBalanceCents),
			slog.String("bucket", string(d.Bucket)),
			slog.String("reason", notice.Reason),
		)
		n.posthog.Enqueue(d.AccountID, "reversal_notice", map[string]any{
			"sale_id":              notice.SaleID,
			"kind":                 string(notice.Kind),
			"role":                 string(d.Role),
			"amount_debited_cents": d.AmountDebitedCents,
			"occurred_at":          notice.OccurredAt,
		})
	}
}
