package services

import "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"

// ReversalNotifier receives the list of beneficiaries debited by a reversal
// and fans alerts out to them. Implementations must never block the caller:
// ledger correctness does not depend on notification delivery.
type ReversalNotifier interface {
	// Notify enqueues a reversal notice for asynchronous delivery.
	Notify(notice domain.ReversalNotice)

	// Close drains the queue and releases resources.
	Close()
}
