package transaction

import (
	"time"

	pkgerrors "vpos-orchestrator/pkg/errors"
)

// allowedTransitions is the directed graph from spec.md §4.5's state
// machine diagram. Grounded on the teacher's ValidateStatusTransition
// allow-list idiom (internal/domain/payment/service.go), generalized from
// a five-state payment lifecycle to this transaction's graph.
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusSuccess, StatusFailed},
	// success/failed/cancelled are terminal for the primary transaction;
	// refund/cancel are modeled as separate child transactions (see
	// Service.NewChildTransaction) rather than further outbound edges of
	// the parent's own Status field.
	StatusSuccess:   {},
	StatusFailed:    {},
	StatusCancelled: {},
}

// ValidateTransition reports whether moving from `current` to `next` is a
// legal edge of the state graph.
func ValidateTransition(current, next Status) bool {
	if current == next {
		return false
	}
	for _, allowed := range allowedTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Service hosts the transaction-entity invariants that don't belong to the
// store (encryption, persistence) or the orchestrator (cross-aggregate
// coordination): status transitions, CVV zeroization, and log appends.
type Service struct{}

func NewService() *Service { return &Service{} }

// Transition validates and applies a status change, stamping CompletedAt
// when the transaction reaches a terminal state and zeroing the CVV the
// instant it reaches success, per spec.md invariant 4.
func (s *Service) Transition(e *Entity, next Status) error {
	if !ValidateTransition(e.Status, next) {
		return pkgerrors.ErrState.Wrap(errInvalidTransition{from: e.Status, to: next})
	}
	e.Status = next
	if next == StatusSuccess {
		e.Card.CVV = ""
	}
	if e.IsTerminalState() {
		now := time.Now()
		e.CompletedAt = &now
	}
	return nil
}

// AppendLog appends a new log entry. tx.Logs is append-only: this is the
// only mutator of the slice, and it never rewrites an existing element.
func (s *Service) AppendLog(e *Entity, entry LogEntry) {
	entry.At = time.Now()
	e.Logs = append(e.Logs, entry)
}

// NewChildTransaction builds a refund or cancel child transaction keyed by
// the original's terminal and amount, per spec.md §3's "refund/cancel may
// move a subsequent child transaction to success while the original gains
// refundedAt/cancelledAt" rule.
func (s *Service) NewChildTransaction(original Entity, id string, kind LogType) (Entity, error) {
	if original.Status != StatusSuccess {
		return Entity{}, pkgerrors.ErrState.Wrap(errInvalidTransition{from: original.Status, to: StatusProcessing})
	}
	child := Entity{
		ID:          id,
		TerminalID:  original.TerminalID,
		Amount:      original.Amount,
		Currency:    original.Currency,
		Installment: 1,
		Bin:         original.Bin,
		Customer:    original.Customer,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
	switch kind {
	case LogRefund:
		child.RefundOfID = original.ID
	case LogCancel:
		child.CancelOfID = original.ID
	}
	return child, nil
}

// ApplyChildOutcome records the effect of a finalized refund/cancel child
// transaction onto the parent.
func (s *Service) ApplyChildOutcome(parent *Entity, child Entity) {
	if child.Status != StatusSuccess {
		return
	}
	now := time.Now()
	if child.RefundOfID == parent.ID {
		parent.RefundedAt = &now
	}
	if child.CancelOfID == parent.ID {
		parent.Status = StatusCancelled
		parent.CancelledAt = &now
	}
}

type errInvalidTransition struct {
	from, to Status
}

func (e errInvalidTransition) Error() string {
	return "transaction: illegal status transition from " + string(e.from) + " to " + string(e.to)
}
