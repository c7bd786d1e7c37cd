package paymentops

import (
	"context"

	"vpos-orchestrator/internal/domain/transaction"
)

// GetTransactionStatus projects a transaction's current state for a
// merchant-facing status query. It never returns encrypted fields: the
// entity's Public() projection is structurally incapable of carrying them.
func (s *Service) GetTransactionStatus(ctx context.Context, transactionID string) (transaction.PublicView, error) {
	tx, err := s.transactions.FindByID(ctx, transactionID)
	if err != nil {
		return transaction.PublicView{}, err
	}
	return tx.Public(), nil
}
