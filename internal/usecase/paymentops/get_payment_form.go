package paymentops

import (
	"context"

	"vpos-orchestrator/internal/domain/transaction"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

// GetPaymentForm returns the HTML a merchant's checkout page must render
// (in a hidden iframe or a full-page redirect) to drive the cardholder
// through 3-D Secure. It requires the transaction to already be in
// processing, i.e. CreatePayment's Initialize step already succeeded.
func (s *Service) GetPaymentForm(ctx context.Context, transactionID string) (string, error) {
	tx, err := s.transactions.FindByID(ctx, transactionID)
	if err != nil {
		return "", err
	}
	if tx.Status != transaction.StatusProcessing {
		return "", pkgerrors.ErrState.WithDetails("reason", "transaction is not awaiting a 3-D Secure form")
	}

	t, err := s.terminals.FindByID(ctx, tx.TerminalID)
	if err != nil {
		return "", err
	}
	adapter, err := s.registry.Build(t.Provider, s.httpClient, s.callbackBase)
	if err != nil {
		return "", err
	}
	return adapter.GetFormHTML(ctx, tx, *t)
}
