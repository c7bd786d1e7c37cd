package paymentops

import (
	"context"

	"vpos-orchestrator/internal/domain/transaction"
)

// ProcessCallback handles the bank's 3-D Secure callback POST: it validates
// the authentication result via the chosen adapter, then — only on a valid
// result — completes the sale via ProcessProvision. Per invariant 9
// (spec.md §8), a retried callback for an already-terminal transaction is a
// no-op that returns the existing outcome rather than re-authorizing, and
// concurrent retries for the same transaction are collapsed via
// singleflight so only one ever reaches the acquirer.
func (s *Service) ProcessCallback(ctx context.Context, transactionID string, postFields map[string]string) (transaction.PublicView, error) {
	v, err, _ := s.callbackDedup.Do(transactionID, func() (interface{}, error) {
		return s.processCallbackOnce(ctx, transactionID, postFields)
	})
	if err != nil {
		return transaction.PublicView{}, err
	}
	return v.(transaction.PublicView), nil
}

func (s *Service) processCallbackOnce(ctx context.Context, transactionID string, postFields map[string]string) (transaction.PublicView, error) {
	tx, err := s.transactions.FindByID(ctx, transactionID)
	if err != nil {
		return transaction.PublicView{}, err
	}
	if tx.IsTerminalState() {
		return tx.Public(), nil
	}

	t, err := s.terminals.FindByID(ctx, tx.TerminalID)
	if err != nil {
		return transaction.PublicView{}, err
	}
	clearT, err := s.decryptCredentials(*t)
	if err != nil {
		return transaction.PublicView{}, err
	}

	adapter, err := s.registry.Build(t.Provider, s.httpClient, s.callbackBase)
	if err != nil {
		return transaction.PublicView{}, err
	}

	workingTx := *tx
	baseLogLen := len(workingTx.Logs)

	callback, err := adapter.ProcessCallback(ctx, &workingTx, clearT, postFields)
	s.txService.AppendLog(&workingTx, transaction.LogEntry{Type: transaction.LogCallback3D, Request: postFields, Response: callback})
	if err != nil {
		return transaction.PublicView{}, err
	}
	if !callback.Valid {
		_ = s.txService.Transition(&workingTx, transaction.StatusFailed)
		workingTx.Result = transaction.Result{Success: false, Code: callback.Code, Message: callback.Message}
		s.persistOutcome(ctx, tx, workingTx, workingTx.Logs[baseLogLen:])
		return tx.Public(), nil
	}
	workingTx.Secure = callback.Secure

	card, err := s.transactions.GetDecryptedCard(ctx, tx)
	if err != nil {
		return transaction.PublicView{}, err
	}
	workingTx.Card = card

	provision, err := adapter.ProcessProvision(ctx, &workingTx, clearT, callback.Secure)
	s.txService.AppendLog(&workingTx, transaction.LogEntry{Type: transaction.LogProvision, Request: nil, Response: provision})

	reencrypted, encErr := s.encryptCard(workingTx.Card)
	if encErr == nil {
		workingTx.Card = reencrypted
	}

	if err != nil || !provision.Approved {
		_ = s.txService.Transition(&workingTx, transaction.StatusFailed)
		workingTx.Result = transaction.Result{Success: false, Code: provision.Code, Message: provision.Message}
	} else {
		_ = s.txService.Transition(&workingTx, transaction.StatusSuccess)
		workingTx.Result = transaction.Result{
			Success: true, Code: provision.Code,
			AuthCode: provision.AuthCode, RefNumber: provision.RefNumber,
		}
	}
	s.persistOutcome(ctx, tx, workingTx, workingTx.Logs[baseLogLen:])
	if err != nil {
		return transaction.PublicView{}, err
	}
	return tx.Public(), nil
}
