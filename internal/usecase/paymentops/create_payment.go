package paymentops

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vpos-orchestrator/internal/adapters/provider"
	"vpos-orchestrator/internal/domain/terminal"
	"vpos-orchestrator/internal/domain/transaction"
	"vpos-orchestrator/pkg/codec"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

// CreatePaymentInput is everything a merchant supplies to start a payment.
// TerminalID is optional: when empty, the BIN-driven selection policy picks
// the acquirer.
type CreatePaymentInput struct {
	TerminalID  string
	Amount      decimal.Decimal
	Currency    terminal.Currency
	Installment int
	Card        transaction.CardFields
	Customer    transaction.CustomerSnapshot
	Company     string
}

// CreatePaymentResult is what CreatePayment returns: the created
// transaction's public view plus whether a 3-D Secure form must be fetched
// next.
type CreatePaymentResult struct {
	Transaction  transaction.PublicView
	RequiresForm bool
	FormURL      string
}

// CreatePayment resolves an acquirer (explicit or BIN-driven), creates a
// pending transaction, and drives it to processing by calling the chosen
// adapter's Initialize. Per spec.md §7, the transaction's persisted state
// always reflects the outcome before this returns, success or failure.
func (s *Service) CreatePayment(ctx context.Context, in CreatePaymentInput) (CreatePaymentResult, error) {
	if in.Installment <= 0 {
		in.Installment = 1
	}

	binDigits := codec.BIN(in.Card.Number)
	info, err := s.binResolver.Resolve(ctx, binDigits)
	if err != nil {
		return CreatePaymentResult{}, err
	}
	if in.Currency != terminal.TRY && info.Country == "tr" {
		return CreatePaymentResult{}, pkgerrors.ErrValidation.WithDetails("reason", "foreign card on non-try currency")
	}

	t, err := s.resolveTerminal(ctx, in, info)
	if err != nil {
		return CreatePaymentResult{}, err
	}
	if !t.SupportsCurrency(in.Currency) {
		return CreatePaymentResult{}, pkgerrors.ErrValidation.WithDetails("reason", "terminal does not support currency "+string(in.Currency))
	}

	card, err := s.encryptCard(in.Card)
	if err != nil {
		return CreatePaymentResult{}, err
	}
	card.Masked = codec.MaskPAN(in.Card.Number)
	card.BIN = binDigits

	tx := &transaction.Entity{
		ID:          uuid.NewString(),
		TerminalID:  t.ID,
		Amount:      in.Amount,
		Currency:    in.Currency,
		Installment: in.Installment,
		Card:        card,
		Bin: transaction.BinSnapshot{
			Bank: info.BankCode, Brand: info.Brand, CardType: info.CardType,
			Family: info.Family, Country: info.Country,
		},
		Customer:  in.Customer,
		Status:    transaction.StatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return CreatePaymentResult{}, err
	}

	if err := s.initializeAdapter(ctx, tx, t); err != nil {
		return CreatePaymentResult{}, err
	}

	result := CreatePaymentResult{
		Transaction:  tx.Public(),
		RequiresForm: tx.Status == transaction.StatusProcessing,
	}
	if result.RequiresForm {
		result.FormURL = provider.FormURL(s.callbackBase, tx.ID)
	}
	return result, nil
}

func (s *Service) resolveTerminal(ctx context.Context, in CreatePaymentInput, info terminal.BinInfo) (terminal.Entity, error) {
	if in.TerminalID != "" {
		t, err := s.terminals.FindByID(ctx, in.TerminalID)
		if err != nil {
			return terminal.Entity{}, err
		}
		return *t, nil
	}

	candidates, err := s.terminals.FindForSelection(ctx, terminal.SelectionFilter{Company: in.Company, Currency: in.Currency})
	if err != nil {
		return terminal.Entity{}, err
	}
	chosen, ok := terminal.Select(candidates, in.Currency, &info)
	if !ok {
		return terminal.Entity{}, pkgerrors.ErrNoSuitableTerminal.WithDetails("currency", string(in.Currency))
	}
	return chosen, nil
}

// initializeAdapter decrypts the terminal's credentials and the
// transaction's card, builds the chosen provider's adapter, calls
// Initialize, and persists the resulting state — success moves the
// transaction to processing with its 3-D form payload; failure moves it
// straight to failed.
func (s *Service) initializeAdapter(ctx context.Context, tx *transaction.Entity, t terminal.Entity) error {
	clearT, err := s.decryptCredentials(t)
	if err != nil {
		return err
	}
	clearCard, err := s.transactions.GetDecryptedCard(ctx, tx)
	if err != nil {
		return err
	}

	adapter, err := s.registry.Build(t.Provider, s.httpClient, s.callbackBase)
	if err != nil {
		return err
	}

	workingTx := *tx
	workingTx.Card = clearCard

	result, err := adapter.Initialize(ctx, &workingTx, clearT)
	s.txService.AppendLog(&workingTx, transaction.LogEntry{Type: transaction.LogInit, Request: nil, Response: result})

	reencrypted, encErr := s.encryptCard(workingTx.Card)
	if encErr == nil {
		workingTx.Card = reencrypted
	}

	if err != nil || !result.OK {
		_ = s.txService.Transition(&workingTx, transaction.StatusFailed)
		workingTx.Result = transaction.Result{Success: false, Code: result.Code, Message: result.Message}
		s.persistOutcome(ctx, tx, workingTx, workingTx.Logs[len(tx.Logs):])
		if err != nil {
			return err
		}
		return nil
	}

	_ = s.txService.Transition(&workingTx, transaction.StatusProcessing)
	s.persistOutcome(ctx, tx, workingTx, workingTx.Logs[len(tx.Logs):])
	return nil
}

// persistOutcome copies workingTx's mutated fields back into tx (so the
// caller sees the latest state) and flushes them to the store: the status
// transition, the 3-D Secure envelope, the CVV clear on success, and any
// newly appended log entries (not the whole log, which the store already
// has from earlier calls).
func (s *Service) persistOutcome(ctx context.Context, tx *transaction.Entity, workingTx transaction.Entity, newLogs []transaction.LogEntry) {
	from := tx.Status
	*tx = workingTx
	if _, err := s.transactions.UpdateStatusAtomic(ctx, tx.ID, from, tx.Status); err != nil {
		s.logger.Warn("persist status transition failed", zap.String("transaction_id", tx.ID), zap.Error(err))
	}
	if err := s.transactions.SaveSecure(ctx, tx.ID, tx.Secure); err != nil {
		s.logger.Warn("persist secure envelope failed", zap.String("transaction_id", tx.ID), zap.Error(err))
	}
	if tx.Status == transaction.StatusSuccess {
		if err := s.transactions.ClearCVV(ctx, tx.ID); err != nil {
			s.logger.Warn("clear cvv failed", zap.String("transaction_id", tx.ID), zap.Error(err))
		}
	}
	for _, entry := range newLogs {
		if err := s.transactions.AppendLog(ctx, tx.ID, entry); err != nil {
			s.logger.Warn("persist log entry failed", zap.String("transaction_id", tx.ID), zap.Error(err))
		}
	}

	if s.auditSink != nil && len(newLogs) > 0 {
		if err := s.auditSink.WriteLogs(ctx, tx.ID, newLogs); err != nil {
			s.logger.Warn("audit sink write failed", zap.String("transaction_id", tx.ID), zap.Error(err))
		}
	}
	if s.events != nil && tx.IsTerminalState() {
		if err := s.events.PublishFinalized(ctx, *tx); err != nil {
			s.logger.Warn("event publish failed", zap.String("transaction_id", tx.ID), zap.Error(err))
		}
	}
}
