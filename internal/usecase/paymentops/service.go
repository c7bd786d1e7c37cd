// Package paymentops orchestrates the payment lifecycle across the BIN
// resolver, the acquirer-selection policy, the provider-adapter registry,
// and the terminal/transaction stores: the single place that knows how to
// wire those collaborators together, grounded on the teacher's usecase
// layer (internal/usecase/payment.go) and generalized from one gateway to
// a registry of six.
package paymentops

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"vpos-orchestrator/internal/adapters/bin"
	"vpos-orchestrator/internal/adapters/provider"
	"vpos-orchestrator/internal/domain/terminal"
	"vpos-orchestrator/internal/domain/transaction"
	"vpos-orchestrator/pkg/cryptoutil"
)

// EventPublisher emits a domain event once a transaction reaches a
// terminal state. Optional: a nil EventPublisher simply means nothing
// downstream is listening.
type EventPublisher interface {
	PublishFinalized(ctx context.Context, tx transaction.Entity) error
}

// AuditSink mirrors newly appended transaction log entries to an external,
// append-only audit trail. Optional, same as EventPublisher.
type AuditSink interface {
	WriteLogs(ctx context.Context, transactionID string, entries []transaction.LogEntry) error
}

// Service is the payment orchestrator. It never implements acquirer wire
// protocols itself — that is entirely the provider.Adapter's job — and
// never touches raw ciphertext — that is entirely the FieldCipher's job.
type Service struct {
	terminals    terminal.Repository
	transactions transaction.Repository
	binResolver  bin.Resolver
	registry     *provider.Registry
	httpClient   *provider.HTTPClient
	cipher       *cryptoutil.FieldCipher
	txService    *transaction.Service
	callbackBase string
	logger       *zap.Logger

	events    EventPublisher
	auditSink AuditSink

	callbackDedup singleflight.Group
}

// Config bundles Service's constructor dependencies. Events and AuditSink
// are optional: leave them nil to run without a downstream event bus or
// audit trail.
type Config struct {
	Terminals       terminal.Repository
	Transactions    transaction.Repository
	BinResolver     bin.Resolver
	Registry        *provider.Registry
	HTTPClient      *provider.HTTPClient
	Cipher          *cryptoutil.FieldCipher
	CallbackBaseURL string
	Logger          *zap.Logger
	Events          EventPublisher
	AuditSink       AuditSink
}

func NewService(cfg Config) *Service {
	return &Service{
		terminals:    cfg.Terminals,
		transactions: cfg.Transactions,
		binResolver:  cfg.BinResolver,
		registry:     cfg.Registry,
		httpClient:   cfg.HTTPClient,
		cipher:       cfg.Cipher,
		txService:    transaction.NewService(),
		callbackBase: cfg.CallbackBaseURL,
		logger:       cfg.Logger,
		events:       cfg.Events,
		auditSink:    cfg.AuditSink,
	}
}

// decryptCredentials returns a copy of t.Credentials with Password,
// SecretKey, and Extra in cleartext, ready to hand to a provider.Adapter.
// Adapters never import pkg/cryptoutil themselves — this is the one seam
// where ciphertext is turned into something a wire protocol can use.
func (s *Service) decryptCredentials(t terminal.Entity) (terminal.Entity, error) {
	var err error
	if t.Credentials.Password, err = s.cipher.Decrypt(t.Credentials.Password); err != nil {
		return t, err
	}
	if t.Credentials.SecretKey, err = s.cipher.Decrypt(t.Credentials.SecretKey); err != nil {
		return t, err
	}
	if t.Credentials.Extra, err = s.cipher.Decrypt(t.Credentials.Extra); err != nil {
		return t, err
	}
	return t, nil
}

// decryptCard returns a copy of tx.Card with Holder, Number, Expiry, and
// CVV in cleartext.
func (s *Service) decryptCard(card transaction.CardFields) (transaction.CardFields, error) {
	var err error
	if card.Holder, err = s.cipher.Decrypt(card.Holder); err != nil {
		return card, err
	}
	if card.Number, err = s.cipher.Decrypt(card.Number); err != nil {
		return card, err
	}
	if card.Expiry, err = s.cipher.Decrypt(card.Expiry); err != nil {
		return card, err
	}
	if card.CVV, err = s.cipher.Decrypt(card.CVV); err != nil {
		return card, err
	}
	return card, nil
}

// encryptCard returns a copy of card with Holder, Number, Expiry, and CVV
// re-encrypted. Encrypt is idempotent, so calling it on an
// already-ciphertext field is harmless; an empty CVV (zeroed after
// success) is left empty rather than encrypted.
func (s *Service) encryptCard(card transaction.CardFields) (transaction.CardFields, error) {
	var err error
	if card.Holder, err = s.cipher.Encrypt(card.Holder); err != nil {
		return card, err
	}
	if card.Number, err = s.cipher.Encrypt(card.Number); err != nil {
		return card, err
	}
	if card.Expiry, err = s.cipher.Encrypt(card.Expiry); err != nil {
		return card, err
	}
	if card.CVV == "" {
		return card, nil
	}
	if card.CVV, err = s.cipher.Encrypt(card.CVV); err != nil {
		return card, err
	}
	return card, nil
}
