// Package provider defines the capability contract every acquirer adapter
// implements (initialize/form/callback/provision/direct/refund/cancel/
// status/history/pre-auth/post-auth), a constructor registry keyed by
// provider tag, and the shared HTTP client/currency tables the concrete
// adapters build on.
package provider

import (
	"context"

	"vpos-orchestrator/internal/domain/terminal"
	"vpos-orchestrator/internal/domain/transaction"
)

// Capabilities advertises which of Adapter's operations a concrete adapter
// actually implements; unimplemented ones return errors.ErrNotImplemented.
type Capabilities struct {
	Initialize       bool
	GetFormHTML      bool
	ProcessCallback  bool
	ProcessProvision bool
	DirectPayment    bool
	Refund           bool
	Cancel           bool
	Status           bool
	History          bool
	PreAuth          bool
	PostAuth         bool
}

// InitializeResult is what Adapter.Initialize returns: either an opaque
// formData envelope persisted into tx.secure, or a failure diagnostic.
type InitializeResult struct {
	OK      bool
	Code    string
	Message string
}

// CallbackResult is what Adapter.ProcessCallback returns before the
// orchestrator decides whether to invoke ProcessProvision.
type CallbackResult struct {
	Valid   bool
	Secure  transaction.Secure3D
	Code    string
	Message string
}

// ProvisionResult is the financial-authorization outcome.
type ProvisionResult struct {
	Approved  bool
	Code      string
	Message   string
	AuthCode  string
	RefNumber string
}

// StatusResult is a read-only acquirer status query outcome.
type StatusResult struct {
	Found   bool
	Status  string
	Details map[string]interface{}
}

// Adapter is the capability contract every acquirer implementation
// satisfies. An acquirer decline is reported in the result value with the
// acquirer's code and message; a returned error is a *errors.Error
// (network, validation, state, crypto, not_implemented). The orchestrator
// is responsible for persisting tx.result and the state transition around
// each call.
type Adapter interface {
	Capabilities() Capabilities

	Initialize(ctx context.Context, tx *transaction.Entity, t terminal.Entity) (InitializeResult, error)
	GetFormHTML(ctx context.Context, tx *transaction.Entity, t terminal.Entity) (string, error)
	ProcessCallback(ctx context.Context, tx *transaction.Entity, t terminal.Entity, postFields map[string]string) (CallbackResult, error)
	ProcessProvision(ctx context.Context, tx *transaction.Entity, t terminal.Entity, secure transaction.Secure3D) (ProvisionResult, error)

	DirectPayment(ctx context.Context, tx *transaction.Entity, t terminal.Entity) (ProvisionResult, error)
	Refund(ctx context.Context, childTx *transaction.Entity, original transaction.Entity, t terminal.Entity) (ProvisionResult, error)
	Cancel(ctx context.Context, childTx *transaction.Entity, original transaction.Entity, t terminal.Entity) (ProvisionResult, error)

	Status(ctx context.Context, orderID string, t terminal.Entity) (StatusResult, error)
	History(ctx context.Context, orderID string, t terminal.Entity) (StatusResult, error)

	PreAuth(ctx context.Context, tx *transaction.Entity, t terminal.Entity) (ProvisionResult, error)
	PostAuth(ctx context.Context, preAuthTx *transaction.Entity, t terminal.Entity) (ProvisionResult, error)
}
