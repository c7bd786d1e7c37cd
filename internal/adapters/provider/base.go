package provider

import (
	"context"

	"vpos-orchestrator/internal/domain/terminal"
	"vpos-orchestrator/internal/domain/transaction"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

// Base implements every Adapter method as "not implemented". Concrete
// adapters embed Base and override only the operations their acquirer
// actually supports, advertising the rest truthfully via Capabilities() —
// the polymorphism-over-adapters design spec.md §9 calls for.
type Base struct {
	Name string
}

func (b Base) notImplemented(op string) error {
	return pkgerrors.ErrNotImplemented.WithDetails("provider", b.Name).WithDetails("operation", op)
}

func (b Base) Capabilities() Capabilities { return Capabilities{} }

func (b Base) Initialize(context.Context, *transaction.Entity, terminal.Entity) (InitializeResult, error) {
	return InitializeResult{}, b.notImplemented("initialize")
}

func (b Base) GetFormHTML(context.Context, *transaction.Entity, terminal.Entity) (string, error) {
	return "", b.notImplemented("get_form_html")
}

func (b Base) ProcessCallback(context.Context, *transaction.Entity, terminal.Entity, map[string]string) (CallbackResult, error) {
	return CallbackResult{}, b.notImplemented("process_callback")
}

func (b Base) ProcessProvision(context.Context, *transaction.Entity, terminal.Entity, transaction.Secure3D) (ProvisionResult, error) {
	return ProvisionResult{}, b.notImplemented("process_provision")
}

func (b Base) DirectPayment(context.Context, *transaction.Entity, terminal.Entity) (ProvisionResult, error) {
	return ProvisionResult{}, b.notImplemented("direct_payment")
}

func (b Base) Refund(context.Context, *transaction.Entity, transaction.Entity, terminal.Entity) (ProvisionResult, error) {
	return ProvisionResult{}, b.notImplemented("refund")
}

func (b Base) Cancel(context.Context, *transaction.Entity, transaction.Entity, terminal.Entity) (ProvisionResult, error) {
	return ProvisionResult{}, b.notImplemented("cancel")
}

func (b Base) Status(context.Context, string, terminal.Entity) (StatusResult, error) {
	return StatusResult{}, b.notImplemented("status")
}

func (b Base) History(context.Context, string, terminal.Entity) (StatusResult, error) {
	return StatusResult{}, b.notImplemented("history")
}

func (b Base) PreAuth(context.Context, *transaction.Entity, terminal.Entity) (ProvisionResult, error) {
	return ProvisionResult{}, b.notImplemented("pre_auth")
}

func (b Base) PostAuth(context.Context, *transaction.Entity, terminal.Entity) (ProvisionResult, error) {
	return ProvisionResult{}, b.notImplemented("post_auth")
}
