package provider

import (
	"sync"

	"vpos-orchestrator/internal/domain/terminal"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

// Constructor builds a concrete Adapter for a terminal's configuration.
type Constructor func(client *HTTPClient, callbackBaseURL string) Adapter

// Registry maps a provider tag to its constructor, the way the teacher's
// usecase factory maps map a type string to a concrete struct
// (internal/usecase/payment_factory.go), generalized from one entry to six.
type Registry struct {
	mu           sync.RWMutex
	constructors map[terminal.Provider]Constructor
}

func NewRegistry() *Registry {
	return &Registry{constructors: make(map[terminal.Provider]Constructor)}
}

func (r *Registry) Register(tag terminal.Provider, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[tag] = ctor
}

// Build constructs the adapter registered for tag. Unknown tags fail early
// with not_implemented, per spec.md §9.
func (r *Registry) Build(tag terminal.Provider, client *HTTPClient, callbackBaseURL string) (Adapter, error) {
	r.mu.RLock()
	ctor, ok := r.constructors[tag]
	r.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.ErrNotImplemented.WithDetails("provider", string(tag))
	}
	return ctor(client, callbackBaseURL), nil
}

// CallbackURL constructs "<CALLBACK_BASE_URL>/payment/<transactionId>/callback",
// the shared behavior every adapter uses per spec.md §4.5.
func CallbackURL(callbackBaseURL, transactionID string) string {
	return callbackBaseURL + "/payment/" + transactionID + "/callback"
}

// FormURL constructs "<CALLBACK_BASE_URL>/payment/<transactionId>/form", the
// public URL a caller fetches next to render the 3-D Secure form.
func FormURL(callbackBaseURL, transactionID string) string {
	return callbackBaseURL + "/payment/" + transactionID + "/form"
}
