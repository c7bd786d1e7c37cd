package transaction

import "context"

// Repository persists Transaction entities. UpdateStatusAtomic performs a
// single-field compare-and-swap so a transaction's linearizability
// guarantee (spec.md §5) holds even under concurrent duplicate callbacks.
// SaveSecure always re-persists the whole Secure subdocument rather than a
// shallow field diff, per spec.md §9's mixed-shape-state requirement.
type Repository interface {
	Create(ctx context.Context, e *Entity) error
	FindByID(ctx context.Context, id string) (*Entity, error)
	AppendLog(ctx context.Context, id string, entry LogEntry) error
	UpdateStatusAtomic(ctx context.Context, id string, from, to Status) (*Entity, error)
	SaveSecure(ctx context.Context, id string, secure Secure3D) error
	ClearCVV(ctx context.Context, id string) error
	GetDecryptedCard(ctx context.Context, e *Entity) (CardFields, error)
}
