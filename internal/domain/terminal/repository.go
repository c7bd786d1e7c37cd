package terminal

import "context"

// SelectionFilter narrows FindForSelection to active terminals matching a
// currency and, optionally, a company.
type SelectionFilter struct {
	Company  string
	Currency Currency
}

// Repository persists Terminal entities.
type Repository interface {
	Create(ctx context.Context, t *Entity) error
	FindByID(ctx context.Context, id string) (*Entity, error)
	FindForSelection(ctx context.Context, filter SelectionFilter) ([]Entity, error)
	Update(ctx context.Context, id string, patch func(*Entity)) (*Entity, error)
	SetDefaultForCurrency(ctx context.Context, id string, currency Currency) error
	Delete(ctx context.Context, id string) error
}
