package report

import "context"

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uint) (*Report, error)
	// GetByIDForUpdate locks the row for the enclosing transaction.
	GetByIDForUpdate(ctx context.Context, id uint) (*Report, error)
	// List returns reports in insertion order; hidden reports are
	// excluded unless includeHidden is set.
	List(ctx context.Context, includeHidden bool) ([]Report, error)
	Save(ctx context.Context, r *Report) error
}
