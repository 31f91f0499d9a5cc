package reportmock

import (
	"context"

	domain "disaster-intake-api/internal/domain/report"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn           func(ctx context.Context, r *domain.Report) error
	GetByIDFn          func(ctx context.Context, id uint) (*domain.Report, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint) (*domain.Report, error)
	ListFn             func(ctx context.Context, includeHidden bool) ([]domain.Report, error)
	SaveFn             func(ctx context.Context, r *domain.Report) error
}

func (m *Repo) Create(ctx context.Context, r *domain.Report) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint) (*domain.Report, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint) (*domain.Report, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, includeHidden bool) ([]domain.Report, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, includeHidden)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Report) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
