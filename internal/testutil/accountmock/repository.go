package accountmock

import (
	"context"

	domain "disaster-intake-api/internal/domain/account"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, a *domain.Account) error
	FindByCredentialsFn func(ctx context.Context, code int, password string) (*domain.Account, error)
	GetByCodeFn         func(ctx context.Context, code int) (*domain.Account, error)
	ListFn              func(ctx context.Context) ([]domain.Account, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) FindByCredentials(ctx context.Context, code int, password string) (*domain.Account, error) {
	if m.FindByCredentialsFn != nil {
		return m.FindByCredentialsFn(ctx, code, password)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByCode(ctx context.Context, code int) (*domain.Account, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.Account, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
