package account

import "context"

type Repository interface {
	Create(ctx context.Context, a *Account) error
	// FindByCredentials matches code AND password in a single lookup so
	// a wrong password is indistinguishable from an unknown code.
	FindByCredentials(ctx context.Context, code int, password string) (*Account, error)
	GetByCode(ctx context.Context, code int) (*Account, error)
	List(ctx context.Context) ([]Account, error)
}
