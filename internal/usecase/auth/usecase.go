package auth

import (
	"context"
	"errors"

	"disaster-intake-api/internal/domain/account"
)

// ErrNoSession: token absent, expired or never issued.
var ErrNoSession = errors.New("no session")

// SessionStore keeps opaque bearer tokens for logged-in administrators.
type SessionStore interface {
	// Issue creates a token bound to the administrative code.
	Issue(ctx context.Context, code int) (string, error)
	// Code resolves a token back to its code; ErrNoSession if invalid.
	Code(ctx context.Context, token string) (int, error)
	Revoke(ctx context.Context, token string) error
}

type AccountDTO struct {
	ID             uint `json:"id"`
	Administrative int  `json:"administrative"`
}

type Usecase struct {
	accounts account.Repository
	sessions SessionStore
}

func NewUsecase(accounts account.Repository, sessions SessionStore) *Usecase {
	return &Usecase{accounts: accounts, sessions: sessions}
}

// Authenticate matches code and password in one lookup; a wrong
// password and an unknown code are indistinguishable to the caller.
func (u *Usecase) Authenticate(ctx context.Context, code int, password string) (bool, error) {
	_, err := u.accounts.FindByCredentials(ctx, code, password)
	if errors.Is(err, account.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Login authenticates and, on success, issues a session token.
func (u *Usecase) Login(ctx context.Context, code int, password string) (string, bool, error) {
	ok, err := u.Authenticate(ctx, code, password)
	if err != nil || !ok {
		return "", false, err
	}
	token, err := u.sessions.Issue(ctx, code)
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

func (u *Usecase) Logout(ctx context.Context, token string) error {
	return u.sessions.Revoke(ctx, token)
}

// ListAccounts never exposes passwords.
func (u *Usecase) ListAccounts(ctx context.Context) ([]AccountDTO, error) {
	accounts, err := u.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AccountDTO{ID: a.ID, Administrative: a.AdministrativeCode})
	}
	return out, nil
}
