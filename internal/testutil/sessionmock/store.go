package sessionmock

import (
	"context"
	"sync"

	"disaster-intake-api/internal/usecase/auth"
	"disaster-intake-api/pkg/id"
)

// Store is an in-memory auth.SessionStore for handler tests.
type Store struct {
	mu     sync.Mutex
	tokens map[string]int

	IssueFn func(ctx context.Context, code int) (string, error)
	CodeFn  func(ctx context.Context, token string) (int, error)
}

func New() *Store { return &Store{tokens: map[string]int{}} }

func (s *Store) Issue(ctx context.Context, code int) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(ctx, code)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	token := id.NewID32()
	s.tokens[token] = code
	return token, nil
}

func (s *Store) Code(ctx context.Context, token string) (int, error) {
	if s.CodeFn != nil {
		return s.CodeFn(ctx, token)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.tokens[token]
	if !ok {
		return 0, auth.ErrNoSession
	}
	return code, nil
}

func (s *Store) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
