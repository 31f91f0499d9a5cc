package sqldb

import (
	"context"
	"errors"

	accountDomain "disaster-intake-api/internal/domain/account"

	"gorm.io/gorm"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindByCredentials filters on both columns at once. Which of the two
// failed is never observable from the result.
func (r *AccountRepository) FindByCredentials(ctx context.Context, code int, password string) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).
		Where("administrative_code = ? AND password = ?", code, password).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, accountDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *AccountRepository) GetByCode(ctx context.Context, code int) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).Where("administrative_code = ?", code).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, accountDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *AccountRepository) List(ctx context.Context) ([]accountDomain.Account, error) {
	var out []accountDomain.Account
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}
