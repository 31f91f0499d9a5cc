package sqldb

import (
	"context"

	"disaster-intake-api/internal/domain/report"
	"disaster-intake-api/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Reports:  &ReportRepository{db: tx},
			Accounts: &AccountRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinReportTx(ctx context.Context, id uint, fn func(r uow.Repos, rep *report.Report) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Reports:  &ReportRepository{db: tx},
			Accounts: &AccountRepository{db: tx},
		}
		// lock the report row up-front to prevent races
		rep, err := r.Reports.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		return fn(r, rep)
	})
}
