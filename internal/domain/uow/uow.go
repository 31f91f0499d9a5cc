package uow

import (
	"context"

	"disaster-intake-api/internal/domain/account"
	"disaster-intake-api/internal/domain/report"
)

type Repos struct {
	Reports  report.Repository
	Accounts account.Repository
}

// UnitOfWork scopes repository work to one transaction: committed when
// fn returns nil, rolled back otherwise.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the report row first, then pass it in
	WithinReportTx(ctx context.Context, id uint, fn func(r Repos, rep *report.Report) error) error
}
