package uowmock

import (
	"context"

	"disaster-intake-api/internal/domain/report"
	"disaster-intake-api/internal/domain/uow"
)

// UoW runs the callback directly against the configured Repos; no real
// transaction semantics, just the wiring unit tests need. Override the
// Fn fields to fail or intercept.
type UoW struct {
	Repos uow.Repos

	WithinTxFn       func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinReportTxFn func(ctx context.Context, id uint, fn func(r uow.Repos, rep *report.Report) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}

func (m *UoW) WithinReportTx(ctx context.Context, id uint, fn func(r uow.Repos, rep *report.Report) error) error {
	if m.WithinReportTxFn != nil {
		return m.WithinReportTxFn(ctx, id, fn)
	}
	rep, err := m.Repos.Reports.GetByIDForUpdate(ctx, id)
	if err != nil {
		return err
	}
	return fn(m.Repos, rep)
}
