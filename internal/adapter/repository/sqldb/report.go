package sqldb

import (
	"context"
	"errors"

	reportDomain "disaster-intake-api/internal/domain/report"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) *ReportRepository { return &ReportRepository{db: db} }

func (r *ReportRepository) Create(ctx context.Context, rep *reportDomain.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *ReportRepository) Save(ctx context.Context, rep *reportDomain.Report) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *ReportRepository) GetByID(ctx context.Context, id uint) (*reportDomain.Report, error) {
	var out reportDomain.Report
	res := r.db.WithContext(ctx).First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, reportDomain.ErrNotFound
	}
	return &out, res.Error
}

// GetByIDForUpdate locks the row until the surrounding tx ends.
// SQLite has no FOR UPDATE; its single-writer lock serializes anyway.
func (r *ReportRepository) GetByIDForUpdate(ctx context.Context, id uint) (*reportDomain.Report, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out reportDomain.Report
	res := q.First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, reportDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ReportRepository) List(ctx context.Context, includeHidden bool) ([]reportDomain.Report, error) {
	q := r.db.WithContext(ctx).Order("id ASC")
	if !includeHidden {
		q = q.Where("status <> ?", reportDomain.StatusHidden)
	}
	var out []reportDomain.Report
	res := q.Find(&out)
	return out, res.Error
}
