package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"disaster-intake-api/internal/domain/report"
	"disaster-intake-api/internal/domain/uow"
	"disaster-intake-api/pkg/imagecodec"
)

type Usecase struct {
	repo  report.Repository
	uow   uow.UnitOfWork
	store imagecodec.Store
}

func NewUsecase(r report.Repository, tx uow.UnitOfWork, store imagecodec.Store) *Usecase {
	return &Usecase{repo: r, uow: tx, store: store}
}

// Create validates the submission, stores its images and inserts the
// row, all-or-nothing: a failing image aborts before any row exists and
// a failing insert cleans the stored images up again.
func (u *Usecase) Create(ctx context.Context, in CreateReportInput) (uint, error) {
	var bad []string
	if in.DisasterType == "" {
		bad = append(bad, "disaster")
	}
	if in.Description == "" {
		bad = append(bad, "description")
	}
	loc := report.Location{Latitude: in.Latitude, Longitude: in.Longitude}
	if !loc.Valid() {
		bad = append(bad, "location")
	}
	if len(bad) > 0 {
		return 0, &ValidationError{Fields: bad}
	}

	// Decode everything before touching storage: a malformed payload
	// must not leave files behind.
	raws := make([][]byte, 0, len(in.Images))
	for i, text := range in.Images {
		raw, err := imagecodec.Decode(text)
		if err != nil {
			return 0, fmt.Errorf("image %d: %w", i, err)
		}
		raws = append(raws, raw)
	}

	stored := make([]string, 0, len(raws))
	for i, raw := range raws {
		entry, err := u.store.Put(raw, i)
		if err != nil {
			for _, s := range stored {
				u.store.Remove(s)
			}
			return 0, fmt.Errorf("image %d: %w", i, err)
		}
		stored = append(stored, entry)
	}

	submittedAt := in.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}
	rep := &report.Report{
		DisasterType: in.DisasterType,
		Description:  in.Description,
		Importance:   in.Importance,
		Location:     loc.String(),
		Status:       report.StatusNew,
		CreatedAt:    submittedAt,
	}
	rep.SetImageList(stored)

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Reports.Create(ctx, rep)
	})
	if err != nil {
		for _, s := range stored {
			u.store.Remove(s)
		}
		return 0, err
	}
	return rep.ID, nil
}

func (u *Usecase) Get(ctx context.Context, id uint) (*ReportDTO, error) {
	rep, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.project(rep)
}

func (u *Usecase) List(ctx context.Context, includeHidden bool) ([]ReportDTO, error) {
	reps, err := u.repo.List(ctx, includeHidden)
	if err != nil {
		return nil, err
	}
	out := make([]ReportDTO, 0, len(reps))
	for i := range reps {
		dto, err := u.project(&reps[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

// Locations is the map-pin variant of List: ids and coordinates only.
func (u *Usecase) Locations(ctx context.Context, includeHidden bool) ([]ReportLocationDTO, error) {
	reps, err := u.repo.List(ctx, includeHidden)
	if err != nil {
		return nil, err
	}
	out := make([]ReportLocationDTO, 0, len(reps))
	for i := range reps {
		loc, err := report.ParseLocation(reps[i].Location)
		if err != nil {
			return nil, err
		}
		out = append(out, ReportLocationDTO{
			ReportID:  reps[i].ID,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		})
	}
	return out, nil
}

// CycleStatus rotates new → in_progress → resolved → new. Hidden
// reports are rejected; Restore is the only way out of hidden.
func (u *Usecase) CycleStatus(ctx context.Context, id uint) (int, error) {
	return u.transition(ctx, id, report.ActionCycle)
}

// Hide is the "delete" of the public API: the row survives, default
// listings exclude it.
func (u *Usecase) Hide(ctx context.Context, id uint) error {
	_, err := u.transition(ctx, id, report.ActionHide)
	return err
}

func (u *Usecase) Restore(ctx context.Context, id uint) (int, error) {
	return u.transition(ctx, id, report.ActionRestore)
}

func (u *Usecase) transition(ctx context.Context, id uint, a report.Action) (int, error) {
	var next report.Status
	err := u.uow.WithinReportTx(ctx, id, func(r uow.Repos, rep *report.Report) error {
		n, err := report.Next(rep.Status, a)
		if err != nil {
			return err
		}
		next = n
		if rep.Status == n {
			return nil
		}
		rep.Status = n
		return r.Reports.Save(ctx, rep)
	})
	return int(next), err
}

// Annotate sets the comment unconditionally; status untouched.
func (u *Usecase) Annotate(ctx context.Context, id uint, text string) (string, error) {
	err := u.uow.WithinReportTx(ctx, id, func(r uow.Repos, rep *report.Report) error {
		rep.Comment = &text
		return r.Reports.Save(ctx, rep)
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func (u *Usecase) project(rep *report.Report) (*ReportDTO, error) {
	loc, err := report.ParseLocation(rep.Location)
	if err != nil {
		return nil, err
	}
	entries := rep.ImageList()
	images := make([]ImageDTO, 0, len(entries))
	for _, entry := range entries {
		raw, err := u.store.Get(entry)
		if err != nil {
			// a gone or unreadable image must not sink the read
			log.Printf("report %d: image %q unavailable: %v", rep.ID, entry, err)
			images = append(images, ImageDTO{Unavailable: true})
			continue
		}
		images = append(images, ImageDTO{Data: imagecodec.Encode(raw)})
	}
	return &ReportDTO{
		ID:           rep.ID,
		DisasterType: rep.DisasterType,
		Description:  rep.Description,
		Importance:   rep.Importance,
		IsImportant:  rep.IsImportant(),
		Location:     LocationDTO{Latitude: loc.Latitude, Longitude: loc.Longitude},
		Images:       images,
		Status:       int(rep.Status),
		Comment:      rep.Comment,
		CreatedAt:    rep.CreatedAt,
	}, nil
}
