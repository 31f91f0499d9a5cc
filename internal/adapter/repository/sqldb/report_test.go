package sqldb

import (
	"context"
	"errors"
	"testing"

	accountDomain "disaster-intake-api/internal/domain/account"
	reportDomain "disaster-intake-api/internal/domain/report"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&reportDomain.Report{}, &accountDomain.Account{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeReport(desc string, importance int) *reportDomain.Report {
	return &reportDomain.Report{
		DisasterType: "earthquake",
		Description:  desc,
		Importance:   importance,
		Location:     reportDomain.Location{Latitude: 35.6895, Longitude: 139.6917}.String(),
		Status:       reportDomain.StatusNew,
	}
}

func TestReportRepository_CreateAndGet(t *testing.T) {
	repo := NewReportRepository(openTestDB(t))
	ctx := context.Background()

	rep := makeReport("strong shaking", 8)
	rep.SetImageList([]string{"aGVsbG8=", "d29ybGQ="})
	if err := repo.Create(ctx, rep); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rep.ID == 0 {
		t.Fatalf("expected autoincrement id")
	}

	got, err := repo.GetByID(ctx, rep.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Description != "strong shaking" || got.Importance != 8 {
		t.Fatalf("unexpected row: %+v", got)
	}
	imgs := got.ImageList()
	if len(imgs) != 2 || imgs[0] != "aGVsbG8=" || imgs[1] != "d29ybGQ=" {
		t.Fatalf("image order not preserved: %v", imgs)
	}
	loc, err := reportDomain.ParseLocation(got.Location)
	if err != nil {
		t.Fatalf("ParseLocation: %v", err)
	}
	if loc.Latitude != 35.6895 || loc.Longitude != 139.6917 {
		t.Fatalf("location round-trip: %+v", loc)
	}
}

func TestReportRepository_GetByID_NotFound(t *testing.T) {
	repo := NewReportRepository(openTestDB(t))
	if _, err := repo.GetByID(context.Background(), 999); !errors.Is(err, reportDomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReportRepository_List_InsertionOrderAndHiddenFilter(t *testing.T) {
	repo := NewReportRepository(openTestDB(t))
	ctx := context.Background()

	first := makeReport("first", 1)
	second := makeReport("second", 2)
	hidden := makeReport("hidden", 3)
	hidden.Status = reportDomain.StatusHidden
	for _, r := range []*reportDomain.Report{first, second, hidden} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	visible, err := repo.List(ctx, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(visible) != 2 || visible[0].Description != "first" || visible[1].Description != "second" {
		t.Fatalf("unexpected visible list: %+v", visible)
	}

	all, err := repo.List(ctx, true)
	if err != nil {
		t.Fatalf("List(all): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
}

func TestReportRepository_Save_PersistsMutation(t *testing.T) {
	repo := NewReportRepository(openTestDB(t))
	ctx := context.Background()

	rep := makeReport("annotate me", 4)
	if err := repo.Create(ctx, rep); err != nil {
		t.Fatalf("Create: %v", err)
	}
	note := "evacuate now"
	rep.Comment = &note
	rep.Status = reportDomain.StatusInProgress
	if err := repo.Save(ctx, rep); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, rep.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Comment == nil || *got.Comment != "evacuate now" {
		t.Fatalf("comment = %v", got.Comment)
	}
	if got.Status != reportDomain.StatusInProgress {
		t.Fatalf("status = %d", got.Status)
	}
}

func TestAccountRepository_FindByCredentials(t *testing.T) {
	repo := NewAccountRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &accountDomain.Account{AdministrativeCode: 1, Password: "1111"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.FindByCredentials(ctx, 1, "1111"); err != nil {
		t.Fatalf("valid credentials: %v", err)
	}
	// wrong password and unknown code fail identically
	_, errPass := repo.FindByCredentials(ctx, 1, "wrong")
	_, errCode := repo.FindByCredentials(ctx, 999, "anything")
	if !errors.Is(errPass, accountDomain.ErrNotFound) || !errors.Is(errCode, accountDomain.ErrNotFound) {
		t.Fatalf("errPass = %v, errCode = %v, both must be ErrNotFound", errPass, errCode)
	}
}

func TestAccountRepository_DuplicatePasswordAllowed(t *testing.T) {
	repo := NewAccountRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &accountDomain.Account{AdministrativeCode: 1, Password: "same"}); err != nil {
		t.Fatalf("Create #1: %v", err)
	}
	// passwords carry no uniqueness constraint
	if err := repo.Create(ctx, &accountDomain.Account{AdministrativeCode: 2, Password: "same"}); err != nil {
		t.Fatalf("Create #2: %v", err)
	}
	// duplicate administrative code is rejected
	if err := repo.Create(ctx, &accountDomain.Account{AdministrativeCode: 1, Password: "other"}); err == nil {
		t.Fatalf("expected unique index violation on administrative_code")
	}
}
