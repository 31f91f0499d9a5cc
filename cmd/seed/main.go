package main

import (
	"context"
	"errors"
	"log"
	"time"

	accountDomain "disaster-intake-api/internal/domain/account"
	reportDomain "disaster-intake-api/internal/domain/report"

	"disaster-intake-api/internal/adapter/repository/sqldb"
	"disaster-intake-api/internal/config"
	"disaster-intake-api/internal/infrastructure/db"
	"disaster-intake-api/pkg/imagecodec"
)

// Seeds one administrative account and one sample report so a fresh
// deployment has something to log into and look at.
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	ctx := context.Background()
	accounts := sqldb.NewAccountRepository(gdb)
	reports := sqldb.NewReportRepository(gdb)

	if _, err := accounts.GetByCode(ctx, 1); errors.Is(err, accountDomain.ErrNotFound) {
		if err := accounts.Create(ctx, &accountDomain.Account{
			AdministrativeCode: 1,
			Password:           "1111",
		}); err != nil {
			log.Fatalf("seed account: %v", err)
		}
		log.Println("seeded administrative account (code 1)")
	} else if err != nil {
		log.Fatalf("lookup account: %v", err)
	} else {
		log.Println("administrative account already present, skipping")
	}

	// store the sample image the same way the deployment does
	var store imagecodec.Store = imagecodec.InlineStore{}
	if cfg.ImageStorage == config.ImageFile {
		fs, err := imagecodec.NewFileStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("upload dir: %v", err)
		}
		store = fs
	}
	entry, err := store.Put([]byte("sample image bytes"), 0)
	if err != nil {
		log.Fatalf("seed image: %v", err)
	}

	sample := &reportDomain.Report{
		DisasterType: "earthquake",
		Description:  "Earthquake reported. Buildings collapsed.",
		Importance:   5,
		Location:     reportDomain.Location{Latitude: 35.6895, Longitude: 139.6917}.String(),
		Status:       reportDomain.StatusNew,
		CreatedAt:    time.Now().UTC(),
	}
	sample.SetImageList([]string{entry})
	if err := reports.Create(ctx, sample); err != nil {
		log.Fatalf("seed report: %v", err)
	}
	log.Printf("seeded sample report id=%d", sample.ID)
}
