package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "disaster-intake-api/internal/adapter/http"
	mw "disaster-intake-api/internal/adapter/middleware"
	"disaster-intake-api/internal/adapter/repository/sqldb"
	"disaster-intake-api/internal/adapter/session"
	"disaster-intake-api/internal/config"
	"disaster-intake-api/internal/infrastructure/cache"
	"disaster-intake-api/internal/infrastructure/db"
	authUC "disaster-intake-api/internal/usecase/auth"
	reportUC "disaster-intake-api/internal/usecase/report"
	"disaster-intake-api/pkg/imagecodec"
)

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

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis open: %v", err)
	}

	// one image store per deployment: inline text or files on disk
	var store imagecodec.Store = imagecodec.InlineStore{}
	if cfg.ImageStorage == config.ImageFile {
		fs, err := imagecodec.NewFileStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("upload dir: %v", err)
		}
		store = fs
	}

	reports := sqldb.NewReportRepository(gdb)
	accounts := sqldb.NewAccountRepository(gdb)
	guow := sqldb.NewGormUoW(gdb)
	sessions := session.NewRedisStore(rdb, time.Duration(cfg.SessionTTLSecs)*time.Second)

	reportUsecase := reportUC.NewUsecase(reports, guow, store)
	authUsecase := authUC.NewUsecase(accounts, sessions)

	h := httpadp.NewHandler()
	rh := httpadp.NewReportHandler(reportUsecase)
	ah := httpadp.NewAuthHandler(authUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	guard := mw.RequireSession(sessions)
	idemp := mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)
	e.POST("/login", ah.Login)
	e.POST("/logout", ah.Logout)
	e.GET("/users", ah.ListUsers, guard)

	e.POST("/disaster_report", rh.CreateReport, idemp)
	e.GET("/disaster_report", rh.ListReports)
	e.GET("/disaster", rh.ListLocations)
	e.GET("/disaster/:id", rh.GetReport)
	e.DELETE("/disaster/:id", rh.DeleteReport, guard)
	e.POST("/disaster/:id/swap_status", rh.SwapStatus, guard)
	e.POST("/disaster/:id/restore", rh.RestoreReport, guard)
	e.POST("/disaster/:id/comment", rh.CommentReport, guard)

	if cfg.ImageStorage == config.ImageFile {
		e.Static("/uploads", cfg.UploadDir)
	}

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
