package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/daycare-api/api/swagger"
	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/repository"
	"github.com/noah-isme/daycare-api/internal/router"
	"github.com/noah-isme/daycare-api/internal/service"
	"github.com/noah-isme/daycare-api/pkg/cache"
	"github.com/noah-isme/daycare-api/pkg/config"
	"github.com/noah-isme/daycare-api/pkg/database"
	"github.com/noah-isme/daycare-api/pkg/jobs"
	"github.com/noah-isme/daycare-api/pkg/logger"
	"github.com/noah-isme/daycare-api/pkg/response"
	"github.com/noah-isme/daycare-api/pkg/storage"
	"github.com/noah-isme/daycare-api/pkg/thumbnail"
)

// @title Daycare API
// @version 1.0.0
// @description Daycare management backend: accounts, children, enrollments, attendance, content, contact and media.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	response.SetExposeInternal(!cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		redisClient = nil
	}
	counters := repository.NewCounterRepository(redisClient)
	defer counters.Close() //nolint:errcheck

	store, static, err := openStorage(ctx, cfg.Uploads)
	if err != nil {
		return err
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close() //nolint:errcheck
	}

	loc := cfg.Location()
	validate := service.NewValidator()
	metrics := service.NewMetricsService(db.Stats)

	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	uploads := service.NewUploadService(uploadRepo, store, thumbnail.New(cfg.Uploads.ThumbnailWidth), logr, metrics, service.UploadConfig{
		MaxFileSize:  cfg.Uploads.MaxFileSizeBytes,
		MaxFiles:     cfg.Uploads.MaxFiles,
		AllowedMIMEs: cfg.Uploads.AllowedMIMEs,
	})
	cleanup := jobs.New("blob-cleanup", uploads.DeleteBlobJob, jobs.Config{Workers: 2, Logger: logr})
	cleanup.Start(ctx)
	defer cleanup.Stop()
	uploads.UseCleanupQueue(cleanup)

	deps := router.Dependencies{
		Config: cfg,
		Logger: logr,
		Auth: service.NewAuthService(userRepo, validate, logr, metrics, service.AuthConfig{
			Secret:     cfg.JWT.Secret,
			Expiry:     cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
			BcryptCost: cfg.Security.BcryptCost,
		}),
		Users:       service.NewUserService(userRepo, validate, logr, cfg.Security.BcryptCost),
		Children:    service.NewChildService(childRepo, enrollmentRepo, validate, logr, loc),
		Enrollments: service.NewEnrollmentService(enrollmentRepo, childRepo, userRepo, validate, logr, metrics, loc),
		Attendance:  service.NewAttendanceService(attendanceRepo, enrollmentRepo, validate, logr, metrics, loc),
		Articles:    service.NewContentService(repository.NewContentRepository(db, models.ContentArticle), validate, logr),
		News:        service.NewContentService(repository.NewContentRepository(db, models.ContentNews), validate, logr),
		Contacts:    service.NewContactService(repository.NewContactRepository(db), validate, logr, metrics),
		Uploads:     uploads,
		Health:      service.NewHealthService(db, counters, logr),
		Metrics:     metrics,
		Limiter:     service.NewRateLimiter(counters, cfg.RateLimit.Window, logr, metrics),
		Static:      static,
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStorage(ctx context.Context, cfg config.UploadConfig) (storage.Store, *storage.LocalStorage, error) {
	switch cfg.Driver {
	case config.UploadDriverGCS:
		gcs, err := storage.NewGCSStorage(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, nil, fmt.Errorf("open gcs bucket: %w", err)
		}
		return gcs, nil, nil
	default:
		local, err := storage.NewLocalStorage(cfg.Dir, cfg.URLPrefix)
		if err != nil {
			return nil, nil, err
		}
		return local, local, nil
	}
}
