package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"resume-intake/internal/extract"
	"resume-intake/internal/resumes"
	"resume-intake/internal/services/health"
	"resume-intake/internal/shared/config"
	"resume-intake/internal/shared/server"
	"resume-intake/internal/shared/server/middleware"
	"resume-intake/internal/shared/storage/db"
	"resume-intake/internal/shared/storage/docdb"
	"resume-intake/internal/shared/storage/object"
	localstore "resume-intake/internal/shared/storage/object/local"
	miniostore "resume-intake/internal/shared/storage/object/minio"
	s3store "resume-intake/internal/shared/storage/object/s3"
	"resume-intake/internal/shared/storage/staging"
	"resume-intake/internal/shared/telemetry"
)

// App holds the dependencies built once at startup. Handlers receive what
// they need from here; nothing is package-global.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Mongo   *mongo.Client
	Repo    resumes.Repo
	Staging *staging.Area
	Archive object.ObjectStore
	Service *resumes.Service
	Handler *resumes.Handler
	Health  *health.Service
}

// Build connects the configured store, prepares staging and archive, and
// wires the router. In dev-like environments an unreachable store falls
// back to memory.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.StoreDriver) == "" {
		cfg.StoreDriver = config.StoreMemory
	}

	app := &App{Config: cfg}

	if err := app.buildRepo(ctx); err != nil {
		return nil, err
	}

	area, err := staging.New(cfg.UploadDir)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}
	app.Staging = area

	archive, err := buildArchive(ctx, cfg)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}
	app.Archive = archive

	app.Service = &resumes.Service{
		Repo:      app.Repo,
		Staging:   app.Staging,
		Extractor: extract.PDF{},
		Archive:   app.Archive,
	}
	app.Handler = resumes.NewHandler(app.Service, cfg.MaxUploadBytes)
	if cfg.UploadRatePerSec > 0 {
		app.Handler.UploadLimit = middleware.RateLimit(middleware.NewRateLimiter(nil), middleware.RateLimitRule{
			Rate:  cfg.UploadRatePerSec,
			Burst: cfg.UploadRateBurst,
		})
	}
	app.Health = health.NewService(app.Repo, app.Config.StoreDriver)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		ResumeHandler: app.Handler,
		Health:        app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":        app.Config.Env,
		"store":      app.Config.StoreDriver,
		"archive":    cfg.ArchiveStore,
		"upload_dir": app.Staging.Dir(),
	})
	return app, nil
}

func (a *App) buildRepo(ctx context.Context) error {
	var err error
	switch a.Config.StoreDriver {
	case config.StorePostgres:
		err = a.connectPostgres(ctx)
	case config.StoreMongo:
		err = a.connectMongo(ctx)
	default:
		a.Repo = resumes.NewMemoryRepo()
		return nil
	}
	if err == nil {
		return nil
	}
	if !a.Config.IsDevLike() {
		return err
	}

	telemetry.Warn("bootstrap.store.fallback_memory", map[string]any{
		"store": a.Config.StoreDriver,
		"err":   err.Error(),
	})
	a.Config.StoreDriver = config.StoreMemory
	a.Repo = resumes.NewMemoryRepo()
	return nil
}

func (a *App) connectPostgres(ctx context.Context) error {
	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.GetSingleton(ctx, a.Config.DatabaseURL, db.OptionsFromEnv(db.DefaultLambdaOptions()))
	} else {
		sqlDB, err = db.Connect(ctx, a.Config.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	}
	if err != nil {
		return err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if !db.IsLambdaRuntime() {
			_ = sqlDB.Close()
		}
		return fmt.Errorf("run migrations: %w", err)
	}
	a.DB = sqlDB
	a.Repo = &resumes.PGRepo{DB: sqlDB}
	return nil
}

func (a *App) connectMongo(ctx context.Context) error {
	client, err := docdb.Connect(ctx, a.Config.MongoURI, docdb.DefaultOptions())
	if err != nil {
		return err
	}
	a.Mongo = client
	a.Repo = &resumes.MongoRepo{
		Coll: client.Database(a.Config.MongoDatabase).Collection(a.Config.MongoCollection),
	}
	return nil
}

func buildArchive(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ArchiveStore {
	case config.ArchiveLocal:
		return localstore.New(cfg.ArchiveLocalDir), nil
	case config.ArchiveS3:
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, errors.New("ARCHIVE_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case config.ArchiveMinio:
		return miniostore.New(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket)
	default:
		return nil, nil
	}
}

// Close releases store connections. The Lambda singleton pool is left open
// for warm invocations.
func (a *App) Close(ctx context.Context) {
	if a.DB != nil && !db.IsLambdaRuntime() {
		if err := a.DB.Close(); err != nil {
			telemetry.Error("bootstrap.db.close_failed", map[string]any{"err": err.Error()})
		}
		a.DB = nil
	}
	if a.Mongo != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.Mongo.Disconnect(ctx); err != nil {
			telemetry.Error("bootstrap.mongo.disconnect_failed", map[string]any{"err": err.Error()})
		}
		a.Mongo = nil
	}
}
