// Package server initializes and runs the Estudio API process. It picks the
// storage backend, wires the optional integrations (Redis, Kafka, S3), and
// runs the HTTP API and the gRPC health endpoint until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/khonsu303/estudio/internal/cryptox"
	"github.com/khonsu303/estudio/internal/logging"
	"github.com/khonsu303/estudio/internal/server/activity"
	"github.com/khonsu303/estudio/internal/server/auth"
	"github.com/khonsu303/estudio/internal/server/config"
	"github.com/khonsu303/estudio/internal/server/httpapi"
	"github.com/khonsu303/estudio/internal/server/repositories/memory"
	"github.com/khonsu303/estudio/internal/server/repositories/repomanager"
	"github.com/khonsu303/estudio/internal/server/services"
	"github.com/khonsu303/estudio/internal/server/storage"
	"github.com/khonsu303/estudio/internal/shared"
	"github.com/redis/go-redis/v9"

	gs "github.com/khonsu303/estudio/internal/server/grpc"
)

// MemoryDSN selects the in-process backend instead of PostgreSQL. Data is
// lost on exit.
const MemoryDSN = "memory"

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	http    *httpapi.Server
	health  *gs.HealthServer
	closers []func() error
}

func NewApp(ctx context.Context, c *config.Config, version string) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger}

	if c.SecretKey == "" {
		secret, err := shared.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("secret init error: %w", err)
		}
		c.SecretKey = secret
		logger.Warn(ctx, "no secret key configured, tokens will not survive a restart")
	}

	rm, err := app.openStorage(ctx)
	if err != nil {
		app.close(ctx)
		return nil, err
	}

	deps := services.Deps{
		DB:          app.db,
		Repomanager: rm,
		Activity:    app.activityPublisher(ctx),
		Log:         logger,
	}

	revoker, err := app.revoker(ctx)
	if err != nil {
		app.close(ctx)
		return nil, err
	}

	avatars, err := app.avatarStore(ctx)
	if err != nil {
		app.close(ctx)
		return nil, err
	}

	tokens := auth.NewTokenService(c.SecretKey, c.TokenValidityDuration)
	svc := httpapi.Services{
		Users:    services.NewUserService(deps, tokens, cryptox.NewPasswordHasher(c.BcryptCost), revoker, avatars),
		Subjects: services.NewSubjectService(deps, c.EventSubjectCascade),
		Notes:    services.NewNoteService(deps),
		Events:   services.NewEventService(deps),
	}

	app.http = httpapi.NewServer(c.HTTPAddr, logger, svc, httpapi.Options{
		Version:       version,
		ExposeErrors:  !c.IsProduction(),
		AuthRateLimit: c.AuthRateLimit,
		AuthRateBurst: c.AuthRateBurst,
	})

	if c.GRPCHealthAddr != "" {
		var pinger gs.Pinger
		if app.db != nil {
			pinger = app.db
		}
		app.health = gs.NewHealthServer(c.GRPCHealthAddr, logger, pinger)
	}

	return app, nil
}

func (app *App) openStorage(ctx context.Context) (repomanager.RepositoryManager, error) {
	if app.config.DatabaseDSN == MemoryDSN {
		app.logger.Warn(ctx, "using in-memory storage")
		return memory.NewManager(), nil
	}

	db, err := sql.Open("pgx", app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db
	app.closers = append(app.closers, db.Close)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migrations error: %w", err)
	}

	return rm, nil
}

func (app *App) activityPublisher(ctx context.Context) activity.Publisher {
	if len(app.config.KafkaBrokers) == 0 {
		return activity.Noop{}
	}

	app.logger.Info(ctx, "publishing activity to kafka", "brokers", app.config.KafkaBrokers, "topic", app.config.KafkaTopic)
	p := activity.NewKafkaPublisher(app.config.KafkaBrokers, app.config.KafkaTopic, app.logger)
	app.closers = append(app.closers, p.Close)
	return p
}

func (app *App) revoker(ctx context.Context) (auth.Revoker, error) {
	if app.config.RedisAddr == "" {
		return auth.NoopRevoker{}, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: app.config.RedisAddr})
	app.closers = append(app.closers, rdb.Close)

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis init error: %w", err)
	}
	return auth.NewRedisRevoker(rdb), nil
}

func (app *App) avatarStore(ctx context.Context) (storage.AvatarStore, error) {
	c := app.config
	if c.S3Bucket == "" {
		return storage.Disabled{}, nil
	}

	st, err := storage.NewS3AvatarStore(ctx, storage.S3Config{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		BaseEndpoint: c.S3BaseEndpoint,
		Validity:     c.AvatarUploadValidity,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 init error: %w", err)
	}
	return st, nil
}

// close releases integrations in reverse order of creation.
func (app *App) close(ctx context.Context) {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error(ctx, "close error", "error", err.Error())
		}
	}
	app.closers = nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		app.logger.Error(ctx, name+" stopped", "error", err.Error())
		cancelFunc()
	}
}

// Run blocks until a shutdown signal arrives, ctx is cancelled, or one of
// the servers fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http server", app.http.Run)
	}()

	if app.health != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runServer(ctx, cancelFunc, "grpc health server", app.health.Run)
		}()
	}

	wg.Wait()

	app.close(context.Background())
	app.logger.Info(context.Background(), "App stopped")
}
