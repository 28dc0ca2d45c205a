// Package server initializes and runs the GophDrop server: it picks the
// account and storage backends from config, runs migrations, and serves
// the same services over gRPC and HTTP until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/gophdrop/internal/dbx"
	"github.com/dmitrijs2005/gophdrop/internal/logging"
	"github.com/dmitrijs2005/gophdrop/internal/server/config"
	"github.com/dmitrijs2005/gophdrop/internal/server/repositories/files"
	"github.com/dmitrijs2005/gophdrop/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophdrop/internal/server/services"

	gs "github.com/dmitrijs2005/gophdrop/internal/server/grpc"
	hs "github.com/dmitrijs2005/gophdrop/internal/server/http"
)

const (
	dbPingAttempts = 5
	dbPingDelay    = 500 * time.Millisecond
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	fileService *services.FileService
}

// NewApp wires logger, repositories, storage and services from c. Log
// output goes to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {

	logger, err := logging.New(w, logging.Options{Backend: c.LogBackend, Format: c.LogFormat, Level: c.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger.With("module", "app")}

	rm, err := app.newRepositoryManager(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	store, err := app.newStore(ctx, rm)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.userService = services.NewUserService(rm, c)
	app.fileService = services.NewFileService(store, c)

	return app, nil
}

func (app *App) newRepositoryManager(ctx context.Context) (repomanager.RepositoryManager, error) {
	if app.config.AccountBackend == config.BackendMemory {
		app.logger.Warn(ctx, "Accounts are kept in memory and lost on restart")
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := dbx.Open(ctx, "pgx", app.config.DatabaseDSN, dbx.OpenOptions{
		Attempts: dbPingAttempts,
		Delay:    dbPingDelay,
		OnRetry: func(n uint, err error) {
			app.logger.Warn(ctx, "Database not ready", "attempt", n, "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("repository manager init error: %w", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}
	return rm, nil
}

func (app *App) newStore(ctx context.Context, rm repomanager.RepositoryManager) (files.NamespaceStore, error) {
	c := app.config
	app.logger.Info(ctx, "Initializing storage", "backend", c.StorageBackend)

	switch c.StorageBackend {
	case config.BackendFS:
		return files.NewFilesystemStore(c.UploadDir)
	case config.BackendMemory:
		return files.NewMemoryStore(), nil
	case config.BackendPostgres:
		return rm.Files(rm.DB()), nil
	case config.BackendS3:
		client, err := files.NewS3Client(ctx, files.S3Config{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		return files.NewS3Store(client, c.S3Bucket), nil
	case config.BackendMinio:
		client, err := files.NewMinioClient(ctx, files.MinioConfig{
			Endpoint:  c.MinioEndpoint,
			AccessKey: c.S3RootUser,
			SecretKey: c.S3RootPassword,
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			UseSSL:    c.MinioUseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("minio init error: %w", err)
		}
		return files.NewMinioStore(client, c.S3Bucket), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

// Close releases the database pool, if any.
func (app *App) Close() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.fileService, app.config.MaxUploadBytes)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := hs.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.fileService, app.config.MaxUploadBytes)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both transports until ctx is cancelled, a signal arrives or
// one of the servers fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.Close()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}
