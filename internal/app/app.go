package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/db"
	apphttp "github.com/yungbote/portfolio-backend/internal/http"
	"github.com/yungbote/portfolio-backend/internal/observability"
	"github.com/yungbote/portfolio-backend/internal/platform/envutil"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services

	shutdownOtel func(context.Context) error
	cancel       context.CancelFunc
}

func newLogger() (*logger.Logger, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development", nil))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// Bootstrap loads the logger and config without touching any backing store.
func Bootstrap() (*logger.Logger, Config, error) {
	log, err := newLogger()
	if err != nil {
		return nil, Config{}, err
	}
	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, Config{}, err
	}
	if cfg.Auth.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY is the built-in default; set it outside development")
	}
	return log, cfg, nil
}

// OpenDatabase connects and migrates the configured database.
func OpenDatabase(log *logger.Logger, cfg Config) (*gorm.DB, func() error, error) {
	theDB, closeDB, err := openDatabase(log, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrateAll(theDB); err != nil {
		_ = closeDB()
		return nil, nil, fmt.Errorf("automigrate: %w", err)
	}
	return theDB, closeDB, nil
}

func New(ctx context.Context) (*App, error) {
	log, cfg, err := Bootstrap()
	if err != nil {
		return nil, err
	}

	shutdownOtel := observability.InitOTel(ctx, log, cfg.Observability())

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = shutdownOtel(ctx)
		log.Sync()
		return nil, err
	}
	if err := db.AutoMigrateAll(clients.DB); err != nil {
		clients.Close()
		_ = shutdownOtel(ctx)
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	reposet := wireRepos(clients.DB, log)
	serviceset, err := wireServices(clients.DB, log, cfg, clients, reposet)
	if err != nil {
		clients.Close()
		_ = shutdownOtel(ctx)
		log.Sync()
		return nil, err
	}
	if err := checkOrderIntegrity(ctx, log, serviceset); err != nil {
		clients.Close()
		_ = shutdownOtel(ctx)
		log.Sync()
		return nil, err
	}

	return &App{
		Log:          log,
		DB:           clients.DB,
		Router:       wireRouter(log, cfg, clients.DB, serviceset),
		Cfg:          cfg,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		shutdownOtel: shutdownOtel,
	}, nil
}

// Start launches background work: the cross-instance invalidation forwarder.
func (a *App) Start(ctx context.Context) {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if err := a.Services.Invalidator.Start(ctx); err != nil {
		a.Log.Warn("Site event forwarder failed to start", "error", err)
	}
}

// Run serves HTTP until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Start(ctx)
	addr := a.Cfg.Addr()
	a.Log.Info("Server listening", "addr", addr)
	return apphttp.NewServerWithEngine(a.Router).Run(ctx, addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	if a.shutdownOtel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.shutdownOtel(ctx); err != nil && a.Log != nil {
			a.Log.Warn("OpenTelemetry shutdown failed", "error", err)
		}
		cancel()
		a.shutdownOtel = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
