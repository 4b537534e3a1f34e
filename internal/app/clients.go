package app

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/db"
	"github.com/yungbote/portfolio-backend/internal/platform/gcp"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/platform/redis"
	"github.com/yungbote/portfolio-backend/internal/platform/sendgrid"
)

// Clients holds the external connections. Redis and SendGrid are optional.
type Clients struct {
	DB       *gorm.DB
	Bucket   gcp.BucketService
	Redis    *goredis.Client
	Bus      redis.Bus
	Cache    redis.Cache
	SendGrid sendgrid.Client

	closeDB func() error
}

func openDatabase(log *logger.Logger, cfg Config) (*gorm.DB, func() error, error) {
	switch cfg.Database.Driver {
	case DBDriverSQLite:
		svc, err := db.NewSQLiteService(log, cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("init sqlite: %w", err)
		}
		return svc.DB(), svc.Close, nil
	default:
		svc, err := db.NewPostgresService(log, cfg.PostgresDB())
		if err != nil {
			return nil, nil, fmt.Errorf("init postgres: %w", err)
		}
		return svc.DB(), svc.Close, nil
	}
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	var out Clients

	theDB, closeDB, err := openDatabase(log, cfg)
	if err != nil {
		return Clients{}, err
	}
	out.DB = theDB
	out.closeDB = closeDB

	bucket, err := resolveBucketService(log, cfg.Storage)
	if err != nil {
		out.Close()
		return Clients{}, fmt.Errorf("init bucket service: %w", err)
	}
	out.Bucket = bucket

	if addr := strings.TrimSpace(cfg.Redis.Addr); addr != "" {
		rdb, err := redis.NewClient(ctx, redis.Config{
			Addr:     addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		})
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		out.Redis = rdb
		if out.Bus, err = redis.NewBus(log, rdb, cfg.Redis.Channel); err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init redis bus: %w", err)
		}
		if out.Cache, err = redis.NewCache(log, rdb, "portfolio:"); err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init redis cache: %w", err)
		}
	} else {
		log.Info("REDIS_ADDR not set; page cache and cross-instance invalidation disabled")
	}

	sgCfg := sendgrid.ConfigFromEnv()
	sgCfg.DefaultFromEmail = cfg.Contact.FromEmail
	sgCfg.DefaultFromName = cfg.Contact.FromName
	if sgCfg.APIKey != "" {
		sg, err := sendgrid.New(log, sgCfg)
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init sendgrid: %w", err)
		}
		out.SendGrid = sg
	}

	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Bus != nil {
		_ = c.Bus.Close()
		c.Bus = nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
		c.Redis = nil
	}
	if c.Bucket != nil {
		_ = c.Bucket.Close()
		c.Bucket = nil
	}
	if c.closeDB != nil {
		_ = c.closeDB()
		c.closeDB = nil
	}
}
