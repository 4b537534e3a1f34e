package app

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/portfolio-backend/internal/data/db"
	"github.com/yungbote/portfolio-backend/internal/observability"
	"github.com/yungbote/portfolio-backend/internal/platform/envutil"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/services/sections"
)

//go:embed config.default.yaml
var defaultConfigYAML []byte

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Sections SectionsConfig `yaml:"sections"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	Contact  ContactConfig  `yaml:"contact"`
	Site     SiteConfig     `yaml:"site"`
	Otel     OtelConfig     `yaml:"otel"`
}

type ServerConfig struct {
	Port               string   `yaml:"port"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	Driver     string         `yaml:"driver"`
	SQLitePath string         `yaml:"sqlite_path"`
	Postgres   PostgresConfig `yaml:"postgres"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	JWTSecretKey    string        `yaml:"jwt_secret_key"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
}

type SectionsConfig struct {
	ReorderMode  string        `yaml:"reorder_mode"`
	PageCacheTTL time.Duration `yaml:"page_cache_ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type StorageConfig struct {
	Mode          string `yaml:"mode"`
	EmulatorHost  string `yaml:"emulator_host"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type ContactConfig struct {
	RatePerMinute int    `yaml:"rate_per_minute"`
	Burst         int    `yaml:"burst"`
	NotifyEmail   string `yaml:"notify_email"`
	FromEmail     string `yaml:"from_email"`
	FromName      string `yaml:"from_name"`
}

type SiteConfig struct {
	URL         string `yaml:"url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Environment string  `yaml:"environment"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoadConfig reads the embedded defaults, then the file named by CONFIG_FILE,
// then environment overrides.
func LoadConfig(log *logger.Logger) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse default config: %w", err)
	}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	}
	applyEnv(&cfg, log)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, log *logger.Logger) {
	cfg.Server.Port = envutil.String("PORT", cfg.Server.Port, log)
	cfg.Server.CORSAllowedOrigins = envutil.List("CORS_ALLOWED_ORIGINS", cfg.Server.CORSAllowedOrigins)
	cfg.Log.Mode = envutil.String("LOG_MODE", cfg.Log.Mode, log)

	cfg.Database.Driver = strings.ToLower(envutil.String("DB_DRIVER", cfg.Database.Driver, log))
	cfg.Database.SQLitePath = envutil.String("SQLITE_PATH", cfg.Database.SQLitePath, log)
	pg := &cfg.Database.Postgres
	pg.Host = envutil.String("POSTGRES_HOST", pg.Host, log)
	pg.Port = envutil.String("POSTGRES_PORT", pg.Port, log)
	pg.User = envutil.String("POSTGRES_USER", pg.User, log)
	pg.Password = envutil.String("POSTGRES_PASSWORD", pg.Password, log)
	pg.Name = envutil.String("POSTGRES_NAME", pg.Name, log)
	pg.SSLMode = envutil.String("POSTGRES_SSLMODE", pg.SSLMode, log)

	cfg.Auth.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.Auth.JWTSecretKey, log)
	cfg.Auth.AccessTokenTTL = envutil.Seconds("ACCESS_TOKEN_TTL", cfg.Auth.AccessTokenTTL)
	cfg.Auth.RefreshTokenTTL = envutil.Seconds("REFRESH_TOKEN_TTL", cfg.Auth.RefreshTokenTTL)

	cfg.Sections.ReorderMode = envutil.String("SECTIONS_REORDER_MODE", cfg.Sections.ReorderMode, log)
	cfg.Sections.PageCacheTTL = envutil.Seconds("PAGE_CACHE_TTL_SECONDS", cfg.Sections.PageCacheTTL)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr, log)
	cfg.Redis.Password = envutil.String("REDIS_PASSWORD", cfg.Redis.Password, log)
	cfg.Redis.DB = envutil.Int("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.Channel = envutil.String("REDIS_CHANNEL", cfg.Redis.Channel, log)

	cfg.Storage.Mode = envutil.String("OBJECT_STORAGE_MODE", cfg.Storage.Mode, log)
	cfg.Storage.EmulatorHost = envutil.String("STORAGE_EMULATOR_HOST", cfg.Storage.EmulatorHost, log)
	cfg.Storage.PublicBaseURL = envutil.String("OBJECT_STORAGE_PUBLIC_BASE_URL", cfg.Storage.PublicBaseURL, log)

	cfg.Contact.RatePerMinute = envutil.Int("CONTACT_RATE_PER_MINUTE", cfg.Contact.RatePerMinute)
	cfg.Contact.Burst = envutil.Int("CONTACT_BURST", cfg.Contact.Burst)
	cfg.Contact.NotifyEmail = envutil.String("CONTACT_NOTIFY_EMAIL", cfg.Contact.NotifyEmail, log)
	cfg.Contact.FromEmail = envutil.String("SENDGRID_FROM_EMAIL", cfg.Contact.FromEmail, log)
	cfg.Contact.FromName = envutil.String("SENDGRID_FROM_NAME", cfg.Contact.FromName, log)

	cfg.Site.URL = envutil.String("SITE_URL", cfg.Site.URL, log)
	cfg.Site.Title = envutil.String("SITE_TITLE", cfg.Site.Title, log)
	cfg.Site.Description = envutil.String("SITE_DESCRIPTION", cfg.Site.Description, log)
	cfg.Site.Author = envutil.String("SITE_AUTHOR", cfg.Site.Author, log)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName, log)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment, log)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint, log)
	cfg.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Otel.Headers, log)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	if raw := strings.TrimSpace(os.Getenv("OTEL_SAMPLER_RATIO")); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			cfg.Otel.SampleRatio = f
		}
	}
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		return fmt.Errorf("config: database.driver must be %s or %s, got %q", DBDriverPostgres, DBDriverSQLite, c.Database.Driver)
	}
	if _, err := sections.ParseReorderMode(c.Sections.ReorderMode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if strings.TrimSpace(c.Auth.JWTSecretKey) == "" {
		return fmt.Errorf("config: auth.jwt_secret_key is required")
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("config: token ttls must be positive")
	}
	return nil
}

func (c Config) Addr() string {
	port := strings.TrimPrefix(strings.TrimSpace(c.Server.Port), ":")
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

func (c Config) PostgresDB() db.PostgresConfig {
	pg := c.Database.Postgres
	return db.PostgresConfig{
		Host:     pg.Host,
		Port:     pg.Port,
		User:     pg.User,
		Password: pg.Password,
		Name:     pg.Name,
		SSLMode:  pg.SSLMode,
	}
}

func (c Config) Observability() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Otel.Enabled,
		ServiceName: c.Otel.ServiceName,
		Environment: c.Otel.Environment,
		Endpoint:    c.Otel.Endpoint,
		Headers:     c.Otel.Headers,
		Insecure:    c.Otel.Insecure,
		SampleRatio: c.Otel.SampleRatio,
	}
}
