package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

// Row source kinds.
const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
	SourceMySQL    = "mysql"
)

// Cache kinds.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Env         string   `yaml:"env" env:"APP_ENV" env-default:"prod"`
	Locale      string   `yaml:"locale" env:"DASHBOARD_LOCALE" env-default:"es-VE"`
	FrontendDir string   `yaml:"frontend_dir" env:"FRONTEND_DIR" env-default:"./frontend-dist"`
	ErrorLog    string   `yaml:"error_log" env:"ERROR_LOG" env-default:"errors.log"`
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:5173"`
	HTTPServer  `yaml:"http_server"`
	Source      `yaml:"source"`
	Cache       `yaml:"cache"`
	ETL         `yaml:"etl"`
}

type HTTPServer struct {
	Address      string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout      time.Duration `yaml:"timeout" env-default:"4s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"30s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Source selects where report rows come from: the ETL HTTP API or the
// warehouse database directly.
type Source struct {
	Kind         string        `yaml:"kind" env:"SOURCE_KIND" env-default:"http"`
	BaseURL      string        `yaml:"base_url" env:"ETL_API_URL" env-default:"http://localhost:3000"`
	MySQLDSN     string        `yaml:"mysql_dsn" env:"MYSQL_DSN"`
	PostgresDSN  string        `yaml:"postgres_dsn" env:"PG_DSN"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env-default:"10s"`
	StaleTime    time.Duration `yaml:"stale_time" env-default:"5m"`
	Retries      int           `yaml:"retries" env-default:"2"`
	RetryDelay   time.Duration `yaml:"retry_delay" env-default:"1s"`
}

type Cache struct {
	Kind      string `yaml:"kind" env:"CACHE_KIND" env-default:"memory"`
	RedisAddr string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"127.0.0.1:6379"`
}

// ETL controls the run trigger proxied to the backend.
type ETL struct {
	InvalidateDelay time.Duration `yaml:"invalidate_delay" env-default:"3s"`
	RunsPerMinute   int           `yaml:"runs_per_minute" env-default:"5"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

// Load reads the YAML file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Source.Kind {
	case SourceHTTP:
		if c.Source.BaseURL == "" {
			return fmt.Errorf("source.base_url is required for kind %q", c.Source.Kind)
		}
	case SourceMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("source.mysql_dsn is required for kind %q", c.Source.Kind)
		}
	case SourcePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("source.postgres_dsn is required for kind %q", c.Source.Kind)
		}
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}

	switch c.Cache.Kind {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown cache kind %q", c.Cache.Kind)
	}

	if c.Retries < 0 {
		return fmt.Errorf("source.retries must not be negative")
	}

	return nil
}
