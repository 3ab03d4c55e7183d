package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Catalog sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Advisor modes.
const (
	AdvisorProcess = "process"
	AdvisorRules   = "rules"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Database  DatabaseConfig  `yaml:"database"`
	Advisor   AdvisorConfig   `yaml:"advisor"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Log       LogConfig       `yaml:"log"`
	MCP       MCPConfig       `yaml:"mcp"`
}

type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// CatalogConfig selects where the workout catalog is loaded from. Path is
// the YAML file for "file" and the database file for "sqlite".
type CatalogConfig struct {
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// AdvisorConfig controls the metrics advisor. Command is the argv of the
// external program used in "process" mode.
type AdvisorConfig struct {
	Mode    string        `yaml:"mode"`
	Command []string      `yaml:"command"`
	Timeout time.Duration `yaml:"timeout"`
	Cache   CacheConfig   `yaml:"cache"`
}

// CacheConfig enables the Redis result cache when RedisAddr is set.
type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the configuration used when no file is given: embedded
// catalog, in-process advisor rules, port 8080.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Host: "0.0.0.0", Port: 8080},
		Catalog: CatalogConfig{Source: SourceEmbedded},
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 5432,
			Name: "fitrec",
			User: "fitrec",
		},
		Advisor: AdvisorConfig{
			Mode:    AdvisorRules,
			Command: []string{"python", "workout_recommendation.py"},
			Timeout: 30 * time.Second,
			Cache:   CacheConfig{TTL: time.Hour},
		},
		Tailscale: TailscaleConfig{Hostname: "fitrec", StateDir: "tsnet-state"},
		Log:       LogConfig{Level: "info"},
	}
}

// LoadEnvFiles loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load starts from Default, reads the YAML file at path when path is not
// empty, then applies environment variable overrides. Env vars use the
// prefix FITREC_ and underscore-separated paths:
//
//	FITREC_SERVER_HOST, FITREC_SERVER_PORT (or PORT),
//	FITREC_CATALOG_SOURCE, FITREC_CATALOG_PATH,
//	FITREC_DB_HOST, FITREC_DB_PORT, FITREC_DB_NAME,
//	FITREC_DB_USER, FITREC_DB_PASSWORD, FITREC_DB_SSLMODE,
//	FITREC_ADVISOR_MODE, FITREC_ADVISOR_COMMAND, FITREC_ADVISOR_TIMEOUT,
//	FITREC_REDIS_ADDR, FITREC_REDIS_PASSWORD,
//	FITREC_TS_ENABLED, FITREC_TS_HOSTNAME, FITREC_TS_STATE_DIR,
//	FITREC_LOG_LEVEL, FITREC_MCP_ENABLED
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("config environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("FITREC_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	for _, key := range []string{"PORT", "FITREC_SERVER_PORT"} {
		if v := os.Getenv(key); v != "" {
			if port, err := strconv.Atoi(v); err == nil {
				cfg.Server.Port = port
			}
		}
	}
	if v := os.Getenv("FITREC_CATALOG_SOURCE"); v != "" {
		cfg.Catalog.Source = v
	}
	if v := os.Getenv("FITREC_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("FITREC_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("FITREC_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("FITREC_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("FITREC_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("FITREC_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("FITREC_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("FITREC_ADVISOR_MODE"); v != "" {
		cfg.Advisor.Mode = v
	}
	if v := os.Getenv("FITREC_ADVISOR_COMMAND"); v != "" {
		cfg.Advisor.Command = strings.Fields(v)
	}
	if v := os.Getenv("FITREC_ADVISOR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FITREC_ADVISOR_TIMEOUT: %w", err)
		}
		cfg.Advisor.Timeout = d
	}
	if v := os.Getenv("FITREC_REDIS_ADDR"); v != "" {
		cfg.Advisor.Cache.RedisAddr = v
	}
	if v := os.Getenv("FITREC_REDIS_PASSWORD"); v != "" {
		cfg.Advisor.Cache.RedisPassword = v
	}
	if v := os.Getenv("FITREC_TS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FITREC_TS_ENABLED: %w", err)
		}
		cfg.Tailscale.Enabled = b
	}
	if v := os.Getenv("FITREC_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("FITREC_TS_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("FITREC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FITREC_MCP_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FITREC_MCP_ENABLED: %w", err)
		}
		cfg.MCP.Enabled = b
	}
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}

	switch c.Catalog.Source {
	case SourceEmbedded:
	case SourceFile, SourceSQLite:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for source %q", c.Catalog.Source)
		}
	case SourcePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required")
		}
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
	default:
		return fmt.Errorf("catalog.source %q is not one of embedded, file, postgres, sqlite", c.Catalog.Source)
	}

	switch c.Advisor.Mode {
	case AdvisorRules:
	case AdvisorProcess:
		if len(c.Advisor.Command) == 0 {
			return fmt.Errorf("advisor.command is required in process mode")
		}
	default:
		return fmt.Errorf("advisor.mode %q is not one of process, rules", c.Advisor.Mode)
	}
	if c.Advisor.Timeout <= 0 {
		return fmt.Errorf("advisor.timeout must be positive")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}

	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
