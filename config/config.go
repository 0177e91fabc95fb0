package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/daniilsolovey/taltos-portal/internal/content"
	"github.com/daniilsolovey/taltos-portal/internal/db"
)

const (
	DefaultPort   = 8000
	DefaultDBName = "taltos"
)

type Config struct {
	App      App
	Store    Store
	Database Database
}

type App struct {
	Host  string
	Port  int
	Debug bool
	// MaxLimit caps the limit parameter of every listing.
	MaxLimit int
}

type Store struct {
	// Backend is one of "mongo", "postgres", "sqlite".
	Backend string
	// Path is the sqlite database file.
	Path string
}

type Database struct {
	URL             string
	Name            string
	MaxConns        int
	MaxConnLifetime string
	LogQueries      bool
}

// Default returns the configuration used when neither file nor environment set a value.
func Default() Config {
	return Config{
		App: App{
			Host:     "0.0.0.0",
			Port:     DefaultPort,
			MaxLimit: content.DefaultMaxLimit,
		},
		Store: Store{
			Backend: db.BackendMongo,
			Path:    "data/taltos.db",
		},
		Database: Database{
			Name:            DefaultDBName,
			MaxConns:        5,
			MaxConnLifetime: "300s",
		},
	}
}

// Load reads the TOML file at path over the defaults and applies the
// DATABASE_URL, DATABASE_NAME, PORT and STORE_BACKEND overrides from getenv.
// A missing file is not an error.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if v := getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := getenv("DATABASE_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := getenv("STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse PORT: %w", err)
		}
		cfg.App.Port = port
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case db.BackendMongo, db.BackendPostgres, db.BackendSqlite:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.App.Port < 1 || c.App.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.App.Port)
	}

	if _, err := c.connLifetime(); err != nil {
		return err
	}

	return nil
}

func (c Config) connLifetime() (time.Duration, error) {
	if c.Database.MaxConnLifetime == "" {
		return 0, nil
	}

	lifetime, err := time.ParseDuration(c.Database.MaxConnLifetime)
	if err != nil {
		return 0, fmt.Errorf("failed to parse MaxConnLifetime: %w", err)
	}

	return lifetime, nil
}

// StoreOptions converts the storage settings for db.Open.
func (c Config) StoreOptions() db.Options {
	lifetime, _ := c.connLifetime()

	return db.Options{
		Backend:         c.Store.Backend,
		URL:             c.Database.URL,
		Name:            c.Database.Name,
		Path:            c.Store.Path,
		MaxConns:        c.Database.MaxConns,
		MaxConnLifetime: lifetime,
		LogQueries:      c.Database.LogQueries,
	}
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}
