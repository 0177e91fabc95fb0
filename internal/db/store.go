package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// IDKey is the key under which every backend returns the storage-assigned identifier.
const IDKey = "_id"

var (
	ErrUnavailable = errors.New("storage unavailable")
	ErrWriteFailed = errors.New("storage write failed")
	ErrReadFailed  = errors.New("storage read failed")
)

// Document is one stored record as a field map, including IDKey.
type Document map[string]any

// Filter is an equality constraint: every key must match its value exactly.
// An empty or nil Filter matches every document.
type Filter map[string]any

// Store is a named-collection document store.
type Store interface {
	// Insert stores fields as a new document in collection and returns the assigned id.
	Insert(ctx context.Context, collection string, fields map[string]any) (string, error)

	// Find returns up to limit documents of collection matching filter.
	// A limit below 1 returns an empty result.
	Find(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error)

	// Collections returns the names of collections that hold data.
	Collections(ctx context.Context) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}

const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendSqlite   = "sqlite"
)

type Options struct {
	Backend string
	// URL is the connection string for mongo and postgres.
	URL string
	// Name is the mongo database name.
	Name string
	// Path is the sqlite database file.
	Path string

	MaxConns        int
	MaxConnLifetime time.Duration
	LogQueries      bool
}

// Open connects to the configured backend and verifies the connection.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (Store, error) {
	var (
		s   Store
		err error
	)

	switch opts.Backend {
	case BackendMongo, "":
		s, err = NewMongoStore(ctx, opts.URL, opts.Name, logger)
	case BackendPostgres:
		s, err = NewPostgresStore(ctx, opts, logger)
	case BackendSqlite:
		s, err = NewSqliteStore(ctx, opts.Path, logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: mongo, postgres, sqlite)", opts.Backend)
	}

	if err != nil {
		return nil, err
	}

	return s, nil
}

// classify wraps err with ErrUnavailable for connection-level failures and with kind otherwise.
func classify(kind, err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return fmt.Errorf("%w: %w", kind, err)
}

func emptyResult() []Document {
	return []Document{}
}
