package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// fieldNameRX limits filter keys to plain identifiers, since they end up in a JSON path.
var fieldNameRX = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SqliteStore stores all collections in one SQLite file.
//
// Tables:
//
//	documents(id, collection, data, created_at)  PRIMARY KEY (id)
type SqliteStore struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSqliteStore(ctx context.Context, path string, logger *slog.Logger) (*SqliteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite backend requires a database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; also keeps ":memory:" databases on a single connection.
	database.SetMaxOpenConns(1)

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, classify(ErrUnavailable, err)
	}

	if err := migrateSqlite(ctx, database); err != nil {
		database.Close()
		return nil, err
	}

	return &SqliteStore{db: database, log: logger}, nil
}

func (s *SqliteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return classify(ErrUnavailable, err)
	}
	return nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("%w: encode document: %w", ErrWriteFailed, err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, collection, data, created_at) VALUES (?, ?, ?, ?)`,
		id, collection, string(b), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		s.log.Error("failed to insert document", "error", err, "collection", collection)
		return "", classify(ErrWriteFailed, fmt.Errorf("insert into %s: %w", collection, err))
	}

	return id, nil
}

// Find returns documents in insertion order.
func (s *SqliteStore) Find(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error) {
	if limit < 1 {
		return emptyResult(), nil
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, data FROM documents WHERE collection = ?`)
	args := []any{collection}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !fieldNameRX.MatchString(k) {
			return nil, fmt.Errorf("%w: invalid filter field %q", ErrReadFailed, k)
		}
		sb.WriteString(` AND json_extract(data, ?) = ?`)
		args = append(args, "$."+k, filter[k])
	}

	sb.WriteString(` ORDER BY rowid LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, classify(ErrReadFailed, fmt.Errorf("query %s: %w", collection, err))
	}
	defer rows.Close()

	docs := emptyResult()
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, classify(ErrReadFailed, err)
		}

		doc := Document{}
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			s.log.Warn("skipping undecodable document", "error", err, "collection", collection, "id", id)
			continue
		}
		doc[IDKey] = id
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(ErrReadFailed, err)
	}

	return docs, nil
}

func (s *SqliteStore) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, classify(ErrReadFailed, fmt.Errorf("list collections: %w", err))
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, classify(ErrReadFailed, err)
		}
		names = append(names, name)
	}

	return names, classify(ErrReadFailed, rows.Err())
}
